package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	uuid "github.com/satori/go.uuid"

	"yatube/model"
)

type SQLiteUserPeer struct {
	model *SQLiteModel
}

const userColumns = `id, username, password_hash, created_at, last_login`

func (p *SQLiteUserPeer) scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	u := &model.User{Peer: p}
	var createdAt, lastLogin int64
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &createdAt, &lastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.CreatedAt = time.Unix(createdAt, 0)
	if lastLogin != 0 {
		u.LastLogin = time.Unix(lastLogin, 0)
	}
	return u, nil
}

func (p *SQLiteUserPeer) GetByID(id string) (*model.User, error) {
	row := p.model.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return p.scanUser(row)
}

func (p *SQLiteUserPeer) GetByUsername(username string) (*model.User, error) {
	row := p.model.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return p.scanUser(row)
}

func (p *SQLiteUserPeer) NewUser() *model.User {
	return &model.User{
		Peer:      p,
		ID:        uuid.NewV4().String(),
		CreatedAt: time.Now(),
	}
}

func (p *SQLiteUserPeer) SaveNew(u *model.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	_, err := p.model.db.Exec(`
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES (?, ?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash, u.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (p *SQLiteUserPeer) UpdateLastLogin(id string) error {
	res, err := p.model.db.Exec(`UPDATE users SET last_login = ? WHERE id = ?`,
		time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
