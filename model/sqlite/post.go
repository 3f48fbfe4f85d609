package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	uuid "github.com/satori/go.uuid"

	"yatube/model"
)

type SQLitePostPeer struct {
	model *SQLiteModel
}

const postColumns = `p.id, p.author_id, u.username, p.text, COALESCE(p.group_id, ''), p.created_at`

func (pp *SQLitePostPeer) scanPost(row interface{ Scan(...any) error }) (*model.Post, error) {
	p := &model.Post{Peer: pp}
	var createdAt int64
	err := row.Scan(&p.ID, &p.UID, &p.Username, &p.Text, &p.GroupID, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan post: %w", err)
	}
	p.CreatedAt = time.Unix(0, createdAt)
	return p, nil
}

func (pp *SQLitePostPeer) queryPosts(where string, args ...any) ([]*model.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		` + where + `
		ORDER BY p.created_at DESC, p.id DESC`
	rows, err := pp.model.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		p, err := pp.scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

func (pp *SQLitePostPeer) GetByID(id string) (*model.Post, error) {
	row := pp.model.db.QueryRow(`
		SELECT `+postColumns+`
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = ?`, id)
	return pp.scanPost(row)
}

func (pp *SQLitePostPeer) GetPosts() ([]*model.Post, error) {
	return pp.queryPosts("")
}

func (pp *SQLitePostPeer) GetByAuthor(uid string) ([]*model.Post, error) {
	return pp.queryPosts("WHERE p.author_id = ?", uid)
}

func (pp *SQLitePostPeer) GetByGroup(groupID string) ([]*model.Post, error) {
	return pp.queryPosts("WHERE p.group_id = ?", groupID)
}

func (pp *SQLitePostPeer) NewPost(uid string) *model.Post {
	return &model.Post{
		Peer:      pp,
		ID:        uuid.NewV4().String(),
		UID:       uid,
		CreatedAt: time.Now(),
	}
}

func (pp *SQLitePostPeer) SaveNew(p *model.Post) error {
	if p == nil {
		return errors.New("post is nil")
	}
	_, err := pp.model.db.Exec(`
		INSERT INTO posts (id, author_id, text, group_id, created_at)
		VALUES (?, ?, ?, NULLIF(?, ''), ?)`,
		p.ID, p.UID, p.Text, p.GroupID, p.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (pp *SQLitePostPeer) Update(p *model.Post) error {
	if p == nil {
		return errors.New("post is nil")
	}
	res, err := pp.model.db.Exec(`
		UPDATE posts SET text = ?, group_id = NULLIF(?, '')
		WHERE id = ?`,
		p.Text, p.GroupID, p.ID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
