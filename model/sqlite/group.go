package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	uuid "github.com/satori/go.uuid"

	"yatube/model"
)

type SQLiteGroupPeer struct {
	model *SQLiteModel
}

func (p *SQLiteGroupPeer) scanGroup(row interface{ Scan(...any) error }) (*model.Group, error) {
	g := &model.Group{Peer: p}
	err := row.Scan(&g.ID, &g.Slug, &g.Title, &g.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan group: %w", err)
	}
	return g, nil
}

func (p *SQLiteGroupPeer) GetBySlug(slug string) (*model.Group, error) {
	row := p.model.db.QueryRow(`SELECT id, slug, title, description FROM groups WHERE slug = ?`, slug)
	return p.scanGroup(row)
}

func (p *SQLiteGroupPeer) GetGroups() ([]*model.Group, error) {
	rows, err := p.model.db.Query(`SELECT id, slug, title, description FROM groups ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}
	defer rows.Close()

	var groups []*model.Group
	for rows.Next() {
		g, err := p.scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}
	return groups, nil
}

func (p *SQLiteGroupPeer) NewGroup(slug string) *model.Group {
	return &model.Group{
		Peer: p,
		ID:   uuid.NewV4().String(),
		Slug: slug,
	}
}

func (p *SQLiteGroupPeer) SaveNew(g *model.Group) error {
	if g == nil {
		return errors.New("group is nil")
	}
	_, err := p.model.db.Exec(`
		INSERT INTO groups (id, slug, title, description)
		VALUES (?, ?, ?, ?)`,
		g.ID, g.Slug, g.Title, g.Description)
	if err != nil {
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}
