package model

import "time"

// PostPeer defines interactions with the post data. List operations return
// posts newest-first.
type PostPeer interface {
	GetByID(id string) (*Post, error)
	GetPosts() ([]*Post, error)
	GetByAuthor(uid string) ([]*Post, error)
	GetByGroup(groupID string) ([]*Post, error)
	NewPost(uid string) *Post
	SaveNew(p *Post) error
	Update(p *Post) error
}

// Post represents a single unit of user-authored content. GroupID is empty
// for posts that belong to no group.
type Post struct {
	ID        string
	UID       string
	Username  string
	Text      string
	GroupID   string
	CreatedAt time.Time
	Peer      PostPeer
}

// SaveNew saves a new post to the model.
func (p *Post) SaveNew() error {
	return p.Peer.SaveNew(p)
}

// Update persists changes to an existing post.
func (p *Post) Update() error {
	return p.Peer.Update(p)
}

// EditableBy reports whether the given user may modify the post. Only the
// author may edit.
func (p *Post) EditableBy(uid string) bool {
	return uid != "" && uid == p.UID
}

// ByCreatedAtDESC represents a sort interface for sorting Posts descending by CreatedAt
type ByCreatedAtDESC []*Post

func (o ByCreatedAtDESC) Len() int           { return len(o) }
func (o ByCreatedAtDESC) Swap(i, j int)      { o[i], o[j] = o[j], o[i] }
func (o ByCreatedAtDESC) Less(i, j int) bool { return o[i].CreatedAt.After(o[j].CreatedAt) }
