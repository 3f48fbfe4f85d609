package model

// GroupPeer defines interactions with the group data.
type GroupPeer interface {
	GetBySlug(slug string) (*Group, error)
	GetGroups() ([]*Group, error)
	NewGroup(slug string) *Group
	SaveNew(g *Group) error
}

// Group is a named topical collection of posts. The slug uniquely
// identifies a group and never changes.
type Group struct {
	ID          string
	Slug        string
	Title       string
	Description string
	Peer        GroupPeer
}

// SaveNew saves a new group to the model.
func (g *Group) SaveNew() error {
	return g.Peer.SaveNew(g)
}
