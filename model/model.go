package model

import "errors"

// ErrNotFound is returned by peer lookups when no row matches the given key.
var ErrNotFound = errors.New("model: not found")

// Model defines a basic model consisting of the three entities `post`,
// `user` and `group`.
type Model interface {
	PostPeer() PostPeer
	UserPeer() UserPeer
	GroupPeer() GroupPeer
}
