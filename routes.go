package main

import (
	"context"
	"net/http"

	"github.com/rs/xhandler"
	"github.com/zenazn/goji/web"

	"yatube/controller"
	"yatube/middleware"
	"yatube/model"
	"yatube/view"
)

// postData adapts the model peers to the flat PostDataProvider interface.
type postData struct {
	m model.Model
}

func (d postData) GetUserByID(id string) (*model.User, error) {
	return d.m.UserPeer().GetByID(id)
}
func (d postData) GetUserByUsername(username string) (*model.User, error) {
	return d.m.UserPeer().GetByUsername(username)
}
func (d postData) GetGroupBySlug(slug string) (*model.Group, error) {
	return d.m.GroupPeer().GetBySlug(slug)
}
func (d postData) GetGroups() ([]*model.Group, error) {
	return d.m.GroupPeer().GetGroups()
}
func (d postData) GetPosts() ([]*model.Post, error) {
	return d.m.PostPeer().GetPosts()
}
func (d postData) GetPostsByAuthor(uid string) ([]*model.Post, error) {
	return d.m.PostPeer().GetByAuthor(uid)
}
func (d postData) GetPostsByGroup(groupID string) ([]*model.Post, error) {
	return d.m.PostPeer().GetByGroup(groupID)
}
func (d postData) NewPost(uid string) *model.Post {
	return d.m.PostPeer().NewPost(uid)
}
func (d postData) SaveNew(p *model.Post) error {
	return d.m.PostPeer().SaveNew(p)
}
func (d postData) Update(p *model.Post) error {
	return d.m.PostPeer().Update(p)
}
func (d postData) GetByID(id string) (*model.Post, error) {
	return d.m.PostPeer().GetByID(id)
}

// authData adapts the user peer to the AuthDataProvider interface.
type authData struct {
	m model.Model
}

func (d authData) GetByUsername(username string) (*model.User, error) {
	return d.m.UserPeer().GetByUsername(username)
}
func (d authData) UpdateLastLogin(id string) error {
	return d.m.UserPeer().UpdateLastLogin(id)
}
func (d authData) NewUser() *model.User {
	return d.m.UserPeer().NewUser()
}
func (d authData) SaveNew(u *model.User) error {
	return d.m.UserPeer().SaveNew(u)
}

func handle(ctx context.Context, c xhandler.Chain, h xhandler.HandlerC) web.HandlerFunc {
	h = handlerC(c, h)
	return func(c web.C, w http.ResponseWriter, r *http.Request) {
		newctx := context.WithValue(ctx, "urlparams", c.URLParams)
		h.ServeHTTPC(newctx, w, r)
	}
}

// Obsolete pending pull request: https://github.com/rs/xhandler/pull/3
func handlerC(c xhandler.Chain, xh xhandler.HandlerC) xhandler.HandlerC {
	for i := len(c) - 1; i >= 0; i-- {
		xh = c[i](xh)
	}
	return xh
}

const sessionName = "yatube"

// routes builds the full application mux over the given collaborators.
func routes(m model.Model, renderer view.Renderer, session *middleware.Session) *web.Mux {
	posts := &controller.PostController{Model: postData{m}, Renderer: renderer}
	auth := &controller.AuthController{Model: authData{m}, Renderer: renderer}

	base := xhandler.Chain{}
	base.UseC(middleware.RequestLogger())
	base.UseC(session.Enable(sessionName))

	authed := xhandler.Chain{}
	authed.UseC(middleware.RequestLogger())
	authed.UseC(session.Enable(sessionName))
	authed.UseC(middleware.AuthenticatedFilter("/login/"))
	authed.UseC(middleware.UserContext())

	guest := xhandler.Chain{}
	guest.UseC(middleware.RequestLogger())
	guest.UseC(session.Enable(sessionName))
	guest.UseC(middleware.UnauthenticatedFilter("/"))

	ctx := context.Background()
	mux := web.New()
	mux.Get("/", handle(ctx, base, xhandler.HandlerFuncC(posts.Index)))
	mux.Get("/group/:slug/", handle(ctx, base, xhandler.HandlerFuncC(posts.GroupPosts)))
	mux.Get("/profile/:username/", handle(ctx, base, xhandler.HandlerFuncC(posts.Profile)))
	mux.Get("/create/", handle(ctx, authed, xhandler.HandlerFuncC(posts.CreatePost)))
	mux.Post("/create/", handle(ctx, authed, xhandler.HandlerFuncC(posts.CreatePost)))
	// Register the edit route before the detail route so :post_id does not
	// swallow the /edit/ suffix.
	mux.Get("/posts/:post_id/edit/", handle(ctx, authed, xhandler.HandlerFuncC(posts.EditPost)))
	mux.Post("/posts/:post_id/edit/", handle(ctx, authed, xhandler.HandlerFuncC(posts.EditPost)))
	mux.Get("/posts/:post_id/", handle(ctx, base, xhandler.HandlerFuncC(posts.PostDetail)))
	mux.Get("/login/", handle(ctx, guest, xhandler.HandlerFuncC(auth.Login)))
	mux.Post("/login/", handle(ctx, base, xhandler.HandlerFuncC(auth.Login)))
	mux.Get("/logout/", handle(ctx, authed, xhandler.HandlerFuncC(auth.Logout)))
	mux.Get("/signup/", handle(ctx, guest, xhandler.HandlerFuncC(auth.Register)))
	mux.Post("/signup/", handle(ctx, base, xhandler.HandlerFuncC(auth.Register)))
	return mux
}
