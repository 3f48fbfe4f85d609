package controller

import (
	"context"
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"yatube/model"
	"yatube/paginator"
	"yatube/view"
)

// PostDataProvider defines the needed model interactions for the post pages.
type PostDataProvider interface {
	GetUserByID(id string) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	GetGroupBySlug(slug string) (*model.Group, error)
	GetGroups() ([]*model.Group, error)
	GetPosts() ([]*model.Post, error)
	GetPostsByAuthor(uid string) ([]*model.Post, error)
	GetPostsByGroup(groupID string) ([]*model.Post, error)
	NewPost(uid string) *model.Post
	SaveNew(p *model.Post) error
	Update(p *model.Post) error
	GetByID(id string) (*model.Post, error)
}

// PostController serves every post-facing page of the application.
type PostController struct {
	Model    PostDataProvider
	Renderer view.Renderer
}

// Index shows all posts, newest first, ten per page.
func (c *PostController) Index(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	posts, err := c.Model.GetPosts()
	if err != nil {
		serverError(w, err)
		return
	}
	render(c.Renderer, w, "index", &view.Data{
		Title: "Latest posts",
		Page:  paginator.Paginate(posts, paginator.PerPage, pageParam(r)),
	})
}

// GroupPosts shows the posts of a single group, looked up by slug. Posts of
// other groups never appear here.
func (c *PostController) GroupPosts(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	slug, ok := urlParam(ctx, "slug")
	if !ok {
		notFound(w)
		return
	}
	group, err := c.Model.GetGroupBySlug(slug)
	if errors.Is(err, model.ErrNotFound) {
		notFound(w)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}
	posts, err := c.Model.GetPostsByGroup(group.ID)
	if err != nil {
		serverError(w, err)
		return
	}
	render(c.Renderer, w, "group_list", &view.Data{
		Title: group.Title,
		Group: group,
		Page:  paginator.Paginate(posts, paginator.PerPage, pageParam(r)),
	})
}

// Profile shows the posts of a single author, looked up by username.
func (c *PostController) Profile(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	username, ok := urlParam(ctx, "username")
	if !ok {
		notFound(w)
		return
	}
	author, err := c.Model.GetUserByUsername(username)
	if errors.Is(err, model.ErrNotFound) {
		notFound(w)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}
	posts, err := c.Model.GetPostsByAuthor(author.ID)
	if err != nil {
		serverError(w, err)
		return
	}
	render(c.Renderer, w, "profile", &view.Data{
		Title:  author.Username,
		Author: author,
		Page:   paginator.Paginate(posts, paginator.PerPage, pageParam(r)),
	})
}

// PostDetail shows a single post.
func (c *PostController) PostDetail(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id, ok := urlParam(ctx, "post_id")
	if !ok {
		notFound(w)
		return
	}
	post, err := c.Model.GetByID(id)
	if errors.Is(err, model.ErrNotFound) {
		notFound(w)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}
	render(c.Renderer, w, "post_detail", &view.Data{
		Title: post.Username,
		Post:  post,
	})
}

// CreatePost displays the post form and persists valid submissions. A
// successful submission redirects to the author's profile.
func (c *PostController) CreatePost(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	uid, ok := sessionUser(ctx)
	if !ok {
		log.Warnf("Invalid user context")
		serverError(w, errors.New("no user in context"))
		return
	}
	groups, err := c.Model.GetGroups()
	if err != nil {
		serverError(w, err)
		return
	}
	form := view.NewForm()
	if r.Method == http.MethodPost {
		form = postForm(r)
		validatePostForm(form, groups)
		if form.Valid() {
			author, err := c.Model.GetUserByID(uid)
			if err != nil {
				serverError(w, err)
				return
			}
			post := c.Model.NewPost(uid)
			post.Text = form.Values["text"]
			post.GroupID = form.Values["group"]
			post.Username = author.Username
			if err := c.Model.SaveNew(post); err != nil {
				log.Warnf("Could not save post: %s", err)
				serverError(w, err)
				return
			}
			http.Redirect(w, r, "/profile/"+author.Username+"/", http.StatusFound)
			return
		}
	}
	render(c.Renderer, w, "create_post", &view.Data{
		Title:  "New post",
		Form:   form,
		Groups: groups,
	})
}

// EditPost lets the author of a post change its text and group. Anyone else
// is sent to the post's detail page without an error. A successful edit
// redirects to the detail page.
func (c *PostController) EditPost(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id, ok := urlParam(ctx, "post_id")
	if !ok {
		notFound(w)
		return
	}
	post, err := c.Model.GetByID(id)
	if errors.Is(err, model.ErrNotFound) {
		notFound(w)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}
	uid, ok := sessionUser(ctx)
	if !ok {
		log.Warnf("Invalid user context")
		serverError(w, errors.New("no user in context"))
		return
	}
	if !post.EditableBy(uid) {
		http.Redirect(w, r, "/posts/"+post.ID+"/", http.StatusFound)
		return
	}
	groups, err := c.Model.GetGroups()
	if err != nil {
		serverError(w, err)
		return
	}
	form := view.NewForm()
	form.Values["text"] = post.Text
	form.Values["group"] = post.GroupID
	if r.Method == http.MethodPost {
		form = postForm(r)
		validatePostForm(form, groups)
		if form.Valid() {
			post.Text = form.Values["text"]
			post.GroupID = form.Values["group"]
			if err := c.Model.Update(post); err != nil {
				log.Warnf("Could not update post: %s", err)
				serverError(w, err)
				return
			}
			http.Redirect(w, r, "/posts/"+post.ID+"/", http.StatusFound)
			return
		}
	}
	render(c.Renderer, w, "create_post", &view.Data{
		Title:  "Edit post",
		Form:   form,
		Groups: groups,
		Post:   post,
	})
}

func postForm(r *http.Request) *view.Form {
	form := view.NewForm()
	form.Values["text"] = strings.TrimSpace(r.FormValue("text"))
	form.Values["group"] = r.FormValue("group")
	return form
}

func validatePostForm(form *view.Form, groups []*model.Group) {
	if form.Values["text"] == "" {
		form.Errors["text"] = "Text must not be empty"
	}
	if gid := form.Values["group"]; gid != "" {
		known := false
		for _, g := range groups {
			if g.ID == gid {
				known = true
				break
			}
		}
		if !known {
			form.Errors["group"] = "Unknown group"
		}
	}
}
