package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"yatube/middleware"
	"yatube/model"
	"yatube/model/sqlite"
	"yatube/view"
)

const testPassword = "secret123"

type testApp struct {
	t     *testing.T
	model *sqlite.SQLiteModel
	rec   *view.Recorder
	srv   *httptest.Server
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	m, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("Could not open test database: %s", err)
	}
	t.Cleanup(func() { m.Close() })

	session := &middleware.Session{}
	session.Init(bytes.Repeat([]byte("h"), 32), bytes.Repeat([]byte("b"), 32))

	rec := &view.Recorder{}
	srv := httptest.NewServer(routes(m, rec, session))
	t.Cleanup(srv.Close)

	return &testApp{t: t, model: m, rec: rec, srv: srv}
}

// newClient returns a client with its own cookie jar that does not follow
// redirects, so tests can assert on Location headers.
func (a *testApp) newClient() *http.Client {
	jar, err := cookiejar.New(nil)
	if err != nil {
		a.t.Fatalf("Could not create cookie jar: %s", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (a *testApp) get(c *http.Client, path string) *http.Response {
	a.t.Helper()
	resp, err := c.Get(a.srv.URL + path)
	if err != nil {
		a.t.Fatalf("GET %s: %s", path, err)
	}
	resp.Body.Close()
	return resp
}

func (a *testApp) postForm(c *http.Client, path string, values url.Values) *http.Response {
	a.t.Helper()
	resp, err := c.PostForm(a.srv.URL+path, values)
	if err != nil {
		a.t.Fatalf("POST %s: %s", path, err)
	}
	resp.Body.Close()
	return resp
}

func (a *testApp) seedUser(username string) *model.User {
	a.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		a.t.Fatalf("Could not hash password: %s", err)
	}
	u := a.model.UserPeer().NewUser()
	u.Username = username
	u.PasswordHash = string(hash)
	if err := u.SaveNew(); err != nil {
		a.t.Fatalf("Could not save user %q: %s", username, err)
	}
	return u
}

func (a *testApp) seedGroup(slug string) *model.Group {
	a.t.Helper()
	g := a.model.GroupPeer().NewGroup(slug)
	g.Title = "Group " + slug
	if err := g.SaveNew(); err != nil {
		a.t.Fatalf("Could not save group %q: %s", slug, err)
	}
	return g
}

func (a *testApp) seedPost(u *model.User, g *model.Group, text string, createdAt time.Time) *model.Post {
	a.t.Helper()
	p := a.model.PostPeer().NewPost(u.ID)
	p.Username = u.Username
	p.Text = text
	p.CreatedAt = createdAt
	if g != nil {
		p.GroupID = g.ID
	}
	if err := p.SaveNew(); err != nil {
		a.t.Fatalf("Could not save post: %s", err)
	}
	return p
}

func (a *testApp) login(c *http.Client, username string) {
	a.t.Helper()
	resp := a.postForm(c, "/login/", url.Values{
		"username": {username},
		"password": {testPassword},
	})
	if resp.StatusCode != http.StatusFound {
		a.t.Fatalf("Login as %q failed with status %d", username, resp.StatusCode)
	}
}

func (a *testApp) postCount() int {
	a.t.Helper()
	posts, err := a.model.PostPeer().GetPosts()
	if err != nil {
		a.t.Fatalf("Could not count posts: %s", err)
	}
	return len(posts)
}

func TestIndexPagination(t *testing.T) {
	assert := assert.New(t)
	a := newTestApp(t)
	alice := a.seedUser("alice")
	base := time.Now()
	for i := 0; i < 13; i++ {
		a.seedPost(alice, nil, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Second))
	}
	c := a.newClient()

	resp := a.get(c, "/")
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Equal("index", a.rec.Name)
	assert.Len(a.rec.Data.Page.Items, 10)
	assert.Equal("post 12", a.rec.Data.Page.Items[0].Text, "newest post comes first")

	resp = a.get(c, "/?page=2")
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Len(a.rec.Data.Page.Items, 3)
}

func TestGroupListIsolation(t *testing.T) {
	assert := assert.New(t)
	a := newTestApp(t)
	alice := a.seedUser("alice")
	groupA := a.seedGroup("group-a")
	a.seedGroup("group-b")
	a.seedPost(alice, groupA, "in group a", time.Now())
	c := a.newClient()

	resp := a.get(c, "/group/group-a/")
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Equal("group_list", a.rec.Name)
	assert.Equal("group-a", a.rec.Data.Group.Slug)
	assert.Len(a.rec.Data.Page.Items, 1)

	resp = a.get(c, "/group/group-b/")
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Empty(a.rec.Data.Page.Items, "group B must not show group A's posts")

	resp = a.get(c, "/group/unknown/")
	assert.Equal(http.StatusNotFound, resp.StatusCode)
}

func TestProfileIsolation(t *testing.T) {
	assert := assert.New(t)
	a := newTestApp(t)
	alice := a.seedUser("alice")
	bob := a.seedUser("bob")
	a.seedPost(alice, nil, "by alice", time.Now())
	a.seedPost(bob, nil, "by bob", time.Now().Add(time.Second))
	c := a.newClient()

	resp := a.get(c, "/profile/alice/")
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Equal("profile", a.rec.Name)
	assert.Equal("alice", a.rec.Data.Author.Username)
	assert.Len(a.rec.Data.Page.Items, 1)
	assert.Equal("by alice", a.rec.Data.Page.Items[0].Text)

	resp = a.get(c, "/profile/unknown/")
	assert.Equal(http.StatusNotFound, resp.StatusCode)
}

func TestLoginRequiredRedirects(t *testing.T) {
	assert := assert.New(t)
	a := newTestApp(t)
	alice := a.seedUser("alice")
	post := a.seedPost(alice, nil, "a post", time.Now())
	c := a.newClient()

	resp := a.get(c, "/create/")
	assert.Equal(http.StatusFound, resp.StatusCode)
	assert.Equal("/login/?next=/create/", resp.Header.Get("Location"))

	editPath := "/posts/" + post.ID + "/edit/"
	resp = a.get(c, editPath)
	assert.Equal(http.StatusFound, resp.StatusCode)
	assert.Equal("/login/?next="+editPath, resp.Header.Get("Location"))
}

func TestCreateAndEditFlow(t *testing.T) {
	assert := assert.New(t)
	a := newTestApp(t)
	a.seedUser("alice")
	a.seedUser("bob")

	asAlice := a.newClient()
	a.login(asAlice, "alice")

	resp := a.postForm(asAlice, "/create/", url.Values{"text": {"hello world"}})
	assert.Equal(http.StatusFound, resp.StatusCode)
	assert.Equal("/profile/alice/", resp.Header.Get("Location"))
	assert.Equal(1, a.postCount())

	posts, err := a.model.PostPeer().GetPosts()
	assert.NoError(err)
	post := posts[0]
	assert.Equal("hello world", post.Text)
	assert.Equal("alice", post.Username)

	resp = a.get(asAlice, "/posts/"+post.ID+"/")
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Equal("post_detail", a.rec.Name)

	// The author edits her own post.
	resp = a.postForm(asAlice, "/posts/"+post.ID+"/edit/", url.Values{"text": {"updated text"}})
	assert.Equal(http.StatusFound, resp.StatusCode)
	assert.Equal("/posts/"+post.ID+"/", resp.Header.Get("Location"))
	got, err := a.model.PostPeer().GetByID(post.ID)
	assert.NoError(err)
	assert.Equal("updated text", got.Text)

	// A non-author is silently sent to the detail page and nothing changes.
	asBob := a.newClient()
	a.login(asBob, "bob")
	resp = a.postForm(asBob, "/posts/"+post.ID+"/edit/", url.Values{"text": {"bob was here"}})
	assert.Equal(http.StatusFound, resp.StatusCode)
	assert.Equal("/posts/"+post.ID+"/", resp.Header.Get("Location"))
	got, err = a.model.PostPeer().GetByID(post.ID)
	assert.NoError(err)
	assert.Equal("updated text", got.Text, "a non-author edit must not change the post")
}

func TestCreateValidation(t *testing.T) {
	assert := assert.New(t)
	a := newTestApp(t)
	a.seedUser("alice")
	c := a.newClient()
	a.login(c, "alice")

	resp := a.postForm(c, "/create/", url.Values{"text": {""}})
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Equal("create_post", a.rec.Name, "the form must be re-rendered")
	assert.NotEmpty(a.rec.Data.Form.Errors["text"])
	assert.Equal(0, a.postCount(), "no post must be persisted")
}

func TestSignupLoginRoundtrip(t *testing.T) {
	assert := assert.New(t)
	a := newTestApp(t)
	c := a.newClient()

	resp := a.postForm(c, "/signup/", url.Values{
		"username": {"carol"},
		"password": {testPassword},
	})
	assert.Equal(http.StatusFound, resp.StatusCode)
	assert.Equal("/login/", resp.Header.Get("Location"))

	resp = a.postForm(c, "/login/", url.Values{
		"username": {"carol"},
		"password": {testPassword},
		"next":     {"/create/"},
	})
	assert.Equal(http.StatusFound, resp.StatusCode)
	assert.Equal("/create/", resp.Header.Get("Location"))

	resp = a.get(c, "/create/")
	assert.Equal(http.StatusOK, resp.StatusCode, "carol must be logged in now")
	assert.Equal("create_post", a.rec.Name)
}

func TestUnknownPathIs404(t *testing.T) {
	assert := assert.New(t)
	a := newTestApp(t)
	c := a.newClient()

	resp := a.get(c, "/unexisting_page/")
	assert.Equal(http.StatusNotFound, resp.StatusCode)
}
