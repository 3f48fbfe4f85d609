package controller

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"yatube/model"
	"yatube/view"
)

// AuthDataProvider defines the needed model interactions for login and
// signup.
type AuthDataProvider interface {
	GetByUsername(username string) (*model.User, error)
	UpdateLastLogin(id string) error
	NewUser() *model.User
	SaveNew(u *model.User) error
}

// AuthController handles form-based login, logout and signup.
type AuthController struct {
	Model    AuthDataProvider
	Renderer view.Renderer
}

// Login shows the login form and on submit checks the credentials. A
// successful login stores the user id in the session and redirects to the
// "next" path when one was carried along, otherwise to the front page.
func (c *AuthController) Login(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	next := safeNext(r.FormValue("next"))
	form := view.NewForm()
	if r.Method == http.MethodPost {
		username := strings.TrimSpace(r.FormValue("username"))
		password := r.FormValue("password")
		u, err := c.Model.GetByUsername(username)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			serverError(w, err)
			return
		}
		if err == nil && bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil {
			session, ok := ctx.Value("session").(*sessions.Session)
			if !ok {
				log.Error("Context without valid session")
				serverError(w, errors.New("no session in context"))
				return
			}
			session.Values["user"] = u.ID
			if err := session.Save(r, w); err != nil {
				serverError(w, err)
				return
			}
			if err := c.Model.UpdateLastLogin(u.ID); err != nil {
				log.Warnf("Could not update last login: %s", err)
			}
			if next == "" {
				next = "/"
			}
			http.Redirect(w, r, next, http.StatusFound)
			return
		}
		log.Infof("Failed login for %q", username)
		form.Values["username"] = username
		form.Errors["username"] = "Unknown username or wrong password"
	}
	render(c.Renderer, w, "login", &view.Data{
		Title: "Log in",
		Form:  form,
		Next:  next,
	})
}

// Logout invalidates the users session and redirects to the login page.
func (c *AuthController) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	session, ok := ctx.Value("session").(*sessions.Session)
	if !ok {
		log.Error("Context without valid session")
		serverError(w, errors.New("no session in context"))
		return
	}
	delete(session.Values, "user")
	if err := session.Save(r, w); err != nil {
		serverError(w, err)
		return
	}
	http.Redirect(w, r, "/login/", http.StatusFound)
}

// Register shows the signup form and creates the user on a valid submit,
// then redirects to the login page.
func (c *AuthController) Register(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	form := view.NewForm()
	if r.Method == http.MethodPost {
		username := strings.TrimSpace(r.FormValue("username"))
		password := r.FormValue("password")
		form.Values["username"] = username
		if username == "" {
			form.Errors["username"] = "Username must not be empty"
		} else if _, err := c.Model.GetByUsername(username); err == nil {
			form.Errors["username"] = "Username is already taken"
		} else if !errors.Is(err, model.ErrNotFound) {
			serverError(w, err)
			return
		}
		if len(password) < 6 {
			form.Errors["password"] = "Password must be at least 6 characters"
		}
		if form.Valid() {
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				serverError(w, err)
				return
			}
			u := c.Model.NewUser()
			u.Username = username
			u.PasswordHash = string(hash)
			if err := c.Model.SaveNew(u); err != nil {
				log.Warnf("Could not save new user: %s", err)
				serverError(w, err)
				return
			}
			http.Redirect(w, r, "/login/", http.StatusFound)
			return
		}
	}
	render(c.Renderer, w, "signup", &view.Data{
		Title: "Sign up",
		Form:  form,
	})
}

// safeNext keeps the post-login redirect on this site. Anything that is not
// a plain absolute path is discarded.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	return next
}
