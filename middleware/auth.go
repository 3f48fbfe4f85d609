package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/rs/xhandler"
	log "github.com/sirupsen/logrus"
)

// AuthenticatedFilter redirects requests without a logged-in user to the
// login page, carrying the original path in the "next" parameter so the
// login flow can return the user to where they came from.
func AuthenticatedFilter(loginURL string) func(next xhandler.HandlerC) xhandler.HandlerC {
	return func(next xhandler.HandlerC) xhandler.HandlerC {
		return xhandler.HandlerFuncC(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
			session, ok := ctx.Value("session").(*sessions.Session)
			if !ok {
				log.Error("Context without valid session")
				http.Error(w, "Something went wrong", http.StatusInternalServerError)
				return
			}
			if _, ok := session.Values["user"]; !ok {
				log.Info("Handler: Is not loggedin")
				http.Redirect(w, r, loginURL+"?next="+r.URL.Path, http.StatusFound)
				return
			}
			next.ServeHTTPC(ctx, w, r)
		})
	}
}

// UnauthenticatedFilter redirects already logged-in users away from pages
// meant for guests, such as the login and signup forms.
func UnauthenticatedFilter(loggedInURL string) func(next xhandler.HandlerC) xhandler.HandlerC {
	return func(next xhandler.HandlerC) xhandler.HandlerC {
		return xhandler.HandlerFuncC(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
			session, ok := ctx.Value("session").(*sessions.Session)
			if !ok {
				log.Error("Context without valid session")
				http.Error(w, "Something went wrong", http.StatusInternalServerError)
				return
			}
			if _, ok := session.Values["user"]; ok {
				log.Info("Handler: Is loggedin")
				http.Redirect(w, r, loggedInURL, http.StatusFound)
				return
			}
			next.ServeHTTPC(ctx, w, r)
		})
	}
}

// UserContext copies the session user id to the "user" context key for
// handlers behind AuthenticatedFilter.
func UserContext() func(next xhandler.HandlerC) xhandler.HandlerC {
	return func(next xhandler.HandlerC) xhandler.HandlerC {
		return xhandler.HandlerFuncC(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
			session, ok := ctx.Value("session").(*sessions.Session)
			if !ok {
				log.Error("Context without valid session")
				http.Error(w, "Something went wrong", http.StatusInternalServerError)
				return
			}
			user, ok := session.Values["user"]
			if !ok {
				log.Error("Context without valid session")
				http.Error(w, "Something went wrong", http.StatusInternalServerError)
				return
			}
			ctx = context.WithValue(ctx, "user", user)
			next.ServeHTTPC(ctx, w, r)
		})
	}
}
