package controller

import (
	"context"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"yatube/view"
)

func serverError(w http.ResponseWriter, err error) {
	log.Errorf("Server error: %s", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func notFound(w http.ResponseWriter) {
	http.Error(w, "Not Found", http.StatusNotFound)
}

// urlParam reads a path parameter captured by the router.
func urlParam(ctx context.Context, name string) (string, bool) {
	params, ok := ctx.Value("urlparams").(map[string]string)
	if !ok {
		return "", false
	}
	v, ok := params[name]
	return v, ok
}

// sessionUser reads the authenticated user id placed in the context by the
// UserContext middleware.
func sessionUser(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value("user").(string)
	return uid, ok && uid != ""
}

// pageParam reads the ?page= query parameter. Anything absent or
// unparsable is page 1.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func render(rd view.Renderer, w http.ResponseWriter, name string, data *view.Data) {
	if err := rd.Render(w, name, data); err != nil {
		serverError(w, err)
	}
}
