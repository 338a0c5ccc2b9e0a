package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const healthPath = "/health"

// routeSet matches request paths against registered route patterns.
// A ":name" segment matches any single segment and "*name" matches the rest.
type routeSet [][]string

func newRouteSet(routes gin.RoutesInfo) routeSet {
	var set routeSet
	seen := make(map[string]bool)
	for _, r := range routes {
		if seen[r.Path] {
			continue
		}
		seen[r.Path] = true
		set = append(set, strings.Split(r.Path, "/"))
	}
	return set
}

func (s routeSet) match(path string) bool {
	segments := strings.Split(path, "/")
	for _, pattern := range s {
		if matchSegments(pattern, segments) {
			return true
		}
	}
	return false
}

func matchSegments(pattern, segments []string) bool {
	for i, p := range pattern {
		if strings.HasPrefix(p, "*") {
			return true
		}
		if i >= len(segments) {
			return false
		}
		if strings.HasPrefix(p, ":") {
			if segments[i] == "" {
				return false
			}
			continue
		}
		if p != segments[i] {
			return false
		}
	}
	return len(pattern) == len(segments)
}

// frontDoor answers health checks and redirects paths missing their
// trailing slash before anything else sees the request.
type frontDoor struct {
	next   http.Handler
	routes routeSet
}

func newFrontDoor(engine *gin.Engine) *frontDoor {
	return &frontDoor{next: engine, routes: newRouteSet(engine.Routes())}
}

func (f *frontDoor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == healthPath {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
		return
	}

	if !strings.HasSuffix(path, "/") && !f.routes.match(path) && f.routes.match(path+"/") {
		target := path + "/"
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusMovedPermanently)
		return
	}

	f.next.ServeHTTP(w, r)
}
