package router

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

// checkShadowing fails when a route is unreachable because a route mounted
// before it matches its paths, e.g. "/a/{pk}/" ahead of "/a/b/". mux tries
// routes in registration order, so the check replays that order on a
// scratch router.
func checkShadowing(routes []Route) error {
	scratch := mux.NewRouter()
	for _, rt := range routes {
		scratch.Handle(rt.Pattern, http.NotFoundHandler()).Name(rt.Name)
	}
	for _, rt := range routes {
		req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: examplePath(rt.Pattern)}}
		var match mux.RouteMatch
		if !scratch.Match(req, &match) || match.Route == nil {
			continue
		}
		if winner := match.Route.GetName(); winner != rt.Name {
			return errors.New(errors.CodeRouteConflict, fmt.Sprintf("route '%s' (%s) is shadowed by route '%s'", rt.Name, rt.Pattern, winner))
		}
	}
	return nil
}

// examplePath fills every variable of a mux pattern with "x".
func examplePath(pattern string) string {
	var b strings.Builder
	depth := 0
	for _, c := range pattern {
		switch {
		case c == '{':
			if depth == 0 {
				b.WriteByte('x')
			}
			depth++
		case c == '}':
			depth--
		case depth == 0:
			b.WriteRune(c)
		}
	}
	return b.String()
}
