// Package guard decides, from the requested path and the viewer's session alone, whether
// a page may be served or where the browser must be sent instead.
package guard

import "strings"

type Access int

const (
	Public Access = iota
	Authenticated
	AdminOnly
)

func (a Access) String() string {
	switch a {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case AdminOnly:
		return "admin-only"
	default:
		return "unknown"
	}
}

const (
	LoginPath   = "/login"
	LandingPath = "/jobs"
	DefaultPath = "/"
)

// Viewer is the part of a session the guard looks at.
type Viewer interface {
	IsAuthenticated() bool
	IsAdmin() bool
}

type Route struct {
	Pattern string
	Access  Access
}

var Routes = []Route{
	{Pattern: "/login", Access: Public},
	{Pattern: "/", Access: Authenticated},
	{Pattern: "/jobs", Access: Authenticated},
	{Pattern: "/apply/:id", Access: Authenticated},
	{Pattern: "/jobs/:jobId/applications/:applicationId", Access: Authenticated},
	{Pattern: "/logout", Access: Authenticated},
	{Pattern: "/add-job", Access: AdminOnly},
	{Pattern: "/edit-job/:id", Access: AdminOnly},
	{Pattern: "/delete-job/:id", Access: AdminOnly},
	{Pattern: "/admin", Access: AdminOnly},
}

type Decision struct {
	Allowed    bool
	RedirectTo string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func redirect(path string) Decision {
	return Decision{RedirectTo: path}
}

// Lookup finds the route serving path.
func Lookup(path string) (Route, bool) {
	for _, route := range Routes {
		if matches(route.Pattern, path) {
			return route, true
		}
	}
	return Route{}, false
}

func Resolve(path string, viewer Viewer) Decision {
	route, found := Lookup(path)
	if !found {
		if viewer.IsAuthenticated() {
			return redirect(DefaultPath)
		}
		return redirect(LoginPath)
	}

	switch route.Access {
	case Public:
		return allow()
	case Authenticated:
		if !viewer.IsAuthenticated() {
			return redirect(LoginPath)
		}
		return allow()
	default:
		if !viewer.IsAuthenticated() {
			return redirect(LoginPath)
		}
		if !viewer.IsAdmin() {
			return redirect(LandingPath)
		}
		return allow()
	}
}

// matches compares path segment by segment; ":name" segments match any non-empty value.
func matches(pattern, path string) bool {
	patternSegments := splitPath(pattern)
	pathSegments := splitPath(path)
	if len(patternSegments) != len(pathSegments) {
		return false
	}

	for i, segment := range patternSegments {
		if strings.HasPrefix(segment, ":") {
			if pathSegments[i] == "" {
				return false
			}
			continue
		}
		if segment != pathSegments[i] {
			return false
		}
	}
	return true
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
