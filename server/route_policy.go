package server

import (
	"strings"
)

// RouteClass is how the guard treats a request path.
type RouteClass int

const (
	ClassExempt RouteClass = iota
	ClassPublic
	ClassAuthenticated
	ClassVerifiedEmail
	ClassAdmin
)

func (c RouteClass) String() string {
	switch c {
	case ClassExempt:
		return "exempt"
	case ClassPublic:
		return "public"
	case ClassVerifiedEmail:
		return "verified-email"
	case ClassAdmin:
		return "admin"
	default:
		return "authenticated"
	}
}

// RoutePolicy lists the path prefixes for each guarded route class. A prefix matches the
// exact path or any sub-path below it, except "/" which only matches itself.
type RoutePolicy struct {
	Exempt        []string
	Public        []string
	VerifiedEmail []string
	Admin         []string
	// AuthOnlyPublic are public routes a signed-in user is sent away from
	AuthOnlyPublic []string
}

// DefaultRoutePolicy is the recipe box routing table.
func DefaultRoutePolicy() RoutePolicy {
	return RoutePolicy{
		Exempt:         []string{RouteStaticPrefix, RouteAPIPrefix, RouteOAuthPrefix, RouteHealth},
		Public:         []string{RouteHome, RouteLogin, RouteSignup, RouteForgotPassword, RouteResetPassword, RouteVerifyEmail},
		VerifiedEmail:  []string{RouteDashboard, RouteProjects, RouteRecipes, RouteCommunity},
		Admin:          []string{RouteAdmin},
		AuthOnlyPublic: []string{RouteLogin, RouteSignup},
	}
}

// Classify resolves the class of path. Paths containing a dot are treated as files and
// are exempt.
func (p RoutePolicy) Classify(path string) RouteClass {
	if strings.Contains(path, ".") || matchesAny(path, p.Exempt) {
		return ClassExempt
	}
	if matchesAny(path, p.Public) {
		return ClassPublic
	}
	if matchesAny(path, p.Admin) {
		return ClassAdmin
	}
	if matchesAny(path, p.VerifiedEmail) {
		return ClassVerifiedEmail
	}
	return ClassAuthenticated
}

func (p RoutePolicy) redirectsSignedIn(path string) bool {
	return matchesAny(path, p.AuthOnlyPublic)
}

func matchesAny(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if matchesPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func matchesPrefix(path, prefix string) bool {
	if prefix == "/" {
		return path == "/"
	}
	prefix = strings.TrimSuffix(prefix, "/")
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
