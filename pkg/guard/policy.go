package guard

import (
	"strings"

	"github.com/Lalith0024/unistay/pkg/models"
)

// Mode selects how a route is guarded.
type Mode int

const (
	ModeOpen       Mode = iota // no evaluation, e.g. health checks and the login API
	ModePublic                 // signed-out views, authenticated sessions are sent to their landing
	ModeRestricted             // authenticated-only views
)

func (m Mode) String() string {
	switch m {
	case ModePublic:
		return "public"
	case ModeRestricted:
		return "restricted"
	default:
		return "open"
	}
}

// Policy is the access rule attached to a path and method.
type Policy struct {
	Mode       Mode
	Constraint models.Constraint // only read in ModeRestricted
}

func OpenPolicy() Policy {
	return Policy{Mode: ModeOpen}
}

func PublicPolicy() Policy {
	return Policy{Mode: ModePublic}
}

// RestrictedPolicy guards a route with the given role constraint.
// Use models.NoConstraint() to admit any authenticated session.
func RestrictedPolicy(c models.Constraint) Policy {
	return Policy{Mode: ModeRestricted, Constraint: c}
}

// SetPolicy defines the policy for a resource path and HTTP method.
// Use "*" as the method to apply the policy to all methods for that path.
func (g *Guard) SetPolicy(resourcePath string, method string, policy Policy) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !strings.HasPrefix(resourcePath, "/") {
		resourcePath = "/" + resourcePath
	}
	if _, ok := g.Policies[resourcePath]; !ok {
		g.Policies[resourcePath] = make(map[string]Policy)
	}
	g.Policies[resourcePath][strings.ToUpper(method)] = policy
}

// FindMatchingPolicy finds the most specific policy for a given resource path and method.
// It prioritizes exact method matches over wildcard method matches, and
// falls back to an open policy when nothing matches.
func (g *Guard) FindMatchingPolicy(resourcePath, method string) (Policy, bool) {
	method = strings.ToUpper(method)
	pathsToCheck := buildPrefixes(resourcePath)

	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, p := range pathsToCheck {
		methodPolicies, ok := g.Policies[p]
		if !ok {
			continue
		}
		if policy, ok := methodPolicies[method]; ok {
			g.log.Debug("guard matched policy for path", "path", p, "method", method, "mode", policy.Mode)
			return policy, true
		}
		if policy, ok := methodPolicies["*"]; ok {
			g.log.Debug("guard matched wildcard policy for path", "path", p, "mode", policy.Mode)
			return policy, true
		}
	}

	return OpenPolicy(), false
}

// buildPrefixes returns a list of paths to check from most specific to least specific.
// For "/a/b/c" it returns ["/a/b/c", "/a/b", "/a", "/"].
func buildPrefixes(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return []string{"/"}
	}

	segments := strings.Split(trimmed, "/")
	prefixes := make([]string, 0, len(segments)+1)
	for i := len(segments); i > 0; i-- {
		prefixes = append(prefixes, "/"+strings.Join(segments[:i], "/"))
	}
	return append(prefixes, "/")
}
