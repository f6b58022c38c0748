package tbgate

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Reverser keeps track of named patterns and allows building URLs.
type Reverser struct {
	pats map[string]routePattern
}

// routePattern is a parsed route pattern: its literal segments interleaved
// with wildcards, in order.
type routePattern struct {
	segments []routeSegment
}

type routeSegment struct {
	literal  string
	wildcard bool
	multi    bool // a "{name...}" wildcard, only valid as the last segment
}

// NewReverser inits the reverser.
func NewReverser() *Reverser {
	return &Reverser{make(map[string]routePattern)}
}

// Reverse reverses the named pattern into a url, substituting one value per
// wildcard in order of appearance.
func (r *Reverser) Reverse(name string, vals ...string) (string, error) {
	pat, ok := r.pats[name]
	if !ok {
		return "", fmt.Errorf("no pattern named: %q, got: %v", name, lo.Keys(r.pats)) //nolint:goerr113
	}

	var sb strings.Builder
	for _, seg := range pat.segments {
		sb.WriteString("/")

		if !seg.wildcard {
			sb.WriteString(seg.literal)
			continue
		}

		if len(vals) == 0 {
			return "", fmt.Errorf("pattern %q: no value left for wildcard %q", name, seg.literal) //nolint:goerr113
		}

		sb.WriteString(vals[0])
		vals = vals[1:]
	}

	if len(vals) > 0 {
		return "", fmt.Errorf("pattern %q: %d values left after filling all wildcards", name, len(vals)) //nolint:goerr113
	}

	return sb.String(), nil
}

// Named is a convenience method that panics if naming the pattern fails.
func (r *Reverser) Named(name, str string) string {
	str, err := r.NamedPattern(name, str)
	if err != nil {
		panic("tbgate: " + err.Error())
	}

	return str
}

// NamedPattern will parse 'str' as a route pattern while returning it as well.
func (r *Reverser) NamedPattern(name, str string) (string, error) {
	if _, exists := r.pats[name]; exists {
		return str, fmt.Errorf("pattern with name %q already exists", name) //nolint:goerr113
	}

	pat, err := parseRoutePattern(str)
	if err != nil {
		return str, fmt.Errorf("failed to parse pattern: %w", err)
	}

	r.pats[name] = pat

	return str, nil
}

// parseRoutePattern parses the "[METHOD ]/seg/{wild}/..." shape of standard
// library route patterns into its segments.
func parseRoutePattern(str string) (routePattern, error) {
	path := str
	if idx := strings.Index(path, " "); idx >= 0 {
		path = strings.TrimSpace(path[idx+1:])
	}

	if !strings.HasPrefix(path, "/") {
		return routePattern{}, fmt.Errorf("pattern %q: path must start with a slash", str) //nolint:goerr113
	}

	var pat routePattern
	for i, part := range strings.Split(strings.TrimPrefix(path, "/"), "/") {
		seg := routeSegment{literal: part}

		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			seg.wildcard = true
			seg.literal = strings.TrimSuffix(strings.TrimPrefix(part, "{"), "}")

			if strings.HasSuffix(seg.literal, "...") {
				seg.literal = strings.TrimSuffix(seg.literal, "...")
				seg.multi = true
			}
		}

		if pat.segments != nil && pat.segments[len(pat.segments)-1].multi {
			return routePattern{}, fmt.Errorf("pattern %q: segment %d follows a multi wildcard", str, i) //nolint:goerr113
		}

		pat.segments = append(pat.segments, seg)
	}

	return pat, nil
}
