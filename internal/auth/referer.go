package auth

import "strings"

// RefererGate applies the anti-hotlinking check for direct-serve preview
// routes. Matching is substring-based over configured origins and in-app
// page names, and an absent referer is allowed so direct navigation and
// bookmarks keep working. That weakens the hotlinking guarantee and is a
// documented trade-off: this gate is a heuristic, not a security boundary.
type RefererGate struct {
	origins []string
	pages   []string
}

// NewRefererGate builds the gate from configured allow-lists. Blank
// entries are dropped so a blank entry can never match everything.
func NewRefererGate(origins, pages []string) *RefererGate {
	return &RefererGate{
		origins: compact(origins),
		pages:   compact(pages),
	}
}

// Allow reports whether the declared referer passes the gate.
func (g *RefererGate) Allow(referer string) bool {
	if referer == "" {
		return true
	}
	for _, origin := range g.origins {
		if strings.Contains(referer, origin) {
			return true
		}
	}
	for _, page := range g.pages {
		if strings.Contains(referer, page) {
			return true
		}
	}
	return false
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
