package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Filter selects topics by name. At most one of Include and Exclude may be
// set. Names are compared after NormalizeName.
type Filter struct {
	Include []string
	Exclude []string
}

func (f Filter) check() error {
	if len(f.Include) > 0 && len(f.Exclude) > 0 {
		return &ConfigurationError{Reason: "include and exclude cannot be used together"}
	}
	return nil
}

func (f Filter) apply(topics []*Topic) []*Topic {
	switch {
	case len(f.Include) > 0:
		want := nameSet(f.Include)
		var out []*Topic
		for _, t := range topics {
			if want[t.Name] {
				out = append(out, t)
			}
		}
		return out
	case len(f.Exclude) > 0:
		skip := nameSet(f.Exclude)
		var out []*Topic
		for _, t := range topics {
			if !skip[t.Name] {
				out = append(out, t)
			}
		}
		return out
	default:
		return topics
	}
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[NormalizeName(n)] = true
	}
	return set
}

var lower = cases.Lower(language.Und)

// NormalizeName converts a topic name to its snake_case identifier:
// "Infrastructure as Code" and "InfrastructureAsCode" both become
// "infrastructure_as_code".
func NormalizeName(name string) string {
	s := norm.NFKC.String(strings.TrimSpace(name))
	runes := []rune(s)

	var b strings.Builder
	for i, r := range runes {
		switch {
		case unicode.IsSpace(r) || r == '-' || r == '_':
			b.WriteRune('_')
			continue
		case unicode.IsUpper(r) && i > 0:
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteRune('_')
			}
		}
		b.WriteRune(r)
	}

	out := lower.String(b.String())
	for strings.Contains(out, "__") {
		out = strings.ReplaceAll(out, "__", "_")
	}
	return strings.Trim(out, "_")
}
