package skills

import (
	"sort"
	"strings"
)

// aliases maps lower-cased spellings to canonical names. Built from the
// vocabulary plus spellings that only show up in metadata (e.g. GitHub languages).
var aliases = map[string]string{
	"golang":      "Go",
	"go lang":     "Go",
	"shell":       "Shell/Bash",
	"bash":        "Shell/Bash",
	"shellscript": "Shell/Bash",
	"objective-c": "Objective-C",
	"objc":        "Objective-C",
	"c#":          "C#",
	"csharp":      "C#",
	"c++":         "C++",
	"cpp":         "C++",
	"k8s":         "Kubernetes",
	"nodejs":      "Node.js",
	"postgres":    "PostgreSQL",
}

var byCanonical = map[string]*Term{}

func init() {
	for _, list := range [][]Term{Languages, Frameworks} {
		for i := range list {
			term := &list[i]
			byCanonical[term.Canonical] = term
			aliases[strings.ToLower(term.Canonical)] = term.Canonical
			for _, s := range term.Surfaces {
				aliases[strings.ToLower(s)] = term.Canonical
			}
		}
	}
}

// Canonical normalizes a skill name to its canonical form.
// Unknown names are trimmed and returned with their original casing.
func Canonical(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	if canonical, ok := aliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// CanonicalSet canonicalizes, de-duplicates and sorts names.
func CanonicalSet(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		c := Canonical(n)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Surfaces returns every spelling that counts as textual evidence for canonical.
// Names outside the vocabulary yield themselves.
func Surfaces(canonical string) []string {
	term, ok := byCanonical[Canonical(canonical)]
	if !ok {
		return []string{canonical}
	}
	return append([]string(nil), term.Surfaces...)
}
