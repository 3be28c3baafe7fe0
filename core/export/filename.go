package export

import (
	"strings"
)

const (
	separator       = "_"
	defaultFallback = "document"
)

// Part is one free-text filename component and the token used when it is blank.
type Part struct {
	Value    string
	Fallback string
}

// Filename joins the sanitized parts and suffix with "_" and adds ".pdf".
// Every run of characters outside [A-Za-z0-9-] becomes a single "_"; a part that is blank,
// or has no letter or digit left, is replaced by its fallback.
func Filename(suffix string, parts ...Part) string {
	tokens := make([]string, 0, len(parts)+1)
	for _, p := range parts {
		tok := sanitize(p.Value)
		if !meaningful(tok) {
			tok = sanitize(p.Fallback)
		}
		if !meaningful(tok) {
			tok = defaultFallback
		}
		tokens = append(tokens, tok)
	}
	if s := sanitize(suffix); meaningful(s) {
		tokens = append(tokens, s)
	}
	if len(tokens) == 0 {
		tokens = append(tokens, defaultFallback)
	}
	return strings.Join(tokens, separator) + ".pdf"
}

// ProfileFilename gives e.g. "Jane_O_Brien_Profile.pdf".
func ProfileFilename(firstName, lastName string) string {
	return Filename("Profile",
		Part{Value: firstName, Fallback: "Student"},
		Part{Value: lastName, Fallback: "Unnamed"},
	)
}

// ApplicationFilename gives e.g. "University_of_Cape_Town_Doe_Application.pdf".
func ApplicationFilename(universityName, lastName string) string {
	return Filename("Application",
		Part{Value: universityName, Fallback: "University"},
		Part{Value: lastName, Fallback: "Student"},
	)
}

func sanitize(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	b.Grow(len(s))
	prevSep := false
	for _, r := range s {
		if !isSafe(r) {
			r = '_'
		}
		if r == '_' {
			if prevSep {
				continue
			}
			prevSep = true
		} else {
			prevSep = false
		}
		b.WriteRune(r)
	}
	return strings.Trim(b.String(), separator)
}

func isSafe(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '-'
}

func meaningful(tok string) bool {
	for _, r := range tok {
		if r != '_' && r != '-' {
			return true
		}
	}
	return false
}
