package domain

import "unique"

// InternedString is a comparable handle to a canonical string. Architectures and
// volume names repeat across every module instance, so keys and indexes hold these.
// The zero value is the empty string.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString interns s.
func NewInternedString(s string) InternedString {
	return InternedString{h: unique.Make(s)}
}

func (s InternedString) String() string {
	if s == (InternedString{}) {
		return ""
	}
	return s.h.Value()
}
