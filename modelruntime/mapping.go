package modelruntime

import (
	"slices"

	"github.com/kbukum/localai-stt/errors"
)

// ErrorMapping maps each unified invoke kind to the error codes an
// adapter may produce for it.
type ErrorMapping map[errors.ErrorCode][]errors.ErrorCode

// IdentityMapping maps every code to a one-element list holding itself.
func IdentityMapping(codes ...errors.ErrorCode) ErrorMapping {
	m := make(ErrorMapping, len(codes))
	for _, c := range codes {
		m[c] = []errors.ErrorCode{c}
	}
	return m
}

// Kinds returns the mapped kinds in sorted order.
func (m ErrorMapping) Kinds() []errors.ErrorCode {
	kinds := make([]errors.ErrorCode, 0, len(m))
	for k := range m {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Resolve returns the kind whose source list contains code. Kinds are
// searched in sorted order so overlapping lists resolve deterministically.
func (m ErrorMapping) Resolve(code errors.ErrorCode) (errors.ErrorCode, bool) {
	for _, kind := range m.Kinds() {
		if slices.Contains(m[kind], code) {
			return kind, true
		}
	}
	return "", false
}
