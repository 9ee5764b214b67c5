// Package ident provides case-insensitive identifier comparison helpers.
//
// RookScript treats map keys, variable names, scope names, host-function
// names, entry names, and local function names as case-insensitive. This
// package centralizes the normalization and comparison rules so every
// component (lexer, parser, resolver, Map) agrees on the same notion of
// identity.
package ident

import "strings"

// Normalize returns the canonical form of an identifier used for map keys
// and lookups. Normalization is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	return strings.ToLower(s)
}

// Equal reports whether a and b are the same identifier, ignoring case.
func Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Compare orders a and b case-insensitively. It returns a negative number if
// a sorts before b, a positive number if a sorts after b, and zero if they are
// the same identifier.
func Compare(a, b string) int {
	return strings.Compare(Normalize(a), Normalize(b))
}

// Contains reports whether search occurs in slice, ignoring case.
func Contains(slice []string, search string) bool {
	return Index(slice, search) >= 0
}

// Index returns the index of the first element of slice equal to search,
// ignoring case, or -1 if no element matches.
func Index(slice []string, search string) int {
	for i, s := range slice {
		if Equal(s, search) {
			return i
		}
	}
	return -1
}

// IsKeyword reports whether s matches any of keywords, ignoring case.
func IsKeyword(s string, keywords ...string) bool {
	return Contains(keywords, s)
}
