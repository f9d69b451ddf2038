// Package utils contains small helper functions used across the project.
package utils

import (
	"encoding/json"
	"io"
	"strings"
)

// PrintJSON writes v to w as indented JSON.
func PrintJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// TrimmedOrNil trims s and maps blank values to nil, so optional text
// columns store NULL instead of "".
func TrimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// SplitList splits a comma separated list, trimming blanks and
// dropping duplicates while keeping order.
func SplitList(s string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		out = append(out, part)
	}
	return out
}
