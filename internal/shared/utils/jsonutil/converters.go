// Package jsonutil provides JSON conversion helpers.
package jsonutil

import (
	"fmt"
	"strings"
)

// UintSliceToJSONArray serializes a slice of uints as a JSON array string.
// Returns "[]" for empty or nil slices, so the stored column is never NULL.
func UintSliceToJSONArray(ids []uint) string {
	if len(ids) == 0 {
		return "[]"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
