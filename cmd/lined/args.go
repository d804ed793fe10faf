package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"fortio.org/safecast"
)

// parseNumber parses a decimal line number or byte position. Zero and
// negative values are passed through; the buffer decides what they address.
func parseNumber(name, arg string) (int, error) {
	v, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, arg, err)
	}
	n, err := safecast.Conv[int](v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, arg, err)
	}
	return n, nil
}

func (s *session) writeJSON(v any) error {
	enc := json.NewEncoder(s.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
