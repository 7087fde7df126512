package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kralicky/twic"
)

// parsePath parses a dot-separated path expression such as
// "users[0].name" into a twic.Path. A leading key need not be preceded by
// a dot; every subsequent key does. "[N]" denotes a vector index and may
// appear directly after a key or after another index, with no separating
// dot (matching normal property-path notation).
func parsePath(expr string) (twic.Path, error) {
	var path twic.Path
	i := 0
	n := len(expr)
	expectKey := true
	for i < n {
		switch {
		case expr[i] == '.':
			if expectKey {
				return nil, fmt.Errorf("unexpected '.' at offset %d", i)
			}
			i++
			expectKey = true
		case expr[i] == '[':
			end := strings.IndexByte(expr[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("unterminated '[' at offset %d", i)
			}
			end += i
			idxStr := expr[i+1 : end]
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, fmt.Errorf("invalid index %q at offset %d", idxStr, i+1)
			}
			path = append(path, twic.Index(idx))
			i = end + 1
			expectKey = false
		default:
			if !expectKey {
				return nil, fmt.Errorf("expected '.' before key at offset %d", i)
			}
			start := i
			for i < n && expr[i] != '.' && expr[i] != '[' {
				i++
			}
			if i == start {
				return nil, fmt.Errorf("empty key at offset %d", start)
			}
			path = append(path, twic.Key(expr[start:i]))
			expectKey = false
		}
	}
	if expectKey && len(path) > 0 {
		return nil, fmt.Errorf("path ends with trailing '.'")
	}
	return path, nil
}
