package sqlite

import (
	"strings"
)

// placeholder is the SQLite bind parameter.
const placeholder = "?"

// placeholders returns n comma-separated bind parameters.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(placeholder+", ", n-1) + placeholder
}
