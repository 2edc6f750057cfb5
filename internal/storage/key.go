package storage

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// BuildKey namespaces an uploaded file under its folder with a millisecond
// timestamp prefix so repeated uploads of the same filename never collide.
func BuildKey(folder, filename string, now time.Time) string {
	return fmt.Sprintf("%s/%d-%s", folder, now.UnixMilli(), SanitizeFilename(filename))
}

// SanitizeFilename strips any path components and characters that have no
// business in an object key.
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimSpace(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "file"
	}
	return out
}
