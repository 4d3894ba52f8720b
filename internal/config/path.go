package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ and environment variables in a file path. Source
// locations with a scheme (sqlite://~/rfm.db) have only the part after the
// scheme expanded; network DSNs are returned with variables expanded only.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if scheme, rest, ok := strings.Cut(path, "://"); ok {
		switch scheme {
		case "csv", "file", "sqlite", "sqlite3":
			return scheme + "://" + expandLocal(rest)
		default:
			return os.ExpandEnv(path)
		}
	}

	return expandLocal(path)
}

func expandLocal(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return os.ExpandEnv(path)
}
