package system

import (
	"path/filepath"
	"strings"
)

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
