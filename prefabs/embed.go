package prefabs

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DiskDir is checked before the embedded copies, so specs and scripts can
// be edited without rebuilding. Relative paths resolve against the
// working directory.
var DiskDir = "prefabs"

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// LoadScript returns a tengo script by name. "sprinter.tengo",
// "scripts/sprinter.tengo" and "prefabs/scripts/sprinter.tengo" all
// resolve to the same file.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

//go:embed *.yaml
var PrefabsFS embed.FS

// Load returns a spec file by name, preferring the on-disk copy.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

// ModTime reports the modification time of the on-disk copy, if any.
func ModTime(name string) (time.Time, bool) {
	clean := cleanPrefabPath(name)
	info, err := os.Stat(diskPath(clean))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Archetypes lists the embedded actor specs by archetype name.
func Archetypes() []string {
	names, err := fs.Glob(PrefabsFS, "*.yaml")
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, ArchetypeOf(n))
	}
	sort.Strings(out)
	return out
}

// ArchetypeOf maps a spec path to its archetype name: the base file name
// without extension.
func ArchetypeOf(path string) string {
	base := filepath.Base(filepath.ToSlash(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "prefabs/scripts/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return fmt.Sprintf("scripts/%s", s)
}

func diskPath(clean string) string {
	return filepath.Join(DiskDir, filepath.FromSlash(clean))
}
