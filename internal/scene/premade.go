package scene

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed premade/*.txt
var premadeFS embed.FS

// PremadeNames lists the embedded scenes in sorted order.
func PremadeNames() []string {
	files, err := premadeFS.ReadDir("premade")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(f.Name(), ".txt"))
	}
	sort.Strings(names)
	return names
}

// Premade parses the embedded scene with the given name.
func Premade(name string, dt float64) ([]Entry, error) {
	data, err := premadeFS.ReadFile(path.Join("premade", name+".txt"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScene, name)
	}
	entries, err := Parse(bytes.NewReader(data), dt)
	if err != nil {
		return nil, fmt.Errorf("premade %s: %w", name, err)
	}
	return entries, nil
}

// Resolve loads name as a premade scene, or as a file path when no premade
// scene matches.
func Resolve(name string, dt float64) ([]Entry, error) {
	for _, n := range PremadeNames() {
		if n == name {
			return Premade(name, dt)
		}
	}
	return LoadFile(name, dt)
}
