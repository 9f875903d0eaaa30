// Package vectormap loads static obstacle maps made of line segments.
//
// Two file formats are understood:
//
//   - text (.txt): one segment per line as "x0, y0, x1, y1"; blank lines and
//     lines starting with '#' are ignored.
//   - YAML (.yaml, .yml): a document with a name and a list of
//     [x0, y0, x1, y1] entries under "lines".
package vectormap

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdrpinto/planner/geometry"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned when a file extension is not a map format.
var ErrUnknownFormat = errors.New("unknown map format")

// Extensions lists the file extensions Load understands, in lookup order.
var Extensions = []string{".yaml", ".yml", ".txt"}

// Map is a named set of obstacle segments.
type Map struct {
	Name  string
	Lines []geometry.Segment
}

// Segments returns the obstacle segments of the map.
func (m *Map) Segments() []geometry.Segment {
	if m == nil {
		return nil
	}
	return m.Lines
}

type yamlMap struct {
	Name  string       `yaml:"name"`
	Lines [][4]float64 `yaml:"lines"`
}

// Load reads a map file, picking the format from its extension.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map %q: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return ParseYAML(name, data)
	case ".txt":
		return ParseText(name, data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// ParseYAML decodes a YAML map document. A name inside the document wins
// over the given fallback.
func ParseYAML(name string, data []byte) (*Map, error) {
	var raw yamlMap
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse map YAML: %w", err)
	}
	if raw.Name != "" {
		name = raw.Name
	}
	m := &Map{Name: name, Lines: make([]geometry.Segment, 0, len(raw.Lines))}
	for _, l := range raw.Lines {
		m.Lines = append(m.Lines, geometry.NewSegment(l[0], l[1], l[2], l[3]))
	}
	return m, nil
}

// ParseText decodes the plain "x0, y0, x1, y1" format.
func ParseText(name string, data []byte) (*Map, error) {
	m := &Map{Name: name}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(fields) != 4 {
			return nil, fmt.Errorf("line %d: expected 4 values, got %d", lineNo, len(fields))
		}
		var v [4]float64
		for i, f := range fields {
			x, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			v[i] = x
		}
		m.Lines = append(m.Lines, geometry.NewSegment(v[0], v[1], v[2], v[3]))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// Loader resolves map names against a directory.
type Loader struct {
	// Dir is joined with relative names. Empty means the working directory.
	Dir string
}

// Load resolves name and loads the map. A name without an extension is
// tried with each of Extensions in turn.
func (l Loader) Load(name string) (*Map, error) {
	path := name
	if !filepath.IsAbs(path) && l.Dir != "" {
		path = filepath.Join(l.Dir, path)
	}
	if filepath.Ext(path) != "" {
		return Load(path)
	}
	for _, ext := range Extensions {
		candidate := path + ext
		if _, err := os.Stat(candidate); err == nil {
			return Load(candidate)
		}
	}
	return nil, fmt.Errorf("map %q not found in %q: %w", name, l.Dir, os.ErrNotExist)
}
