package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Meta is the optional YAML frontmatter of a SKILL.md.
type Meta struct {
	Name        string `yaml:"name" json:"name,omitempty"`
	Description string `yaml:"description" json:"description,omitempty"`
}

var frontmatterDelim = []byte("---")

// ReadMeta reads the frontmatter of the marker file at path.
func ReadMeta(path string) (Meta, error) {
	file, err := os.Open(path)
	if err != nil {
		return Meta{}, fmt.Errorf("open skill marker: %w", err)
	}
	defer file.Close()

	return ParseMeta(file)
}

// ParseMeta parses frontmatter delimited by "---" lines at the top of r.
// Content without frontmatter yields a zero Meta.
func ParseMeta(r io.Reader) (Meta, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Meta{}, fmt.Errorf("read skill marker: %w", err)
	}

	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	lines := bytes.Split(data, []byte("\n"))
	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), frontmatterDelim) {
		return Meta{}, nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), frontmatterDelim) {
			end = i
			break
		}
	}
	if end < 0 {
		return Meta{}, fmt.Errorf("unterminated frontmatter")
	}

	var m Meta
	if err := yaml.Unmarshal(bytes.Join(lines[1:end], []byte("\n")), &m); err != nil {
		return Meta{}, fmt.Errorf("decode frontmatter: %w", err)
	}
	return m, nil
}
