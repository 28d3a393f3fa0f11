package catalog

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter returns a catalog holding only the skills whose names match one of
// the include patterns (all skills when include is empty) and none of the
// exclude patterns. Patterns use doublestar glob syntax.
func (c *Catalog) Filter(include, exclude []string) (*Catalog, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return c, nil
	}

	for _, p := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid skill pattern %q", p)
		}
	}

	filtered := &Catalog{Root: c.Root}
	for _, id := range c.IDs {
		if len(include) > 0 && !matchAny(include, id) {
			continue
		}
		if matchAny(exclude, id) {
			continue
		}
		filtered.IDs = append(filtered.IDs, id)
	}
	return filtered, nil
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		// Patterns are validated by Filter, so Match cannot fail here.
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}
