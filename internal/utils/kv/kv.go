package kv

import (
	"fmt"
	"regexp"
	"strings"
)

var keyRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// ParseSpecs parses `key=value` specs into a map, used for targeting
// criteria flags. Keys must be non-empty identifiers, values may be
// anything including empty.
func ParseSpecs(specs []string) (map[string]string, error) {
	criteria := make(map[string]string, len(specs))

	for _, spec := range specs {
		if spec == "" {
			return nil, fmt.Errorf("criteria spec cannot be empty")
		}

		key, value, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("criteria spec %q must be key=value", spec)
		}
		if !isValidKey(key) {
			return nil, fmt.Errorf("invalid criteria key %q", key)
		}

		criteria[key] = value
	}

	return criteria, nil
}

// MergeMaps merges two criteria maps, the override map winning on
// conflicting keys.
func MergeMaps(base map[string]string, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return map[string]string{}
	}

	merged := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}

	return merged
}

func isValidKey(k string) bool {
	return keyRegexp.MatchString(k)
}
