package catalog

import (
	"fmt"
	"strings"
)

// ConfigurationError reports an unusable topic selection.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// ValidationError collects every structural problem found in the topic
// records. Source names the file the records came from, when known.
type ValidationError struct {
	Source   string
	Problems []string
}

func (e *ValidationError) Error() string {
	prefix := "catalog validation failed"
	if e.Source != "" {
		prefix = fmt.Sprintf("%s (%s)", prefix, e.Source)
	}
	return fmt.Sprintf("%s:\n  - %s", prefix, strings.Join(e.Problems, "\n  - "))
}
