// Package modes holds the closed selector types accepted on the command line.
//
// Each selector is parsed once at the CLI boundary; downstream packages take
// the typed value and never re-validate strings.
package modes

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnsupported marks a selector value outside its closed set.
var ErrUnsupported = errors.New("unsupported selector value")

// MetaType selects the embedded metadata schema.
type MetaType string

// TagType selects the tag within the metadata schema.
type TagType string

// SearchMode selects what is extracted from matching tags.
type SearchMode string

const (
	MetaIPTC     MetaType   = "IPTC"
	TagKeywords  TagType    = "KEYWORDS"
	SearchYear   SearchMode = "YEAR"
	flagTypeName            = "string"
)

var (
	metaTypes   = []MetaType{MetaIPTC}
	tagTypes    = []TagType{TagKeywords}
	searchModes = []SearchMode{SearchYear}
)

func canonical(value string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(value))
}

// ParseMetaType accepts any casing of a known meta type.
func ParseMetaType(value string) (MetaType, error) {
	v := MetaType(canonical(value))
	for _, known := range metaTypes {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: meta type %q (allowed: %s)", ErrUnsupported, value, joinValues(metaTypes))
}

// ParseTagType accepts any casing of a known tag type.
func ParseTagType(value string) (TagType, error) {
	v := TagType(canonical(value))
	for _, known := range tagTypes {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: tag type %q (allowed: %s)", ErrUnsupported, value, joinValues(tagTypes))
}

// ParseSearchMode accepts any casing of a known search mode.
func ParseSearchMode(value string) (SearchMode, error) {
	v := SearchMode(canonical(value))
	for _, known := range searchModes {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: tag search %q (allowed: %s)", ErrUnsupported, value, joinValues(searchModes))
}

func (m MetaType) String() string   { return string(m) }
func (t TagType) String() string    { return string(t) }
func (s SearchMode) String() string { return string(s) }

// Set implements pflag.Value.
func (m *MetaType) Set(value string) error {
	parsed, err := ParseMetaType(value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Set implements pflag.Value.
func (t *TagType) Set(value string) error {
	parsed, err := ParseTagType(value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Set implements pflag.Value.
func (s *SearchMode) Set(value string) error {
	parsed, err := ParseSearchMode(value)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (m *MetaType) Type() string   { return flagTypeName }
func (t *TagType) Type() string    { return flagTypeName }
func (s *SearchMode) Type() string { return flagTypeName }

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
