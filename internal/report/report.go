// Package report turns the results of a run into the text written to the
// audit log and echoed to the console.
//
// Records are serialized as indented, key-sorted JSON (the default) or YAML.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"photorganiser/internal/discovery"
	"photorganiser/internal/failure"
	"photorganiser/internal/metadata"
	"photorganiser/internal/mover"
	"photorganiser/internal/tagmatch"
)

// Format is the serialization used for record collections.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const indent = "    "

// ParseFormat validates a format name.
func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(value))); f {
	case FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("report format: unsupported value %q", value)
	}
}

// Record is one serialized row. Maps keep key order sorted on output.
type Record = map[string]any

// Encode serializes records with sorted keys and a four-space indent.
func Encode(records []Record, format Format) (string, error) {
	if records == nil {
		records = []Record{}
	}
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(len(indent))
		if err := enc.Encode(records); err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
		return strings.TrimRight(buf.String(), "\n"), nil
	case FormatJSON, "":
		data, err := json.MarshalIndent(records, "", indent)
		if err != nil {
			return "", fmt.Errorf("encode json: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("report format: unsupported value %q", format)
	}
}

// TagRecords converts read results.
func TagRecords(results []metadata.TagReadResult) []Record {
	out := make([]Record, 0, len(results))
	for _, r := range results {
		tags := r.Tags
		if tags == nil {
			tags = []string{}
		}
		out = append(out, Record{
			"file_path":  r.Path,
			"tags":       tags,
			"errors":     r.Stderr,
			"error_kind": string(failure.KindOf(r.Err)),
		})
	}
	return out
}

// MatchRecords converts match results. A missing token serializes as null.
func MatchRecords(matches []tagmatch.MatchResult) []Record {
	out := make([]Record, 0, len(matches))
	for _, m := range matches {
		var token any
		if m.Found {
			token = m.Token
		}
		out = append(out, Record{
			"file_path":  m.Path,
			"token":      token,
			"errors":     failure.Message(m.Err),
			"error_kind": string(failure.KindOf(m.Err)),
		})
	}
	return out
}

// MovedRecords converts successful moves.
func MovedRecords(outcomes []mover.MoveOutcome) []Record {
	out := make([]Record, 0, len(outcomes))
	for _, o := range outcomes {
		out = append(out, Record{
			"old_filepath": o.OldPath,
			"new_filepath": o.NewPath,
		})
	}
	return out
}

// FailedRecords converts failed moves.
func FailedRecords(outcomes []mover.MoveOutcome) []Record {
	out := make([]Record, 0, len(outcomes))
	for _, o := range outcomes {
		out = append(out, Record{
			"old_filepath": o.OldPath,
			"error":        failure.Message(o.Err),
			"error_kind":   string(failure.KindOf(o.Err)),
		})
	}
	return out
}

// Run is everything a finished pipeline reports on.
type Run struct {
	Root     string
	Included []discovery.FileRecord
	Excluded []discovery.FileRecord
	Tags     []metadata.TagReadResult
	Matches  []tagmatch.MatchResult
	Outcomes mover.Outcomes
}

// Sections returns the messages logged at the end of a run, in order.
func Sections(r Run, format Format) ([]string, error) {
	tags, err := Encode(TagRecords(r.Tags), format)
	if err != nil {
		return nil, err
	}
	matches, err := Encode(MatchRecords(r.Matches), format)
	if err != nil {
		return nil, err
	}
	moved, err := Encode(MovedRecords(r.Outcomes.Moved), format)
	if err != nil {
		return nil, err
	}
	failed, err := Encode(FailedRecords(r.Outcomes.Failed), format)
	if err != nil {
		return nil, err
	}

	return []string{
		fmt.Sprintf("%d files were found in or under %s.", len(r.Included), r.Root),
		fmt.Sprintf("%d files were excluded in or under %s.", len(r.Excluded), r.Root),
		"List of found files: \n" + pathList(r.Included),
		"List of excluded files: \n" + pathList(r.Excluded),
		"Tags that were read: \n\n" + tags,
		"Tags of interest were detected in these images: \n\n" + matches,
		"Moved files: \n\n" + moved,
		"Failed moves: \n\n" + failed,
	}, nil
}

func pathList(records []discovery.FileRecord) string {
	if len(records) == 0 {
		return "None"
	}
	return strings.Join(discovery.Paths(records), "\n")
}
