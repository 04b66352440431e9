// Package tagmatch extracts the token of interest from a file's tag text.
package tagmatch

import (
	"fmt"
	"regexp"

	"photorganiser/internal/metadata"
	"photorganiser/internal/modes"
)

// yearPattern matches a "date" token followed, anywhere later in the same
// tag, by four digits. The greedy gap captures the last four-digit run.
var yearPattern = regexp.MustCompile(`(?i)date.*(\d{4})`)

// MatchResult is the routing decision input for one file.
type MatchResult struct {
	Path  string
	Token string
	Found bool
	// Err carries the read failure for the file, if any.
	Err error
}

func patternFor(mode modes.SearchMode) (*regexp.Regexp, error) {
	switch mode {
	case modes.SearchYear:
		return yearPattern, nil
	default:
		return nil, fmt.Errorf("%w: tag search %q", modes.ErrUnsupported, mode)
	}
}

// Extract scans tags in order and returns the token from the first tag that
// matches; later tags are ignored.
func Extract(tags []string, mode modes.SearchMode) (string, bool, error) {
	pattern, err := patternFor(mode)
	if err != nil {
		return "", false, err
	}
	for _, tag := range tags {
		if m := pattern.FindStringSubmatch(tag); m != nil {
			return m[1], true, nil
		}
	}
	return "", false, nil
}

// Match produces one MatchResult per read result, in input order.
func Match(results []metadata.TagReadResult, mode modes.SearchMode) ([]MatchResult, error) {
	if _, err := patternFor(mode); err != nil {
		return nil, err
	}
	out := make([]MatchResult, 0, len(results))
	for _, r := range results {
		token, found, _ := Extract(r.Tags, mode)
		out = append(out, MatchResult{Path: r.Path, Token: token, Found: found, Err: r.Err})
	}
	return out, nil
}
