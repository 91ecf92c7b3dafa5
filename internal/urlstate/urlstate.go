// Package urlstate maps filter criteria to and from a shareable query
// string. Encode and Decode are exact inverses for every representable
// criteria value, so a pasted link restores the same search.
package urlstate

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/openrevue/revue-cli/internal/filter"
)

// Encode serializes the full criteria as a percent-encoded query string with
// one key per non-empty dimension, in stable order: query, author,
// dateRange, volume, type, category. The whole store is always serialized;
// partial merges from stale snapshots never happen.
func Encode(c filter.Criteria) string {
	var b strings.Builder
	for _, dim := range filter.Dimensions {
		value := c.Get(dim)
		if value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(dim.String())
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	}
	return b.String()
}

// Decode parses a query string back into criteria, defaulting absent keys to
// empty. It accepts a bare query string, one with a leading "?", or a full
// URL whose query carries the state. Unknown keys are ignored; invalid
// values for known keys are an error.
func Decode(raw string) (filter.Criteria, error) {
	raw = strings.TrimSpace(raw)
	if idx := strings.IndexByte(raw, '?'); idx >= 0 {
		raw = raw[idx+1:]
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return filter.Criteria{}, fmt.Errorf("parse query string: %w", err)
	}

	var c filter.Criteria
	for _, dim := range filter.Dimensions {
		value := values.Get(dim.String())
		if value == "" {
			continue
		}
		if err := c.Set(dim, value); err != nil {
			return filter.Criteria{}, err
		}
	}
	return c, nil
}
