// Package jsonfile parses JSON input for the `import --format json`
// command: a flat object of name to string value.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/cbwinslow/lazylocker/pkg/envfile"
)

// Parse reads a flat JSON object from r and returns its entries
// sorted by name, reusing envfile.Entry so both import formats feed
// the same downstream bulk-add path.
func Parse(r io.Reader) ([]envfile.Entry, error) {
	var raw map[string]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("jsonfile: decode: %w", err)
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]envfile.Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, envfile.Entry{Name: name, Value: raw[name]})
	}
	return entries, nil
}
