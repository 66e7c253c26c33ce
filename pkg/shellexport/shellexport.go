// Package shellexport renders secrets as a source-able shell script,
// backing `export --format shell`.
package shellexport

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Write emits one `export NAME='value'` line per entry, sorted by
// name, with single quotes inside the value escaped per POSIX shell
// quoting rules so the output is always safe to `source`.
func Write(w io.Writer, secrets map[string]string) error {
	names := make([]string, 0, len(secrets))
	for name := range secrets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := fmt.Fprintf(w, "export %s=%s\n", name, quote(secrets[name])); err != nil {
			return err
		}
	}
	return nil
}

// quote wraps value in single quotes, escaping any embedded single
// quote as '"'"' — the standard POSIX trick of closing the quoted
// string, emitting an escaped quote, then reopening it.
func quote(value string) string {
	if !strings.Contains(value, "'") {
		return "'" + value + "'"
	}
	return "'" + strings.ReplaceAll(value, "'", `'"'"'`) + "'"
}
