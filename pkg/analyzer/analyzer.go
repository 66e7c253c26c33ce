// Package analyzer decorates the editor's secret list with a
// usage count per name, grepped from the user's shell history. It
// never reads decrypted values and never writes anything; a missing
// or unreadable history file silently yields zero counts for every
// name.
package analyzer

import (
	"bufio"
	"os"
	"strings"
)

// Counts maps a secret name to how many history lines mention it.
type Counts map[string]int

// Count scans the history file at path (or, if path is empty, the
// first of $HISTFILE / ~/.bash_history / ~/.zsh_history that exists)
// and returns how many lines mention each of names. A history file
// that cannot be opened yields a zero count for every name rather
// than an error, since the analyzer's output is cosmetic.
func Count(path string, names []string) Counts {
	counts := make(Counts, len(names))
	for _, name := range names {
		counts[name] = 0
	}

	if path == "" {
		path = defaultHistoryPath()
	}
	if path == "" {
		return counts
	}

	f, err := os.Open(path)
	if err != nil {
		return counts
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		for _, name := range names {
			if strings.Contains(line, name) {
				counts[name]++
			}
		}
	}
	return counts
}

func defaultHistoryPath() string {
	if hist := os.Getenv("HISTFILE"); hist != "" {
		if _, err := os.Stat(hist); err == nil {
			return hist
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	for _, candidate := range []string{".bash_history", ".zsh_history"} {
		p := home + string(os.PathSeparator) + candidate
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
