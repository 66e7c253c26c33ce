// Package highlight renders the preview printed by the CLI's
// `import --preview`: the raw text of a .env or JSON file about to be
// bulk-imported, colorized so
// a reviewer can sanity-check it before committing the names and
// values to the store.
package highlight

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Highlighter colorizes source text for the `import --preview` output,
// using chroma's INI lexer for .env files and its JSON lexer for
// JSON files.
type Highlighter struct {
	mu        sync.RWMutex
	styleName string
	style     *chroma.Style
	formatter chroma.Formatter
}

// NewHighlighter creates a Highlighter using chroma's monokai theme.
func NewHighlighter() *Highlighter {
	return &Highlighter{
		styleName: "monokai",
		style:     styles.Get("monokai"),
		formatter: formatters.TTY256,
	}
}

// NewHighlighterWithStyle creates a Highlighter using a named chroma
// style, falling back to chroma's default style if the name is not
// registered.
func NewHighlighterWithStyle(styleName string) *Highlighter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	return &Highlighter{
		styleName: styleName,
		style:     style,
		formatter: formatters.TTY256,
	}
}

// Highlight tokenizes text with chroma's lexer for language ("ini" for
// .env files, "json" for JSON files) and renders it with the current
// style. An unrecognized language falls back to chroma's plaintext
// lexer rather than failing.
func (h *Highlighter) Highlight(text, language string) (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return text, err
	}

	var buf strings.Builder
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return text, err
	}

	return buf.String(), nil
}

// HighlightEnv highlights the contents of a .env file.
func (h *Highlighter) HighlightEnv(text string) (string, error) {
	return h.Highlight(text, "ini")
}

// HighlightJSON highlights the contents of a JSON file.
func (h *Highlighter) HighlightJSON(text string) (string, error) {
	return h.Highlight(text, "json")
}

// SetStyle swaps the active chroma style. An unrecognized name leaves
// the current style in place.
func (h *Highlighter) SetStyle(styleName string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	style := styles.Get(styleName)
	if style != nil {
		h.styleName = styleName
		h.style = style
	}
}

// GetStyle returns the active chroma style name.
func (h *Highlighter) GetStyle() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.styleName
}

// ListStyles returns every chroma style name available for SetStyle.
func ListStyles() []string {
	return styles.Names()
}

// ErrorHighlighter colorizes one-line CLI status messages (the agent
// status and stop output) by keyword, independent of chroma.
type ErrorHighlighter struct {
	errorStyle   lipgloss.Style
	warningStyle lipgloss.Style
	successStyle lipgloss.Style
}

// NewErrorHighlighter creates an ErrorHighlighter with the editor's
// error/warning/success palette.
func NewErrorHighlighter() *ErrorHighlighter {
	return &ErrorHighlighter{
		errorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		warningStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		successStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("82")),
	}
}

// Highlight colors text based on keywords it contains: error-like
// words win over warning-like words, which win over success-like
// words.
func (h *ErrorHighlighter) Highlight(text string) string {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "error") || strings.Contains(lower, "fail") ||
		strings.Contains(lower, "fatal") || strings.Contains(lower, "denied") {
		return h.errorStyle.Render(text)
	}

	if strings.Contains(lower, "warning") || strings.Contains(lower, "warn") || strings.Contains(lower, "expired") {
		return h.warningStyle.Render(text)
	}

	if strings.Contains(lower, "success") || strings.Contains(lower, "ok") ||
		strings.Contains(lower, "done") || strings.Contains(lower, "saved") {
		return h.successStyle.Render(text)
	}

	return text
}
