// Package styles provides the color theme and rendering helpers used
// by the interactive editor.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme represents a complete color theme.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Warning    lipgloss.Color
	Success    lipgloss.Color
	Info       lipgloss.Color
	Border     lipgloss.Color
	Selection  lipgloss.Color
}

// DefaultTheme is the default color theme.
var DefaultTheme = Theme{
	Name:       "default",
	Primary:    lipgloss.Color("86"),  // Cyan
	Secondary:  lipgloss.Color("141"), // Purple
	Accent:     lipgloss.Color("214"), // Orange
	Background: lipgloss.Color("235"), // Dark gray
	Foreground: lipgloss.Color("252"), // Light gray
	Muted:      lipgloss.Color("240"), // Gray
	Error:      lipgloss.Color("196"), // Red
	Warning:    lipgloss.Color("214"), // Orange
	Success:    lipgloss.Color("82"),  // Green
	Info:       lipgloss.Color("39"),  // Blue
	Border:     lipgloss.Color("238"), // Dark gray
	Selection:  lipgloss.Color("236"), // Darker gray
}

// DraculaTheme is the Dracula color theme.
var DraculaTheme = Theme{
	Name:       "dracula",
	Primary:    lipgloss.Color("141"), // Purple
	Secondary:  lipgloss.Color("117"), // Cyan
	Accent:     lipgloss.Color("212"), // Pink
	Background: lipgloss.Color("236"), // Dark
	Foreground: lipgloss.Color("253"), // Light
	Muted:      lipgloss.Color("103"), // Comment gray
	Error:      lipgloss.Color("203"), // Red
	Warning:    lipgloss.Color("215"), // Orange
	Success:    lipgloss.Color("84"),  // Green
	Info:       lipgloss.Color("117"), // Cyan
	Border:     lipgloss.Color("60"),  // Purple border
	Selection:  lipgloss.Color("60"),  // Purple selection
}

// Themes is a map of available themes.
var Themes = map[string]Theme{
	"default": DefaultTheme,
	"dracula": DraculaTheme,
}

// GetTheme returns a theme by name, falling back to DefaultTheme for
// an unrecognized name.
func GetTheme(name string) Theme {
	if theme, exists := Themes[name]; exists {
		return theme
	}
	return DefaultTheme
}

// Styles provides styled components for the secret list, the detail
// pane, and status messages.
type Styles struct {
	theme Theme

	Header    lipgloss.Style
	Footer    lipgloss.Style
	StatusBar lipgloss.Style

	Pane       lipgloss.Style
	ActivePane lipgloss.Style
	PaneTitle  lipgloss.Style

	SecretName    lipgloss.Style
	SecretValue   lipgloss.Style
	SecretExpired lipgloss.Style

	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Info    lipgloss.Style

	Muted lipgloss.Style
	Bold  lipgloss.Style
}

// NewStyles builds a Styles for the given theme.
func NewStyles(theme Theme) *Styles {
	borderStyle := lipgloss.RoundedBorder()

	return &Styles{
		theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Background(theme.Selection).
			Padding(0, 1),

		Pane: lipgloss.NewStyle().
			Border(borderStyle).
			BorderForeground(theme.Border).
			Padding(0, 1),

		ActivePane: lipgloss.NewStyle().
			Border(borderStyle).
			BorderForeground(theme.Primary).
			Padding(0, 1),

		PaneTitle: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		SecretName: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		SecretValue: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		SecretExpired: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Strikethrough(true),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Info: lipgloss.NewStyle().
			Foreground(theme.Info),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Bold(true),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme)
}

// SetTheme swaps the active theme in place.
func (s *Styles) SetTheme(theme Theme) {
	*s = *NewStyles(theme)
}

// GetTheme returns the current theme.
func (s *Styles) GetTheme() Theme {
	return s.theme
}

// Box wraps content in a bordered pane, optionally titled.
func (s *Styles) Box(content string, title string, active bool) string {
	style := s.Pane
	if active {
		style = s.ActivePane
	}

	if title != "" {
		return style.Render(s.PaneTitle.Render(title) + "\n" + content)
	}
	return style.Render(content)
}

// FormatError formats an error message for the status line.
func (s *Styles) FormatError(msg string) string {
	return s.Error.Render("✗ " + msg)
}

// FormatWarning formats a warning message for the status line.
func (s *Styles) FormatWarning(msg string) string {
	return s.Warning.Render("⚠ " + msg)
}

// FormatSuccess formats a success message for the status line.
func (s *Styles) FormatSuccess(msg string) string {
	return s.Success.Render("✓ " + msg)
}

// FormatInfo formats an info message for the status line.
func (s *Styles) FormatInfo(msg string) string {
	return s.Info.Render("ℹ " + msg)
}
