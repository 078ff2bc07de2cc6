package studypal

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	UserMsg int // User message accent
	Heading int // Bold headers, bullets, numbered markers
	Section int // Section headers
	Code    int // Inline and fenced code
	Error   int // Error messages and invalid-image placeholders
	Success int // Success indicators
	Muted   int // Status bar, placeholders, code labels
	Accent  int // Links
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg: 4,
		Heading: 6,
		Section: 14,
		Code:    2,
		Error:   1,
		Success: 2,
		Muted:   8,
		Accent:  6,
	}
}
