package errors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"bread/internal/ast"
)

// ErrorLevel represents the severity of an error
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// CompilerError represents a structured error with suggestions and context
type CompilerError struct {
	Level       ErrorLevel
	Code        string       // Error code like E0001
	Message     string       // Primary error message
	Position    ast.Position // Location in source; zero for runtime and IR faults
	Length      int          // Length of the problematic region
	Suggestions []Suggestion // Suggested fixes
	Notes       []string     // Additional context notes
	HelpText    string       // Help text for the error
}

// Error renders the error on one line, prefixed with "line:col: " when the
// error has a source position
func (e CompilerError) Error() string {
	if !e.HasPosition() {
		return e.title()
	}
	return fmt.Sprintf("%d:%d: %s", e.Position.Line, e.Position.Column, e.title())
}

// IsWarning reports whether the error is only a warning
func (e CompilerError) IsWarning() bool {
	return e.Level == Warning
}

// HasPosition reports whether the error points into the source text
func (e CompilerError) HasPosition() bool {
	return e.Position.Line > 0
}

func (e CompilerError) title() string {
	if e.Code == "" {
		return fmt.Sprintf("%s: %s", e.Level, e.Message)
	}
	return fmt.Sprintf("%s[%s]: %s", e.Level, e.Code, e.Message)
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message     string       // Description of the suggestion
	Replacement string       // Suggested replacement text (optional)
	Position    ast.Position // Position to apply the fix (optional)
	Length      int          // Length of text to replace (optional)
}

var (
	dim        = color.New(color.Faint).SprintFunc()
	bold       = color.New(color.Bold).SprintFunc()
	cyan       = color.New(color.FgCyan).SprintFunc()
	blue       = color.New(color.FgBlue).SprintFunc()
	green      = color.New(color.FgGreen).SprintFunc()
	levelColor = map[ErrorLevel]func(...interface{}) string{
		Error:   color.New(color.FgRed, color.Bold).SprintFunc(),
		Warning: color.New(color.FgYellow, color.Bold).SprintFunc(),
		Note:    color.New(color.FgBlue, color.Bold).SprintFunc(),
		Help:    color.New(color.FgGreen, color.Bold).SprintFunc(),
	}
)

func paint(level ErrorLevel) func(...interface{}) string {
	if c, ok := levelColor[level]; ok {
		return c
	}
	return levelColor[Error]
}

// ErrorReporter renders compiler errors against the source they refer to
type ErrorReporter struct {
	filename string
	lines    []string
}

// NewErrorReporter creates a reporter for one file
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// gutter is the left margin of a rendered error; it is wide enough for the
// largest line number shown and never narrower than three columns
type gutter struct {
	width int
}

func newGutter(lastLine int) gutter {
	return gutter{width: max(3, len(strconv.Itoa(lastLine)))}
}

func (g gutter) pad() string {
	return strings.Repeat(" ", g.width)
}

// row writes one margin line labelled with a line number, or unlabelled when
// number is zero
func (g gutter) row(b *strings.Builder, number int, style func(...interface{}) string, text string) {
	label := ""
	if number > 0 {
		label = strconv.Itoa(number)
	}
	fmt.Fprintf(b, "%s %s %s\n", style(fmt.Sprintf("%*s", g.width, label)), dim("│"), text)
}

// FormatError renders the header, the source excerpt around the error when
// it has a position, then suggestions, notes and help
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var b strings.Builder

	level := paint(err.Level)
	if err.Code != "" {
		fmt.Fprintf(&b, "%s[%s]: %s\n", level(string(err.Level)), err.Code, err.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s\n", level(string(err.Level)), err.Message)
	}

	g := newGutter(0)
	if err.HasPosition() {
		g = newGutter(err.Position.Line + 1)
		fmt.Fprintf(&b, "%s %s %s:%d:%d\n", g.pad(), dim("-->"), er.filename, err.Position.Line, err.Position.Column)
		g.row(&b, 0, dim, "")
		er.excerpt(&b, g, err)
	} else {
		fmt.Fprintf(&b, "%s %s %s\n", g.pad(), dim("-->"), er.filename)
	}

	er.trailer(&b, g, err)
	b.WriteString("\n")
	return b.String()
}

// excerpt shows the offending line with a marker under it, framed by the
// lines before and after when they exist
func (er *ErrorReporter) excerpt(b *strings.Builder, g gutter, err CompilerError) {
	line := err.Position.Line
	if line > len(er.lines) {
		return
	}

	if line > 1 {
		g.row(b, line-1, dim, er.lines[line-2])
	}
	g.row(b, line, bold, er.lines[line-1])
	g.row(b, 0, dim, marker(err))
	if line < len(er.lines) {
		g.row(b, line+1, dim, er.lines[line])
	}
}

func marker(err CompilerError) string {
	spaces := strings.Repeat(" ", max(0, err.Position.Column-1))
	return spaces + paint(err.Level)(strings.Repeat("^", max(1, err.Length)))
}

func (er *ErrorReporter) trailer(b *strings.Builder, g gutter, err CompilerError) {
	for i, s := range err.Suggestions {
		if i == 0 {
			g.row(b, 0, dim, "")
			fmt.Fprintf(b, "%s %s %s: %s\n", g.pad(), cyan("help"), cyan("try"), s.Message)
		} else {
			fmt.Fprintf(b, "%s %s %s\n", g.pad(), cyan("    "), s.Message)
		}
		if s.Replacement != "" {
			g.row(b, 0, dim, "")
			for _, line := range strings.Split(s.Replacement, "\n") {
				fmt.Fprintf(b, "%s %s %s\n", g.pad(), cyan("│"), cyan(line))
			}
		}
	}

	for _, note := range err.Notes {
		g.row(b, 0, dim, blue("note:")+" "+note)
	}
	if err.HelpText != "" {
		g.row(b, 0, dim, green("help:")+" "+err.HelpText)
	}
}

// FormatAll formats every error in order
func (er *ErrorReporter) FormatAll(errs []CompilerError) string {
	var b strings.Builder
	for _, err := range errs {
		b.WriteString(er.FormatError(err))
	}
	return b.String()
}
