package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"bread/internal/ast"
	"bread/internal/compiler"
	"bread/internal/errors"
)

const diagnosticSource = "bread"

// Diagnose compiles one document and converts the outcome to LSP
// diagnostics. The program is nil when the text does not parse.
func Diagnose(c *compiler.Compiler, filename, text string) (*ast.Program, []protocol.Diagnostic, error) {
	result, err := c.Compile(filename, text)
	errs, err := compiler.Diagnostics(result, err)
	if err != nil {
		return nil, nil, err
	}
	return result.Program, ConvertCompilerErrors(errs), nil
}

// ConvertCompilerErrors transforms compiler errors and warnings into LSP
// diagnostics. Positions become 0-based and an error without a length
// marks a single character.
func ConvertCompilerErrors(errs []errors.CompilerError) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	for _, ce := range errs {
		line := uint32(max(ce.Position.Line-1, 0))
		start := uint32(max(ce.Position.Column-1, 0))
		length := uint32(max(ce.Length, 1))

		severity := protocol.DiagnosticSeverityError
		if ce.IsWarning() {
			severity = protocol.DiagnosticSeverityWarning
		}

		diagnostic := protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: line, Character: start},
				End:   protocol.Position{Line: line, Character: start + length},
			},
			Severity: &severity,
			Source:   ptrString(diagnosticSource),
			Message:  diagnosticMessage(ce),
		}
		if ce.Code != "" {
			diagnostic.Code = &protocol.IntegerOrString{Value: ce.Code}
		}
		diagnostics = append(diagnostics, diagnostic)
	}

	return diagnostics
}

func diagnosticMessage(ce errors.CompilerError) string {
	msg := ce.Message
	for _, s := range ce.Suggestions {
		msg += "\n" + s.Message
	}
	for _, note := range ce.Notes {
		msg += "\nnote: " + note
	}
	if ce.HelpText != "" {
		msg += "\nhelp: " + ce.HelpText
	}
	return msg
}

func ptrString(s string) *string {
	return &s
}
