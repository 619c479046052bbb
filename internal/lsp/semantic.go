package lsp

import (
	"slices"
	"strconv"

	"bread/internal/ast"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

func collectSemanticTokens(program *ast.Program) []SemanticToken {
	var tokens []SemanticToken
	if program == nil {
		return tokens
	}

	for _, fn := range program.Functions {
		params := make(map[string]bool, len(fn.Params))
		for _, p := range fn.Params {
			params[p.Value] = true
		}

		tokens = append(tokens, makeToken(fn.Name.Pos, len(fn.Name.Value), "function", true))
		for _, p := range fn.Params {
			tokens = append(tokens, makeToken(p.Pos, len(p.Value), "parameter", true))
		}

		for _, stmt := range fn.Body {
			ast.Inspect(stmt, func(n ast.Node) bool {
				tokens = append(tokens, nodeTokens(n, params)...)
				return true
			})
		}
	}

	slices.SortStableFunc(tokens, func(a, b SemanticToken) int {
		if a.Line != b.Line {
			return int(a.Line) - int(b.Line)
		}
		return int(a.StartChar) - int(b.StartChar)
	})
	return tokens
}

// nodeTokens covers the tokens a node owns directly; children are visited separately
func nodeTokens(n ast.Node, params map[string]bool) []SemanticToken {
	switch n := n.(type) {
	case *ast.DeclareStmt:
		return []SemanticToken{
			makeToken(n.Pos, len("let"), "keyword", false),
			makeToken(n.Name.Pos, len(n.Name.Value), "variable", true),
		}
	case *ast.ReturnStmt:
		return []SemanticToken{makeToken(n.Pos, len("return"), "keyword", false)}
	case *ast.IfStmt:
		return []SemanticToken{makeToken(n.Pos, len("if"), "keyword", false)}
	case *ast.AssignStmt:
		return []SemanticToken{makeToken(n.Name.Pos, len(n.Name.Value), variableKind(n.Name.Value, params), false)}
	case *ast.IdentExpr:
		return []SemanticToken{makeToken(n.Pos, len(n.Name), variableKind(n.Name, params), false)}
	case *ast.CallExpr:
		return []SemanticToken{makeToken(n.Callee.Pos, len(n.Callee.Value), "function", false)}
	case *ast.LiteralExpr:
		return []SemanticToken{makeToken(n.Pos, len(strconv.Itoa(int(n.Value))), "number", false)}
	}
	return nil
}

func variableKind(name string, params map[string]bool) string {
	if params[name] {
		return "parameter"
	}
	return "variable"
}

func makeToken(pos ast.Position, length int, tokenType string, declaration bool) SemanticToken {
	modifiers := 0
	if declaration {
		modifiers = 1 << indexOf("declaration", SemanticTokenModifiers)
	}
	return SemanticToken{
		Line:           uint32(max(pos.Line-1, 0)),   // LSP uses 0-based line numbers
		StartChar:      uint32(max(pos.Column-1, 0)), // LSP uses 0-based column numbers
		Length:         uint32(length),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: modifiers,
	}
}

// encodeSemanticTokens applies the LSP delta-line, delta-start compression
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := []uint32{}
	var prevLine, prevStart uint32

	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		deltaStart := token.StartChar
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}
	return data
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	if i := slices.Index(list, target); i >= 0 {
		return i
	}
	return 0
}
