package errors

// Error codes for the Bread compiler
// These codes are used in error messages and documentation
// to provide consistent error identification across the toolchain.
//
// Error code ranges:
// E0001-E0099: Lowering errors (names, functions, types)
// E0100-E0199: Parser errors
// E0600-E0699: Flow control errors
// E0700-E0799: Runtime errors raised by the reference interpreter
// E0900-E0999: IR verification errors
// W0001-W0099: Warnings

const (
	// E0001: Variable resolution errors
	ErrorUndeclaredVariable = "E0001"

	// E0002: Function resolution errors
	ErrorUnknownFunction = "E0002"

	// E0003: Type compatibility errors
	ErrorTypeMismatch = "E0003"

	// E0009: Variable declared twice in the same scope
	ErrorRedeclaration = "E0009"

	// E0013: Function call argument count errors
	ErrorArgumentCountMismatch = "E0013"

	// E0017: Variable read before any assignment
	ErrorUseBeforeInit = "E0017"

	// E0022: Function defined twice
	ErrorDuplicateFunction = "E0022"

	// E0100: Source text does not match the grammar
	ErrorParse = "E0100"

	// E0600: Missing return statement
	ErrorMissingReturn = "E0600"

	// E0700: Integer division by zero
	ErrorDivisionByZero = "E0700"

	// E0701: Signed division overflow (MIN / -1)
	ErrorIntegerOverflow = "E0701"

	// E0702: Call nesting deeper than the configured limit
	ErrorCallDepthExceeded = "E0702"

	// E0703: Entry function missing or takes parameters
	ErrorMissingEntry = "E0703"

	// E0900: Structurally invalid IR
	ErrorMalformedBlock = "E0900"

	// W0002: Unreachable code warning
	WarningUnreachableCode = "W0002"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUndeclaredVariable:
		return "Variable is used but not declared in any enclosing scope"
	case ErrorUnknownFunction:
		return "Function is called but not defined before the call site"
	case ErrorTypeMismatch:
		return "Expression type does not match the type required by its context"
	case ErrorRedeclaration:
		return "Variable is declared twice in the same scope"
	case ErrorArgumentCountMismatch:
		return "Function call has the wrong number of arguments"
	case ErrorUseBeforeInit:
		return "Variable is read before it has been assigned"
	case ErrorDuplicateFunction:
		return "Function is defined more than once"
	case ErrorParse:
		return "Source text could not be parsed"
	case ErrorMissingReturn:
		return "Function body can reach its end without returning"
	case ErrorDivisionByZero:
		return "Integer division by zero"
	case ErrorIntegerOverflow:
		return "Signed integer division overflows"
	case ErrorCallDepthExceeded:
		return "Call depth limit exceeded"
	case ErrorMissingEntry:
		return "Entry function is missing or takes parameters"
	case ErrorMalformedBlock:
		return "Basic block is structurally invalid"
	case WarningUnreachableCode:
		return "Code is unreachable"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return code != "" && code[0] == 'W'
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code == "":
		return "Unknown"
	case code[0] == 'W':
		return "Warning"
	case code >= "E0001" && code < "E0100":
		return "Lowering"
	case code >= "E0100" && code < "E0200":
		return "Parser"
	case code >= "E0600" && code < "E0700":
		return "Flow Control"
	case code >= "E0700" && code < "E0800":
		return "Runtime"
	case code >= "E0900" && code < "E1000":
		return "Verification"
	default:
		return "Unknown"
	}
}
