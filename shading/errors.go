package shading

import (
	"fmt"
	"strings"

	"github.com/cznic/mathutil"
)

// DiagnosticKind classifies a compilation failure.
type DiagnosticKind uint8

const (
	// LexError reports a malformed literal or an unrecognised character.
	LexError DiagnosticKind = iota

	// ParseError reports an unexpected token, a missing delimiter or an
	// invalid top-level form.
	ParseError

	// NameError reports a forbidden prefix, a duplicate declaration or an
	// undefined symbol or type.
	NameError

	// TypeError reports an operator that is not defined for its operand
	// types, an assignability failure, a non-boolean condition or an
	// invalid parameter or return type.
	TypeError

	// OverloadError reports a call with no matching or an ambiguous
	// overload.
	OverloadError

	// MutationError reports an assignment to a const binding, to an
	// unnamed value or through a subscript.
	MutationError

	// ShaderError reports a missing or malformed shader entry point.
	ShaderError

	// EvaluationError reports a non-constant expression where a constant
	// is required, or a constant out of its valid range.
	EvaluationError
)

// String returns the kind's name.
func (k DiagnosticKind) String() string {
	switch k {
	case LexError:
		return "LexError"
	case ParseError:
		return "ParseError"
	case NameError:
		return "NameError"
	case TypeError:
		return "TypeError"
	case OverloadError:
		return "OverloadError"
	case MutationError:
		return "MutationError"
	case ShaderError:
		return "ShaderError"
	case EvaluationError:
		return "EvaluationError"
	default:
		return "Unknown"
	}
}

// Diagnostic is a structured compilation error carrying the source
// location of the failure and a human-readable message.
//
// Every phase aborts at its first diagnostic; callers always receive a
// single Diagnostic, never a list.
type Diagnostic struct {
	Kind     DiagnosticKind
	Message  string
	Location SourceLocation

	// Source optionally holds the original source text so that
	// FormatWithContext can show the offending line. Compile fills it in;
	// phases invoked directly may leave it empty.
	Source string
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s(%d, %d): error: %s",
		d.Location.File, d.Location.Line, d.Location.Column, d.Message)
}

// FormatWithContext returns the error message followed by the offending
// source line with a caret pointing at the error column.
func (d *Diagnostic) FormatWithContext() string {
	if d.Source == "" || d.Location.Line == 0 {
		return d.Error()
	}

	lines := strings.Split(d.Source, "\n")
	lineNum := mathutil.Clamp(d.Location.Line, 1, len(lines))
	line := lines[lineNum-1]
	col := mathutil.Clamp(d.Location.Column, 1, len(line)+1)

	var sb strings.Builder
	sb.WriteString(d.Error())
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "%3d| %s\n", lineNum, line)
	fmt.Fprintf(&sb, "   | %s^", strings.Repeat(" ", col-1))

	return sb.String()
}

// newDiag creates a Diagnostic with a formatted message.
func newDiag(kind DiagnosticKind, location SourceLocation, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Location: location,
	}
}
