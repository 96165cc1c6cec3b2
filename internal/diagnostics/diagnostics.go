// Package diagnostics renders compiler errors with source context,
// adapting CWBudde-go-dws's internal/errors package to the three closed
// per-stage error enums of the lexer, parser and validator (the lowerer
// has none; spec.md §7) and to the richer (primary,
// secondary) span pair spec.md §6 describes for the external diagnostic
// formatter. The stages themselves stay pure and never import this
// package (spec.md §7: "errors are data, not exceptions").
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/dfrs-lang/dfrsc/internal/lexer"
	"github.com/dfrs-lang/dfrsc/internal/parser"
	"github.com/dfrs-lang/dfrsc/internal/token"
	"github.com/dfrs-lang/dfrsc/internal/validator"
)

// Diagnostic is a single rendered error: a message plus the primary span
// it points at, and an optional secondary span for errors that reference
// two locations (e.g. "expected one of" spanning the offending token and
// the construct that introduced the expectation).
type Diagnostic struct {
	Message   string
	File      string
	Source    string
	Primary   token.Span
	Secondary *token.Span
}

// FromStageError wraps one of the lexer/parser/validator error types into
// a Diagnostic. Any other error type becomes a Diagnostic holding only its
// message, with no source position.
func FromStageError(err error, source, file string) *Diagnostic {
	switch e := err.(type) {
	case *lexer.Error:
		return &Diagnostic{Message: e.Error(), File: file, Source: source, Primary: token.Span{Start: e.Pos, End: e.Pos}}
	case *parser.Error:
		return &Diagnostic{Message: e.Error(), File: file, Source: source, Primary: token.Span{Start: e.Pos, End: e.Pos}}
	case *validator.Error:
		return &Diagnostic{Message: e.Error(), File: file, Source: source, Primary: token.Span{Start: e.Pos, End: e.Pos}}
	default:
		return &Diagnostic{Message: err.Error(), File: file, Source: source}
	}
}

// Format renders the diagnostic with the offending source line and a
// caret underline, following CWBudde-go-dws's internal/errors format.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	if d.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%s\n", d.File, d.Primary.Start)
	} else {
		fmt.Fprintf(&sb, "Error at %s\n", d.Primary.Start)
	}

	line := d.sourceLine(d.Primary.Start.Line)
	if line != "" {
		prefix := fmt.Sprintf("%4d | ", d.Primary.Start.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(prefix)+d.Primary.Start.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if d.Secondary != nil {
		secLine := d.sourceLine(d.Secondary.Start.Line)
		if secLine != "" {
			fmt.Fprintf(&sb, "  (related: %s)\n", d.Secondary.Start)
			sb.WriteString(fmt.Sprintf("%4d | ", d.Secondary.Start.Line))
			sb.WriteString(secLine)
			sb.WriteString("\n")
		}
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func (d *Diagnostic) sourceLine(lineNum int) string {
	if d.Source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
