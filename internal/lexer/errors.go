package lexer

import (
	"fmt"

	"github.com/dfrs-lang/dfrsc/internal/token"
)

// ErrorKind closes the lexer's error enum (spec.md §4.C / §7).
type ErrorKind int

const (
	InvalidNumber ErrorKind = iota
	InvalidToken
	UnterminatedString
	UnterminatedText
	UnterminatedVariable
)

// Error is the lexer's single error type. It is data, never used for
// control flow beyond aborting the current scan (spec.md §7).
type Error struct {
	Kind ErrorKind
	Pos  token.Position
	Char rune // populated for InvalidToken
}

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidNumber:
		return fmt.Sprintf("%s: invalid number literal", e.Pos)
	case InvalidToken:
		return fmt.Sprintf("%s: invalid token %q", e.Pos, e.Char)
	case UnterminatedString:
		return fmt.Sprintf("%s: unterminated string literal", e.Pos)
	case UnterminatedText:
		return fmt.Sprintf("%s: unterminated text literal", e.Pos)
	case UnterminatedVariable:
		return fmt.Sprintf("%s: unterminated variable literal", e.Pos)
	}
	return fmt.Sprintf("%s: lexer error", e.Pos)
}
