package parser

import (
	"fmt"
	"strings"

	"github.com/dfrs-lang/dfrsc/internal/token"
)

// ErrorKind closes the parser's error enum (spec.md §4.D / §7).
type ErrorKind int

const (
	InvalidToken ErrorKind = iota
	InvalidCall
	InvalidLocation
	InvalidVector
	InvalidSound
	InvalidPotion
	UnknownVariable
	InvalidType
)

// Error is the parser's single error type.
type Error struct {
	Kind     ErrorKind
	Pos      token.Position
	Found    token.Kind
	Expected []token.Kind
	Name     string // populated for UnknownVariable
}

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidToken:
		var exp []string
		for _, k := range e.Expected {
			exp = append(exp, k.String())
		}
		return fmt.Sprintf("%s: unexpected %s, expected one of [%s]", e.Pos, e.Found, strings.Join(exp, " "))
	case InvalidCall:
		return fmt.Sprintf("%s: invalid call expression", e.Pos)
	case InvalidLocation:
		return fmt.Sprintf("%s: invalid location literal", e.Pos)
	case InvalidVector:
		return fmt.Sprintf("%s: invalid vector literal", e.Pos)
	case InvalidSound:
		return fmt.Sprintf("%s: invalid sound literal", e.Pos)
	case InvalidPotion:
		return fmt.Sprintf("%s: invalid potion literal", e.Pos)
	case UnknownVariable:
		return fmt.Sprintf("%s: unknown variable %%%s (no preceding declaration in scope)", e.Pos, e.Name)
	case InvalidType:
		return fmt.Sprintf("%s: invalid type annotation", e.Pos)
	}
	return fmt.Sprintf("%s: parse error", e.Pos)
}
