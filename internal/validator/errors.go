package validator

import (
	"fmt"
	"strings"

	"github.com/dfrs-lang/dfrsc/internal/token"
)

// ErrorKind closes the validator's error enum (spec.md §4.E / §7).
type ErrorKind int

const (
	UnknownEvent ErrorKind = iota
	UnknownAction
	MissingArgument
	WrongArgumentType
	TooManyArguments
	UnknownTag
	InvalidTagOption
	UnknownGameValue
	TooManyParameters
)

// Error is the validator's single error type.
type Error struct {
	Kind     ErrorKind
	Pos      token.Position
	Name     string   // event/action/tag/game-value name, as applicable
	Expected []token.Type
	Found    token.Type
	Options  []string
	Provided string
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnknownEvent:
		return fmt.Sprintf("%s: unknown event %q", e.Pos, e.Name)
	case UnknownAction:
		return fmt.Sprintf("%s: unknown action %q", e.Pos, e.Name)
	case MissingArgument:
		return fmt.Sprintf("%s: missing required argument %q", e.Pos, e.Name)
	case WrongArgumentType:
		var exp []string
		for _, t := range e.Expected {
			exp = append(exp, t.String())
		}
		return fmt.Sprintf("%s: wrong argument type: expected one of [%s], found %s", e.Pos, strings.Join(exp, " "), e.Found)
	case TooManyArguments:
		return fmt.Sprintf("%s: too many arguments to %q", e.Pos, e.Name)
	case UnknownTag:
		return fmt.Sprintf("%s: unknown tag %q (available: %s)", e.Pos, e.Name, strings.Join(e.Options, ", "))
	case InvalidTagOption:
		return fmt.Sprintf("%s: invalid option %q for tag %q (available: %s)", e.Pos, e.Provided, e.Name, strings.Join(e.Options, ", "))
	case UnknownGameValue:
		return fmt.Sprintf("%s: unknown game value %q", e.Pos, e.Name)
	case TooManyParameters:
		return fmt.Sprintf("%s: function %q has too many parameters (slots 25/26 are reserved)", e.Pos, e.Name)
	}
	return fmt.Sprintf("%s: validation error", e.Pos)
}
