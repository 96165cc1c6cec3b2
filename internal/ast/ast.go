// Package ast defines the typed AST produced by the parser and consumed by
// the validator and lowerer (spec.md §3). Every node is a closed variant;
// there is no open polymorphism beyond the Expression tagged union.
package ast

import "github.com/dfrs-lang/dfrsc/internal/token"

// FileNode is the root of a single compiled source file.
type FileNode struct {
	Events    []*EventNode
	Functions []*FunctionNode
	Span      token.Span
}

// EventNode declares an event handler body.
type EventNode struct {
	EventType   *token.ActionKind // nil pre-validation, set by the validator (spec invariant 4)
	Event       string
	Expressions []ExpressionNode
	Cancelled   bool
	Span        token.Span
	NameEndSpan token.Span
}

// FunctionNode declares a reusable function.
type FunctionNode struct {
	Name        string
	Params      []*FunctionParamNode
	Expressions []ExpressionNode
	Span        token.Span
	NameEndSpan token.Span
}

// FunctionParamNode declares one formal parameter.
type FunctionParamNode struct {
	Name     string
	Type     token.Type
	Optional bool
	Multiple bool
	Default  *ArgValue
	Span     token.Span
}

// ExpressionNode is a tagged union over the five statement-level
// expression forms. Exactly one of the Node fields is non-nil.
type ExpressionNode struct {
	Action      *ActionNode
	Conditional *ConditionalNode
	Call        *CallNode
	Repeat      *RepeatNode
	Variable    *VariableNode
	Span        token.Span
}

// ActionNode is a single typed action call.
type ActionNode struct {
	ActionType     token.ActionKind
	Selector       token.Selector
	Name           string
	Args           []Arg
	Span           token.Span
	SelectorSpan   token.Span
}

// ConditionalNode is a conditional block with optional else branch.
type ConditionalNode struct {
	ConditionalType token.ConditionalKind
	Selector        token.Selector
	Name            string
	Args            []Arg
	Inverted        bool
	Expressions     []ExpressionNode
	ElseExpressions []ExpressionNode
	Span            token.Span
	SelectorSpan    token.Span
}

// CallNode invokes a user-defined function.
type CallNode struct {
	Name string
	Args []Arg
	Span token.Span
}

// RepeatNode is a repeat-loop with its own body.
type RepeatNode struct {
	Name        string
	Args        []Arg
	Expressions []ExpressionNode
	Span        token.Span
}

// VariableNode declares a dfrs-name -> df-name mapping for a given scope.
// Lowers to nothing; it only registers a name (spec invariant 6).
type VariableNode struct {
	DFRSName string
	DFName   string
	VarType  token.VariableScope
	Span     token.Span
}

// Arg is a single positional or tag argument.
type Arg struct {
	Value   ArgValue
	Index   int
	ArgType token.Type
	Span    token.Span
}
