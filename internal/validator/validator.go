// Package validator resolves a parsed AST against the action-dump catalog,
// checking name resolution, arity, argument types, and tag options
// (spec.md §4.E). It mutates the AST in place to back-fill the fields the
// parser could not know: event_type and each Tag's definition.
package validator

import (
	"github.com/dfrs-lang/dfrsc/internal/ast"
	"github.com/dfrs-lang/dfrsc/internal/catalog"
	"github.com/dfrs-lang/dfrsc/internal/token"
)

// maxParamSlot is the highest function-parameter declaration index the
// lowerer can emit before colliding with the fixed hint (25) and
// is-hidden-tag (26) header items (spec.md §9, Open Question 3).
const maxParamSlot = 24

// Validate walks file, resolving every name against cat. It returns the
// first error encountered and stops (spec.md §7: single error per file).
func Validate(file *ast.FileNode, cat *catalog.Catalog) error {
	for _, fn := range file.Functions {
		if len(fn.Params) > maxParamSlot+1 {
			return &Error{Kind: TooManyParameters, Pos: fn.Span.Start, Name: fn.Name}
		}
		if err := validateExprs(fn.Expressions, cat); err != nil {
			return err
		}
	}
	for _, ev := range file.Events {
		ed, ok := cat.Event(ev.Event)
		if !ok {
			return &Error{Kind: UnknownEvent, Pos: ev.Span.Start, Name: ev.Event}
		}
		kind := ed.Kind
		ev.EventType = &kind
		if err := validateExprs(ev.Expressions, cat); err != nil {
			return err
		}
	}
	return nil
}

func validateExprs(exprs []ast.ExpressionNode, cat *catalog.Catalog) error {
	for i := range exprs {
		e := &exprs[i]
		switch {
		case e.Action != nil:
			if err := validateCall(e.Action.Name, e.Action.ActionType, e.Action.Args, e.Action.Span.Start, cat, byActionKind, true); err != nil {
				return err
			}
		case e.Conditional != nil:
			if err := validateCall(e.Conditional.Name, e.Conditional.ConditionalType, e.Conditional.Args, e.Conditional.Span.Start, cat, byConditionalKind, false); err != nil {
				return err
			}
			if err := validateExprs(e.Conditional.Expressions, cat); err != nil {
				return err
			}
			if err := validateExprs(e.Conditional.ElseExpressions, cat); err != nil {
				return err
			}
		case e.Repeat != nil:
			// Repeats resolve against the control-action bucket: the
			// catalog has no dedicated REPEAT category, and repeats are
			// control-flow constructs in the same family as control
			// actions (see DESIGN.md).
			if err := validateCall(e.Repeat.Name, token.ActionControl, e.Repeat.Args, e.Repeat.Span.Start, cat, byActionKind, true); err != nil {
				return err
			}
			if err := validateExprs(e.Repeat.Expressions, cat); err != nil {
				return err
			}
		case e.Call != nil, e.Variable != nil:
			// User-defined calls and variable declarations carry no
			// catalog-resolvable name.
		}
	}
	return nil
}

type lookupMode int

const (
	byActionKind lookupMode = iota
	byConditionalKind
)

// validateCall resolves name against the appropriate catalog bucket for
// kind, then checks arity, argument types, conditional-as-argument
// position, and tags. allowConditionArg is true only for actions and
// repeats (spec invariant 2: a nested Condition is valid only as the
// first argument of an action or repeat, never of a conditional). A
// leading Condition is further rejected unless the resolved catalog
// entry itself declares has_conditional_arg (spec.md §6).
func validateCall(name string, kind interface{}, args []ast.Arg, pos token.Position, cat *catalog.Catalog, mode lookupMode, allowConditionArg bool) error {
	var desc catalog.ActionDescriptor
	var ok bool
	switch mode {
	case byActionKind:
		desc, ok = cat.Action(kind.(token.ActionKind), name)
	case byConditionalKind:
		desc, ok = cat.Conditional(kind.(token.ConditionalKind), name)
	}
	if !ok {
		return &Error{Kind: UnknownAction, Pos: pos, Name: name}
	}

	for i := range args {
		if args[i].Value.Kind == ast.ValCondition && (i > 0 || !allowConditionArg || !desc.HasConditionalArg) {
			return &Error{Kind: WrongArgumentType, Pos: args[i].Span.Start, Found: token.TypeAny}
		}
	}

	positional := map[int]*ast.Arg{}
	var maxIdx = -1
	for i := range args {
		a := &args[i]
		switch a.Value.Kind {
		case ast.ValTag:
			tagDef, ok := desc.Tag(a.Value.Tag.Name)
			if !ok {
				return &Error{Kind: UnknownTag, Pos: a.Span.Start, Name: a.Value.Tag.Name, Options: tagNames(desc)}
			}
			if !contains(tagDef.Options, a.Value.Tag.Value) {
				return &Error{Kind: InvalidTagOption, Pos: a.Value.Tag.ValueSpan.Start, Name: a.Value.Tag.Name, Provided: a.Value.Tag.Value, Options: tagDef.Options}
			}
			a.Value.Tag.Definition = &ast.TagDefinition{Slot: tagDef.Slot, Default: tagDef.Default}
		case ast.ValCondition:
			// Lowered to block-level fields; its own nested args are
			// validated against the nested conditional's catalog entry.
			if err := validateCall(a.Value.Condition.Name, a.Value.Condition.ConditionalType, a.Value.Condition.Args, a.Span.Start, cat, byConditionalKind, false); err != nil {
				return err
			}
		default:
			positional[a.Index] = a
			if a.Index > maxIdx {
				maxIdx = a.Index
			}
		}
	}

	if maxIdx >= len(desc.Args) {
		return &Error{Kind: TooManyArguments, Pos: pos, Name: name}
	}

	for idx, argDef := range desc.Args {
		a, present := positional[idx]
		if !present {
			if argDef.Required {
				return &Error{Kind: MissingArgument, Pos: pos, Name: argDef.Name}
			}
			continue
		}
		found, err := argValueType(a.Value, cat, a.Span.Start)
		if err != nil {
			return err
		}
		if !typeAccepted(argDef.Types, found) {
			return &Error{Kind: WrongArgumentType, Pos: a.Span.Start, Expected: argDef.Types, Found: found}
		}
	}
	return nil
}

func tagNames(desc catalog.ActionDescriptor) []string {
	names := make([]string, 0, len(desc.Tags))
	for _, t := range desc.Tags {
		names = append(names, t.Name)
	}
	return names
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func typeAccepted(accepted []token.Type, found token.Type) bool {
	for _, t := range accepted {
		if t == token.TypeAny || t == found {
			return true
		}
	}
	return false
}

// argValueType infers the structural Type of a single argument value
// (spec.md §4.E: "Type inference for arguments is structural").
func argValueType(v ast.ArgValue, cat *catalog.Catalog, pos token.Position) (token.Type, error) {
	switch v.Kind {
	case ast.ValNumber:
		return token.TypeNumber, nil
	case ast.ValString:
		return token.TypeString, nil
	case ast.ValText:
		return token.TypeText, nil
	case ast.ValLocation:
		return token.TypeLocation, nil
	case ast.ValVector:
		return token.TypeVector, nil
	case ast.ValSound:
		return token.TypeSound, nil
	case ast.ValPotion:
		return token.TypePotion, nil
	case ast.ValVariable:
		return token.TypeVariable, nil
	case ast.ValGameValue:
		gv, ok := cat.GameValue(v.GameValue.Value)
		if !ok {
			return token.TypeAny, &Error{Kind: UnknownGameValue, Pos: pos, Name: v.GameValue.Value}
		}
		return gv.Type, nil
	}
	return token.TypeAny, nil
}
