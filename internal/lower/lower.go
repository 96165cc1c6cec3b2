// Package lower transforms a validated AST into the ordered list of
// codeline JSON documents the target platform imports (spec.md §4.F).
// It assumes its input already passed internal/validator: an internal
// invariant violation here is a programmer bug, not a user-facing error
// (spec.md §7).
package lower

import (
	"encoding/json"
	"fmt"

	"github.com/dfrs-lang/dfrsc/internal/ast"
	"github.com/dfrs-lang/dfrsc/internal/token"
)

// CompiledLine is one lowered event or function, named per
// original_source/core/src/compile.rs's convention ("Event "+name or
// "Function "+name).
type CompiledLine struct {
	Name string
	Code string
}

// hintSlot and hiddenSlot are the fixed header-item slots a function's
// parameter list must never collide with (spec.md §9 Q3).
const (
	hintSlot   = 25
	hiddenSlot = 26
)

// File lowers every event and then every function in file, each group in
// declaration order.
func File(file *ast.FileNode) ([]CompiledLine, error) {
	var lines []CompiledLine
	for _, ev := range file.Events {
		line, err := Event(ev)
		if err != nil {
			return nil, fmt.Errorf("lower: event %q: %w", ev.Event, err)
		}
		lines = append(lines, line)
	}
	for _, fn := range file.Functions {
		line, err := Function(fn)
		if err != nil {
			return nil, fmt.Errorf("lower: function %q: %w", fn.Name, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Event lowers a single event to its CompiledLine.
func Event(ev *ast.EventNode) (CompiledLine, error) {
	if ev.EventType == nil {
		return CompiledLine{}, fmt.Errorf("lower: event %q has no event_type (validate must run first)", ev.Event)
	}
	blockName := "event"
	if *ev.EventType == token.ActionEntity {
		blockName = "entity_event"
	}
	header := map[string]any{
		"id":     "block",
		"block":  blockName,
		"action": ev.Event,
		"args":   emptyArgs(),
	}
	if ev.Cancelled {
		header["attribute"] = "LS-CANCEL"
	}

	blocks := []any{header}
	body, err := lowerExprs(ev.Expressions)
	if err != nil {
		return CompiledLine{}, err
	}
	blocks = append(blocks, body...)

	code, err := marshalBlocks(blocks)
	if err != nil {
		return CompiledLine{}, err
	}
	return CompiledLine{Name: "Event " + ev.Event, Code: code}, nil
}

// Function lowers a single function to its CompiledLine.
func Function(fn *ast.FunctionNode) (CompiledLine, error) {
	items := make([]any, 0, len(fn.Params)+2)
	for i, p := range fn.Params {
		item, err := paramItem(p, i)
		if err != nil {
			return CompiledLine{}, err
		}
		items = append(items, item)
	}
	items = append(items,
		itemAt(hintSlot, "hint", rawObject(map[string]any{"id": "function"})),
		itemAt(hiddenSlot, "bl_tag", rawObject(map[string]any{
			"action": "dynamic", "block": "func", "option": "False", "tag": "Is Hidden",
		})),
	)

	header := map[string]any{
		"id":   "block",
		"block": "func",
		"data":  fn.Name,
		"args":  map[string]any{"items": items},
	}

	blocks := []any{header}
	body, err := lowerExprs(fn.Expressions)
	if err != nil {
		return CompiledLine{}, err
	}
	blocks = append(blocks, body...)

	code, err := marshalBlocks(blocks)
	if err != nil {
		return CompiledLine{}, err
	}
	return CompiledLine{Name: "Function " + fn.Name, Code: code}, nil
}

func lowerExprs(exprs []ast.ExpressionNode) ([]any, error) {
	var blocks []any
	for _, e := range exprs {
		switch {
		case e.Action != nil:
			b, err := lowerAction(e.Action)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, b)
		case e.Conditional != nil:
			b, err := lowerConditional(e.Conditional)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, b...)
		case e.Call != nil:
			items, err := lowerArgItems(e.Call.Args, e.Call.Name, "call_func")
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, map[string]any{
				"id": "block", "block": "call_func", "data": e.Call.Name,
				"args": map[string]any{"items": items},
			})
		case e.Repeat != nil:
			b, err := lowerRepeat(e.Repeat)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, b...)
		case e.Variable != nil:
			// Spec invariant 6: declarations emit no block.
		}
	}
	return blocks, nil
}

func lowerAction(a *ast.ActionNode) (map[string]any, error) {
	block := map[string]any{
		"id":     "block",
		"block":  a.ActionType.BlockName(),
		"action": a.Name,
	}

	args := a.Args
	if len(args) > 0 && args[0].Value.Kind == ast.ValCondition {
		cond := args[0].Value.Condition
		block["subAction"] = cond.Name
		if a.ActionType.HasSelector() {
			block["target"] = cond.Selector.Code()
		}
		if cond.Inverted {
			block["attribute"] = "NOT"
		}
		items, err := lowerArgItems(cond.Args, a.Name, a.ActionType.BlockName())
		if err != nil {
			return nil, err
		}
		block["args"] = map[string]any{"items": items}
		return block, nil
	}

	if a.ActionType.HasSelector() {
		block["target"] = a.Selector.Code()
	}
	items, err := lowerArgItems(args, a.Name, a.ActionType.BlockName())
	if err != nil {
		return nil, err
	}
	block["args"] = map[string]any{"items": items}
	return block, nil
}

func lowerConditional(c *ast.ConditionalNode) ([]any, error) {
	ifBlock := map[string]any{
		"id":     "block",
		"block":  c.ConditionalType.BlockName(),
		"action": c.Name,
	}
	if c.ConditionalType.HasSelector() {
		ifBlock["target"] = c.Selector.Code()
	}
	if c.Inverted {
		ifBlock["attribute"] = "NOT"
	}
	items, err := lowerArgItems(c.Args, c.Name, c.ConditionalType.BlockName())
	if err != nil {
		return nil, err
	}
	ifBlock["args"] = map[string]any{"items": items}

	body, err := lowerExprs(c.Expressions)
	if err != nil {
		return nil, err
	}

	blocks := []any{ifBlock, bracket("open", "norm")}
	blocks = append(blocks, body...)
	blocks = append(blocks, bracket("close", "norm"))

	if len(c.ElseExpressions) > 0 {
		elseBody, err := lowerExprs(c.ElseExpressions)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, map[string]any{"id": "block", "block": "else"}, bracket("open", "norm"))
		blocks = append(blocks, elseBody...)
		blocks = append(blocks, bracket("close", "norm"))
	}
	return blocks, nil
}

func lowerRepeat(r *ast.RepeatNode) ([]any, error) {
	header := map[string]any{
		"id":     "block",
		"block":  "repeat",
		"action": r.Name,
	}

	args := r.Args
	if len(args) > 0 && args[0].Value.Kind == ast.ValCondition {
		cond := args[0].Value.Condition
		header["subAction"] = cond.Name
		header["target"] = cond.Selector.Code()
		if cond.Inverted {
			header["attribute"] = "NOT"
		}
		items, err := lowerArgItems(cond.Args, r.Name, "repeat")
		if err != nil {
			return nil, err
		}
		header["args"] = map[string]any{"items": items}
	} else {
		items, err := lowerArgItems(args, r.Name, "repeat")
		if err != nil {
			return nil, err
		}
		header["args"] = map[string]any{"items": items}
	}

	body, err := lowerExprs(r.Expressions)
	if err != nil {
		return nil, err
	}

	blocks := []any{header, bracket("open", "repeat")}
	blocks = append(blocks, body...)
	blocks = append(blocks, bracket("close", "repeat"))
	return blocks, nil
}

func bracket(direct, typ string) map[string]any {
	return map[string]any{"id": "bracket", "direct": direct, "type": typ}
}

func emptyArgs() map[string]any {
	return map[string]any{"items": []any{}}
}

func itemAt(slot int, id string, data any) map[string]any {
	return map[string]any{"item": map[string]any{"id": id, "data": data}, "slot": slot}
}

func rawObject(m map[string]any) any { return m }

func marshalBlocks(blocks []any) (string, error) {
	b, err := json.Marshal(map[string]any{"blocks": blocks})
	if err != nil {
		return "", fmt.Errorf("lower: marshal blocks: %w", err)
	}
	return string(b), nil
}
