package lower

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/sjson"

	"github.com/dfrs-lang/dfrsc/internal/ast"
)

// lowerArgItems encodes args into the platform's `items` list. args[0] is
// skipped when it carries a nested Condition: the caller has already
// folded it into the enclosing block's subAction/target/attribute fields
// (spec invariant 2).
func lowerArgItems(args []ast.Arg, actionName, blockName string) ([]any, error) {
	items := make([]any, 0, len(args))
	for i, a := range args {
		if i == 0 && a.Value.Kind == ast.ValCondition {
			continue
		}
		id, data, err := encodeArgValueData(a.Value, actionName, blockName)
		if err != nil {
			return nil, err
		}
		slot := a.Index
		if a.Value.Kind == ast.ValTag {
			if a.Value.Tag.Definition == nil {
				return nil, fmt.Errorf("lower: tag %q missing definition (validate must run first)", a.Value.Tag.Name)
			}
			slot = a.Value.Tag.Definition.Slot
		}
		items = append(items, map[string]any{
			"item": map[string]any{"id": id, "data": json.RawMessage(data)},
			"slot": slot,
		})
	}
	return items, nil
}

// encodeArgValueData builds the variant-shaped `data` fragment for a
// single ArgValue, naming exactly that variant's keys (spec.md §4.F,
// §9: "ArgValueData has variant-dependent key sets — encode each
// variant's fields explicitly"). Built incrementally with sjson.SetBytes
// rather than a single derived struct, matching original_source's
// hand-written per-variant serializer.
func encodeArgValueData(v ast.ArgValue, actionName, blockName string) (id string, data []byte, err error) {
	doc := []byte(`{}`)
	switch v.Kind {
	case ast.ValText:
		doc, err = sjson.SetBytes(doc, "name", v.Text)
		return "comp", doc, err

	case ast.ValNumber:
		doc, err = sjson.SetBytes(doc, "name", strconv.FormatFloat(float64(v.Number), 'f', -1, 32))
		return "num", doc, err

	case ast.ValString:
		doc, err = sjson.SetBytes(doc, "name", v.String)
		return "txt", doc, err

	case ast.ValLocation:
		// Known wire-format quirk (spec.md §9 Q1): the emitted "z" key
		// carries the source Y, and "y" carries the source Z.
		pitch, yaw := float32(0), float32(0)
		if v.Location.Pitch != nil {
			pitch = *v.Location.Pitch
		}
		if v.Location.Yaw != nil {
			yaw = *v.Location.Yaw
		}
		doc, err = sjson.SetBytes(doc, "isBlock", false)
		if err != nil {
			return "", nil, err
		}
		doc, err = sjson.SetBytes(doc, "loc.x", v.Location.X)
		if err != nil {
			return "", nil, err
		}
		doc, err = sjson.SetBytes(doc, "loc.z", v.Location.Y)
		if err != nil {
			return "", nil, err
		}
		doc, err = sjson.SetBytes(doc, "loc.y", v.Location.Z)
		if err != nil {
			return "", nil, err
		}
		doc, err = sjson.SetBytes(doc, "loc.pitch", pitch)
		if err != nil {
			return "", nil, err
		}
		doc, err = sjson.SetBytes(doc, "loc.yaw", yaw)
		return "loc", doc, err

	case ast.ValVector:
		doc, err = sjson.SetBytes(doc, "x", v.Vector.X)
		if err != nil {
			return "", nil, err
		}
		doc, err = sjson.SetBytes(doc, "y", v.Vector.Y)
		if err != nil {
			return "", nil, err
		}
		doc, err = sjson.SetBytes(doc, "z", v.Vector.Z)
		return "vec", doc, err

	case ast.ValSound:
		doc, err = sjson.SetBytes(doc, "sound", v.Sound.ID)
		if err != nil {
			return "", nil, err
		}
		doc, err = sjson.SetBytes(doc, "vol", v.Sound.Volume)
		if err != nil {
			return "", nil, err
		}
		doc, err = sjson.SetBytes(doc, "pitch", v.Sound.Pitch)
		return "snd", doc, err

	case ast.ValPotion:
		doc, err = sjson.SetBytes(doc, "pot", v.Potion.ID)
		if err != nil {
			return "", nil, err
		}
		doc, err = sjson.SetBytes(doc, "amp", v.Potion.Amplifier)
		if err != nil {
			return "", nil, err
		}
		doc, err = sjson.SetBytes(doc, "dur", v.Potion.Duration)
		return "pot", doc, err

	case ast.ValTag:
		doc, err = sjson.SetBytes(doc, "action", actionName)
		if err != nil {
			return "", nil, err
		}
		doc, err = sjson.SetBytes(doc, "block", blockName)
		if err != nil {
			return "", nil, err
		}
		doc, err = sjson.SetBytes(doc, "option", v.Tag.Value)
		if err != nil {
			return "", nil, err
		}
		doc, err = sjson.SetBytes(doc, "tag", v.Tag.Name)
		return "bl_tag", doc, err

	case ast.ValVariable:
		doc, err = sjson.SetBytes(doc, "name", v.Variable.Name)
		if err != nil {
			return "", nil, err
		}
		doc, err = sjson.SetBytes(doc, "scope", v.Variable.Scope.String())
		return "var", doc, err

	case ast.ValGameValue:
		doc, err = sjson.SetBytes(doc, "type", v.GameValue.Value)
		if err != nil {
			return "", nil, err
		}
		doc, err = sjson.SetBytes(doc, "target", v.GameValue.Selector.Code())
		return "g_val", doc, err
	}

	return "", nil, fmt.Errorf("lower: unsupported argument value kind %v", v.Kind)
}

// paramItem lowers one function parameter to its header-args item
// (spec.md §4.F: "data=FunctionParam{…}").
func paramItem(p *ast.FunctionParamNode, slot int) (map[string]any, error) {
	doc := []byte(`{}`)
	doc, err := sjson.SetBytes(doc, "name", p.Name)
	if err != nil {
		return nil, err
	}
	doc, err = sjson.SetBytes(doc, "type", p.Type.String())
	if err != nil {
		return nil, err
	}
	doc, err = sjson.SetBytes(doc, "optional", p.Optional)
	if err != nil {
		return nil, err
	}
	doc, err = sjson.SetBytes(doc, "plural", p.Multiple)
	if err != nil {
		return nil, err
	}
	if p.Default != nil {
		id, data, err := encodeArgValueData(*p.Default, "", "func")
		if err != nil {
			return nil, err
		}
		defaultDoc := []byte(`{}`)
		defaultDoc, err = sjson.SetBytes(defaultDoc, "id", id)
		if err != nil {
			return nil, err
		}
		defaultDoc, err = sjson.SetRawBytes(defaultDoc, "data", data)
		if err != nil {
			return nil, err
		}
		doc, err = sjson.SetRawBytes(doc, "default_value", defaultDoc)
		if err != nil {
			return nil, err
		}
	}
	return map[string]any{
		"item": map[string]any{"id": "pn_el", "data": json.RawMessage(doc)},
		"slot": slot,
	}, nil
}
