package lower

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/dfrs-lang/dfrsc/internal/catalog"
	"github.com/dfrs-lang/dfrsc/internal/parser"
	"github.com/dfrs-lang/dfrsc/internal/validator"
)

const dump = `{
  "PLAYER ACTION": [
    {
      "df_name": "SetMessage",
      "dfrs_name": "SendMessage",
      "args": [ {"name": "message", "types": ["Text"], "required": true, "plural": false} ],
      "tags": [ {"name": "Mode", "slot": 1, "default": "Global", "options": ["Global", "Local"]} ],
      "has_conditional_arg": true
    },
    {
      "df_name": "GiveItems",
      "dfrs_name": "GiveItems",
      "args": [ {"name": "item", "types": ["Text"], "required": true, "plural": false} ],
      "tags": [],
      "has_conditional_arg": true
    }
  ],
  "PLAYER EVENT": [
    {"df_name": "Join", "dfrs_name": "Join"}
  ],
  "ENTITY EVENT": [
    {"df_name": "EntityDamage", "dfrs_name": "EntityDamage"}
  ],
  "GAME ACTION": [
    {
      "df_name": "SomeGameAction",
      "dfrs_name": "SomeGameAction",
      "args": [ {"name": "item", "types": ["Text"], "required": true, "plural": false} ],
      "tags": [],
      "has_conditional_arg": true
    }
  ],
  "IF PLAYER": [
    {"df_name": "IsSneaking", "dfrs_name": "IsSneaking", "args": [], "tags": [], "has_conditional_arg": false}
  ],
  "IF GAME": [
    {"df_name": "SomeGameCond", "dfrs_name": "SomeGameCond", "args": [], "tags": [], "has_conditional_arg": false}
  ]
}`

func lowerSource(t *testing.T, src string) string {
	t.Helper()
	cat, err := catalog.Parse([]byte(dump))
	if err != nil {
		t.Fatalf("catalog.Parse() error = %v", err)
	}
	file, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parser.Parse() error = %v", err)
	}
	if err := validator.Validate(file, cat); err != nil {
		t.Fatalf("validator.Validate() error = %v", err)
	}
	lines, err := File(file)
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d compiled lines, want 1", len(lines))
	}
	return lines[0].Code
}

func TestEvent_Empty(t *testing.T) {
	snaps.MatchJSON(t, lowerSource(t, `@Join {}`))
}

func TestEvent_CancelledEntity(t *testing.T) {
	snaps.MatchJSON(t, lowerSource(t, `@EntityDamage! {}`))
}

func TestAction_TextArg(t *testing.T) {
	snaps.MatchJSON(t, lowerSource(t, `@Join { p:SendMessage('Hello') }`))
}

func TestConditional_NotWithElse(t *testing.T) {
	src := `@Join {
		!p:IsSneaking() {
			p:SendMessage('A')
		} else {
			p:SendMessage('B')
		}
	}`
	snaps.MatchJSON(t, lowerSource(t, src))
}

func TestAction_NestedConditionArg(t *testing.T) {
	src := `@Join {
		p:GiveItems(!p:IsSneaking(), 'stone')
	}`
	snaps.MatchJSON(t, lowerSource(t, src))
}

func TestAction_TagSlot(t *testing.T) {
	src := `@Join { p:SendMessage('hi', Mode=Local) }`
	snaps.MatchJSON(t, lowerSource(t, src))
}

// The nested condition's own kind must never decide target/selector
// presence — only the enclosing action's kind does. A Game action stays
// target-less even with a Player condition nested inside it.
func TestAction_NestedConditionArg_OuterGameDropsTarget(t *testing.T) {
	src := `@Join {
		g:SomeGameAction(!p:IsSneaking(), 'item')
	}`
	snaps.MatchJSON(t, lowerSource(t, src))
}

// A Player action (which always carries a target) keeps its target even
// when the nested condition is a selector-less Game conditional.
func TestAction_NestedConditionArg_OuterPlayerKeepsTarget(t *testing.T) {
	src := `@Join {
		p:GiveItems(!g:SomeGameCond(), 'stone')
	}`
	snaps.MatchJSON(t, lowerSource(t, src))
}
