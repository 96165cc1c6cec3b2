package parser

import (
	"testing"

	"github.com/dfrs-lang/dfrsc/internal/ast"
	"github.com/dfrs-lang/dfrsc/internal/token"
)

func TestParse_EventWithAction(t *testing.T) {
	src := `@Join {
		p:SendMessage('Hello')
	}`
	file, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(file.Events) != 1 {
		t.Fatalf("got %d events, want 1", len(file.Events))
	}
	ev := file.Events[0]
	if ev.Event != "Join" || ev.Cancelled {
		t.Errorf("event = %+v, want Event=Join Cancelled=false", ev)
	}
	if len(ev.Expressions) != 1 || ev.Expressions[0].Action == nil {
		t.Fatalf("expected single action expression, got %+v", ev.Expressions)
	}
	a := ev.Expressions[0].Action
	if a.ActionType != token.ActionPlayer || a.Name != "SendMessage" {
		t.Errorf("action = %+v, want Player/SendMessage", a)
	}
	if len(a.Args) != 1 || a.Args[0].Value.Kind != ast.ValText || a.Args[0].Value.Text != "Hello" {
		t.Errorf("action args = %+v, want single Text(Hello)", a.Args)
	}
}

func TestParse_CancelledEvent(t *testing.T) {
	file, err := Parse(`@EntityDamage! {}`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !file.Events[0].Cancelled {
		t.Error("expected Cancelled = true")
	}
}

func TestParse_Selector(t *testing.T) {
	file, err := Parse(`@Join {
		p@allplayers:SendMessage('hi')
	}`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	a := file.Events[0].Expressions[0].Action
	if a.Selector != token.SelectorAllPlayers {
		t.Errorf("selector = %v, want AllPlayers", a.Selector)
	}
}

func TestParse_Function(t *testing.T) {
	src := `fn Greet(name: String, times?: Number) {
		p:SendMessage('hi')
	}`
	file, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(file.Functions) != 1 {
		t.Fatalf("got %d functions, want 1", len(file.Functions))
	}
	fn := file.Functions[0]
	if fn.Name != "Greet" || len(fn.Params) != 2 {
		t.Fatalf("function = %+v", fn)
	}
	if fn.Params[0].Type != token.TypeString || fn.Params[0].Optional {
		t.Errorf("param 0 = %+v, want required String", fn.Params[0])
	}
	if fn.Params[1].Type != token.TypeNumber || !fn.Params[1].Optional {
		t.Errorf("param 1 = %+v, want optional Number", fn.Params[1])
	}
}

func TestParse_Conditional_WithElse(t *testing.T) {
	src := `@Join {
		p:IsSneaking() {
			p:SendMessage('sneaking')
		} else {
			p:SendMessage('standing')
		}
	}`
	file, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	expr := file.Events[0].Expressions[0]
	if expr.Conditional == nil {
		t.Fatalf("expected conditional expression, got %+v", expr)
	}
	c := expr.Conditional
	if c.ConditionalType != token.CondPlayer || c.Name != "IsSneaking" {
		t.Errorf("conditional = %+v, want Player/IsSneaking", c)
	}
	if len(c.Expressions) != 1 || len(c.ElseExpressions) != 1 {
		t.Errorf("conditional bodies = then:%d else:%d, want 1/1", len(c.Expressions), len(c.ElseExpressions))
	}
}

func TestParse_InvertedConditional(t *testing.T) {
	src := `@Join {
		!p:IsSneaking() {
			p:SendMessage('standing')
		}
	}`
	file, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !file.Events[0].Expressions[0].Conditional.Inverted {
		t.Error("expected Inverted = true")
	}
}

func TestParse_ConditionAsFirstArg(t *testing.T) {
	src := `@Join {
		c:IfElse(p:IsSneaking(), 'a', 'b')
	}`
	file, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	a := file.Events[0].Expressions[0].Action
	if len(a.Args) != 3 {
		t.Fatalf("got %d args, want 3", len(a.Args))
	}
	if a.Args[0].Value.Kind != ast.ValCondition {
		t.Fatalf("args[0] kind = %v, want ValCondition", a.Args[0].Value.Kind)
	}
	cond := a.Args[0].Value.Condition
	if cond.Name != "IsSneaking" || cond.ConditionalType != token.CondPlayer {
		t.Errorf("condition = %+v, want Player/IsSneaking", cond)
	}
	// The Condition itself does not consume a positional slot.
	if a.Args[1].Index != 0 || a.Args[2].Index != 1 {
		t.Errorf("positional indices = %d,%d; want 0,1", a.Args[1].Index, a.Args[2].Index)
	}
}

func TestParse_Tag(t *testing.T) {
	src := `@Join {
		p:SendMessage('hi', Mode=Global)
	}`
	file, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	a := file.Events[0].Expressions[0].Action
	if len(a.Args) != 2 || a.Args[1].Value.Kind != ast.ValTag {
		t.Fatalf("args = %+v, want second arg to be a Tag", a.Args)
	}
	tag := a.Args[1].Value.Tag
	if tag.Name != "Mode" || tag.Value != "Global" {
		t.Errorf("tag = %+v, want Mode=Global", tag)
	}
}

func TestParse_RepeatedTagKeepsLast(t *testing.T) {
	src := `@Join {
		p:SendMessage('hi', Mode=Global, Mode=Local)
	}`
	file, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	a := file.Events[0].Expressions[0].Action
	var tags []ast.Tag
	for _, arg := range a.Args {
		if arg.Value.Kind == ast.ValTag {
			tags = append(tags, arg.Value.Tag)
		}
	}
	if len(tags) != 1 {
		t.Fatalf("tags = %+v, want exactly one (last wins)", tags)
	}
	if tags[0].Value != "Local" {
		t.Errorf("tag value = %q, want %q (the last occurrence)", tags[0].Value, "Local")
	}
}

func TestParse_Variable(t *testing.T) {
	src := `@Join {
		line count = Count
		p:SendMessage(%count)
	}`
	file, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	exprs := file.Events[0].Expressions
	if exprs[0].Variable == nil || exprs[0].Variable.DFRSName != "count" {
		t.Fatalf("expected variable declaration, got %+v", exprs[0])
	}
	a := exprs[1].Action
	if len(a.Args) != 1 || a.Args[0].Value.Kind != ast.ValVariable {
		t.Fatalf("args = %+v, want single variable ref", a.Args)
	}
	if a.Args[0].Value.Variable.Scope != token.ScopeLine {
		t.Errorf("variable scope = %v, want ScopeLine", a.Args[0].Value.Variable.Scope)
	}
}

func TestParse_UnknownVariable(t *testing.T) {
	src := `@Join {
		p:SendMessage(%missing)
	}`
	_, err := Parse(src)
	perr, ok := err.(*Error)
	if !ok || perr.Kind != UnknownVariable {
		t.Fatalf("err = %v, want UnknownVariable", err)
	}
}

func TestParse_GameValue(t *testing.T) {
	src := `@Join {
		p:SendMessage(<Health@victim>)
	}`
	file, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	a := file.Events[0].Expressions[0].Action
	gv := a.Args[0].Value.GameValue
	if a.Args[0].Value.Kind != ast.ValGameValue || gv.Value != "Health" || gv.Selector != token.SelectorVictim {
		t.Errorf("game value = %+v, want Health@Victim", a.Args[0].Value)
	}
}

func TestParse_CompoundLiterals(t *testing.T) {
	src := `@Join {
		p:Teleport(loc(1, 2, 3, 10, 20))
		p:Teleport(vec(1, 2, 3))
		p:PlaySound(sound("note.pling", 1, 1))
		p:GivePotion(pot("speed", 1, 20))
	}`
	file, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	exprs := file.Events[0].Expressions
	loc := exprs[0].Action.Args[0].Value
	if loc.Kind != ast.ValLocation || loc.Location.X != 1 || loc.Location.Pitch == nil || *loc.Location.Pitch != 10 {
		t.Errorf("location = %+v", loc)
	}
	vec := exprs[1].Action.Args[0].Value
	if vec.Kind != ast.ValVector || vec.Vector.Z != 3 {
		t.Errorf("vector = %+v", vec)
	}
	snd := exprs[2].Action.Args[0].Value
	if snd.Kind != ast.ValSound || snd.Sound.ID != "note.pling" {
		t.Errorf("sound = %+v", snd)
	}
	pot := exprs[3].Action.Args[0].Value
	if pot.Kind != ast.ValPotion || pot.Potion.ID != "speed" {
		t.Errorf("potion = %+v", pot)
	}
}

func TestParse_Repeat(t *testing.T) {
	src := `@Join {
		repeat Forever() {
			p:SendMessage('again')
		}
	}`
	file, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	r := file.Events[0].Expressions[0].Repeat
	if r == nil || r.Name != "Forever" || len(r.Expressions) != 1 {
		t.Fatalf("repeat = %+v", r)
	}
}

func TestParse_Call(t *testing.T) {
	src := `fn Greet() {
		p:SendMessage('hi')
	}
	@Join {
		Greet()
	}`
	file, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	c := file.Events[0].Expressions[0].Call
	if c == nil || c.Name != "Greet" {
		t.Fatalf("call = %+v", c)
	}
}

func TestParse_InvalidToken(t *testing.T) {
	_, err := Parse(`@Join { )) }`)
	perr, ok := err.(*Error)
	if !ok || perr.Kind != InvalidToken {
		t.Fatalf("err = %v, want InvalidToken", err)
	}
}
