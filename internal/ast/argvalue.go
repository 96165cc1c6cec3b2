package ast

import "github.com/dfrs-lang/dfrsc/internal/token"

// ArgValueKind discriminates the ArgValue tagged union.
type ArgValueKind int

const (
	ValEmpty ArgValueKind = iota
	ValNumber
	ValString
	ValText
	ValLocation
	ValVector
	ValSound
	ValPotion
	ValTag
	ValVariable
	ValGameValue
	ValCondition
)

// Location is a 3-, 4- or 5-component location literal (spec.md §3: pitch
// and yaw optional; yaw only when pitch is given).
type Location struct {
	X, Y, Z    float32
	Pitch, Yaw *float32
}

// Vector is a 3-component vector literal.
type Vector struct {
	X, Y, Z float32
}

// Sound is a sound literal: id, volume, pitch.
type Sound struct {
	ID     string
	Volume float32
	Pitch  float32
}

// Potion is a potion literal: id, amplifier, duration.
type Potion struct {
	ID         string
	Amplifier  float32
	Duration   float32
}

// Tag is a name=value tag argument. Definition is nil until validation
// fills it in (spec invariant 3).
type Tag struct {
	Name       string
	Value      string
	Definition *TagDefinition
	ValueSpan  token.Span
}

// TagDefinition is the catalog-resolved back-reference a Tag carries after
// validation: its declared slot and default option.
type TagDefinition struct {
	Slot    int
	Default string
}

// Variable is a %name reference resolved to a declared scope.
type Variable struct {
	Name  string
	Scope token.VariableScope
}

// GameValue is a <identifier>@selector? reference.
type GameValue struct {
	Value        string
	Selector     token.Selector
	SelectorSpan token.Span
}

// Condition is a nested conditional embedded as the first argument of an
// action or repeat (spec invariant 2).
type Condition struct {
	Name            string
	Args            []Arg
	Selector        token.Selector
	ConditionalType token.ConditionalKind
	Inverted        bool
}

// ArgValue is the closed variant for every kind of argument value. Exactly
// one field is populated, selected by Kind.
type ArgValue struct {
	Kind      ArgValueKind
	Number    float32
	String    string
	Text      string
	Location  Location
	Vector    Vector
	Sound     Sound
	Potion    Potion
	Tag       Tag
	Variable  Variable
	GameValue GameValue
	Condition Condition
}
