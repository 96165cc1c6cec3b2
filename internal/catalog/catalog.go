// Package catalog loads the external action-dump JSON (spec.md §6) and
// exposes typed, read-only queries over it. The catalog is loaded once per
// compilation and shared immutably between the validator and the lowerer
// (spec.md §3, §9).
package catalog

import (
	"fmt"

	"github.com/dfrs-lang/dfrsc/internal/token"
)

// ArgDef describes one declared parameter of a catalog action, conditional,
// or event.
type ArgDef struct {
	Name     string       `json:"name"`
	Types    []token.Type `json:"-"`
	RawTypes []string     `json:"types"`
	Required bool         `json:"required"`
	Plural   bool         `json:"plural"`
}

// TagDef describes one declared tag slot of a catalog action.
type TagDef struct {
	Name    string   `json:"name"`
	Slot    int      `json:"slot"`
	Default string   `json:"default"`
	Options []string `json:"options"`
}

// ActionDescriptor is a catalog entry for an action, conditional, or the
// singleton START PROCESS action (they share shape; Tags is empty for
// conditionals and START PROCESS when the dump omits it).
type ActionDescriptor struct {
	DFName            string   `json:"df_name"`
	DFRSName          string   `json:"dfrs_name"`
	Args              []ArgDef `json:"args"`
	Tags              []TagDef `json:"tags"`
	HasConditionalArg bool     `json:"has_conditional_arg"`
}

// Tag looks up a declared tag by name.
func (a ActionDescriptor) Tag(name string) (TagDef, bool) {
	for _, t := range a.Tags {
		if t.Name == name {
			return t, true
		}
	}
	return TagDef{}, false
}

// EventDescriptor is a catalog entry for a player or entity event.
type EventDescriptor struct {
	DFName   string          `json:"df_name"`
	DFRSName string          `json:"dfrs_name"`
	Kind     token.ActionKind
}

// GameValueDescriptor is a catalog entry for a read-only game value
// expression (spec.md glossary: "Game value").
type GameValueDescriptor struct {
	Name string     `json:"name"`
	Type token.Type `json:"-"`
}

// Catalog is the fully-loaded, immutable action-dump. Every query method
// is safe for concurrent use by multiple readers (spec.md §5, §9).
type Catalog struct {
	actions      map[token.ActionKind]map[string]ActionDescriptor
	conditionals map[token.ConditionalKind]map[string]ActionDescriptor
	events       map[string]EventDescriptor
	gameValues   map[string]GameValueDescriptor
	startProcess *ActionDescriptor
}

// Action looks up an action by kind and source name; ok is false when the
// bucket is absent from the dump or has no entry of that name.
func (c *Catalog) Action(kind token.ActionKind, dfrsName string) (ActionDescriptor, bool) {
	bucket, ok := c.actions[kind]
	if !ok {
		return ActionDescriptor{}, false
	}
	a, ok := bucket[dfrsName]
	return a, ok
}

// Conditional looks up a conditional by kind and source name.
func (c *Catalog) Conditional(kind token.ConditionalKind, dfrsName string) (ActionDescriptor, bool) {
	bucket, ok := c.conditionals[kind]
	if !ok {
		return ActionDescriptor{}, false
	}
	a, ok := bucket[dfrsName]
	return a, ok
}

// Event looks up an event by its source name, regardless of bucket; the
// caller (the validator) determines event_type from the returned Kind
// (spec invariant 4).
func (c *Catalog) Event(name string) (EventDescriptor, bool) {
	e, ok := c.events[name]
	return e, ok
}

// GameValue looks up a game value by name.
func (c *Catalog) GameValue(name string) (GameValueDescriptor, bool) {
	g, ok := c.gameValues[name]
	return g, ok
}

// StartProcess returns the catalog's singleton START PROCESS action,
// supplemented from original_source (spec.md §6 lists it among the
// category strings but spec.md's distillation never names an operation
// for it).
func (c *Catalog) StartProcess() (ActionDescriptor, bool) {
	if c.startProcess == nil {
		return ActionDescriptor{}, false
	}
	return *c.startProcess, true
}

func (d ArgDef) String() string {
	return fmt.Sprintf("%s:%v", d.Name, d.Types)
}
