package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/dfrs-lang/dfrsc/internal/token"
)

// actionBuckets maps a top-level dump key to the ActionKind it populates.
var actionBuckets = map[string]token.ActionKind{
	"PLAYER ACTION": token.ActionPlayer,
	"ENTITY ACTION": token.ActionEntity,
	"GAME ACTION":   token.ActionGame,
	"SET VARIABLE":  token.ActionVariable,
	"CONTROL":       token.ActionControl,
	"SELECT OBJECT": token.ActionSelect,
}

var conditionalBuckets = map[string]token.ConditionalKind{
	"IF PLAYER":   token.CondPlayer,
	"IF ENTITY":   token.CondEntity,
	"IF GAME":     token.CondGame,
	"IF VARIABLE": token.CondVariable,
}

var eventBuckets = map[string]token.ActionKind{
	"PLAYER EVENT": token.ActionPlayer,
	"ENTITY EVENT": token.ActionEntity,
}

const gameValueBucket = "GAME VALUE"
const startProcessBucket = "START PROCESS"

// Load reads the action-dump JSON at path and returns a fully-decoded,
// immutable Catalog. It is a thin wrapper over LoadWithLogger using a
// no-op logger, for callers (tests, embedders) that don't care about
// load-time diagnostics.
func Load(path string) (*Catalog, error) {
	return LoadWithLogger(path, zap.NewNop())
}

// LoadWithLogger reads the action-dump JSON at path and returns a
// fully-decoded, immutable Catalog, logging the load outcome through log.
//
// The dump's top level is a JSON object keyed by category string, each
// value a JSON array whose element shape depends on the category (actions
// carry args/tags, events and game values carry a smaller shape) — so a
// single struct-typed decode of the whole document isn't possible. gjson
// is used first to discover which categories are actually present (a plain
// top-level key enumeration), and encoding/json decodes each category's
// array into the concrete struct that category's shape requires.
func LoadWithLogger(path string, log *zap.Logger) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Error("catalog: read failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	cat, err := Parse(raw)
	if err != nil {
		log.Error("catalog: parse failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	log.Info("catalog loaded",
		zap.String("path", path),
		zap.Int("action_buckets", len(cat.actions)),
		zap.Int("conditional_buckets", len(cat.conditionals)),
		zap.Int("events", len(cat.events)),
		zap.Int("game_values", len(cat.gameValues)),
		zap.Bool("has_start_process", cat.startProcess != nil),
	)
	return cat, nil
}

// Parse decodes an already-read action-dump document. Exposed separately
// from Load so tests and embedders can supply the catalog in-memory.
func Parse(raw []byte) (*Catalog, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("catalog: invalid JSON document")
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, fmt.Errorf("catalog: expected a top-level JSON object of categories")
	}

	c := &Catalog{
		actions:      map[token.ActionKind]map[string]ActionDescriptor{},
		conditionals: map[token.ConditionalKind]map[string]ActionDescriptor{},
		events:       map[string]EventDescriptor{},
		gameValues:   map[string]GameValueDescriptor{},
	}

	var decodeErr error
	root.ForEach(func(key, value gjson.Result) bool {
		category := key.String()
		rawArr := []byte(value.Raw)

		kind, isAction := actionBuckets[category]
		condKind, isCond := conditionalBuckets[category]

		switch {
		case isAction:
			var descriptors []ActionDescriptor
			if err := json.Unmarshal(rawArr, &descriptors); err != nil {
				decodeErr = fmt.Errorf("catalog: decode %s: %w", category, err)
				return false
			}
			for i := range descriptors {
				resolveArgTypes(descriptors[i].Args)
			}
			bucket := c.actions[kind]
			if bucket == nil {
				bucket = map[string]ActionDescriptor{}
			}
			for _, d := range descriptors {
				bucket[d.DFRSName] = d
			}
			c.actions[kind] = bucket

		case isCond:
			var descriptors []ActionDescriptor
			if err := json.Unmarshal(rawArr, &descriptors); err != nil {
				decodeErr = fmt.Errorf("catalog: decode %s: %w", category, err)
				return false
			}
			for i := range descriptors {
				resolveArgTypes(descriptors[i].Args)
			}
			bucket := c.conditionals[condKind]
			if bucket == nil {
				bucket = map[string]ActionDescriptor{}
			}
			for _, d := range descriptors {
				bucket[d.DFRSName] = d
			}
			c.conditionals[condKind] = bucket

		case category == "PLAYER EVENT" || category == "ENTITY EVENT":
			kind := eventBuckets[category]
			var descriptors []EventDescriptor
			if err := json.Unmarshal(rawArr, &descriptors); err != nil {
				decodeErr = fmt.Errorf("catalog: decode %s: %w", category, err)
				return false
			}
			for _, d := range descriptors {
				d.Kind = kind
				c.events[d.DFRSName] = d
			}

		case category == gameValueBucket:
			var descriptors []struct {
				Name string `json:"name"`
				Type string `json:"type"`
			}
			if err := json.Unmarshal(rawArr, &descriptors); err != nil {
				decodeErr = fmt.Errorf("catalog: decode %s: %w", category, err)
				return false
			}
			for _, d := range descriptors {
				t, _ := token.ParseType(d.Type)
				c.gameValues[d.Name] = GameValueDescriptor{Name: d.Name, Type: t}
			}

		case category == startProcessBucket:
			var descriptors []ActionDescriptor
			if err := json.Unmarshal(rawArr, &descriptors); err != nil {
				decodeErr = fmt.Errorf("catalog: decode %s: %w", category, err)
				return false
			}
			if len(descriptors) > 0 {
				resolveArgTypes(descriptors[0].Args)
				c.startProcess = &descriptors[0]
			}
		}
		return decodeErr == nil
	})

	if decodeErr != nil {
		return nil, decodeErr
	}
	return c, nil
}

func resolveArgTypes(args []ArgDef) {
	for i := range args {
		for _, raw := range args[i].RawTypes {
			if raw == "Any" {
				args[i].Types = []token.Type{token.TypeAny}
				break
			}
			if t, ok := token.ParseType(raw); ok {
				args[i].Types = append(args[i].Types, t)
			}
		}
	}
}
