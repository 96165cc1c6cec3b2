package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/dfrs-lang/dfrsc/internal/token"
)

const sampleDump = `{
  "PLAYER ACTION": [
    {
      "df_name": "SetMessage",
      "dfrs_name": "SendMessage",
      "args": [ {"name": "message", "types": ["Text"], "required": true, "plural": false} ],
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
  "IF PLAYER": [
    {
      "df_name": "IsSneaking",
      "dfrs_name": "IsSneaking",
      "args": [],
      "tags": [],
      "has_conditional_arg": false
    }
  ],
  "GAME VALUE": [
    {"name": "Health", "type": "Number"}
  ],
  "START PROCESS": [
    {"df_name": "StartProcess", "dfrs_name": "StartProcess", "args": [], "tags": [], "has_conditional_arg": false}
  ]
}`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sampleDump))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if _, ok := c.Action(token.ActionPlayer, "SendMessage"); !ok {
		t.Error("expected SendMessage to resolve in PLAYER ACTION bucket")
	}
	if _, ok := c.Action(token.ActionEntity, "SendMessage"); ok {
		t.Error("SendMessage should not resolve in ENTITY ACTION bucket")
	}

	ev, ok := c.Event("Join")
	if !ok || ev.Kind != token.ActionPlayer {
		t.Errorf("Event(Join) = %+v, %v; want Kind=Player", ev, ok)
	}
	ev2, ok := c.Event("EntityDamage")
	if !ok || ev2.Kind != token.ActionEntity {
		t.Errorf("Event(EntityDamage) = %+v, %v; want Kind=Entity", ev2, ok)
	}

	if _, ok := c.Conditional(token.CondPlayer, "IsSneaking"); !ok {
		t.Error("expected IsSneaking to resolve in IF PLAYER bucket")
	}

	gv, ok := c.GameValue("Health")
	if !ok || gv.Type != token.TypeNumber {
		t.Errorf("GameValue(Health) = %+v, %v; want Type=Number", gv, ok)
	}

	if _, ok := c.StartProcess(); !ok {
		t.Error("expected StartProcess singleton to be populated")
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Error("Parse() error = nil, want error for invalid JSON")
	}
}

func TestLoad_ReadsFileAndParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actiondump.json")
	if err := os.WriteFile(path, []byte(sampleDump), 0o644); err != nil {
		t.Fatalf("os.WriteFile() error = %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, ok := c.Event("Join"); !ok {
		t.Error("expected Join event to resolve after Load")
	}
}

func TestLoadWithLogger_LogsAndParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actiondump.json")
	if err := os.WriteFile(path, []byte(sampleDump), 0o644); err != nil {
		t.Fatalf("os.WriteFile() error = %v", err)
	}
	logger := zap.NewNop()
	c, err := LoadWithLogger(path, logger)
	if err != nil {
		t.Fatalf("LoadWithLogger() error = %v", err)
	}
	if _, ok := c.Action(token.ActionPlayer, "SendMessage"); !ok {
		t.Error("expected SendMessage to resolve after LoadWithLogger")
	}
}

func TestLoadWithLogger_MissingFile(t *testing.T) {
	if _, err := LoadWithLogger(filepath.Join(t.TempDir(), "missing.json"), zap.NewNop()); err == nil {
		t.Error("LoadWithLogger() error = nil, want error for missing file")
	}
}

func TestParse_ArgTypesResolved(t *testing.T) {
	c, err := Parse([]byte(sampleDump))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	a, _ := c.Action(token.ActionPlayer, "SendMessage")
	if len(a.Args) != 1 || len(a.Args[0].Types) != 1 || a.Args[0].Types[0] != token.TypeText {
		t.Errorf("SendMessage args = %+v, want single Text-typed arg", a.Args)
	}
}
