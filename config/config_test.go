package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/reoring/xsdform/config"
	"github.com/reoring/xsdform/field"
	"github.com/reoring/xsdform/schema"
)

func TestParse_Full(t *testing.T) {
	cfg, err := config.Parse([]byte(`
logging:
  level: debug
  format: json
language: ja
server:
  addr: 127.0.0.1:9000
  read_timeout: 3s
value_lists:
  colours:
    - R
    - {label: Green, value: G}
    - value: B
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" || cfg.Language != "ja" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.ReadTimeout != 3*time.Second || cfg.Server.WriteTimeout != 10*time.Second {
		t.Fatalf("unexpected server %+v", cfg.Server)
	}
	want := []config.ValueEntry{{Label: "R", Value: "R"}, {Label: "Green", Value: "G"}, {Label: "B", Value: "B"}}
	got := cfg.ValueLists["colours"]
	if len(got) != len(want) {
		t.Fatalf("unexpected entries %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d: want %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := config.Parse([]byte(`{}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" || cfg.Language != "en" || cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"level":    "logging: {level: loud}",
		"format":   "logging: {format: xml}",
		"language": "language: fr",
		"list":     "value_lists: {empty: []}",
		"yaml":     "logging: [",
	}
	for name, doc := range cases {
		if _, err := config.Parse([]byte(doc)); err == nil {
			t.Fatalf("%s: expected an error", name)
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("XSDFORM_LANGUAGE", "ja")
	t.Setenv("XSDFORM_SERVER_ADDR", ":7000")
	t.Setenv("LIST_VALUE", "X")
	cfg, err := config.Parse([]byte("language: en\nvalue_lists:\n  l: [${LIST_VALUE}]\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Language != "ja" || cfg.Server.Addr != ":7000" {
		t.Fatalf("env must override: %+v", cfg)
	}
	if cfg.ValueLists["l"][0].Value != "X" {
		t.Fatalf("env must be expanded: %+v", cfg.ValueLists)
	}
}

func TestLoadWithFallback(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.LoadWithFallback(filepath.Join(dir, "missing.yaml"))
	if err != nil || cfg.Language != "en" {
		t.Fatalf("want defaults, got %+v (%v)", cfg, err)
	}
	path := filepath.Join(dir, "xsdform.yaml")
	if err := os.WriteFile(path, []byte("language: ja\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err = config.LoadWithFallback(path)
	if err != nil || cfg.Language != "ja" {
		t.Fatalf("want file config, got %+v (%v)", cfg, err)
	}
}

func TestLists_FeedCombo(t *testing.T) {
	cfg, err := config.Parse([]byte("value_lists:\n  sizes: [{label: Small, value: S}, L]\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	st := &schema.SimpleType{Name: "size", Base: schema.MustBuiltin("string"),
		AppInfo: []schema.AppInfo{{Name: "valueList", Value: "sizes"}}}
	f, err := field.ForAttribute(&schema.Attribute{Name: "size", Type: st}, field.Options{Lists: cfg.Lists()})
	if err != nil {
		t.Fatalf("ForAttribute: %v", err)
	}
	if f.Values().Len() != 2 {
		t.Fatalf("want 2 entries, got %d", f.Values().Len())
	}
	f.SetText("S")
	if key, _ := f.SelectedKey(); key != "Small" {
		t.Fatalf("want Small, got %q", key)
	}
}

func TestLogger_Level(t *testing.T) {
	cfg, _ := config.Parse([]byte("logging: {level: warn, format: json}"))
	var buf bytes.Buffer
	log := cfg.Logger(&buf)
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output %s", buf.String())
	}
}
