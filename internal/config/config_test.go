package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Quiz.NumChoices != 10 {
		t.Errorf("NumChoices = %d, want 10", cfg.Quiz.NumChoices)
	}
	if !cfg.Quiz.StrictScoring {
		t.Error("StrictScoring should default to true")
	}
	if cfg.Images.ThumbnailWidth != 480 {
		t.Errorf("ThumbnailWidth = %d, want 480", cfg.Images.ThumbnailWidth)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}
	if cfg.UI.Title != "carpick" {
		t.Errorf("Title = %q, want defaults", cfg.UI.Title)
	}
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
ui:
  title: Garage Quiz
paths:
  data_dir: /srv/cars
images:
  thumbnail_width: 640
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UI.Title != "Garage Quiz" {
		t.Errorf("Title = %q, want Garage Quiz", cfg.UI.Title)
	}
	if cfg.UI.Subtitle != "guess the car" {
		t.Errorf("Subtitle = %q, want default preserved", cfg.UI.Subtitle)
	}
	if cfg.Paths.DataDir != "/srv/cars" {
		t.Errorf("DataDir = %q, want /srv/cars", cfg.Paths.DataDir)
	}
	if cfg.Images.ThumbnailWidth != 640 {
		t.Errorf("ThumbnailWidth = %d, want 640", cfg.Images.ThumbnailWidth)
	}
	if cfg.Quiz.NumChoices != 10 {
		t.Errorf("NumChoices = %d, want untouched default", cfg.Quiz.NumChoices)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ui: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestLoad_RejectsWrongNumChoices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("quiz:\n  num_choices: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for num_choices != 10")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CARPICK_DATA_DIR", "/mnt/photos")
	t.Setenv("CARPICK_ADDR", ":9999")
	t.Setenv("CARPICK_CORS_ORIGINS", "https://a.test, https://b.test")
	t.Setenv("CARPICK_STRICT_SCORING", "false")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Paths.DataDir != "/mnt/photos" {
		t.Errorf("DataDir = %q, want /mnt/photos", cfg.Paths.DataDir)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Addr = %q, want :9999", cfg.Server.Addr)
	}
	want := []string{"https://a.test", "https://b.test"}
	if len(cfg.Server.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.Server.CORSOrigins, want)
	}
	for i := range want {
		if cfg.Server.CORSOrigins[i] != want[i] {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.Server.CORSOrigins[i], want[i])
		}
	}
	if cfg.Quiz.StrictScoring {
		t.Error("StrictScoring should be overridden to false")
	}
}

func TestLoad_ValidatesThumbnailWidth(t *testing.T) {
	t.Setenv("CARPICK_THUMBNAIL_WIDTH", "12")
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected validation error for tiny thumbnail width")
	}
}

func TestPathHelpers(t *testing.T) {
	p := PathsConfig{IndexDir: "/idx", AssetsDir: "/assets"}
	if got := p.IndexPath(); got != filepath.Join("/idx", "cars_index.json") {
		t.Errorf("IndexPath = %q", got)
	}
	if got := p.LexiconPath(); got != filepath.Join("/idx", "lexicon.json") {
		t.Errorf("LexiconPath = %q", got)
	}
	if got := p.ThumbsDir(); got != filepath.Join("/assets", "thumbnails") {
		t.Errorf("ThumbsDir = %q", got)
	}
}

func TestXDGDataHome_EnvWins(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/custom/share")
	if got := XDGDataHome(); got != "/custom/share" {
		t.Errorf("XDGDataHome = %q, want /custom/share", got)
	}
}
