// Package config loads carpick settings from an optional YAML file,
// fills gaps from defaults, and applies CARPICK_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// NumChoices is the number of options presented per round. The config
// file may state it, but validation rejects any other value.
const NumChoices = 10

// Config holds the resolved runtime settings.
type Config struct {
	UI     UIConfig
	Paths  PathsConfig
	Quiz   QuizConfig
	Images ImagesConfig
	Server ServerConfig
}

// UIConfig controls the strings shown in the TUI chrome.
type UIConfig struct {
	Title    string
	Subtitle string
}

// PathsConfig locates the image library and derived artifacts.
type PathsConfig struct {
	// DataDir is the directory scanned for car photos.
	DataDir string
	// IndexDir holds cars_index.json and lexicon.json.
	IndexDir string
	// AssetsDir holds generated assets such as thumbnails.
	AssetsDir string
	// DocsDir holds the static docs bundle served by carpick serve.
	DocsDir string
}

// QuizConfig tunes round generation and scoring.
type QuizConfig struct {
	NumChoices    int
	StrictScoring bool
}

// ImagesConfig tunes thumbnail rendering.
type ImagesConfig struct {
	ThumbnailWidth int
}

// ServerConfig tunes the HTTP API.
type ServerConfig struct {
	Addr        string
	CORSOrigins []string
}

// IndexPath returns the location of the cached car index.
func (p PathsConfig) IndexPath() string {
	return filepath.Join(p.IndexDir, "cars_index.json")
}

// LexiconPath returns the location of the editable lexicon file.
func (p PathsConfig) LexiconPath() string {
	return filepath.Join(p.IndexDir, "lexicon.json")
}

// ThumbsDir returns the thumbnail cache directory.
func (p PathsConfig) ThumbsDir() string {
	return filepath.Join(p.AssetsDir, "thumbnails")
}

// Default returns the built-in settings with paths under the XDG data home.
func Default() Config {
	root := appDataDir()
	return Config{
		UI: UIConfig{
			Title:    "carpick",
			Subtitle: "guess the car",
		},
		Paths: PathsConfig{
			DataDir:   filepath.Join(root, "data"),
			IndexDir:  filepath.Join(root, "index"),
			AssetsDir: filepath.Join(root, "assets"),
			DocsDir:   filepath.Join(root, "docs"),
		},
		Quiz: QuizConfig{
			NumChoices:    NumChoices,
			StrictScoring: true,
		},
		Images: ImagesConfig{
			ThumbnailWidth: 480,
		},
		Server: ServerConfig{
			Addr:        ":8080",
			CORSOrigins: []string{"*"},
		},
	}
}

// fileConfig mirrors Config with pointer fields so a YAML file can
// override any subset of settings without clobbering the rest.
type fileConfig struct {
	UI *struct {
		Title    *string `yaml:"title"`
		Subtitle *string `yaml:"subtitle"`
	} `yaml:"ui"`
	Paths *struct {
		DataDir   *string `yaml:"data_dir"`
		IndexDir  *string `yaml:"index_dir"`
		AssetsDir *string `yaml:"assets_dir"`
		DocsDir   *string `yaml:"docs_dir"`
	} `yaml:"paths"`
	Quiz *struct {
		NumChoices    *int  `yaml:"num_choices"`
		StrictScoring *bool `yaml:"strict_scoring"`
	} `yaml:"quiz"`
	Images *struct {
		ThumbnailWidth *int `yaml:"thumbnail_width"`
	} `yaml:"images"`
	Server *struct {
		Addr        *string  `yaml:"addr"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
}

// Load resolves the effective configuration: defaults, then the YAML
// file at path (missing file is fine), then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No file, defaults apply.
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		mergeFile(&cfg, fc)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeFile(cfg *Config, fc fileConfig) {
	if fc.UI != nil {
		setString(&cfg.UI.Title, fc.UI.Title)
		setString(&cfg.UI.Subtitle, fc.UI.Subtitle)
	}
	if fc.Paths != nil {
		setString(&cfg.Paths.DataDir, fc.Paths.DataDir)
		setString(&cfg.Paths.IndexDir, fc.Paths.IndexDir)
		setString(&cfg.Paths.AssetsDir, fc.Paths.AssetsDir)
		setString(&cfg.Paths.DocsDir, fc.Paths.DocsDir)
	}
	if fc.Quiz != nil {
		setInt(&cfg.Quiz.NumChoices, fc.Quiz.NumChoices)
		setBool(&cfg.Quiz.StrictScoring, fc.Quiz.StrictScoring)
	}
	if fc.Images != nil {
		setInt(&cfg.Images.ThumbnailWidth, fc.Images.ThumbnailWidth)
	}
	if fc.Server != nil {
		setString(&cfg.Server.Addr, fc.Server.Addr)
		if len(fc.Server.CORSOrigins) > 0 {
			cfg.Server.CORSOrigins = fc.Server.CORSOrigins
		}
	}
}

func applyEnv(cfg *Config) {
	cfg.Paths.DataDir = envOr("CARPICK_DATA_DIR", cfg.Paths.DataDir)
	cfg.Paths.IndexDir = envOr("CARPICK_INDEX_DIR", cfg.Paths.IndexDir)
	cfg.Paths.AssetsDir = envOr("CARPICK_ASSETS_DIR", cfg.Paths.AssetsDir)
	cfg.Paths.DocsDir = envOr("CARPICK_DOCS_DIR", cfg.Paths.DocsDir)
	cfg.Server.Addr = envOr("CARPICK_ADDR", cfg.Server.Addr)
	if v := os.Getenv("CARPICK_CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = splitCSV(v)
	}
	if v := os.Getenv("CARPICK_STRICT_SCORING"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Quiz.StrictScoring = b
		}
	}
	if v := os.Getenv("CARPICK_THUMBNAIL_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Images.ThumbnailWidth = n
		}
	}
}

// Validate checks the resolved settings for values the engine cannot honor.
func (c Config) Validate() error {
	if c.Quiz.NumChoices != NumChoices {
		return fmt.Errorf("quiz.num_choices must be %d, got %d", NumChoices, c.Quiz.NumChoices)
	}
	if c.Images.ThumbnailWidth < 80 || c.Images.ThumbnailWidth > 2000 {
		return fmt.Errorf("images.thumbnail_width must be between 80 and 2000, got %d", c.Images.ThumbnailWidth)
	}
	if c.Paths.DataDir == "" {
		return fmt.Errorf("paths.data_dir must not be empty")
	}
	if c.Paths.IndexDir == "" {
		return fmt.Errorf("paths.index_dir must not be empty")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
