package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/notesplit/internal/classifier"
	"github.com/ironsheep/notesplit/internal/cluster"
	"github.com/ironsheep/notesplit/internal/imaging"
	"github.com/ironsheep/notesplit/internal/preprocess"
)

// Config is the complete notesplit configuration.
type Config struct {
	Preprocess preprocess.Config      `yaml:"preprocess" json:"preprocess"`
	Classifier classifier.Config      `yaml:"classifier" json:"classifier"`
	Cluster    cluster.Config         `yaml:"cluster" json:"cluster"`
	Extract    imaging.ExtractOptions `yaml:"extract" json:"extract"`
	Debug      DebugConfig            `yaml:"debug" json:"debug"`
	API        APIConfig              `yaml:"api" json:"api"`
}

// DebugConfig controls the debug overlays written next to the manifest.
type DebugConfig struct {
	DiagramColor     string `yaml:"diagram_color" json:"diagram_color"`
	ConnectorColor   string `yaml:"connector_color" json:"connector_color"`
	HandwritingColor string `yaml:"handwriting_color" json:"handwriting_color"`
	UncertainColor   string `yaml:"uncertain_color" json:"uncertain_color"`
	ClusterColor     string `yaml:"cluster_color" json:"cluster_color"`
	Thickness        int    `yaml:"thickness" json:"thickness"`
	GridSpacing      int    `yaml:"grid_spacing" json:"grid_spacing"`
}

// APIConfig holds the HTTP API settings.
type APIConfig struct {
	Host            string   `yaml:"host" json:"host"`
	Port            int      `yaml:"port" json:"port"`
	TempDir         string   `yaml:"temp_dir" json:"temp_dir"`
	SessionTTLHours float64  `yaml:"session_ttl_hours" json:"session_ttl_hours"`
	CleanupMinutes  int      `yaml:"cleanup_interval_minutes" json:"cleanup_interval_minutes"`
	MaxSessions     int      `yaml:"max_concurrent_sessions" json:"max_concurrent_sessions"`
	MaxFileSizeMB   int      `yaml:"max_file_size_mb" json:"max_file_size_mb"`
	TimeoutSeconds  int      `yaml:"processing_timeout_seconds" json:"processing_timeout_seconds"`
	CORSOrigins     []string `yaml:"cors_origins" json:"cors_origins"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Preprocess: preprocess.DefaultConfig(),
		Classifier: classifier.DefaultConfig(),
		Cluster:    cluster.DefaultConfig(),
		Extract:    imaging.DefaultExtractOptions(),
		Debug: DebugConfig{
			DiagramColor:     "#00B000",
			ConnectorColor:   "#0080FF",
			HandwritingColor: "#FF8000",
			UncertainColor:   "#808080",
			ClusterColor:     "#FF0000",
			Thickness:        2,
		},
		API: APIConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			TempDir:         filepath.Join(os.TempDir(), "notesplit"),
			SessionTTLHours: 1,
			CleanupMinutes:  15,
			MaxSessions:     100,
			MaxFileSizeMB:   50,
			TimeoutSeconds:  300,
			CORSOrigins:     []string{"*"},
		},
	}
}

// LoadDotEnv loads environment variables from .env files, which must not
// override variables already set. A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load builds a configuration from the defaults, the YAML file at path (if
// path is not empty) and the process environment, in that order, and
// validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.parseFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) parseFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	data = []byte(os.ExpandEnv(string(data)))

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(c); err != nil {
		// empty file
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// WithOverrides returns a copy of c with the JSON document data merged in.
// Keys follow the json tags, e.g. {"cluster":{"padding":20}}. Unknown keys
// are rejected and the result is validated.
func (c *Config) WithOverrides(data []byte) (*Config, error) {
	cp := *c
	cp.API.CORSOrigins = append([]string(nil), c.API.CORSOrigins...)
	if len(bytes.TrimSpace(data)) == 0 {
		return &cp, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cp); err != nil {
		return nil, fmt.Errorf("invalid config overrides: %w", err)
	}
	if err := cp.Validate(); err != nil {
		return nil, err
	}
	return &cp, nil
}

// Validate checks every section, naming the offending one.
func (c *Config) Validate() error {
	if err := c.Preprocess.Validate(); err != nil {
		return fmt.Errorf("preprocess: %w", err)
	}
	if err := c.Classifier.Validate(); err != nil {
		return fmt.Errorf("classifier: %w", err)
	}
	if err := c.Cluster.Validate(); err != nil {
		return fmt.Errorf("cluster: %w", err)
	}
	if c.Extract.MaskKernel < 0 {
		return fmt.Errorf("extract: mask_kernel_size must not be negative, got %d", c.Extract.MaskKernel)
	}
	if c.Extract.Contrast < -100 || c.Extract.Contrast > 100 {
		return fmt.Errorf("extract: contrast must be in [-100,100], got %v", c.Extract.Contrast)
	}
	for name, hex := range map[string]string{
		"diagram_color":     c.Debug.DiagramColor,
		"connector_color":   c.Debug.ConnectorColor,
		"handwriting_color": c.Debug.HandwritingColor,
		"uncertain_color":   c.Debug.UncertainColor,
		"cluster_color":     c.Debug.ClusterColor,
	} {
		if _, err := imaging.ParseColor(hex); err != nil {
			return fmt.Errorf("debug: %s: %w", name, err)
		}
	}
	if c.Debug.GridSpacing < 0 {
		return fmt.Errorf("debug: grid_spacing must not be negative, got %d", c.Debug.GridSpacing)
	}
	if c.API.Port < 1 || c.API.Port > 65535 {
		return fmt.Errorf("api: port %d out of range", c.API.Port)
	}
	if c.API.SessionTTLHours <= 0 {
		return fmt.Errorf("api: session_ttl_hours must be positive, got %v", c.API.SessionTTLHours)
	}
	if c.API.MaxFileSizeMB < 1 {
		return fmt.Errorf("api: max_file_size_mb must be positive, got %d", c.API.MaxFileSizeMB)
	}
	if c.API.MaxSessions < 1 || c.API.CleanupMinutes < 1 || c.API.TimeoutSeconds < 1 {
		return errors.New("api: max_concurrent_sessions, cleanup_interval_minutes and processing_timeout_seconds must be positive")
	}
	return nil
}

// ToMap flattens the processing parameters for the manifest.
func (c *Config) ToMap() map[string]any {
	return map[string]any{
		"min_contour_area":           c.Preprocess.MinContourArea,
		"adaptive_block_size":        c.Preprocess.BlockSize,
		"adaptive_c":                 c.Preprocess.C,
		"kernel_size":                c.Preprocess.KernelSize,
		"clustering_proximity":       c.Cluster.Proximity,
		"padding":                    c.Cluster.Padding,
		"max_diagrams":               c.Cluster.MaxDiagrams,
		"sorting_method":             string(c.Cluster.SortMethod),
		"text_overlap_rejection":     c.Cluster.TextOverlapRejection,
		"connector_bridge_threshold": c.Cluster.ConnectorBridgeThreshold,
		"diagram_threshold":          c.Classifier.DiagramThreshold,
		"handwriting_threshold":      c.Classifier.HandwritingThreshold,
		"connectors_enabled":         c.Classifier.Connector.Enabled,
		"enhance_contrast":           c.Extract.Enhance,
	}
}
