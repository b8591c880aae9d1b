package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when DERMAAI_CONFIG is unset. A
// missing default file is not an error; every field has a usable default.
const DefaultPath = "dermaai.yaml"

// Config holds all DermaAI configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Models ModelsConfig `yaml:"models"`
	Triage TriageConfig `yaml:"triage"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port         int `yaml:"port"`
	MaxUploadMiB int `yaml:"max_upload_mib"`
}

// ModelsConfig locates the ONNX artifacts. File entries are joined onto Dir
// unless given as absolute paths.
type ModelsConfig struct {
	Dir        string `yaml:"dir"`
	TextModel  string `yaml:"text_model"`
	TextVocab  string `yaml:"text_vocab"`
	ImageModel string `yaml:"image_model"`
}

// TriageConfig holds the per-pipeline confidence thresholds, in percent.
type TriageConfig struct {
	TextThreshold  float64 `yaml:"text_threshold"`
	ImageThreshold float64 `yaml:"image_threshold"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// Load builds the configuration: defaults, then the YAML file, then
// DERMAAI_* environment overrides, then validation.
func Load() (Config, error) {
	cfg := defaults()

	path := os.Getenv("DERMAAI_CONFIG")
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// optional default file
	default:
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:         5001,
			MaxUploadMiB: 10,
		},
		Models: ModelsConfig{
			Dir:        "models",
			TextModel:  "symptom_classifier.onnx",
			TextVocab:  "vocab.txt",
			ImageModel: "skin_classifier.onnx",
		},
		Triage: TriageConfig{
			TextThreshold:  50,
			ImageThreshold: 70,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getenvInt("DERMAAI_PORT", cfg.Server.Port)
	cfg.Server.MaxUploadMiB = getenvInt("DERMAAI_MAX_UPLOAD_MIB", cfg.Server.MaxUploadMiB)
	cfg.Models.Dir = getenv("DERMAAI_MODEL_DIR", cfg.Models.Dir)
	cfg.Models.TextModel = getenv("DERMAAI_TEXT_MODEL", cfg.Models.TextModel)
	cfg.Models.TextVocab = getenv("DERMAAI_TEXT_VOCAB", cfg.Models.TextVocab)
	cfg.Models.ImageModel = getenv("DERMAAI_IMAGE_MODEL", cfg.Models.ImageModel)
	cfg.Triage.TextThreshold = getenvFloat("DERMAAI_TEXT_THRESHOLD", cfg.Triage.TextThreshold)
	cfg.Triage.ImageThreshold = getenvFloat("DERMAAI_IMAGE_THRESHOLD", cfg.Triage.ImageThreshold)
	cfg.Log.Level = getenv("DERMAAI_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getenv("DERMAAI_LOG_FORMAT", cfg.Log.Format)
}

func (c Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Server.Port)
	}
	if c.Server.MaxUploadMiB < 1 {
		return fmt.Errorf("config: max upload %d MiB too small", c.Server.MaxUploadMiB)
	}
	if c.Triage.TextThreshold < 0 || c.Triage.TextThreshold > 100 {
		return fmt.Errorf("config: text threshold %v out of range", c.Triage.TextThreshold)
	}
	if c.Triage.ImageThreshold < 0 || c.Triage.ImageThreshold > 100 {
		return fmt.Errorf("config: image threshold %v out of range", c.Triage.ImageThreshold)
	}
	if c.Models.TextModel == "" || c.Models.TextVocab == "" || c.Models.ImageModel == "" {
		return errors.New("config: model paths must not be empty")
	}
	return nil
}

// TextModelPath returns the resolved path of the text classifier model.
func (c ModelsConfig) TextModelPath() string { return c.resolve(c.TextModel) }

// TextVocabPath returns the resolved path of the tokenizer vocabulary.
func (c ModelsConfig) TextVocabPath() string { return c.resolve(c.TextVocab) }

// ImageModelPath returns the resolved path of the image classifier model.
func (c ModelsConfig) ImageModelPath() string { return c.resolve(c.ImageModel) }

func (c ModelsConfig) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Dir, name)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
