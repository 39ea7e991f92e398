package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel string

	InputDir      string
	OutputDir     string
	CheckInterval time.Duration

	TreeFirstYear int
	TreeLastYear  int

	OllamaURL       string
	OllamaModel     string
	ClassifyTimeout time.Duration
	ClassifyMaxRPS  float64

	HistoryDSN string

	NATSURL     string
	NATSSubject string

	MetricsPort string
}

// fileConfig mirrors the optional YAML config file. Environment variables
// always override file values.
type fileConfig struct {
	LogLevel string `yaml:"log_level"`

	InputDir             string  `yaml:"input_dir"`
	OutputDir            string  `yaml:"output_dir"`
	CheckIntervalSeconds int     `yaml:"check_interval_seconds"`
	TreeFirstYear        int     `yaml:"tree_first_year"`
	TreeLastYear         int     `yaml:"tree_last_year"`
	OllamaURL            string  `yaml:"ollama_url"`
	OllamaModel          string  `yaml:"ollama_model"`
	ClassifyTimeoutSecs  int     `yaml:"classify_timeout_seconds"`
	ClassifyMaxRPS       float64 `yaml:"classify_max_rps"`
	HistoryDSN           string  `yaml:"history_dsn"`
	NATSURL              string  `yaml:"nats_url"`
	NATSSubject          string  `yaml:"nats_subject"`
	MetricsPort          string  `yaml:"metrics_port"`
}

// Load builds the configuration once at startup: defaults, then the YAML
// file named by SORTER_CONFIG_FILE (if any), then environment overrides.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("SORTER_CONFIG_FILE"); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, fmt.Errorf("load config file: %w", err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func defaults() Config {
	return Config{
		LogLevel: "info",

		InputDir:      "./incoming_documents",
		OutputDir:     "./sorted_documents",
		CheckInterval: 30 * time.Second,

		TreeFirstYear: 2020,
		TreeLastYear:  2030,

		OllamaURL:       "http://localhost:11434",
		OllamaModel:     "llama3.1:8b",
		ClassifyTimeout: 60 * time.Second,
		ClassifyMaxRPS:  0,

		HistoryDSN: "",

		NATSURL:     "",
		NATSSubject: "documents.sorted",

		MetricsPort: "",
	}
}

func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.InputDir != "" {
		cfg.InputDir = fc.InputDir
	}
	if fc.OutputDir != "" {
		cfg.OutputDir = fc.OutputDir
	}
	if fc.CheckIntervalSeconds > 0 {
		cfg.CheckInterval = time.Duration(fc.CheckIntervalSeconds) * time.Second
	}
	if fc.TreeFirstYear > 0 {
		cfg.TreeFirstYear = fc.TreeFirstYear
	}
	if fc.TreeLastYear > 0 {
		cfg.TreeLastYear = fc.TreeLastYear
	}
	if fc.OllamaURL != "" {
		cfg.OllamaURL = fc.OllamaURL
	}
	if fc.OllamaModel != "" {
		cfg.OllamaModel = fc.OllamaModel
	}
	if fc.ClassifyTimeoutSecs > 0 {
		cfg.ClassifyTimeout = time.Duration(fc.ClassifyTimeoutSecs) * time.Second
	}
	if fc.ClassifyMaxRPS > 0 {
		cfg.ClassifyMaxRPS = fc.ClassifyMaxRPS
	}
	if fc.HistoryDSN != "" {
		cfg.HistoryDSN = fc.HistoryDSN
	}
	if fc.NATSURL != "" {
		cfg.NATSURL = fc.NATSURL
	}
	if fc.NATSSubject != "" {
		cfg.NATSSubject = fc.NATSSubject
	}
	if fc.MetricsPort != "" {
		cfg.MetricsPort = fc.MetricsPort
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.LogLevel = envString("SORTER_LOG_LEVEL", cfg.LogLevel)

	cfg.InputDir = envString("SORTER_INPUT_DIR", cfg.InputDir)
	cfg.OutputDir = envString("SORTER_OUTPUT_DIR", cfg.OutputDir)
	cfg.CheckInterval = envSeconds("SORTER_CHECK_INTERVAL", cfg.CheckInterval)

	cfg.TreeFirstYear = envInt("SORTER_TREE_FIRST_YEAR", cfg.TreeFirstYear)
	cfg.TreeLastYear = envInt("SORTER_TREE_LAST_YEAR", cfg.TreeLastYear)

	cfg.OllamaURL = envString("SORTER_OLLAMA_URL", cfg.OllamaURL)
	cfg.OllamaModel = envString("SORTER_OLLAMA_MODEL", cfg.OllamaModel)
	cfg.ClassifyTimeout = envSeconds("SORTER_CLASSIFY_TIMEOUT", cfg.ClassifyTimeout)
	cfg.ClassifyMaxRPS = envFloat("SORTER_CLASSIFY_MAX_RPS", cfg.ClassifyMaxRPS)

	cfg.HistoryDSN = envString("SORTER_HISTORY_DSN", cfg.HistoryDSN)

	cfg.NATSURL = envString("SORTER_NATS_URL", cfg.NATSURL)
	cfg.NATSSubject = envString("SORTER_NATS_SUBJECT", cfg.NATSSubject)

	cfg.MetricsPort = envString("SORTER_METRICS_PORT", cfg.MetricsPort)
}

func envString(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
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

func envFloat(key string, fallback float64) float64 {
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

func envSeconds(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}
