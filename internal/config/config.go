package config

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Backends accepted for llm.backend.
const (
	BackendOllama = "ollama"
	BackendOpenAI = "openai"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Tools   ToolsConfig   `yaml:"tools"`
	Whisper WhisperConfig `yaml:"whisper"`
	LLM     LLMConfig     `yaml:"llm"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	MaxUploadMB int    `yaml:"max_upload_mb"`
}

type ToolsConfig struct {
	FFmpegPath string `yaml:"ffmpeg_path"`
}

type WhisperConfig struct {
	BinaryPath string   `yaml:"binary_path"`
	ModelDir   string   `yaml:"model_dir"`
	Timeout    Duration `yaml:"timeout"`
}

type LLMConfig struct {
	Backend string   `yaml:"backend"` // "ollama" or "openai"
	BaseURL string   `yaml:"base_url"`
	APIKey  string   `yaml:"api_key"`
	Timeout Duration `yaml:"timeout"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Duration parses YAML and env values like "90s" or "5m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        "0.0.0.0:8117",
			MaxUploadMB: 256,
		},
		Tools: ToolsConfig{
			FFmpegPath: "ffmpeg",
		},
		Whisper: WhisperConfig{
			Timeout: Duration(5 * time.Minute),
		},
		LLM: LLMConfig{
			Backend: BackendOllama,
			BaseURL: "http://localhost:11434",
			Timeout: Duration(5 * time.Minute),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration in three layers: built-in defaults, an
// optional YAML file, and AUDIOBRIEF_* environment variables. Later layers
// win, so a deployment can ship a config file and still override single
// values per environment.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.Server.Addr = getEnv("AUDIOBRIEF_ADDR", cfg.Server.Addr)
	cfg.Tools.FFmpegPath = getEnv("AUDIOBRIEF_FFMPEG_PATH", cfg.Tools.FFmpegPath)
	cfg.Whisper.BinaryPath = getEnv("AUDIOBRIEF_WHISPER_BIN", cfg.Whisper.BinaryPath)
	cfg.Whisper.ModelDir = getEnv("AUDIOBRIEF_WHISPER_MODEL_DIR", cfg.Whisper.ModelDir)
	cfg.LLM.Backend = getEnv("AUDIOBRIEF_LLM_BACKEND", cfg.LLM.Backend)
	cfg.LLM.BaseURL = getEnv("AUDIOBRIEF_LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.APIKey = getEnv("AUDIOBRIEF_LLM_API_KEY", cfg.LLM.APIKey)
	cfg.Logging.Level = getEnv("AUDIOBRIEF_LOG_LEVEL", cfg.Logging.Level)

	maxUpload, err := getEnvInt("AUDIOBRIEF_MAX_UPLOAD_MB", cfg.Server.MaxUploadMB)
	if err != nil {
		return fmt.Errorf("invalid AUDIOBRIEF_MAX_UPLOAD_MB: %w", err)
	}
	cfg.Server.MaxUploadMB = maxUpload

	whisperTimeout, err := getEnvDuration("AUDIOBRIEF_WHISPER_TIMEOUT", cfg.Whisper.Timeout)
	if err != nil {
		return fmt.Errorf("invalid AUDIOBRIEF_WHISPER_TIMEOUT: %w", err)
	}
	cfg.Whisper.Timeout = whisperTimeout

	llmTimeout, err := getEnvDuration("AUDIOBRIEF_LLM_TIMEOUT", cfg.LLM.Timeout)
	if err != nil {
		return fmt.Errorf("invalid AUDIOBRIEF_LLM_TIMEOUT: %w", err)
	}
	cfg.LLM.Timeout = llmTimeout

	return nil
}

// Validate fails fast on anything the pipeline would otherwise discover in
// the middle of a request: missing tool binaries, a bad model directory, an
// unusable language-model URL. The process should refuse to start instead.
func (c *Config) Validate() error {
	var missing []string
	if c.Whisper.BinaryPath == "" {
		missing = append(missing, "whisper.binary_path")
	}
	if c.Whisper.ModelDir == "" {
		missing = append(missing, "whisper.model_dir")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}

	if err := checkTool(c.Tools.FFmpegPath); err != nil {
		return fmt.Errorf("tools.ffmpeg_path: %w", err)
	}
	if err := checkTool(c.Whisper.BinaryPath); err != nil {
		return fmt.Errorf("whisper.binary_path: %w", err)
	}

	info, err := os.Stat(c.Whisper.ModelDir)
	if err != nil {
		return fmt.Errorf("whisper.model_dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("whisper.model_dir: %s is not a directory", c.Whisper.ModelDir)
	}

	if c.LLM.Backend != BackendOllama && c.LLM.Backend != BackendOpenAI {
		return fmt.Errorf("llm.backend: unknown backend %q (want %q or %q)", c.LLM.Backend, BackendOllama, BackendOpenAI)
	}
	u, err := url.Parse(c.LLM.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("llm.base_url: %q is not a valid URL", c.LLM.BaseURL)
	}

	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server.max_upload_mb must be positive, got %d", c.Server.MaxUploadMB)
	}
	if c.Whisper.Timeout <= 0 {
		return fmt.Errorf("whisper.timeout must be positive")
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("llm.timeout must be positive")
	}

	return nil
}

// checkTool verifies a tool is runnable: bare names are resolved on PATH,
// explicit paths must exist on disk.
func checkTool(path string) error {
	if path == "" {
		return fmt.Errorf("not set")
	}
	if filepath.Base(path) == path {
		_, err := exec.LookPath(path)
		return err
	}
	_, err := os.Stat(path)
	return err
}

func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvDuration(key string, fallback Duration) (Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	return Duration(d), nil
}
