package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"creator-station/internal/appdirs"

	"github.com/BurntSushi/toml"
)

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type AppConfig struct {
	Proxy       string `toml:"proxy"`
	FfmpegPath  string `toml:"ffmpeg_path"`
	FfprobePath string `toml:"ffprobe_path"`

	ParsedProxy *url.URL `toml:"-"`
}

// OpenaiCompatibleConfig points at any OpenAI-compatible chat endpoint.
type OpenaiCompatibleConfig struct {
	BaseUrl string `toml:"base_url"`
	ApiKey  string `toml:"api_key"`
	Model   string `toml:"model"`
}

type ImageConfig struct {
	BaseUrl      string `toml:"base_url"`
	ApiKey       string `toml:"api_key"`
	Model        string `toml:"model"`
	PromptSuffix string `toml:"prompt_suffix"`
}

type TtsConfig struct {
	BaseUrl string `toml:"base_url"`
	ApiKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	Voice   string `toml:"voice"`
	Disable bool   `toml:"disable"`
}

type RenderConfig struct {
	// WorkDir holds per-request temporary workspaces. Empty means the
	// appdirs default.
	WorkDir string `toml:"work_dir"`
	// Concurrency bounds parallel segment encodes within one render.
	Concurrency int `toml:"concurrency"`
	// SegmentTimeoutSec bounds every single encoder invocation.
	SegmentTimeoutSec int `toml:"segment_timeout_sec"`
}

type QueueConfig struct {
	Enabled       bool   `toml:"enabled"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Concurrency   int    `toml:"concurrency"`
}

type ArchiveConfig struct {
	Enabled         bool   `toml:"enabled"`
	Region          string `toml:"region"`
	Bucket          string `toml:"bucket"`
	AccessKeyId     string `toml:"access_key_id"`
	AccessKeySecret string `toml:"access_key_secret"`
	Prefix          string `toml:"prefix"`
}

type Config struct {
	Server  ServerConfig           `toml:"server"`
	App     AppConfig              `toml:"app"`
	Llm     OpenaiCompatibleConfig `toml:"llm"`
	Image   ImageConfig            `toml:"image"`
	Tts     TtsConfig              `toml:"tts"`
	Render  RenderConfig           `toml:"render"`
	Queue   QueueConfig            `toml:"queue"`
	Archive ArchiveConfig          `toml:"archive"`
}

var Conf Config

var resolveConfigPath = func() (string, error) {
	dirs, err := appdirs.Resolve()
	if err != nil {
		return "", err
	}
	return dirs.ConfigFile, nil
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8888,
		},
		Image: ImageConfig{
			Model: "dall-e-3",
		},
		Tts: TtsConfig{
			Model: "tts-1",
			Voice: "alloy",
		},
		Render: RenderConfig{
			Concurrency:       2,
			SegmentTimeoutSec: 300,
		},
		Queue: QueueConfig{
			RedisAddr:   "localhost:6379",
			Concurrency: 3,
		},
	}
}

// LoadOrCreateConfig reads config.toml, writing the defaults first when the
// file does not exist yet. It reports whether a new file was created.
func LoadOrCreateConfig() (bool, error) {
	configPath, err := resolveConfigPath()
	if err != nil {
		return false, err
	}

	if _, err = os.Stat(configPath); os.IsNotExist(err) {
		Conf = defaultConfig()
		if err = SaveConfig(); err != nil {
			return false, err
		}
		return true, parseProxy()
	} else if err != nil {
		return false, err
	}

	if _, err = toml.DecodeFile(configPath, &Conf); err != nil {
		return false, fmt.Errorf("decode config %s: %w", configPath, err)
	}
	return false, parseProxy()
}

// LoadConfig is the boolean convenience wrapper used at startup.
func LoadConfig() bool {
	if _, err := LoadOrCreateConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return false
	}
	return true
}

// SaveConfig writes the current Conf back to disk, creating parent
// directories as needed.
func SaveConfig() error {
	configPath, err := resolveConfigPath()
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(Conf)
}

// CheckConfig validates values that would otherwise fail deep inside a
// render or pipeline run.
func CheckConfig() error {
	if Conf.Server.Port <= 0 || Conf.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", Conf.Server.Port)
	}
	if Conf.Render.Concurrency < 1 {
		Conf.Render.Concurrency = 1
	}
	if Conf.Render.SegmentTimeoutSec < 1 {
		Conf.Render.SegmentTimeoutSec = 300
	}
	if Conf.Archive.Enabled {
		if Conf.Archive.Bucket == "" || Conf.Archive.Region == "" {
			return fmt.Errorf("archive enabled but bucket/region missing")
		}
	}
	return parseProxy()
}

func parseProxy() error {
	if Conf.App.Proxy == "" {
		Conf.App.ParsedProxy = nil
		return nil
	}
	parsed, err := url.Parse(Conf.App.Proxy)
	if err != nil {
		return fmt.Errorf("app.proxy is not a valid URL: %w", err)
	}
	Conf.App.ParsedProxy = parsed
	return nil
}

// ResolveWorkDir returns the directory for render workspaces.
func ResolveWorkDir() (string, error) {
	if Conf.Render.WorkDir != "" {
		return Conf.Render.WorkDir, nil
	}
	dirs, err := appdirs.Resolve()
	if err != nil {
		return "", err
	}
	return dirs.WorkDir, nil
}
