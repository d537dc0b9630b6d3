package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

type Config struct {
	Camera             int           // индекс веб-камеры
	ReplayDir          string        // каталог с кадрами вместо камеры
	FrameWidth         int           // ширина кадра
	FrameHeight        int           // высота кадра
	FrameWait          time.Duration // ожидание на каждом кадре
	Window             bool          // показывать окно предпросмотра
	Mirror             bool          // отражать окно предпросмотра
	NoseFixedReference bool          // окна носа остаются у точки выбора
	LogLevel           string
	LogFormat          string
	TelegramToken      string
	TelegramChatID     int64 // чат, подписанный при старте
}

// Default возвращает настройки по умолчанию
func Default() *Config {
	return &Config{
		FrameWidth:  300,
		FrameHeight: 250,
		FrameWait:   10 * time.Millisecond,
		Window:      true,
		Mirror:      true,
		LogLevel:    "info",
		LogFormat:   LogFormatText,
	}
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := Default()
	var err error

	if cfg.Camera, err = envInt("HEADPOINTER_CAMERA", cfg.Camera); err != nil {
		return nil, err
	}
	cfg.ReplayDir = envString("HEADPOINTER_REPLAY_DIR", cfg.ReplayDir)
	if cfg.FrameWidth, err = envInt("HEADPOINTER_FRAME_WIDTH", cfg.FrameWidth); err != nil {
		return nil, err
	}
	if cfg.FrameHeight, err = envInt("HEADPOINTER_FRAME_HEIGHT", cfg.FrameHeight); err != nil {
		return nil, err
	}
	if cfg.FrameWait, err = envDuration("HEADPOINTER_FRAME_WAIT", cfg.FrameWait); err != nil {
		return nil, err
	}
	if cfg.Window, err = envBool("HEADPOINTER_WINDOW", cfg.Window); err != nil {
		return nil, err
	}
	if cfg.Mirror, err = envBool("HEADPOINTER_MIRROR", cfg.Mirror); err != nil {
		return nil, err
	}
	if cfg.NoseFixedReference, err = envBool("HEADPOINTER_NOSE_FIXED_REFERENCE", cfg.NoseFixedReference); err != nil {
		return nil, err
	}
	cfg.LogLevel = envString("HEADPOINTER_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envString("HEADPOINTER_LOG_FORMAT", cfg.LogFormat)
	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramChatID, err = envInt64("TELEGRAM_CHAT_ID", cfg.TelegramChatID); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет значения и приводит уровень и формат логов к каноническому виду
func (c *Config) Validate() error {
	if c.Camera < 0 {
		return errors.Errorf("camera index must not be negative, got %d", c.Camera)
	}
	if c.FrameWidth <= 0 || c.FrameHeight <= 0 {
		return errors.Errorf("frame size must be positive, got %dx%d", c.FrameWidth, c.FrameHeight)
	}
	if c.FrameWait <= 0 {
		return errors.Errorf("frame wait must be positive, got %s", c.FrameWait)
	}

	level, err := NormalizeLogLevel(c.LogLevel)
	if err != nil {
		return err
	}
	format, err := NormalizeLogFormat(c.LogFormat)
	if err != nil {
		return err
	}
	c.LogLevel, c.LogFormat = level, format
	return nil
}

// NormalizeLogLevel проверяет уровень логирования и приводит к нижнему регистру
func NormalizeLogLevel(level string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return "info", nil
	case "debug":
		return "debug", nil
	case "warn", "warning":
		return "warn", nil
	case "error":
		return "error", nil
	default:
		return "", errors.Errorf("unsupported log level %q", level)
	}
}

// NormalizeLogFormat проверяет формат логов
func NormalizeLogFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text", "console":
		return LogFormatText, nil
	case "json":
		return LogFormatJSON, nil
	default:
		return "", errors.Errorf("unsupported log format %q", format)
	}
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := envString(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", key)
	}
	return n, nil
}

func envInt64(key string, def int64) (int64, error) {
	v := envString(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", key)
	}
	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	v := envString(key, "")
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.Wrapf(err, "parse %s", key)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := envString(key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", key)
	}
	return d, nil
}
