package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeOllama()
	c.normalizeMatch()
	c.normalizeWatcher()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WatchDir) == "" {
		c.Paths.WatchDir = defaultWatchDir
	}
	if c.Paths.WatchDir, err = expandPath(c.Paths.WatchDir); err != nil {
		return fmt.Errorf("paths.watch_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeOllama() {
	c.Ollama.BaseURL = strings.TrimRight(strings.TrimSpace(c.Ollama.BaseURL), "/")
	if c.Ollama.BaseURL == "" {
		if value, ok := os.LookupEnv("OLLAMA_HOST"); ok && strings.TrimSpace(value) != "" {
			c.Ollama.BaseURL = strings.TrimRight(strings.TrimSpace(value), "/")
		} else {
			c.Ollama.BaseURL = defaultOllamaBaseURL
		}
	}
	if !strings.Contains(c.Ollama.BaseURL, "://") {
		c.Ollama.BaseURL = "http://" + c.Ollama.BaseURL
	}
	c.Ollama.Model = strings.TrimSpace(c.Ollama.Model)
	if c.Ollama.Model == "" {
		c.Ollama.Model = defaultOllamaModel
	}
	if strings.TrimSpace(c.Ollama.Prompt) == "" {
		c.Ollama.Prompt = defaultOllamaPrompt
	}
	if c.Ollama.TimeoutSeconds <= 0 {
		c.Ollama.TimeoutSeconds = defaultOllamaTimeoutSeconds
	}
}

func (c *Config) normalizeMatch() {
	// Prefix keeps trailing whitespace: the macOS pattern is "Screenshot <date>".
	if c.Match.Prefix == "" {
		c.Match.Prefix = defaultMatchPrefix
	}
	c.Match.Extension = strings.TrimSpace(c.Match.Extension)
	if c.Match.Extension == "" {
		c.Match.Extension = defaultMatchExtension
	}
	if !strings.HasPrefix(c.Match.Extension, ".") {
		c.Match.Extension = "." + c.Match.Extension
	}
}

func (c *Config) normalizeWatcher() {
	c.Watcher.Backend = strings.ToLower(strings.TrimSpace(c.Watcher.Backend))
	if c.Watcher.Backend == "" {
		c.Watcher.Backend = defaultWatcherBackend
	}
	if c.Watcher.PollIntervalSeconds <= 0 {
		c.Watcher.PollIntervalSeconds = defaultWatcherPollInterval
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.Backend = strings.ToLower(strings.TrimSpace(c.Notifications.Backend))
	if c.Notifications.Backend == "" {
		c.Notifications.Backend = defaultNotifyBackend
	}
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
