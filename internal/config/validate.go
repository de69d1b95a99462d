package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOllama(); err != nil {
		return err
	}
	if err := c.validateWorkers(); err != nil {
		return err
	}
	if err := c.validateStability(); err != nil {
		return err
	}
	if err := c.validateWatcher(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateOllama() error {
	if c.Ollama.Model == "" {
		return errors.New("ollama.model must be set")
	}
	if c.Ollama.TimeoutSeconds <= 0 {
		return errors.New("ollama.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateWorkers() error {
	if c.Workers.Count <= 0 {
		return errors.New("workers.count must be positive")
	}
	if c.Workers.QueueSize <= 0 {
		return errors.New("workers.queue_size must be positive")
	}
	return nil
}

func (c *Config) validateStability() error {
	if c.Stability.InitialDelaySeconds < 0 {
		return errors.New("stability.initial_delay_seconds must be >= 0")
	}
	if c.Stability.PollIntervalSeconds <= 0 {
		return errors.New("stability.poll_interval_seconds must be positive")
	}
	if c.Stability.TimeoutSeconds <= 0 {
		return errors.New("stability.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateWatcher() error {
	switch c.Watcher.Backend {
	case "poll", "fsnotify":
	default:
		return fmt.Errorf("watcher.backend must be \"poll\" or \"fsnotify\", got %q", c.Watcher.Backend)
	}
	if c.Watcher.PollIntervalSeconds <= 0 {
		return errors.New("watcher.poll_interval_seconds must be positive")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	switch c.Notifications.Backend {
	case "desktop", "ntfy", "none":
	default:
		return fmt.Errorf("notifications.backend must be \"desktop\", \"ntfy\", or \"none\", got %q", c.Notifications.Backend)
	}
	if c.Notifications.Backend == "ntfy" && c.Notifications.NtfyTopic == "" {
		return errors.New("notifications.ntfy_topic must be set when notifications.backend is \"ntfy\"")
	}
	return nil
}
