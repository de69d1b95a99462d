package config

const (
	defaultWatchDir             = "~/Desktop"
	defaultLogDir               = "~/.local/share/snapname/logs"
	defaultOllamaBaseURL        = "http://127.0.0.1:11434"
	defaultOllamaModel          = "moondream"
	defaultOllamaPrompt         = "Describe this image in 3 words or less."
	defaultOllamaTimeoutSeconds = 120
	defaultMatchPrefix          = "Screenshot "
	defaultMatchExtension       = ".png"
	defaultWorkerCount          = 3
	defaultWorkerQueueSize      = 32
	defaultStabilityDelay       = 3
	defaultStabilityPoll        = 1
	defaultStabilityTimeout     = 10
	defaultWatcherBackend       = "poll"
	defaultWatcherPollInterval  = 1
	defaultNotifyBackend        = "desktop"
	defaultNotifyTimeout        = 10
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WatchDir: defaultWatchDir,
			LogDir:   defaultLogDir,
		},
		Ollama: Ollama{
			BaseURL:        defaultOllamaBaseURL,
			Model:          defaultOllamaModel,
			Prompt:         defaultOllamaPrompt,
			TimeoutSeconds: defaultOllamaTimeoutSeconds,
		},
		Match: Match{
			Prefix:    defaultMatchPrefix,
			Extension: defaultMatchExtension,
		},
		Workers: Workers{
			Count:     defaultWorkerCount,
			QueueSize: defaultWorkerQueueSize,
		},
		Stability: Stability{
			InitialDelaySeconds: defaultStabilityDelay,
			PollIntervalSeconds: defaultStabilityPoll,
			TimeoutSeconds:      defaultStabilityTimeout,
		},
		Watcher: Watcher{
			Backend:             defaultWatcherBackend,
			PollIntervalSeconds: defaultWatcherPollInterval,
		},
		Notifications: Notifications{
			Backend:        defaultNotifyBackend,
			RequestTimeout: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
