package config

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
)

// ErrInvalidConfig is the base error for validation failures.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks the configuration before any component is built. Every
// failure here is a startup error; nothing validated here can fail later at
// runtime.
func (c *Config) Validate() error {
	if c.SearchPattern == "" {
		return fmt.Errorf("%w: search_pattern is required", ErrInvalidConfig)
	}
	if _, err := regexp.Compile(c.SearchPattern); err != nil {
		return fmt.Errorf("%w: search_pattern: %v", ErrInvalidConfig, err)
	}

	if c.MultiLine {
		if c.LineInitPattern == "" {
			return fmt.Errorf("%w: multi_line requires line_init_pattern", ErrInvalidConfig)
		}
		if _, err := regexp.Compile(c.LineInitPattern); err != nil {
			return fmt.Errorf("%w: line_init_pattern: %v", ErrInvalidConfig, err)
		}
		if c.LineConcludePattern != "" {
			if _, err := regexp.Compile(c.LineConcludePattern); err != nil {
				return fmt.Errorf("%w: line_conclude_pattern: %v", ErrInvalidConfig, err)
			}
		}
		if c.LineLimit < 1 {
			return fmt.Errorf("%w: line_limit must be at least 1, got %d", ErrInvalidConfig, c.LineLimit)
		}
	}

	if c.WebhookURL == "" {
		return fmt.Errorf("%w: webhook_url is required", ErrInvalidConfig)
	}
	u, err := url.Parse(c.WebhookURL)
	if err != nil {
		return fmt.Errorf("%w: webhook_url: %v", ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: webhook_url must be http or https", ErrInvalidConfig)
	}

	switch c.Transport {
	case TransportIRC:
		if c.Server == "" {
			return fmt.Errorf("%w: server is required for the irc transport", ErrInvalidConfig)
		}
		if c.Nick == "" {
			return fmt.Errorf("%w: nick is required for the irc transport", ErrInvalidConfig)
		}
		if c.Port < 1 || c.Port > 65535 {
			return fmt.Errorf("%w: port must be between 1 and 65535, got %d", ErrInvalidConfig, c.Port)
		}
	case TransportWebSocket:
		if c.WebSocketURL == "" {
			return fmt.Errorf("%w: websocket_url is required for the websocket transport", ErrInvalidConfig)
		}
		wu, err := url.Parse(c.WebSocketURL)
		if err != nil {
			return fmt.Errorf("%w: websocket_url: %v", ErrInvalidConfig, err)
		}
		if wu.Scheme != "ws" && wu.Scheme != "wss" {
			return fmt.Errorf("%w: websocket_url must be ws or wss", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown transport %q", ErrInvalidConfig, c.Transport)
	}

	if c.MaxConcurrentDispatch < 0 {
		return fmt.Errorf("%w: max_concurrent_dispatch cannot be negative", ErrInvalidConfig)
	}

	return nil
}
