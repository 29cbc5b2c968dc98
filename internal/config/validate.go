package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateYtDlp(); err != nil {
		return err
	}
	if err := c.validateJournal(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.CacheDir == "" {
		return errors.New("paths.cache_dir must be set")
	}
	if c.Paths.ScratchDir == "" {
		return errors.New("paths.scratch_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateYtDlp() error {
	if c.YtDlp.Binary == "" {
		return errors.New("ytdlp.binary must be set")
	}
	if c.YtDlp.CookiesFromBrowser && c.YtDlp.CookiesBrowser == "" {
		return errors.New("ytdlp.cookies_browser must be set when ytdlp.cookies_from_browser is true")
	}
	return ensurePositiveMap(map[string]int{
		"ytdlp.timeout_seconds": c.YtDlp.TimeoutSeconds,
	})
}

func (c *Config) validateJournal() error {
	if !c.Journal.Enabled {
		return nil
	}
	if c.Journal.Path == "" {
		return errors.New("journal.path must be set when journal.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
