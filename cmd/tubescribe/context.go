package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"tubescribe/internal/config"
	"tubescribe/internal/journal"
	"tubescribe/internal/logging"
	"tubescribe/internal/transcripts"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	noCookiesFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string, noCookiesFlag *bool) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		noCookiesFlag: noCookiesFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.TrimSpace(*c.logLevelFlag)
		}
		if c.noCookiesFlag != nil && *c.noCookiesFlag {
			cfg.YtDlp.CookiesFromBrowser = false
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

// service builds the transcript service plus its journal. The caller owns the
// returned cleanup and must invoke it when finished.
func (c *commandContext) service() (*transcripts.Service, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.logger()
	if err != nil {
		return nil, nil, err
	}

	var store *journal.Store
	if cfg.Journal.Enabled {
		opened, err := journal.Open(cfg)
		if err != nil {
			logger.Warn("journal unavailable", logging.Error(err))
		} else {
			store = opened
		}
	}

	svc, err := transcripts.NewService(cfg,
		transcripts.WithLogger(logger),
		transcripts.WithJournal(store))
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("close journal", logging.Error(err))
		}
	}
	return svc, cleanup, nil
}

func (c *commandContext) openJournal() (*journal.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Journal.Enabled {
		return nil, nil
	}
	return journal.Open(cfg)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
