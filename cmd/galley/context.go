package main

import (
	"strings"
	"sync"

	"log/slog"

	"galley/internal/assets"
	"galley/internal/catalog"
	"galley/internal/config"
	"galley/internal/coverart"
	"galley/internal/importer"
	"galley/internal/logging"
	"galley/internal/notifications"
	"galley/internal/store"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
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
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.loggerOnce.Do(func() {
		logger, logErr := logging.NewFromConfig(cfg)
		if logErr != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger, nil
}

func (c *commandContext) catalogService() (*catalog.Service, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return catalog.NewService(cfg.Paths.ManifestPath, logger), nil
}

func (c *commandContext) coverFinder() (*coverart.Finder, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return coverart.NewFinder(cfg.Paths.UploadsDir, logger), nil
}

// withStore opens the provisioning database for the duration of fn.
func (c *commandContext) withStore(fn func(*store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

// withImporter wires the full import stack and hands it to fn.
func (c *commandContext) withImporter(fn func(*importer.Importer, *config.Config) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}
	catalogSvc, err := c.catalogService()
	if err != nil {
		return err
	}
	finder, err := c.coverFinder()
	if err != nil {
		return err
	}
	return c.withStore(func(st *store.Store) error {
		imp := importer.New(cfg, catalogSvc, finder, assets.New(cfg, logger), st,
			notifications.NewService(cfg, logger), logger)
		return fn(imp, cfg)
	})
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
