package providers

import (
	"io/fs"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/km-arc/go-rio/framework/config"
	"github.com/km-arc/go-rio/framework/container"
	gohttp "github.com/km-arc/go-rio/framework/http"
)

// Service identifiers bound by the providers in this package.
const (
	ConfigID = "config"
	LoggerID = "logger"
	ViewID   = "view"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the process configuration from .env files.
//
// Bound services:
//   - "config" → *config.Config
type ConfigServiceProvider struct {
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(c *container.Container) error {
	envFiles := p.EnvFiles
	return container.Provide(c, ConfigID, func(*container.Container) (*config.Config, error) {
		return config.Load(envFiles...), nil
	})
}

// ── LogServiceProvider ────────────────────────────────────────────────────────

// LogServiceProvider registers the zap logger. It reads "config" when the
// logger is first resolved.
//
// Bound services:
//   - "logger" → *zap.Logger
type LogServiceProvider struct{}

func (p *LogServiceProvider) Register(c *container.Container) error {
	return container.Provide(c, LoggerID, func(c *container.Container) (*zap.Logger, error) {
		cfg, err := container.Resolve[*config.Config](c, ConfigID)
		if err != nil {
			return nil, err
		}
		return NewLogger(cfg)
	})
}

// NewLogger builds a development logger when APP_DEBUG is on and a JSON
// production logger otherwise, at the LOG_LEVEL level.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.App.Debug {
		zc = zap.NewDevelopmentConfig()
	}
	if cfg.Log.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Log.Level)
		if err != nil {
			return nil, errors.Wrap(err, "invalid LOG_LEVEL")
		}
		zc.Level = level
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return logger.With(zap.String("app", cfg.App.Name)), nil
}

// ── ViewServiceProvider ───────────────────────────────────────────────────────

// ViewServiceProvider registers the template engine. It is deferred: the
// engine is only set up for requests that render a view.
//
// Bound services:
//   - "view" → *gohttp.ViewEngine
type ViewServiceProvider struct {
	FS  fs.FS
	Ext string // file extension, default: ".html"
}

func (p *ViewServiceProvider) Register(c *container.Container) error {
	ext := p.Ext
	if ext == "" {
		ext = ".html"
	}
	fsys := p.FS
	return container.Provide(c, ViewID, func(*container.Container) (*gohttp.ViewEngine, error) {
		if fsys == nil {
			return nil, errors.New("view provider has no file system")
		}
		return gohttp.NewViewEngine(fsys, ext), nil
	})
}

func (p *ViewServiceProvider) Provides() []string { return []string{ViewID} }
