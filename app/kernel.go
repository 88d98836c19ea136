// Package app wires the Rio application: its services, routes and settings.
package app

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/km-arc/go-rio/app/controller"
	foundation "github.com/km-arc/go-rio/framework/app"
	"github.com/km-arc/go-rio/framework/config"
	"github.com/km-arc/go-rio/framework/container"
	gohttp "github.com/km-arc/go-rio/framework/http"
	"github.com/km-arc/go-rio/framework/providers"
	"github.com/km-arc/go-rio/resources"
)

// MicroID is the service id of the MicroController.
const MicroID = "micro"

// New builds the application. logger may be nil.
func New(cfg *config.Config, settings config.Settings, logger *zap.Logger) *foundation.Application {
	application := foundation.New(
		foundation.WithConfig(cfg),
		foundation.WithSettings(settings),
		foundation.WithLogger(logger),
		foundation.WithProviders(Providers()...),
	)
	Routes(application)
	return application
}

// Providers returns the service providers of the application.
func Providers() []container.ServiceProvider {
	return []container.ServiceProvider{
		&providers.ViewServiceProvider{FS: resources.Views},
		ControllerServiceProvider{},
	}
}

// Routes registers the application routes.
func Routes(a *foundation.Application) {
	a.Get("/", controller.Goodbye).SetName("home")
	a.Get("/random/{limit}", MicroID+":RandomNumber").SetName("app_micro_randomnumber")
}

// ControllerServiceProvider registers the controllers.
type ControllerServiceProvider struct{}

func (ControllerServiceProvider) Register(c *container.Container) error {
	return container.Provide(c, MicroID, func(c *container.Container) (*controller.MicroController, error) {
		view, err := container.Resolve[*gohttp.ViewEngine](c, providers.ViewID)
		if err != nil {
			return nil, err
		}
		return controller.NewMicroController(view), nil
	})
}

// LoadSettings reads the APP_SETTINGS YAML file when one is configured.
// displayErrorDetails follows APP_DEBUG unless the file sets it.
func LoadSettings(cfg *config.Config) (config.Settings, error) {
	settings := config.Settings{}
	if cfg.App.Settings != "" {
		loaded, err := config.LoadFile(cfg.App.Settings)
		if err != nil {
			return nil, errors.Wrapf(err, "load %s", cfg.App.Settings)
		}
		settings = loaded
	}
	if _, ok := settings[config.DisplayErrorDetails]; !ok {
		settings[config.DisplayErrorDetails] = cfg.App.Debug
	}
	return settings, nil
}
