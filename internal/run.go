package internal

import (
	"context"
	"errors"
)

var errNoApp = errors.New("sitemode: run requires an app")

// Run serves app and blocks until shutdown. It is the functional form of
// App.Run for callers that assemble the address through options.
//
//	err := sitemode.Run(app,
//	    sitemode.Address(":8080"),
//	    sitemode.ShutdownHook(pool.Close),
//	)
func Run(app *App, opts ...RunOption) error {
	if app == nil {
		return errNoApp
	}
	cfg := buildRunConfig(opts...)
	return app.Run(cfg.address, opts...)
}

// StartupHook registers fn to run before the listener accepts requests.
// A failing hook aborts startup.
func StartupHook(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.startupHooks = append(c.startupHooks, fn)
		}
	}
}
