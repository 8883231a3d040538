package ops

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/r-kez/k-tools-texture-map-loader/pkg/assets"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/config"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/observability"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/placement"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/settings"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/shadergraph"
)

// Env is everything an operator may read or modify.
type Env struct {
	Scene     *shadergraph.Scene
	Prefs     *config.Preferences
	Tools     *settings.Tools
	Loader    ImageLoader
	Assets    assets.Source
	Placement *placement.Context
	Logger    *log.Logger
}

// NewEnv creates an environment for scene with default preferences, tool
// settings, file loading and the bundled assets.
func NewEnv(scene *shadergraph.Scene) *Env {
	return &Env{
		Scene:     scene,
		Prefs:     config.Default(),
		Tools:     settings.New(),
		Loader:    FileLoader{},
		Assets:    assets.Builtin,
		Placement: &placement.Context{},
	}
}

func (e *Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}

func (e *Env) prefs() *config.Preferences {
	if e.Prefs == nil {
		return config.Default()
	}
	return e.Prefs
}

func (e *Env) tools() *settings.Tools {
	if e.Tools == nil {
		e.Tools = settings.New()
	}
	return e.Tools
}

func (e *Env) assets() assets.Source {
	if e.Assets == nil {
		return assets.Builtin
	}
	return e.Assets
}

func (e *Env) placement() *placement.Context {
	if e.Placement == nil {
		e.Placement = &placement.Context{}
	}
	return e.Placement
}

func (e *Env) editor() *shadergraph.Editor {
	if e.Scene == nil {
		return nil
	}
	return e.Scene.Editor
}

// track reports the start of op and returns a function that reports its
// completion.
func track(ctx context.Context, op string) func(count int, err error) {
	start := time.Now()
	observability.Operation().OnOperationStart(ctx, op)
	return func(count int, err error) {
		observability.Operation().OnOperationComplete(ctx, op, count, time.Since(start), err)
	}
}
