// Package cli implements the ktml command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/r-kez/k-tools-texture-map-loader/pkg/buildinfo"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/config"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/errors"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/ops"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/scenefile"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/settings"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "ktml"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	// Out receives command output. Logs go to the logger's writer.
	Out io.Writer
	// ConfigPath overrides the preferences file location.
	ConfigPath string
}

// New creates a CLI writing results to out and logs to logw.
func New(out, logw io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(logw, level), Out: out}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "ktml loads texture sets into shader node trees",
		Long: `ktml classifies texture files by naming convention, loads them into the
image nodes of a shader node tree, and wires the K-Tools node groups
(Mapping, Maps Loader, BSDF) together.

Scenes are JSON files; see 'ktml scan --help' for the commands that act on them.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "preferences file (default $XDG_CONFIG_HOME/ktml/preferences.toml)")

	root.AddCommand(c.classifyCommand())
	root.AddCommand(c.keywordsCommand())
	root.AddCommand(c.scanCommand())
	root.AddCommand(c.loadCommand())
	root.AddCommand(c.settingsCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.connectCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Preferences
// =============================================================================

func (c *CLI) prefsPath() (string, error) {
	if c.ConfigPath != "" {
		return c.ConfigPath, nil
	}
	return config.DefaultPath()
}

func (c *CLI) loadPrefs() (*config.Preferences, string, error) {
	path, err := c.prefsPath()
	if err != nil {
		return nil, "", err
	}
	p, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	c.Logger.Debug("loaded preferences", "path", path, "keywords", len(p.Keywords))
	return p, path, nil
}

// =============================================================================
// Scenes
// =============================================================================

// openScene reads a scene file and builds an operator environment for it.
// A non-empty mode overrides the stored search mode.
func (c *CLI) openScene(path, mode string) (*ops.Env, error) {
	doc, err := scenefile.ReadFile(path)
	if err != nil {
		return nil, err
	}
	prefs, _, err := c.loadPrefs()
	if err != nil {
		return nil, err
	}
	env := ops.NewEnv(doc.Scene)
	env.Prefs = prefs
	env.Tools = settings.NewWith(doc.Tools)
	env.Logger = c.Logger
	if mode != "" {
		if err := env.Tools.SetSilent(settings.FieldSearchMode, mode); err != nil {
			return nil, err
		}
	}
	c.Logger.Debug("opened scene", "path", path, "materials", len(doc.Scene.Materials),
		"groups", doc.Scene.Groups.Len(), "search_mode", env.Tools.SearchMode())
	return env, nil
}

// saveScene writes env back to path.
func (c *CLI) saveScene(path string, env *ops.Env) error {
	doc := &scenefile.Document{Scene: env.Scene, Tools: env.Tools.Values()}
	if err := scenefile.WriteFile(doc, path); err != nil {
		return err
	}
	c.Logger.Debug("saved scene", "path", path)
	return nil
}

// sceneFlags selects what part of a scene a command acts on.
type sceneFlags struct {
	mode     string
	material string
	active   string
}

func (f *sceneFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mode, "mode", "", "search mode: ACTIVE_GROUP or FULL_MATERIAL (default: stored in scene)")
	cmd.Flags().StringVar(&f.material, "material", "", "make this material active in the editor")
	cmd.Flags().StringVar(&f.active, "active", "", "make this node of the material tree active")
}

// open reads the scene at path and applies the flags to its editor.
func (f *sceneFlags) open(c *CLI, path string) (*ops.Env, error) {
	env, err := c.openScene(path, f.mode)
	if err != nil {
		return nil, err
	}
	ed := env.Scene.Editor
	if f.material != "" {
		m, ok := env.Scene.Material(f.material)
		if !ok {
			return nil, errors.New(errors.ErrCodeNotFound, "no material named %q", f.material)
		}
		ed.Material = m
	}
	if f.active != "" {
		tree := ed.EditTree()
		if tree == nil {
			return nil, errors.New(errors.ErrCodePreconditionNotMet, "no active material with nodes")
		}
		if err := tree.SetActive(f.active); err != nil {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "set active node")
		}
	}
	return env, nil
}
