package cli

import (
	"context"
	"os"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/r-kez/k-tools-texture-map-loader/pkg/errors"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/ops"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/settings"
)

// =============================================================================
// scan
// =============================================================================

func (c *CLI) scanCommand() *cobra.Command {
	var sf sceneFlags

	cmd := &cobra.Command{
		Use:   "scan SCENE",
		Short: "List the image nodes of the target tree",
		Long: `List the image nodes of the target tree in classifier order.

In ACTIVE_GROUP mode the target is the template of the active group node;
in FULL_MATERIAL mode it is the material tree itself.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := sf.open(c, args[0])
			if err != nil {
				return err
			}
			entries, err := ops.Scan(env)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				c.printInfo("No image nodes in %s", StyleHighlight.Render(ops.TargetTree(env).Name))
				return nil
			}
			rows := make([][]string, len(entries))
			for i, e := range entries {
				img := "-"
				if e.Node.HasImage() {
					img = e.Node.Image.Name
				}
				rows[i] = []string{e.Node.Name, e.Node.DisplayName(), e.Info.MapType, rankText(e.Info.MapType), img}
			}
			c.printTable([]string{"Node", "Label", "Map Type", "Priority", "Image"}, rows, 2)
			return nil
		},
	}

	sf.bind(cmd)
	return cmd
}

// =============================================================================
// load
// =============================================================================

func (c *CLI) loadCommand() *cobra.Command {
	var (
		sf  sceneFlags
		dir string
		out string
	)

	cmd := &cobra.Command{
		Use:   "load SCENE [FILE...]",
		Short: "Load a texture set into the target tree",
		Long: `Load texture files into the image nodes of the target tree.

Each file is classified by name; the first image node serving that map type
receives the image. Without FILE arguments every regular file in --dir is
considered. The scene is written back in place unless -o is given.`,
		Example: `  ktml load scene.json --dir textures/wood
  ktml load scene.json --dir textures/wood wood_diff.png wood_rough.png --mode FULL_MATERIAL`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := sf.open(c, args[0])
			if err != nil {
				return err
			}
			files := args[1:]
			if len(files) == 0 {
				if files, err = listFiles(dir); err != nil {
					return err
				}
			}
			return c.runLoad(cmd.Context(), env, dir, files, target(args[0], out))
		},
	}

	sf.bind(cmd)
	cmd.Flags().StringVar(&dir, "dir", ".", "directory containing the texture files")
	cmd.Flags().StringVarP(&out, "output", "o", "", "write the scene here instead of in place")
	return cmd
}

func (c *CLI) runLoad(ctx context.Context, env *ops.Env, dir string, files []string, out string) error {
	prog := newProgress(c.Logger)
	report, err := ops.LoadTextureSet(ctx, env, dir, files)
	if err != nil {
		return err
	}
	prog.done("loaded texture set " + report.Tree)

	for _, l := range report.Loaded {
		c.printDetail("%s → %s (%s)", l.File, l.Node, l.MapType)
	}
	for _, s := range report.Skipped {
		c.printDetail("skipped %s: %s", s.File, s.Reason)
	}
	for _, f := range report.Failures {
		c.printError("%s: %s", f.File, errors.UserMessage(f.Err))
	}
	if err := c.saveScene(out, env); err != nil {
		return err
	}
	c.printSuccess("%s", report.Message())
	c.printFile(out)
	return nil
}

// listFiles returns the names of the regular files in dir, sorted.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", dir)
	}
	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			files = append(files, e.Name())
		}
	}
	slices.Sort(files)
	return files, nil
}

// target returns out, or the input path when out is empty.
func target(in, out string) string {
	if out != "" {
		return out
	}
	return in
}

// =============================================================================
// settings
// =============================================================================

func (c *CLI) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and batch-apply image sampler settings",
		Long: `Show and batch-apply the sampler settings of image nodes.

The tool settings are stored in the scene file. 'set' changes one field and
propagates it to every image node of the target tree; 'apply' writes all
fields; 'get' copies the first node's settings back into the tool settings.`,
	}

	cmd.AddCommand(c.settingsShowCommand())
	cmd.AddCommand(c.settingsSetCommand())
	cmd.AddCommand(c.settingsApplyCommand())
	cmd.AddCommand(c.settingsGetCommand())
	return cmd
}

func (c *CLI) printSettings(v settings.Values) {
	c.printKeyValue(string(settings.FieldSearchMode), v.SearchMode)
	c.printKeyValue(string(settings.FieldInterpolation), v.Interpolation)
	c.printKeyValue(string(settings.FieldProjection), v.Projection)
	c.printKeyValue(string(settings.FieldProjectionBlend), strconv.FormatFloat(v.ProjectionBlend, 'f', -1, 64))
	c.printKeyValue(string(settings.FieldExtension), v.Extension)
}

func (c *CLI) settingsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show SCENE",
		Short: "Show the tool settings stored in a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := c.openScene(args[0], "")
			if err != nil {
				return err
			}
			c.printSettings(env.Tools.Values())
			return nil
		},
	}
}

func (c *CLI) settingsSetCommand() *cobra.Command {
	var sf sceneFlags

	cmd := &cobra.Command{
		Use:   "set SCENE FIELD VALUE",
		Short: "Change one setting and propagate it to image nodes",
		Long: `Change one tool setting. Sampler fields propagate to every image node of
the target tree; projection_blend only while projection is BOX.

Fields: search_mode, interpolation, projection, projection_blend, extension`,
		Example: `  ktml settings set scene.json interpolation Cubic
  ktml settings set scene.json projection BOX --mode FULL_MATERIAL`,
		Args: cobra.ExactArgs(3),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			switch len(args) {
			case 0:
				return nil, cobra.ShellCompDirectiveDefault
			case 1:
				names := make([]string, len(settings.Fields))
				for i, f := range settings.Fields {
					names[i] = string(f)
				}
				return names, cobra.ShellCompDirectiveNoFileComp
			case 2:
				if f, err := settings.ParseField(args[1]); err == nil {
					return settings.Choices(f), cobra.ShellCompDirectiveNoFileComp
				}
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := settings.ParseField(args[1])
			if err != nil {
				return err
			}
			env, err := sf.open(c, args[0])
			if err != nil {
				return err
			}
			cancel := ops.BatchUpdate(env)
			defer cancel()
			if err := env.Tools.SetString(field, args[2]); err != nil {
				return err
			}
			if err := c.saveScene(args[0], env); err != nil {
				return err
			}
			c.printSuccess("Set %s", StyleHighlight.Render(field.String()+"="+args[2]))
			return nil
		},
	}

	sf.bind(cmd)
	return cmd
}

func (c *CLI) settingsApplyCommand() *cobra.Command {
	var sf sceneFlags

	cmd := &cobra.Command{
		Use:   "apply SCENE",
		Short: "Write the tool settings to every image node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := sf.open(c, args[0])
			if err != nil {
				return err
			}
			n, err := ops.ApplyBatchSettings(cmd.Context(), env)
			if err != nil {
				return err
			}
			if err := c.saveScene(args[0], env); err != nil {
				return err
			}
			c.printSuccess("Applied settings to %d nodes.", n)
			return nil
		},
	}

	sf.bind(cmd)
	return cmd
}

func (c *CLI) settingsGetCommand() *cobra.Command {
	var sf sceneFlags

	cmd := &cobra.Command{
		Use:   "get SCENE",
		Short: "Copy the first image node's settings into the tool settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := sf.open(c, args[0])
			if err != nil {
				return err
			}
			name, err := ops.GetBatchSettings(cmd.Context(), env)
			if err != nil {
				return err
			}
			if err := c.saveScene(args[0], env); err != nil {
				return err
			}
			c.printSuccess("Copied settings from '%s'", name)
			c.printSettings(env.Tools.Values())
			return nil
		},
	}

	sf.bind(cmd)
	return cmd
}

// =============================================================================
// add
// =============================================================================

func (c *CLI) addCommand() *cobra.Command {
	var sf sceneFlags

	cmd := &cobra.Command{
		Use:   "add SCENE mapping|loader|bsdf",
		Short: "Add a K-Tools group node to the active material",
		Long: `Add an instance of a bundled node group to the active material.

Mapping and BSDF share one library group per scene. Each loader gets its
own copy of the Maps Loader template named after the material.`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"mapping", "loader", "bsdf"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := ops.ParseGroupKind(args[1])
			if err != nil {
				return err
			}
			env, err := sf.open(c, args[0])
			if err != nil {
				return err
			}
			node, err := ops.AddGroupNode(cmd.Context(), env, kind)
			if err != nil {
				return err
			}
			if err := c.saveScene(args[0], env); err != nil {
				return err
			}
			c.printSuccess("Added '%s' node.", node.DisplayName())
			c.printDetail("%s (group %s)", node.Name, node.Group)
			return nil
		},
	}

	sf.bind(cmd)
	return cmd
}
