package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/r-kez/k-tools-texture-map-loader/pkg/config"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/maptype"
)

// keywordsCommand creates the keywords command group for editing the
// keyword table in preferences.
func (c *CLI) keywordsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "Manage the map-type keyword table",
		Long: `Manage the keyword table used to classify texture files and image nodes.

Entries are matched in order; when two entries share a keyword the later
one wins.`,
	}

	cmd.AddCommand(c.keywordsListCommand())
	cmd.AddCommand(c.keywordsAddCommand())
	cmd.AddCommand(c.keywordsRemoveCommand())
	cmd.AddCommand(c.keywordsRestoreCommand())
	cmd.AddCommand(c.keywordsPathCommand())

	return cmd
}

func (c *CLI) keywordsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List keyword entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, _, err := c.loadPrefs()
			if err != nil {
				return err
			}
			c.printKeywords(prefs)
			return nil
		},
	}
}

func (c *CLI) printKeywords(prefs *config.Preferences) {
	if len(prefs.Keywords) == 0 {
		c.printInfo("No keyword entries")
		return
	}
	rows := make([][]string, len(prefs.Keywords))
	for i, e := range prefs.Keywords {
		idx := strconv.Itoa(i)
		if i == prefs.ActiveKeyword {
			idx = "▸ " + idx
		}
		rows[i] = []string{idx, e.MapType, e.Keywords, string(e.DataType)}
	}
	c.printTable([]string{"#", "Map Type", "Keywords", "Data"}, rows, -1)
	c.printKeyValue("Color space", prefs.ColorSpaceColor)
	c.printKeyValue("Utility space", prefs.ColorSpaceUtility)
}

func (c *CLI) keywordsAddCommand() *cobra.Command {
	var mapType, keywords, dataType string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a keyword entry",
		Long: `Append a keyword entry and make it active.

Without flags the entry is a placeholder (NewMap / keyword1 / UTILITY).`,
		Example: `  ktml keywords add --map-type Specular --keywords "spec, specular" --data-type utility`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.editPrefs(func(p *config.Preferences) error {
				p.Add()
				if err := p.Update(mapType, keywords, maptype.DataType(dataType)); err != nil {
					return err
				}
				e := p.Keywords[p.ActiveKeyword]
				c.printSuccess("Added %s (%s)", StyleHighlight.Render(e.MapType), e.Keywords)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&mapType, "map-type", "", "map type name")
	cmd.Flags().StringVar(&keywords, "keywords", "", "comma-separated keywords")
	cmd.Flags().StringVar(&dataType, "data-type", "", "COLOR or UTILITY")
	return cmd
}

func (c *CLI) keywordsRemoveCommand() *cobra.Command {
	index := -1

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove the active keyword entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.editPrefs(func(p *config.Preferences) error {
				if index >= 0 {
					if err := p.Select(index); err != nil {
						return err
					}
				}
				e, err := p.Remove()
				if err != nil {
					return err
				}
				c.printSuccess("Removed %s", StyleHighlight.Render(e.MapType))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&index, "index", -1, "entry to remove (default: active entry)")
	return cmd
}

func (c *CLI) keywordsRestoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Restore the built-in keyword entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.editPrefs(func(p *config.Preferences) error {
				p.RestoreDefaults()
				c.printSuccess("Restored %d default entries", len(p.Keywords))
				return nil
			})
		},
	}
}

func (c *CLI) keywordsPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show the preferences file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.prefsPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(c.Out, path)
			return nil
		},
	}
}

// editPrefs loads preferences, applies fn and saves them.
func (c *CLI) editPrefs(fn func(*config.Preferences) error) error {
	prefs, path, err := c.loadPrefs()
	if err != nil {
		return err
	}
	if err := fn(prefs); err != nil {
		return err
	}
	if err := config.Save(path, prefs); err != nil {
		return err
	}
	c.printFile(path)
	return nil
}
