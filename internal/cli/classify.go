package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/r-kez/k-tools-texture-map-loader/pkg/maptype"
)

// classifyCommand creates the classify command.
func (c *CLI) classifyCommand() *cobra.Command {
	var file bool

	cmd := &cobra.Command{
		Use:   "classify NAME...",
		Short: "Classify names against the keyword table",
		Long: `Classify names by the configured keyword table.

Names are split into segments on '.', '_', ' ' and '-'. The first keyword,
in table order, that equals a segment decides the map type. With --file the
extension is stripped before splitting.`,
		Example: `  ktml classify wood_floor_diff_4k.png --file
  ktml classify Roughness "Base Color"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, _, err := c.loadPrefs()
			if err != nil {
				return err
			}
			table := prefs.Table()

			rows := make([][]string, len(args))
			for i, name := range args {
				var info maptype.Info
				if file {
					info = table.ClassifyFile(name)
				} else {
					info = table.Classify(name)
				}
				rows[i] = []string{name, info.MapType, string(info.DataType), rankText(info.MapType)}
			}
			c.printTable([]string{"Name", "Map Type", "Data", "Priority"}, rows, 1)
			return nil
		},
	}

	cmd.Flags().BoolVar(&file, "file", false, "treat names as filenames and strip the extension")
	return cmd
}

func rankText(mapType string) string {
	r := maptype.Rank(mapType)
	if r == maptype.Unranked {
		return "-"
	}
	return strconv.Itoa(r)
}
