package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/r-kez/k-tools-texture-map-loader/pkg/errors"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/ops"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/shadergraph"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/wiring"
)

func (c *CLI) connectCommand() *cobra.Command {
	var (
		sf          sceneFlags
		selection   []string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "connect SCENE",
		Short: "Wire the selected K-Tools group nodes",
		Long: `Connect the selected group nodes of the active material.

Two or three nodes must be selected, one of them a Maps Loader. Mapping
outputs feed the Loader; Loader outputs feed the BSDF for every channel
whose image node holds an image. Existing links are never replaced.`,
		Example: `  ktml connect scene.json --select "K-Tools: Mapping,K-Tools: Maps Loader.Wood,K-Tools: BSDF"
  ktml connect scene.json --interactive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := sf.open(c, args[0])
			if err != nil {
				return err
			}
			tree := env.Scene.Editor.EditTree()
			if tree == nil {
				return errors.New(errors.ErrCodePreconditionNotMet, "no active material with nodes")
			}

			selection = splitNames(selection)
			switch {
			case interactive:
				names, ok, err := pickNodes(tree)
				if err != nil {
					return err
				}
				if !ok {
					c.printInfo("Cancelled")
					return nil
				}
				selection = names
				fallthrough
			case len(selection) > 0:
				tree.DeselectAll()
				if err := tree.Select(selection...); err != nil {
					return errors.Wrap(errors.ErrCodeNotFound, err, "select nodes")
				}
			}

			res, err := ops.Connect(cmd.Context(), env)
			if err != nil {
				return err
			}
			c.printResult(res)
			if res.Links() == 0 {
				return nil
			}
			return c.saveScene(args[0], env)
		},
	}

	sf.bind(cmd)
	cmd.Flags().StringSliceVar(&selection, "select", nil, "comma-separated node names to select (default: selection stored in scene)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick the nodes in a terminal UI")
	return cmd
}

func (c *CLI) printResult(res *wiring.Result) {
	if res.Warning() {
		c.printWarning("%s", res.Message())
	} else {
		c.printSuccess("%s", res.Message())
	}
	for _, p := range []wiring.Phase{res.Mapping, res.BSDF} {
		for _, d := range p.Decisions {
			if d.Outcome != wiring.Created {
				c.Logger.Debug("skipped link", "phase", p.Name, "from", d.From+":"+d.FromSocket,
					"to", d.To+":"+d.ToSocket, "outcome", d.Outcome)
				continue
			}
			c.printDetail("%s:%s → %s:%s", d.From, d.FromSocket, d.To, d.ToSocket)
		}
	}
	if n := res.Count(wiring.SkippedLinked); n > 0 {
		c.printDetail("%d input(s) already linked", n)
	}
	if n := res.Count(wiring.SkippedNoImage); n > 0 {
		c.printDetail("%d channel(s) without an image", n)
	}
}

// pickNodes runs the node picker. ok is false when the user quit without
// confirming.
func pickNodes(tree *shadergraph.Tree) (names []string, ok bool, err error) {
	m := NewNodePickerModel(tree)
	if len(m.Nodes) < wiring.MinSelection {
		return nil, false, errors.New(errors.ErrCodePreconditionNotMet,
			"%s has %d group node(s), need at least %d", tree.Name, len(m.Nodes), wiring.MinSelection)
	}
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "node picker")
	}
	fm := final.(NodePickerModel)
	if !fm.Confirmed {
		return nil, false, nil
	}
	return fm.Selection(), true, nil
}

// splitNames trims the names of a --select list and drops empty ones.
func splitNames(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
