package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/popkit/internal/config"
	"github.com/rileyhilliard/popkit/internal/logger"
	"github.com/rileyhilliard/popkit/internal/overlay"
	"github.com/rileyhilliard/popkit/internal/ui"
	"github.com/spf13/cobra"
)

// placeFlags are the inputs of the place command. Nil pointers and empty
// strings fall back to the popover section of the config.
type placeFlags struct {
	Ref       string
	Content   string
	Viewport  string
	Placement string
	AppendTo  string
	MoveBy    string
	Flip      *bool
	Fixed     *bool
	MinWidth  int
	MaxWidth  int
	Dynamic   bool
	Draw      bool
}

var (
	placeOpts      placeFlags
	placeFlipFlag  bool
	placeFixedFlag bool
)

var placeCmd = &cobra.Command{
	Use:   "place",
	Short: "Print where a panel would be placed",
	Long: `Resolve a panel position without drawing any widget.

The reference rectangle, panel size and viewport are given in terminal cells.
Placement, flip, fixed and append target default to the popover section of
the config.

Examples:
  popkit place --ref 10,5,12,1 --content 20,6
  popkit place --ref 10,20,12,1 --content 20,6 --placement bottom-start --draw
  popkit place --ref 2,2,8,1 --content 30,4 --move-by 0,1 --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		f := placeOpts
		if cmd.Flags().Changed("flip") {
			f.Flip = &placeFlipFlag
		}
		if cmd.Flags().Changed("fixed") {
			f.Fixed = &placeFixedFlag
		}
		return runPlace(cmd.OutOrStdout(), cfg, f)
	},
}

func init() {
	flags := placeCmd.Flags()
	flags.StringVar(&placeOpts.Ref, "ref", "", "reference rectangle as x,y,w,h (required)")
	flags.StringVar(&placeOpts.Content, "content", "", "panel size as w,h (required)")
	flags.StringVar(&placeOpts.Viewport, "viewport", "80,24", "viewport size as w,h")
	flags.StringVar(&placeOpts.Placement, "placement", "", "side and alignment, e.g. top-start (default from config)")
	flags.StringVar(&placeOpts.AppendTo, "append-to", "", "inline, parent, scrollParent or window (default from config)")
	flags.StringVar(&placeOpts.MoveBy, "move-by", "", "offset as x,y; turns flip off unless --flip is given")
	flags.BoolVar(&placeFlipFlag, "flip", true, "flip to the opposite side on overflow")
	flags.BoolVar(&placeFixedFlag, "fixed", false, "keep the placement even when it overflows")
	flags.IntVar(&placeOpts.MinWidth, "min-width", 0, "minimum panel width")
	flags.IntVar(&placeOpts.MaxWidth, "max-width", 0, "maximum panel width")
	flags.BoolVar(&placeOpts.Dynamic, "dynamic-width", false, "make the panel at least as wide as the reference")
	flags.BoolVar(&placeOpts.Draw, "draw", false, "draw the viewport with the reference and panel")
	_ = placeCmd.MarkFlagRequired("ref")
	_ = placeCmd.MarkFlagRequired("content")

	rootCmd.AddCommand(placeCmd)
}

// placeResult is the resolved position as printed by the place command.
type placeResult struct {
	Placement string `json:"placement"`
	Flipped   bool   `json:"flipped"`
	Hidden    bool   `json:"hidden"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	W         int    `json:"w"`
	H         int    `json:"h"`
}

func runPlace(w io.Writer, cfg *config.Config, f placeFlags) error {
	ref, err := ParseRect("ref", f.Ref)
	if err != nil {
		return err
	}
	content, err := ParseSize("content", f.Content)
	if err != nil {
		return err
	}
	viewport, err := ParseSize("viewport", f.Viewport)
	if err != nil {
		return err
	}
	opts, err := placeOptions(cfg.Popover, f)
	if err != nil {
		return err
	}

	p, tree := placePopover(opts, viewport, ref, content)
	defer p.Unmount()

	pos := p.Position()
	res := placeResult{
		Placement: pos.Placement.String(),
		Flipped:   pos.Flipped,
		Hidden:    pos.Hidden,
		X:         pos.Rect.X,
		Y:         pos.Rect.Y,
		W:         pos.Rect.W,
		H:         pos.Rect.H,
	}

	if machineMode {
		return WriteJSONSuccess(w, res)
	}

	printPlacement(w, res)
	if f.Draw {
		fmt.Fprintln(w)
		fmt.Fprintln(w, drawPlacement(p, tree, ref))
	}
	return nil
}

// placeOptions layers the flags over the configured popover options.
func placeOptions(pc config.PopoverConfig, f placeFlags) (overlay.Options, error) {
	if f.Placement != "" {
		pc.Placement = f.Placement
	}
	if f.AppendTo != "" {
		pc.AppendTo = f.AppendTo
	}
	if f.Fixed != nil {
		pc.Fixed = *f.Fixed
	}
	if f.Dynamic {
		pc.DynamicWidth = true
	}

	opts, err := pc.PopoverOptions()
	if err != nil {
		return overlay.Options{}, err
	}

	moveBy, err := ParseOffset("move-by", f.MoveBy)
	if err != nil {
		return overlay.Options{}, err
	}
	opts.MoveBy = moveBy
	// An offset turns flipping off unless it is asked for explicitly.
	opts.Flip = f.Flip
	if opts.Flip == nil && moveBy == nil {
		opts.Flip = overlay.Bool(pc.Flip)
	}

	opts.Sizing.MinWidth = f.MinWidth
	opts.Sizing.MaxWidth = f.MaxWidth
	return opts, nil
}

// placePopover mounts a shown popover on a one-node tree and positions it.
func placePopover(opts overlay.Options, viewport overlay.Size, ref overlay.Rect, content overlay.Size) (*overlay.Popover, *overlay.Tree) {
	tree := overlay.NewTree(overlay.Rect{W: viewport.W, H: viewport.H})
	refNode := tree.Add(tree.Root(), overlay.NodeSpec{Name: "reference", Rect: ref})

	opts.Shown = true
	opts.ContentSize = content
	p := overlay.New(tree, refNode, opts, overlay.WithLogger(logger.Default()))
	p.Mount()
	p.Reposition()
	return p, tree
}

func printPlacement(w io.Writer, res placeResult) {
	label := ui.MutedStyle().Width(11)
	value := lipgloss.NewStyle().Bold(true)

	placement := res.Placement
	if res.Flipped {
		placement += " (flipped)"
	}
	fmt.Fprintln(w, label.Render("placement")+value.Render(placement))
	fmt.Fprintln(w, label.Render("rect")+value.Render(overlay.Rect{X: res.X, Y: res.Y, W: res.W, H: res.H}.String()))
	if res.Hidden {
		fmt.Fprintln(w, label.Render("hidden")+ui.WarningStyle().Render("reference is outside the viewport"))
	}
}

// drawPlacement renders the viewport with the reference as '#' and the
// panel as '░', clipped the way the widget would be.
func drawPlacement(p *overlay.Popover, tree *overlay.Tree, ref overlay.Rect) string {
	vp := tree.Viewport()
	row := strings.Repeat("·", vp.W)
	base := strings.TrimSuffix(strings.Repeat(row+"\n", vp.H), "\n")

	base = ui.Composite(base, vp.W, vp.H, ui.Layer{
		X:       ref.X,
		Y:       ref.Y,
		Content: block("#", ref.W, ref.H),
	})

	pos := p.Position()
	return p.Render(base, ui.InfoStyle().Render(block("░", pos.Rect.W, pos.Rect.H)))
}

func block(glyph string, w, h int) string {
	line := strings.Repeat(glyph, w)
	lines := make([]string, h)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
