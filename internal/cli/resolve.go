package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/riordanpawley/popover/internal/geometry"
	"github.com/riordanpawley/popover/internal/popover"
	"github.com/spf13/cobra"
)

// anchorsAll selects every anchor in a --origin or --popover flag
const anchorsAll = "all"

type resolveOpts struct {
	rect    string
	size    string
	point   string
	origin  string
	popover string
}

func newResolveCmd() *cobra.Command {
	opts := &resolveOpts{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print where popovers land for a trigger frame",
		Long: `Resolve prints the offset and frame of a popover of --size placed against the
trigger frame --rect, using the configured default placement and padding.
Pass --origin and --popover to override the anchors ("all" lists every
anchor), or --point to place relative to a surface point instead.`,
		Example: `  popdemo resolve --rect 10,5,20,3 --size 12x4
  popdemo resolve --rect 0,0,80,24 --point 40,12 --popover all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.rect, "rect", "0,0,20,3", "trigger frame as x,y,width,height")
	cmd.Flags().StringVar(&opts.size, "size", "12x4", "content size as widthxheight")
	cmd.Flags().StringVar(&opts.point, "point", "", "anchor point x,y for relative placement")
	cmd.Flags().StringVar(&opts.origin, "origin", "", `trigger anchor, or "all"`)
	cmd.Flags().StringVar(&opts.popover, "popover", "", `popover anchor, or "all"`)

	return cmd
}

func runResolve(cmd *cobra.Command, opts *resolveOpts) error {
	logger := loggerFromContext(cmd.Context())
	cfg := configFromContext(cmd.Context())

	base, err := cfg.Attributes()
	if err != nil {
		return fmt.Errorf("invalid popover defaults: %w", err)
	}
	source, err := parseRect(opts.rect)
	if err != nil {
		return err
	}
	size, err := parseSize(opts.size)
	if err != nil {
		return err
	}

	popoverAnchors, err := anchorList(opts.popover, base.Placement.PopoverAnchor())
	if err != nil {
		return err
	}

	var placements []geometry.Placement
	if opts.point != "" {
		p, err := parsePoint(opts.point)
		if err != nil {
			return err
		}
		for _, pa := range popoverAnchors {
			placements = append(placements, geometry.Relative(p, pa))
		}
	} else {
		origins, err := anchorList(opts.origin, base.Placement.OriginAnchor())
		if err != nil {
			return err
		}
		for _, oa := range origins {
			for _, pa := range popoverAnchors {
				placements = append(placements, geometry.Absolute(oa, pa))
			}
		}
	}
	logger.Debug("resolving placements", "count", len(placements), "source", source, "size", size)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLACEMENT\tOFFSET\tFRAME")
	for _, p := range placements {
		fmt.Fprintln(w, resolveRow(base, source, p, size))
	}
	return w.Flush()
}

// resolveRow formats one table row for placement p
func resolveRow(base popover.Attributes, source geometry.Rect, p geometry.Placement, size geometry.Size) string {
	a := base
	a.SourceRect = source
	a.Placement = p
	off := a.Resolve(size)
	frame := geometry.RectOf(off.Point(), size.Pad(a.Padding))
	return fmt.Sprintf("%s\t%g,%g\t%g,%g %gx%g", p, off.DX, off.DY, frame.X, frame.Y, frame.Width, frame.Height)
}

// anchorList parses an anchor flag. Empty means fallback.
func anchorList(s string, fallback geometry.Anchor) ([]geometry.Anchor, error) {
	switch strings.ToLower(s) {
	case "":
		return []geometry.Anchor{fallback}, nil
	case anchorsAll:
		return geometry.Anchors, nil
	}
	a, err := geometry.ParseAnchor(s)
	if err != nil {
		return nil, err
	}
	return []geometry.Anchor{a}, nil
}

func parseRect(s string) (geometry.Rect, error) {
	v, err := parseFloats(s, ",", 4)
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("invalid rect %q: %w", s, err)
	}
	return geometry.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

func parseSize(s string) (geometry.Size, error) {
	v, err := parseFloats(strings.ToLower(s), "x", 2)
	if err != nil {
		return geometry.Size{}, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return geometry.Size{Width: v[0], Height: v[1]}, nil
}

func parsePoint(s string) (geometry.Point, error) {
	v, err := parseFloats(s, ",", 2)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return geometry.Point{X: v[0], Y: v[1]}, nil
}

func parseFloats(s, sep string, n int) ([]float64, error) {
	parts := strings.Split(s, sep)
	if len(parts) != n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(parts))
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
