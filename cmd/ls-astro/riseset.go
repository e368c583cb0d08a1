package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-astro/internal/angle"
	"github.com/litescript/ls-astro/internal/source"
)

func newRiseSetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "riseset NAME | LEFT RIGHT",
		Short: "Show when a source rises and sets",
		Long:  "Show the next rise and set of a source above the location's elevation limit, or above --elevation. The source is a name to resolve or two coordinate components in --frame.",
		Example: `  ls-astro riseset 3C273
  ls-astro riseset --elevation 30 --trace -- 12:29:06.7 +02:03:08.6
  ls-astro riseset --location Parkes --frame galactic 0 0`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRiseSet(cmd, a, args)
		},
	}
	cmd.Flags().String("frame", "J2000", "frame of LEFT RIGHT")
	cmd.Flags().String("elevation", "", "elevation limit (default the location's low limit)")
	cmd.Flags().Bool("trace", false, "also show the elevation over ±12 hours")
	addTimeFlags(cmd)
	return cmd
}

func runRiseSet(cmd *cobra.Command, a *app, args []string) error {
	t, err := a.epochAt(cmd)
	if err != nil {
		return err
	}
	frame, _ := cmd.Flags().GetString("frame")
	src, err := a.target(cmd.Context(), args, frame, t)
	if err != nil {
		return err
	}

	var limit *angle.Angle
	if s, _ := cmd.Flags().GetString("elevation"); s != "" {
		el, err := angle.Parse(s)
		if err != nil {
			return fmt.Errorf("--elevation: %w", err)
		}
		limit = &el
	}

	w, err := src.RiseSet(limit)
	if err != nil {
		return err
	}

	var trace *source.ElevationTrace
	if on, _ := cmd.Flags().GetBool("trace"); on {
		trace, err = src.Trace(source.TraceWindow, source.TraceStep, a.convertOptions()...)
		if err != nil {
			return err
		}
	}

	if a.jsonOut {
		return writeJSON(a.out, RiseSetExport{
			Source:   src.Name(),
			Location: src.Coordinate().Location().Name,
			Window:   exportWindow(w),
		})
	}

	var b strings.Builder
	b.WriteString(a.theme.RenderRiseSet(src, w))
	if d, err := src.TimeUntilElevationDuration(limit); err == nil {
		verb := "rises"
		if pos, err := src.AzEl(); err == nil && pos.Right.Degrees() > w.Elevation.Degrees() {
			verb = "sets"
		}
		fmt.Fprintf(&b, "%s in %s\n", verb, angle.DurationString(d))
	}
	if trace != nil {
		b.WriteString("\n")
		b.WriteString(a.theme.RenderTrace(trace, t.UTC()))
	}
	_, err = a.out.Write([]byte(b.String()))
	return err
}
