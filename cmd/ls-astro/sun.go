package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-astro/internal/coord"
	"github.com/litescript/ls-astro/internal/source"
)

func newSunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sun",
		Short: "Show the Sun's position, sunrise, sunset and twilight",
		Example: `  ls-astro sun
  ls-astro sun --location ASKAP --time "2024-06-21 00:00:00"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSun(cmd, a)
		},
	}
	addTimeFlags(cmd)
	return cmd
}

func runSun(cmd *cobra.Command, a *app) error {
	t, err := a.epochAt(cmd)
	if err != nil {
		return err
	}
	sw, err := source.SolarTimes(t)
	if err != nil {
		return err
	}
	loc := t.Location()
	if a.jsonOut {
		return writeJSON(a.out, exportSolar(loc, sw))
	}

	sun, err := source.Sun(t)
	if err != nil {
		return err
	}
	rows := a.frames(sun.Coordinate(), []coord.Mode{coord.J2000, coord.HADEC, coord.AZEL})

	var b strings.Builder
	b.WriteString(a.theme.RenderSolarTimes(loc, sw))
	b.WriteString("\n")
	b.WriteString(a.theme.RenderFrames(rows))
	_, err = a.out.Write([]byte(b.String()))
	return err
}
