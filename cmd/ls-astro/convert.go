package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-astro/internal/coord"
	"github.com/litescript/ls-astro/internal/sky"
	"github.com/litescript/ls-astro/internal/ui"
)

func newConvertCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert LEFT RIGHT",
		Short: "Convert a position into other frames",
		Long: `Convert a position given in one frame into every other frame, or the frames named by --to.
Components accept sexagesimal strings (right ascension and hour angle in hours), "12.5 deg" style text or plain degrees.`,
		Example: `  ls-astro convert -- 19:39:25.03 -63:42:45.6
  ls-astro convert --from galactic --to j2000,azel 0 0
  ls-astro convert --from azel --mjd 60000.5 120 45`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, a, args)
		},
	}
	frames := strings.Join(frameModes, ", ")
	cmd.Flags().String("from", "J2000", fmt.Sprintf("input frame (%s)", frames))
	cmd.Flags().StringSlice("to", nil, fmt.Sprintf("output frames (default all of %s)", frames))
	cmd.Flags().Duration("watch", 0, "repeat at interval (e.g. 30s)")
	addTimeFlags(cmd)
	return cmd
}

func runConvert(cmd *cobra.Command, a *app, args []string) error {
	fromName, _ := cmd.Flags().GetString("from")
	from, err := sky.ParseFrame(fromName)
	if err != nil {
		return err
	}
	modes, err := parseFrames(cmd)
	if err != nil {
		return err
	}

	t, err := a.epochAt(cmd)
	if err != nil {
		return err
	}
	c, err := sky.FromArray([]any{args[0], args[1], from})
	if err != nil {
		return err
	}
	c.SetTime(t)

	render := func() error {
		if !fixedTime(cmd) {
			t.SetNow()
		}
		rows := a.frames(c, modes)
		if a.jsonOut {
			return writeJSON(a.out, exportConversion(c, rows))
		}
		_, err := a.out.Write([]byte(a.theme.RenderConversion(c, rows)))
		return err
	}

	every, _ := cmd.Flags().GetDuration("watch")
	return a.repeat(cmd.Context(), every, render)
}

// parseFrames reads --to, defaulting to every frame.
func parseFrames(cmd *cobra.Command) ([]coord.Mode, error) {
	names, _ := cmd.Flags().GetStringSlice("to")
	if len(names) == 0 {
		return ui.AllFrames, nil
	}
	modes := make([]coord.Mode, 0, len(names))
	for _, n := range names {
		m, err := sky.ParseFrame(n)
		if err != nil {
			return nil, err
		}
		modes = append(modes, m)
	}
	return modes, nil
}

// repeat runs fn once, then every interval until ctx is done. Failures in
// later runs are logged and the loop carries on. A zero interval runs fn
// once.
func (a *app) repeat(ctx context.Context, every time.Duration, fn func() error) error {
	if err := fn(); err != nil || every <= 0 {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	log := a.logger.With("watch")

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Debug("watch loop shutting down")
			return nil
		case <-ticker.C:
			if _, err := a.out.Write([]byte("\n")); err != nil {
				return err
			}
			if err := fn(); err != nil {
				log.Error("%v", err)
			}
		}
	}
}
