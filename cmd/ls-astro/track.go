package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/litescript/ls-astro/internal/epoch"
	"github.com/litescript/ls-astro/internal/resolver"
	"github.com/litescript/ls-astro/internal/site"
	"github.com/litescript/ls-astro/internal/ui"
)

func newTrackCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track NAME | LEFT RIGHT",
		Short: "Follow a source live in the terminal",
		Long:  "Follow a source in every frame, updating at track.refresh. The sites file, when set, is watched and reloaded while tracking.",
		Example: `  ls-astro track 1934-638
  ls-astro track --sky --frame azel 180 45`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrack(cmd, a, args)
		},
	}
	cmd.Flags().String("frame", "J2000", "frame of LEFT RIGHT")
	cmd.Flags().Bool("sky", false, "show the horizon view")
	return cmd
}

func runTrack(cmd *cobra.Command, a *app, args []string) error {
	if !isTerminal(a.out) {
		return errors.New("track needs a terminal; use convert --watch instead")
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	t := epoch.Now(epoch.WithRegistry(a.registry), epoch.WithLocation(a.cfg.Location))
	frame, _ := cmd.Flags().GetString("frame")
	src, err := a.target(ctx, args, frame, t)
	if err != nil {
		return err
	}

	opts := []ui.TrackOption{
		ui.WithRefresh(a.cfg.Track.Refresh),
		ui.WithConvertOptions(a.convertOptions()...),
		ui.WithLogger(a.logger.With("track")),
	}
	if sky, _ := cmd.Flags().GetBool("sky"); sky {
		opts = append(opts, ui.WithSky(resolver.DefaultCatalog().Entries()))
	}
	p := tea.NewProgram(ui.NewTrackModel(src, a.theme, opts...), tea.WithAltScreen(), tea.WithContext(ctx))

	if a.cfg.SitesFile != "" {
		w, err := site.NewWatcher(a.registry, a.cfg.SitesFile)
		if err != nil {
			return fmt.Errorf("watch sites file: %w", err)
		}
		if err := w.Start(); err != nil {
			return fmt.Errorf("watch sites file: %w", err)
		}
		defer w.Stop()
		go a.forwardReloads(w, p)
	}

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running track view: %w", err)
	}
	return nil
}

// forwardReloads records each catalogue reload and passes it to the view.
func (a *app) forwardReloads(w *site.Watcher, p *tea.Program) {
	log := a.logger.With("sites")
	for r := range w.Reloads {
		a.collector.ObserveReload(len(a.registry.Names()), r.Err)
		if r.Err != nil {
			log.Diagnostic("reload", r.Err)
		} else {
			log.Info("reloaded %s: %d new sites", r.File, r.Added)
		}
		p.Send(ui.SendSiteReload(r))
	}
}
