package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-astro/internal/config"
	"github.com/litescript/ls-astro/internal/coord"
	"github.com/litescript/ls-astro/internal/epoch"
	"github.com/litescript/ls-astro/internal/logging"
	"github.com/litescript/ls-astro/internal/metrics"
	"github.com/litescript/ls-astro/internal/resolver"
	"github.com/litescript/ls-astro/internal/site"
	"github.com/litescript/ls-astro/internal/sky"
	"github.com/litescript/ls-astro/internal/source"
	"github.com/litescript/ls-astro/internal/ui"
)

// app is the state shared by every subcommand once config is loaded.
type app struct {
	cfg       config.Config
	logger    *logging.Logger
	registry  *site.Registry
	collector *metrics.Collector
	theme     ui.Theme
	jsonOut   bool
	out       io.Writer

	metricsSrv *http.Server
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.out = cmd.OutOrStdout()

	a.logger = logging.New(logging.ParseLevel(cfg.LogLevel))
	a.logger.SetOutput(cmd.ErrOrStderr())
	log := a.logger.With("setup")

	a.registry = site.Default()
	if cfg.SitesFile != "" {
		n, err := a.registry.LoadCatalogFile(cfg.SitesFile)
		switch {
		case err != nil && n == 0 && !errors.Is(err, site.ErrDuplicateLocation):
			return fmt.Errorf("sites file: %w", err)
		case err != nil:
			log.Diagnostic("loadSites", err)
		}
		log.Info("loaded %d sites from %s", n, cfg.SitesFile)
	}
	if !a.registry.Has(cfg.Location) {
		return fmt.Errorf("location %q: %w", cfg.Location, site.ErrUnknownLocation)
	}

	a.jsonOut, _ = cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")
	a.theme = ui.NewTheme(!noColor && isTerminal(a.out))

	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		a.collector, err = metrics.NewCollector(reg)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		a.collector.SetSites(len(a.registry.Names()))
		a.serveMetrics(cfg.Metrics.Addr)
	}
	return nil
}

func (a *app) serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.collector.Handler())
	a.metricsSrv = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	log := a.logger.With("metrics")
	go func() {
		log.Info("serving metrics on %s/metrics", addr)
		if err := a.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server: %v", err)
		}
	}()
}

func (a *app) close() error {
	if a.metricsSrv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return a.metricsSrv.Shutdown(ctx)
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// convertOptions are applied to every conversion.
func (a *app) convertOptions() []coord.Option {
	return append([]coord.Option{coord.WithRefraction(a.cfg.Refraction)}, a.collector.Options()...)
}

// lookupObserver returns the collector as an observer, or nil without one.
func (a *app) lookupObserver() resolver.LookupObserver {
	if a.collector == nil {
		return nil
	}
	return a.collector
}

// resolver tries the remote service, when configured, then the built-in
// catalogue.
func (a *app) resolver() resolver.Resolver {
	var chain resolver.Chain
	if a.cfg.Resolver.URL != "" {
		remote := resolver.NewHTTPResolver(
			resolver.WithBaseURL(a.cfg.Resolver.URL),
			resolver.WithScript(a.cfg.Resolver.Script),
			resolver.WithTimeout(a.cfg.Resolver.Timeout),
		)
		chain = append(chain, resolver.Instrument("http", remote, a.lookupObserver()))
	}
	return append(chain, resolver.Instrument("catalog", resolver.DefaultCatalog(), a.lookupObserver()))
}

// addTimeFlags registers --time and --mjd on cmd.
func addTimeFlags(cmd *cobra.Command) {
	cmd.Flags().String("time", "", `UTC time "YYYY-MM-DD HH:MM:SS" (default now)`)
	cmd.Flags().Float64("mjd", 0, "Modified Julian Date (default now)")
	cmd.MarkFlagsMutuallyExclusive("time", "mjd")
}

// fixedTime reports whether cmd was given --time or --mjd.
func fixedTime(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("time") || cmd.Flags().Changed("mjd")
}

// epochAt returns the time selected by --time or --mjd at the configured
// location.
func (a *app) epochAt(cmd *cobra.Command) (*epoch.Time, error) {
	opts := []epoch.Option{epoch.WithRegistry(a.registry), epoch.WithLocation(a.cfg.Location)}
	switch {
	case cmd.Flags().Changed("time"):
		s, _ := cmd.Flags().GetString("time")
		return epoch.FromUTCString(s, opts...)
	case cmd.Flags().Changed("mjd"):
		mjd, _ := cmd.Flags().GetFloat64("mjd")
		return epoch.FromMJD(mjd, opts...), nil
	}
	return epoch.Now(opts...), nil
}

// target builds a source from either "LEFT RIGHT" in frame or a name to
// resolve.
func (a *app) target(ctx context.Context, args []string, frame string, t *epoch.Time) (*source.Source, error) {
	var src *source.Source
	switch len(args) {
	case 1:
		ctx, cancel := context.WithTimeout(ctx, a.cfg.Resolver.Timeout)
		defer cancel()
		res, err := a.resolver().Resolve(ctx, args[0])
		if err != nil {
			return nil, err
		}
		a.logger.With("resolve").Debug("%s resolved by %s", res.Name, res.Resolver)
		if src, err = res.Source(); err != nil {
			return nil, err
		}
	case 2:
		c, err := sky.FromArray([]any{args[0], args[1], frame})
		if err != nil {
			return nil, err
		}
		if src, err = source.New(strings.Join(args, " "), c); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("want a source name or two coordinate components, got %d arguments", len(args))
	}
	src.UseTime(t)
	return src, nil
}

// frames converts c into each mode, recording each conversion.
func (a *app) frames(c *sky.Coordinate, modes []coord.Mode) []ui.FrameRow {
	log := a.logger.With("convert")
	rows := make([]ui.FrameRow, 0, len(modes))
	for _, m := range modes {
		start := time.Now()
		row := ui.Frames(c, []coord.Mode{m}, a.convertOptions()...)[0]
		a.collector.ObserveConversion(c.Frame(), m, row.Err, time.Since(start))
		log.Diagnostic(c.Frame().String()+"->"+m.String(), row.Err)
		rows = append(rows, row)
	}
	return rows
}
