package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-astro/internal/resolver"
)

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve NAME...",
		Short: "Look up source positions by name",
		Long:  "Resolve source names through the remote name resolver, when resolver.url is set, falling back to the built-in catalogue of calibrators and bright stars.",
		Example: `  ls-astro resolve 1934-638 "Sgr A*"
  ls-astro --resolver-url https://resolver.example.org resolve 3C286`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd.Context(), a, args)
		},
	}
}

func runResolve(ctx context.Context, a *app, names []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	r := a.resolver()

	var found []resolver.Resolved
	for _, name := range names {
		lookupCtx, cancel := context.WithTimeout(ctx, a.cfg.Resolver.Timeout)
		res, err := r.Resolve(lookupCtx, name)
		cancel()
		if err != nil {
			return fmt.Errorf("resolve %q: %w", name, err)
		}
		found = append(found, res)
	}

	if a.jsonOut {
		exports := make([]ResolvedExport, 0, len(found))
		for _, res := range found {
			exports = append(exports, exportResolved(res))
		}
		return writeJSON(a.out, exports)
	}

	var b strings.Builder
	for _, res := range found {
		e := exportResolved(res)
		b.WriteString(a.theme.Title(e.Name))
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s %s  (%s)\n", e.RA, e.Dec, e.Epoch, e.Resolver)
		keys := make([]string, 0, len(e.Parameters))
		for k := range e.Parameters {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "    %s = %v\n", k, e.Parameters[k])
		}
	}
	_, err := a.out.Write([]byte(b.String()))
	return err
}
