package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-astro/internal/angle"
	"github.com/litescript/ls-astro/internal/epoch"
)

func newLMSTCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lmst",
		Short: "Show UTC, MJD and sidereal time at a location",
		Example: `  ls-astro lmst
  ls-astro lmst --all --time "2024-03-01 12:00:00"
  ls-astro lmst --location Parkes --next 19:39:25`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLMST(cmd, a)
		},
	}
	cmd.Flags().Bool("all", false, "show every registered location")
	cmd.Flags().String("next", "", "find the next UTC time at which the LMST reaches H:MM:SS")
	cmd.Flags().Duration("watch", 0, "repeat at interval (e.g. 30s)")
	addTimeFlags(cmd)
	return cmd
}

func runLMST(cmd *cobra.Command, a *app) error {
	t, err := a.epochAt(cmd)
	if err != nil {
		return err
	}

	names := []string{a.cfg.Location}
	if all, _ := cmd.Flags().GetBool("all"); all {
		names = a.registry.Names()
	}

	if next, _ := cmd.Flags().GetString("next"); next != "" {
		turns, err := angle.ParseTurns(next, angle.Hours)
		if err != nil {
			return fmt.Errorf("--next: %w", err)
		}
		return a.nextLMST(t, names, angle.FromTurns(turns))
	}

	render := func() error {
		if !fixedTime(cmd) {
			t.SetNow()
		}
		return a.writeTimes(t, names)
	}
	every, _ := cmd.Flags().GetDuration("watch")
	return a.repeat(cmd.Context(), every, render)
}

func (a *app) writeTimes(t *epoch.Time, names []string) error {
	exports := make([]TimeExport, 0, len(names))
	for _, n := range names {
		at := t.Clone()
		if _, err := at.SetLocation(n); err != nil {
			return err
		}
		exports = append(exports, exportTime(at))
	}
	if a.jsonOut {
		if len(exports) == 1 {
			return writeJSON(a.out, exports[0])
		}
		return writeJSON(a.out, exports)
	}

	var b strings.Builder
	b.WriteString(a.theme.Title(fmt.Sprintf("%s UTC  MJD %.6f  GMST %s",
		t.Format("%y-%m-%d %H:%M:%S"), t.MJD(), exports[0].GMST)))
	b.WriteString("\n")
	for _, e := range exports {
		fmt.Fprintf(&b, "%-10s LMST %s  local %s\n", e.Location, e.LMST, e.Local)
	}
	_, err := a.out.Write([]byte(b.String()))
	return err
}

func (a *app) nextLMST(t *epoch.Time, names []string, target angle.Angle) error {
	var b strings.Builder
	for _, n := range names {
		at := t.Clone()
		if _, err := at.SetLocation(n); err != nil {
			return err
		}
		at.NextLMST(target)
		if a.jsonOut {
			if err := writeJSON(a.out, exportTime(at)); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintf(&b, "%-10s LMST %s at %s UTC\n", n, target.Format(angle.HoursFormat()), at.Format("%y-%m-%d %H:%M:%S"))
	}
	_, err := a.out.Write([]byte(b.String()))
	return err
}
