// Package resolver turns source names into positions, either from a remote
// name resolution service or from a built-in catalogue.
package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/litescript/ls-astro/internal/angle"
	"github.com/litescript/ls-astro/internal/coord"
	"github.com/litescript/ls-astro/internal/sky"
	"github.com/litescript/ls-astro/internal/source"
)

// Errors returned by resolvers.
var (
	ErrNotFound   = errors.New("source name not resolved")
	ErrBadPayload = errors.New("malformed resolver response")
	ErrEmptyName  = errors.New("no source name given")
)

// Resolved is a name resolved to a position.
type Resolved struct {
	Name       string
	RA         angle.Angle
	Dec        angle.Angle
	Frame      coord.Mode // J2000 or B1950
	Resolver   string     // which service answered
	Parameters map[string]any
}

// Coordinate returns the resolved position as a sky coordinate observed now.
func (r Resolved) Coordinate() (*sky.Coordinate, error) {
	return sky.New(r.RA, r.Dec, r.Frame)
}

// Source builds a named source at the resolved position.
func (r Resolved) Source(opts ...source.Option) (*source.Source, error) {
	c, err := r.Coordinate()
	if err != nil {
		return nil, fmt.Errorf("resolved %s: %w", r.Name, err)
	}
	if len(r.Parameters) > 0 {
		opts = append([]source.Option{source.WithParameters(r.Parameters)}, opts...)
	}
	return source.New(r.Name, c, opts...)
}

// Resolver looks up a source by name.
type Resolver interface {
	Resolve(ctx context.Context, name string) (Resolved, error)
}

// response is the resolution service payload. Either Error or Position is
// present.
type response struct {
	Name     string    `json:"name"`
	Position *position `json:"position"`
	Resolver string    `json:"resolver"`
	Error    string    `json:"error"`
}

type position struct {
	RA    string `json:"ra"`
	Dec   string `json:"dec"`
	Epoch string `json:"epoch"`
}

// ParseResponse decodes a resolution service payload. Right ascension is
// sexagesimal hours and declination sexagesimal degrees; the epoch selects
// J2000 (the default) or B1950.
func ParseResponse(data []byte) (Resolved, error) {
	var resp response
	if err := json.Unmarshal(data, &resp); err != nil {
		return Resolved{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if resp.Error != "" {
		return Resolved{}, fmt.Errorf("%w: %s", ErrNotFound, resp.Error)
	}
	if resp.Position == nil || resp.Name == "" {
		return Resolved{}, fmt.Errorf("%w: missing name or position", ErrBadPayload)
	}

	ra, err := angle.ParseTurns(resp.Position.RA, angle.Hours)
	if err != nil {
		return Resolved{}, fmt.Errorf("%w: ra: %v", ErrBadPayload, err)
	}
	dec, err := angle.ParseTurns(resp.Position.Dec, angle.Degrees)
	if err != nil {
		return Resolved{}, fmt.Errorf("%w: dec: %v", ErrBadPayload, err)
	}
	frame, err := epochFrame(resp.Position.Epoch)
	if err != nil {
		return Resolved{}, err
	}

	return Resolved{
		Name:     resp.Name,
		RA:       angle.FromTurns(ra),
		Dec:      angle.FromTurns(dec),
		Frame:    frame,
		Resolver: resp.Resolver,
	}, nil
}

func epochFrame(epoch string) (coord.Mode, error) {
	if strings.TrimSpace(epoch) == "" {
		return coord.J2000, nil
	}
	frame, err := sky.ParseFrame(epoch)
	if err != nil || (frame != coord.J2000 && frame != coord.B1950) {
		return 0, fmt.Errorf("%w: epoch %q", ErrBadPayload, epoch)
	}
	return frame, nil
}

// LookupObserver is notified of every lookup made through Instrument.
type LookupObserver interface {
	ObserveLookup(resolver string, err error, d time.Duration)
}

type instrumented struct {
	label string
	next  Resolver
	obs   LookupObserver
}

// Instrument reports each lookup through r to obs under label.
func Instrument(label string, r Resolver, obs LookupObserver) Resolver {
	if obs == nil {
		return r
	}
	return &instrumented{label: label, next: r, obs: obs}
}

func (i *instrumented) Resolve(ctx context.Context, name string) (Resolved, error) {
	start := time.Now()
	res, err := i.next.Resolve(ctx, name)
	i.obs.ObserveLookup(i.label, err, time.Since(start))
	return res, err
}

// Chain tries each resolver in turn and returns the first success. If all
// fail the errors are joined.
type Chain []Resolver

// Resolve implements Resolver.
func (c Chain) Resolve(ctx context.Context, name string) (Resolved, error) {
	if strings.TrimSpace(name) == "" {
		return Resolved{}, ErrEmptyName
	}
	var errs []error
	for _, r := range c {
		if err := ctx.Err(); err != nil {
			return Resolved{}, err
		}
		res, err := r.Resolve(ctx, name)
		if err == nil {
			return res, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return Resolved{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return Resolved{}, errors.Join(errs...)
}
