package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/litescript/ls-astro/internal/angle"
	"github.com/litescript/ls-astro/internal/coord"
	"github.com/litescript/ls-astro/internal/resolver"
)

func TestConversionLegsRecorded(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}

	start := time.Now()
	_, err = coord.Convert(angle.FromDegrees(83.6), angle.FromDegrees(22.0), coord.J2000, coord.GALACTIC, collector.Options()...)
	collector.ObserveConversion(coord.J2000, coord.GALACTIC, err, time.Since(start))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	for _, leg := range [][2]string{{"J2000", "B1950"}, {"B1950", "Galactic"}} {
		if got := testutil.ToFloat64(collector.ConversionLegs.WithLabelValues(leg[0], leg[1])); got != 1 {
			t.Errorf("legs %s->%s = %v, want 1", leg[0], leg[1], got)
		}
	}
	if got := testutil.ToFloat64(collector.Conversions.WithLabelValues("J2000", "Galactic", "ok")); got != 1 {
		t.Errorf("conversions ok = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(collector.ConversionDurations); n != 1 {
		t.Errorf("duration series = %d, want 1", n)
	}
}

func TestConversionErrorLabel(t *testing.T) {
	collector, _ := NewCollector(prometheus.NewRegistry())
	_, err := coord.Convert(angle.FromDegrees(1), angle.FromDegrees(2), coord.J2000, coord.AZEL, collector.Options()...)
	collector.ObserveConversion(coord.J2000, coord.AZEL, err, 0)
	if err == nil {
		t.Fatal("Convert without latitude succeeded")
	}
	if got := testutil.ToFloat64(collector.Conversions.WithLabelValues("J2000", "AzEl", "error")); got != 1 {
		t.Errorf("conversions error = %v, want 1", got)
	}
}

func TestLookupsRecorded(t *testing.T) {
	collector, _ := NewCollector(prometheus.NewRegistry())
	r := resolver.Instrument("catalog", resolver.DefaultCatalog(), collector)

	_, _ = r.Resolve(context.Background(), "1934-638")
	_, _ = r.Resolve(context.Background(), "1934-638")
	_, _ = r.Resolve(context.Background(), "no such source")

	if got := testutil.ToFloat64(collector.Lookups.WithLabelValues("catalog", "ok")); got != 2 {
		t.Errorf("lookups ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.Lookups.WithLabelValues("catalog", "error")); got != 1 {
		t.Errorf("lookups error = %v, want 1", got)
	}
}

func TestReloads(t *testing.T) {
	collector, _ := NewCollector(prometheus.NewRegistry())
	collector.SetSites(4)
	collector.ObserveReload(6, nil)
	collector.ObserveReload(6, errors.New("duplicate"))

	if got := testutil.ToFloat64(collector.Sites); got != 6 {
		t.Errorf("sites = %v, want 6", got)
	}
	if got := testutil.ToFloat64(collector.SiteReloads.WithLabelValues("error")); got != 1 {
		t.Errorf("reload errors = %v, want 1", got)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	c.ObserveLeg(coord.J2000, coord.B1950)
	c.ObserveConversion(coord.J2000, coord.B1950, nil, time.Millisecond)
	c.ObserveLookup("x", nil, time.Millisecond)
	c.ObserveReload(1, nil)
	if opts := c.Options(); opts != nil {
		t.Errorf("nil collector Options() = %v", opts)
	}
}

func TestRegisterTwiceReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("second NewCollector: %v", err)
	}
	first.SetSites(3)
	if got := testutil.ToFloat64(second.Sites); got != 3 {
		t.Errorf("second collector sites = %v, want shared value 3", got)
	}
}

func TestMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	collector.ObserveLeg(coord.DATE, coord.HADEC)
	collector.ObserveConversion(coord.DATE, coord.HADEC, nil, time.Microsecond)
	collector.ObserveLookup("http", nil, 20*time.Millisecond)
	collector.ObserveReload(5, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, metric := range []string{
		"lsastro_conversions_total",
		"lsastro_conversion_duration_seconds",
		"lsastro_conversion_legs_total",
		"lsastro_resolver_lookups_total",
		"lsastro_resolver_lookup_duration_seconds",
		"lsastro_sites 5",
		"lsastro_site_reloads_total",
	} {
		if !strings.Contains(body, metric) {
			t.Fatalf("expected %q in /metrics output", metric)
		}
	}
}
