package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/preston-bernstein/season-weeks-service/internal/config"
	"github.com/preston-bernstein/season-weeks-service/internal/metrics"
	"github.com/preston-bernstein/season-weeks-service/internal/testutil"
)

func metricsSetupSuccess(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
	return metrics.NewRecorder(), http.NewServeMux(), func(context.Context) error { return nil }, nil
}

func TestBuildMetricsSuccessPathSetsServerAndShutdown(t *testing.T) {
	orig := metricsSetup
	defer func() { metricsSetup = orig }()
	metricsSetup = metricsSetupSuccess

	rec, srv, stop := buildMetrics(config.Config{
		Metrics: config.MetricsConfig{Enabled: true, Port: "9999"},
	}, nil, nil)

	if rec == nil || srv == nil || stop == nil {
		t.Fatalf("expected recorder, server, and shutdown to be set on success")
	}
	if srv.Addr() != ":9999" {
		t.Fatalf("expected metrics addr :9999, got %s", srv.Addr())
	}
}

func TestBuildMetricsHandlesSetupFailure(t *testing.T) {
	orig := metricsSetup
	defer func() { metricsSetup = orig }()
	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	rec, srv, stop := buildMetrics(config.Config{Metrics: config.MetricsConfig{Enabled: true}}, nil, nil)
	if rec == nil {
		t.Fatalf("expected fallback metrics recorder even on setup failure")
	}
	if srv != nil || stop != nil {
		t.Fatalf("expected no metrics server on failure")
	}
}

func TestBuildMetricsDisabledSkipsServer(t *testing.T) {
	rec, srv, _ := buildMetrics(config.Config{Metrics: config.MetricsConfig{Enabled: false}}, nil, nil)
	if rec == nil {
		t.Fatalf("expected recorder to be set even when metrics disabled")
	}
	if srv != nil {
		t.Fatalf("expected no metrics server when disabled")
	}
}

func TestBuildMetricsUsesInjectedRecorder(t *testing.T) {
	rec, _ := testutil.NewRecorderWithShutdown()
	got, srv, stop := buildMetrics(config.Config{Metrics: config.MetricsConfig{Enabled: true}}, nil, rec)
	if got != rec {
		t.Fatalf("expected injected recorder to be used")
	}
	if srv != nil || stop != nil {
		t.Fatalf("expected no server or shutdown with injected recorder")
	}
}
