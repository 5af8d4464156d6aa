package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))

	m.ObservePass(time.Millisecond, nil)
	m.ObservePass(time.Millisecond, errors.New("boom"))
	m.RecordRebuild(ScopeForest)
	m.RecordRebuild(ScopeItem)
	m.RecordRebuild(ScopeItem)
	m.RecordPatch()
	m.RecordKeyed(KeyedMove)
	m.RecordStateUpdate(true)
	m.RecordStateUpdate(false)

	if got := testutil.ToFloat64(m.Passes("success")); got != 1 {
		t.Errorf("success passes = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Passes("error")); got != 1 {
		t.Errorf("error passes = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Rebuilds(ScopeItem)); got != 2 {
		t.Errorf("item rebuilds = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Patches()); got != 1 {
		t.Errorf("patches = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.KeyedOps(KeyedMove)); got != 1 {
		t.Errorf("moves = %v, want 1", got)
	}

	count, err := testutil.GatherAndCount(reg, "test_state_updates_total")
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if count != 2 {
		t.Errorf("state update series = %d, want 2", count)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObservePass(time.Second, nil)
	m.RecordRebuild(ScopeForest)
	m.RecordPatch()
	m.RecordKeyed(KeyedInsert)
	m.RecordStateUpdate(true)
}

func TestTracerStartPass(t *testing.T) {
	tr := NewTracerFrom(noop.NewTracerProvider(), "")
	ctx, end := tr.StartPass(context.Background(), "app", 3)
	if ctx == nil {
		t.Fatal("StartPass returned nil context")
	}
	end(nil)

	var nilTracer *Tracer
	_, end = nilTracer.StartPass(context.Background(), "app", 0)
	end(errors.New("ignored"))
}
