package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveAction(t *testing.T) {
	before := testutil.ToFloat64(ActionsTotal.WithLabelValues("command/view", "ok"))
	ObserveAction("command/view", "ok")
	ObserveAction("command/view", "ok")
	after := testutil.ToFloat64(ActionsTotal.WithLabelValues("command/view", "ok"))
	if after-before != 2 {
		t.Fatalf("counter delta = %v, want 2", after-before)
	}
}

func TestObserveBatch(t *testing.T) {
	ObserveBatch(12, 3*time.Millisecond)
	if n := testutil.CollectAndCount(BatchActions); n != 1 {
		t.Fatalf("collected %d batch_actions metrics, want 1", n)
	}
	if n := testutil.CollectAndCount(BatchDuration); n != 1 {
		t.Fatalf("collected %d batch_duration metrics, want 1", n)
	}
}

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/evaluations", "200"))
	ObserveRequest("/evaluations", 200)
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/evaluations", "200"))
	if after-before != 1 {
		t.Fatalf("counter delta = %v, want 1", after-before)
	}
}
