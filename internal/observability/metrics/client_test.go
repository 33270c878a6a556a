package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequestLabelsStatusAndNetworkErrors(t *testing.T) {
	m := NewClientMetrics("arquivia-cli")

	m.ObserveRequest("documents.list", http.StatusOK, 10*time.Millisecond, nil)
	m.ObserveRequest("documents.list", http.StatusOK, 12*time.Millisecond, nil)
	m.ObserveRequest("documents.list", 0, time.Millisecond, errors.New("dial tcp"))

	if got := testutil.ToFloat64(m.requestTotal.WithLabelValues("arquivia-cli", "documents.list", "200")); got != 2 {
		t.Fatalf("expected 2 successful requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.requestTotal.WithLabelValues("arquivia-cli", "documents.list", "network_error")); got != 1 {
		t.Fatalf("expected 1 network error, got %v", got)
	}
}

func TestRecordSaveAndBrowseOutcomes(t *testing.T) {
	m := NewClientMetrics("arquivia-cli")

	m.RecordSave("classification", nil)
	m.RecordSave("categories", errors.New("rejected"))
	m.RecordBrowse("searching", nil)
	m.RecordBrowse("", errors.New("down"))

	if got := testutil.ToFloat64(m.saveTotal.WithLabelValues("arquivia-cli", "categories", "error")); got != 1 {
		t.Fatalf("expected failed category save, got %v", got)
	}
	if got := testutil.ToFloat64(m.browseTotal.WithLabelValues("arquivia-cli", "unknown", "error")); got != 1 {
		t.Fatalf("expected unknown-mode failure, got %v", got)
	}
}

func TestPushSendsRegistryToGateway(t *testing.T) {
	var method, path string
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer gateway.Close()

	m := NewClientMetrics("arquivia-cli")
	m.RecordSave("classification", nil)
	if err := m.Push(context.Background(), gateway.URL, "arquivia"); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if method != http.MethodPut || path != "/metrics/job/arquivia" {
		t.Fatalf("unexpected push request %s %s", method, path)
	}
}

func TestPushWithoutGatewayIsNoop(t *testing.T) {
	m := NewClientMetrics("arquivia-cli")
	if err := m.Push(context.Background(), "", ""); err != nil {
		t.Fatalf("expected no-op push, got %v", err)
	}
}
