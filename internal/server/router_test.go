package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"wordcalc/internal/calculator"
	"wordcalc/internal/observability"
	"wordcalc/internal/testutil"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	observability.Logger = zap.NewNop()
	if err := calculator.InitMetrics(); err != nil {
		t.Fatalf("initializing calculator metrics: %v", err)
	}

	store, err := calculator.NewSessionStore(8, nil, prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("creating session store: %v", err)
	}
	return NewRouter(calculator.NewHandler(store, nil))
}

func TestNewRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := testutil.ExecuteRequest(req, router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	if body := w.Body.String(); body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", body)
	}
}

func TestNewRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := testutil.ExecuteRequest(req, router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)
}

func TestNewRouterEvaluateSetsHeaderAndOmitsRequestIDInBody(t *testing.T) {
	router := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/calculator/evaluate", calculator.EvaluateRequest{
		Left: "2", Operator: "+", Right: "3",
	})
	w := testutil.ExecuteRequest(req, router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	requestID := w.Result().Header.Get("X-Request-ID")
	if requestID == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}
	if _, err := uuid.Parse(requestID); err != nil {
		t.Fatalf("expected valid UUID in X-Request-ID, got %q: %v", requestID, err)
	}

	var payload map[string]any
	testutil.DecodeJSONBody(t, w.Result().Body, &payload)

	if _, ok := payload["request_id"]; ok {
		t.Fatal("did not expect request_id field in success JSON body")
	}
	if payload["result"] != "5" {
		t.Fatalf("expected result %q, got %#v", "5", payload["result"])
	}
	if payload["words"] != "Five" {
		t.Fatalf("expected words %q, got %#v", "Five", payload["words"])
	}
}

func TestNewRouterSessionFlow(t *testing.T) {
	router := newTestRouter(t)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodPost, "/calculator/sessions", nil), router)
	testutil.CheckResponseCode(t, http.StatusCreated, w.Code)

	var created calculator.SessionResponse
	testutil.DecodeJSONBody(t, w.Body, &created)

	base := "/calculator/sessions/" + created.SessionID
	w = testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodPost, base+"/keys", calculator.KeysRequest{Keys: "6*7="}), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	w = testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, base, nil), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var got calculator.SessionResponse
	testutil.DecodeJSONBody(t, w.Body, &got)
	if got.View.Display != "42" || got.View.Words != "Forty-Two" {
		t.Fatalf("unexpected view %+v", got.View)
	}

	w = testutil.ExecuteRequest(httptest.NewRequest(http.MethodDelete, base, nil), router)
	testutil.CheckResponseCode(t, http.StatusNoContent, w.Code)

	w = testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, base, nil), router)
	testutil.CheckResponseCode(t, http.StatusNotFound, w.Code)
}
