package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/preston-bernstein/scorigami-service/internal/http/middleware"
	"github.com/preston-bernstein/scorigami-service/internal/poller"
	"github.com/preston-bernstein/scorigami-service/internal/queue"
	"github.com/preston-bernstein/scorigami-service/internal/social"
	"github.com/preston-bernstein/scorigami-service/internal/testutil"
)

type stubChecker struct {
	summary poller.Summary
	err     error
	calls   int
}

func (s *stubChecker) RunOnce(ctx context.Context) (poller.Summary, error) {
	_ = ctx
	s.calls++
	return s.summary, s.err
}

type stubDrainer struct {
	res   queue.DrainResult
	err   error
	calls int
}

func (s *stubDrainer) DrainOne(ctx context.Context) (queue.DrainResult, error) {
	_ = ctx
	s.calls++
	return s.res, s.err
}

func authed(method, path string) *http.Request {
	return testutil.BearerRequest(method, path, "s3cret")
}

func TestHealth(t *testing.T) {
	h := NewHandler(nil, nil, "", nil, nil)

	rr := testutil.Serve(h, http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h := NewHandler(nil, nil, "", nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req.WithContext(ctx))

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "shutting down" {
		t.Fatalf("unexpected error %q", resp["error"])
	}
}

func TestReady(t *testing.T) {
	h := NewHandler(nil, nil, "", nil, nil)
	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestReadyIdleBeforeFirstCheck(t *testing.T) {
	h := NewHandler(nil, nil, "", nil, func() poller.Status { return poller.Status{} })

	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "idle" {
		t.Fatalf("expected idle, got %s", resp["status"])
	}
}

func TestReadyWithStatus(t *testing.T) {
	now := time.Now()
	h := NewHandler(nil, nil, "", nil, func() poller.Status {
		return poller.Status{LastAttempt: now, LastSuccess: now}
	})

	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestReadyNotReady(t *testing.T) {
	h := NewHandler(nil, nil, "", nil, func() poller.Status {
		return poller.Status{LastAttempt: time.Now(), ConsecutiveFailures: 1, LastError: "schedule unavailable"}
	})

	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "schedule unavailable" {
		t.Fatalf("expected last error surfaced, got %q", resp["error"])
	}
}

func TestMethodNotAllowedHandlers(t *testing.T) {
	h := NewHandler(&stubChecker{}, &stubDrainer{}, "s3cret", nil, nil)

	tests := []struct {
		name   string
		method string
		path   string
		fn     func(w http.ResponseWriter, r *http.Request)
	}{
		{"health", http.MethodPost, "/health", h.Health},
		{"ready", http.MethodPost, "/ready", h.Ready},
		{"checkGames", http.MethodDelete, CheckGamesPath, h.CheckGames},
		{"processQueue", http.MethodPut, ProcessQueuePath, h.ProcessQueue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := testutil.ServeRequest(http.HandlerFunc(tt.fn), authed(tt.method, tt.path))
			testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
		})
	}
}

func TestCronRejectsMissingOrWrongToken(t *testing.T) {
	checker := &stubChecker{}
	h := NewHandler(checker, &stubDrainer{}, "s3cret", nil, nil)

	for _, header := range []string{"", "Bearer nope", "s3cret", "Bearer s3cret "} {
		req := httptest.NewRequest(http.MethodGet, CheckGamesPath, nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := testutil.ServeRequest(h, req)
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)

		var resp map[string]string
		testutil.DecodeJSON(t, rr, &resp)
		if resp["error"] != "Unauthorized" {
			t.Fatalf("expected Unauthorized body, got %v", resp)
		}
	}
	if checker.calls != 0 {
		t.Fatalf("expected no pass to run, got %d", checker.calls)
	}
}

func TestCronRejectsEverythingWithoutSecret(t *testing.T) {
	drainer := &stubDrainer{}
	h := NewHandler(&stubChecker{}, drainer, "", nil, nil)

	req := httptest.NewRequest(http.MethodPost, ProcessQueuePath, nil)
	req.Header.Set("Authorization", "Bearer ")
	rr := testutil.ServeRequest(h, req)

	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	if drainer.calls != 0 {
		t.Fatalf("expected drain not attempted")
	}
}

func TestCheckGamesReportsSummary(t *testing.T) {
	checker := &stubChecker{summary: poller.Summary{RunID: "run-1", Date: "2024-07-04", GamesSeen: 15, Processed: 3, Delivered: 2, Queued: 1}}
	h := NewHandler(checker, nil, "s3cret", nil, nil)

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		rr := testutil.ServeRequest(h, authed(method, CheckGamesPath))
		testutil.AssertStatus(t, rr, http.StatusOK)

		var resp map[string]any
		testutil.DecodeJSON(t, rr, &resp)
		if resp["success"] != true {
			t.Fatalf("expected success, got %v", resp)
		}
		if resp["message"] != "Game check complete. Processed 15 games." {
			t.Fatalf("unexpected message %q", resp["message"])
		}
		if resp["runId"] != "run-1" || resp["delivered"] != float64(2) || resp["queued"] != float64(1) {
			t.Fatalf("expected summary fields inline, got %v", resp)
		}
	}
	if checker.calls != 2 {
		t.Fatalf("expected one pass per request, got %d", checker.calls)
	}
}

func TestCheckGamesFailureReturnsBadGateway(t *testing.T) {
	h := NewHandler(&stubChecker{err: errors.New("schedule fetch failed")}, nil, "s3cret", nil, nil)

	rr := testutil.ServeRequest(h, authed(http.MethodGet, CheckGamesPath))
	testutil.AssertStatus(t, rr, http.StatusBadGateway)
}

func TestCheckGamesWithoutChecker(t *testing.T) {
	h := NewHandler(nil, nil, "s3cret", nil, nil)

	rr := testutil.ServeRequest(h, authed(http.MethodGet, CheckGamesPath))
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestProcessQueueReportsDrainMessage(t *testing.T) {
	drainer := &stubDrainer{res: queue.DrainResult{
		Result:  queue.DrainDelivered,
		Message: "Successfully posted queued message for game 745001.",
		GameID:  745001,
		Outcome: social.Delivered,
		RunID:   "run-2",
	}}
	h := NewHandler(nil, drainer, "s3cret", nil, nil)

	rr := testutil.ServeRequest(h, authed(http.MethodPost, ProcessQueuePath))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Drain   queue.DrainResult `json:"drain"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if !resp.Success || resp.Message != drainer.res.Message {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Drain.Result != queue.DrainDelivered || resp.Drain.GameID != 745001 {
		t.Fatalf("expected drain details, got %+v", resp.Drain)
	}
}

func TestProcessQueueFailureReturnsServerError(t *testing.T) {
	h := NewHandler(nil, &stubDrainer{err: errors.New("db down")}, "s3cret", nil, nil)

	rr := testutil.ServeRequest(h, authed(http.MethodGet, ProcessQueuePath))
	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
}

func TestRequestIDPropagatesThroughMiddleware(t *testing.T) {
	h := NewHandler(nil, nil, "", nil, nil)
	wrapped := middleware.LoggingMiddleware(nil, nil, h)

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set("X-Request-ID", "abc123")
	rr := testutil.ServeRequest(wrapped, req)

	testutil.AssertStatus(t, rr, http.StatusNotFound)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["requestId"] != "abc123" {
		t.Fatalf("expected requestId propagated, got %s", resp["requestId"])
	}
	if resp["error"] == "" {
		t.Fatalf("expected error field in response")
	}
}
