package httpapi

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"devpulse/internal/ports"
	"devpulse/internal/usecase/dashboard"
)

// stubReader serves fixed facts; enough to exercise the HTTP layer.
type stubReader struct {
	contributor    ports.Contributor
	contributorErr error
}

func (s *stubReader) CommitsInRange(context.Context, *uint64, time.Time, time.Time) ([]ports.CommitFact, error) {
	return nil, nil
}

func (s *stubReader) PullRequestsInRange(context.Context, *uint64, time.Time, time.Time) ([]ports.PullRequestFact, error) {
	return nil, nil
}

func (s *stubReader) ReviewsInRange(context.Context, *uint64, time.Time, time.Time) ([]ports.ReviewFact, error) {
	return nil, nil
}

func (s *stubReader) IssuesInRange(context.Context, *uint64, time.Time, time.Time) ([]ports.IssueFact, error) {
	return nil, nil
}

func (s *stubReader) PipelineRunsInRange(context.Context, time.Time, time.Time) ([]ports.PipelineFact, error) {
	return nil, nil
}

func (s *stubReader) ContributionDates(context.Context, uint64) ([]time.Time, error) {
	return nil, nil
}

func (s *stubReader) LifetimeStats(context.Context, uint64) (ports.LifetimeStats, error) {
	return ports.LifetimeStats{}, nil
}

func (s *stubReader) LatestScans(context.Context, time.Time) ([]ports.ScanFact, error) {
	return nil, nil
}

func (s *stubReader) OpenVulnerabilities(context.Context, time.Time) ([]ports.VulnerabilityFact, error) {
	return nil, nil
}

func (s *stubReader) GetContributor(context.Context, uint64) (ports.Contributor, error) {
	if s.contributorErr != nil {
		return ports.Contributor{}, s.contributorErr
	}
	return s.contributor, nil
}

var _ ports.MetricsReader = (*stubReader)(nil)

func newTestServer(reader ports.MetricsReader) *Server {
	return NewServer(":0", dashboard.NewService(reader, nil))
}

func TestContributorDashboardEndpoint(t *testing.T) {
	server := newTestServer(&stubReader{
		contributor: ports.Contributor{ID: 7, Name: "Dana Dev"},
	})

	req := httptest.NewRequest("GET", "/api/contributors/7/dashboard?from=2026-03-01&to=2026-03-07", nil)
	rec := httptest.NewRecorder()
	server.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}

	var body dashboard.ContributorDashboard
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.ContributorID != 7 || body.Name != "Dana Dev" {
		t.Fatalf("body = %+v", body)
	}
	if body.Achievements == nil {
		t.Fatal("achievements must serialize as an array, not null")
	}
}

func TestContributorDashboardBadID(t *testing.T) {
	server := newTestServer(&stubReader{})

	req := httptest.NewRequest("GET", "/api/contributors/abc/dashboard", nil)
	rec := httptest.NewRecorder()
	server.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != 400 {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestContributorDashboardNotFound(t *testing.T) {
	server := newTestServer(&stubReader{contributorErr: ports.ErrContributorNotFound})

	req := httptest.NewRequest("GET", "/api/contributors/99/dashboard", nil)
	rec := httptest.NewRecorder()
	server.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != 404 {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestOrgDashboardEndpoint(t *testing.T) {
	server := newTestServer(&stubReader{})

	req := httptest.NewRequest("GET", "/api/org/dashboard", nil)
	rec := httptest.NewRecorder()
	server.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var body dashboard.OrgDashboard
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Delivery.ResolvedByType == nil {
		t.Fatal("resolved_by_type must serialize as an array, not null")
	}
}

func TestOrgDashboardBadRange(t *testing.T) {
	server := newTestServer(&stubReader{})

	for _, target := range []string{
		"/api/org/dashboard?from=03-01-2026",
		"/api/org/dashboard?from=2026-03-07&to=2026-03-01",
	} {
		req := httptest.NewRequest("GET", target, nil)
		rec := httptest.NewRecorder()
		server.httpServer.Handler.ServeHTTP(rec, req)
		if rec.Code != 400 {
			t.Fatalf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}
