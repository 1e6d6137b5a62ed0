package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"devpulse/internal/bootstrap/logging"
	"devpulse/internal/errs"
	"devpulse/internal/ports"
	"devpulse/internal/usecase/dashboard"
)

const defaultRangeDays = 30

func (s *Server) handleContributorDashboard(w http.ResponseWriter, r *http.Request) {
	contributorID, err := strconv.ParseUint(chi.URLParam(r, "contributorID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "contributor id must be a positive integer")
		return
	}

	from, to, err := parseRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	response, err := s.dashboards.ContributorDashboard(r.Context(), dashboard.ContributorDashboardInput{
		ContributorID: contributorID,
		From:          from,
		To:            to,
	})
	if err != nil {
		if errors.Is(err, ports.ErrContributorNotFound) {
			writeError(w, http.StatusNotFound, "contributor not found")
			return
		}
		logging.Error(r.Context(), "contributor dashboard failed", slog.Any("err", errs.Loggable(err)))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleOrgDashboard(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	response, err := s.dashboards.OrgDashboard(r.Context(), dashboard.OrgDashboardInput{From: from, To: to})
	if err != nil {
		logging.Error(r.Context(), "org dashboard failed", slog.Any("err", errs.Loggable(err)))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// parseRange reads optional from/to query params (YYYY-MM-DD). Absent
// params default to the trailing 30 days ending now.
func parseRange(r *http.Request) (time.Time, time.Time, error) {
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -defaultRangeDays)

	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("to must be formatted YYYY-MM-DD")
		}
		// Include the whole end day.
		to = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
		from = to.AddDate(0, 0, -defaultRangeDays)
	}
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("from must be formatted YYYY-MM-DD")
		}
		from = parsed
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("to must not precede from")
	}
	return from, to, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
