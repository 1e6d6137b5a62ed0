package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"devpulse/internal/bootstrap/logging"
	"devpulse/internal/domain/tracker"
	"devpulse/internal/errs"
	"devpulse/internal/ports"
)

const defaultWindowDays = 30

// scriptDeps is the shared dependency set handed to every import
// script by the scheduler.
type scriptDeps struct {
	catalog      ports.CatalogRepository
	runs         ports.RunRepository
	store        ports.TrackerRepository
	uow          ports.UnitOfWork
	githubSource GitHubSourceFactory
	jiraSource   JiraSourceFactory
}

// logContainerError writes the single ERROR audit row a failed
// container (repository or project) leaves behind. Persisting the log
// must not fail the run, so write failures are only logged.
func (d scriptDeps) logContainerError(ctx context.Context, runID, message string, cause error) {
	entry := ports.ImportLogEntry{
		RunID:   runID,
		Level:   tracker.LogLevelError,
		Message: message,
		Details: strings.Join(errs.ErrorChainStrings(cause), ": "),
	}
	if err := d.runs.AppendLog(ctx, entry); err != nil {
		logging.Error(ctx, "append import log failed", slog.Any("err", errs.Loggable(err)))
	}
}

// logRecordError records a single skipped record. One malformed record
// never sinks its container.
func (d scriptDeps) logRecordError(ctx context.Context, runID, recordKey string, cause error) {
	logging.Warn(ctx, "record skipped",
		slog.String("record", recordKey),
		slog.Any("err", errs.Loggable(cause)),
	)
	d.logContainerError(ctx, runID, fmt.Sprintf("record %s skipped", recordKey), cause)
}

// splitFullName splits an "owner/name" repository identifier.
func splitFullName(fullName string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("malformed repository full name %q", fullName)
	}
	return owner, name, nil
}
