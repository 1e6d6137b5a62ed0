package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"devpulse/internal/bootstrap/logging"
	"devpulse/internal/domain/tracker"
	"devpulse/internal/errs"
	"devpulse/internal/ports"
)

// Deps wires the import scheduler to its collaborators. Notifier is
// optional; a nil notifier disables run events.
type Deps struct {
	Catalog      ports.CatalogRepository
	Runs         ports.RunRepository
	Store        ports.TrackerRepository
	UoW          ports.UnitOfWork
	Notifier     ports.RunNotifier
	GitHubSource GitHubSourceFactory
	JiraSource   JiraSourceFactory

	// WindowDays overrides every script's default look-back when > 0.
	WindowDays int
}

// Service runs import scripts against configured data sources in
// dependency order.
type Service struct {
	deps     Deps
	registry *Registry
}

func NewService(deps Deps) *Service {
	shared := scriptDeps{
		catalog:      deps.Catalog,
		runs:         deps.Runs,
		store:        deps.Store,
		uow:          deps.UoW,
		githubSource: deps.GitHubSource,
		jiraSource:   deps.JiraSource,
	}
	return &Service{
		deps: deps,
		registry: NewRegistry(
			&githubIssuesScript{deps: shared},
			&githubCommitsScript{deps: shared},
			&githubPullsScript{deps: shared},
			&jiraIssuesScript{deps: shared},
		),
	}
}

// RunImportsInput narrows a scheduler pass. Zero values mean "all":
// every enabled data source, every script, the script's own window.
type RunImportsInput struct {
	DataSourceID string
	Resource     string
	StartDate    *time.Time
	EndDate      *time.Time
}

// ScriptRunReport is the per-script outcome of one scheduler pass.
type ScriptRunReport struct {
	DataSourceID    string
	Provider        tracker.Provider
	Resource        string
	RunID           string
	RecordsImported int
	Err             error
}

type RunImportsResult struct {
	Reports []ScriptRunReport
}

// Failed reports whether any script in the pass errored.
func (r RunImportsResult) Failed() bool {
	for _, report := range r.Reports {
		if report.Err != nil {
			return true
		}
	}
	return false
}

// RunImports executes every matching script once. Script failures are
// isolated: one data source or script failing never stops the pass.
func (s *Service) RunImports(ctx context.Context, input RunImportsInput) (RunImportsResult, error) {
	if ctx == nil {
		return RunImportsResult{}, errors.New("context is required")
	}

	sources, err := s.selectSources(ctx, input)
	if err != nil {
		return RunImportsResult{}, err
	}

	var result RunImportsResult
	for _, source := range sources {
		scripts, err := s.registry.ForProvider(string(source.Provider))
		if err != nil {
			return RunImportsResult{}, errs.Wrapf(err, "order scripts for %s", source.Provider)
		}

		for _, script := range scripts {
			if input.Resource != "" && script.Resource() != input.Resource {
				continue
			}
			result.Reports = append(result.Reports, s.runScript(ctx, source, script, input))
		}
	}
	return result, nil
}

func (s *Service) selectSources(ctx context.Context, input RunImportsInput) ([]ports.DataSource, error) {
	if input.DataSourceID != "" {
		source, err := s.deps.Catalog.GetDataSource(ctx, input.DataSourceID)
		if err != nil {
			return nil, errs.Wrap(err, "get data source")
		}
		if !source.Enabled {
			return nil, fmt.Errorf("data source %s is disabled", source.Name)
		}
		return []ports.DataSource{source}, nil
	}

	sources, err := s.deps.Catalog.ListDataSources(ctx, true)
	if err != nil {
		return nil, errs.Wrap(err, "list data sources")
	}
	return sources, nil
}

func (s *Service) runScript(ctx context.Context, source ports.DataSource, script ImportScript, input RunImportsInput) ScriptRunReport {
	report := ScriptRunReport{
		DataSourceID: source.ID,
		Provider:     source.Provider,
		Resource:     script.Resource(),
	}

	logCtx := logging.WithAttrs(ctx,
		slog.String("data_source", source.Name),
		slog.String("resource", script.Resource()),
	)

	windowDays := script.ImportWindowDays()
	if s.deps.WindowDays > 0 {
		windowDays = s.deps.WindowDays
	}
	window := resolveWindow(input.StartDate, input.EndDate, windowDays, time.Now())

	run, err := s.deps.Runs.CreateRun(ctx, source.ID, script.Resource())
	if err != nil {
		report.Err = errs.Wrap(err, "create run")
		return report
	}
	report.RunID = run.ID

	logging.Info(logCtx, "import run started",
		slog.String("run_id", run.ID),
		slog.Time("window_start", window.start),
		slog.Time("window_end", window.end),
	)

	err = script.Run(logCtx, RunContext{
		DataSourceID: source.ID,
		RunID:        run.ID,
		StartDate:    window.start,
		EndDate:      window.end,
		Env:          source.Env,
	})
	if err != nil {
		// Failed runs keep a null finished_at; the error goes to the
		// audit log so operators can see it next to the run.
		logging.Error(logCtx, "import run failed", slog.Any("err", errs.Loggable(err)))
		s.appendRunError(logCtx, run.ID, err)
		report.Err = err
		return report
	}

	finished, err := s.deps.Runs.GetRun(ctx, run.ID)
	if err != nil {
		report.Err = errs.Wrap(err, "reload finished run")
		return report
	}
	report.RecordsImported = finished.RecordsImported

	s.notify(logCtx, source, finished)
	return report
}

func (s *Service) appendRunError(ctx context.Context, runID string, cause error) {
	entry := ports.ImportLogEntry{
		RunID:   runID,
		Level:   tracker.LogLevelError,
		Message: "import run failed",
		Details: cause.Error(),
	}
	if err := s.deps.Runs.AppendLog(ctx, entry); err != nil {
		logging.Error(ctx, "append import log failed", slog.Any("err", errs.Loggable(err)))
	}
}

func (s *Service) notify(ctx context.Context, source ports.DataSource, run ports.DataSourceRun) {
	if s.deps.Notifier == nil || run.FinishedAt == nil {
		return
	}

	event := ports.RunEvent{
		RunID:           run.ID,
		DataSourceID:    source.ID,
		Provider:        string(source.Provider),
		Resource:        run.Resource,
		RecordsImported: run.RecordsImported,
		StartedAt:       run.StartedAt,
		FinishedAt:      *run.FinishedAt,
	}
	if err := s.deps.Notifier.PublishRunCompleted(ctx, event); err != nil {
		logging.Warn(ctx, "publish run event failed", slog.Any("err", errs.Loggable(err)))
	}
}
