package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"devpulse/internal/bootstrap/logging"
	"devpulse/internal/domain/tracker"
	"devpulse/internal/errs"
	"devpulse/internal/infrastructure/provider/jira"
	"devpulse/internal/ports"
)

// jiraIssuesScript imports Jira issues per project. Projects fail
// independently, mirroring the repository isolation of the GitHub
// scripts.
type jiraIssuesScript struct {
	deps scriptDeps
}

func (s *jiraIssuesScript) DataSourceName() string { return string(tracker.ProviderJira) }
func (s *jiraIssuesScript) Resource() string       { return ResourceIssue }
func (s *jiraIssuesScript) ImportWindowDays() int  { return defaultWindowDays }

func (s *jiraIssuesScript) DependsOn() []string {
	return []string{ResourceProject, ResourceContributor}
}

func (s *jiraIssuesScript) Run(ctx context.Context, rc RunContext) error {
	logCtx := logging.WithAttrs(ctx,
		slog.String("script", "jira.issue"),
		slog.String("run_id", rc.RunID),
	)

	projects, err := s.deps.catalog.ListProjects(ctx, rc.DataSourceID, true)
	if err != nil {
		return errs.Wrap(err, "list projects")
	}
	if len(projects) == 0 {
		logging.Info(logCtx, "no enabled projects for data source")
		return s.deps.runs.FinishRun(ctx, rc.RunID, 0)
	}

	source, err := s.deps.jiraSource(ctx, rc.Env)
	if err != nil {
		return errs.Wrap(err, "build jira client")
	}

	window := importWindow{start: rc.StartDate, end: rc.EndDate}
	resolver := contributorResolver{store: s.deps.store}

	total := 0
	for _, project := range projects {
		imported, projectErr := s.importProject(logCtx, rc, source, resolver, project, window)
		total += imported
		if projectErr != nil {
			logging.Error(logCtx, "project import failed",
				slog.String("project", project.Key),
				slog.Any("err", errs.Loggable(projectErr)),
			)
			s.deps.logContainerError(logCtx, rc.RunID, fmt.Sprintf("import issues for %s failed", project.Key), projectErr)
		}
	}

	logging.Info(logCtx, "issue import finished", slog.Int("records_imported", total))
	return s.deps.runs.FinishRun(ctx, rc.RunID, total)
}

func (s *jiraIssuesScript) importProject(
	ctx context.Context,
	rc RunContext,
	source JiraSource,
	resolver contributorResolver,
	project ports.Project,
	window importWindow,
) (int, error) {
	count := 0
	err := source.ForEachIssuePage(ctx, project.Key, window.start, func(page []jira.Issue) error {
		for _, raw := range page {
			updated, parseErr := jira.ParseTime(raw.Fields.Updated)
			if parseErr != nil {
				s.deps.logRecordError(ctx, rc.RunID, raw.Key, errs.Wrap(parseErr, "parse updated timestamp"))
				continue
			}
			if !window.contains(updated) {
				continue
			}

			if recordErr := s.importOne(ctx, resolver, project.ID, raw); recordErr != nil {
				s.deps.logRecordError(ctx, rc.RunID, raw.Key, recordErr)
				continue
			}
			count++
		}
		return nil
	})
	return count, err
}

func (s *jiraIssuesScript) importOne(ctx context.Context, resolver contributorResolver, projectID uint64, raw jira.Issue) error {
	return s.deps.uow.WithTx(ctx, func(txCtx context.Context) error {
		reporterID, err := resolver.resolveOptional(txCtx, tracker.ProviderJira, jiraUser(raw.Fields.Reporter))
		if err != nil {
			return err
		}
		assigneeID, err := resolver.resolveOptional(txCtx, tracker.ProviderJira, jiraUser(raw.Fields.Assignee))
		if err != nil {
			return err
		}

		record, err := mapJiraIssue(raw, projectID, reporterID, assigneeID)
		if err != nil {
			return err
		}
		return s.deps.store.UpsertIssue(txCtx, record)
	})
}
