package ingest

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	gormsqlite "github.com/glebarez/sqlite"

	"devpulse/internal/domain/tracker"
	"devpulse/internal/infrastructure/persistence/sqlite/model"
	sqliterepo "devpulse/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "devpulse/internal/infrastructure/persistence/sqlite/uow"
	"devpulse/internal/infrastructure/provider/jira"
	"devpulse/internal/ports"
)

type fakeJiraSource struct {
	issuesByProject map[string][]jira.Issue
	failProjects    map[string]error
}

func (f *fakeJiraSource) ForEachIssuePage(_ context.Context, projectKey string, _ time.Time, fn func(page []jira.Issue) error) error {
	if err := f.failProjects[projectKey]; err != nil {
		return err
	}
	if page := f.issuesByProject[projectKey]; len(page) > 0 {
		return fn(page)
	}
	return nil
}

type jiraHarness struct {
	db      *gorm.DB
	catalog ports.CatalogRepository
	runs    ports.RunRepository
	source  ports.DataSource
	deps    scriptDeps
}

func setupJiraHarness(t *testing.T, source JiraSource) *jiraHarness {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "devpulse.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	if err := db.AutoMigrate(
		&model.DataSource{},
		&model.DataSourceRun{},
		&model.ImportLog{},
		&model.Project{},
		&model.Contributor{},
		&model.Issue{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	h := &jiraHarness{
		db:      db,
		catalog: sqliterepo.NewCatalogRepository(db),
		runs:    sqliterepo.NewRunRepository(db),
	}
	h.deps = scriptDeps{
		catalog: h.catalog,
		runs:    h.runs,
		store:   sqliterepo.NewTrackerRepository(db),
		uow:     sqliteuow.NewUnitOfWork(db),
		jiraSource: func(context.Context, map[string]string) (JiraSource, error) {
			return source, nil
		},
	}

	h.source, err = h.catalog.UpsertDataSource(context.Background(), ports.DataSource{
		Provider: tracker.ProviderJira,
		Name:     "test-jira",
		Enabled:  true,
	})
	if err != nil {
		t.Fatalf("upsert data source: %v", err)
	}
	return h
}

func (h *jiraHarness) addProject(t *testing.T, key string) ports.Project {
	t.Helper()
	project, err := h.catalog.UpsertProject(context.Background(), ports.Project{
		DataSourceID: h.source.ID,
		Provider:     tracker.ProviderJira,
		Key:          key,
		Name:         key,
		Enabled:      true,
	})
	if err != nil {
		t.Fatalf("upsert project: %v", err)
	}
	return project
}

func (h *jiraHarness) newRunContext(t *testing.T, start, end time.Time) RunContext {
	t.Helper()
	run, err := h.runs.CreateRun(context.Background(), h.source.ID, ResourceIssue)
	if err != nil {
		t.Fatalf("create run: %v", err)
	}
	return RunContext{
		DataSourceID: h.source.ID,
		RunID:        run.ID,
		StartDate:    start,
		EndDate:      end,
	}
}

func jiraTimestamp(t time.Time) string {
	return t.Format("2006-01-02T15:04:05.000-0700")
}

func jiraIssue(key, summary string, updated time.Time, reporter *jira.User) jira.Issue {
	return jira.Issue{
		ID:  "10000",
		Key: key,
		Fields: jira.IssueFields{
			Summary:     summary,
			Description: json.RawMessage(`"needs triage"`),
			IssueType:   &jira.NamedField{Name: "Bug"},
			Status: &jira.Status{
				Name:           "In Progress",
				StatusCategory: &jira.StatusCategory{Key: "indeterminate"},
			},
			Priority: &jira.NamedField{Name: "High"},
			Reporter: reporter,
			Created:  jiraTimestamp(updated.AddDate(0, 0, -2)),
			Updated:  jiraTimestamp(updated),
		},
	}
}

func TestJiraIssuesImport(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	reporter := &jira.User{
		AccountID:   "acc-42",
		DisplayName: "Dana Dev",
	}

	fake := &fakeJiraSource{
		issuesByProject: map[string][]jira.Issue{
			"WID": {
				jiraIssue("WID-1", "Exporter crashes on empty board", now.AddDate(0, 0, -1), reporter),
				jiraIssue("WID-2", "Stale issue outside window", now.AddDate(0, -6, 0), reporter),
			},
		},
	}

	h := setupJiraHarness(t, fake)
	h.addProject(t, "WID")
	script := &jiraIssuesScript{deps: h.deps}

	rc := h.newRunContext(t, now.AddDate(0, 0, -30), now)
	if err := script.Run(context.Background(), rc); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	run, err := h.runs.GetRun(context.Background(), rc.RunID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if run.RecordsImported != 1 {
		t.Fatalf("RecordsImported = %d, want 1 (window excludes the stale issue)", run.RecordsImported)
	}

	var stored model.Issue
	if err := h.db.First(&stored).Error; err != nil {
		t.Fatalf("load issue: %v", err)
	}
	if stored.Key != "WID-1" {
		t.Fatalf("key = %q", stored.Key)
	}
	if stored.Type != string(tracker.IssueTypeBug) {
		t.Fatalf("type = %q", stored.Type)
	}
	if stored.Status != string(tracker.IssueStatusInProgress) {
		t.Fatalf("status = %q", stored.Status)
	}
	if stored.ReporterID == nil {
		t.Fatal("reporter should be resolved")
	}

	var contributor model.Contributor
	if err := h.db.First(&contributor).Error; err != nil {
		t.Fatalf("load contributor: %v", err)
	}
	if contributor.Email != "acc-42@jira.local" {
		t.Fatalf("contributor email = %q", contributor.Email)
	}
}

func TestJiraIssuesBadTimestampSkipsRecord(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	broken := jiraIssue("WID-9", "bad clock", now, nil)
	broken.Fields.Updated = "not-a-timestamp"

	fake := &fakeJiraSource{
		issuesByProject: map[string][]jira.Issue{
			"WID": {
				broken,
				jiraIssue("WID-10", "fine", now.AddDate(0, 0, -1), nil),
			},
		},
	}

	h := setupJiraHarness(t, fake)
	h.addProject(t, "WID")
	script := &jiraIssuesScript{deps: h.deps}

	rc := h.newRunContext(t, now.AddDate(0, 0, -30), now)
	if err := script.Run(context.Background(), rc); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	run, _ := h.runs.GetRun(context.Background(), rc.RunID)
	if run.RecordsImported != 1 {
		t.Fatalf("RecordsImported = %d, want the good record only", run.RecordsImported)
	}

	logs, err := h.runs.ListLogs(context.Background(), rc.RunID)
	if err != nil {
		t.Fatalf("ListLogs() error = %v", err)
	}
	errorLogs := 0
	for _, entry := range logs {
		if entry.Level == tracker.LogLevelError {
			errorLogs++
		}
	}
	if errorLogs != 1 {
		t.Fatalf("error logs = %d, want 1", errorLogs)
	}
}

func TestJiraIssuesProjectFailureIsolation(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	fake := &fakeJiraSource{
		issuesByProject: map[string][]jira.Issue{
			"OK": {jiraIssue("OK-1", "works", now.AddDate(0, 0, -1), nil)},
		},
		failProjects: map[string]error{
			"BAD": context.DeadlineExceeded,
		},
	}

	h := setupJiraHarness(t, fake)
	h.addProject(t, "BAD")
	h.addProject(t, "OK")
	script := &jiraIssuesScript{deps: h.deps}

	rc := h.newRunContext(t, now.AddDate(0, 0, -30), now)
	if err := script.Run(context.Background(), rc); err != nil {
		t.Fatalf("Run() error = %v, failures should be contained per project", err)
	}

	run, _ := h.runs.GetRun(context.Background(), rc.RunID)
	if run.RecordsImported != 1 {
		t.Fatalf("RecordsImported = %d", run.RecordsImported)
	}
	if run.FinishedAt == nil {
		t.Fatal("run should be finished")
	}
}
