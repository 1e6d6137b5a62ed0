package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/gorm"

	gormsqlite "github.com/glebarez/sqlite"

	"devpulse/internal/domain/tracker"
	"devpulse/internal/infrastructure/persistence/sqlite/model"
	sqliterepo "devpulse/internal/infrastructure/persistence/sqlite/repository"
	"devpulse/internal/ports"
)

func setupService(t *testing.T) (*Service, ports.CatalogRepository) {
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
	if err := db.AutoMigrate(&model.DataSource{}, &model.Project{}, &model.Repository{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	repo := sqliterepo.NewCatalogRepository(db)
	return NewService(repo), repo
}

func writeSources(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write sources file: %v", err)
	}
	return path
}

func TestSyncFromFile(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	path := writeSources(t, `
[[data_source]]
name = "acme-github"
provider = "github"
enabled = true

[data_source.env]
GITHUB_TOKEN = "env:GITHUB_TOKEN"

[[data_source.project]]
key = "acme/widgets"
name = "Widgets"
enabled = true

[[data_source.repository]]
full_name = "acme/widgets"
language = "Go"
project = "acme/widgets"
enabled = true

[[data_source]]
name = "acme-jira"
provider = "JIRA"
enabled = true

[[data_source.project]]
key = "WID"
name = "Widgets Delivery"
enabled = true
`)

	result, err := svc.SyncFromFile(ctx, SyncInput{Path: path})
	if err != nil {
		t.Fatalf("SyncFromFile() error = %v", err)
	}
	if result.DataSources != 2 || result.Projects != 2 || result.Repositories != 1 {
		t.Fatalf("result = %+v", result)
	}

	sources, err := repo.ListDataSources(ctx, true)
	if err != nil {
		t.Fatalf("ListDataSources() error = %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("sources = %+v", sources)
	}

	var github ports.DataSource
	for _, source := range sources {
		if source.Provider == tracker.ProviderGitHub {
			github = source
		}
	}
	if github.Env["GITHUB_TOKEN"] != "env:GITHUB_TOKEN" {
		t.Fatalf("github env = %+v", github.Env)
	}

	repos, err := repo.ListRepositories(ctx, github.ID, true)
	if err != nil {
		t.Fatalf("ListRepositories() error = %v", err)
	}
	if len(repos) != 1 || repos[0].ProjectID == nil {
		t.Fatalf("repositories = %+v, project link expected", repos)
	}
}

func TestSyncFromFileIsIdempotent(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	path := writeSources(t, `
[[data_source]]
name = "acme-github"
provider = "github"
enabled = true

[[data_source.repository]]
full_name = "acme/widgets"
enabled = true
`)

	for i := 0; i < 2; i++ {
		if _, err := svc.SyncFromFile(ctx, SyncInput{Path: path}); err != nil {
			t.Fatalf("SyncFromFile() run %d error = %v", i+1, err)
		}
	}

	sources, err := repo.ListDataSources(ctx, false)
	if err != nil {
		t.Fatalf("ListDataSources() error = %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("sources = %d, re-sync must not duplicate", len(sources))
	}
}

func TestSyncFromFileUnknownProvider(t *testing.T) {
	svc, _ := setupService(t)

	path := writeSources(t, `
[[data_source]]
name = "acme-svn"
provider = "svn"
enabled = true
`)

	_, err := svc.SyncFromFile(context.Background(), SyncInput{Path: path})
	if err == nil || !strings.Contains(err.Error(), "unknown provider") {
		t.Fatalf("error = %v, want unknown provider", err)
	}
}

func TestSyncFromFileUndeclaredProjectLink(t *testing.T) {
	svc, _ := setupService(t)

	path := writeSources(t, `
[[data_source]]
name = "acme-github"
provider = "github"
enabled = true

[[data_source.repository]]
full_name = "acme/widgets"
project = "acme/missing"
enabled = true
`)

	_, err := svc.SyncFromFile(context.Background(), SyncInput{Path: path})
	if err == nil || !strings.Contains(err.Error(), "undeclared project") {
		t.Fatalf("error = %v, want undeclared project", err)
	}
}

func TestSyncFromFileMissingFile(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.SyncFromFile(context.Background(), SyncInput{Path: filepath.Join(t.TempDir(), "nope.toml")})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
