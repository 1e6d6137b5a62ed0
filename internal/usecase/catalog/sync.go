package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"devpulse/internal/bootstrap/logging"
	"devpulse/internal/domain/tracker"
	"devpulse/internal/errs"
	"devpulse/internal/ports"
)

// Service maintains the tenant catalog: data sources and the container
// rows (projects, repositories) the import scripts scope their work to.
type Service struct {
	catalog ports.CatalogRepository
}

func NewService(catalog ports.CatalogRepository) *Service {
	return &Service{catalog: catalog}
}

// sourcesFile mirrors the sources.toml layout.
type sourcesFile struct {
	DataSources []sourceEntry `toml:"data_source"`
}

type sourceEntry struct {
	Name         string            `toml:"name"`
	Provider     string            `toml:"provider"`
	Enabled      bool              `toml:"enabled"`
	Env          map[string]string `toml:"env"`
	Projects     []projectEntry    `toml:"project"`
	Repositories []repositoryEntry `toml:"repository"`
}

type projectEntry struct {
	Key     string `toml:"key"`
	Name    string `toml:"name"`
	Enabled bool   `toml:"enabled"`
}

type repositoryEntry struct {
	FullName string `toml:"full_name"`
	Language string `toml:"language"`
	Project  string `toml:"project"`
	Enabled  bool   `toml:"enabled"`
}

type SyncInput struct {
	Path string
}

type SyncResult struct {
	DataSources  int
	Projects     int
	Repositories int
}

// SyncFromFile upserts every data source, project and repository the
// file declares. Rows absent from the file are left untouched; the file
// is a declaration of desired sources, not an exclusive inventory.
func (s *Service) SyncFromFile(ctx context.Context, input SyncInput) (SyncResult, error) {
	if ctx == nil {
		return SyncResult{}, errors.New("context is required")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "usecase.catalog"))

	raw, err := os.ReadFile(input.Path)
	if err != nil {
		return SyncResult{}, errs.Wrap(err, "read sources file")
	}

	var file sourcesFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return SyncResult{}, errs.Wrap(err, "parse sources file")
	}

	var result SyncResult
	for _, entry := range file.DataSources {
		provider, err := parseProvider(entry.Provider)
		if err != nil {
			return result, errs.Wrapf(err, "data source %s", entry.Name)
		}
		if entry.Name == "" {
			return result, fmt.Errorf("data source with provider %s has no name", provider)
		}

		source, err := s.catalog.UpsertDataSource(ctx, ports.DataSource{
			Provider: provider,
			Name:     entry.Name,
			Env:      entry.Env,
			Enabled:  entry.Enabled,
		})
		if err != nil {
			return result, errs.Wrapf(err, "upsert data source %s", entry.Name)
		}
		result.DataSources++

		projectIDs := make(map[string]uint64, len(entry.Projects))
		for _, projectSpec := range entry.Projects {
			project, err := s.catalog.UpsertProject(ctx, ports.Project{
				DataSourceID: source.ID,
				Provider:     provider,
				Key:          projectSpec.Key,
				Name:         projectSpec.Name,
				Enabled:      projectSpec.Enabled,
			})
			if err != nil {
				return result, errs.Wrapf(err, "upsert project %s", projectSpec.Key)
			}
			projectIDs[project.Key] = project.ID
			result.Projects++
		}

		for _, repoSpec := range entry.Repositories {
			repo := ports.Repository{
				DataSourceID: source.ID,
				Provider:     provider,
				FullName:     repoSpec.FullName,
				Language:     repoSpec.Language,
				Enabled:      repoSpec.Enabled,
			}
			if repoSpec.Project != "" {
				projectID, ok := projectIDs[repoSpec.Project]
				if !ok {
					return result, fmt.Errorf("repository %s references undeclared project %s", repoSpec.FullName, repoSpec.Project)
				}
				repo.ProjectID = &projectID
			}
			if _, err := s.catalog.UpsertRepository(ctx, repo); err != nil {
				return result, errs.Wrapf(err, "upsert repository %s", repoSpec.FullName)
			}
			result.Repositories++
		}

		logging.Info(logCtx, "data source synced",
			slog.String("name", entry.Name),
			slog.String("provider", string(provider)),
			slog.Int("projects", len(entry.Projects)),
			slog.Int("repositories", len(entry.Repositories)),
		)
	}
	return result, nil
}

func parseProvider(raw string) (tracker.Provider, error) {
	switch tracker.Provider(strings.ToUpper(strings.TrimSpace(raw))) {
	case tracker.ProviderGitHub:
		return tracker.ProviderGitHub, nil
	case tracker.ProviderJira:
		return tracker.ProviderJira, nil
	case tracker.ProviderGitLab:
		return tracker.ProviderGitLab, nil
	default:
		return "", fmt.Errorf("unknown provider %q", raw)
	}
}
