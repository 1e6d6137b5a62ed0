package dashboard

import (
	"sort"

	"devpulse/internal/ports"
)

const repositoryDistributionLimit = 10

// commitDistributions groups the window's commits by repository and by
// language. Repositories are truncated to the ten busiest; languages
// are returned in full. A missing language becomes "Unknown".
func commitDistributions(commits []ports.CommitFact) Distributions {
	repos := make(map[string]int)
	languages := make(map[string]int)
	for _, commit := range commits {
		repos[commit.RepositoryName]++
		language := commit.Language
		if language == "" {
			language = "Unknown"
		}
		languages[language]++
	}

	dist := Distributions{
		Repositories: sortedEntries(repos),
		Languages:    sortedEntries(languages),
	}
	if len(dist.Repositories) > repositoryDistributionLimit {
		dist.Repositories = dist.Repositories[:repositoryDistributionLimit]
	}
	return dist
}

// sortedEntries flattens a count map, descending by count with name as
// the tie-breaker so the order is deterministic.
func sortedEntries(counts map[string]int) []DistributionEntry {
	entries := make([]DistributionEntry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, DistributionEntry{Name: name, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}
