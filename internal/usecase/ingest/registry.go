package ingest

import (
	"fmt"
	"sort"
)

// Registry holds the known import scripts and orders them for
// execution. Dependency ordering is data-driven from each script's
// DependsOn metadata; resources no registered script produces (for
// example "repository", synced by the catalog) count as already
// satisfied.
type Registry struct {
	scripts []ImportScript
}

func NewRegistry(scripts ...ImportScript) *Registry {
	r := &Registry{}
	r.scripts = append(r.scripts, scripts...)
	return r
}

func (r *Registry) Register(script ImportScript) {
	r.scripts = append(r.scripts, script)
}

// ForProvider returns the provider's scripts topologically sorted by
// DependsOn, ties broken by resource name for determinism.
func (r *Registry) ForProvider(provider string) ([]ImportScript, error) {
	byResource := map[string]ImportScript{}
	for _, script := range r.scripts {
		if script.DataSourceName() != provider {
			continue
		}
		if _, dup := byResource[script.Resource()]; dup {
			return nil, fmt.Errorf("duplicate script for %s/%s", provider, script.Resource())
		}
		byResource[script.Resource()] = script
	}

	indegree := map[string]int{}
	dependents := map[string][]string{}
	for resource, script := range byResource {
		indegree[resource] = 0
		for _, dep := range script.DependsOn() {
			if _, produced := byResource[dep]; !produced {
				continue
			}
			indegree[resource]++
			dependents[dep] = append(dependents[dep], resource)
		}
	}

	ready := make([]string, 0, len(byResource))
	for resource, degree := range indegree {
		if degree == 0 {
			ready = append(ready, resource)
		}
	}
	sort.Strings(ready)

	ordered := make([]ImportScript, 0, len(byResource))
	for len(ready) > 0 {
		resource := ready[0]
		ready = ready[1:]
		ordered = append(ordered, byResource[resource])

		next := dependents[resource]
		sort.Strings(next)
		for _, dependent := range next {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
		sort.Strings(ready)
	}

	if len(ordered) != len(byResource) {
		return nil, fmt.Errorf("dependency cycle among %s import scripts", provider)
	}
	return ordered, nil
}
