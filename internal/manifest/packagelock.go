package manifest

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/depscout/depscout-backend/model"
)

const nodeModulesPrefix = "node_modules/"

type packageLockFile struct {
	Packages     map[string]packageLockEntry `json:"packages"`
	Dependencies map[string]packageLockV1Dep `json:"dependencies"`
}

type packageLockEntry struct {
	Version string `json:"version"`
}

type packageLockV1Dep struct {
	Version      string                      `json:"version"`
	Dependencies map[string]packageLockV1Dep `json:"dependencies"`
}

// parsePackageLock extracts dependencies from npm package-lock.json v2/v3
// documents, falling back to the v1 nested dependencies tree when the
// packages map yields nothing.
func parsePackageLock(text string) ([]model.Dependency, error) {
	var lock packageLockFile
	if err := json.Unmarshal([]byte(text), &lock); err != nil {
		return nil, &ParseError{ManifestType: model.ManifestPackageLock, Err: err}
	}

	deps := make([]model.Dependency, 0)
	seen := make(map[string]bool)
	for _, path := range sortedKeys(lock.Packages) {
		entry := lock.Packages[path]
		// The empty key is the root project itself.
		if path == "" || entry.Version == "" {
			continue
		}
		name := packageNameFromPath(path)
		if name == "" {
			continue
		}
		key := name + "@" + entry.Version
		if seen[key] {
			continue
		}
		seen[key] = true
		deps = append(deps, model.NewDependency(model.EcosystemNPM, name, entry.Version))
	}

	if len(deps) == 0 && len(lock.Dependencies) > 0 {
		deps = walkV1Dependencies("", lock.Dependencies, deps)
	}
	return deps, nil
}

// packageNameFromPath strips the node_modules install-path prefix,
// collapsing repeated nesting so "node_modules/a/node_modules/@s/b" still
// yields "@s/b".
func packageNameFromPath(path string) string {
	if idx := strings.LastIndex(path, nodeModulesPrefix); idx >= 0 {
		return path[idx+len(nodeModulesPrefix):]
	}
	return path
}

// walkV1Dependencies recursively collects the lockfile-v1 nested tree,
// qualifying nested names with a "/"-joined path so distinct nested copies
// stay distinguishable.
func walkV1Dependencies(prefix string, nodes map[string]packageLockV1Dep, deps []model.Dependency) []model.Dependency {
	for _, name := range sortedKeys(nodes) {
		node := nodes[name]
		qualified := name
		if prefix != "" {
			qualified = prefix + "/" + name
		}
		if node.Version != "" {
			deps = append(deps, model.NewDependency(model.EcosystemNPM, qualified, node.Version))
		}
		if len(node.Dependencies) > 0 {
			deps = walkV1Dependencies(qualified, node.Dependencies, deps)
		}
	}
	return deps
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
