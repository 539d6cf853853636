package manifest

import (
	"strings"

	"github.com/depscout/depscout-backend/model"
)

// parseYarnLock runs a line-oriented state machine over a yarn.lock
// document. An unindented line declares one or more comma-separated
// "name@range" keys; the indented version line that follows supplies the
// resolved version for all pending names. Pending declarations that never
// see a version line are discarded, and a version line at end of input
// still flushes its block.
func parseYarnLock(text string) ([]model.Dependency, error) {
	deps := make([]model.Dependency, 0)
	seen := make(map[string]bool)
	var pending []string

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		indented := strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
		if !indented {
			// New declaration block; anything pending without a version is dropped.
			pending = pending[:0]
			for _, decl := range strings.Split(strings.TrimSuffix(trimmed, ":"), ",") {
				decl = strings.Trim(strings.TrimSpace(decl), `"`)
				if name := yarnDeclaredName(decl); name != "" {
					pending = append(pending, name)
				}
			}
			continue
		}

		// "version" must be the whole field key; a bare prefix check would
		// also match dependency entries for packages named "version...".
		if len(pending) == 0 || (!strings.HasPrefix(trimmed, "version ") && !strings.HasPrefix(trimmed, "version:")) {
			continue
		}
		version := strings.TrimPrefix(trimmed, "version")
		version = strings.Trim(strings.TrimPrefix(strings.TrimSpace(version), ":"), ` "`)
		if version != "" {
			// One resolved version may satisfy several declared ranges.
			for _, name := range pending {
				key := name + "@" + version
				if seen[key] {
					continue
				}
				seen[key] = true
				deps = append(deps, model.NewDependency(model.EcosystemNPM, name, version))
			}
		}
		pending = pending[:0]
	}
	return deps, nil
}

// yarnDeclaredName extracts the package name from a "name@range"
// declaration, keeping scoped "@scope/name" prefixes intact.
func yarnDeclaredName(decl string) string {
	if decl == "" {
		return ""
	}
	if idx := strings.LastIndex(decl, "@"); idx > 0 {
		return decl[:idx]
	}
	if strings.HasPrefix(decl, "@") {
		return ""
	}
	return decl
}
