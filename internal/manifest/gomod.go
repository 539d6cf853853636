package manifest

import (
	"strings"

	"github.com/depscout/depscout-backend/model"
)

// parseGoMod extracts dependencies from a go.mod file. Both the
// single-line "require name version" form and the parenthesized block form
// are recognized; trailing line comments (e.g. "// indirect") are stripped
// before the version is read, and the leading "v" is dropped from versions.
func parseGoMod(text string) ([]model.Dependency, error) {
	deps := make([]model.Dependency, 0)
	seen := make(map[string]bool)
	inBlock := false

	emit := func(name, version string) {
		version = strings.TrimPrefix(version, "v")
		key := name + "@" + version
		if name == "" || version == "" || seen[key] {
			return
		}
		seen[key] = true
		deps = append(deps, model.NewDependency(model.EcosystemGo, name, version))
	}

	for _, line := range strings.Split(text, "\n") {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "require") && strings.HasSuffix(line, "("):
			inBlock = true
		case inBlock && line == ")":
			inBlock = false
		case inBlock:
			if fields := strings.Fields(line); len(fields) >= 2 {
				emit(fields[0], fields[1])
			}
		case strings.HasPrefix(line, "require "):
			if fields := strings.Fields(strings.TrimPrefix(line, "require ")); len(fields) >= 2 {
				emit(fields[0], fields[1])
			}
		}
	}
	return deps, nil
}
