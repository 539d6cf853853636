package manifest

import (
	"regexp"
	"strings"

	"github.com/depscout/depscout-backend/model"
)

var (
	extrasPattern      = regexp.MustCompile(`\[[^\]]*\]`)
	requirementPattern = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9._\-]*)\s*(==|>=|<=|~=|!=|>|<)\s*([^\s;,#]+)`)
	bareNamePattern    = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._\-]*$`)
)

// parseRequirements extracts dependencies from a pip requirements.txt
// document. Comments, blank lines and option flags are skipped, bracketed
// extras are stripped, names are lowercased per PyPI convention, and an
// unpinned name is emitted with the wildcard version rather than dropped.
func parseRequirements(text string) ([]model.Dependency, error) {
	deps := make([]model.Dependency, 0)
	seen := make(map[string]bool)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		// Environment markers and trailing comments are not part of the pin.
		if idx := strings.Index(line, ";"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if idx := strings.Index(line, " #"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		line = extrasPattern.ReplaceAllString(line, "")

		name, version := splitRequirement(line)
		if name == "" {
			continue
		}
		key := name + "@" + version
		if seen[key] {
			continue
		}
		seen[key] = true
		deps = append(deps, model.NewDependency(model.EcosystemPyPI, name, version))
	}
	return deps, nil
}

func splitRequirement(line string) (name, version string) {
	if matches := requirementPattern.FindStringSubmatch(line); matches != nil {
		return strings.ToLower(matches[1]), matches[3]
	}
	if bareNamePattern.MatchString(line) {
		return strings.ToLower(line), model.WildcardVersion
	}
	return "", ""
}
