package manifest

import (
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/depscout/depscout-backend/model"
)

type pnpmLockFile struct {
	Packages        map[string]interface{} `yaml:"packages"`
	Dependencies    map[string]interface{} `yaml:"dependencies"`
	DevDependencies map[string]interface{} `yaml:"devDependencies"`
}

// parsePnpmLock extracts dependencies from a pnpm-lock.yaml document. The
// packages section keys carry name and version ("/name@version" in newer
// lockfiles, "/name/version" in older ones); when that section is empty the
// top-level dependency maps are scanned instead.
func parsePnpmLock(text string) ([]model.Dependency, error) {
	var lock pnpmLockFile
	if err := yaml.Unmarshal([]byte(text), &lock); err != nil {
		return nil, &ParseError{ManifestType: model.ManifestPnpmLock, Err: err}
	}

	deps := make([]model.Dependency, 0)
	seen := make(map[string]bool)

	for _, key := range sortedKeys(lock.Packages) {
		name, version := splitPnpmPackageKey(key)
		if name == "" || version == "" {
			continue
		}
		composite := name + "@" + version
		if seen[composite] {
			continue
		}
		seen[composite] = true
		deps = append(deps, model.NewDependency(model.EcosystemNPM, name, version))
	}
	if len(deps) > 0 {
		return deps, nil
	}

	for _, section := range []map[string]interface{}{lock.Dependencies, lock.DevDependencies} {
		for _, name := range sortedKeys(section) {
			version := pnpmDependencyVersion(section[name])
			if version == "" {
				continue
			}
			composite := name + "@" + version
			if seen[composite] {
				continue
			}
			seen[composite] = true
			deps = append(deps, model.NewDependency(model.EcosystemNPM, name, version))
		}
	}
	return deps, nil
}

// splitPnpmPackageKey recovers name and version from a packages-section
// key. Peer-dependency suffixes like "(react@18.2.0)" are dropped before
// splitting; scoped names keep their "@scope/" prefix intact.
func splitPnpmPackageKey(key string) (name, version string) {
	if idx := strings.Index(key, "("); idx > 0 {
		key = key[:idx]
	}
	key = strings.TrimPrefix(key, "/")

	// Newer format: name@version, with the name possibly scoped.
	if idx := strings.LastIndex(key, "@"); idx > 0 {
		return key[:idx], key[idx+1:]
	}
	// Older format: name/version.
	if idx := strings.LastIndex(key, "/"); idx > 0 {
		return key[:idx], key[idx+1:]
	}
	return "", ""
}

// pnpmDependencyVersion reads the resolved version out of a dependency-map
// value, which is either a bare version string or an object carrying a
// version field.
func pnpmDependencyVersion(value interface{}) string {
	switch v := value.(type) {
	case string:
		return stripPnpmPeerSuffix(v)
	case map[interface{}]interface{}:
		if version, ok := v["version"].(string); ok {
			return stripPnpmPeerSuffix(version)
		}
	case map[string]interface{}:
		if version, ok := v["version"].(string); ok {
			return stripPnpmPeerSuffix(version)
		}
	}
	return ""
}

func stripPnpmPeerSuffix(version string) string {
	if idx := strings.Index(version, "("); idx > 0 {
		version = version[:idx]
	}
	return version
}
