package manifest

import (
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/depscout/depscout-backend/model"
)

type tomlLockFile struct {
	Packages []tomlLockPackage `toml:"package"`
}

type tomlLockPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// parseTOMLPackages handles the structured lock formats that share a
// package-table array layout: poetry.lock (PyPI) and Cargo.lock
// (crates.io). Poetry names are lowercased; cargo names are kept as-is.
func parseTOMLPackages(text, manifestType string) ([]model.Dependency, error) {
	var lock tomlLockFile
	if err := toml.Unmarshal([]byte(text), &lock); err != nil {
		return nil, &ParseError{ManifestType: manifestType, Err: err}
	}

	ecosystem, _ := model.EcosystemForManifest(manifestType)
	lowercase := manifestType == model.ManifestPoetryLock

	deps := make([]model.Dependency, 0, len(lock.Packages))
	seen := make(map[string]bool)
	for _, pkg := range lock.Packages {
		if pkg.Name == "" || pkg.Version == "" {
			continue
		}
		name := pkg.Name
		if lowercase {
			name = strings.ToLower(name)
		}
		key := name + "@" + pkg.Version
		if seen[key] {
			continue
		}
		seen[key] = true
		deps = append(deps, model.NewDependency(ecosystem, name, pkg.Version))
	}
	return deps, nil
}
