// Package model - value types exchanged across the depscout-backend API boundary.
package model

import (
	"strings"

	"github.com/package-url/packageurl-go"
)

// Supported package ecosystems, using OSV ecosystem names.
const (
	EcosystemNPM    = "npm"
	EcosystemPyPI   = "PyPI"
	EcosystemGo     = "Go"
	EcosystemCrates = "crates.io"
)

// Supported manifest dialect tags accepted by the parse endpoints.
const (
	ManifestPackageLock  = "package-lock"
	ManifestYarnLock     = "yarn-lock"
	ManifestPnpmLock     = "pnpm-lock"
	ManifestRequirements = "requirements"
	ManifestPoetryLock   = "poetry-lock"
	ManifestCargoLock    = "cargo-lock"
	ManifestGoMod        = "go-mod"
)

// WildcardVersion marks a dependency declared without a version pin.
const WildcardVersion = "*"

// manifestEcosystems is the fixed dialect -> ecosystem mapping.
var manifestEcosystems = map[string]string{
	ManifestPackageLock:  EcosystemNPM,
	ManifestYarnLock:     EcosystemNPM,
	ManifestPnpmLock:     EcosystemNPM,
	ManifestRequirements: EcosystemPyPI,
	ManifestPoetryLock:   EcosystemPyPI,
	ManifestCargoLock:    EcosystemCrates,
	ManifestGoMod:        EcosystemGo,
}

// EcosystemForManifest returns the ecosystem a manifest dialect maps to.
func EcosystemForManifest(manifestType string) (string, bool) {
	eco, ok := manifestEcosystems[manifestType]
	return eco, ok
}

// SupportedManifestTypes lists the accepted manifest dialect tags.
func SupportedManifestTypes() []string {
	return []string{
		ManifestPackageLock,
		ManifestYarnLock,
		ManifestPnpmLock,
		ManifestRequirements,
		ManifestPoetryLock,
		ManifestCargoLock,
		ManifestGoMod,
	}
}

// Dependency is one resolved package occurrence extracted from a manifest.
// Immutable after creation.
type Dependency struct {
	Ecosystem string `json:"ecosystem"`
	Name      string `json:"name"`
	Version   string `json:"version,omitempty"`
	Purl      string `json:"purl,omitempty"`
}

// NewDependency builds a Dependency with its base PURL derived from the
// ecosystem and package name.
func NewDependency(ecosystem, name, version string) Dependency {
	return Dependency{
		Ecosystem: ecosystem,
		Name:      name,
		Version:   version,
		Purl:      BasePURL(ecosystem, name),
	}
}

// EcosystemToPurlType converts an OSV ecosystem name to a PURL type.
func EcosystemToPurlType(ecosystem string) string {
	switch ecosystem {
	case EcosystemNPM:
		return "npm"
	case EcosystemPyPI:
		return "pypi"
	case EcosystemGo:
		return "golang"
	case EcosystemCrates:
		return "cargo"
	}
	return strings.ToLower(ecosystem)
}

// BasePURL builds a standardized base PURL (no version, no qualifiers) for a
// package. Names carrying a path ("@scope/pkg", "github.com/org/repo") are
// split at the last separator into namespace and name.
func BasePURL(ecosystem, name string) string {
	purl := packageurl.PackageURL{
		Type: EcosystemToPurlType(ecosystem),
		Name: name,
	}
	if idx := strings.LastIndex(name, "/"); idx > 0 {
		purl.Namespace = name[:idx]
		purl.Name = name[idx+1:]
	}
	return strings.ToLower(purl.ToString())
}
