// Package manifest implements the lockfile extraction layer: one pure
// parser per supported dialect, each turning raw manifest text into a
// normalized dependency list. Parsers never perform I/O; the only errors
// they raise are ParseError values for structurally invalid input to the
// underlying structured-data decoder. Irregular entries are skipped, not
// fatal.
package manifest

import (
	"errors"
	"fmt"

	"github.com/depscout/depscout-backend/model"
	"github.com/depscout/depscout-backend/util"
)

// Sentinel errors for input rejected before any parser runs.
var (
	ErrEmptyManifest   = errors.New("manifest text is empty")
	ErrUnsupportedType = errors.New("unsupported manifest type")
)

// ParseError wraps a structured-data decoder failure with the dialect that
// was being parsed.
type ParseError struct {
	ManifestType string
	Err          error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s manifest: %v", e.ManifestType, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse extracts the dependency list from manifest text. Empty input and
// unknown dialect tags are rejected up front rather than surfaced as zero
// dependencies.
func Parse(manifestType, text string) ([]model.Dependency, error) {
	if util.IsEmpty(text) {
		return nil, ErrEmptyManifest
	}

	switch manifestType {
	case model.ManifestPackageLock:
		return parsePackageLock(text)
	case model.ManifestYarnLock:
		return parseYarnLock(text)
	case model.ManifestPnpmLock:
		return parsePnpmLock(text)
	case model.ManifestRequirements:
		return parseRequirements(text)
	case model.ManifestPoetryLock:
		return parseTOMLPackages(text, model.ManifestPoetryLock)
	case model.ManifestCargoLock:
		return parseTOMLPackages(text, model.ManifestCargoLock)
	case model.ManifestGoMod:
		return parseGoMod(text)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, manifestType)
}
