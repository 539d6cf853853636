package util

import (
	"testing"

	"github.com/google/osv-scanner/pkg/models"
	"github.com/stretchr/testify/assert"
)

func semverAffected(introduced, fixed string) models.Affected {
	return models.Affected{
		Ranges: []models.Range{{
			Type: models.RangeSemVer,
			Events: []models.Event{
				{Introduced: introduced},
				{Fixed: fixed},
			},
		}},
	}
}

func TestIsVersionAffectedExplicitVersionList(t *testing.T) {
	affected := models.Affected{Versions: []string{"1.2.3", "1.2.4"}}
	assert.True(t, IsVersionAffected("1.2.3", affected))
	assert.False(t, IsVersionAffected("1.2.5", affected))
}

func TestIsVersionAffectedSemverRange(t *testing.T) {
	affected := semverAffected("1.0.0", "1.4.0")
	assert.True(t, IsVersionAffected("1.2.0", affected))
	assert.True(t, IsVersionAffected("1.0.0", affected))
	assert.False(t, IsVersionAffected("1.4.0", affected))
	assert.False(t, IsVersionAffected("0.9.0", affected))
}

func TestIsVersionAffectedIntroducedZero(t *testing.T) {
	affected := semverAffected("0", "2.0.0")
	assert.True(t, IsVersionAffected("0.0.1", affected))
	assert.True(t, IsVersionAffected("1.9.9", affected))
	assert.False(t, IsVersionAffected("2.0.0", affected))
}

func TestIsVersionAffectedIgnoresGitRanges(t *testing.T) {
	affected := models.Affected{
		Ranges: []models.Range{{
			Type: models.RangeGit,
			Events: []models.Event{
				{Introduced: "abc123"},
				{Fixed: "def456"},
			},
		}},
	}
	assert.False(t, IsVersionAffected("1.0.0", affected))
	assert.False(t, HasCheckableRange(affected))
}

func TestIsVersionAffectedRequiresBothBounds(t *testing.T) {
	affected := models.Affected{
		Ranges: []models.Range{{
			Type:   models.RangeSemVer,
			Events: []models.Event{{Introduced: "1.0.0"}},
		}},
	}
	assert.False(t, IsVersionAffected("1.5.0", affected))
}

func TestIsVersionAffectedLastAffectedBound(t *testing.T) {
	affected := models.Affected{
		Ranges: []models.Range{{
			Type: models.RangeSemVer,
			Events: []models.Event{
				{Introduced: "1.0.0"},
				{LastAffected: "1.3.0"},
			},
		}},
	}
	assert.True(t, IsVersionAffected("1.3.0", affected))
	assert.False(t, IsVersionAffected("1.3.1", affected))
}

func TestIsVersionAffectedNPMEcosystem(t *testing.T) {
	affected := models.Affected{
		Package: models.Package{Ecosystem: "npm", Name: "lodash"},
		Ranges: []models.Range{{
			Type: models.RangeEcosystem,
			Events: []models.Event{
				{Introduced: "0"},
				{Fixed: "4.17.21"},
			},
		}},
	}
	assert.True(t, IsVersionAffected("4.17.20", affected))
	assert.False(t, IsVersionAffected("4.17.21", affected))
}

func TestIsVersionAffectedPyPIEcosystem(t *testing.T) {
	affected := models.Affected{
		Package: models.Package{Ecosystem: "PyPI", Name: "django"},
		Ranges: []models.Range{{
			Type: models.RangeEcosystem,
			Events: []models.Event{
				{Introduced: "2.0"},
				{Fixed: "2.2.28"},
			},
		}},
	}
	assert.True(t, IsVersionAffected("2.2.1", affected))
	assert.False(t, IsVersionAffected("3.0", affected))
}

func TestIsVersionAffectedAny(t *testing.T) {
	entries := []models.Affected{
		semverAffected("1.0.0", "1.1.0"),
		semverAffected("2.0.0", "2.1.0"),
	}
	assert.True(t, IsVersionAffectedAny("2.0.5", entries))
	assert.False(t, IsVersionAffectedAny("1.5.0", entries))
}

func TestHasCheckableRange(t *testing.T) {
	assert.True(t, HasCheckableRange(semverAffected("0", "1.0.0")))
	assert.True(t, HasCheckableRange(models.Affected{Versions: []string{"1.0.0"}}))
	assert.False(t, HasCheckableRange(models.Affected{}))
}

func TestExtractFixedVersions(t *testing.T) {
	entries := []models.Affected{
		semverAffected("0", "1.4.0"),
		semverAffected("2.0.0", "2.2.0"),
		semverAffected("0", "1.4.0"),
	}
	assert.Equal(t, []string{"1.4.0", "2.2.0"}, ExtractFixedVersions(entries))
}

func TestExtractFixedVersionsEmpty(t *testing.T) {
	assert.Nil(t, ExtractFixedVersions(nil))
	assert.Nil(t, ExtractFixedVersions([]models.Affected{{Versions: []string{"1.0.0"}}}))
}
