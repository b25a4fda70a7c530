package repodata

import (
	"encoding/json"
	"testing"

	"github.com/blang/semver/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirementMatches(t *testing.T) {
	r := Requirement{Name: "lib", Range: ">=1.0.0 <2.0.0"}

	ok, err := r.Matches(semver.MustParse("1.5.0"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Matches(semver.MustParse("2.0.0"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRequirementMatchesUnconstrained(t *testing.T) {
	r := Requirement{Name: "lib"}
	ok, err := r.Matches(semver.MustParse("9.9.9"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRequirementInvalidRange(t *testing.T) {
	r := Requirement{Name: "lib", Range: "not a range"}
	_, err := r.Matches(semver.MustParse("1.0.0"))
	assert.Error(t, err)
}

func TestRecordIdentifier(t *testing.T) {
	r := Record{Name: "lib", Version: semver.MustParse("1.2.3")}
	assert.Equal(t, "lib-1.2.3", r.Identifier())

	r.Build = "py39"
	assert.Equal(t, "lib-1.2.3-py39", r.Identifier())
}

func TestRecordJSONRoundTrip(t *testing.T) {
	r := Record{
		Name:    "lib",
		Version: semver.MustParse("1.2.3"),
		Source:  "main",
		Depends: []Requirement{{Name: "dep", Range: ">=1.0.0"}},
	}
	data, err := json.Marshal(r)
	require.NoError(t, err)

	var out Record
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, r.Name, out.Name)
	assert.True(t, r.Version.EQ(out.Version))
	assert.Equal(t, r.Depends, out.Depends)
}
