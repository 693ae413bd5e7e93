package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexibleStringSliceFromArray(t *testing.T) {
	var f FlexibleStringSlice
	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &f))
	assert.Equal(t, FlexibleStringSlice{"a", "b"}, f)
}

func TestFlexibleStringSliceFromString(t *testing.T) {
	var f FlexibleStringSlice
	require.NoError(t, json.Unmarshal([]byte(`"single responsibility"`), &f))
	assert.Equal(t, FlexibleStringSlice{"single responsibility"}, f)
}

func TestFlexibleStringSliceFromEmptyString(t *testing.T) {
	var f FlexibleStringSlice
	require.NoError(t, json.Unmarshal([]byte(`""`), &f))
	assert.Empty(t, f)
}

func TestFlexibleStringSliceFromGarbage(t *testing.T) {
	var f FlexibleStringSlice
	require.NoError(t, json.Unmarshal([]byte(`42`), &f))
	assert.Empty(t, f)
}

func TestJobSkillsFieldName(t *testing.T) {
	// The wire field for must-have skills is "skills".
	var job Job
	require.NoError(t, json.Unmarshal([]byte(`{"skills":["go"],"optional_skills":["redis"]}`), &job))
	assert.Equal(t, []string{"go"}, job.MustHaveSkills)
	assert.Equal(t, []string{"redis"}, job.OptionalSkills)
}
