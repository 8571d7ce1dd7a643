package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIDNamingCoversRequiredKeys(t *testing.T) {
	keys := make(map[string]bool)
	for _, entry := range DefaultIDNaming() {
		keys[entry.Key] = true
	}
	for _, required := range requiredIDNamingKeys {
		assert.True(t, keys[required], "default id naming must cover %q", required)
	}
}

func TestDefaultIdentityKeysExcludeStage(t *testing.T) {
	assert.NotContains(t, DefaultIdentityKeys(), KeyTestStage,
		"stage must never be part of case identity, or cross-stage reuse breaks")
	assert.Contains(t, DefaultIdentityKeys(), KeyModelName)
	assert.Contains(t, DefaultIdentityKeys(), KeyDatasetName)
}

func TestNewDefaultSourceBacksAHelper(t *testing.T) {
	source := NewDefaultSource([]TestBunch{{
		KeyModelName:   "m",
		KeyDatasetName: "d",
		KeyUsecase:     "precommit",
	}})
	helper, err := NewHelper(source, &fakeFactory{stages: []string{"train"}})
	require.NoError(t, err)

	_, values, _, err := helper.ExpandMatrix("")
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, 1, values[0][KeyNumTrainingIters])
	assert.Equal(t, 2, values[0][KeyBatchSize])
}
