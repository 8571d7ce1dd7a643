package mock

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaseFactoryStages(t *testing.T) {
	factory := NewCaseFactory("train", "eval", "export")
	assert.Equal(t, []string{"train", "eval", "export"}, factory.Stages())
}

func TestNewCaseInstancesAreDistinct(t *testing.T) {
	factory := NewCaseFactory("train")

	a, err := factory.NewCase("factories-a")
	require.NoError(t, err)
	b, err := factory.NewCase(nil)
	require.NoError(t, err)

	caseA := a.(*StageCase)
	caseB := b.(*StageCase)
	assert.NotEqual(t, caseA.ID, caseB.ID)
	assert.Equal(t, "factories-a", caseA.ParamFactories)
	assert.Nil(t, caseB.ParamFactories)
	assert.Equal(t, 2, factory.Constructed())
}

func TestNewCaseInjectedFailure(t *testing.T) {
	factory := NewCaseFactory("train")
	boom := errors.New("no GPU available")
	factory.ConstructErr = boom

	_, err := factory.NewCase(nil)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, factory.Constructed())
}
