package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fpdgen/internal/core/domain"
)

func TestStageTracker_Advance(t *testing.T) {
	t.Parallel()

	var tracker domain.StageTracker
	assert.Equal(t, domain.StageUnparsed, tracker.Current())

	for _, next := range []domain.Stage{
		domain.StageHeaderLoaded,
		domain.StageOptionsResolved,
		domain.StageModulesBound,
		domain.StageFVAssigned,
		domain.StageEmitted,
	} {
		require.NoError(t, tracker.Advance(next))
		assert.Equal(t, next, tracker.Current())
	}
	assert.Equal(t, "EMITTED", tracker.Current().String())
}

func TestStageTracker_RejectsSkipsAndRepeats(t *testing.T) {
	t.Parallel()

	var tracker domain.StageTracker

	err := tracker.Advance(domain.StageModulesBound)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidStageTransition.Error())

	require.NoError(t, tracker.Advance(domain.StageHeaderLoaded))
	err = tracker.Advance(domain.StageHeaderLoaded)
	require.Error(t, err)
	assert.Equal(t, domain.StageHeaderLoaded, tracker.Current())
}
