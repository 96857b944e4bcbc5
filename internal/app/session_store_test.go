package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreUpdateAndReset(t *testing.T) {
	store := NewSessionStore(10, time.Minute)

	assert.Equal(t, StepIdle, store.Get(1).Step)

	sess, err := store.Update(1, func(s *Session) error {
		s.Step = StepQuestionnaire
		s.Votes = append(s.Votes, "R1")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"R1"}, sess.Votes)

	got := store.Get(1)
	got.Votes[0] = "changed"
	assert.Equal(t, "R1", store.Get(1).Votes[0], "Get must return a copy")

	_, err = store.Update(1, func(s *Session) error {
		s.Step = StepRecipe
		return ErrNoActiveConsultation
	})
	assert.ErrorIs(t, err, ErrNoActiveConsultation)
	assert.Equal(t, StepQuestionnaire, store.Get(1).Step, "failed update must not be stored")

	store.Reset(1)
	assert.Equal(t, StepIdle, store.Get(1).Step)
	assert.Equal(t, 0, store.Len())
}

func TestSessionStoreEvictsBeyondCapacity(t *testing.T) {
	store := NewSessionStore(2, time.Minute)
	for id := int64(1); id <= 3; id++ {
		_, err := store.Update(id, func(s *Session) error {
			s.Step = StepBirthDate
			return nil
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 2, store.Len())
	assert.Equal(t, StepIdle, store.Get(1).Step)
	assert.Equal(t, StepBirthDate, store.Get(3).Step)
}

func TestSessionStoreExpires(t *testing.T) {
	store := NewSessionStore(10, 20*time.Millisecond)
	_, err := store.Update(1, func(s *Session) error {
		s.Step = StepFlower
		return nil
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return store.Get(1).Step == StepIdle
	}, time.Second, 10*time.Millisecond)
}
