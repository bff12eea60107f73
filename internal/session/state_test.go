package session

import (
	"errors"
	"testing"

	"github.com/alexanderramin/calplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_WithContextDropsBatch(t *testing.T) {
	st := &State{
		Context:     &domain.ProfessionalContext{CompanyName: "old"},
		Constraints: &domain.SchedulingConstraints{WorkingHoursStart: "09:00"},
		Batch:       &domain.Batch{ID: "b1"},
	}

	next := st.WithContext(&domain.ProfessionalContext{CompanyName: "new"})

	assert.Equal(t, "new", next.Context.CompanyName)
	assert.Nil(t, next.Batch)
	assert.Same(t, st.Constraints, next.Constraints)
	assert.Equal(t, "old", st.Context.CompanyName, "original untouched")
	assert.Equal(t, "b1", st.Batch.ID)
}

func TestState_WithBatchClearsBrokenMark(t *testing.T) {
	st := &State{}
	st.markBroken(KeyBatch, errors.New("bad json"))

	_, err := st.RequireBatch()
	var missing *MissingStateError
	require.ErrorAs(t, err, &missing)
	require.Error(t, missing.Cause)

	next := st.WithBatch(&domain.Batch{ID: "b2"})
	b, err := next.RequireBatch()
	require.NoError(t, err)
	assert.Equal(t, "b2", b.ID)

	_, err = st.RequireBatch()
	assert.Error(t, err, "original still reports the broken snapshot")
}

func TestState_FirstMissingOrder(t *testing.T) {
	var st *State
	assert.Equal(t, KeyContext, st.FirstMissing())

	st = st.WithConstraints(&domain.SchedulingConstraints{})
	assert.Equal(t, KeyContext, st.FirstMissing())

	st = st.WithContext(&domain.ProfessionalContext{})
	assert.Equal(t, KeyBatch, st.FirstMissing())
}

func TestMissingStateError_Message(t *testing.T) {
	assert.Equal(t, `session state "generated_calendar" missing`, (&MissingStateError{Key: KeyBatch}).Error())
}
