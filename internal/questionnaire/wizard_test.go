package questionnaire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepsCoverEveryKey(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range Steps() {
		for _, f := range s.Fields {
			assert.False(t, seen[f.Key], "duplicate field %s", f.Key)
			seen[f.Key] = true
			if f.Kind != KindText {
				assert.NotEmpty(t, f.Options, f.Key)
			}
		}
	}
	for _, k := range Keys {
		assert.True(t, seen[k], "key %s has no field", k)
	}
	assert.Len(t, Steps(), 9)
}

func TestWizardNavigation(t *testing.T) {
	w := NewWizard()
	assert.Equal(t, 0, w.Index())
	assert.False(t, w.Back())
	assert.InDelta(t, 1.0/9.0, w.Progress(), 1e-9)

	for i := 1; i < 9; i++ {
		require.True(t, w.Next())
		assert.Equal(t, i, w.Index())
	}
	assert.True(t, w.Last())
	assert.False(t, w.Next())
	assert.InDelta(t, 1.0, w.Progress(), 1e-9)

	require.True(t, w.Back())
	assert.Equal(t, "Constraints and boundaries", w.Current().Title)
}

func TestWizardAnswerValidation(t *testing.T) {
	w := NewWizard()
	require.NoError(t, w.Answer(KeyContext, "Student"))
	assert.ErrorIs(t, w.Answer(KeyContext, "Astronaut"), ErrInvalidOption)
	assert.ErrorIs(t, w.Answer(KeyContext, 3), ErrInvalidValue)
	assert.ErrorIs(t, w.Answer("favourite_colour", "blue"), ErrUnknownField)
	assert.ErrorIs(t, w.Answer(KeyTopics, "coding"), ErrFieldNotInStep)

	for w.Index() < 8 {
		w.Next()
	}
	assert.ErrorIs(t, w.Answer(KeyMotivation, []string{"Curiosity", "Creativity", "Career impact"}), ErrTooManySelections)
	require.NoError(t, w.Answer(KeyMotivation, []any{"Curiosity", "Curiosity", "Creativity"}))
	assert.Equal(t, []string{"Curiosity", "Creativity"}, w.Answers()[KeyMotivation])
}

func TestWizardSubmit(t *testing.T) {
	w := NewWizard()
	_, err := w.Submit()
	assert.ErrorIs(t, err, ErrSubmitBeforeLastStep)

	require.NoError(t, w.Answer(KeyAgeRange, "13-15"))
	w.Next()
	require.NoError(t, w.Answer(KeyInterests, []string{"Technology"}))
	w.Next()
	require.NoError(t, w.Answer(KeyTopics, "  I love coding and automation "))
	for i := 0; i < 4; i++ {
		w.Next()
	}
	require.NoError(t, w.Answer(KeyMood, "Confused"))
	w.Next()
	require.NoError(t, w.Answer(KeyConstraints, []string{"Time", "Money"}))
	w.Next()

	got, err := w.Submit()
	require.NoError(t, err)
	assert.Equal(t, "Student", got[KeyContext])
	assert.Equal(t, "13-15", got[KeyAgeRange])
	assert.Equal(t, []string{"Technology"}, got[KeyInterests])
	assert.Equal(t, "I love coding and automation", got[KeyTopics])
	assert.Equal(t, "0-2", got[KeyTimePerWeek])
	assert.Equal(t, "Confused", got[KeyMood])
	assert.Equal(t, "Time, Money", got[KeyConstraints])
	assert.Equal(t, "Solo", got[KeyCommunity])
	assert.Equal(t, "", got[KeyHardNos])
	assert.Equal(t, []string{}, got[KeyMotivation])

	w.Reset()
	assert.Equal(t, 0, w.Index())
	assert.Empty(t, w.Answers())
}
