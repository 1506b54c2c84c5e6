package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateCalories(t *testing.T) {
	assert.Equal(t, 0, EstimateCalories(0, nil))
	assert.Equal(t, 0, EstimateCalories(-10, nil), "negative durations burn nothing")
	assert.Equal(t, 420, EstimateCalories(60, nil))

	exercises := []WorkoutExercise{{Sets: 3}, {Sets: 5}}
	assert.Equal(t, 60*7+8*2, EstimateCalories(60, exercises))
}

func TestTotalSets(t *testing.T) {
	w := Workout{Exercises: []WorkoutExercise{{Sets: 4}, {Sets: 3}, {Sets: 0}}}
	assert.Equal(t, 7, w.TotalSets())

	empty := Workout{}
	assert.Zero(t, empty.TotalSets())
}
