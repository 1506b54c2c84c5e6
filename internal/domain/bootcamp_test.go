package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleBootcamp(start, end time.Time) Bootcamp {
	return Bootcamp{
		ID:        primitive.NewObjectID(),
		Title:     "Morning HIIT",
		StartTime: start,
		EndTime:   end,
	}
}

func TestStatusAt_Upcoming(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	b := sampleBootcamp(now.Add(2*time.Hour), now.Add(3*time.Hour))
	b.Participants = []Participant{{UserID: primitive.NewObjectID()}}

	status := b.StatusAt(now)

	assert.False(t, status.HasStarted)
	assert.False(t, status.IsActive)
	assert.False(t, status.HasEnded)
	assert.Equal(t, (2 * time.Hour).Milliseconds(), status.TimeUntilStart)
	assert.Equal(t, (3 * time.Hour).Milliseconds(), status.TimeUntilEnd)
	assert.Equal(t, 1, status.ParticipantCount)
}

func TestStatusAt_Active(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	b := sampleBootcamp(now.Add(-30*time.Minute), now.Add(30*time.Minute))

	status := b.StatusAt(now)

	assert.True(t, status.HasStarted)
	assert.True(t, status.IsActive)
	assert.False(t, status.HasEnded)
	assert.Zero(t, status.TimeUntilStart, "elapsed durations clamp to zero")
	assert.Equal(t, (30 * time.Minute).Milliseconds(), status.TimeUntilEnd)
}

func TestStatusAt_Ended(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	b := sampleBootcamp(now.Add(-2*time.Hour), now.Add(-1*time.Hour))

	status := b.StatusAt(now)

	assert.True(t, status.HasStarted)
	assert.False(t, status.IsActive)
	assert.True(t, status.HasEnded)
	assert.Zero(t, status.TimeUntilStart)
	assert.Zero(t, status.TimeUntilEnd)
}

// Boundary instants: a bootcamp starting exactly now is started (and active);
// one ending exactly now is still active.
func TestStatusAt_Boundaries(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	atStart := sampleBootcamp(now, now.Add(time.Hour))
	assert.True(t, atStart.HasStartedAt(now))
	assert.True(t, atStart.IsActiveAt(now))

	atEnd := sampleBootcamp(now.Add(-time.Hour), now)
	assert.False(t, atEnd.HasEndedAt(now))
	assert.True(t, atEnd.IsActiveAt(now))
}

func TestHasParticipant(t *testing.T) {
	member := primitive.NewObjectID()
	b := sampleBootcamp(time.Now(), time.Now().Add(time.Hour))
	b.Participants = []Participant{{UserID: member, Status: ParticipantAccepted}}

	assert.True(t, b.HasParticipant(member))
	assert.False(t, b.HasParticipant(primitive.NewObjectID()))
}

func TestIsFull(t *testing.T) {
	b := sampleBootcamp(time.Now(), time.Now().Add(time.Hour))
	b.Participants = []Participant{
		{UserID: primitive.NewObjectID()},
		{UserID: primitive.NewObjectID()},
	}

	b.MaxParticipants = 2
	assert.True(t, b.IsFull())

	b.MaxParticipants = 3
	assert.False(t, b.IsFull())

	// Zero means unlimited, never full.
	b.MaxParticipants = 0
	assert.False(t, b.IsFull())
}
