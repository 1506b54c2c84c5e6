package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParticipantStatus type for participation lifecycle.
type ParticipantStatus string

const (
	ParticipantAccepted ParticipantStatus = "accepted"
)

// Participant is one RSVP entry inside a bootcamp. A bootcamp holds at most
// one entry per user.
type Participant struct {
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	AcceptedAt time.Time          `bson:"acceptedAt" json:"acceptedAt"`
	Status     ParticipantStatus  `bson:"status" json:"status"`
}

// Bootcamp is a time-boxed group activity with a capacity-bounded
// accept/decline workflow. Lifecycle state (upcoming/active/ended) is never
// stored; it is derived from StartTime/EndTime at read time.
type Bootcamp struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description" json:"description"`
	Expectations    string             `bson:"expectations" json:"expectations"`
	Exercises       []string           `bson:"exercises,omitempty" json:"exercises,omitempty"`
	StartTime       time.Time          `bson:"startTime" json:"startTime"`
	EndTime         time.Time          `bson:"endTime" json:"endTime"`
	Difficulty      string             `bson:"difficulty" json:"difficulty"`
	MaxParticipants int                `bson:"maxParticipants" json:"maxParticipants"` // 0 = unlimited
	CreatedBy       primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	Participants    []Participant      `bson:"participants" json:"participants"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DefaultBootcampDifficulty applies when a bootcamp is created without one.
const DefaultBootcampDifficulty = "Intermediate"

// BootcampStatus is the derived lifecycle snapshot returned to clients.
// Durations are clamped to zero and reported in milliseconds.
type BootcampStatus struct {
	IsActive         bool  `json:"isActive"`
	HasStarted       bool  `json:"hasStarted"`
	HasEnded         bool  `json:"hasEnded"`
	TimeUntilStart   int64 `json:"timeUntilStart"`
	TimeUntilEnd     int64 `json:"timeUntilEnd"`
	ParticipantCount int   `json:"participantCount"`
}

// HasStartedAt reports whether the bootcamp has started. A bootcamp starting
// exactly at now counts as started, and is therefore already non-editable.
func (b *Bootcamp) HasStartedAt(now time.Time) bool {
	return !now.Before(b.StartTime)
}

// HasEndedAt reports whether the bootcamp is over.
func (b *Bootcamp) HasEndedAt(now time.Time) bool {
	return now.After(b.EndTime)
}

// IsActiveAt reports whether now falls inside [StartTime, EndTime].
func (b *Bootcamp) IsActiveAt(now time.Time) bool {
	return b.HasStartedAt(now) && !b.HasEndedAt(now)
}

// StatusAt derives the lifecycle snapshot for the given instant.
func (b *Bootcamp) StatusAt(now time.Time) BootcampStatus {
	return BootcampStatus{
		IsActive:         b.IsActiveAt(now),
		HasStarted:       b.HasStartedAt(now),
		HasEnded:         b.HasEndedAt(now),
		TimeUntilStart:   clampMillis(b.StartTime.Sub(now)),
		TimeUntilEnd:     clampMillis(b.EndTime.Sub(now)),
		ParticipantCount: len(b.Participants),
	}
}

// HasParticipant reports whether the user already holds an entry.
func (b *Bootcamp) HasParticipant(userID primitive.ObjectID) bool {
	for _, p := range b.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// IsFull reports whether the capacity limit has been reached. A zero
// MaxParticipants means unlimited.
func (b *Bootcamp) IsFull() bool {
	return b.MaxParticipants > 0 && len(b.Participants) >= b.MaxParticipants
}

func clampMillis(d time.Duration) int64 {
	if d < 0 {
		return 0
	}
	return d.Milliseconds()
}
