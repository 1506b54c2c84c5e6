package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account. Admin rights are a durable attribute
// on the account itself; elevated operations re-check it against the store
// rather than trusting the token-time snapshot.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON

	// Profile attributes captured at registration; the client computes
	// dashboard/goal views from these.
	Age    *int     `bson:"age,omitempty" json:"age,omitempty"`
	Weight *float64 `bson:"weight,omitempty" json:"weight,omitempty"` // kg
	Height *float64 `bson:"height,omitempty" json:"height,omitempty"` // cm
	Goal   string   `bson:"goal,omitempty" json:"goal,omitempty"`

	IsAdmin bool `bson:"isAdmin" json:"isAdmin"`

	Suspended       bool       `bson:"suspended" json:"suspended"`
	SuspendedReason string     `bson:"suspendedReason,omitempty" json:"suspendedReason,omitempty"`
	SuspendedAt     *time.Time `bson:"suspendedAt,omitempty" json:"suspendedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
