package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account. The password hash and all challenge
// state are excluded from JSON so they never leak through API responses.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	FullName string             `bson:"fullname,omitempty" json:"fullname,omitempty"`
	Phone    string             `bson:"phone,omitempty" json:"phone,omitempty"`
	DOB      string             `bson:"dob,omitempty" json:"dob,omitempty"`

	IsVerified bool `bson:"is_verified" json:"is_verified"`

	// Email verification challenge. All three fields are set together when a
	// code is issued and cleared together when verification succeeds.
	TwoFactorToken          string     `bson:"two_factor_token,omitempty" json:"-"`
	TwoFactorTokenExpiresAt *time.Time `bson:"two_factor_token_expires_at,omitempty" json:"-"`
	TwoFactorTokenSentAt    *time.Time `bson:"two_factor_token_sent_at,omitempty" json:"-"`

	// Password reset challenge, independent of the verification challenge.
	ResetToken          string     `bson:"reset_token,omitempty" json:"-"`
	ResetTokenExpiresAt *time.Time `bson:"reset_token_expires_at,omitempty" json:"-"`
	ResetTokenSentAt    *time.Time `bson:"reset_token_sent_at,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
