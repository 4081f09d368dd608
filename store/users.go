package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/promptpilot/promptpilot-go/models"
)

// UserRepo handles user document persistence.
type UserRepo struct {
	col *mongo.Collection
}

// FindByEmail looks up a user by email address.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// FindByID looks up a user by ObjectID.
func (r *UserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// Insert persists a new user and sets the generated ID on the struct.
func (r *UserRepo) Insert(ctx context.Context, user *models.User) error {
	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// SetVerificationChallenge overwrites the verification challenge. A new
// challenge request replaces the prior one; there is no multi-token queue.
func (r *UserRepo) SetVerificationChallenge(ctx context.Context, id primitive.ObjectID, code string, expiresAt, sentAt time.Time) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"two_factor_token":            code,
			"two_factor_token_expires_at": expiresAt,
			"two_factor_token_sent_at":    sentAt,
			"updated_at":                  sentAt,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to set verification challenge: %w", err)
	}
	return nil
}

// SetVerified marks the user verified and clears all three verification
// challenge fields in a single write.
func (r *UserRepo) SetVerified(ctx context.Context, id primitive.ObjectID, now time.Time) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"is_verified": true, "updated_at": now},
		"$unset": bson.M{
			"two_factor_token":            "",
			"two_factor_token_expires_at": "",
			"two_factor_token_sent_at":    "",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to verify user: %w", err)
	}
	return nil
}

// SetResetChallenge overwrites the password reset challenge.
func (r *UserRepo) SetResetChallenge(ctx context.Context, id primitive.ObjectID, code string, expiresAt, sentAt time.Time) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"reset_token":            code,
			"reset_token_expires_at": expiresAt,
			"reset_token_sent_at":    sentAt,
			"updated_at":             sentAt,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to set reset challenge: %w", err)
	}
	return nil
}

// UpdatePassword replaces the password hash and clears all three reset
// challenge fields in a single write.
func (r *UserRepo) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string, now time.Time) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"password": hash, "updated_at": now},
		"$unset": bson.M{
			"reset_token":            "",
			"reset_token_expires_at": "",
			"reset_token_sent_at":    "",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
