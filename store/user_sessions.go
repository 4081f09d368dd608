package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/promptpilot/promptpilot-go/models"
)

// UserSessionRepo handles the append-only login/logout ledger.
type UserSessionRepo struct {
	col *mongo.Collection
}

// Append records a new login.
func (r *UserSessionRepo) Append(ctx context.Context, userID primitive.ObjectID, loginTime time.Time) error {
	_, err := r.col.InsertOne(ctx, models.UserSession{
		UserID:    userID,
		LoginTime: loginTime,
	})
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	return nil
}

// CloseLatestOpen sets the logout time on the most recent session for the
// user that has no logout time yet. Returns false when no such session
// exists; that is not an error.
func (r *UserSessionRepo) CloseLatestOpen(ctx context.Context, userID primitive.ObjectID, logoutTime time.Time) (bool, error) {
	filter := bson.M{
		"user_id":     userID,
		"logout_time": bson.M{"$exists": false},
	}
	opts := options.FindOneAndUpdate().SetSort(bson.D{{Key: "login_time", Value: -1}})

	err := r.col.FindOneAndUpdate(ctx, filter, bson.M{
		"$set": bson.M{"logout_time": logoutTime},
	}, opts).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("failed to record logout: %w", err)
	}
	return true, nil
}

// ListByUser returns the user's ledger rows, most recent login first.
func (r *UserSessionRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.UserSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "login_time", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer cur.Close(ctx)

	var sessions []models.UserSession
	if err := cur.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}
	return sessions, nil
}
