package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserSession is one row in the login/logout ledger. A row is appended at
// every successful login and mutated once at logout; rows are never deleted.
type UserSession struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	LoginTime  time.Time          `bson:"login_time" json:"login_time"`
	LogoutTime *time.Time         `bson:"logout_time,omitempty" json:"logout_time,omitempty"`
}
