package auth

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/promptpilot/promptpilot-go/models"
	"github.com/promptpilot/promptpilot-go/store"
)

// In-memory fakes for the orchestrator's collaborators.

type fakeUserStore struct {
	users []*models.User
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) Insert(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserStore) SetVerificationChallenge(_ context.Context, id primitive.ObjectID, code string, expiresAt, sentAt time.Time) error {
	for _, u := range f.users {
		if u.ID == id {
			u.TwoFactorToken = code
			u.TwoFactorTokenExpiresAt = &expiresAt
			u.TwoFactorTokenSentAt = &sentAt
			u.UpdatedAt = sentAt
		}
	}
	return nil
}

func (f *fakeUserStore) SetVerified(_ context.Context, id primitive.ObjectID, now time.Time) error {
	for _, u := range f.users {
		if u.ID == id {
			u.IsVerified = true
			u.TwoFactorToken = ""
			u.TwoFactorTokenExpiresAt = nil
			u.TwoFactorTokenSentAt = nil
			u.UpdatedAt = now
		}
	}
	return nil
}

func (f *fakeUserStore) SetResetChallenge(_ context.Context, id primitive.ObjectID, code string, expiresAt, sentAt time.Time) error {
	for _, u := range f.users {
		if u.ID == id {
			u.ResetToken = code
			u.ResetTokenExpiresAt = &expiresAt
			u.ResetTokenSentAt = &sentAt
			u.UpdatedAt = sentAt
		}
	}
	return nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id primitive.ObjectID, hash string, now time.Time) error {
	for _, u := range f.users {
		if u.ID == id {
			u.Password = hash
			u.ResetToken = ""
			u.ResetTokenExpiresAt = nil
			u.ResetTokenSentAt = nil
			u.UpdatedAt = now
		}
	}
	return nil
}

type fakeSessionStore struct {
	rows []*models.UserSession
}

func (f *fakeSessionStore) Append(_ context.Context, userID primitive.ObjectID, loginTime time.Time) error {
	f.rows = append(f.rows, &models.UserSession{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		LoginTime: loginTime,
	})
	return nil
}

func (f *fakeSessionStore) CloseLatestOpen(_ context.Context, userID primitive.ObjectID, logoutTime time.Time) (bool, error) {
	var latest *models.UserSession
	for _, row := range f.rows {
		if row.UserID != userID || row.LogoutTime != nil {
			continue
		}
		if latest == nil || row.LoginTime.After(latest.LoginTime) {
			latest = row
		}
	}
	if latest == nil {
		return false, nil
	}
	latest.LogoutTime = &logoutTime
	return true, nil
}

func (f *fakeSessionStore) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.UserSession, error) {
	var out []models.UserSession
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, *row)
		}
	}
	return out, nil
}

type sentEmail struct {
	ToEmail string
	Subject string
	Text    string
}

type fakeSender struct {
	sent []sentEmail
	err  error
}

func (f *fakeSender) Send(_ context.Context, _, toEmail, subject, textContent, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEmail{ToEmail: toEmail, Subject: subject, Text: textContent})
	return nil
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}
