package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/promptpilot/promptpilot-go/email"
	"github.com/promptpilot/promptpilot-go/models"
	"github.com/promptpilot/promptpilot-go/store"
)

// State errors surfaced to the HTTP boundary. Unknown-email and wrong
// password both map to ErrInvalidCredentials to avoid account enumeration.
var (
	ErrEmailInUse         = errors.New("email already in use")
	ErrRateLimited        = errors.New("a code was sent recently, please wait before requesting another")
	ErrUnknownEmail       = errors.New("no account found for this email")
	ErrChallengeExpired   = errors.New("verification code has expired")
	ErrInvalidChallenge   = errors.New("invalid verification code")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("please verify your email first")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrPasswordUnchanged  = errors.New("new password must be different from the current password")
)

const (
	challengeTTL   = 15 * time.Minute
	resendCooldown = 2 * time.Minute
)

// UserStore is the persistence surface the orchestrator needs for users.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
	SetVerificationChallenge(ctx context.Context, id primitive.ObjectID, code string, expiresAt, sentAt time.Time) error
	SetVerified(ctx context.Context, id primitive.ObjectID, now time.Time) error
	SetResetChallenge(ctx context.Context, id primitive.ObjectID, code string, expiresAt, sentAt time.Time) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string, now time.Time) error
}

// SessionStore is the persistence surface for the login ledger.
type SessionStore interface {
	Append(ctx context.Context, userID primitive.ObjectID, loginTime time.Time) error
	CloseLatestOpen(ctx context.Context, userID primitive.ObjectID, logoutTime time.Time) (bool, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.UserSession, error)
}

// Service is the authentication orchestrator: registration, verification,
// login, logout and the password reset flow.
type Service struct {
	users    UserStore
	sessions SessionStore
	tokens   *TokenIssuer
	sender   email.Sender
	logger   *slog.Logger

	now func() time.Time
}

// NewService wires the orchestrator with its collaborators.
func NewService(users UserStore, sessions SessionStore, tokens *TokenIssuer, sender email.Sender, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		sender:   sender,
		logger:   logger,
		now:      time.Now,
	}
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
	DOB      string
}

// Register creates a pending account and dispatches a verification code. If
// the email belongs to an unverified account and the supplied password
// matches the stored hash, the pending registration is resumed and the code
// resent, subject to a cooldown between sends.
func (s *Service) Register(ctx context.Context, in RegisterInput) error {
	if errs := ValidateRegistration(in.Email, in.Password, in.FullName, in.Phone, in.DOB); len(errs) > 0 {
		return errs
	}

	now := s.now()

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, store.ErrUserNotFound) {
		return err
	}

	if existing != nil {
		if existing.IsVerified {
			return ErrEmailInUse
		}
		// Resume a pending registration only for whoever started it.
		if bcrypt.CompareHashAndPassword([]byte(existing.Password), []byte(in.Password)) != nil {
			return ErrEmailInUse
		}
		if existing.TwoFactorTokenSentAt != nil && now.Sub(*existing.TwoFactorTokenSentAt) < resendCooldown {
			return ErrRateLimited
		}

		code, err := GenerateOTP()
		if err != nil {
			return err
		}
		if err := s.users.SetVerificationChallenge(ctx, existing.ID, code, now.Add(challengeTTL), now); err != nil {
			return err
		}
		s.sendVerificationCode(ctx, existing.FullName, existing.Email, code)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := GenerateOTP()
	if err != nil {
		return err
	}

	expiresAt := now.Add(challengeTTL)
	user := &models.User{
		Email:                   in.Email,
		Password:                string(hash),
		FullName:                in.FullName,
		Phone:                   in.Phone,
		DOB:                     in.DOB,
		IsVerified:              false,
		TwoFactorToken:          code,
		TwoFactorTokenExpiresAt: &expiresAt,
		TwoFactorTokenSentAt:    &now,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return err
	}

	s.sendVerificationCode(ctx, user.FullName, user.Email, code)
	return nil
}

// VerifyRegistration checks the challenge code and marks the account
// verified, clearing the challenge in a single write.
func (s *Service) VerifyRegistration(ctx context.Context, emailAddr, code string) error {
	user, err := s.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrUnknownEmail
		}
		return err
	}

	if user.TwoFactorToken == "" || user.TwoFactorTokenExpiresAt == nil {
		return ErrInvalidChallenge
	}
	if s.now().After(*user.TwoFactorTokenExpiresAt) {
		return ErrChallengeExpired
	}
	if user.TwoFactorToken != code {
		return ErrInvalidChallenge
	}

	return s.users.SetVerified(ctx, user.ID, s.now())
}

// Login authenticates a user, issues a session token and appends a ledger
// row. Unknown email and wrong password both report ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, emailAddr, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	if !user.IsVerified {
		return "", ErrNotVerified
	}

	token, err := s.tokens.Issue(user.ID.Hex(), PurposeSession, SessionTokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	if err := s.sessions.Append(ctx, user.ID, s.now()); err != nil {
		return "", err
	}
	return token, nil
}

// Logout closes the user's most recent open ledger row. A no-op when no
// open row exists. The session token stays valid until its natural expiry.
func (s *Service) Logout(ctx context.Context, userID string) error {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return store.ErrUserNotFound
	}

	closed, err := s.sessions.CloseLatestOpen(ctx, id, s.now())
	if err != nil {
		return err
	}
	if !closed {
		s.logger.Debug("logout with no open session", "user_id", userID)
	}
	return nil
}

// GetUser returns the account for an authenticated user ID.
func (s *Service) GetUser(ctx context.Context, userID string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, store.ErrUserNotFound
	}
	return s.users.FindByID(ctx, id)
}

// ListUserSessions returns the user's login history, most recent first.
func (s *Service) ListUserSessions(ctx context.Context, userID string) ([]models.UserSession, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, store.ErrUserNotFound
	}
	return s.sessions.ListByUser(ctx, id)
}

// RequestPasswordReset issues a reset challenge code and dispatches it,
// subject to the same cooldown as verification resends.
func (s *Service) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	user, err := s.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrUnknownEmail
		}
		return err
	}

	now := s.now()
	if user.ResetTokenSentAt != nil && now.Sub(*user.ResetTokenSentAt) < resendCooldown {
		return ErrRateLimited
	}

	code, err := GenerateOTP()
	if err != nil {
		return err
	}
	if err := s.users.SetResetChallenge(ctx, user.ID, code, now.Add(challengeTTL), now); err != nil {
		return err
	}

	s.sendResetCode(ctx, user.FullName, user.Email, code)
	return nil
}

// VerifyResetChallenge checks the reset code and issues a short-lived
// reset-handoff token bound to the user. This token, not the email,
// authorizes the final password change.
func (s *Service) VerifyResetChallenge(ctx context.Context, emailAddr, code string) (string, error) {
	user, err := s.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return "", ErrUnknownEmail
		}
		return "", err
	}

	if user.ResetToken == "" || user.ResetTokenExpiresAt == nil {
		return "", ErrInvalidChallenge
	}
	if s.now().After(*user.ResetTokenExpiresAt) {
		return "", ErrChallengeExpired
	}
	if user.ResetToken != code {
		return "", ErrInvalidChallenge
	}

	token, err := s.tokens.Issue(user.ID.Hex(), PurposeReset, ResetTokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to issue reset token: %w", err)
	}
	return token, nil
}

// CompletePasswordReset replaces the password after validating the handoff
// token. The mismatch and length checks run regardless of token validity.
func (s *Service) CompletePasswordReset(ctx context.Context, resetToken, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}
	if len(newPassword) < MinPasswordLength {
		return ErrWeakPassword
	}

	userID, err := s.tokens.Verify(resetToken, PurposeReset)
	if err != nil {
		return err
	}
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrTokenInvalid
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(newPassword)) == nil {
		return ErrPasswordUnchanged
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, user.ID, string(hash), s.now())
}

// Outbound email is best-effort: failures are logged, never surfaced, so the
// caller still sees success and can request a resend after the cooldown.
func (s *Service) sendVerificationCode(ctx context.Context, name, to, code string) {
	err := s.sender.Send(ctx, name, to, "Verify your email",
		fmt.Sprintf("Your verification code is: %s", code),
		fmt.Sprintf("<p>Your verification code is: <strong>%s</strong></p>", code))
	if err != nil {
		s.logger.Error("failed to send verification email", "to", to, "error", err)
	}
}

func (s *Service) sendResetCode(ctx context.Context, name, to, code string) {
	err := s.sender.Send(ctx, name, to, "Reset your password",
		fmt.Sprintf("Your password reset code is: %s", code),
		fmt.Sprintf("<p>Your password reset code is: <strong>%s</strong></p>", code))
	if err != nil {
		s.logger.Error("failed to send reset email", "to", to, "error", err)
	}
}
