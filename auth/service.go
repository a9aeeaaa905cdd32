package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"mealprep/apperr"
	"mealprep/models"
	"mealprep/mq"
	"mealprep/utils"
)

const (
	MinPasswordLength = 8
	// bcrypt ignores input past 72 bytes.
	MaxPasswordBytes     = 72
	MaxDisplayNameLength = 50
)

// ProfileCreator creates the profile document of a new account.
type ProfileCreator interface {
	Create(ctx context.Context, uid, email, displayName string) (*models.User, error)
}

type Service struct {
	accounts   AccountRepository
	profiles   ProfileCreator
	tokens     *TokenIssuer
	revoked    Revocations
	events     mq.Emitter
	now        func() time.Time
	bcryptCost int
}

func NewService(accounts AccountRepository, profiles ProfileCreator, tokens *TokenIssuer, revoked Revocations, events mq.Emitter) *Service {
	if events == nil {
		events = mq.Nop{}
	}
	return &Service{
		accounts:   accounts,
		profiles:   profiles,
		tokens:     tokens,
		revoked:    revoked,
		events:     events,
		now:        time.Now,
		bcryptCost: bcrypt.DefaultCost,
	}
}

type RegisterResult struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IDToken     string `json:"idToken"`
}

type LoginResult struct {
	UID     string `json:"uid"`
	Email   string `json:"email"`
	IDToken string `json:"idToken"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email && strings.Contains(email[strings.LastIndex(email, "@"):], ".")
}

// Register creates an account and its profile. If the profile cannot be
// created the account is removed again.
func (s *Service) Register(ctx context.Context, email, password, displayName string) (*RegisterResult, error) {
	email = normalizeEmail(email)
	displayName = strings.TrimSpace(displayName)

	if email == "" || password == "" || displayName == "" {
		return nil, apperr.Validation("Email, password and display name are required")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, apperr.WeakPassword("Password must be at least 8 characters")
	}
	if len(password) > MaxPasswordBytes {
		return nil, apperr.Validation("Password must be at most 72 bytes")
	}
	if !validEmail(email) {
		return nil, apperr.InvalidEmail("Invalid email address")
	}
	if utf8.RuneCountInString(displayName) > MaxDisplayNameLength {
		return nil, apperr.Validation("displayName must be 50 characters or fewer")
	}

	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return nil, apperr.ErrEmailExists
	} else if !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	account := Account{
		UID:          utils.GetUUID(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, apperr.ErrEmailExists
		}
		return nil, err
	}

	if _, err := s.profiles.Create(ctx, account.UID, email, displayName); err != nil {
		if derr := s.accounts.Delete(ctx, account.UID); derr != nil {
			utils.LoggerFrom(ctx).WithError(derr).WithField("uid", account.UID).Error("account rollback failed")
		}
		return nil, err
	}

	token, err := s.tokens.Issue(account.UID, email)
	if err != nil {
		return nil, err
	}

	s.events.Emit(ctx, "user-registered", mq.Index{
		EntityType: "user",
		Method:     "POST",
		EntityId:   account.UID,
		UserId:     account.UID,
	})

	return &RegisterResult{UID: account.UID, Email: email, DisplayName: displayName, IDToken: token}, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.Validation("Email and password are required")
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.UID, account.Email)
	if err != nil {
		return nil, err
	}
	return &LoginResult{UID: account.UID, Email: account.Email, IDToken: token}, nil
}

// Logout revokes token until it would have expired anyway.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return apperr.ErrInvalidToken
	}
	return s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// Verify resolves a bearer token to its user id.
func (s *Service) Verify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", apperr.ErrUnauthorized
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return "", apperr.ErrInvalidToken
	}
	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", apperr.ErrInvalidToken
	}
	return claims.UserID, nil
}
