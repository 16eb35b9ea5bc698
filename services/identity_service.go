package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anjiri1684/college_review/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	ProviderPassword  = "password"
	ProviderAnonymous = "anonymous"

	tokenTTL = 72 * time.Hour
)

// IdentityService is the account provider behind every session: email and
// password accounts plus anonymous guests.
type IdentityService struct {
	db     *gorm.DB
	secret []byte
	now    func() time.Time
}

func NewIdentityService(db *gorm.DB, secret string) *IdentityService {
	return &IdentityService{db: db, secret: []byte(secret), now: time.Now}
}

func (s *IdentityService) SignUp(ctx context.Context, creds models.Credentials) (models.Account, error) {
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))
	if err := validate.Struct(creds); err != nil {
		return models.Account{}, newCommandError(ErrValidation, "Please enter a valid email and a password of at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Account{}, fmt.Errorf("hash password: %w", err)
	}

	account := models.Account{
		ID:           uuid.NewString(),
		Email:        &creds.Email,
		PasswordHash: string(hash),
		Provider:     ProviderPassword,
	}
	if err := s.db.WithContext(ctx).Create(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Account{}, newCommandError(ErrConflict, "This email is already registered.")
		}
		return models.Account{}, fmt.Errorf("create account: %w", err)
	}
	return account, nil
}

func (s *IdentityService) SignIn(ctx context.Context, creds models.Credentials) (models.Account, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	var account models.Account
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Account{}, newCommandError(ErrUnauthorized, "Invalid email or password")
	}
	if err != nil {
		return models.Account{}, fmt.Errorf("find account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(creds.Password)); err != nil {
		return models.Account{}, newCommandError(ErrUnauthorized, "Invalid email or password")
	}
	return account, nil
}

func (s *IdentityService) SignInGuest(ctx context.Context) (models.Account, error) {
	account := models.Account{
		ID:          uuid.NewString(),
		IsAnonymous: true,
		Provider:    ProviderAnonymous,
	}
	if err := s.db.WithContext(ctx).Create(&account).Error; err != nil {
		return models.Account{}, fmt.Errorf("create guest: %w", err)
	}
	return account, nil
}

// DeleteAccount removes the session's account after checking its password.
// Guests have no password to check. The user's profile document is left in
// place.
func (s *IdentityService) DeleteAccount(ctx context.Context, session *models.Session, password string) error {
	if session == nil || session.UserID == "" {
		return newCommandError(ErrUnauthorized, "User not logged in")
	}

	var account models.Account
	err := s.db.WithContext(ctx).First(&account, "id = ?", session.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newCommandError(ErrNotFound, "Account not found")
	}
	if err != nil {
		return fmt.Errorf("find account: %w", err)
	}

	if !account.IsAnonymous {
		if password == "" {
			return newCommandError(ErrUnauthorized, "Please enter your password to delete your account")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
			return newCommandError(ErrUnauthorized, "Incorrect password")
		}
	}

	if err := s.db.WithContext(ctx).Delete(&models.Account{}, "id = ?", account.ID).Error; err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

func (s *IdentityService) IssueToken(account models.Account) (string, error) {
	email := ""
	if account.Email != nil {
		email = *account.Email
	}

	claims := jwt.MapClaims{
		"user_id":   account.ID,
		"email":     email,
		"anonymous": account.IsAnonymous,
		"providers": []string{account.Provider},
		"exp":       s.now().Add(tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// ParseToken verifies a token issued by IssueToken and returns its session.
func (s *IdentityService) ParseToken(tokenString string) (*models.Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, newCommandError(ErrUnauthorized, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, newCommandError(ErrUnauthorized, "Invalid token claims")
	}
	return SessionFromClaims(claims)
}

// SessionFromClaims builds the session carried by a verified token.
func SessionFromClaims(claims jwt.MapClaims) (*models.Session, error) {
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, newCommandError(ErrUnauthorized, "Invalid token claims")
	}

	session := &models.Session{UserID: userID}
	session.Email, _ = claims["email"].(string)
	session.IsAnonymous, _ = claims["anonymous"].(bool)

	switch providers := claims["providers"].(type) {
	case []interface{}:
		for _, p := range providers {
			if name, ok := p.(string); ok {
				session.Providers = append(session.Providers, name)
			}
		}
	case []string:
		session.Providers = providers
	}
	return session, nil
}
