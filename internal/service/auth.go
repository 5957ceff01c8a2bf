package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"personal-workspace/internal/domain"
	"personal-workspace/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthService registers users and manages login sessions.
// A session lives in the SessionRepository; the browser only holds a signed
// token naming the session id.
type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	activity    ActivityRecorder
	secret      []byte
	sessionTTL  time.Duration
}

// NewAuthService creates an AuthService. secret signs the session token and
// must not be empty; sessionTTLHours <= 0 falls back to 24 hours.
func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, activity ActivityRecorder, secret string, sessionTTLHours int) (*AuthService, error) {
	if userRepo == nil || sessionRepo == nil {
		panic("UserRepository and SessionRepository cannot be nil for AuthService")
	}
	if activity == nil {
		activity = NopActivityRecorder{}
	}
	if secret == "" {
		return nil, fmt.Errorf("session secret cannot be empty")
	}
	if sessionTTLHours <= 0 {
		sessionTTLHours = 24
	}
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		activity:    activity,
		secret:      []byte(secret),
		sessionTTL:  time.Duration(sessionTTLHours) * time.Hour,
	}, nil
}

// SessionTTL is how long a login stays valid.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Register creates an account. The returned user has no password hash.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	logCtx := logrus.WithField("username", username)

	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	existing, err := s.userRepo.FindByUsername(ctx, username)
	switch {
	case err == nil && existing != nil:
		logCtx.Warn("Registration rejected: username already exists")
		return nil, ErrUsernameTaken
	case err != nil && !errors.Is(err, repository.ErrUserNotFound):
		logCtx.WithError(err).Error("Failed to look up username during registration")
		return nil, ErrStoreUnavailable
	}

	hashed, err := hashPassword(password)
	if err != nil {
		logCtx.WithError(err).Error("Failed to hash password during registration")
		return nil, ErrStoreUnavailable
	}

	user := &domain.User{Username: username, Password: hashed}
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Another request may have taken the name between the lookup and the insert.
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.WithError(err).Warn("Registration rejected: duplicate username on insert")
			return nil, ErrUsernameTaken
		}
		logCtx.WithError(err).Error("Database error during user creation")
		return nil, ErrStoreUnavailable
	}

	identity := domain.Identity{UserID: user.ID, Username: user.Username}
	s.activity.Record(ctx, newActivity(identity, domain.ActivityUserRegistered, user.ID, ""))

	logCtx.WithField("user_id", user.ID).Info("User registered successfully")
	user.Password = ""
	return user, nil
}

// Login verifies credentials, opens a session and returns the signed session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, domain.Identity, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	logCtx := logrus.WithField("username", username)

	if username == "" || password == "" {
		return "", domain.Identity{}, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("Login attempt failed: user not found")
			return "", domain.Identity{}, ErrAuthenticationFailed
		}
		logCtx.WithError(err).Error("Login attempt failed: error finding user")
		return "", domain.Identity{}, ErrStoreUnavailable
	}
	if user == nil {
		return "", domain.Identity{}, ErrAuthenticationFailed
	}

	if !checkPassword(password, user.Password) {
		logCtx.Warn("Login attempt failed: invalid password")
		return "", domain.Identity{}, ErrAuthenticationFailed
	}

	identity := domain.Identity{UserID: user.ID, Username: user.Username}
	session := repository.Session{
		ID:        uuid.NewString(),
		Identity:  identity,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sessionRepo.Create(ctx, session, s.sessionTTL); err != nil {
		logCtx.WithError(err).Error("Failed to store session")
		return "", domain.Identity{}, ErrStoreUnavailable
	}

	token, err := s.signSessionToken(session)
	if err != nil {
		logCtx.WithError(err).Error("Failed to sign session token")
		return "", domain.Identity{}, ErrStoreUnavailable
	}

	logCtx.WithField("user_id", user.ID).Info("User logged in successfully")
	return token, identity, nil
}

// Authenticate resolves a session token to the identity that owns it.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	claims, err := s.parseSessionToken(token)
	if err != nil {
		logrus.WithError(err).Debug("Rejected session token")
		return domain.Identity{}, ErrUnauthenticated
	}

	session, err := s.sessionRepo.Find(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return domain.Identity{}, ErrUnauthenticated
		}
		logrus.WithError(err).WithField("session_id", claims.SessionID).Error("Failed to load session")
		return domain.Identity{}, ErrStoreUnavailable
	}
	if session.Identity.UserID != claims.UserID {
		logrus.WithFields(logrus.Fields{
			"session_id":    claims.SessionID,
			"token_user_id": claims.UserID,
		}).Warn("Session token does not match stored session")
		return domain.Identity{}, ErrUnauthenticated
	}
	return session.Identity, nil
}

// Logout drops the session behind the token. Invalid or expired tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.parseSessionToken(token)
	if err != nil {
		return nil
	}
	if err := s.sessionRepo.Delete(ctx, claims.SessionID); err != nil {
		logrus.WithError(err).WithField("session_id", claims.SessionID).Error("Failed to delete session")
		return ErrStoreUnavailable
	}
	logrus.WithField("user_id", claims.UserID).Info("User logged out")
	return nil
}

// sessionClaims is the payload of the session cookie.
type sessionClaims struct {
	SessionID string `json:"sid"`
	UserID    uint   `json:"user_id"`
	jwt.RegisteredClaims
}

func (s *AuthService) signSessionToken(session repository.Session) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		SessionID: session.ID,
		UserID:    session.Identity.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) parseSessionToken(token string) (*sessionClaims, error) {
	if token == "" {
		return nil, jwt.ErrTokenMalformed
	}
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if !parsed.Valid || claims.SessionID == "" {
		return nil, errors.New("invalid token or claims")
	}
	return claims, nil
}

// hashPassword hashes a password with bcrypt.
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to generate hash from password: %w", err)
	}
	return string(bytes), nil
}

// checkPassword reports whether password matches the stored hash.
func checkPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
