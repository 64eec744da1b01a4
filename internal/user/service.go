package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/movies-backend/config"
	"github.com/dustin/movies-backend/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrNotFound is returned when the referenced user does not exist
	ErrNotFound = errors.New("user not found")
	// ErrExists is returned when the email is already registered
	ErrExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned on bad email/password pairs
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidAvatar is returned when the avatar media is missing or not owned by the caller
	ErrInvalidAvatar = errors.New("invalid avatar media")
)

// service implements the Service interface
type service struct {
	repo         Repository
	mediaService MediaService
	jwtSecret    string
	jwtExpiry    time.Duration
	cookieName   string
	logger       *logger.Logger
}

// NewService creates a user service with JWT validation and defaults
func NewService(cfg *config.JWTConfig, repo Repository, mediaService MediaService, log *logger.Logger) (*service, error) {
	// Set defaults for nil or empty config values
	secret := "change-me-in-production"
	if cfg != nil && cfg.Secret != "" {
		secret = cfg.Secret
	}

	var expiry time.Duration = 24 * time.Hour
	if cfg != nil && cfg.Expiration != "" {
		duration, err := time.ParseDuration(cfg.Expiration)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT expiration '%s': %v", cfg.Expiration, err)
		}
		expiry = duration
	}

	cookieName := "auth_token"
	if cfg != nil && cfg.CookieName != "" {
		cookieName = cfg.CookieName
	}

	return &service{
		repo:         repo,
		mediaService: mediaService,
		jwtSecret:    secret,
		jwtExpiry:    expiry,
		cookieName:   cookieName,
		logger:       log.WithComponent("user-service"),
	}, nil
}

// Claims represents JWT claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (s *service) SignUp(name, email, password string) (*User, error) {
	s.logger.Info("User signup attempt for email: " + email)

	// Check if user exists
	existing, _ := s.repo.FindByEmail(email)
	if existing != nil {
		s.logger.Info("Signup failed - user already exists: " + email)
		return nil, ErrExists
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password for " + email + ": " + err.Error())
		return nil, err
	}

	user := &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         RoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	err = s.repo.Create(user)
	if err != nil {
		s.logger.Error("Failed to create user " + email + ": " + err.Error())
		return nil, err
	}

	s.logger.Info("User created successfully: " + email + " (ID: " + user.ID.String() + ")")

	return user, nil
}

func (s *service) Login(email, password string) (string, *User, error) {
	s.logger.Info("User login attempt for email: " + email)

	user, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Info("Login failed - user not found: " + email)
			return "", nil, ErrInvalidCredentials
		}
		s.logger.Error("Failed to look up user " + email + ": " + err.Error())
		return "", nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		s.logger.Info("Login failed - invalid password for " + email + " (ID: " + user.ID.String() + ")")
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		s.logger.Error("Failed to generate JWT token for " + email + " (ID: " + user.ID.String() + "): " + err.Error())
		return "", nil, err
	}

	s.logger.Info("User logged in successfully: " + email + " (ID: " + user.ID.String() + ")")

	return token, user, nil
}

func (s *service) GetUserByID(id uuid.UUID) (*User, error) {
	return s.repo.FindByID(id)
}

func (s *service) SetAvatar(userID, mediaID uuid.UUID) (*User, error) {
	s.logger.Info("Setting avatar " + mediaID.String() + " for user " + userID.String())

	user, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	media, err := s.mediaService.GetMedia(mediaID)
	if err != nil {
		if errors.Is(err, ErrInvalidAvatar) {
			return nil, ErrInvalidAvatar
		}
		s.logger.Error("Failed to load avatar media " + mediaID.String() + ": " + err.Error())
		return nil, err
	}
	if media.OwnerUserID != nil && *media.OwnerUserID != userID {
		return nil, ErrInvalidAvatar
	}

	user.AvatarMediaID = &mediaID
	user.UpdatedAt = time.Now()

	if err := s.repo.Update(user); err != nil {
		s.logger.Error("Failed to set avatar for user " + userID.String() + ": " + err.Error())
		return nil, err
	}

	return user, nil
}

func (s *service) ValidateToken(tokenString string) (*User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, errors.New("invalid user ID in token")
	}

	user, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, errors.New("user not found")
	}

	return user, nil
}

// CookieName returns the name of the auth cookie tokens are issued into
func (s *service) CookieName() string {
	return s.cookieName
}

// TokenTTL returns the configured token lifetime
func (s *service) TokenTTL() time.Duration {
	return s.jwtExpiry
}

func (s *service) generateToken(user *User) (string, error) {
	claims := Claims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "movies-backend",
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
