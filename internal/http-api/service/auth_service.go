package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/perenos/yamdb-final/internal/config"
	"github.com/perenos/yamdb-final/internal/http-api/models"
	"github.com/perenos/yamdb-final/internal/http-api/repository"
	"github.com/perenos/yamdb-final/internal/mailer"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// usernamePattern is the accepted username alphabet: word characters plus
// the literal . @ + - set.
var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

type AuthService interface {
	// SignUp validates the identity pair, creates or reuses the user
	// record, and dispatches a fresh one-time confirmation code.
	SignUp(ctx context.Context, username, email string) (*models.User, error)
	// IssueToken exchanges a confirmation code for a bearer token and
	// invalidates the code.
	IssueToken(ctx context.Context, username, code string) (string, error)
	// Authenticate verifies a bearer token and resolves the current user
	// record so role and ownership checks always see fresh state.
	Authenticate(ctx context.Context, tokenString string) (*models.User, error)
}

type authService struct {
	userRepo       repository.UserRepository
	mail           mailer.Mailer
	jwtSecret      string
	accessTokenTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, mail mailer.Mailer, cfg *config.Config) AuthService {
	return &authService{
		userRepo:       userRepo,
		mail:           mail,
		jwtSecret:      cfg.JWTSecret,
		accessTokenTTL: cfg.AccessTokenTTL,
	}
}

// ValidateUsername enforces the username alphabet and rejects the reserved
// literal "me" (any case), which would collide with the /users/me route.
func ValidateUsername(username string) error {
	if strings.EqualFold(username, "me") {
		return ErrReservedUsername
	}
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

func (s *authService) SignUp(ctx context.Context, username, email string) (*models.User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}

	byName, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	byEmail, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	var user *models.User
	switch {
	case byName != nil && byName.Email == email:
		// exact existing pair: reuse the identity, reissue a code
		user = byName
	case byName == nil && byEmail == nil:
		user = &models.User{
			Username: username,
			Email:    email,
			Role:     models.RoleUser,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			// a racing signup may have claimed either value first
			if errors.Is(err, repository.ErrConflict) {
				return nil, ErrCredentialsTaken
			}
			return nil, err
		}
	default:
		// either value is already bound to a different pairing
		return nil, ErrCredentialsTaken
	}

	code := uuid.New().String()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashed := string(hash)
	user.ConfirmationCode = &hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := s.mail.SendConfirmationCode(user.Email, user.Username, code); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) IssueToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", err // repository.ErrNotFound maps to 404
	}

	if user.ConfirmationCode == nil {
		return "", ErrInvalidCode
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.ConfirmationCode), []byte(code)); err != nil {
		return "", ErrInvalidCode
	}

	// one-time use: the code dies with the exchange, re-signup issues a new one
	user.ConfirmationCode = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", err
	}

	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      time.Now().Add(s.accessTokenTTL).Unix(),
		"iat":      time.Now().Unix(),
		"type":     "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		// deleted accounts invalidate their outstanding tokens
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}
