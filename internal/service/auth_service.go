package service

import (
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/repository"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const (
	minNameLength     = 2
	minPasswordLength = 6

	// Bounds for the username and code collision loops.
	maxUsernameProbes = 1000
	maxCodeAttempts   = 100

	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // no 0/O, 1/I
	codeLength   = 4
)

var (
	whitespaceRun    = regexp.MustCompile(`\s+`)
	usernameStripper = regexp.MustCompile(`[^a-z0-9_]`)
)

// AuthResult is what a successful signup or login hands back to the caller.
type AuthResult struct {
	Token      string
	User       *domain.User
	Code       string // role profile code, set on signup
	RedirectTo string
}

type AuthService interface {
	Signup(ctx context.Context, name, email, password string, role domain.Role) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetJWTSecret() string
}

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	coachRepo     repository.CoachProfileRepository
	clientRepo    repository.ClientProfileRepository
	validate      *validator.Validate
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(
	userRepo repository.UserRepository,
	coachRepo repository.CoachProfileRepository,
	clientRepo repository.ClientProfileRepository,
	jwtSecret string,
	jwtExpiration time.Duration,
) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty")
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 24 * time.Hour
	}
	return &authService{
		userRepo:      userRepo,
		coachRepo:     coachRepo,
		clientRepo:    clientRepo,
		validate:      validator.New(),
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Signup provisions a user and its role profile, then signs the user in.
func (s *authService) Signup(ctx context.Context, name, email, password string, role domain.Role) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if len([]rune(name)) < minNameLength {
		return nil, validationError("name must be at least %d characters long", minNameLength)
	}
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, validationError("please enter a valid email")
	}
	if len(password) < minPasswordLength {
		return nil, validationError("password must be at least %d characters long", minPasswordLength)
	}
	if !role.Valid() {
		return nil, validationError("role must be %s or %s", domain.RoleCoach, domain.RoleClient)
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, dbError("check email", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, internalError("hash password", err)
	}

	username, err := s.availableUsername(ctx, BaseUsername(name))
	if err != nil {
		return nil, err
	}
	code, err := s.availableCode(ctx, role)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		Username:     username,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}
	if _, err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			// Lost a race on either unique index
			if _, lookupErr := s.userRepo.GetByEmail(ctx, email); lookupErr == nil {
				return nil, ErrDuplicateEmail
			}
			return nil, ErrUsernameUnavailable
		}
		return nil, dbError("create account", err)
	}

	if err := s.createProfile(ctx, user, code); err != nil {
		// No multi-document transaction here; undo the user row instead.
		if delErr := s.userRepo.Delete(ctx, user.ID); delErr != nil {
			log.Printf("ERROR: Signup rollback failed for user %s: %v", user.ID.Hex(), delErr)
		}
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrCodeUnavailable
		}
		return nil, dbError("create profile", err)
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return &AuthResult{Token: token, User: user, Code: code, RedirectTo: role.HomePath()}, nil
}

func (s *authService) createProfile(ctx context.Context, user *domain.User, code string) error {
	if user.Role == domain.RoleCoach {
		_, err := s.coachRepo.Create(ctx, &domain.CoachProfile{UserID: user.ID, Code: code})
		return err
	}
	_, err := s.clientRepo.Create(ctx, &domain.ClientProfile{UserID: user.ID, Code: code})
	return err
}

// BaseUsername derives the username stem from a display name: lower-cased,
// whitespace runs replaced by "_", anything outside [a-z0-9_] dropped.
func BaseUsername(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = whitespaceRun.ReplaceAllString(base, "_")
	base = usernameStripper.ReplaceAllString(base, "")
	if base == "" {
		return "user"
	}
	return base
}

// availableUsername probes base, base_1, base_2, ... for a free username.
func (s *authService) availableUsername(ctx context.Context, base string) (string, error) {
	for i := 0; i < maxUsernameProbes; i++ {
		candidate := base
		if i > 0 {
			candidate = fmt.Sprintf("%s_%d", base, i)
		}
		taken, err := s.userRepo.UsernameExists(ctx, candidate)
		if err != nil {
			return "", dbError("check username", err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrUsernameUnavailable
}

// availableCode rolls codes until one is free in the role's profile table.
func (s *authService) availableCode(ctx context.Context, role domain.Role) (string, error) {
	exists := s.clientRepo.CodeExists
	if role == domain.RoleCoach {
		exists = s.coachRepo.CodeExists
	}
	for i := 0; i < maxCodeAttempts; i++ {
		code, err := GenerateCode(role)
		if err != nil {
			return "", internalError("generate profile code", err)
		}
		taken, err := exists(ctx, code)
		if err != nil {
			return "", dbError("check profile code", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeUnavailable
}

// GenerateCode returns the role prefix followed by four random symbols.
func GenerateCode(role domain.Role) (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	var sb strings.Builder
	sb.WriteString(role.CodePrefix())
	for _, b := range buf {
		// 256 is a multiple of len(codeAlphabet), so this stays uniform
		sb.WriteByte(codeAlphabet[int(b)%len(codeAlphabet)])
	}
	return sb.String(), nil
}

// Login handles user authentication and JWT generation.
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, validationError("email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, dbError("load account", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrAuthenticationFailed
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return &AuthResult{Token: token, User: user, RedirectTo: user.Role.HomePath()}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := &jwtClaims{
		UserID: user.ID.Hex(),
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "coach-app",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}

// ActorFromClaims is the inverse of generateJWT's payload. It is used by
// the HTTP middleware once the signature has been verified.
func ActorFromClaims(userID string, role domain.Role) (domain.Actor, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil || !role.Valid() {
		return domain.Actor{}, newError(ErrUnauthorized, "invalid session")
	}
	return domain.Actor{UserID: id, Role: role}, nil
}
