package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/liftlink/backend/internal/domain"
	"github.com/liftlink/backend/internal/repository"
	"github.com/liftlink/backend/internal/university"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/argon2"
)

var (
	ErrEmailTaken      = errors.New("an account with this email already exists")
	ErrInvalidCreds    = errors.New("invalid email or password")
	ErrInvalidCode     = errors.New("invalid verification code")
	ErrAlreadyVerified = errors.New("email is already verified")
)

// Mailer is the outbound email collaborator. Delivery failures on the
// interest path are swallowed by callers; the verification path
// surfaces them where the original flow did.
type Mailer interface {
	SendVerificationEmail(to, code string) error
	SendInterestNotification(to, senderName, kind string, sessionTitle *string) error
}

type AuthService struct {
	userRepo   repository.UserRepository
	mailer     Mailer
	jwtSecret  []byte
	tokenTTL   time.Duration
	autoVerify bool
	log        zerolog.Logger
}

func NewAuthService(userRepo repository.UserRepository, mailer Mailer, jwtSecret string, tokenTTL time.Duration, autoVerify bool, log zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		mailer:     mailer,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		autoVerify: autoVerify,
		log:        log,
	}
}

type SignupInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Gender   string `json:"gender"`
	Age      int    `json:"age"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupResult struct {
	UserID   uuid.UUID `json:"user_id"`
	Verified bool      `json:"verified"`
}

type AuthResponse struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

// Signup creates an unverified account. The tenancy code is derived
// from the email domain here and never changes afterwards.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*SignupResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	code, err := university.Resolve(email)
	if err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:              uuid.New(),
		Email:           email,
		PasswordHash:    hash,
		Gender:          input.Gender,
		Age:             input.Age,
		University:      code,
		ExperienceLevel: domain.ExperienceBeginner,
		FitnessTags:     []string{},
		Verified:        s.autoVerify,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var verificationCode string
	if !s.autoVerify {
		verificationCode, err = generateVerificationCode()
		if err != nil {
			return nil, fmt.Errorf("generating verification code: %w", err)
		}
		user.VerificationCode = &verificationCode
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	if !s.autoVerify && s.mailer != nil {
		if err := s.mailer.SendVerificationEmail(user.Email, verificationCode); err != nil {
			// Signup still succeeds; the code can be resent.
			s.log.Warn().Err(err).Str("email", user.Email).Msg("verification email failed")
		}
	}

	return &SignupResult{UserID: user.ID, Verified: user.Verified}, nil
}

// Verify matches a 6-digit code and marks the account verified.
func (s *AuthService) Verify(ctx context.Context, code string) error {
	user, err := s.userRepo.GetByVerificationCode(ctx, code)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidCode
	}
	return s.userRepo.MarkVerified(ctx, user.ID)
}

// ResendCode issues a fresh verification code to an unverified account.
func (s *AuthService) ResendCode(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.Verified {
		return ErrAlreadyVerified
	}

	code, err := generateVerificationCode()
	if err != nil {
		return fmt.Errorf("generating verification code: %w", err)
	}
	if err := s.userRepo.SetVerificationCode(ctx, user.ID, code); err != nil {
		return err
	}

	if s.mailer == nil {
		return errors.New("email delivery is not configured")
	}
	if err := s.mailer.SendVerificationEmail(user.Email, code); err != nil {
		return fmt.Errorf("sending verification email: %w", err)
	}
	return nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCreds
	}

	if !verifyPassword(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCreds
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &AuthResponse{User: user, AccessToken: token}, nil
}

// Me returns the authenticated user's own record.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"verified": user.Verified,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)

	return fmt.Sprintf("%s:%s",
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

func verifyPassword(password, encoded string) bool {
	saltB64, hashB64, ok := strings.Cut(encoded, ":")
	if !ok {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(saltB64)
	if err != nil {
		return false
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(hashB64)
	if err != nil {
		return false
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return subtle.ConstantTimeCompare(hash, expectedHash) == 1
}
