package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound           = errors.New("account not found")
	ErrEmailTaken         = errors.New("email is already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// BcryptCost is the cost factor for bcrypt password hashing.
const BcryptCost = 12

// Roles an account may hold. Every account gets RoleUser.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Account is a registered identity. Its ID is what events reference as their
// manager.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Roles        []string
	CreatedAt    time.Time
}

// CreateParams contains parameters for registering a new account.
type CreateParams struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Roles    []string
}

type Repository interface {
	Create(ctx context.Context, account Account) (Account, error)
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByID(ctx context.Context, id string) (Account, error)
}

// Service handles account registration and credential authentication.
type Service struct {
	repo     Repository
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With().Str("component", "accounts").Logger(),
	}
}

// Create registers a new account with a bcrypt-hashed password.
func (s *Service) Create(ctx context.Context, params CreateParams) (Account, error) {
	if err := s.validate.Struct(params); err != nil {
		return Account{}, fmt.Errorf("invalid account params: %w", err)
	}

	_, err := s.repo.GetByEmail(ctx, params.Email)
	if err == nil {
		return Account{}, ErrEmailTaken
	}
	if !errors.Is(err, ErrNotFound) {
		return Account{}, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), BcryptCost)
	if err != nil {
		return Account{}, fmt.Errorf("hash password: %w", err)
	}

	roles := params.Roles
	if len(roles) == 0 {
		roles = []string{RoleUser}
	}

	account, err := s.repo.Create(ctx, Account{
		ID:           uuid.NewString(),
		Email:        params.Email,
		PasswordHash: string(hash),
		Roles:        roles,
	})
	if err != nil {
		return Account{}, fmt.Errorf("create account: %w", err)
	}

	s.logger.Info().Str("account_id", account.ID).Msg("account created")
	return account, nil
}

// Authenticate verifies an email/password pair. Lookup failures and password
// mismatches collapse into ErrInvalidCredentials so callers cannot probe for
// registered emails.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Account, error) {
	account, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return Account{}, ErrInvalidCredentials
	}
	if err != nil {
		return Account{}, fmt.Errorf("find account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return Account{}, ErrInvalidCredentials
	}
	return account, nil
}

// Get fetches an account by id.
func (s *Service) Get(ctx context.Context, id string) (Account, error) {
	return s.repo.GetByID(ctx, id)
}
