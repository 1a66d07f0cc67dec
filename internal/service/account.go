package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/pulsepoint/pulsepoint-api/internal/errors"

	"github.com/pulsepoint/pulsepoint-api/internal/core"
	"github.com/pulsepoint/pulsepoint-api/internal/data"
	"github.com/pulsepoint/pulsepoint-api/internal/domain/auth"
	"github.com/pulsepoint/pulsepoint-api/internal/domain/model"
	"golang.org/x/crypto/bcrypt"
)

// minPasswordLength matches the registration forms' client-side rule.
const minPasswordLength = 8

// AccountServiceOptions groups dependencies for AccountService.
type AccountServiceOptions struct {
	Accounts core.AccountRepository
	// HashCost overrides the bcrypt cost; zero means bcrypt.DefaultCost.
	// Tests lower it to keep hashing fast.
	HashCost int
}

// AccountService handles registration and credential checks for both
// personas.
type AccountService struct {
	accounts core.AccountRepository
	hashCost int
}

// NewAccountService constructs a new AccountService.
func NewAccountService(opts AccountServiceOptions) *AccountService {
	cost := opts.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &AccountService{accounts: opts.Accounts, hashCost: cost}
}

// SignupDonor registers a donor account and returns the session identity.
func (s *AccountService) SignupDonor(ctx context.Context, signup *model.DonorSignup) (*auth.User, error) {
	if signup == nil {
		return nil, apperrors.Validation("donor signup is required")
	}
	if err := signup.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid donor signup")
	}
	if err := checkPassword(signup.Password); err != nil {
		return nil, err
	}
	if err := s.checkEmailFree(ctx, signup.Email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(signup.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acct, err := s.accounts.CreateDonor(ctx, signup, string(hash))
	if err != nil {
		return nil, mapSignupErr(err)
	}
	user := acct.User()
	return &user, nil
}

// SignupHospital registers a hospital account and returns the session identity.
func (s *AccountService) SignupHospital(ctx context.Context, signup *model.HospitalSignup) (*auth.User, error) {
	if signup == nil {
		return nil, apperrors.Validation("hospital signup is required")
	}
	if err := signup.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid hospital signup")
	}
	if err := checkPassword(signup.Password); err != nil {
		return nil, err
	}
	if err := s.checkEmailFree(ctx, signup.Email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(signup.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acct, err := s.accounts.CreateHospital(ctx, signup, string(hash))
	if err != nil {
		return nil, mapSignupErr(err)
	}
	user := acct.User()
	return &user, nil
}

// Authenticate verifies an email/password pair. A missing account and a wrong
// password both produce the same unauthorized error so callers can't probe
// which emails are registered.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*auth.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	acct, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, data.ErrAccountNotFound) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, fmt.Errorf("look up account: %w", err)
	}

	if bcryptErr := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); bcryptErr != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	user := acct.User()
	return &user, nil
}

// GetUser loads the session identity for an account ID.
func (s *AccountService) GetUser(ctx context.Context, id string) (*auth.User, error) {
	acct, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrAccountNotFound) {
			return nil, apperrors.NotFound("account not found")
		}
		return nil, fmt.Errorf("look up account: %w", err)
	}
	user := acct.User()
	return &user, nil
}

// checkEmailFree rejects a signup early when either persona already uses the
// email. The repositories re-check inside their insert transactions, so a
// race between two signups still resolves to a conflict rather than a
// shadowed login.
func (s *AccountService) checkEmailFree(ctx context.Context, email string) error {
	taken, err := s.accounts.EmailTaken(ctx, email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if taken {
		return apperrors.ConflictField("email", "email already registered")
	}
	return nil
}

func checkPassword(pw string) error {
	if len(pw) < minPasswordLength {
		return apperrors.ValidationField("password",
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	return nil
}

func mapSignupErr(err error) error {
	if errors.Is(err, data.ErrEmailExists) {
		return apperrors.ConflictField("email", "email already registered")
	}
	return fmt.Errorf("create account: %w", err)
}
