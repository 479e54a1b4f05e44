package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/caribelotto/results-backend/internal/apperrors"
	"github.com/caribelotto/results-backend/internal/models"
	"github.com/caribelotto/results-backend/internal/repositories"
)

// AccountService manages backend accounts. Creating an account does not
// grant the admin role; that stays with the configured allow-list.
type AccountService struct {
	repo repositories.AccountRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(repo repositories.AccountRepository) *AccountService {
	return &AccountService{repo: repo}
}

// Register creates an account with a bcrypt password hash.
func (s *AccountService) Register(ctx context.Context, req *models.RegisterRequest) (*models.Account, error) {
	_, err := s.repo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, apperrors.MalformedPayload("an account with this email already exists")
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.Internal(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	account := &models.Account{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashed),
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, apperrors.Internal(err)
	}

	account.Password = ""
	return account, nil
}

// List returns all accounts with password hashes blanked.
func (s *AccountService) List(ctx context.Context) ([]*models.Account, error) {
	accounts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	for _, account := range accounts {
		account.Password = ""
	}
	return accounts, nil
}
