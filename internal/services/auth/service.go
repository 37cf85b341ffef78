package auth

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"comanda/internal/apperr"
	"comanda/internal/logger"
	"comanda/internal/models"
	"comanda/internal/token"
)

// AccountStore is the persistence surface the identity component needs.
type AccountStore interface {
	Insert(ctx context.Context, acc *models.Account) error
	ByEmail(ctx context.Context, email string) (*models.Account, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
	UpdateRole(ctx context.Context, id primitive.ObjectID, role models.Role) error
}

// Service implements registration, credential checks, token issuing and the
// role toggle.
type Service struct {
	accounts AccountStore
	tokens   *token.Manager
	logger   *logger.Logger
}

func NewService(accounts AccountStore, tokens *token.Manager, log *logger.Logger) *Service {
	return &Service{
		accounts: accounts,
		tokens:   tokens,
		logger:   log,
	}
}

// Register stores a new waiter account with a one-way hash of the password.
func (s *Service) Register(ctx context.Context, email, password string) (*models.Account, error) {
	if email == "" || password == "" {
		return nil, apperr.New(apperr.Validation, "email and password are required")
	}

	if _, err := s.accounts.ByEmail(ctx, email); err == nil {
		return nil, apperr.New(apperr.Conflict, "email already registered")
	} else if !apperr.IsKind(err, apperr.NotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to hash password", err)
	}

	acc := &models.Account{
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleWaiter,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.accounts.Insert(ctx, acc); err != nil {
		return nil, err
	}

	s.logger.Info("account_registered", "", "Account registered", map[string]any{"email": email})
	return acc, nil
}

// Login verifies credentials and issues a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.Account, error) {
	acc, err := s.accounts.ByEmail(ctx, email)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			return "", nil, apperr.New(apperr.Auth, "Invalid credentials")
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return "", nil, apperr.New(apperr.Auth, "Invalid credentials")
	}

	tok, err := s.tokens.Sign(acc)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.Internal, "failed to sign token", err)
	}

	return tok, acc.Public(), nil
}

// AdminLogin is Login restricted to admin-capable accounts.
func (s *Service) AdminLogin(ctx context.Context, email, password string) (string, *models.Account, error) {
	tok, acc, err := s.Login(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	if acc.Role != models.RoleAdmin {
		return "", nil, apperr.New(apperr.Forbidden, "admin access required")
	}
	return tok, acc, nil
}

// ToggleRole flips an account between waiter and admin.
func (s *Service) ToggleRole(ctx context.Context, id string) (*models.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "invalid account id")
	}

	acc, err := s.accounts.ByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	acc.Role = acc.Role.Toggle()
	if err := s.accounts.UpdateRole(ctx, oid, acc.Role); err != nil {
		return nil, err
	}

	s.logger.Info("role_toggled", "", "Account role toggled", map[string]any{
		"account_id": id,
		"role":       acc.Role,
	})
	return acc, nil
}

// List returns all accounts, public fields only.
func (s *Service) List(ctx context.Context) ([]models.Account, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		accounts[i].PasswordHash = ""
	}
	return accounts, nil
}

// Get returns one account by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "invalid account id")
	}
	acc, err := s.accounts.ByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	return acc.Public(), nil
}

// GetByEmail returns one account by email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	if email == "" {
		return nil, apperr.New(apperr.Validation, "email is required")
	}
	acc, err := s.accounts.ByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return acc.Public(), nil
}
