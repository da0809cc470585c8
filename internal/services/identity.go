package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"assetcore/internal/apperr"
	"assetcore/internal/auth"
	"assetcore/internal/models"
	"assetcore/internal/store"
)

// AccountRepo is the persistence contract for accounts.
type AccountRepo interface {
	Create(ctx context.Context, a *models.Account) error
	ByID(ctx context.Context, id string) (*models.Account, error)
	ByEmail(ctx context.Context, email string) (*models.Account, error)
	ListPending(ctx context.Context) ([]models.Account, error)
	ListAll(ctx context.Context) ([]models.Account, error)
	Save(ctx context.Context, a *models.Account) error
	Delete(ctx context.Context, id string) error
}

type IdentityService struct {
	accounts    AccountRepo
	tokens      auth.Tokens
	audit       *AuditService
	adminSecret string
}

func NewIdentity(accounts AccountRepo, tokens auth.Tokens, audit *AuditService, adminSecret string) *IdentityService {
	return &IdentityService{accounts: accounts, tokens: tokens, audit: audit, adminSecret: adminSecret}
}

// AccountByID satisfies auth.AccountSource for the bearer middleware.
func (s *IdentityService) AccountByID(ctx context.Context, id string) (*models.Account, error) {
	return s.accounts.ByID(ctx, id)
}

type RegisterRequest struct {
	Surname      string    `json:"surname" validate:"required"`
	FirstName    string    `json:"first_name" validate:"required"`
	MiddleName   *string   `json:"middle_name"`
	Email        string    `json:"email" validate:"required,email"`
	Password     string    `json:"password" validate:"required,min=6"`
	Position     string    `json:"position" validate:"required"`
	SalaryGrade  string    `json:"salary_grade" validate:"required"`
	StartingDate time.Time `json:"starting_date" validate:"required"`
	JobCategory  string    `json:"job_category" validate:"required"`
	AssignedUnit string    `json:"assigned_unit" validate:"required"`
}

// Register creates a pending user account. Approval is a separate admin
// action; the account cannot authenticate until then.
func (s *IdentityService) Register(ctx context.Context, req RegisterRequest) (*models.Account, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if existing, err := s.accounts.ByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperr.New(apperr.Conflict, "Email already registered")
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Could not hash password", err)
	}
	now := time.Now().UTC()
	acct := &models.Account{
		Surname:      req.Surname,
		FirstName:    req.FirstName,
		MiddleName:   req.MiddleName,
		Email:        email,
		PasswordHash: hash,
		Position:     req.Position,
		SalaryGrade:  req.SalaryGrade,
		StartingDate: req.StartingDate,
		JobCategory:  req.JobCategory,
		AssignedUnit: req.AssignedUnit,
		Role:         models.RoleUser,
		IsApproved:   false,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.accounts.Create(ctx, acct); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.New(apperr.Conflict, "Email already registered")
		}
		return nil, apperr.Wrap(apperr.Internal, "Could not create account", err)
	}
	return acct, nil
}

type AdminRegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	AdminKey string `json:"admin_key" validate:"required"`
}

// RegisterAdmin creates an auto-approved administrator. The shared admin
// secret gates the endpoint; employment metadata is fixed boilerplate.
func (s *IdentityService) RegisterAdmin(ctx context.Context, req AdminRegisterRequest) (*models.Account, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}
	if req.AdminKey != s.adminSecret {
		return nil, apperr.New(apperr.Forbidden, "Invalid admin key")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if existing, err := s.accounts.ByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperr.New(apperr.Conflict, "Email already registered")
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Could not hash password", err)
	}
	now := time.Now().UTC()
	acct := &models.Account{
		Surname:      "Admin",
		FirstName:    "System",
		Email:        email,
		PasswordHash: hash,
		Position:     "System Administrator",
		SalaryGrade:  "SG 30",
		StartingDate: now,
		JobCategory:  "Regular Employee",
		AssignedUnit: "Office of the Exec. Director",
		Role:         models.RoleAdmin,
		IsApproved:   true,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.accounts.Create(ctx, acct); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.New(apperr.Conflict, "Email already registered")
		}
		return nil, apperr.Wrap(apperr.Internal, "Could not create account", err)
	}
	return acct, nil
}

// Login authenticates and issues a bearer token. Admins bypass the approval
// gate; everyone else must have been approved.
func (s *IdentityService) Login(ctx context.Context, email, password string) (string, *models.Account, error) {
	acct, err := s.accounts.ByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, apperr.New(apperr.Unauthorized, "Invalid email or password")
		}
		return "", nil, apperr.Wrap(apperr.Internal, "Could not load account", err)
	}
	if err := auth.CheckPassword(acct.PasswordHash, password); err != nil {
		return "", nil, apperr.New(apperr.Unauthorized, "Invalid email or password")
	}
	if !acct.IsActive {
		return "", nil, apperr.New(apperr.Forbidden, "Account is inactive. Please contact administrator.")
	}
	if !acct.IsAdmin() && !acct.IsApproved {
		return "", nil, apperr.New(apperr.Forbidden, "Your account is pending admin approval. Please wait for approval before logging in.")
	}
	token, err := s.tokens.Sign(acct.ID, acct.Role)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.Internal, "Could not issue token", err)
	}
	return token, acct, nil
}

// Approve flips is_approved exactly once.
func (s *IdentityService) Approve(ctx context.Context, actor *models.Account, accountID string) (*models.Account, error) {
	acct, err := s.accounts.ByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "Could not load account", err)
	}
	if acct.IsApproved {
		return nil, apperr.New(apperr.BadRequest, "User is already approved")
	}
	acct.IsApproved = true
	acct.UpdatedAt = time.Now().UTC()
	if err := s.accounts.Save(ctx, acct); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Could not save account", err)
	}
	s.audit.Record(ctx, actor, models.AuditApprove, models.ResourceUser, acct.ID, acct.FullName(),
		map[string]any{"is_approved": true},
		map[string]any{"is_approved": false},
		map[string]any{"is_approved": true},
	)
	return acct, nil
}

// Reject deletes a pending account.
func (s *IdentityService) Reject(ctx context.Context, actor *models.Account, accountID string) error {
	acct, err := s.accounts.ByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.New(apperr.NotFound, "User not found")
		}
		return apperr.Wrap(apperr.Internal, "Could not load account", err)
	}
	if err := s.accounts.Delete(ctx, acct.ID); err != nil {
		return apperr.Wrap(apperr.Internal, "Could not delete account", err)
	}
	s.audit.Record(ctx, actor, models.AuditReject, models.ResourceUser, acct.ID, acct.FullName(),
		map[string]any{"rejected": true},
		map[string]any{"email": acct.Email, "full_name": acct.FullName()},
		nil,
	)
	return nil
}

// Deactivate blocks an account from authenticating. Admin accounts cannot be
// deactivated.
func (s *IdentityService) Deactivate(ctx context.Context, accountID string) error {
	acct, err := s.accounts.ByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.New(apperr.NotFound, "User not found")
		}
		return apperr.Wrap(apperr.Internal, "Could not load account", err)
	}
	if acct.IsAdmin() {
		return apperr.New(apperr.Forbidden, "Cannot deactivate admin accounts")
	}
	acct.IsActive = false
	acct.UpdatedAt = time.Now().UTC()
	if err := s.accounts.Save(ctx, acct); err != nil {
		return apperr.Wrap(apperr.Internal, "Could not save account", err)
	}
	return nil
}

func (s *IdentityService) ListPending(ctx context.Context) ([]models.Account, error) {
	return s.accounts.ListPending(ctx)
}

func (s *IdentityService) ListAll(ctx context.Context) ([]models.Account, error) {
	return s.accounts.ListAll(ctx)
}
