// Package services contains the server-side business logic. This file
// implements UserService: the identity store operations plus the session
// issuer (credential check and JWT minting).
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/dbx"
	"github.com/dmitrijs2005/taskboard/internal/server/auth"
	"github.com/dmitrijs2005/taskboard/internal/server/config"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/policy"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/repomanager"
)

// LoginResult bundles the signed session token with a summary of the user
// it was issued to.
type LoginResult struct {
	Token string
	User  *models.User
}

// UpdateUserInput carries a partial update of a user record. Nil fields are
// left unchanged.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Status   *models.Status
}

// UserService provides identity operations:
//   - Register / EnsureSeedAdmin: create users
//   - Login: verify credentials and mint a session token
//   - staff management (list/create/update/delete), admin only
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Register creates a new user with the given role (STAFF when empty).
// Fails with common.ErrDuplicateEmail when the email is taken.
func (s *UserService) Register(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	if role == "" {
		role = models.RoleStaff
	}
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, common.ErrValidation
	}
	if !models.ValidRole(role) {
		return nil, common.ErrValidation
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, common.ErrInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       models.StatusActive,
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies credentials and issues a session token. An unknown email
// and a wrong password both map to common.ErrInvalidCredentials so callers
// cannot enumerate accounts; inactive accounts fail with
// common.ErrAccountInactive regardless of the password.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrInternal
	}

	if user.Status != models.StatusActive {
		return nil, common.ErrAccountInactive
	}

	if !checkPassword(user.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Role, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, common.ErrInternal
	}

	return &LoginResult{Token: token, User: user}, nil
}

// Me returns the acting user's own record.
func (s *UserService) Me(ctx context.Context, actor models.Actor) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}
	return user, nil
}

// ListStaff returns all STAFF users. Admin only.
func (s *UserService) ListStaff(ctx context.Context, actor models.Actor) ([]models.User, error) {
	if !policy.CanManageStaff(actor) {
		return nil, common.ErrForbidden
	}
	staff, err := s.repomanager.Users(s.db).ListByRole(ctx, models.RoleStaff)
	if err != nil {
		return nil, fmt.Errorf("error listing staff: %w", err)
	}
	return staff, nil
}

// CreateStaff creates an ACTIVE STAFF user. Admin only.
func (s *UserService) CreateStaff(ctx context.Context, actor models.Actor, name, email, password string) (*models.User, error) {
	if !policy.CanManageStaff(actor) {
		return nil, common.ErrForbidden
	}
	return s.Register(ctx, name, email, password, models.RoleStaff)
}

// UpdateUser applies a partial update to a user record. Admin only.
// Changing status to INACTIVE does not revoke already-issued tokens; the
// staleness window is bounded by the token validity duration.
func (s *UserService) UpdateUser(ctx context.Context, actor models.Actor, id string, input UpdateUserInput) (*models.User, error) {
	if !policy.CanManageStaff(actor) {
		return nil, common.ErrForbidden
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, common.ErrValidation
		}
		user.Name = *input.Name
	}
	if input.Email != nil {
		if strings.TrimSpace(*input.Email) == "" {
			return nil, common.ErrValidation
		}
		user.Email = *input.Email
	}
	if input.Password != nil {
		if *input.Password == "" {
			return nil, common.ErrValidation
		}
		hash, err := hashPassword(*input.Password)
		if err != nil {
			return nil, common.ErrInternal
		}
		user.PasswordHash = hash
	}
	if input.Status != nil {
		if !models.ValidStatus(*input.Status) {
			return nil, common.ErrValidation
		}
		user.Status = *input.Status
	}

	updated, err := repo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) || errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return updated, nil
}

// DeleteUser removes a user and retracts them from every task's assignee
// set in a single transaction, so an interrupted delete never leaves a
// dangling assignee reference. Admin only.
func (s *UserService) DeleteUser(ctx context.Context, actor models.Actor, id string) error {
	if !policy.CanManageStaff(actor) {
		return common.ErrForbidden
	}

	if _, err := s.repomanager.Users(s.db).GetByID(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return common.ErrInternal
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Tasks(tx).RetractAssignee(ctx, id); err != nil {
			return fmt.Errorf("error retracting assignee: %w", err)
		}
		if err := s.repomanager.Users(tx).Delete(ctx, id); err != nil {
			return fmt.Errorf("error deleting user: %w", err)
		}
		return nil
	})
}

// EnsureSeedAdmin creates the bootstrap ADMIN account when the email is not
// registered yet. A blank email disables seeding.
func (s *UserService) EnsureSeedAdmin(ctx context.Context, name, email, password string) error {
	if email == "" {
		return nil
	}

	_, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("error checking seed admin: %w", err)
	}

	if _, err := s.Register(ctx, name, email, password, models.RoleAdmin); err != nil {
		return fmt.Errorf("error creating seed admin: %w", err)
	}
	return nil
}
