package users

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/server/models"
)

// Repository is the identity store contract. Not-found lookups return
// common.ErrNotFound; email uniqueness violations return
// common.ErrDuplicateEmail.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id string) error
}
