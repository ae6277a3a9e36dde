package repository

import (
	"context"

	"github.com/kairos-ev/ordertrack/internal/domain/model"
)

// UserRepository describes persistence operations for portal accounts.
type UserRepository interface {
	Create(ctx context.Context, login, passwordHash, fullName string, role model.Role) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}
