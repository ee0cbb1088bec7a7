package services

import (
	"context"

	"gorm.io/gorm"
)

// Storage scopes a unit of work to one connection. *db.Store satisfies it.
type Storage interface {
	Conn(ctx context.Context, fn func(tx *gorm.DB) error) error
}
