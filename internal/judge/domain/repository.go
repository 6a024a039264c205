package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/judgefinder/platform/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	State      string
	CourtID    *snowflake.ID
	ActiveOnly bool
}

// Repository persists judge aggregates. Positions are upserted, never
// deleted, preserving assignment history.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, judge *Judge) error
	Update(ctx context.Context, db *gorm.DB, judge *Judge) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Judge, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Judge, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*Judge, error)
}
