package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/judgefinder/platform/pkg/db/pagination"
	"gorm.io/gorm"
)

// ListFilter narrows placement listings.
type ListFilter struct {
	JudgeID *snowflake.ID
	Status  PlacementStatus
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, placement *Placement) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Placement, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*Placement, error)
	CountActiveExclusive(ctx context.Context, db *gorm.DB, judgeID snowflake.ID) (int64, error)
}
