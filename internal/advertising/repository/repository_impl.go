// Package repository persists attorney ad placements over gorm.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/judgefinder/platform/internal/advertising/domain"
	"github.com/judgefinder/platform/pkg/db/pagination"
	"github.com/judgefinder/platform/pkg/money"
	"gorm.io/gorm"
)

// PlacementRecord is the ad_placements table row.
type PlacementRecord struct {
	ID              snowflake.ID `gorm:"primaryKey"`
	JudgeID         snowflake.ID `gorm:"not null;index"`
	AttorneyName    string       `gorm:"type:text;not null"`
	BarNumber       string       `gorm:"type:text;not null"`
	Tier            string       `gorm:"type:text;not null"`
	Exclusive       bool         `gorm:"not null;default:false"`
	BundleSize      int          `gorm:"not null"`
	DurationMonths  int          `gorm:"not null"`
	FinalPriceCents int64        `gorm:"not null"`
	Currency        string       `gorm:"type:text;not null"`
	Status          string       `gorm:"type:text;not null;index"`
	StartsAt        time.Time    `gorm:"not null"`
	CreatedAt       time.Time    `gorm:"not null"`
	UpdatedAt       time.Time    `gorm:"not null"`
}

// TableName sets the database table name.
func (PlacementRecord) TableName() string { return "ad_placements" }

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, placement *domain.Placement) error {
	now := time.Now().UTC()
	row := PlacementRecord{
		ID:              placement.ID,
		JudgeID:         placement.JudgeID,
		AttorneyName:    placement.AttorneyName,
		BarNumber:       placement.BarNumber,
		Tier:            string(placement.Tier),
		Exclusive:       placement.Exclusive,
		BundleSize:      placement.BundleSize,
		DurationMonths:  placement.DurationMonths,
		FinalPriceCents: placement.FinalPrice.Cents(),
		Currency:        placement.FinalPrice.Currency(),
		Status:          string(placement.Status),
		StartsAt:        placement.StartsAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return db.WithContext(ctx).Create(&row).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Placement, error) {
	var row PlacementRecord
	err := db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toPlacement(row)
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, page pagination.Pagination) ([]*domain.Placement, error) {
	stmt := db.WithContext(ctx).Model(&PlacementRecord{})
	if filter.JudgeID != nil {
		stmt = stmt.Where("judge_id = ?", *filter.JudgeID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", string(filter.Status))
	}

	limit := page.PageSize
	if limit <= 0 {
		limit = 10
	}
	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, domain.ErrInvalidRequest
		}
		lastID, err := snowflake.ParseString(cursor.ID)
		if err != nil {
			return nil, domain.ErrInvalidRequest
		}
		stmt = stmt.Where("id < ?", lastID)
	}

	var rows []PlacementRecord
	if err := stmt.Order("id desc").Limit(limit + 1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}

	placements := make([]*domain.Placement, 0, len(rows))
	for _, row := range rows {
		placement, err := toPlacement(row)
		if err != nil {
			return nil, err
		}
		placements = append(placements, placement)
	}
	return placements, nil
}

func (r *repo) CountActiveExclusive(ctx context.Context, db *gorm.DB, judgeID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&PlacementRecord{}).
		Where("judge_id = ? AND exclusive = ? AND status = ?", judgeID, true, string(domain.PlacementActive)).
		Count(&count).Error
	return count, err
}

func toPlacement(row PlacementRecord) (*domain.Placement, error) {
	price, err := money.FromCents(row.FinalPriceCents, row.Currency).Value()
	if err != nil {
		return nil, err
	}
	tier, ok := domain.ParseTier(row.Tier)
	if !ok {
		return nil, domain.ErrInvalidRequest
	}
	return &domain.Placement{
		ID:             row.ID,
		JudgeID:        row.JudgeID,
		AttorneyName:   row.AttorneyName,
		BarNumber:      row.BarNumber,
		Tier:           tier,
		Exclusive:      row.Exclusive,
		BundleSize:     row.BundleSize,
		DurationMonths: row.DurationMonths,
		FinalPrice:     price,
		Status:         domain.PlacementStatus(row.Status),
		StartsAt:       row.StartsAt,
		CreatedAt:      row.CreatedAt,
	}, nil
}
