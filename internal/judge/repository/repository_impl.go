// Package repository persists judge aggregates over gorm. Aggregates are
// flattened into a judges row plus one row per court position; positions
// are upserted and never deleted so assignment history survives.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/judgefinder/platform/internal/judge/domain"
	"github.com/judgefinder/platform/pkg/db/pagination"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JudgeRecord is the judges table row.
type JudgeRecord struct {
	ID                snowflake.ID   `gorm:"primaryKey"`
	Name              string         `gorm:"type:text;not null"`
	Slug              string         `gorm:"type:text;not null;uniqueIndex"`
	JurisdictionLevel string         `gorm:"type:text;not null"`
	State             string         `gorm:"type:text"`
	County            string         `gorm:"type:text"`
	TotalCases        int64          `gorm:"not null;default:0"`
	BiasMetrics       datatypes.JSON `gorm:""`
	CreatedAt         time.Time      `gorm:"not null"`
	UpdatedAt         time.Time      `gorm:"not null"`
}

// TableName sets the database table name.
func (JudgeRecord) TableName() string { return "judges" }

// CourtPositionRecord is the court_positions table row.
type CourtPositionRecord struct {
	ID                snowflake.ID `gorm:"primaryKey"`
	JudgeID           snowflake.ID `gorm:"not null;index"`
	CourtID           snowflake.ID `gorm:"not null;index"`
	CourtName         string       `gorm:"type:text;not null"`
	AssignmentType    string       `gorm:"type:text;not null"`
	StartDate         time.Time    `gorm:"not null"`
	EndDate           *time.Time   `gorm:""`
	IsActive          bool         `gorm:"not null;default:true"`
	JurisdictionLevel string       `gorm:"type:text;not null"`
	State             string       `gorm:"type:text"`
	County            string       `gorm:"type:text"`
	CreatedAt         time.Time    `gorm:"not null"`
	UpdatedAt         time.Time    `gorm:"not null"`
}

// TableName sets the database table name.
func (CourtPositionRecord) TableName() string { return "court_positions" }

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, judge *domain.Judge) error {
	row, positions, err := toRecords(judge)
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	if len(positions) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&positions).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, judge *domain.Judge) error {
	row, positions, err := toRecords(judge)
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).
		Model(&JudgeRecord{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"name":         row.Name,
			"slug":         row.Slug,
			"total_cases":  row.TotalCases,
			"bias_metrics": row.BiasMetrics,
			"updated_at":   row.UpdatedAt,
		}).Error; err != nil {
		return err
	}
	if len(positions) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&positions).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Judge, error) {
	var row JudgeRecord
	err := db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.hydrate(ctx, db, row)
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Judge, error) {
	var row JudgeRecord
	err := db.WithContext(ctx).First(&row, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.hydrate(ctx, db, row)
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, page pagination.Pagination) ([]*domain.Judge, error) {
	stmt := db.WithContext(ctx).Model(&JudgeRecord{})
	if filter.State != "" {
		stmt = stmt.Where("state = ?", filter.State)
	}
	if filter.CourtID != nil {
		sub := db.Model(&CourtPositionRecord{}).
			Select("judge_id").
			Where("court_id = ?", *filter.CourtID)
		if filter.ActiveOnly {
			sub = sub.Where("is_active = ?", true)
		}
		stmt = stmt.Where("id IN (?)", sub)
	} else if filter.ActiveOnly {
		stmt = stmt.Where("id IN (?)", db.Model(&CourtPositionRecord{}).
			Select("judge_id").
			Where("is_active = ? AND assignment_type <> ?", true, string(domain.AssignmentRetired)))
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

	var rows []JudgeRecord
	if err := stmt.Order("id desc").Limit(limit + 1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}

	judges := make([]*domain.Judge, 0, len(rows))
	for _, row := range rows {
		judge, err := r.hydrate(ctx, db, row)
		if err != nil {
			return nil, err
		}
		judges = append(judges, judge)
	}
	return judges, nil
}

func (r *repo) hydrate(ctx context.Context, db *gorm.DB, row JudgeRecord) (*domain.Judge, error) {
	var positionRows []CourtPositionRecord
	if err := db.WithContext(ctx).
		Where("judge_id = ?", row.ID).
		Order("start_date asc, id asc").
		Find(&positionRows).Error; err != nil {
		return nil, err
	}
	return toAggregate(row, positionRows)
}

func toRecords(judge *domain.Judge) (*JudgeRecord, []CourtPositionRecord, error) {
	now := time.Now().UTC()

	var metricsJSON datatypes.JSON
	if metrics := judge.BiasMetrics(); metrics != nil {
		raw, err := json.Marshal(metrics)
		if err != nil {
			return nil, nil, err
		}
		metricsJSON = datatypes.JSON(raw)
	}

	jur := judge.Jurisdiction()
	row := &JudgeRecord{
		ID:                judge.ID(),
		Name:              judge.Name(),
		Slug:              judge.Slug(),
		JurisdictionLevel: string(jur.Level()),
		State:             jur.State(),
		County:            jur.County(),
		TotalCases:        judge.TotalCases(),
		BiasMetrics:       metricsJSON,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	positions := judge.Positions()
	rows := make([]CourtPositionRecord, 0, len(positions))
	for _, p := range positions {
		rows = append(rows, CourtPositionRecord{
			ID:                p.ID,
			JudgeID:           judge.ID(),
			CourtID:           p.CourtID,
			CourtName:         p.CourtName,
			AssignmentType:    string(p.AssignmentType),
			StartDate:         p.StartDate,
			EndDate:           p.EndDate,
			IsActive:          p.IsActive,
			JurisdictionLevel: string(p.Jurisdiction.Level()),
			State:             p.Jurisdiction.State(),
			County:            p.Jurisdiction.County(),
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}
	return row, rows, nil
}

func toAggregate(row JudgeRecord, positionRows []CourtPositionRecord) (*domain.Judge, error) {
	jur, err := domain.ParseJurisdiction(row.JurisdictionLevel, row.State, row.County).Value()
	if err != nil {
		return nil, err
	}

	positions := make([]domain.CourtPosition, 0, len(positionRows))
	for _, p := range positionRows {
		posJur, err := domain.ParseJurisdiction(p.JurisdictionLevel, p.State, p.County).Value()
		if err != nil {
			return nil, err
		}
		assignmentType, ok := domain.ParseAssignmentType(p.AssignmentType)
		if !ok {
			return nil, domain.ErrInvalidRequest
		}
		positions = append(positions, domain.CourtPosition{
			ID:             p.ID,
			CourtID:        p.CourtID,
			CourtName:      p.CourtName,
			AssignmentType: assignmentType,
			StartDate:      p.StartDate,
			EndDate:        p.EndDate,
			IsActive:       p.IsActive,
			Jurisdiction:   posJur,
		})
	}

	var metrics *domain.BiasMetrics
	if len(row.BiasMetrics) > 0 {
		var m domain.BiasMetrics
		if err := json.Unmarshal(row.BiasMetrics, &m); err != nil {
			return nil, err
		}
		metrics = &m
	}

	return domain.Rehydrate(row.ID, row.Name, row.Slug, jur, row.TotalCases, positions, metrics), nil
}
