// Package seed bootstraps a handful of sample judges so a fresh local
// install has data to browse. Production environments never seed.
package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/judgefinder/platform/internal/judge/domain"
	"github.com/judgefinder/platform/internal/judge/repository"
	"gorm.io/gorm"
)

type sampleJudge struct {
	Name       string
	Level      string
	State      string
	County     string
	TotalCases int64
}

var sampleJudges = []sampleJudge{
	{Name: "Hon. Miriam Delgado", Level: "federal", TotalCases: 1240},
	{Name: "Hon. Robert Kwan", Level: "state", State: "CA", TotalCases: 860},
	{Name: "Hon. Alice Thornton", Level: "county", State: "TX", County: "Travis", TotalCases: 310},
}

// EnsureSampleJudges inserts the sample roster when the judges table is
// empty. Reruns are no-ops so restarts stay idempotent.
func EnsureSampleJudges(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	repo := repository.Provide()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.WithContext(ctx).Model(&repository.JudgeRecord{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		for _, sample := range sampleJudges {
			jur, err := domain.ParseJurisdiction(sample.Level, sample.State, sample.County).Value()
			if err != nil {
				return err
			}
			judge, err := domain.NewJudge(node.Generate(), sample.Name, slug.Make(sample.Name), jur, sample.TotalCases).Value()
			if err != nil {
				return err
			}
			if err := repo.Insert(ctx, tx, judge); err != nil {
				return err
			}
		}
		return nil
	})
}
