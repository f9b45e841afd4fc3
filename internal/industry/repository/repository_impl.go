package repository

import (
	"context"
	"time"

	industrydomain "github.com/smallbiznis/myinvois/internal/industry/domain"
	"github.com/smallbiznis/myinvois/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type industryCodeRow struct {
	Code                   string `gorm:"primaryKey;size:8"`
	Description            string `gorm:"not null"`
	Category               string `gorm:"not null"`
	Section                string `gorm:"size:1;not null"`
	AllowsB2CConsolidation bool   `gorm:"column:allows_b2c_consolidation;not null"`
	SSTApplicable          bool   `gorm:"column:sst_applicable;not null"`
	Notes                  *string
	UpdatedAt              time.Time
}

func (industryCodeRow) TableName() string { return "industry_codes" }

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) industrydomain.Repository {
	return &repository{db: db}
}

// AutoMigrate creates the table on dialects without embedded migrations.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&industryCodeRow{})
}

func (r *repository) List(ctx context.Context) ([]industrydomain.IndustryCode, error) {
	var rows []industryCodeRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT code, description, category, section, allows_b2c_consolidation, sst_applicable, notes, updated_at
		 FROM industry_codes
		 ORDER BY code ASC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]industrydomain.IndustryCode, 0, len(rows))
	for _, row := range rows {
		items = append(items, industrydomain.IndustryCode{
			Code:                   row.Code,
			Description:            row.Description,
			Category:               row.Category,
			Section:                row.Section,
			AllowsB2CConsolidation: row.AllowsB2CConsolidation,
			SSTApplicable:          row.SSTApplicable,
			Notes:                  row.Notes,
		})
	}
	return items, nil
}

func (r *repository) Upsert(ctx context.Context, codes []industrydomain.IndustryCode) error {
	if len(codes) == 0 {
		return nil
	}

	now := time.Now().UTC()
	rows := make([]industryCodeRow, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		if err := c.Validate(); err != nil {
			return err
		}
		if _, ok := seen[c.Code]; ok {
			return industrydomain.ErrDuplicateIndustryCode
		}
		seen[c.Code] = struct{}{}
		rows = append(rows, industryCodeRow{
			Code:                   c.Code,
			Description:            c.Description,
			Category:               c.Category,
			Section:                c.Section,
			AllowsB2CConsolidation: c.AllowsB2CConsolidation,
			SSTApplicable:          c.SSTApplicable,
			Notes:                  c.Notes,
			UpdatedAt:              now,
		})
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"description", "category", "section", "allows_b2c_consolidation", "sst_applicable", "notes", "updated_at",
		}),
	}).CreateInBatches(rows, 100).Error
	if db.IsDuplicateKeyErr(err) {
		return industrydomain.ErrDuplicateIndustryCode
	}
	return err
}
