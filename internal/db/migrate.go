package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zulandar/changetrack/internal/tracker"
)

// AllModels returns every exported table model for migration.
func AllModels() []interface{} {
	return []interface{}{
		&ProductRow{},
		&ReleaseRow{},
		&RequesterRow{},
		&ChangeRequestRow{},
		&ChangeItemRow{},
		&ExportRun{},
	}
}

// AutoMigrate creates or updates all export tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

const batchSize = 200

// Export copies every record of the tracker's stores into db in a single
// transaction. Rows that already exist are overwritten, so repeated exports
// pick up status and priority changes.
func Export(db *gorm.DB, t *tracker.Tracker) (*ExportRun, error) {
	run := ExportRun{ID: uuid.NewString(), StartedAt: time.Now().UTC()}

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		if run.Products, err = upsertAll(tx, "products", t.Products.All, productRow); err != nil {
			return err
		}
		if run.Releases, err = upsertAll(tx, "releases", t.Releases.All, releaseRow); err != nil {
			return err
		}
		if run.Requesters, err = upsertAll(tx, "requesters", t.Requesters.All, requesterRow); err != nil {
			return err
		}
		if run.Requests, err = upsertAll(tx, "change requests", t.Requests.All, changeRequestRow); err != nil {
			return err
		}
		if run.Items, err = upsertAll(tx, "change items", t.Items.All, changeItemRow); err != nil {
			return err
		}
		run.FinishedAt = time.Now().UTC()
		if err := tx.Create(&run).Error; err != nil {
			return fmt.Errorf("db: record export run: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// upsertAll reads every record with all, converts each to a row and upserts
// them. It returns the number of records exported.
func upsertAll[T any, R any](tx *gorm.DB, what string, all func() ([]T, error), toRow func(T) R) (int, error) {
	recs, err := all()
	if err != nil {
		return 0, fmt.Errorf("db: export %s: %w", what, err)
	}
	if len(recs) == 0 {
		return 0, nil
	}
	rows := make([]R, len(recs))
	for i, r := range recs {
		rows[i] = toRow(r)
	}
	if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(rows, batchSize).Error; err != nil {
		return 0, fmt.Errorf("db: export %s: %w", what, err)
	}
	return len(recs), nil
}

// LastRun returns the most recent export run.
func LastRun(db *gorm.DB) (*ExportRun, error) {
	var run ExportRun
	if err := db.Order("finished_at DESC").First(&run).Error; err != nil {
		return nil, fmt.Errorf("db: last export run: %w", err)
	}
	return &run, nil
}
