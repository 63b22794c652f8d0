// Package report builds the outstanding-work and state-summary reports.
package report

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/zulandar/changetrack/internal/db"
	"github.com/zulandar/changetrack/internal/models"
	"github.com/zulandar/changetrack/internal/tracker"
)

// OutstandingReport lists the open items of one product (or all products
// when Product is empty).
type OutstandingReport struct {
	Product string
	Items   []models.ChangeItem
	// count of open items per priority, index 0 unused
	ByPriority [models.MaxPriority + 1]int
}

// Outstanding reads the item file directly, so it reflects the current state
// without an export.
func Outstanding(t *tracker.Tracker, productName string) (*OutstandingReport, error) {
	items, err := t.Outstanding(productName)
	if err != nil {
		return nil, fmt.Errorf("report: outstanding: %w", err)
	}
	r := &OutstandingReport{Product: productName, Items: items}
	for _, c := range items {
		r.ByPriority[c.Priority]++
	}
	return r, nil
}

// StateCount is the number of exported items of a product in one state.
type StateCount struct {
	ProductName string
	State       string
	Count       int64
}

// StateSummary groups the exported change items by product and state. It
// reflects the database as of the last export.
func StateSummary(gdb *gorm.DB) ([]StateCount, error) {
	var results []StateCount
	if err := gdb.Model(&db.ChangeItemRow{}).
		Select("product_name, state, COUNT(*) as count").
		Group("product_name, state").
		Order("product_name ASC, state ASC").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("report: state summary: %w", err)
	}
	return results, nil
}
