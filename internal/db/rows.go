package db

import (
	"time"

	"github.com/zulandar/changetrack/internal/models"
)

// ProductRow is the exported copy of a product.
type ProductRow struct {
	Name string `gorm:"primaryKey;size:10"`
}

func (ProductRow) TableName() string { return "products" }

// ReleaseRow is the exported copy of a product release.
type ReleaseRow struct {
	ProductName string `gorm:"primaryKey;size:10"`
	ReleaseID   string `gorm:"primaryKey;size:7"`
	Date        string `gorm:"size:10;not null"`
}

func (ReleaseRow) TableName() string { return "product_releases" }

// RequesterRow is the exported copy of a requester.
type RequesterRow struct {
	Email      string `gorm:"primaryKey;size:24"`
	Name       string `gorm:"size:30;not null"`
	Phone      string `gorm:"size:11"`
	Department string `gorm:"size:12"`
}

func (RequesterRow) TableName() string { return "requesters" }

// ChangeRequestRow is the exported copy of a change request.
type ChangeRequestRow struct {
	ID          int32  `gorm:"primaryKey;autoIncrement:false"`
	RequestedBy string `gorm:"size:29;not null"`
	ProductName string `gorm:"size:10;index"`
	Date        string `gorm:"size:10"`
}

func (ChangeRequestRow) TableName() string { return "change_requests" }

// ChangeItemRow is the exported copy of a change item. State holds the state
// name; ReleaseID is empty when no release was anticipated.
type ChangeItemRow struct {
	ID          int32  `gorm:"primaryKey;autoIncrement:false"`
	ProductName string `gorm:"size:10;index"`
	Description string `gorm:"size:149"`
	State       string `gorm:"size:16;index"`
	Priority    int32  `gorm:"not null"`
	Reported    string `gorm:"size:10"`
	ReleaseID   string `gorm:"size:7"`
}

func (ChangeItemRow) TableName() string { return "change_items" }

// ExportRun records one run of Export.
type ExportRun struct {
	ID         string `gorm:"primaryKey;size:36"`
	StartedAt  time.Time
	FinishedAt time.Time
	Products   int
	Releases   int
	Requesters int
	Requests   int
	Items      int
}

func (ExportRun) TableName() string { return "export_runs" }

func productRow(p models.Product) ProductRow {
	return ProductRow{Name: p.Name}
}

func releaseRow(r models.ProductRelease) ReleaseRow {
	return ReleaseRow{ProductName: r.Product.Name, ReleaseID: r.ReleaseID, Date: r.Date}
}

func requesterRow(r models.Requester) RequesterRow {
	return RequesterRow{Email: r.Email, Name: r.Name, Phone: r.Phone, Department: r.Department}
}

func changeRequestRow(c models.ChangeRequest) ChangeRequestRow {
	return ChangeRequestRow{ID: c.ID, RequestedBy: c.RequestedBy, ProductName: c.Product.Name, Date: c.Date}
}

func changeItemRow(c models.ChangeItem) ChangeItemRow {
	return ChangeItemRow{
		ID:          c.ID,
		ProductName: c.Product.Name,
		Description: c.Description,
		State:       c.State.String(),
		Priority:    c.Priority,
		Reported:    c.Reported,
		ReleaseID:   c.Release.ReleaseID,
	}
}
