package report

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zulandar/changetrack/internal/config"
	"github.com/zulandar/changetrack/internal/db"
	"github.com/zulandar/changetrack/internal/models"
	"github.com/zulandar/changetrack/internal/tracker"
)

func testTracker(t *testing.T) *tracker.Tracker {
	t.Helper()
	cfg, err := config.Parse([]byte("data_dir: " + t.TempDir() + "\n"))
	if err != nil {
		t.Fatal(err)
	}
	tr, err := tracker.Open(cfg)
	if err != nil {
		t.Fatalf("tracker.Open: %v", err)
	}
	t.Cleanup(tr.Close)

	for _, p := range []string{"Widget", "Gadget"} {
		if _, err := tr.CreateProduct(p); err != nil {
			t.Fatal(err)
		}
	}
	items := []tracker.ItemOpts{
		{ProductName: "Widget", Description: "a", Priority: 2, State: models.Assessed},
		{ProductName: "Widget", Description: "b", Priority: 5, State: models.InProgress},
		{ProductName: "Widget", Description: "c", Priority: 5, State: models.Done},
		{ProductName: "Gadget", Description: "d", Priority: 1, State: models.Assessed},
		{ProductName: "Widget", Description: "e", Priority: 2, State: models.Assessed},
		{ProductName: "Gadget", Description: "f", Priority: 3, State: models.Cancelled},
	}
	for _, o := range items {
		o.Reported = "2024-01-01"
		if _, err := tr.CreateChangeItem(o); err != nil {
			t.Fatal(err)
		}
	}
	return tr
}

func TestOutstanding(t *testing.T) {
	tr := testTracker(t)
	r, err := Outstanding(tr, "Widget")
	if err != nil {
		t.Fatalf("Outstanding: %v", err)
	}
	if len(r.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(r.Items))
	}
	wantIDs := []int32{1, 0, 4}
	for i, c := range r.Items {
		if c.ID != wantIDs[i] {
			t.Errorf("Items[%d].ID = %d, want %d", i, c.ID, wantIDs[i])
		}
	}
	if r.ByPriority[5] != 1 || r.ByPriority[2] != 2 {
		t.Errorf("ByPriority = %v", r.ByPriority)
	}
}

func TestOutstanding_UnknownProduct(t *testing.T) {
	tr := testTracker(t)
	if _, err := Outstanding(tr, "Ghost"); !tracker.IsNotFound(err) {
		t.Errorf("error = %v, want not found", err)
	}
}

func TestStateSummary(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatal(err)
	}

	if _, err := db.Export(gdb, testTracker(t)); err != nil {
		t.Fatalf("Export: %v", err)
	}

	got, err := StateSummary(gdb)
	if err != nil {
		t.Fatalf("StateSummary: %v", err)
	}
	want := []StateCount{
		{"Gadget", "ASSESSED", 1},
		{"Gadget", "CANCELLED", 1},
		{"Widget", "ASSESSED", 2},
		{"Widget", "DONE", 1},
		{"Widget", "INPROGRESS", 1},
	}
	if len(got) != len(want) {
		t.Fatalf("StateSummary = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestStateSummary_Empty(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, _ := gdb.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatal(err)
	}
	got, err := StateSummary(gdb)
	if err != nil {
		t.Fatalf("StateSummary: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("StateSummary = %+v, want empty", got)
	}
}
