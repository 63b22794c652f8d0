package db

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zulandar/changetrack/internal/config"
	"github.com/zulandar/changetrack/internal/models"
	"github.com/zulandar/changetrack/internal/requester"
	"github.com/zulandar/changetrack/internal/tracker"
)

// testDB creates an in-memory SQLite database with the export tables.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// seededTracker opens a tracker in a temp dir with two products, a release,
// a requester, a request and three items.
func seededTracker(t *testing.T) *tracker.Tracker {
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

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	_, err = tr.CreateProduct("Widget")
	must(err)
	_, err = tr.CreateProduct("Gadget")
	must(err)
	_, err = tr.CreateRelease("Widget", "1.0.0.0", "2024-01-01")
	must(err)
	_, err = tr.CreateRequester(requester.CreateOpts{Name: "Ada", Phone: "555", Email: "ada@x.io"})
	must(err)
	_, err = tr.CreateChangeRequest(tracker.RequestOpts{RequesterEmail: "ada@x.io", ProductName: "Widget", Date: "2024-01-02"})
	must(err)
	for _, o := range []tracker.ItemOpts{
		{ProductName: "Widget", Description: "crash", Priority: 5, Reported: "2024-01-02", ReleaseID: "1.0.0.0"},
		{ProductName: "Widget", Description: "typo", Priority: 1, Reported: "2024-01-03", State: models.Done},
		{ProductName: "Gadget", Description: "slow", Priority: 3, Reported: "2024-01-04"},
	} {
		_, err := tr.CreateChangeItem(o)
		must(err)
	}
	return tr
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MySQLConfig
		want string
	}{
		{
			name: "default local",
			cfg:  config.MySQLConfig{Host: "127.0.0.1", Port: 3306, User: "root", Database: "changetrack"},
			want: "root@tcp(127.0.0.1:3306)/changetrack?parseTime=true",
		},
		{
			name: "custom host and password",
			cfg:  config.MySQLConfig{Host: "10.0.0.5", Port: 3307, User: "tracker", Password: "secret", Database: "changes"},
			want: "tracker:secret@tcp(10.0.0.5:3307)/changes?parseTime=true",
		},
		{
			name: "no database",
			cfg:  config.MySQLConfig{Host: "db", Port: 3306, User: "root"},
			want: "root@tcp(db:3306)/?parseTime=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DSN(tt.cfg)
			if got != tt.want {
				t.Errorf("DSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConnect_UnknownDriver(t *testing.T) {
	_, err := Connect(config.ReportConfig{Driver: "oracle"})
	if err == nil || !strings.Contains(err.Error(), "unknown driver") {
		t.Errorf("error = %v, want unknown driver", err)
	}
}

func TestConnect_SQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "ct.db")
	db, err := Connect(config.ReportConfig{Driver: config.DriverSQLite, DSN: path})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created: %v", err)
	}
	for _, m := range AllModels() {
		if !db.Migrator().HasTable(m) {
			t.Errorf("table for %T missing", m)
		}
	}
}

func TestExport(t *testing.T) {
	db := testDB(t)
	tr := seededTracker(t)

	run, err := Export(db, tr)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if run.Products != 2 || run.Releases != 1 || run.Requesters != 1 || run.Requests != 1 || run.Items != 3 {
		t.Errorf("run counts = %+v", run)
	}
	if len(run.ID) != 36 {
		t.Errorf("run ID = %q, want a uuid", run.ID)
	}

	var items []ChangeItemRow
	if err := db.Order("id").Find(&items).Error; err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}
	if items[0].ID != 0 || items[0].ReleaseID != "1.0.0.0" || items[0].State != "ASSESSED" {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[1].State != "DONE" || items[1].ReleaseID != "" {
		t.Errorf("items[1] = %+v", items[1])
	}

	var req ChangeRequestRow
	if err := db.First(&req, "id = ?", 0).Error; err != nil {
		t.Fatalf("request 0: %v", err)
	}
	if req.RequestedBy != "Ada" || req.ProductName != "Widget" {
		t.Errorf("request = %+v", req)
	}
}

func TestExport_Repeated(t *testing.T) {
	db := testDB(t)
	tr := seededTracker(t)

	if _, err := Export(db, tr); err != nil {
		t.Fatalf("first Export: %v", err)
	}
	if _, err := tr.UpdateStatus(2, models.InProgress); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.UpdatePriority(2, 4); err != nil {
		t.Fatal(err)
	}
	if _, err := Export(db, tr); err != nil {
		t.Fatalf("second Export: %v", err)
	}

	var count int64
	db.Model(&ChangeItemRow{}).Count(&count)
	if count != 3 {
		t.Errorf("items = %d, want 3 after re-export", count)
	}
	db.Model(&ProductRow{}).Count(&count)
	if count != 2 {
		t.Errorf("products = %d, want 2 after re-export", count)
	}
	db.Model(&ExportRun{}).Count(&count)
	if count != 2 {
		t.Errorf("export runs = %d, want 2", count)
	}

	var item ChangeItemRow
	if err := db.First(&item, "id = ?", 2).Error; err != nil {
		t.Fatal(err)
	}
	if item.State != "INPROGRESS" || item.Priority != 4 {
		t.Errorf("item 2 = %+v, want INPROGRESS priority 4", item)
	}

	last, err := LastRun(db)
	if err != nil {
		t.Fatalf("LastRun: %v", err)
	}
	if last.Items != 3 {
		t.Errorf("LastRun.Items = %d, want 3", last.Items)
	}
}

func TestLastRun_Empty(t *testing.T) {
	db := testDB(t)
	if _, err := LastRun(db); err == nil {
		t.Error("expected error with no export runs")
	}
}

// gormTag extracts the gorm tag from a struct field.
func gormTag(t *testing.T, typ reflect.Type, fieldName string) string {
	t.Helper()
	f, ok := typ.FieldByName(fieldName)
	if !ok {
		t.Fatalf("%s.%s: field not found", typ.Name(), fieldName)
	}
	return f.Tag.Get("gorm")
}

// assertGormTag checks that a struct field's gorm tag contains the expected value.
func assertGormTag(t *testing.T, typ reflect.Type, fieldName, expected string) {
	t.Helper()
	tag := gormTag(t, typ, fieldName)
	if !strings.Contains(tag, expected) {
		t.Errorf("%s.%s gorm tag = %q, want to contain %q", typ.Name(), fieldName, tag, expected)
	}
}

func TestRow_Fields(t *testing.T) {
	assertGormTag(t, reflect.TypeOf(ProductRow{}), "Name", "primaryKey")

	rel := reflect.TypeOf(ReleaseRow{})
	assertGormTag(t, rel, "ProductName", "primaryKey")
	assertGormTag(t, rel, "ReleaseID", "primaryKey")

	assertGormTag(t, reflect.TypeOf(RequesterRow{}), "Email", "primaryKey")

	// ids come from the record files, never from the database
	for _, typ := range []reflect.Type{reflect.TypeOf(ChangeRequestRow{}), reflect.TypeOf(ChangeItemRow{})} {
		assertGormTag(t, typ, "ID", "primaryKey")
		assertGormTag(t, typ, "ID", "autoIncrement:false")
		assertGormTag(t, typ, "ProductName", "index")
	}
	assertGormTag(t, reflect.TypeOf(ChangeItemRow{}), "State", "index")
	assertGormTag(t, reflect.TypeOf(ExportRun{}), "ID", "size:36")
}

func TestTableNames(t *testing.T) {
	tests := []struct {
		model interface{ TableName() string }
		want  string
	}{
		{ProductRow{}, "products"},
		{ReleaseRow{}, "product_releases"},
		{RequesterRow{}, "requesters"},
		{ChangeRequestRow{}, "change_requests"},
		{ChangeItemRow{}, "change_items"},
		{ExportRun{}, "export_runs"},
	}
	for _, tt := range tests {
		if got := tt.model.TableName(); got != tt.want {
			t.Errorf("%T.TableName() = %q, want %q", tt.model, got, tt.want)
		}
	}
}
