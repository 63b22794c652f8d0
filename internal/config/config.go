// Package config provides YAML-based configuration loading for changetrack.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zulandar/changetrack/internal/schedule"
)

// DefaultPath is the config file used when --config is not given.
const DefaultPath = "changetrack.yaml"

// Export drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Config is the top-level changetrack configuration, loaded from changetrack.yaml.
type Config struct {
	DataDir    string       `yaml:"data_dir"`
	SyncWrites bool         `yaml:"sync_writes"`
	Files      FilesConfig  `yaml:"files"`
	Paging     PagingConfig `yaml:"paging"`
	Report     ReportConfig `yaml:"report"`
}

// FilesConfig names the data file of each entity type, relative to DataDir
// unless absolute.
type FilesConfig struct {
	Products   string `yaml:"products"`
	Releases   string `yaml:"releases"`
	Requesters string `yaml:"requesters"`
	Requests   string `yaml:"requests"`
	Items      string `yaml:"items"`
}

// PagingConfig holds the page sizes of the interactive listings.
type PagingConfig struct {
	Products    int `yaml:"products"`
	Requesters  int `yaml:"requesters"`
	ChangeItems int `yaml:"change_items"`
}

// ReportConfig selects the SQL database that `ct export` writes to.
type ReportConfig struct {
	Driver string      `yaml:"driver"` // sqlite or mysql
	DSN    string      `yaml:"dsn"`
	MySQL  MySQLConfig `yaml:"mysql"`

	// Schedule is a cron expression for `ct export --schedule`; empty means
	// export once.
	Schedule string `yaml:"schedule"`
}

// MySQLConfig holds connection settings used to build a MySQL DSN when
// report.dsn is empty.
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// LoadOptional is Load, except that a missing file yields Default().
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Path resolves an entity file name against DataDir.
func (c *Config) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = "."
	}
	if c.Files.Products == "" {
		c.Files.Products = "products.dat"
	}
	if c.Files.Releases == "" {
		c.Files.Releases = "releases.dat"
	}
	if c.Files.Requesters == "" {
		c.Files.Requesters = "requesters.dat"
	}
	if c.Files.Requests == "" {
		c.Files.Requests = "requests.dat"
	}
	if c.Files.Items == "" {
		c.Files.Items = "items.dat"
	}
	if c.Paging.Products == 0 {
		c.Paging.Products = 5
	}
	if c.Paging.Requesters == 0 {
		c.Paging.Requesters = 5
	}
	if c.Paging.ChangeItems == 0 {
		c.Paging.ChangeItems = 20
	}
	if c.Report.Driver == "" {
		c.Report.Driver = DriverSQLite
	}
	if c.Report.Driver == DriverSQLite && c.Report.DSN == "" {
		c.Report.DSN = c.Path("changetrack.db")
	}
	if c.Report.MySQL.Host == "" {
		c.Report.MySQL.Host = "127.0.0.1"
	}
	if c.Report.MySQL.Port == 0 {
		c.Report.MySQL.Port = 3306
	}
	if c.Report.MySQL.User == "" {
		c.Report.MySQL.User = "root"
	}
	if c.Report.MySQL.Database == "" {
		c.Report.MySQL.Database = "changetrack"
	}
}

// validate checks that all fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	files := map[string]string{
		"products":   c.Files.Products,
		"releases":   c.Files.Releases,
		"requesters": c.Files.Requesters,
		"requests":   c.Files.Requests,
		"items":      c.Files.Items,
	}
	seen := make(map[string]string, len(files))
	for _, key := range []string{"products", "releases", "requesters", "requests", "items"} {
		p := filepath.Clean(c.Path(files[key]))
		if other, ok := seen[p]; ok {
			errs = append(errs, fmt.Sprintf("files.%s and files.%s both point to %s", other, key, p))
			continue
		}
		seen[p] = key
	}
	if c.Paging.Products < 0 {
		errs = append(errs, "paging.products must be positive")
	}
	if c.Paging.Requesters < 0 {
		errs = append(errs, "paging.requesters must be positive")
	}
	if c.Paging.ChangeItems < 0 {
		errs = append(errs, "paging.change_items must be positive")
	}
	switch c.Report.Driver {
	case DriverSQLite, DriverMySQL:
	default:
		errs = append(errs, fmt.Sprintf("report.driver %q must be %s or %s", c.Report.Driver, DriverSQLite, DriverMySQL))
	}
	if c.Report.MySQL.Port < 0 || c.Report.MySQL.Port > 65535 {
		errs = append(errs, fmt.Sprintf("report.mysql.port %d is out of range", c.Report.MySQL.Port))
	}
	if c.Report.Schedule != "" {
		if _, err := schedule.Parse(c.Report.Schedule); err != nil {
			errs = append(errs, fmt.Sprintf("report.schedule: %v", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
