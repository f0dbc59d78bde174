package cli

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/msfworks/showcase/internal/store"
)

// dataDir holds the --data-dir persistent flag value (set on root command).
var dataDir string

// resolveDataDir returns the data directory from the --data-dir flag,
// the SHOWCASE_DATA_DIR env var, or ~/.showcase as fallback.
func resolveDataDir() string {
	if dataDir != "" {
		return dataDir
	}
	if envDir := os.Getenv("SHOWCASE_DATA_DIR"); envDir != "" {
		return envDir
	}
	home, _ := os.UserHomeDir()
	return home + "/.showcase"
}

// storeDriver returns the configured database driver, defaulting to the
// embedded SQLite engine.
func storeDriver() string {
	if driver := viper.GetString("db.driver"); driver != "" {
		return driver
	}
	return "sqlite"
}

// openStore opens the configured database. For SQLite the DSN is the data
// directory; for Postgres and MySQL it is the connection string from config.
func openStore() (*store.Store, error) {
	driver := storeDriver()
	dsn := viper.GetString("db.dsn")
	if driver == "sqlite" && dsn == "" {
		dsn = resolveDataDir()
	}
	return store.Open(driver, dsn)
}

// versionString returns a display version string.
func versionString() string {
	if appVersion == "" || appVersion == "dev" {
		return "dev"
	}
	if strings.HasPrefix(appVersion, "v") {
		return appVersion
	}
	return "v" + appVersion
}
