package testutils

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"vehicle-registry/db"
	"vehicle-registry/internal/config"
)

func SetupTestDatabase(t *testing.T) (*sql.DB, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	testDB, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_timeout=10000&_foreign_keys=on")
	require.NoError(t, err)

	err = db.InitializeSchema(testDB, db.EngineSQLite)
	require.NoError(t, err)

	cleanup := func() {
		testDB.Close()
		os.RemoveAll(tempDir)
	}

	return testDB, cleanup
}

func SetupTestRepositoryFactory(t *testing.T) (*db.RepositoryFactory, func()) {
	testDB, cleanup := SetupTestDatabase(t)
	factory := db.NewRepositoryFactory(testDB, db.EngineSQLite)
	return factory, cleanup
}

func GetTestConfig() *config.Config {
	return &config.Config{
		Port:          "0",
		SessionSecret: []byte("test_session_secret_for_testing_only"),
		DatabaseType:  config.SQLite,
		SQLitePath:    ":memory:",
		DatabaseName:  "vehicles_test",
		AdminUsername: "test_admin",
		AdminPassword: "test_password",
		PublicDir:     "../../public",
	}
}
