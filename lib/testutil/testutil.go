package testutil

import (
	"database/sql"
	"fmt"
	configlibsql "linkedin-dashboard/lib/configutil/libsql"
	"linkedin-dashboard/lib/telemetry"
	"os"
	"path/filepath"
	"testing"
)

type ServiceParams struct {
	Name string
	// if unspecified, it will skip setting up a db
	DbSchema string
	// if unspecified, it will use `:memory:`
	DbPath string
}

type ServiceResult struct {
	DB *sql.DB
}

// SetupService sets up telemetry for a test and opens a database with the
// given schema. Everything is torn down with the test.
func SetupService(t testing.TB, params ServiceParams) ServiceResult {
	t.Cleanup(telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", params.Name)))

	if params.DbSchema == "" {
		return ServiceResult{}
	}

	dbpath := params.DbPath
	if dbpath == "" {
		dbpath = ":memory:"
	}
	db, err := configlibsql.Struct{File: dbpath}.OpenDB(params.DbSchema)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	return ServiceResult{DB: db}
}

// ReadFixture reads a file under the testdata directory of the calling
// package.
func ReadFixture(t testing.TB, name string) []byte {
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	return data
}
