package configlibsql

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testSchema = `create table if not exists items (name text primary key);`

func TestOpenDBFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "test.db")
	db, err := Struct{File: path}.OpenDB(testSchema)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("insert into items (name) values ('a')")
	require.NoError(t, err)

	// reopening keeps the data and tolerates the existing schema
	db.Close()
	db, err = Struct{File: path}.OpenDB(testSchema)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("select count(*) from items").Scan(&count))
	require.Equal(t, 1, count)
}

func TestOpenDBMemory(t *testing.T) {
	db, err := Struct{File: ":memory:"}.OpenDB(testSchema)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("insert into items (name) values ('a')")
	require.NoError(t, err)
	var count int
	require.NoError(t, db.QueryRow("select count(*) from items").Scan(&count))
	require.Equal(t, 1, count)
}

func TestOpenDBUnspecified(t *testing.T) {
	_, err := Struct{}.OpenDB(testSchema)
	require.Error(t, err)
}
