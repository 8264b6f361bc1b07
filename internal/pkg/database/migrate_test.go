package database

import (
	"testing"
	"testing/fstest"

	"github.com/sensacion-hr/attendance-backend-go/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanMigrations(t *testing.T) {
	files := fstest.MapFS{
		"0002_audit_index.sql": {Data: []byte("CREATE INDEX a ON audit_log (created_at);")},
		"0001_init.sql":        {Data: []byte("CREATE TABLE employees (id TEXT);")},
		"README.md":            {Data: []byte("notes")},
		"0003_draft.sql.bak":   {Data: []byte("--")},
		"seed/0001_demo.sql":   {Data: []byte("--")},
	}

	got, err := scanMigrations(files)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "0001", got[0].Version)
	assert.Equal(t, "init", got[0].Name)
	assert.Equal(t, "CREATE TABLE employees (id TEXT);", got[0].SQL)
	assert.Equal(t, "0002", got[1].Version)
	assert.Equal(t, "audit_index", got[1].Name)
}

func TestScanMigrations_DuplicateVersion(t *testing.T) {
	files := fstest.MapFS{
		"0001_init.sql":  {Data: []byte("--")},
		"0001_other.sql": {Data: []byte("--")},
	}

	_, err := scanMigrations(files)
	assert.ErrorContains(t, err, "duplicate migration version 0001")
}

func TestScanMigrations_Embedded(t *testing.T) {
	got, err := scanMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "0001", got[0].Version)
	assert.Contains(t, got[0].SQL, "attendance_events")
}
