package schema

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		body, err := fs.ReadFile(migrations, f)
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", f)
		assert.Contains(t, string(body), "-- +goose Down", f)
	}
}

func TestMigrations_Constraints(t *testing.T) {
	body, err := fs.ReadFile(migrations, "migrations/00001_create_employees_and_attendance.sql")
	require.NoError(t, err)
	sql := string(body)

	for _, want := range []string{
		"employees_employee_id_key UNIQUE (employee_id)",
		"employees_email_key UNIQUE (email)",
		"REFERENCES employees (employee_id) ON DELETE CASCADE",
		"CHECK (status IN ('Present', 'Absent'))",
		"unique_attendance UNIQUE (employee_id, date)",
	} {
		assert.True(t, strings.Contains(sql, want), "missing %q", want)
	}
}
