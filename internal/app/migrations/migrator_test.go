package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	names, err := fs.Glob(Files(), "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_init.sql", names[0])

	content, err := fs.ReadFile(Files(), names[0])
	require.NoError(t, err)
	for _, table := range []string{"campuses", "instructors", "instructor_nicknames", "responsibilities", "instructor_responsibilities", "courses", "group_courses"} {
		assert.Contains(t, string(content), "CREATE TABLE IF NOT EXISTS "+table+" ")
	}
}
