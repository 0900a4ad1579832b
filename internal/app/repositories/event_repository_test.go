package repositories

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The tag queries hardcode their column names, so the schema must declare
// exactly those columns.
func TestEventTagColumnsMatchSchema(t *testing.T) {
	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)

	table := regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS event_tags \((.*?)\);`).FindSubmatch(schema)
	require.NotNil(t, table, "event_tags table missing from schema")

	columns := string(table[1])
	assert.Contains(t, columns, "event_id BIGINT")
	assert.Contains(t, columns, "name VARCHAR")
}
