package model

import (
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

// Every column gorm derives for the snapshot model must exist in the table the
// initial migration creates, or inserts fail at runtime.
func TestCompositeIndexSnapshotMatchesMigration(t *testing.T) {
	parsed, err := schema.Parse(&CompositeIndexSnapshot{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	assert.Equal(t, "composite_index_snapshots", CompositeIndexSnapshot{}.TableName())

	raw, err := os.ReadFile("../../migrations/000001_init_schema.up.sql")
	require.NoError(t, err)

	ddl := string(raw)
	start := strings.Index(ddl, "CREATE TABLE composite_index_snapshots")
	require.GreaterOrEqual(t, start, 0)
	end := strings.Index(ddl[start:], ";")
	require.Greater(t, end, 0)
	table := ddl[start : start+end]

	for _, field := range parsed.Fields {
		if field.DBName == "" {
			continue
		}
		assert.Contains(t, table, field.DBName, "field %s", field.Name)
	}
}
