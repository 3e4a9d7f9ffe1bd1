package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTablePadsRaggedRows(t *testing.T) {
	table := NewTable([][]string{
		{"A", "B", "C"},
		{"1"},
		{"2", "3", "4", "5"}, // extra cell beyond the header is dropped
	})
	require.NotNil(t, table)

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, "", table.Cell(0, 1))
	assert.Equal(t, "4", table.Cell(1, 2))
	assert.Equal(t, []string{"1", "2"}, table.Column(0))
}

func TestNewTableEmptySheet(t *testing.T) {
	assert.Nil(t, NewTable(nil))
	assert.Nil(t, NewTable([][]string{{"only", "header"}}))
}

func TestTableCellOutOfRange(t *testing.T) {
	table := NewTable([][]string{{"A"}, {"1"}})
	require.NotNil(t, table)

	assert.Equal(t, "", table.Cell(5, 0))
	assert.Equal(t, "", table.Cell(0, 5))
	assert.Equal(t, "", table.Cell(-1, -1))
}
