package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Table
// ---------------------------------------------------------------------------

func TestTableRenderContainsHeadersAndRows(t *testing.T) {
	tbl := NewTable([]Column{
		{Title: "ID", Width: 4, Right: true},
		{Title: "MAKE", Width: 12},
	})
	tbl.AddRow(Row{"1", "Tesla"})
	tbl.AddRow(Row{"2", "Porsche"})

	result := tbl.Render()
	assert.Contains(t, result, "ID")
	assert.Contains(t, result, "MAKE")
	assert.Contains(t, result, "Tesla")
	assert.Contains(t, result, "Porsche")
}

func TestTableRenderHasDivider(t *testing.T) {
	tbl := NewTable([]Column{{Title: "Col", Width: 8}})
	result := tbl.Render()
	assert.Contains(t, result, "--------", "should have a divider line")
}

func TestTableColumnGrowsToWidestCell(t *testing.T) {
	tbl := NewTable([]Column{{Title: "MODEL", Width: 5}})
	tbl.AddRow(Row{"911 Turbo Cabriolet"})
	result := tbl.Render()
	assert.Contains(t, result, "911 Turbo Cabriolet", "long cells must not be truncated to the declared minimum")
}

func TestTableRightAlignment(t *testing.T) {
	tbl := NewTable([]Column{{Title: "PRICE", Width: 8, Right: true}})
	tbl.AddRow(Row{"1.5"})
	result := tbl.Render()
	assert.Contains(t, result, "     1.5", "numeric cells pad on the left")
	assert.Contains(t, result, "   PRICE", "the header follows the column alignment")
}

func TestTableRenderRowShorterThanColumns(t *testing.T) {
	tbl := NewTable([]Column{
		{Title: "A", Width: 5},
		{Title: "B", Width: 5},
		{Title: "C", Width: 5},
	})
	tbl.AddRow(Row{"only1"})
	// Missing cells render as empty, not a panic.
	result := tbl.Render()
	assert.Contains(t, result, "only1")
}

func TestTableRenderPreservesRowOrder(t *testing.T) {
	tbl := NewTable([]Column{{Title: "Item", Width: 10}})
	tbl.AddRow(Row{"first"})
	tbl.AddRow(Row{"second"})
	tbl.AddRow(Row{"third"})

	result := tbl.Render()
	idxFirst := strings.Index(result, "first")
	idxSecond := strings.Index(result, "second")
	idxThird := strings.Index(result, "third")
	assert.Less(t, idxFirst, idxSecond)
	assert.Less(t, idxSecond, idxThird)
}

func TestTableRenderEmptyRows(t *testing.T) {
	tbl := NewTable([]Column{{Title: "Header", Width: 10}})
	result := tbl.Render()
	assert.Contains(t, result, "Header")
	assert.NotEmpty(t, result)
}

// ---------------------------------------------------------------------------
// KeyValueBlock
// ---------------------------------------------------------------------------

func TestKeyValueBlockContainsTitleAndPairs(t *testing.T) {
	result := KeyValueBlock("Purchase Preview", [][2]string{
		{"Token ID", "7"},
		{"Price", "1.5 ETH"},
	})
	assert.Contains(t, result, "Purchase Preview")
	assert.Contains(t, result, "Token ID")
	assert.Contains(t, result, "7")
	assert.Contains(t, result, "Price")
	assert.Contains(t, result, "1.5 ETH")
}

func TestKeyValueBlockEmptyTitle(t *testing.T) {
	result := KeyValueBlock("", [][2]string{
		{"Key", "Value"},
	})
	assert.Contains(t, result, "Key")
	assert.Contains(t, result, "Value")
}

func TestKeyValueBlockLabelColumnWidth(t *testing.T) {
	result := KeyValueBlock("", [][2]string{
		{"ID", "7"},
		{"Metadata URI", "ipfs://QmMeta"},
	})
	// Both values start in the same column: the short label pads out to
	// the longest one.
	assert.Contains(t, result, "ID:           7")
	assert.Contains(t, result, "Metadata URI: ipfs://QmMeta")
}

func TestKeyValueBlockPreservesOrder(t *testing.T) {
	result := KeyValueBlock("Wallet", [][2]string{
		{"First", "AAA"},
		{"Second", "BBB"},
		{"Third", "CCC"},
	})
	idxFirst := strings.Index(result, "First")
	idxSecond := strings.Index(result, "Second")
	idxThird := strings.Index(result, "Third")
	require.Greater(t, idxFirst, -1)
	require.Greater(t, idxSecond, -1)
	require.Greater(t, idxThird, -1)
	assert.Less(t, idxFirst, idxSecond)
	assert.Less(t, idxSecond, idxThird)
}

func TestKeyValueBlockHasBorder(t *testing.T) {
	result := KeyValueBlock("Bordered", [][2]string{
		{"Key", "Val"},
	})
	// lipgloss RoundedBorder uses ╭ and ╰ for corners.
	assert.Contains(t, result, "╭", "should have top-left rounded border")
	assert.Contains(t, result, "╰", "should have bottom-left rounded border")
}
