package snapshot_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoquelab/stocklens/internal/snapshot"
)

func TestReadMatchesAliasedHeaders(t *testing.T) {
	csvData := strings.Join([]string{
		"SKU,Product Name,Stock,Unit Cost,Unit Price,Daily Sales,Status,ABC,Trend,Alert,Priority",
		`SKU-1,Matte Lipstick,10,"2,50",5,1.2,rupture,A,rising,attention,urgent`,
		"SKU-2,Base Liquida,,3,6,,healthy,B,,,",
	}, "\n")

	records, err := snapshot.Read(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "SKU-1", first.SKUID)
	assert.Equal(t, "Matte Lipstick", first.Description)
	assert.Equal(t, "10", first.QuantityOnHand)
	assert.Equal(t, "2,50", first.UnitCost)
	assert.Equal(t, "rupture", first.RuptureStatus)
	assert.Equal(t, "urgent", first.PurchasePriority)

	// Empty numeric cells surface as nil, not empty strings
	second := records[1]
	assert.Nil(t, second.QuantityOnHand)
	assert.Nil(t, second.AvgDailySales)
	assert.Equal(t, "3", second.UnitCost)
}

func TestReadToleratesMissingColumns(t *testing.T) {
	csvData := strings.Join([]string{
		"sku_id,quantity_on_hand",
		"SKU-1,42",
	}, "\n")

	records, err := snapshot.Read(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "SKU-1", records[0].SKUID)
	assert.Equal(t, "42", records[0].QuantityOnHand)
	assert.Nil(t, records[0].UnitCost)
	assert.Empty(t, records[0].RuptureStatus)
}

func TestReadEmptyInput(t *testing.T) {
	records, err := snapshot.Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}
