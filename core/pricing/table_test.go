package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	table := NewTable(map[string]int64{
		"Vampire Teeth": 275,
		"  Demon Horn ": 1000,
		"":              5,
	})

	t.Run("Lookup Is Case Insensitive", func(t *testing.T) {
		item, ok := table.Lookup("VAMPIRE teeth ")
		assert.True(t, ok)
		assert.Equal(t, Item{Name: "Vampire Teeth", Price: 275}, item)
	})

	t.Run("Names Are Trimmed", func(t *testing.T) {
		item, ok := table.Lookup("demon horn")
		assert.True(t, ok)
		assert.Equal(t, "Demon Horn", item.Name)
	})

	t.Run("Unknown Item", func(t *testing.T) {
		_, ok := table.Lookup("dragon scale")
		assert.False(t, ok)
		assert.Equal(t, int64(0), table.Price("dragon scale"))
	})

	t.Run("Blank Names Skipped", func(t *testing.T) {
		assert.Equal(t, 2, table.Len())
	})

	t.Run("Items Sorted", func(t *testing.T) {
		assert.Equal(t, []Item{
			{Name: "Demon Horn", Price: 1000},
			{Name: "Vampire Teeth", Price: 275},
		}, table.Items())
	})

	t.Run("Prices Is A Copy", func(t *testing.T) {
		prices := table.Prices()
		prices["Demon Horn"] = 1
		assert.Equal(t, int64(1000), table.Price("Demon Horn"))
	})
}

func TestTable_Collision(t *testing.T) {
	for i := 0; i < 10; i++ {
		table := NewTable(map[string]int64{"bat wing": 1, "Bat Wing": 50})
		item, ok := table.Lookup("BAT WING")
		assert.True(t, ok)
		assert.Equal(t, Item{Name: "Bat Wing", Price: 50}, item)
	}
}

func TestTable_Nil(t *testing.T) {
	var table *Table
	_, ok := table.Lookup("x")
	assert.False(t, ok)
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Items())
	assert.Empty(t, table.Prices())
}
