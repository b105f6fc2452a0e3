package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	core "loot-splitter/core/settlement"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLog(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func newInputCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	addInputFlags(c)
	require.NoError(t, c.ParseFlags(args))
	return c
}

func TestReadInputs(t *testing.T) {
	dir := t.TempDir()
	party := writeLog(t, dir, "party.txt", "Alice\nBalance: 1,000\n")
	alice := writeLog(t, dir, "alice.txt", "Looted Items:\n  2x Demon Horn\n")

	t.Run("Party And Players", func(t *testing.T) {
		c := newInputCmd(t, "--party", party, "--player", " Alice ="+alice, "--player", "Bob=")

		partyLog, players, err := readInputs(c)
		require.NoError(t, err)
		assert.Equal(t, "Alice\nBalance: 1,000\n", partyLog)
		require.Len(t, players, 2)
		assert.Equal(t, core.PlayerInput{Name: "Alice", Log: "Looted Items:\n  2x Demon Horn\n"}, players[0])
		assert.Equal(t, core.PlayerInput{Name: "Bob"}, players[1])
	})

	t.Run("Missing Separator", func(t *testing.T) {
		_, _, err := readInputs(newInputCmd(t, "--player", alice))
		assert.ErrorContains(t, err, "NAME=FILE")
	})

	t.Run("Unreadable File", func(t *testing.T) {
		_, _, err := readInputs(newInputCmd(t, "--party", filepath.Join(dir, "missing.txt")))
		assert.Error(t, err)
	})
}

func TestPrintResult(t *testing.T) {
	result := core.EmptyResult()
	result.TotalLoot = []core.ItemAmount{{Name: "Demon Horn", Amount: 3}}
	result.Financials = []core.Financial{{Name: "Alice", OriginalBalance: 12500, ProductValueDeducted: 3000, FinalLiquidBalance: 9500}}
	result.GoldTransfers = []core.Instruction{{From: "Alice", To: "Bob", Amount: 4750}}
	result.PartyBalance = 9500

	var buf bytes.Buffer
	printResult(&buf, result)
	out := buf.String()

	assert.Contains(t, out, "3x Demon Horn")
	assert.Contains(t, out, "12,500")
	assert.Contains(t, out, "9,500")
	assert.Contains(t, out, "Alice -> Bob: 4,750 gp")
}
