package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"loot-splitter/core/notify"
	core "loot-splitter/core/settlement"
	"loot-splitter/feature/settlement"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// settleCmd represents the settle command
var settleCmd = &cobra.Command{
	Use:   "settle",
	Short: "Settle a hunt from log files",
	Long: `Reads the party summary log and one session log per player and prints the item and gold
transfers that split the loot evenly.

Example:
  loot-splitter settle --party party.txt --player Alice=alice.txt --player Bob=bob.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		partyLog, players, err := readInputs(cmd)
		if err != nil {
			return err
		}

		rt, err := loadRuntime(false)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		result, err := settlement.NewService(rt.prices, rt.logger).Settle(cmd.Context(), partyLog, players)
		if err != nil {
			return fmt.Errorf("failed to settle: %w", err)
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		printResult(cmd.OutOrStdout(), result)
		rt.logger.Debug("Settlement printed", zap.Int("players", len(result.Financials)))
		return nil
	},
}

// readInputs reads the --party and --player flags shared by settle and share encode.
func readInputs(cmd *cobra.Command) (string, []core.PlayerInput, error) {
	partyPath, _ := cmd.Flags().GetString("party")
	playerSpecs, _ := cmd.Flags().GetStringArray("player")

	partyLog, err := readLog(partyPath)
	if err != nil {
		return "", nil, err
	}

	players := make([]core.PlayerInput, 0, len(playerSpecs))
	for _, spec := range playerSpecs {
		name, path, ok := strings.Cut(spec, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return "", nil, fmt.Errorf("invalid --player %q, expected NAME=FILE", spec)
		}
		text, err := readLog(path)
		if err != nil {
			return "", nil, err
		}
		players = append(players, core.PlayerInput{Name: strings.TrimSpace(name), Log: text})
	}
	return partyLog, players, nil
}

func readLog(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func printResult(w io.Writer, r *core.Result) {
	fmt.Fprintln(w, "=== Loot ===")
	for _, it := range r.TotalLoot {
		fmt.Fprintf(w, "%sx %s\n", humanize.Comma(it.Amount), it.Name)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Financials ===")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Player\tBalance\tLoot Value\tLiquid\t")
	for _, f := range r.Financials {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", f.Name,
			humanize.Comma(f.OriginalBalance),
			humanize.Comma(f.ProductValueDeducted),
			humanize.Comma(f.FinalLiquidBalance))
	}
	tw.Flush()
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Transfers ===")
	fmt.Fprintln(w, notify.FormatSummary(r))
}

func init() {
	RootCmd.AddCommand(settleCmd)

	addInputFlags(settleCmd)
	settleCmd.Flags().Bool("json", false, "Print the result as JSON")
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("party", "", "Party summary log file")
	cmd.Flags().StringArray("player", nil, "Player session log as NAME=FILE (repeatable)")
}
