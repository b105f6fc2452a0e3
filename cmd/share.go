package cmd

import (
	"encoding/json"
	"fmt"

	"loot-splitter/core/config"
	"loot-splitter/feature/share"

	"github.com/spf13/cobra"
)

// shareCmd represents the share command
var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Encode and decode shareable settlement states",
}

// shareEncodeCmd represents the share encode command
var shareEncodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode log files into a share string",
	RunE: func(cmd *cobra.Command, args []string) error {
		partyLog, players, err := readInputs(cmd)
		if err != nil {
			return err
		}
		codec, err := shareCodec(cmd)
		if err != nil {
			return err
		}

		encoded, err := codec.Encode(share.State{PartyLog: partyLog, Players: players})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), encoded)
		return nil
	},
}

// shareDecodeCmd represents the share decode command
var shareDecodeCmd = &cobra.Command{
	Use:   "decode STATE",
	Short: "Decode a share string into JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		codec, err := shareCodec(cmd)
		if err != nil {
			return err
		}

		state, err := codec.Decode(args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	},
}

func shareCodec(cmd *cobra.Command) (*share.Codec, error) {
	compression, _ := cmd.Flags().GetString("compression")
	if compression == "" {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		compression = cfg.Share.Compression
	}
	return share.NewCodec(compression)
}

func init() {
	RootCmd.AddCommand(shareCmd)
	shareCmd.AddCommand(shareEncodeCmd, shareDecodeCmd)

	addInputFlags(shareEncodeCmd)
	shareCmd.PersistentFlags().String("compression", "", "Compression for new states (zstd, brotli); defaults to SHARE_COMPRESSION")
}
