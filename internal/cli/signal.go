package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

// SignalResult mirrors the API's signal response
type SignalResult struct {
	Outcome string `json:"outcome"`
	Option  string `json:"option,omitempty"`
	Balance *int   `json:"balance,omitempty"`
}

func newSignalCmd() *cobra.Command {
	signalCmd := &cobra.Command{
		Use:   "signal",
		Short: "Send signal events for a line",
	}

	signalCmd.AddCommand(newSignalAddCmd())
	signalCmd.AddCommand(newSignalRemoveCmd())

	return signalCmd
}

func newSignalAddCmd() *cobra.Command {
	var symbol, displayName string

	cmd := &cobra.Command{
		Use:   "add <line-id>",
		Short: "Add a signal (place a stake)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SignalResult
			body := map[string]string{
				"member_id":    cfg.MemberID,
				"display_name": displayName,
				"symbol":       symbol,
			}
			if err := client.Post("/api/v1/lines/"+args[0]+"/signals", body, &result); err != nil {
				return err
			}

			printSignalResult(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&symbol, "symbol", "s", "", "The signal symbol")
	cmd.Flags().StringVar(&displayName, "name", "", "Display name for first interaction")
	_ = cmd.MarkFlagRequired("symbol")

	return cmd
}

func newSignalRemoveCmd() *cobra.Command {
	var symbol string

	cmd := &cobra.Command{
		Use:   "remove <line-id>",
		Short: "Remove a signal (withdraw a stake)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SignalResult
			body := map[string]string{
				"member_id": cfg.MemberID,
				"symbol":    symbol,
			}
			if err := client.Do(http.MethodDelete, "/api/v1/lines/"+args[0]+"/signals", body, &result); err != nil {
				return err
			}

			printSignalResult(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&symbol, "symbol", "s", "", "The signal symbol")
	_ = cmd.MarkFlagRequired("symbol")

	return cmd
}

func printSignalResult(result SignalResult) {
	out := NewOutput(cfg.Output)
	if out.JSON() {
		out.Print(result)
		return
	}

	switch result.Outcome {
	case "placed":
		msg := fmt.Sprintf("Stake placed on %q.", result.Option)
		if result.Balance != nil {
			msg += fmt.Sprintf(" Balance: %d.", *result.Balance)
		}
		out.PrintMessage(msg)
	case "withdrawn":
		msg := fmt.Sprintf("Stake on %q withdrawn.", result.Option)
		if result.Balance != nil {
			msg += fmt.Sprintf(" Balance: %d.", *result.Balance)
		}
		out.PrintMessage(msg)
	default:
		out.PrintMessage("Signal ignored.")
	}
}
