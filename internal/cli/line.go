package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// LineResult mirrors the API's line response
type LineResult struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	Symbols       []string `json:"symbols"`
	Status        string   `json:"status"`
	WinningOption string   `json:"winning_option,omitempty"`
}

// LineViewResult mirrors the API's line view response
type LineViewResult struct {
	Line   LineResult `json:"line"`
	Render struct {
		Text string `json:"text"`
	} `json:"render"`
}

// ResolveResult mirrors the API's resolve response
type ResolveResult struct {
	Line   LineResult `json:"line"`
	Payout struct {
		Pot       int    `json:"pot"`
		PerWinner int    `json:"per_winner"`
		Remainder int    `json:"remainder"`
		Summary   string `json:"summary"`
	} `json:"payout"`
}

func newLineCmd() *cobra.Command {
	lineCmd := &cobra.Command{
		Use:   "line",
		Short: "Manage betting lines",
	}

	lineCmd.AddCommand(newLineCreateCmd())
	lineCmd.AddCommand(newLineGetCmd())
	lineCmd.AddCommand(newLineLockCmd())
	lineCmd.AddCommand(newLineResolveCmd())

	return lineCmd
}

func newLineCreateCmd() *cobra.Command {
	var question string
	var options []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new betting line",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LineViewResult
			body := map[string]any{
				"question": question,
				"options":  options,
			}
			if err := client.Post("/api/v1/lines", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if out.JSON() {
				out.Print(result)
				return nil
			}
			fmt.Printf("Line %s opened.\n%s\n", result.Line.ID, result.Render.Text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&question, "question", "q", "", "The betting question")
	cmd.Flags().StringSliceVar(&options, "option", nil, "An option (repeatable, at least two)")
	_ = cmd.MarkFlagRequired("question")
	_ = cmd.MarkFlagRequired("option")

	return cmd
}

func newLineGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <line-id>",
		Short: "Show a line and its stakes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LineViewResult
			if err := client.Get("/api/v1/lines/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if out.JSON() {
				out.Print(result)
				return nil
			}
			fmt.Println(result.Render.Text)
			return nil
		},
	}
}

func newLineLockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lock <line-id>",
		Short: "Lock a line, freezing stakes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LineViewResult
			if err := client.Post("/api/v1/lines/"+args[0]+"/lock", struct{}{}, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("Line %s locked.", result.Line.ID))
			return nil
		},
	}
}

func newLineResolveCmd() *cobra.Command {
	var winner string

	cmd := &cobra.Command{
		Use:   "resolve <line-id>",
		Short: "Resolve a line and pay out winners",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ResolveResult
			body := map[string]string{"winning_option": winner}
			if err := client.Post("/api/v1/lines/"+args[0]+"/resolve", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if out.JSON() {
				out.Print(result)
				return nil
			}
			fmt.Printf("Line %s resolved: %s\n%s\n", result.Line.ID, result.Line.WinningOption, result.Payout.Summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&winner, "winner", "w", "", "The winning option")
	_ = cmd.MarkFlagRequired("winner")

	return cmd
}
