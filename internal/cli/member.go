package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// MemberResult mirrors the API's member response
type MemberResult struct {
	ID            string `json:"id"`
	DisplayName   string `json:"display_name"`
	Balance       int    `json:"balance"`
	TotalStakes   int    `json:"total_stakes"`
	TotalWinnings int    `json:"total_winnings"`
}

// LeaderboardResult mirrors the API's leaderboard response
type LeaderboardResult struct {
	Members []MemberResult `json:"members"`
}

func newStatsCmd() *cobra.Command {
	var memberID string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show a member's balance and stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			id := memberID
			if id == "" {
				id = cfg.MemberID
			}
			if id == "" {
				return fmt.Errorf("no member ID: use --for or set BETPOOL_MEMBER")
			}

			var result MemberResult
			if err := client.Get("/api/v1/members/"+id+"/stats", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if out.JSON() {
				out.Print(result)
				return nil
			}

			renderMemberTable(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&memberID, "for", "", "Member ID to look up (defaults to acting member)")

	return cmd
}

func newLeaderboardCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the balance leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LeaderboardResult
			if err := client.Get(fmt.Sprintf("/api/v1/leaderboard?limit=%d", limit), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if out.JSON() {
				out.Print(result)
				return nil
			}

			renderLeaderboardTable(result.Members)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of members to show")

	return cmd
}

func renderMemberTable(m MemberResult) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Member", "Balance", "Stakes", "Winnings")
	table.Append(m.DisplayName, strconv.Itoa(m.Balance), strconv.Itoa(m.TotalStakes), strconv.Itoa(m.TotalWinnings))
	table.Render()
}

func renderLeaderboardTable(members []MemberResult) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("#", "Member", "Balance", "Winnings")
	for i, m := range members {
		table.Append(strconv.Itoa(i+1), m.DisplayName, strconv.Itoa(m.Balance), strconv.Itoa(m.TotalWinnings))
	}
	table.Render()
}
