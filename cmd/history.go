package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent study sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		all, _ := cmd.Flags().GetBool("all")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		action := store.ActionCompleted
		if all {
			action = ""
		}
		events, err := s.EventRepo().RecentSessions(cmd.Context(), action, limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No sessions recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-16s  %-9s  %-3s  %-13s  %-20s  %-7s  %s\n",
			"Time", "Action", "Lvl", "Focus", "Topic", "Score", "Detail")
		fmt.Fprintln(out, strings.Repeat("─", 96))

		for _, e := range events {
			topic := e.Topic
			if topic == "" {
				topic = "-"
			}
			if len(topic) > 20 {
				topic = topic[:19] + "…"
			}
			score := "-"
			if e.Action == store.ActionCompleted {
				score = fmt.Sprintf("%d/%d", e.Correct, e.Total)
			}
			fmt.Fprintf(out, "%-16s  %-9s  %-3s  %-13s  %-20s  %-7s  %s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04"),
				e.Action,
				e.Level,
				e.Focus,
				topic,
				score,
				historyDetail(e),
			)
		}
		return nil
	},
}

func historyDetail(e store.SessionEvent) string {
	switch e.Action {
	case store.ActionCompleted:
		return fmt.Sprintf("%d%% %s", e.Percentage, e.Detail)
	case store.ActionFailed:
		if len(e.Detail) > 40 {
			return e.Detail[:39] + "…"
		}
		return e.Detail
	}
	return ""
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum sessions to show")
	historyCmd.Flags().Bool("all", false, "Include started and failed events")
}
