package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/algoquiz/internal/bank"
	"github.com/abhisek/algoquiz/internal/quiz"
	"github.com/abhisek/algoquiz/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect, export or clear quiz history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List completed quizzes, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		h := loadHistory(cmd, st)

		out := cmd.OutOrStdout()
		if len(h.Results) == 0 {
			fmt.Fprintln(out, "No quizzes recorded.")
			return nil
		}

		fmt.Fprintf(out, "%-3s  %-20s  %-9s  %5s  %6s  %-10s  %s\n",
			"#", "Date", "Score", "%", "Time", "Difficulty", "Category")
		fmt.Fprintln(out, strings.Repeat("─", 80))

		for i, r := range h.Results {
			if limit > 0 && i >= limit {
				break
			}
			fmt.Fprintf(out, "%-3d  %-20s  %-9s  %4d%%  %6s  %-10s  %s\n",
				i+1, formatDate(r),
				fmt.Sprintf("%g/%d", r.Score, r.TotalQuestions),
				r.ScorePercentage, quiz.FormatRemaining(r.CompletionTime),
				r.Settings.Difficulty, r.Settings.Category)
		}

		fmt.Fprintf(out, "\n%d quizzes  best %d%%  average %.1f%%\n",
			h.TotalQuizzes, h.BestScore, h.AverageScore)
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <n>",
	Short: "Show the details of the n-th most recent quiz",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid index %q: want a number from 1", args[0])
		}

		st, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		h := loadHistory(cmd, st)
		if n > len(h.Results) {
			return fmt.Errorf("only %d quizzes recorded", len(h.Results))
		}
		r := h.Results[n-1]

		// Question texts come from the configured bank when it still has them.
		texts := make(map[int]bank.Question)
		if questions, err := loadBank(cfg); err == nil {
			for _, q := range questions {
				texts[q.ID] = q
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:          %s\n", r.ID)
		fmt.Fprintf(out, "Date:        %s\n", formatDate(r))
		fmt.Fprintf(out, "Score:       %g/%d (%d%%)\n", r.Score, r.TotalQuestions, r.ScorePercentage)
		fmt.Fprintf(out, "Time:        %s\n", quiz.FormatRemaining(r.CompletionTime))
		fmt.Fprintf(out, "Settings:    %s, %s, %s\n",
			r.Settings.Difficulty, r.Settings.Category, formatTimeLimit(r.Settings.TimeLimit))

		var levels []string
		for _, d := range r.DifficultyProgression {
			levels = append(levels, string(d))
		}
		if len(levels) > 0 {
			fmt.Fprintf(out, "Progression: %s\n", strings.Join(levels, " > "))
		}

		fmt.Fprintln(out, "\nCategories")
		fmt.Fprintln(out, strings.Repeat("─", 40))
		for _, c := range bank.AllCategories() {
			if cs, ok := r.CategoryBreakdown[c]; ok {
				fmt.Fprintf(out, "%-18s %d/%d\n", c, cs.Correct, cs.Total)
			}
		}

		fmt.Fprintln(out, "\nAnswers")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for i, a := range r.AnswerHistory {
			mark := "✓"
			if !a.Correct {
				mark = "✗"
			}
			text := fmt.Sprintf("question %d", a.QuestionID)
			if q, ok := texts[a.QuestionID]; ok {
				text = clip(q.Text, 50)
			}
			fmt.Fprintf(out, "%2d. %s %-6s %3ds  %s\n", i+1, mark, a.Difficulty, a.TimeSpent, text)
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all quiz history",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to clear history without --yes")
		}

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := quiz.SaveHistory(context.Background(), st, quiz.NewHistory()); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export [dir]",
	Short: "Write the history as JSON (use - for stdout)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		h := loadHistory(cmd, st)

		dir := cfg.ExportDir
		if len(args) == 1 {
			dir = args[0]
		}
		if dir == "-" {
			return h.Export(cmd.OutOrStdout())
		}

		path, err := quiz.WriteExportFile(h, dir, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Exported to", path)
		return nil
	},
}

var historyEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List recorded quiz events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		session, _ := cmd.Flags().GetString("session")

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.EventRepo().Query(context.Background(), store.QueryOpts{
			Limit:     limit,
			SessionID: session,
			Latest:    true,
		})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No events found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-36s  %-8s  %-4s  %s\n",
			"Seq", "Timestamp", "Session", "Action", "Q", "Payload")
		fmt.Fprintln(out, strings.Repeat("─", 110))

		for _, e := range events {
			qid := ""
			if e.QuestionID > 0 {
				qid = strconv.Itoa(e.QuestionID)
			}
			payload := clip(string(e.Payload), 40)
			fmt.Fprintf(out, "%-5d  %-19s  %-36s  %-8s  %-4s  %s\n",
				e.Sequence, e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.SessionID, e.Action, qid, payload)
		}
		return nil
	},
}

func init() {
	historyListCmd.Flags().Int("limit", 0, "Show at most this many quizzes (0 = all)")
	historyClearCmd.Flags().Bool("yes", false, "Confirm deletion")
	historyEventsCmd.Flags().Int("limit", 50, "Show at most this many of the most recent events (0 = all)")
	historyEventsCmd.Flags().String("session", "", "Only events of this session ID")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyEventsCmd)
}

func formatDate(r quiz.Record) string {
	t := r.Time()
	if t.IsZero() {
		return r.Date
	}
	return t.Local().Format("2006-01-02 15:04")
}

func formatTimeLimit(seconds int) string {
	if seconds == 0 {
		return "untimed"
	}
	return quiz.FormatRemaining(seconds)
}

// loadHistory reads the stored history. A malformed document is reported
// as a warning and treated as empty.
func loadHistory(cmd *cobra.Command, kv quiz.KV) quiz.History {
	h, err := quiz.LoadHistory(context.Background(), kv)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
	return h
}

// clip shortens s to at most width terminal cells, ending in "...".
func clip(s string, width int) string {
	return ansi.Truncate(s, width, "...")
}
