package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/algoquiz/internal/bank"
	"github.com/abhisek/algoquiz/internal/quiz"
	"github.com/spf13/cobra"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Browse or validate question banks",
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions (optionally filtered by difficulty or category)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		questions, err := loadBank(cfg)
		if err != nil {
			return err
		}

		var p quiz.SettingsPatch
		for _, key := range []string{"difficulty", "category"} {
			if v, _ := cmd.Flags().GetString(key); v != "" {
				if err := quiz.ParseSetting(&p, key, v); err != nil {
					return err
				}
			}
		}
		filter := quiz.DefaultSettings().Apply(p)
		questions = quiz.FilterPool(questions, filter, nil)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%4s  %-8s  %-16s  %s\n", "ID", "Level", "Category", "Question")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, q := range questions {
			fmt.Fprintf(out, "%4d  %-8s  %-16s  %s\n", q.ID, q.Difficulty, q.Category, clip(q.Text, 66))
		}

		fmt.Fprintf(out, "\n%d questions\n", len(questions))
		return nil
	},
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a YAML or JSON question bank",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		questions, err := bank.LoadFile(args[0])
		if err != nil {
			return err
		}

		counts := make(map[bank.Difficulty]int)
		for _, q := range questions {
			counts[q.Difficulty]++
		}
		var parts []string
		for _, d := range bank.AllDifficulties() {
			parts = append(parts, fmt.Sprintf("%d %s", counts[d], d))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d questions (%s)\n", len(questions), strings.Join(parts, ", "))
		return nil
	},
}

func init() {
	bankListCmd.Flags().String("difficulty", "", "Filter by difficulty (Easy, Medium, Hard)")
	bankListCmd.Flags().String("category", "", `Filter by category ("Data Structures", "Algorithms")`)

	bankCmd.AddCommand(bankListCmd)
	bankCmd.AddCommand(bankValidateCmd)
}
