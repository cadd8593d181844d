package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/algoquiz/internal/quiz"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the saved quiz settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		s, err := quiz.LoadSettings(context.Background(), st)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}
		printSettings(cmd.OutOrStdout(), s)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set key=value...",
	Short: "Change one or more settings",
	Long: fmt.Sprintf(`Change one or more settings and save them.

Keys: %s
Example: algoquiz settings set timeLimit=600 difficulty=Medium`, strings.Join(quiz.SettingKeys, ", ")),
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var p quiz.SettingsPatch
		for _, arg := range args {
			key, value, ok := strings.Cut(arg, "=")
			if !ok {
				return fmt.Errorf("invalid assignment %q: want key=value", arg)
			}
			if err := quiz.ParseSetting(&p, key, value); err != nil {
				return err
			}
		}

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()
		s, err := quiz.LoadSettings(ctx, st)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}
		s = s.Apply(p)
		if err := quiz.SaveSettings(ctx, st, s); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
		printSettings(cmd.OutOrStdout(), s)
		return nil
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := quiz.ResetSettings(context.Background(), st); err != nil {
			return fmt.Errorf("reset settings: %w", err)
		}
		printSettings(cmd.OutOrStdout(), quiz.DefaultSettings())
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
}

func printSettings(w io.Writer, s quiz.Settings) {
	values := map[string]string{
		"timeLimit":        fmt.Sprintf("%d (%s)", s.TimeLimit, formatTimeLimit(s.TimeLimit)),
		"showTimer":        fmt.Sprint(s.ShowTimer),
		"shuffleQuestions": fmt.Sprint(s.ShuffleQuestions),
		"showHints":        fmt.Sprint(s.ShowHints),
		"difficulty":       string(s.Difficulty),
		"category":         string(s.Category),
	}
	for _, k := range quiz.SettingKeys {
		fmt.Fprintf(w, "%-18s %s\n", k, values[k])
	}
}
