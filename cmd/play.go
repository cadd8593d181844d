package cmd

import (
	"github.com/abhisek/algoquiz/internal/quiz"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz with one-off settings",
	Long: `Start a quiz. Flags override the saved settings for this run only;
use "algoquiz settings set" to change them permanently.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides, err := playOverrides(cmd)
		if err != nil {
			return err
		}
		return runApp(cmd, overrides)
	},
}

func init() {
	f := playCmd.Flags()
	f.String("difficulty", "", "Easy, Medium, Hard or All")
	f.String("category", "", `"Data Structures", "Algorithms" or All`)
	f.Int("time-limit", -1, "Time limit in seconds (0 = untimed)")
	f.Bool("no-shuffle", false, "Keep questions in bank order")
	f.Bool("hints", false, "Enable hints")
	f.Bool("no-timer", false, "Hide the countdown")
}

// playOverrides converts the changed flags into a settings patch.
func playOverrides(cmd *cobra.Command) (quiz.SettingsPatch, error) {
	var p quiz.SettingsPatch
	f := cmd.Flags()

	set := func(flag, key string) error {
		if !f.Changed(flag) {
			return nil
		}
		value := f.Lookup(flag).Value.String()
		return quiz.ParseSetting(&p, key, value)
	}
	if err := set("difficulty", "difficulty"); err != nil {
		return p, err
	}
	if err := set("category", "category"); err != nil {
		return p, err
	}
	if err := set("time-limit", "timeLimit"); err != nil {
		return p, err
	}
	if err := set("hints", "showHints"); err != nil {
		return p, err
	}
	if f.Changed("no-shuffle") {
		v, _ := f.GetBool("no-shuffle")
		shuffle := !v
		p.ShuffleQuestions = &shuffle
	}
	if f.Changed("no-timer") {
		v, _ := f.GetBool("no-timer")
		show := !v
		p.ShowTimer = &show
	}
	return p, nil
}
