package cmd

import (
	"github.com/abhisek/algoquiz/internal/app"
	"github.com/abhisek/algoquiz/internal/quiz"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds the engine, and launches the TUI.
// overrides adjust the settings for this run only.
func runApp(cmd *cobra.Command, overrides quiz.SettingsPatch) error {
	st, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	questions, err := loadBank(cfg)
	if err != nil {
		return err
	}

	eng := quiz.New(questions, quiz.Options{
		Store:     st,
		Events:    st.EventRepo(),
		Overrides: overrides,
	})

	return app.Run(app.Options{
		Engine:    eng,
		ExportDir: cfg.ExportDir,
	})
}
