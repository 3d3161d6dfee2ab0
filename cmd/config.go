package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/canvaslab/placetrace/pkg/canvas"
	"github.com/canvaslab/placetrace/pkg/settings"
)

// buildSettings resolves the run configuration for cmd: flags win over
// the viper config file, which wins over defaults. Validation failures
// are fatal before anything is scanned.
func buildSettings(cmd *cobra.Command) (*settings.Settings, error) {
	logPath, _ := rootCmd.PersistentFlags().GetString("log")
	if logPath == "" {
		logPath = viper.GetString("log")
	}

	eraName, _ := rootCmd.PersistentFlags().GetString("era")
	if eraName == "" {
		eraName = viper.GetString("era")
	}
	era, err := canvas.EraByName(eraName)
	if err != nil {
		return nil, &settings.ConfigError{Field: "era", Reason: err.Error()}
	}

	var defs []settings.AreaDef
	if areasFile, _ := cmd.Flags().GetString("areas"); areasFile != "" {
		data, err := os.ReadFile(areasFile)
		if err != nil {
			return nil, err
		}
		if defs, err = settings.ParseAreasJSON(data); err != nil {
			return nil, err
		}
	} else if err := viper.UnmarshalKey("areas", &defs); err != nil {
		return nil, &settings.ConfigError{Field: "areas", Reason: err.Error()}
	}
	areas, err := settings.Areas(defs)
	if err != nil {
		return nil, err
	}

	restrict := viper.GetBool("restrict")
	if cmd.Flags().Changed("restrict") {
		restrict, _ = cmd.Flags().GetBool("restrict")
	}

	checkpoint, _ := cmd.Flags().GetInt("checkpoint")
	if checkpoint == 0 {
		checkpoint = viper.GetInt("checkpoint")
	}

	user, _ := cmd.Flags().GetString("user")
	if user == "" {
		user = viper.GetString("user")
	}

	workers, _ := cmd.Flags().GetInt("workers")

	st := &settings.Settings{
		LogPath:    logPath,
		User:       user,
		Era:        era,
		Areas:      areas,
		Restrict:   restrict,
		Checkpoint: checkpoint,
		Workers:    workers,
	}
	if err := st.Validate(); err != nil {
		return nil, err
	}
	return st, nil
}
