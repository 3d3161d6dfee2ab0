package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/canvaslab/placetrace/internal/utils"
)

var cfgFile string

const (
	LOGO = `       _                 _
 _ __ | | __ _  ___ ___| |_ _ __ __ _  ___ ___
| '_ \| |/ _` + "`" + ` |/ __/ _ \ __| '__/ _` + "`" + ` |/ __/ _ \
| |_) | | (_| | (_|  __/ |_| | | (_| | (_|  __/
| .__/|_|\__,_|\___\___|\__|_|  \__,_|\___\___|
|_|

`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "placetrace",
	Short: "Re-identify canvas authors from a public edit history.",
	Long: LOGO + `placetrace intersects the author sets seen inside your search areas of an
r/place-style canvas history, then reconstructs which of the chosen author's
tiles survived to the whiteout and to the end of the log.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.placetrace.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("log", "f", "", "Canvas history CSV, optionally gzipped")
	rootCmd.PersistentFlags().StringP("era", "e", "", "Dataset era (Available: 2022, 2023)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".placetrace")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Error reading config file: %s\n", err)
		}
	}

	// Defaults mirror the 2022 dataset drop.
	viper.SetDefault("log", "2022_place_canvas_history.csv")
	viper.SetDefault("era", "2022")
	viper.SetDefault("restrict", true)

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}
