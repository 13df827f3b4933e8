// Package cmd implements the command-line interface for domsift.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/russellbomer/domsift/cmd/analyze"
	"github.com/russellbomer/domsift/internal/config"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug logging for all commands.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "domsift",
		Short: "Analyze the repeating data structure of HTML pages",
		Long: `domsift inspects an HTML document and reports which DOM subtrees look
like item lists, which CSS selectors identify them, and which framework
or CMS produced the markup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	_ = godotenv.Load()

	// Flags must be parsed before config init so --config points viper at
	// the right file; cobra itself parses them only inside ExecuteContext.
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("domsift version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(analyze.Command())
}

// initConfig reads the config file and environment variables.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("DOMSIFT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	config.SetDefaults()

	// Config file is optional: defaults and environment variables cover
	// normal use.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: config file not loaded: %v\n", err)
		}
	}

	if err := viper.BindPFlag("app.debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("bind debug flag: %w", err)
	}
	return nil
}
