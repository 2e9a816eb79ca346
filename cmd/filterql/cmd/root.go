package cmd

import (
	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "filterql",
		Short:        "filterql",
		SilenceUsage: true,
		Long:         `CLI for parsing, normalizing and evaluating filterql expressions.`,
	}

	configPath string
	debug      bool
	logLevel   string

	log = logrus.New()
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a filterql.yaml config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "pretty-print intermediate trees")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: trace, debug, info, warn, error")

	cobra.OnInitialize(initLogging)

	return rootCmd.Execute()
}

func initLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// newInvocationID returns a correlation id logged alongside every error
// so that a failing CLI invocation can be traced through any
// downstream log aggregation.
func newInvocationID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return "unknown"
	}
	return id.String()
}

func init() {
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(evalCmd)
}
