package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	filterql "github.com/kolsrud/filterql"
	"github.com/kolsrud/filterql/record"
)

var recordJSON string

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Parse, normalize and evaluate a filter expression against a JSON record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return reportError(err)
		}

		var decoded any
		if err := json.Unmarshal([]byte(recordJSON), &decoded); err != nil {
			return reportError(fmt.Errorf("invalid --record JSON: %w", err))
		}

		root, _, err := filterql.Parse(args[0])
		if err != nil {
			return reportError(err)
		}
		tree, err := filterql.Normalize(root, filterql.NormalizeOptions{TextSearchTargets: cfg.TextSearchTargets})
		if err != nil {
			return reportError(err)
		}

		evalOpts := filterql.EvalOptions{
			IgnoreCase:     cfg.IgnoreCase,
			FoldDiacritics: cfg.FoldDiacritics,
			Locale:         cfg.Locale,
		}
		pred := filterql.BuildPredicate(tree, evalOpts)
		ok, err := pred(record.Of(decoded))
		if err != nil {
			return reportError(err)
		}

		fmt.Println(ok)
		return nil
	},
}

func init() {
	evalCmd.Flags().StringVarP(&recordJSON, "record", "r", "{}", "JSON record to evaluate the expression against")
}
