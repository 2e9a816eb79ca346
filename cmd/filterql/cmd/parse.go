package cmd

import (
	"errors"
	"fmt"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	filterql "github.com/kolsrud/filterql"
	"github.com/kolsrud/filterql/ql"
)

var parseCmd = &cobra.Command{
	Use:   "parse <expression>",
	Short: "Parse a filter expression into its surface tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, _, err := filterql.Parse(args[0])
		if err != nil {
			return reportError(err)
		}
		if debug {
			repr.Println(root)
			return nil
		}
		fmt.Println(describeSurface(root))
		return nil
	},
}

// reportError logs a CLI-facing error with its code/kind and (for
// parse errors) its line/column, then returns it so cobra exits
// non-zero without printing its own redundant usage banner.
func reportError(err error) error {
	id := newInvocationID()
	var ferr *filterql.Error
	if errors.As(err, &ferr) {
		fields := log.WithField("invocation", id).WithField("code", ferr.Code).WithField("kind", ferr.Kind)
		var qerr *ql.Error
		if errors.As(err, &qerr) && qerr.Pos != (ql.Pos{}) {
			fields = fields.WithField("line", qerr.Pos.Line).WithField("col", qerr.Pos.Col)
		}
		fields.Error(ferr.Message)
		return ferr
	}
	log.WithField("invocation", id).Error(err.Error())
	return err
}

func describeSurface(n *ql.Node) string {
	return n.Kind.String()
}
