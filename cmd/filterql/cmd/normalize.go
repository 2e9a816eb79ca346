package cmd

import (
	"fmt"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	filterql "github.com/kolsrud/filterql"
	"github.com/kolsrud/filterql/canon"
	"github.com/kolsrud/filterql/ql"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <expression>",
	Short: "Parse and normalize a filter expression into its canonical tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return reportError(err)
		}

		root, _, err := filterql.Parse(args[0])
		if err != nil {
			return reportError(err)
		}

		tree, err := filterql.Normalize(root, filterql.NormalizeOptions{TextSearchTargets: cfg.TextSearchTargets})
		if err != nil {
			return reportError(err)
		}

		if debug {
			repr.Println(tree)
			return nil
		}

		out, err := yaml.Marshal(describeCanon(tree))
		if err != nil {
			return reportError(err)
		}
		fmt.Print(string(out))
		return nil
	},
}

// describeCanon renders a canonical tree as a plain map/slice structure
// so it can go through yaml.Marshal without teaching the canon package
// about the CLI's serialization format.
func describeCanon(n *canon.Node) map[string]any {
	if n == nil {
		return nil
	}
	m := map[string]any{"kind": n.Kind.String()}
	switch n.Kind {
	case canon.KAnd, canon.KOr:
		children := make([]map[string]any, len(n.Children))
		for i, c := range n.Children {
			children[i] = describeCanon(c)
		}
		m["children"] = children
	case canon.KNot:
		m["arg"] = describeCanon(n.Arg)
	case canon.KComparison:
		m["path"] = n.Path
		m["op"] = n.CompOp.String()
		m["value"] = literalValue(n.Lit)
	case canon.KText:
		m["path"] = n.Path
		m["op"] = n.TextOp.String()
		m["needle"] = n.Needle
	case canon.KQuantified:
		m["quantifier"] = n.Quant.String()
		m["path"] = n.Path
		m["predicate"] = describeCanon(n.Pred)
	}
	return m
}

func literalValue(lit ql.Literal) any {
	switch lit.Kind {
	case ql.LitStr:
		return lit.Str
	case ql.LitNum:
		return lit.Num
	case ql.LitBool:
		return lit.Bool
	default:
		return nil
	}
}
