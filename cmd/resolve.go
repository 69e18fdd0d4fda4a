package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/divestwatch/internal/match"
)

var resolveSuggest bool

var resolveCmd = &cobra.Command{
	Use:   "resolve <query>",
	Short: "Resolve a free-text company name against the reference dataset",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := buildService()
		query := strings.Join(args, " ")

		if resolveSuggest {
			names := svc.Suggest(query, 0)
			if len(names) == 0 {
				fmt.Fprintln(os.Stderr, "no suggestions")
				return nil
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		}

		rec, err := svc.Detail(query)
		if err != nil {
			if errors.Is(err, match.ErrNotFound) {
				return eris.Errorf("no company matches %q", query)
			}
			return eris.Wrap(err, "resolve company")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	},
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveSuggest, "suggest", false, "print autocomplete candidates instead of resolving")
	rootCmd.AddCommand(resolveCmd)
}
