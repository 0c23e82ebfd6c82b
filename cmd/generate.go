package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one session's content and print it as JSON",
	Example: `  lingua generate --level B1 --focus grammar --topic "Present Perfect"
  lingua generate --level A2 --focus vocabulary --topic Travel`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := sessionFromFlags(cmd)
		if err != nil {
			return err
		}
		if err := sc.Validate(); err != nil {
			return err
		}

		d, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		if d.cfg.LLM.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d.cfg.LLM.Timeout)
			defer cancel()
		}

		out, err := d.client.Generate(ctx, sc)
		if err != nil {
			d.log.Error("generate failed", "config", sc.String(), "error", err)
			return fmt.Errorf("generate %s: %w", sc, err)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	addSessionFlags(generateCmd)
}
