package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fbsn11/team-management-app/internal/infrastructure/persistence"
)

func newExportCmd(opts *options) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole document as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := opts.loadState(cmd.Context())
			if err != nil {
				return err
			}

			raw, err := persistence.Encode(state.Snapshot())
			if err != nil {
				return err
			}

			if target == "" || target == "-" {
				_, err = cmd.OutOrStdout().Write(raw)
				return err
			}
			if err := os.WriteFile(target, raw, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", target, err)
			}
			opts.logger.Info("document exported", "file", target, "bytes", len(raw))
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "file", "f", "", "Write to this file instead of stdout")
	return cmd
}
