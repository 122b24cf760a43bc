package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fbsn11/team-management-app/internal/domain/formation"
)

type formationGroup struct {
	PlayerCount int                `json:"playerCount"`
	Label       string             `json:"label"`
	Systems     []formation.System `json:"systems"`
}

func newFormationsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "formations [size]",
		Short: "List formation systems, optionally for one team size",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := opts.catalog()
			if err != nil {
				return err
			}

			sizes := catalog.Sizes()
			if len(args) == 1 {
				size, err := strconv.Atoi(args[0])
				if err != nil || size <= 0 {
					return fmt.Errorf("size must be a positive number, got %q", args[0])
				}
				if !catalog.Supports(size) {
					return fmt.Errorf("no formations for %d players (supported: %v)", size, sizes)
				}
				sizes = []int{size}
			}

			groups := make([]formationGroup, 0, len(sizes))
			for _, size := range sizes {
				groups = append(groups, formationGroup{
					PlayerCount: size,
					Label:       formation.Label(size),
					Systems:     catalog.SystemsFor(size),
				})
			}

			return newOutput(cmd.OutOrStdout(), opts.output).print(groups)
		},
	}
}
