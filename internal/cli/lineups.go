package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fbsn11/team-management-app/internal/domain/appearance"
	"github.com/fbsn11/team-management-app/internal/domain/lineup"
	"github.com/fbsn11/team-management-app/internal/infrastructure/repository/memory"
)

func newLineupsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lineups <match-id>",
		Short: "Show the saved lineups of a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lineups, err := listLineups(cmd, opts, args[0])
			if err != nil {
				return err
			}
			return newOutput(cmd.OutOrStdout(), opts.output).print(lineups)
		},
	}
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <match-id>",
		Short: "Count how often each player appeared in a match's lineups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lineups, err := listLineups(cmd, opts, args[0])
			if err != nil {
				return err
			}
			return newOutput(cmd.OutOrStdout(), opts.output).print(appearance.Aggregate(lineups))
		},
	}
}

func listLineups(cmd *cobra.Command, opts *options, matchID string) ([]lineup.Lineup, error) {
	ctx := cmd.Context()
	state, err := opts.loadState(ctx)
	if err != nil {
		return nil, err
	}

	if _, found, err := memory.NewMatchRepository(state).GetByID(ctx, matchID); err != nil {
		return nil, err
	} else if !found {
		return nil, fmt.Errorf("match %s not found", matchID)
	}

	return memory.NewLineupRepository(state, nil).ListByMatch(ctx, matchID)
}
