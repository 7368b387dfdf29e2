package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tournamentctl",
		Short: "Offline tools for tournament groups and schedules",
	}

	groupsCmd := &cobra.Command{
		Use:   "groups",
		Short: "Draw and validate group configurations",
	}

	var seed uint64
	var sequential bool
	var drawOutput string
	drawCmd := &cobra.Command{
		Use:          "draw <draw.yaml>",
		Short:        "Assign the teams of a draw file to groups",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var seedPtr *uint64
			if cmd.Flags().Changed("seed") {
				seedPtr = &seed
			}
			return runDraw(cmd.OutOrStdout(), args[0], drawOptions{
				Seed:       seedPtr,
				Sequential: sequential,
				Output:     drawOutput,
			})
		},
	}
	drawCmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for a reproducible shuffle (overrides the file's seed)")
	drawCmd.Flags().BoolVar(&sequential, "sequential", false, "Deal teams in file order without shuffling")
	drawCmd.Flags().StringVarP(&drawOutput, "output", "o", "", "Write the draw file with its assignments to this path")

	validateCmd := &cobra.Command{
		Use:          "validate <draw.yaml>",
		Short:        "Check a draw file against the group rules",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), args[0])
		},
	}

	groupsCmd.AddCommand(drawCmd, validateCmd)

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Normalise and export schedules",
	}

	normalizeCmd := &cobra.Command{
		Use:          "normalize <schedule.json>",
		Short:        "Print the canonical form of a fixture or match list",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(cmd.OutOrStdout(), args[0])
		},
	}

	var exportOutput string
	exportCmd := &cobra.Command{
		Use:          "export <schedule.json>",
		Short:        "Write a schedule to an Excel workbook",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.OutOrStdout(), args[0], exportOutput)
		},
	}
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "schedule.xlsx", "Output Excel file path")

	scheduleCmd.AddCommand(normalizeCmd, exportCmd)
	rootCmd.AddCommand(groupsCmd, scheduleCmd)
	return rootCmd
}
