package cmd

import (
	"errors"
	"fmt"

	"github.com/klokku/freelancer/internal/cli"
	"github.com/spf13/cobra"
)

var flagResetYes bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Add demo clients, projects and activity",
	RunE:  runSeed,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all stored data, the running timer included",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagResetYes, "yes", "y", false, "Confirm deleting all data")
	rootCmd.AddCommand(seedCmd, resetCmd)
}

func runSeed(_ *cobra.Command, _ []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	deps, err := openDependencies(ctx)
	if err != nil {
		return err
	}
	defer closeStore(deps)

	result, err := deps.DashboardService.Seed(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Demo data created",
		Headers: []string{"Collection", "Records"},
		Rows: [][]string{
			{"Clients", fmt.Sprint(result.Clients)},
			{"Projects", fmt.Sprint(result.Projects)},
			{"Time entries", fmt.Sprint(result.TimeEntries)},
			{"Milestones", fmt.Sprint(result.Milestones)},
			{"Expenses", fmt.Sprint(result.Expenses)},
			{"Documents", fmt.Sprint(result.Documents)},
			{"Invoices", fmt.Sprint(result.Invoices)},
		},
	}))
	return nil
}

func runReset(_ *cobra.Command, _ []string) error {
	if !flagResetYes {
		return errors.New("this deletes every record, pass --yes to confirm")
	}

	ctx, cancel := signalContext()
	defer cancel()

	deps, err := openDependencies(ctx)
	if err != nil {
		return err
	}
	defer closeStore(deps)

	if err := deps.DashboardService.Reset(ctx); err != nil {
		return err
	}
	fmt.Println("\n  All data deleted.")
	return nil
}
