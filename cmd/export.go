package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/klokku/freelancer/pkg/metrics"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagExportFrom   string
	flagExportTo     string
	flagExportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored data",
}

var exportTimesheetCmd = &cobra.Command{
	Use:   "timesheet",
	Short: "Write time entries as a CSV timesheet",
	RunE:  runExportTimesheet,
}

func init() {
	exportTimesheetCmd.Flags().StringVar(&flagExportFrom, "from", "", "First day, YYYY-MM-DD")
	exportTimesheetCmd.Flags().StringVar(&flagExportTo, "to", "", "Last day (inclusive), YYYY-MM-DD")
	exportTimesheetCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "Output file (default stdout)")

	exportCmd.AddCommand(exportTimesheetCmd)
	rootCmd.AddCommand(exportCmd)
}

func runExportTimesheet(_ *cobra.Command, _ []string) error {
	from, to, err := parseRange(flagExportFrom, flagExportTo)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	deps, err := openDependencies(ctx)
	if err != nil {
		return err
	}
	defer closeStore(deps)

	csv, err := deps.DashboardService.Timesheet(ctx, from, to)
	if err != nil {
		return err
	}

	if flagExportOutput == "" {
		fmt.Print(csv)
		return nil
	}
	if err := os.WriteFile(flagExportOutput, []byte(csv), 0o644); err != nil {
		return err
	}
	log.Infof("Timesheet written to %s", flagExportOutput)
	return nil
}

// parseRange turns inclusive YYYY-MM-DD bounds into a half-open range in the
// local zone. Empty bounds stay open.
func parseRange(fromValue, toValue string) (time.Time, time.Time, error) {
	var from, to time.Time
	if fromValue != "" {
		parsed, ok := metrics.ParseDate(fromValue, time.Local)
		if !ok {
			return from, to, fmt.Errorf("invalid --from date %q, expected YYYY-MM-DD", fromValue)
		}
		from = parsed
	}
	if toValue != "" {
		parsed, ok := metrics.ParseDate(toValue, time.Local)
		if !ok {
			return from, to, fmt.Errorf("invalid --to date %q, expected YYYY-MM-DD", toValue)
		}
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, nil
}
