package cmd

import (
	"fmt"
	"strconv"

	"github.com/klokku/freelancer/internal/cli"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Business overview and per-project progress",
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(_ *cobra.Command, _ []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	deps, err := openDependencies(ctx)
	if err != nil {
		return err
	}
	defer closeStore(deps)

	summary, err := deps.DashboardService.Summary(ctx)
	if err != nil {
		return err
	}
	overviews, err := deps.DashboardService.ProjectOverviews(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("DASHBOARD"))
	fmt.Println()
	fmt.Println(cli.RenderKeyValue("Active projects", strconv.Itoa(summary.ActiveProjects)))
	fmt.Println(cli.RenderKeyValue("Active clients", strconv.Itoa(summary.ActiveClients)))
	fmt.Println(cli.RenderKeyValue("Total revenue", cli.RenderMoney(cli.FormatMoney(summary.TotalRevenue))))
	fmt.Println(cli.RenderKeyValue("Pending invoices", strconv.Itoa(summary.PendingInvoices)))
	fmt.Println(cli.RenderKeyValue("Tracked today", cli.FormatDuration(summary.HoursToday)))
	fmt.Println(cli.RenderKeyValue("Earned today", cli.RenderMoney(cli.FormatMoney(summary.EarningsToday))))
	fmt.Println(cli.RenderKeyValue("Total expenses", cli.FormatMoney(summary.TotalExpenses)))
	fmt.Println(cli.RenderKeyValue("Storage used", fmt.Sprintf("%.1f MB", summary.StorageUsedMB)))
	overdue := strconv.Itoa(summary.OverdueMilestones)
	if summary.OverdueMilestones > 0 {
		overdue = cli.RenderAlert(overdue)
	}
	fmt.Println(cli.RenderKeyValue("Overdue milestones", overdue))
	fmt.Println(cli.RenderKeyValue("Due within a week", strconv.Itoa(summary.UpcomingMilestones)))
	fmt.Println()

	if len(overviews) == 0 {
		fmt.Println("  No projects yet.")
		return nil
	}

	rows := make([][]string, 0, len(overviews))
	for _, o := range overviews {
		rows = append(rows, []string{
			cli.Truncate(o.ProjectName, 28),
			cli.Truncate(o.ClientName, 18),
			o.Status,
			fmt.Sprintf("%.0f%%", o.Progress),
			fmt.Sprintf("%d/%d", o.CompletedMilestones, o.TotalMilestones),
			cli.FormatDuration(o.TimeSpent),
			cli.FormatMoney(o.Revenue),
			cli.FormatMoney(o.Budget),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Projects",
		Headers: []string{"Project", "Client", "Status", "Progress", "Milestones", "Time", "Revenue", "Budget"},
		Rows:    rows,
	}))
	return nil
}
