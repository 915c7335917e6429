package cmd

import (
	"fmt"

	"github.com/klokku/freelancer/internal/cli"
	"github.com/klokku/freelancer/pkg/client"
	"github.com/klokku/freelancer/pkg/model"
	"github.com/klokku/freelancer/pkg/project"
	"github.com/spf13/cobra"
)

var (
	flagListSearch string
	flagListStatus string
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage clients",
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	RunE:  runClientsList,
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE:  runProjectsList,
}

func init() {
	clientsListCmd.Flags().StringVarP(&flagListSearch, "search", "s", "", "Filter by name, company or email")
	projectsListCmd.Flags().StringVarP(&flagListSearch, "search", "s", "", "Filter by name or description")
	projectsListCmd.Flags().StringVar(&flagListStatus, "status", "", "active, completed or on-hold")

	clientsCmd.AddCommand(clientsListCmd)
	projectsCmd.AddCommand(projectsListCmd)
	rootCmd.AddCommand(clientsCmd, projectsCmd)
}

func runClientsList(_ *cobra.Command, _ []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	deps, err := openDependencies(ctx)
	if err != nil {
		return err
	}
	defer closeStore(deps)

	clients, err := deps.ClientService.Search(ctx, flagListSearch)
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		fmt.Println("\n  No clients found.")
		return nil
	}
	projects, err := deps.ProjectService.List(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []string{
			cli.Truncate(c.Name, 24),
			cli.Truncate(c.Company, 20),
			c.Email,
			fmt.Sprint(len(project.ForClient(projects, c.Id))),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Clients",
		Headers: []string{"Name", "Company", "Email", "Projects"},
		Rows:    rows,
	}))
	return nil
}

func runProjectsList(_ *cobra.Command, _ []string) error {
	status := model.ProjectStatus(flagListStatus)
	if status != "" && !project.ValidStatus(status) {
		return fmt.Errorf("invalid status %q", flagListStatus)
	}

	ctx, cancel := signalContext()
	defer cancel()

	deps, err := openDependencies(ctx)
	if err != nil {
		return err
	}
	defer closeStore(deps)

	projects, err := deps.ProjectService.Search(ctx, flagListSearch, status)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Println("\n  No projects found.")
		return nil
	}
	clients, err := deps.ClientService.List(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			cli.Truncate(p.Name, 28),
			cli.Truncate(client.NameOf(clients, p.ClientId), 20),
			string(p.Status),
			p.StartDate,
			p.EndDate,
			cli.FormatMoney(p.Budget),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Projects",
		Headers: []string{"Project", "Client", "Status", "Start", "End", "Budget"},
		Rows:    rows,
	}))
	return nil
}
