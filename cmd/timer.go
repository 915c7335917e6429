package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/klokku/freelancer/internal/cli"
	"github.com/klokku/freelancer/pkg/metrics"
	"github.com/klokku/freelancer/pkg/model"
	"github.com/klokku/freelancer/pkg/project"
	"github.com/klokku/freelancer/pkg/timer"
	"github.com/spf13/cobra"
)

var (
	flagTimerProject string
	flagTimerTask    string
	flagTimerRate    float64
	flagTimerWatch   bool
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Start, stop and inspect the work timer",
}

var timerStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start tracking time on a project",
	RunE:  runTimerStart,
}

var timerStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the timer and record a time entry",
	RunE:  runTimerStop,
}

var timerStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running timer",
	RunE:  runTimerStatus,
}

func init() {
	timerStartCmd.Flags().StringVarP(&flagTimerProject, "project", "p", "", "Project id or name")
	timerStartCmd.Flags().StringVarP(&flagTimerTask, "task", "t", "", "What you are working on")
	timerStartCmd.Flags().Float64VarP(&flagTimerRate, "rate", "r", -1, "Hourly rate (defaults to timer.defaulthourlyrate)")
	timerStatusCmd.Flags().BoolVarP(&flagTimerWatch, "watch", "w", false, "Keep printing the elapsed time until interrupted")

	timerCmd.AddCommand(timerStartCmd, timerStopCmd, timerStatusCmd)
	rootCmd.AddCommand(timerCmd)
}

func runTimerStart(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	deps, err := openDependencies(ctx)
	if err != nil {
		return err
	}
	defer closeStore(deps)

	projects, err := deps.ProjectService.List(ctx)
	if err != nil {
		return err
	}
	projectId, err := resolveProject(projects, flagTimerProject)
	if err != nil {
		return err
	}

	rate := deps.Config.Timer.DefaultHourlyRate
	if cmd.Flags().Changed("rate") {
		rate = flagTimerRate
	}

	active, err := deps.TimerService.Start(ctx, projectId, flagTimerTask, rate)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderKeyValue("Timer started", active.Start.Format("15:04:05")))
	fmt.Println(cli.RenderKeyValue("Project", project.NameOf(projects, active.ProjectId)))
	fmt.Println(cli.RenderKeyValue("Task", active.Description))
	fmt.Println(cli.RenderKeyValue("Rate", cli.FormatMoney(active.HourlyRate)+"/h"))
	fmt.Println()
	return nil
}

func runTimerStop(_ *cobra.Command, _ []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	deps, err := openDependencies(ctx)
	if err != nil {
		return err
	}
	defer closeStore(deps)

	entry, err := deps.TimerService.Stop(ctx)
	if err != nil {
		if errors.Is(err, timer.ErrNotRunning) {
			fmt.Println("\n  No timer is running.")
			return nil
		}
		return err
	}

	projects, err := deps.ProjectService.List(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderKeyValue("Recorded", cli.FormatDuration(entry.EndTime.Sub(entry.StartTime))))
	fmt.Println(cli.RenderKeyValue("Project", project.NameOf(projects, entry.ProjectId)))
	fmt.Println(cli.RenderKeyValue("Task", entry.Description))
	fmt.Println(cli.RenderKeyValue("Earned", cli.RenderMoney(cli.FormatMoney(metrics.EntryAmount(entry)))))
	fmt.Println()
	return nil
}

func runTimerStatus(_ *cobra.Command, _ []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	deps, err := openDependencies(ctx)
	if err != nil {
		return err
	}
	defer closeStore(deps)

	status, err := deps.TimerService.Current(ctx)
	if err != nil {
		return err
	}
	if !status.Running {
		fmt.Println("\n  No timer is running.")
		return nil
	}

	projects, err := deps.ProjectService.List(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("TIMER"))
	fmt.Println()
	fmt.Println(cli.RenderKeyValue("Project", project.NameOf(projects, status.Timer.ProjectId)))
	fmt.Println(cli.RenderKeyValue("Task", status.Timer.Description))
	fmt.Println(cli.RenderKeyValue("Started", status.Timer.Start.Local().Format("2006-01-02 15:04:05")))

	if !flagTimerWatch {
		fmt.Println(elapsedLine(status.Elapsed, status.Timer.HourlyRate))
		fmt.Println()
		return nil
	}

	watchTimer(ctx, deps.TimerService, status.Timer.HourlyRate)
	fmt.Println()
	return nil
}

func watchTimer(ctx context.Context, service timer.Service, rate float64) {
	for elapsed := range service.Watch(ctx) {
		fmt.Print("\r" + elapsedLine(elapsed, rate))
	}
	fmt.Println()
}

func elapsedLine(elapsed time.Duration, rate float64) string {
	earned := metrics.RoundCents(elapsed.Hours() * rate)
	return cli.RenderKeyValue("Elapsed", cli.FormatDuration(elapsed)+"  "+cli.RenderMoney(cli.FormatMoney(earned)))
}

// resolveProject accepts a project id or a case-insensitive project name.
func resolveProject(projects []model.Project, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", timer.ErrProjectRequired
	}
	var byName []model.Project
	for _, p := range projects {
		if p.Id == ref {
			return p.Id, nil
		}
		if strings.EqualFold(p.Name, ref) {
			byName = append(byName, p)
		}
	}
	switch len(byName) {
	case 0:
		return "", fmt.Errorf("no project matches %q", ref)
	case 1:
		return byName[0].Id, nil
	default:
		return "", fmt.Errorf("%d projects are named %q, use the project id", len(byName), ref)
	}
}
