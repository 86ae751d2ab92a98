package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/boostly/boostly/internal/app/browse"
	"github.com/boostly/boostly/internal/client"
	"github.com/boostly/boostly/internal/model"
)

type TaskListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	status    string
	platform  string
	taskType  string
	minBudget float64
	maxBudget float64
	mine      bool
	sortBy    string
	sortOrder string
	page      int
	limit     int
	format    string
}

// NewTaskListCommand returns the task list command.
func NewTaskListCommand(rootCmd *RootCommand, taskCmd *TaskCommand) *TaskListCommand {
	c := &TaskListCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Cmd.Command("list", "List marketplace tasks.")
	c.Cmd.Flag("status", "Filter by status (draft, open, active, paused, in_progress, completed, cancelled).").StringVar(&c.status)
	c.Cmd.Flag("platform", "Filter by platform.").StringVar(&c.platform)
	c.Cmd.Flag("type", "Filter by task type.").StringVar(&c.taskType)
	c.Cmd.Flag("min-budget", "Filter by minimum budget per task.").Float64Var(&c.minBudget)
	c.Cmd.Flag("max-budget", "Filter by maximum budget per task.").Float64Var(&c.maxBudget)
	c.Cmd.Flag("mine", "Only list tasks owned by the current user.").BoolVar(&c.mine)
	c.Cmd.Flag("sort-by", "Sort field (created_at, budget).").Default("created_at").EnumVar(&c.sortBy, "created_at", "budget")
	c.Cmd.Flag("sort-order", "Sort order (asc, desc).").Default("desc").EnumVar(&c.sortOrder, "asc", "desc")
	c.Cmd.Flag("page", "Page number.").Default("1").IntVar(&c.page)
	c.Cmd.Flag("limit", "Page size.").Default("20").IntVar(&c.limit)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c TaskListCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskListCommand) Run(ctx context.Context) error {
	filters := client.TaskFilters{
		SortBy:    c.sortBy,
		SortOrder: client.SortOrder(c.sortOrder),
		Page:      c.page,
		Limit:     c.limit,
	}

	if c.status != "" {
		status := model.TaskStatus(c.status)
		filters.Status = &status
	}
	if c.platform != "" {
		platform := model.Platform(c.platform)
		if !model.ValidPlatform(platform) {
			return fmt.Errorf("unknown platform: %s", c.platform)
		}
		filters.Platform = &platform
	}
	if c.taskType != "" {
		taskType := model.TaskType(c.taskType)
		filters.Type = &taskType
	}
	if c.minBudget > 0 {
		filters.MinBudget = &c.minBudget
	}
	if c.maxBudget > 0 {
		filters.MaxBudget = &c.maxBudget
	}
	if c.mine {
		if c.rootCmd.UserID == "" {
			return fmt.Errorf("--mine requires a configured user id")
		}
		filters.OwnerID = c.rootCmd.UserID
	}

	backend, err := newBackend(c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := browse.NewService(browse.ServiceConfig{
		Backend: backend,
		Logger:  c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	page, err := svc.Run(ctx, browse.Request{Filters: filters})
	if err != nil {
		return fmt.Errorf("could not list tasks: %w", err)
	}

	p := newPrinter(c.rootCmd, c.format)
	if err := p.PrintTaskList(*page); err != nil {
		return fmt.Errorf("could not print list: %w", err)
	}

	return nil
}
