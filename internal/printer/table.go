package printer

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/boostly/boostly/internal/client"
	"github.com/boostly/boostly/internal/model"
)

// TablePrinter prints task information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintTaskList prints a task page in a table format.
func (t *TablePrinter) PrintTaskList(page client.TaskPage) error {
	if len(page.Tasks) == 0 {
		fmt.Fprintln(t.writer, "No tasks found")
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)

	// Print header
	fmt.Fprintln(tw, "ID\tPLATFORM\tTYPE\tTITLE\tBUDGET\tSLOTS\tSTATUS\tCREATED")

	// Print rows
	for _, task := range page.Tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%d/%d\t%s\t%s\n",
			task.ID,
			task.Platform,
			task.Type,
			task.Title,
			task.BudgetPerTask,
			task.FilledSlots,
			task.TotalSlots,
			task.Status,
			TimeAgo(task.CreatedAt),
		)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(t.writer, "\nPage %d (%d of %d tasks)\n", page.Page, len(page.Tasks), page.Total)
	return nil
}

// PrintTaskDetail prints a task and the actions available on it.
func (t *TablePrinter) PrintTaskDetail(task model.Task, actions []model.TaskAction) error {
	fmt.Fprintf(t.writer, "ID:            %s\n", task.ID)
	fmt.Fprintf(t.writer, "Title:         %s\n", task.Title)
	fmt.Fprintf(t.writer, "Platform:      %s\n", task.Platform)
	fmt.Fprintf(t.writer, "Type:          %s\n", task.Type)
	if task.TargetURL != "" {
		fmt.Fprintf(t.writer, "Target:        %s\n", task.TargetURL)
	}
	if task.Description != "" {
		fmt.Fprintf(t.writer, "Description:   %s\n", task.Description)
	}
	if task.Instructions != "" {
		fmt.Fprintf(t.writer, "Instructions:  %s\n", task.Instructions)
	}
	fmt.Fprintf(t.writer, "Status:        %s\n", task.Status)
	fmt.Fprintf(t.writer, "Budget:        %.2f per task\n", task.BudgetPerTask)
	fmt.Fprintf(t.writer, "Slots:         %d/%d filled\n", task.FilledSlots, task.TotalSlots)
	fmt.Fprintf(t.writer, "Total cost:    %.2f (fee: %.2f)\n", task.TotalCost, task.ServiceFee)

	if len(task.Targeting) > 0 {
		fmt.Fprintf(t.writer, "Targeting:\n")
		keys := make([]string, 0, len(task.Targeting))
		for k := range task.Targeting {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(t.writer, "  %s: %s\n", k, task.Targeting[k])
		}
	}

	if task.Creator.ID != "" {
		verified := ""
		if task.Creator.Verified {
			verified = " (verified)"
		}
		fmt.Fprintf(t.writer, "Creator:       %s%s\n", task.Creator.DisplayName, verified)
	}

	fmt.Fprintf(t.writer, "Created:       %s\n", FormatTimestamp(task.CreatedAt))

	if len(actions) > 0 {
		fmt.Fprintf(t.writer, "Actions:      ")
		for _, a := range actions {
			fmt.Fprintf(t.writer, " %s", a)
		}
		fmt.Fprintln(t.writer)
	}

	return nil
}

// PrintSession prints the wizard session state: one line per step with
// its completion marker, then the current step's errors if any.
func (t *TablePrinter) PrintSession(summary SessionSummary) error {
	fmt.Fprintf(t.writer, "Mode:     %s\n", summary.Mode)
	if summary.TaskID != "" {
		fmt.Fprintf(t.writer, "Task:     %s\n", summary.TaskID)
	}

	completed := map[int]bool{}
	for _, i := range summary.CompletedSteps {
		completed[i] = true
	}

	fmt.Fprintln(t.writer, "Steps:")
	for i := model.StepIndex(0); i < model.StepCount; i++ {
		marker := " "
		if completed[int(i)] {
			marker = "x"
		}
		cursor := "  "
		if i == summary.CurrentStep {
			cursor = "> "
		}
		fmt.Fprintf(t.writer, "  %s[%s] %d. %s\n", cursor, marker, int(i)+1, i)
	}

	if d := summary.Draft; d.Platform.Platform != "" {
		fmt.Fprintf(t.writer, "Platform: %s\n", d.Platform.Platform)
	}
	if d := summary.Draft; d.TaskType.Type != "" {
		fmt.Fprintf(t.writer, "Type:     %s\n", d.TaskType.Type)
	}
	if d := summary.Draft; d.Instructions.Title != "" {
		fmt.Fprintf(t.writer, "Title:    %s\n", d.Instructions.Title)
	}
	if d := summary.Draft; d.Budget.TaskCount > 0 {
		fmt.Fprintf(t.writer, "Budget:   %.2f x %d (total: %.2f)\n",
			d.Budget.BudgetPerTask, d.Budget.TaskCount, d.Budget.TotalCost)
	}

	if len(summary.StepErrors) > 0 {
		fmt.Fprintln(t.writer, "Errors:")
		fields := make([]string, 0, len(summary.StepErrors))
		for f := range summary.StepErrors {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(t.writer, "  %s: %s\n", f, summary.StepErrors[f])
		}
	}

	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}
