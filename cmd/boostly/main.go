package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"
	"github.com/sirupsen/logrus"

	"github.com/boostly/boostly/cmd/boostly/commands"
	"github.com/boostly/boostly/internal/log"
	loglogrus "github.com/boostly/boostly/internal/log/logrus"
)

const (
	// Version is the application version (set via ldflags).
	Version = "dev"
)

// Run runs the main application.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	app := kingpin.New("boostly", "Marketplace task creation and lifecycle tool.")
	app.DefaultEnvars()
	rootCmd := commands.NewRootCommand(app)

	// Setup commands (registers flags).
	draftCmd := commands.NewDraftCommand(app)
	draftPlatformCmd := commands.NewDraftPlatformCommand(rootCmd, draftCmd)
	draftTypeCmd := commands.NewDraftTypeCommand(rootCmd, draftCmd)
	draftContentCmd := commands.NewDraftContentCommand(rootCmd, draftCmd)
	draftBudgetCmd := commands.NewDraftBudgetCommand(rootCmd, draftCmd)
	draftTargetingCmd := commands.NewDraftTargetingCommand(rootCmd, draftCmd)
	draftNextCmd := commands.NewDraftNextCommand(rootCmd, draftCmd)
	draftBackCmd := commands.NewDraftBackCommand(rootCmd, draftCmd)
	draftGotoCmd := commands.NewDraftGotoCommand(rootCmd, draftCmd)
	draftShowCmd := commands.NewDraftShowCommand(rootCmd, draftCmd)
	draftEditCmd := commands.NewDraftEditCommand(rootCmd, draftCmd)
	draftSubmitCmd := commands.NewDraftSubmitCommand(rootCmd, draftCmd)
	draftDiscardCmd := commands.NewDraftDiscardCommand(rootCmd, draftCmd)

	taskCmd := commands.NewTaskCommand(app)
	taskListCmd := commands.NewTaskListCommand(rootCmd, taskCmd)
	taskStatusCmd := commands.NewTaskStatusCommand(rootCmd, taskCmd)
	taskPublishCmd := commands.NewTaskPublishCommand(rootCmd, taskCmd)
	taskPauseCmd := commands.NewTaskPauseCommand(rootCmd, taskCmd)
	taskResumeCmd := commands.NewTaskResumeCommand(rootCmd, taskCmd)
	taskCancelCmd := commands.NewTaskCancelCommand(rootCmd, taskCmd)
	taskClaimCmd := commands.NewTaskClaimCommand(rootCmd, taskCmd)
	taskProofCmd := commands.NewTaskProofCommand(rootCmd, taskCmd)

	cmds := map[string]commands.Command{
		draftPlatformCmd.Name():  draftPlatformCmd,
		draftTypeCmd.Name():      draftTypeCmd,
		draftContentCmd.Name():   draftContentCmd,
		draftBudgetCmd.Name():    draftBudgetCmd,
		draftTargetingCmd.Name(): draftTargetingCmd,
		draftNextCmd.Name():      draftNextCmd,
		draftBackCmd.Name():      draftBackCmd,
		draftGotoCmd.Name():      draftGotoCmd,
		draftShowCmd.Name():      draftShowCmd,
		draftEditCmd.Name():      draftEditCmd,
		draftSubmitCmd.Name():    draftSubmitCmd,
		draftDiscardCmd.Name():   draftDiscardCmd,
		taskListCmd.Name():       taskListCmd,
		taskStatusCmd.Name():     taskStatusCmd,
		taskPublishCmd.Name():    taskPublishCmd,
		taskPauseCmd.Name():      taskPauseCmd,
		taskResumeCmd.Name():     taskResumeCmd,
		taskCancelCmd.Name():     taskCancelCmd,
		taskClaimCmd.Name():      taskClaimCmd,
		taskProofCmd.Name():      taskProofCmd,
	}

	// Parse command.
	cmdName, err := app.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	// Set standard input/output.
	rootCmd.Stdin = stdin
	rootCmd.Stdout = stdout
	rootCmd.Stderr = stderr

	// Auto-suppress logging for commands that produce structured output (table/JSON)
	// to prevent log noise from mixing with printer output in the terminal.
	// Users can still enable logging with --debug.
	printerCommands := map[string]bool{
		"draft show":  true,
		"task list":   true,
		"task status": true,
	}
	if printerCommands[cmdName] && !rootCmd.Debug {
		rootCmd.NoLog = true
	}

	// Set logger.
	rootCmd.Logger = getLogger(ctx, *rootCmd)

	// Fill API settings from the config file, flags and env vars win.
	if err := rootCmd.ResolveConfig(ctx); err != nil {
		return err
	}

	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				rootCmd.Logger.Debugf("Termination signal received")
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// Execute command.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				err := cmds[cmdName].Run(ctx)
				if err != nil {
					return fmt.Errorf("%q command failed: %w", cmdName, err)
				}
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

// getLogger returns the application logger.
func getLogger(ctx context.Context, config commands.RootCommand) log.Logger {
	if config.NoLog {
		return log.Noop
	}

	// If logger not disabled use logrus logger.
	logrusLog := logrus.New()
	logrusLog.Out = config.Stderr // By default logger goes to stderr (so it can split stdout prints).
	logrusLogEntry := logrus.NewEntry(logrusLog)

	if config.Debug {
		logrusLogEntry.Logger.SetLevel(logrus.DebugLevel)
	}

	// Log format.
	switch config.LoggerType {
	case commands.LoggerTypeDefault:
		logrusLogEntry.Logger.SetFormatter(&logrus.TextFormatter{
			ForceColors:   !config.NoColor,
			DisableColors: config.NoColor,
		})
	case commands.LoggerTypeJSON:
		logrusLogEntry.Logger.SetFormatter(&logrus.JSONFormatter{})
	}

	logger := loglogrus.NewLogrus(logrusLogEntry).WithValues(log.Kv{
		"version": Version,
	})

	logger.Debugf("Debug level is enabled") // Will log only when debug enabled.

	return logger
}

func main() {
	ctx := context.Background()
	err := Run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
