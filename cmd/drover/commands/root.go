// Package commands implements the CLI commands for the drover task engine.
package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.drover.dev/drover/internal/app"
	"go.drover.dev/drover/internal/build"
	"go.drover.dev/drover/internal/core/domain"
)

// CLI represents the command line interface for drover.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "drover",
		Short:         "An autonomous task execution engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "drover.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "Approve confirmation prompts without asking")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		yes, err := cmd.Flags().GetBool("yes")
		if err != nil {
			return err
		}
		if yes {
			a.SetConfirm(nil)
		} else {
			a.SetConfirm(promptConfirm)
		}
		return nil
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newResumeCmd())
	rootCmd.AddCommand(c.newPlanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects the root command's output streams. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}

func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}

// promptConfirm asks on the terminal before a task that requires
// confirmation runs.
func promptConfirm(task *domain.Task) bool {
	title := task.Title
	if title == "" {
		title = task.Description
	}
	fmt.Printf("Task %q (%s) requires confirmation. Proceed? [y/N]: ", title, task.Category)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
