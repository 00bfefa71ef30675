package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/planvault/internal/cli"
	"github.com/example/planvault/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "planvault",
		Short:   "planvault - local vault for plans, skills, and prompts",
		Version: version.String(),
		Long: `planvault stores implementation plans with their task lists and tasks,
plus a searchable catalog of skills, prompts, and fragments, in a single
SQLite database.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.PlanCmd())
	rootCmd.AddCommand(cli.TaskListCmd())
	rootCmd.AddCommand(cli.TaskCmd())
	rootCmd.AddCommand(cli.SkillCmd())
	rootCmd.AddCommand(cli.PromptCmd())
	rootCmd.AddCommand(cli.FragmentCmd())
	rootCmd.AddCommand(cli.SearchCmd())
	rootCmd.AddCommand(cli.MigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
