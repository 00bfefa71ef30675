package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/planvault/internal/ports/primary"
	"github.com/example/planvault/internal/wire"
)

// PlanCmd returns the plan command
func PlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage implementation plans",
		Long:  "Create, list, update, and manage implementation plans in the vault.",
	}

	cmd.AddCommand(planCreateCmd())
	cmd.AddCommand(planListCmd())
	cmd.AddCommand(planShowCmd())
	cmd.AddCommand(planUpdateCmd())
	cmd.AddCommand(planCompleteCmd())
	cmd.AddCommand(planArchiveCmd())
	cmd.AddCommand(planDeleteCmd())

	return cmd
}

func planCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new plan",
		Long: `Create a new implementation plan.

The name must be unique across all plans.

Examples:
  planvault plan create auth-redesign --title "Auth redesign"
  planvault plan create migration-v2 --title "Schema v2" --assignee alice`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			summary, _ := cmd.Flags().GetString("summary")
			description, _ := cmd.Flags().GetString("description")
			content, _ := cmd.Flags().GetString("content")
			status, _ := cmd.Flags().GetString("status")
			createdBy, _ := cmd.Flags().GetString("created-by")
			assignedTo, _ := cmd.Flags().GetString("assignee")

			plan, err := wire.PlanService().CreatePlan(NewContext(), primary.CreatePlanRequest{
				Name:        args[0],
				Title:       title,
				Summary:     summary,
				Description: description,
				Content:     content,
				Status:      status,
				CreatedBy:   createdBy,
				AssignedTo:  assignedTo,
			})
			if err != nil {
				return fmt.Errorf("failed to create plan: %w", err)
			}

			fmt.Printf("✓ Created plan %d: %s\n", plan.ID, plan.Name)
			fmt.Printf("  Status: %s\n", plan.Status)
			if plan.AssignedTo != "" {
				fmt.Printf("  Assignee: %s\n", plan.AssignedTo)
			}
			return nil
		},
	}

	cmd.Flags().String("title", "", "Plan title")
	cmd.Flags().String("summary", "", "One-line summary")
	cmd.Flags().String("description", "", "Longer description")
	cmd.Flags().String("content", "", "Plan body")
	cmd.Flags().String("status", "", "Initial status (default draft)")
	cmd.Flags().String("created-by", "", "Author")
	cmd.Flags().String("assignee", "", "Assignee")

	return cmd
}

func planListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List plans, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, _ := cmd.Flags().GetString("status")
			assignee, _ := cmd.Flags().GetString("assignee")
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")

			plans, err := wire.PlanService().ListPlans(NewContext(), primary.PlanFilters{
				Status:     status,
				AssignedTo: assignee,
				Limit:      limit,
				Offset:     offset,
			})
			if err != nil {
				return fmt.Errorf("failed to list plans: %w", err)
			}

			if len(plans) == 0 {
				fmt.Println("No plans found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTITLE\tSTATUS\tASSIGNEE")
			fmt.Fprintln(w, "--\t----\t-----\t------\t--------")
			for _, p := range plans {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					p.ID, p.Name, truncate(p.Title, 40), p.Status, dash(p.AssignedTo))
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().String("status", "", "Filter by status")
	cmd.Flags().String("assignee", "", "Filter by assignee")
	cmd.Flags().Int("limit", 0, "Maximum rows")
	cmd.Flags().Int("offset", 0, "Rows to skip")

	return cmd
}

func planShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id|name]",
		Short: "Show plan details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()
			var plan *primary.Plan
			if id, err := parseID(args[0]); err == nil {
				plan, err = wire.PlanService().GetPlan(ctx, id)
				if err != nil {
					return err
				}
			} else {
				plan, err = wire.PlanService().GetPlanByName(ctx, args[0])
				if err != nil {
					return err
				}
			}

			fmt.Printf("Plan: %d\n", plan.ID)
			fmt.Printf("Name: %s\n", plan.Name)
			fmt.Printf("Title: %s\n", plan.Title)
			fmt.Printf("Status: %s\n", plan.Status)
			if plan.Summary != "" {
				fmt.Printf("Summary: %s\n", plan.Summary)
			}
			if plan.Description != "" {
				fmt.Printf("Description: %s\n", plan.Description)
			}
			if plan.CreatedBy != "" {
				fmt.Printf("Created by: %s\n", plan.CreatedBy)
			}
			if plan.AssignedTo != "" {
				fmt.Printf("Assignee: %s\n", plan.AssignedTo)
			}
			fmt.Printf("Created: %s\n", plan.CreatedAt)
			fmt.Printf("Updated: %s\n", plan.UpdatedAt)
			if plan.CompletedAt != "" {
				fmt.Printf("Completed: %s\n", plan.CompletedAt)
			}
			if plan.Content != "" {
				fmt.Printf("\nContent:\n%s\n", plan.Content)
			}
			return nil
		},
	}
}

func planUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update plan fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			name, _ := flags.GetString("name")
			title, _ := flags.GetString("title")
			summary, _ := flags.GetString("summary")
			description, _ := flags.GetString("description")
			content, _ := flags.GetString("content")
			status, _ := flags.GetString("status")
			assignee, _ := flags.GetString("assignee")

			plan, err := wire.PlanService().UpdatePlan(NewContext(), id, primary.UpdatePlanRequest{
				Name:        strFlag(flags.Changed("name"), name),
				Title:       strFlag(flags.Changed("title"), title),
				Summary:     strFlag(flags.Changed("summary"), summary),
				Description: strFlag(flags.Changed("description"), description),
				Content:     strFlag(flags.Changed("content"), content),
				Status:      strFlag(flags.Changed("status"), status),
				AssignedTo:  strFlag(flags.Changed("assignee"), assignee),
			})
			if err != nil {
				return fmt.Errorf("failed to update plan: %w", err)
			}

			fmt.Printf("✓ Plan %d updated (status: %s)\n", plan.ID, plan.Status)
			return nil
		},
	}

	cmd.Flags().String("name", "", "New unique name")
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("summary", "", "New summary")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("content", "", "New body")
	cmd.Flags().String("status", "", "New status")
	cmd.Flags().String("assignee", "", "New assignee")

	return cmd
}

func planCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete [id]",
		Short: "Mark a plan completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			plan, err := wire.PlanService().CompletePlan(NewContext(), id)
			if err != nil {
				return fmt.Errorf("failed to complete plan: %w", err)
			}
			fmt.Printf("✓ Plan %d completed at %s\n", plan.ID, plan.CompletedAt)
			return nil
		},
	}
}

func planArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive [id]",
		Short: "Archive a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := wire.PlanService().ArchivePlan(NewContext(), id); err != nil {
				return fmt.Errorf("failed to archive plan: %w", err)
			}
			fmt.Printf("✓ Plan %d archived\n", id)
			return nil
		},
	}
}

func planDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a plan and everything under it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			plan, err := wire.PlanService().DeletePlan(NewContext(), id)
			if err != nil {
				return fmt.Errorf("failed to delete plan: %w", err)
			}
			fmt.Printf("✓ Deleted plan %d: %s\n", plan.ID, plan.Name)
			return nil
		},
	}
}
