package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/planvault/internal/ports/primary"
	"github.com/example/planvault/internal/wire"
)

// TaskListCmd returns the tasklist command
func TaskListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasklist",
		Short: "Manage task lists within a plan",
	}

	cmd.AddCommand(taskListCreateCmd())
	cmd.AddCommand(taskListListCmd())
	cmd.AddCommand(taskListUpdateCmd())
	cmd.AddCommand(taskListDeleteCmd())
	cmd.AddCommand(taskListReorderCmd())

	return cmd
}

// TaskCmd returns the task command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks within a task list",
	}

	cmd.AddCommand(taskCreateCmd())
	cmd.AddCommand(taskListTasksCmd())
	cmd.AddCommand(taskUpdateCmd())
	cmd.AddCommand(taskCompleteCmd())
	cmd.AddCommand(taskDeleteCmd())
	cmd.AddCommand(taskReorderCmd())

	return cmd
}

func taskListCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a task list under a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			planID, _ := cmd.Flags().GetInt64("plan")
			description, _ := cmd.Flags().GetString("description")
			position, _ := cmd.Flags().GetInt("position")

			list, err := wire.TaskListService().CreateTaskList(NewContext(), primary.CreateTaskListRequest{
				PlanID:      planID,
				Name:        args[0],
				Description: description,
				Position:    position,
			})
			if err != nil {
				return fmt.Errorf("failed to create task list: %w", err)
			}

			fmt.Printf("✓ Created task list %d: %s (position %d)\n", list.ID, list.Name, list.Position)
			return nil
		},
	}

	cmd.Flags().Int64("plan", 0, "Plan ID")
	cmd.Flags().String("description", "", "Description")
	cmd.Flags().Int("position", -1, "Position within the plan (-1 appends)")
	cmd.MarkFlagRequired("plan")

	return cmd
}

func taskListListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a plan's task lists in position order",
		RunE: func(cmd *cobra.Command, args []string) error {
			planID, _ := cmd.Flags().GetInt64("plan")
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")

			lists, err := wire.TaskListService().ListTaskLists(NewContext(), planID, limit, offset)
			if err != nil {
				return fmt.Errorf("failed to list task lists: %w", err)
			}

			if len(lists) == 0 {
				fmt.Println("No task lists found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPOS\tNAME\tDESCRIPTION")
			fmt.Fprintln(w, "--\t---\t----\t-----------")
			for _, l := range lists {
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", l.ID, l.Position, l.Name, truncate(dash(l.Description), 50))
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().Int64("plan", 0, "Plan ID")
	cmd.Flags().Int("limit", 0, "Maximum rows")
	cmd.Flags().Int("offset", 0, "Rows to skip")
	cmd.MarkFlagRequired("plan")

	return cmd
}

func taskListUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update task list fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			name, _ := flags.GetString("name")
			description, _ := flags.GetString("description")
			position, _ := flags.GetInt("position")

			list, err := wire.TaskListService().UpdateTaskList(NewContext(), id, primary.UpdateTaskListRequest{
				Name:        strFlag(flags.Changed("name"), name),
				Description: strFlag(flags.Changed("description"), description),
				Position:    intFlag(flags.Changed("position"), position),
			})
			if err != nil {
				return fmt.Errorf("failed to update task list: %w", err)
			}

			fmt.Printf("✓ Task list %d updated\n", list.ID)
			return nil
		},
	}

	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().Int("position", 0, "New position")

	return cmd
}

func taskListDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a task list and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			list, err := wire.TaskListService().DeleteTaskList(NewContext(), id)
			if err != nil {
				return fmt.Errorf("failed to delete task list: %w", err)
			}
			fmt.Printf("✓ Deleted task list %d: %s\n", list.ID, list.Name)
			return nil
		},
	}
}

func taskListReorderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder [id=position ...]",
		Short: "Reorder a plan's task lists atomically",
		Long: `Reorder a plan's task lists. Each argument assigns one list a new
position. The whole batch applies atomically or not at all.

Example:
  planvault tasklist reorder --plan 3 12=0 10=1 11=2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			planID, _ := cmd.Flags().GetInt64("plan")
			positions, err := parsePositions(args)
			if err != nil {
				return err
			}
			if err := wire.TaskListService().ReorderTaskLists(NewContext(), planID, positions); err != nil {
				return fmt.Errorf("failed to reorder task lists: %w", err)
			}
			fmt.Printf("✓ Reordered %d task lists\n", len(positions))
			return nil
		},
	}

	cmd.Flags().Int64("plan", 0, "Plan ID")
	cmd.MarkFlagRequired("plan")

	return cmd
}

func taskCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a task under a task list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, _ := cmd.Flags().GetInt64("list")
			description, _ := cmd.Flags().GetString("description")
			position, _ := cmd.Flags().GetInt("position")
			assignee, _ := cmd.Flags().GetString("assignee")

			task, err := wire.TaskService().CreateTask(NewContext(), primary.CreateTaskRequest{
				TaskListID:  listID,
				Name:        args[0],
				Description: description,
				Position:    position,
				AssignedTo:  assignee,
			})
			if err != nil {
				return fmt.Errorf("failed to create task: %w", err)
			}

			fmt.Printf("✓ Created task %d: %s (position %d)\n", task.ID, task.Name, task.Position)
			return nil
		},
	}

	cmd.Flags().Int64("list", 0, "Task list ID")
	cmd.Flags().String("description", "", "Description")
	cmd.Flags().Int("position", -1, "Position within the list (-1 appends)")
	cmd.Flags().String("assignee", "", "Assignee")
	cmd.MarkFlagRequired("list")

	return cmd
}

func taskListTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a task list's tasks in position order",
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, _ := cmd.Flags().GetInt64("list")
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")

			tasks, err := wire.TaskService().ListTasks(NewContext(), listID, limit, offset)
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPOS\tDONE\tNAME\tASSIGNEE")
			fmt.Fprintln(w, "--\t---\t----\t----\t--------")
			for _, t := range tasks {
				done := " "
				if t.Completed {
					done = "✓"
				}
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", t.ID, t.Position, done, t.Name, dash(t.AssignedTo))
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().Int64("list", 0, "Task list ID")
	cmd.Flags().Int("limit", 0, "Maximum rows")
	cmd.Flags().Int("offset", 0, "Rows to skip")
	cmd.MarkFlagRequired("list")

	return cmd
}

func taskUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update task fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			name, _ := flags.GetString("name")
			description, _ := flags.GetString("description")
			position, _ := flags.GetInt("position")
			assignee, _ := flags.GetString("assignee")
			completed, _ := flags.GetBool("completed")

			var completedPtr *bool
			if flags.Changed("completed") {
				completedPtr = &completed
			}

			task, err := wire.TaskService().UpdateTask(NewContext(), id, primary.UpdateTaskRequest{
				Name:        strFlag(flags.Changed("name"), name),
				Description: strFlag(flags.Changed("description"), description),
				Completed:   completedPtr,
				Position:    intFlag(flags.Changed("position"), position),
				AssignedTo:  strFlag(flags.Changed("assignee"), assignee),
			})
			if err != nil {
				return fmt.Errorf("failed to update task: %w", err)
			}

			fmt.Printf("✓ Task %d updated\n", task.ID)
			return nil
		},
	}

	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().Int("position", 0, "New position")
	cmd.Flags().String("assignee", "", "New assignee")
	cmd.Flags().Bool("completed", false, "Set completion state")

	return cmd
}

func taskCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete [id]",
		Short: "Mark a task done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			task, err := wire.TaskService().CompleteTask(NewContext(), id)
			if err != nil {
				return fmt.Errorf("failed to complete task: %w", err)
			}
			fmt.Printf("✓ Task %d done at %s\n", task.ID, task.CompletedAt)
			return nil
		},
	}
}

func taskDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			task, err := wire.TaskService().DeleteTask(NewContext(), id)
			if err != nil {
				return fmt.Errorf("failed to delete task: %w", err)
			}
			fmt.Printf("✓ Deleted task %d: %s\n", task.ID, task.Name)
			return nil
		},
	}
}

func taskReorderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder [id=position ...]",
		Short: "Reorder a task list's tasks atomically",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, _ := cmd.Flags().GetInt64("list")
			positions, err := parsePositions(args)
			if err != nil {
				return err
			}
			if err := wire.TaskService().ReorderTasks(NewContext(), listID, positions); err != nil {
				return fmt.Errorf("failed to reorder tasks: %w", err)
			}
			fmt.Printf("✓ Reordered %d tasks\n", len(positions))
			return nil
		},
	}

	cmd.Flags().Int64("list", 0, "Task list ID")
	cmd.MarkFlagRequired("list")

	return cmd
}
