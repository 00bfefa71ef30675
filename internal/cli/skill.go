package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/planvault/internal/ports/primary"
	"github.com/example/planvault/internal/wire"
)

// SkillCmd returns the skill command
func SkillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skill",
		Short: "Manage the skill catalog",
		Long:  "Register, list, update, and remove indexed skill documents.",
	}

	cmd.AddCommand(skillAddCmd())
	cmd.AddCommand(skillListCmd())
	cmd.AddCommand(skillShowCmd())
	cmd.AddCommand(skillUpdateCmd())
	cmd.AddCommand(skillDeleteCmd())

	return cmd
}

func skillAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Register a skill document",
		Long: `Register a skill document in the catalog. The content is read from
the file at --path unless --content is given. Token count is computed
automatically when not supplied.

Examples:
  planvault skill add channels --path skills/go/channels.md --category go
  planvault skill add errors --path skills/go/errors.md --content "Wrap with %w"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("path")
			category, _ := cmd.Flags().GetString("category")
			title, _ := cmd.Flags().GetString("title")
			description, _ := cmd.Flags().GetString("description")
			content, _ := cmd.Flags().GetString("content")

			if content == "" {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				content = string(data)
			}

			skill, err := wire.SkillService().CreateSkill(NewContext(), primary.CreateSkillRequest{
				FilePath:    path,
				Category:    category,
				Name:        args[0],
				Title:       title,
				Description: description,
				Content:     content,
			})
			if err != nil {
				return fmt.Errorf("failed to add skill: %w", err)
			}

			fmt.Printf("✓ Added skill %d: %s (%d tokens, %d bytes)\n",
				skill.ID, skill.Name, skill.TokenCount, skill.SizeBytes)
			return nil
		},
	}

	cmd.Flags().String("path", "", "Unique file path")
	cmd.Flags().String("category", "", "Category")
	cmd.Flags().String("title", "", "Title")
	cmd.Flags().String("description", "", "Description")
	cmd.Flags().String("content", "", "Content (otherwise read from --path)")
	cmd.MarkFlagRequired("path")

	return cmd
}

func skillListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List skills ordered by file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")

			skills, err := wire.SkillService().ListSkills(NewContext(), primary.SkillFilters{
				Category: category,
				Limit:    limit,
				Offset:   offset,
			})
			if err != nil {
				return fmt.Errorf("failed to list skills: %w", err)
			}

			if len(skills) == 0 {
				fmt.Println("No skills found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPATH\tTOKENS")
			fmt.Fprintln(w, "--\t----\t--------\t----\t------")
			for _, s := range skills {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n",
					s.ID, s.Name, dash(s.Category), s.FilePath, s.TokenCount)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().String("category", "", "Filter by category")
	cmd.Flags().Int("limit", 0, "Maximum rows")
	cmd.Flags().Int("offset", 0, "Rows to skip")

	return cmd
}

func skillShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id|path]",
		Short: "Show skill details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()
			var skill *primary.Skill
			if id, err := parseID(args[0]); err == nil {
				skill, err = wire.SkillService().GetSkill(ctx, id)
				if err != nil {
					return err
				}
			} else {
				skill, err = wire.SkillService().GetSkillByPath(ctx, args[0])
				if err != nil {
					return err
				}
			}

			fmt.Printf("Skill: %d\n", skill.ID)
			fmt.Printf("Name: %s\n", skill.Name)
			fmt.Printf("Path: %s\n", skill.FilePath)
			if skill.Category != "" {
				fmt.Printf("Category: %s\n", skill.Category)
			}
			if skill.Title != "" {
				fmt.Printf("Title: %s\n", skill.Title)
			}
			if skill.Description != "" {
				fmt.Printf("Description: %s\n", skill.Description)
			}
			fmt.Printf("Size: %d bytes, %d tokens\n", skill.SizeBytes, skill.TokenCount)
			fmt.Printf("Created: %s\n", skill.CreatedAt)
			fmt.Printf("Updated: %s\n", skill.UpdatedAt)

			full, _ := cmd.Flags().GetBool("content")
			if full && skill.Content != "" {
				fmt.Printf("\n%s\n", skill.Content)
			}
			return nil
		},
	}

	cmd.Flags().Bool("content", false, "Print the full content")

	return cmd
}

func skillUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update skill fields",
		Long: `Update skill fields. Changing the content recomputes the token
count and size unless explicit values are given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			path, _ := flags.GetString("path")
			category, _ := flags.GetString("category")
			name, _ := flags.GetString("name")
			title, _ := flags.GetString("title")
			description, _ := flags.GetString("description")
			content, _ := flags.GetString("content")

			skill, err := wire.SkillService().UpdateSkill(NewContext(), id, primary.UpdateSkillRequest{
				FilePath:    strFlag(flags.Changed("path"), path),
				Category:    strFlag(flags.Changed("category"), category),
				Name:        strFlag(flags.Changed("name"), name),
				Title:       strFlag(flags.Changed("title"), title),
				Description: strFlag(flags.Changed("description"), description),
				Content:     strFlag(flags.Changed("content"), content),
			})
			if err != nil {
				return fmt.Errorf("failed to update skill: %w", err)
			}

			fmt.Printf("✓ Skill %d updated (%d tokens)\n", skill.ID, skill.TokenCount)
			return nil
		},
	}

	cmd.Flags().String("path", "", "New file path")
	cmd.Flags().String("category", "", "New category")
	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("content", "", "New content")

	return cmd
}

func skillDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a skill and its attachments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			skill, err := wire.SkillService().DeleteSkill(NewContext(), id)
			if err != nil {
				return fmt.Errorf("failed to delete skill: %w", err)
			}
			fmt.Printf("✓ Deleted skill %d: %s\n", skill.ID, skill.Name)
			return nil
		},
	}
}
