package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/planvault/internal/ports/primary"
	"github.com/example/planvault/internal/wire"
)

// PromptCmd returns the prompt command
func PromptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Manage the prompt catalog",
		Long:  "Register prompts, attach skills, and link prompts to each other or to fragments.",
	}

	cmd.AddCommand(promptAddCmd())
	cmd.AddCommand(promptListCmd())
	cmd.AddCommand(promptShowCmd())
	cmd.AddCommand(promptUpdateCmd())
	cmd.AddCommand(promptDeleteCmd())
	cmd.AddCommand(promptSkillCmd())
	cmd.AddCommand(promptRefCmd())

	return cmd
}

// FragmentCmd returns the fragment command
func FragmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fragment",
		Short: "Manage reusable prompt fragments",
	}

	cmd.AddCommand(fragmentCreateCmd())
	cmd.AddCommand(fragmentListCmd())
	cmd.AddCommand(fragmentShowCmd())
	cmd.AddCommand(fragmentUpdateCmd())
	cmd.AddCommand(fragmentDeleteCmd())
	cmd.AddCommand(fragmentSkillCmd())

	return cmd
}

func promptAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Register a prompt document",
		Args:  cobra.ExactArgs(1),
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

			prompt, err := wire.PromptService().CreatePrompt(NewContext(), primary.CreatePromptRequest{
				FilePath:    path,
				Category:    category,
				Name:        args[0],
				Title:       title,
				Description: description,
				Content:     content,
			})
			if err != nil {
				return fmt.Errorf("failed to add prompt: %w", err)
			}

			fmt.Printf("✓ Added prompt %d: %s (%d tokens)\n", prompt.ID, prompt.Name, prompt.TokenCount)
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

func promptListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List prompts ordered by file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")

			prompts, err := wire.PromptService().ListPrompts(NewContext(), primary.SkillFilters{
				Category: category,
				Limit:    limit,
				Offset:   offset,
			})
			if err != nil {
				return fmt.Errorf("failed to list prompts: %w", err)
			}

			if len(prompts) == 0 {
				fmt.Println("No prompts found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPATH\tTOKENS")
			fmt.Fprintln(w, "--\t----\t--------\t----\t------")
			for _, p := range prompts {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n",
					p.ID, p.Name, dash(p.Category), p.FilePath, p.TokenCount)
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

func promptShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id|path]",
		Short: "Show prompt details, attachments, and references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()
			var prompt *primary.Prompt
			if id, err := parseID(args[0]); err == nil {
				prompt, err = wire.PromptService().GetPrompt(ctx, id)
				if err != nil {
					return err
				}
			} else {
				prompt, err = wire.PromptService().GetPromptByPath(ctx, args[0])
				if err != nil {
					return err
				}
			}

			fmt.Printf("Prompt: %d\n", prompt.ID)
			fmt.Printf("Name: %s\n", prompt.Name)
			fmt.Printf("Path: %s\n", prompt.FilePath)
			if prompt.Category != "" {
				fmt.Printf("Category: %s\n", prompt.Category)
			}
			if prompt.Title != "" {
				fmt.Printf("Title: %s\n", prompt.Title)
			}
			fmt.Printf("Size: %d bytes, %d tokens\n", prompt.SizeBytes, prompt.TokenCount)
			fmt.Printf("Created: %s\n", prompt.CreatedAt)

			skills, err := wire.PromptService().ListPromptSkills(ctx, prompt.ID)
			if err != nil {
				return err
			}
			if len(skills) > 0 {
				fmt.Println("\nSkills:")
				for _, s := range skills {
					name := ""
					if s.Skill != nil {
						name = s.Skill.Name
					}
					fmt.Printf("  %d. %s (skill %d)\n", s.Position, name, s.SkillID)
				}
			}

			refs, err := wire.PromptService().ListReferences(ctx, prompt.ID)
			if err != nil {
				return err
			}
			if len(refs) > 0 {
				fmt.Println("\nReferences:")
				for _, r := range refs {
					target := fmt.Sprintf("prompt %d", r.TargetPromptID)
					if r.ReferenceType == "fragment" {
						target = fmt.Sprintf("fragment %d", r.FragmentID)
					}
					fmt.Printf("  %d. %s (ref %d)\n", r.Position, target, r.ID)
				}
			}
			return nil
		},
	}

	return cmd
}

func promptUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update prompt fields",
		Args:  cobra.ExactArgs(1),
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

			prompt, err := wire.PromptService().UpdatePrompt(NewContext(), id, primary.UpdatePromptRequest{
				FilePath:    strFlag(flags.Changed("path"), path),
				Category:    strFlag(flags.Changed("category"), category),
				Name:        strFlag(flags.Changed("name"), name),
				Title:       strFlag(flags.Changed("title"), title),
				Description: strFlag(flags.Changed("description"), description),
				Content:     strFlag(flags.Changed("content"), content),
			})
			if err != nil {
				return fmt.Errorf("failed to update prompt: %w", err)
			}

			fmt.Printf("✓ Prompt %d updated (%d tokens)\n", prompt.ID, prompt.TokenCount)
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

func promptDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a prompt, its attachments, and its references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			prompt, err := wire.PromptService().DeletePrompt(NewContext(), id)
			if err != nil {
				return fmt.Errorf("failed to delete prompt: %w", err)
			}
			fmt.Printf("✓ Deleted prompt %d: %s\n", prompt.ID, prompt.Name)
			return nil
		},
	}
}

func promptSkillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skill",
		Short: "Manage a prompt's skill attachments",
	}

	attach := &cobra.Command{
		Use:   "attach [prompt-id] [skill-id]",
		Short: "Attach a skill at the next position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			promptID, err := parseID(args[0])
			if err != nil {
				return err
			}
			skillID, err := parseID(args[1])
			if err != nil {
				return err
			}
			attached, err := wire.PromptService().AttachSkillToPrompt(NewContext(), promptID, skillID)
			if err != nil {
				return fmt.Errorf("failed to attach skill: %w", err)
			}
			fmt.Printf("✓ Attached skill %d at position %d\n", attached.SkillID, attached.Position)
			return nil
		},
	}

	detach := &cobra.Command{
		Use:   "detach [prompt-id] [skill-id]",
		Short: "Detach a skill",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			promptID, err := parseID(args[0])
			if err != nil {
				return err
			}
			skillID, err := parseID(args[1])
			if err != nil {
				return err
			}
			if err := wire.PromptService().DetachSkillFromPrompt(NewContext(), promptID, skillID); err != nil {
				return fmt.Errorf("failed to detach skill: %w", err)
			}
			fmt.Printf("✓ Detached skill %d from prompt %d\n", skillID, promptID)
			return nil
		},
	}

	reorder := &cobra.Command{
		Use:   "reorder [prompt-id] [skill-id=position ...]",
		Short: "Reorder a prompt's skills atomically",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			promptID, err := parseID(args[0])
			if err != nil {
				return err
			}
			positions, err := parsePositions(args[1:])
			if err != nil {
				return err
			}
			if err := wire.PromptService().ReorderPromptSkills(NewContext(), promptID, positions); err != nil {
				return fmt.Errorf("failed to reorder skills: %w", err)
			}
			fmt.Printf("✓ Reordered %d skills\n", len(positions))
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list [prompt-id]",
		Short: "List attached skills in position order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			promptID, err := parseID(args[0])
			if err != nil {
				return err
			}
			skills, err := wire.PromptService().ListPromptSkills(NewContext(), promptID)
			if err != nil {
				return fmt.Errorf("failed to list skills: %w", err)
			}
			if len(skills) == 0 {
				fmt.Println("No skills attached.")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "POS\tSKILL\tNAME")
			for _, s := range skills {
				name := ""
				if s.Skill != nil {
					name = s.Skill.Name
				}
				fmt.Fprintf(w, "%d\t%d\t%s\n", s.Position, s.SkillID, name)
			}
			w.Flush()
			return nil
		},
	}

	cmd.AddCommand(attach, detach, reorder, list)
	return cmd
}

func promptRefCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ref",
		Short: "Manage a prompt's references to prompts and fragments",
	}

	add := &cobra.Command{
		Use:   "add [prompt-id]",
		Short: "Append a reference to another prompt or a fragment",
		Long: `Append a reference. Exactly one of --to-prompt and --to-fragment must
be given.

Examples:
  planvault prompt ref add 4 --to-prompt 9
  planvault prompt ref add 4 --to-fragment 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			promptID, err := parseID(args[0])
			if err != nil {
				return err
			}
			toPrompt, _ := cmd.Flags().GetInt64("to-prompt")
			toFragment, _ := cmd.Flags().GetInt64("to-fragment")

			req := primary.AddReferenceRequest{PromptID: promptID}
			switch {
			case toPrompt != 0:
				req.ReferenceType = "prompt"
				req.TargetPromptID = toPrompt
			case toFragment != 0:
				req.ReferenceType = "fragment"
				req.FragmentID = toFragment
			}

			ref, err := wire.PromptService().AddReference(NewContext(), req)
			if err != nil {
				return fmt.Errorf("failed to add reference: %w", err)
			}
			fmt.Printf("✓ Added reference %d at position %d\n", ref.ID, ref.Position)
			return nil
		},
	}
	add.Flags().Int64("to-prompt", 0, "Target prompt ID")
	add.Flags().Int64("to-fragment", 0, "Target fragment ID")

	list := &cobra.Command{
		Use:   "list [prompt-id]",
		Short: "List references in position order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			promptID, err := parseID(args[0])
			if err != nil {
				return err
			}
			refs, err := wire.PromptService().ListReferences(NewContext(), promptID)
			if err != nil {
				return fmt.Errorf("failed to list references: %w", err)
			}
			if len(refs) == 0 {
				fmt.Println("No references.")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPOS\tTYPE\tTARGET")
			for _, r := range refs {
				target := r.TargetPromptID
				if r.ReferenceType == "fragment" {
					target = r.FragmentID
				}
				fmt.Fprintf(w, "%d\t%d\t%s\t%d\n", r.ID, r.Position, r.ReferenceType, target)
			}
			w.Flush()
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove [reference-id]",
		Short: "Remove one reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			refID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := wire.PromptService().RemoveReference(NewContext(), refID); err != nil {
				return fmt.Errorf("failed to remove reference: %w", err)
			}
			fmt.Printf("✓ Removed reference %d\n", refID)
			return nil
		},
	}

	cmd.AddCommand(add, list, remove)
	return cmd
}

func fragmentCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a reusable fragment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description, _ := cmd.Flags().GetString("description")
			content, _ := cmd.Flags().GetString("content")

			fragment, err := wire.FragmentService().CreateFragment(NewContext(), primary.CreateFragmentRequest{
				Name:        args[0],
				Description: description,
				Content:     content,
			})
			if err != nil {
				return fmt.Errorf("failed to create fragment: %w", err)
			}
			fmt.Printf("✓ Created fragment %d: %s (%d tokens)\n",
				fragment.ID, fragment.Name, fragment.TokenCount)
			return nil
		},
	}

	cmd.Flags().String("description", "", "Description")
	cmd.Flags().String("content", "", "Fragment body")
	cmd.MarkFlagRequired("content")

	return cmd
}

func fragmentListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List fragments ordered by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")

			fragments, err := wire.FragmentService().ListFragments(NewContext(), limit, offset)
			if err != nil {
				return fmt.Errorf("failed to list fragments: %w", err)
			}
			if len(fragments) == 0 {
				fmt.Println("No fragments found.")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTOKENS\tDESCRIPTION")
			fmt.Fprintln(w, "--\t----\t------\t-----------")
			for _, f := range fragments {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", f.ID, f.Name, f.TokenCount, truncate(dash(f.Description), 50))
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().Int("limit", 0, "Maximum rows")
	cmd.Flags().Int("offset", 0, "Rows to skip")

	return cmd
}

func fragmentShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show fragment details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			fragment, err := wire.FragmentService().GetFragment(NewContext(), id)
			if err != nil {
				return err
			}
			fmt.Printf("Fragment: %d\n", fragment.ID)
			fmt.Printf("Name: %s\n", fragment.Name)
			if fragment.Description != "" {
				fmt.Printf("Description: %s\n", fragment.Description)
			}
			fmt.Printf("Tokens: %d\n", fragment.TokenCount)
			fmt.Printf("Created: %s\n", fragment.CreatedAt)
			fmt.Printf("\n%s\n", fragment.Content)
			return nil
		},
	}
}

func fragmentUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update fragment fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			name, _ := flags.GetString("name")
			description, _ := flags.GetString("description")
			content, _ := flags.GetString("content")

			fragment, err := wire.FragmentService().UpdateFragment(NewContext(), id, primary.UpdateFragmentRequest{
				Name:        strFlag(flags.Changed("name"), name),
				Description: strFlag(flags.Changed("description"), description),
				Content:     strFlag(flags.Changed("content"), content),
			})
			if err != nil {
				return fmt.Errorf("failed to update fragment: %w", err)
			}
			fmt.Printf("✓ Fragment %d updated (%d tokens)\n", fragment.ID, fragment.TokenCount)
			return nil
		},
	}

	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("content", "", "New body")

	return cmd
}

func fragmentDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a fragment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			fragment, err := wire.FragmentService().DeleteFragment(NewContext(), id)
			if err != nil {
				return fmt.Errorf("failed to delete fragment: %w", err)
			}
			fmt.Printf("✓ Deleted fragment %d: %s\n", fragment.ID, fragment.Name)
			return nil
		},
	}
}

func fragmentSkillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skill",
		Short: "Manage a fragment's skill attachments",
	}

	attach := &cobra.Command{
		Use:   "attach [fragment-id] [skill-id]",
		Short: "Attach a skill at the next position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fragmentID, err := parseID(args[0])
			if err != nil {
				return err
			}
			skillID, err := parseID(args[1])
			if err != nil {
				return err
			}
			attached, err := wire.FragmentService().AttachSkillToFragment(NewContext(), fragmentID, skillID)
			if err != nil {
				return fmt.Errorf("failed to attach skill: %w", err)
			}
			fmt.Printf("✓ Attached skill %d at position %d\n", attached.SkillID, attached.Position)
			return nil
		},
	}

	detach := &cobra.Command{
		Use:   "detach [fragment-id] [skill-id]",
		Short: "Detach a skill",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fragmentID, err := parseID(args[0])
			if err != nil {
				return err
			}
			skillID, err := parseID(args[1])
			if err != nil {
				return err
			}
			if err := wire.FragmentService().DetachSkillFromFragment(NewContext(), fragmentID, skillID); err != nil {
				return fmt.Errorf("failed to detach skill: %w", err)
			}
			fmt.Printf("✓ Detached skill %d from fragment %d\n", skillID, fragmentID)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list [fragment-id]",
		Short: "List attached skills in position order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fragmentID, err := parseID(args[0])
			if err != nil {
				return err
			}
			skills, err := wire.FragmentService().ListFragmentSkills(NewContext(), fragmentID)
			if err != nil {
				return fmt.Errorf("failed to list skills: %w", err)
			}
			if len(skills) == 0 {
				fmt.Println("No skills attached.")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "POS\tSKILL\tNAME")
			for _, s := range skills {
				name := ""
				if s.Skill != nil {
					name = s.Skill.Name
				}
				fmt.Fprintf(w, "%d\t%d\t%s\n", s.Position, s.SkillID, name)
			}
			w.Flush()
			return nil
		},
	}

	cmd.AddCommand(attach, detach, list)
	return cmd
}
