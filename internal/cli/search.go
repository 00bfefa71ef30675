package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/planvault/internal/ports/primary"
	"github.com/example/planvault/internal/wire"
)

// SearchCmd returns the search command
func SearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Full-text search across the indexed catalogs",
		Long: `Search the skill, prompt, and plan indexes. Queries use FTS5 match
syntax, so phrases, prefixes, and boolean operators work:

  planvault search skills "goroutine leak"
  planvault search prompts 'review AND style'
  planvault search plans 'auth*' --limit 5`,
	}

	cmd.AddCommand(searchSubCmd("skills", "Search skill documents"))
	cmd.AddCommand(searchSubCmd("prompts", "Search prompt documents"))
	cmd.AddCommand(searchSubCmd("plans", "Search implementation plans"))

	return cmd
}

func searchSubCmd(index, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   index + " [query]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			open, _ := cmd.Flags().GetString("marker-open")
			closeMarker, _ := cmd.Flags().GetString("marker-close")

			req := primary.SearchRequest{
				Query:       args[0],
				Limit:       limit,
				MarkerOpen:  open,
				MarkerClose: closeMarker,
			}

			ctx := NewContext()
			switch index {
			case "skills":
				results, err := wire.SearchService().SearchSkills(ctx, req)
				if err != nil {
					return err
				}
				if len(results) == 0 {
					fmt.Println("No matches.")
					return nil
				}
				for _, r := range results {
					printHit(fmt.Sprintf("skill %d", r.Skill.ID), r.Skill.Name, r.Snippet, r.Rank)
				}
			case "prompts":
				results, err := wire.SearchService().SearchPrompts(ctx, req)
				if err != nil {
					return err
				}
				if len(results) == 0 {
					fmt.Println("No matches.")
					return nil
				}
				for _, r := range results {
					printHit(fmt.Sprintf("prompt %d", r.Prompt.ID), r.Prompt.Name, r.Snippet, r.Rank)
				}
			case "plans":
				results, err := wire.SearchService().SearchPlans(ctx, req)
				if err != nil {
					return err
				}
				if len(results) == 0 {
					fmt.Println("No matches.")
					return nil
				}
				for _, r := range results {
					printHit(fmt.Sprintf("plan %d", r.Plan.ID), r.Plan.Name, r.Snippet, r.Rank)
				}
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 0, fmt.Sprintf("Maximum results, 1-%d (default %d)",
		primary.SearchLimitMax, primary.SearchLimitDefault))
	cmd.Flags().String("marker-open", "", "Snippet highlight opening marker")
	cmd.Flags().String("marker-close", "", "Snippet highlight closing marker")

	return cmd
}

func printHit(kind, name, snippet string, rank float64) {
	color.New(color.Bold).Printf("%s: %s", kind, name)
	fmt.Printf("  (rank %.2f)\n", rank)
	fmt.Printf("  %s\n", snippet)
}
