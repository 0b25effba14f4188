// Package articles implements commands for listing stored articles.
package articles

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/newsgate/internal/app"
	"github.com/jonesrussell/newsgate/internal/storage"
)

const titleColumnWidth = 60

// Command returns the articles command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "articles",
		Short: "Manage stored articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(listCommand())
	return cmd
}

func listCommand() *cobra.Command {
	var (
		category string
		provider string
		search   string
		days     int
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := app.New()
			if err != nil {
				return err
			}
			if err := deps.ConnectStorage(); err != nil {
				return err
			}

			articles, err := deps.Storage.QueryArticles(cmd.Context(), storage.ArticleQuery{
				Category: category,
				Provider: provider,
				Search:   search,
				Days:     days,
				Limit:    limit,
			})
			if err != nil {
				return fmt.Errorf("list articles: %w", err)
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleRounded)
			t.SetColumnConfigs([]table.ColumnConfig{
				{Number: 3, WidthMax: titleColumnWidth},
			})
			t.AppendHeader(table.Row{"#", "ID", "Title", "Provider", "Category", "Created"})

			for i, a := range articles {
				t.AppendRow(table.Row{
					i + 1,
					a.ID,
					strings.TrimSpace(a.Title),
					a.Provider,
					a.Category,
					a.CreatedAt,
				})
			}
			t.AppendFooter(table.Row{"Total", len(articles)})
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().StringVar(&provider, "provider", "", "filter by provider")
	cmd.Flags().StringVar(&search, "search", "", "filter titles by substring")
	cmd.Flags().IntVar(&days, "days", 0, "only articles from the last N days")
	cmd.Flags().IntVar(&limit, "limit", storage.DefaultLimit, "maximum number of articles")
	return cmd
}
