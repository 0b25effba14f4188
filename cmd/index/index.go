// Package index implements commands for managing the article index.
package index

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/newsgate/internal/app"
)

// Command returns the index command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Manage the article index",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(createCommand())
	cmd.AddCommand(deleteCommand())
	cmd.AddCommand(statusCommand())
	return cmd
}

func createCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create the article index with its mapping",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := app.New()
			if err != nil {
				return err
			}
			if err := deps.ConnectStorage(); err != nil {
				return err
			}

			exists, err := deps.Storage.IndexExists(cmd.Context())
			if err != nil {
				return err
			}
			if exists {
				fmt.Printf("Index %q already exists\n", deps.Storage.Index())
				return nil
			}

			if err := deps.Storage.CreateIndex(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("Index %q created\n", deps.Storage.Index())
			return nil
		},
	}
}

func deleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the article index",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("refusing to delete without --force")
			}

			deps, err := app.New()
			if err != nil {
				return err
			}
			if err := deps.ConnectStorage(); err != nil {
				return err
			}

			if err := deps.Storage.DeleteIndex(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("Index %q deleted\n", deps.Storage.Index())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "confirm index deletion")
	return cmd
}

func statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the article index exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := app.New()
			if err != nil {
				return err
			}
			if err := deps.ConnectStorage(); err != nil {
				return err
			}

			exists, err := deps.Storage.IndexExists(cmd.Context())
			if err != nil {
				return err
			}
			if exists {
				fmt.Printf("Index %q exists\n", deps.Storage.Index())
			} else {
				fmt.Printf("Index %q does not exist\n", deps.Storage.Index())
			}
			return nil
		},
	}
}
