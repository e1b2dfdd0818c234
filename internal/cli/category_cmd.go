package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCategoryCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}

	cmd.AddCommand(
		newCategoryAddCmd(a),
		newCategoryListCmd(a),
		newCategoryRenameCmd(a),
		newCategoryRemoveCmd(a),
	)

	return cmd
}

func newCategoryAddCmd(a *App) *cobra.Command {
	var color, icon string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.Categories.Create(context.Background(), args[0], color, icon)
			if err != nil {
				return err
			}
			fmt.Printf("Created category %s (%s)\n", c.Name, c.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Display color")
	cmd.Flags().StringVar(&icon, "icon", "", "Display icon")

	return cmd
}

func newCategoryListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := a.Categories.List(context.Background())
			if err != nil {
				return err
			}

			headers := []string{"ID", "NAME", "DEFAULT"}
			rows := make([][]string, 0, len(categories))
			for _, c := range categories {
				def := ""
				if c.IsDefault {
					def = formatter.StyleGreen.Render("✓")
				}
				rows = append(rows, []string{formatter.TruncID(c.ID), c.Name, def})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newCategoryRenameCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename CATEGORY NAME",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := resolveCategory(ctx, a, args[0])
			if err != nil {
				return err
			}
			renamed, err := a.Categories.Rename(ctx, c.ID, args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Renamed category to %s\n", renamed.Name)
			return nil
		},
	}
}

func newCategoryRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove CATEGORY",
		Short: "Delete a category, moving its tasks to the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := resolveCategory(ctx, a, args[0])
			if err != nil {
				return err
			}
			if err := a.Categories.Delete(ctx, c.ID); err != nil {
				return err
			}
			fmt.Printf("Removed category %s\n", c.Name)
			return nil
		},
	}
}
