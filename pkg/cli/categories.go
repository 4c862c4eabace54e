package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/platinummonkey/folio/pkg/finder"
)

func newCategoriesCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "Query categories",
	}

	cmd.AddCommand(newCategoriesListCommand(st))
	cmd.AddCommand(newCategoriesGetCommand(st))
	cmd.AddCommand(newCategoriesTreeCommand(st))
	cmd.AddCommand(newCategoriesParentCommand(st))
	cmd.AddCommand(newCategoriesChildrenCommand(st))

	return cmd
}

func newCategoriesListCommand(st *state) *cobra.Command {
	var page, size int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List visible categories in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if page < 1 || size < 1 {
				return fmt.Errorf("page and size must be at least 1")
			}
			f, closeFn, err := st.openFinder(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			result, err := f.List(cmd.Context(), &page, &size)
			if err != nil {
				return err
			}
			if st.json() {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			writeLine(cmd.OutOrStdout(), "%s", categoryTable(result.Items))
			writeLine(cmd.OutOrStdout(), "page %d of %d (%d total)", result.Page, result.TotalPages(), result.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&size, "size", 10, "page size")
	return cmd
}

func newCategoriesGetCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME...",
		Short: "Show categories by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, closeFn, err := st.openFinder(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if len(args) == 1 {
				vo, err := f.GetByName(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if st.json() {
					return writeJSON(cmd.OutOrStdout(), vo)
				}
				writeLine(cmd.OutOrStdout(), "%s", categoryTable([]finder.CategoryVo{vo}))
				return nil
			}

			vos, err := f.GetByNames(cmd.Context(), args)
			if err != nil {
				return err
			}
			if st.json() {
				return writeJSON(cmd.OutOrStdout(), vos)
			}
			writeLine(cmd.OutOrStdout(), "%s", categoryTable(vos))
			return nil
		},
	}
}

func newCategoriesTreeCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "tree [NAME]",
		Short: "Show the category tree with cascaded post counts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, closeFn, err := st.openFinder(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			nodes, err := f.ListAsTreeByName(cmd.Context(), name)
			if err != nil {
				return err
			}
			if st.json() {
				return writeJSON(cmd.OutOrStdout(), nodes)
			}
			if len(nodes) == 0 {
				writeLine(cmd.OutOrStdout(), "no categories")
				return nil
			}
			writeLine(cmd.OutOrStdout(), "%s", categoryTree(nodes))
			return nil
		},
	}
}

func newCategoriesParentCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "parent NAME",
		Short: "Show the parent of a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, closeFn, err := st.openFinder(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			parent, err := f.GetParentByName(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if st.json() {
				return writeJSON(cmd.OutOrStdout(), parent)
			}
			writeLine(cmd.OutOrStdout(), "%s", parent.Metadata.Name)
			return nil
		},
	}
}

func newCategoriesChildrenCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "children NAME",
		Short: "List a category and all of its descendants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, closeFn, err := st.openFinder(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			vos, err := f.ListChildren(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if st.json() {
				return writeJSON(cmd.OutOrStdout(), vos)
			}
			if len(vos) == 0 {
				writeLine(cmd.OutOrStdout(), "no categories")
				return nil
			}
			writeLine(cmd.OutOrStdout(), "%s", categoryTable(vos))
			return nil
		},
	}
}
