package cli

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/platinummonkey/folio/pkg/app"
	"github.com/platinummonkey/folio/pkg/async"
	"github.com/platinummonkey/folio/pkg/content"
	"github.com/platinummonkey/folio/pkg/extension"
	"github.com/platinummonkey/folio/pkg/extension/filestore"
)

// SeedResult summarizes a seed run
type SeedResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

func newSeedCommand(st *state) *cobra.Command {
	var (
		update  bool
		workers int
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "seed DIR",
		Short: "Load Category documents from a YAML directory into the configured store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := filestore.LoadDir(args[0], content.CategoryType)
			if err != nil {
				return err
			}

			backend, err := app.OpenBackend(cmd.Context(), st.cfg.Store, st.log)
			if err != nil {
				return err
			}
			defer backend.Close()

			w, err := backend.Writer()
			if err != nil {
				return err
			}

			result := seed(cmd.Context(), st, backend.Categories, w, categories, update, workers, timeout)
			if st.json() {
				if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
			} else {
				writeLine(cmd.OutOrStdout(), "created %d, updated %d, skipped %d", result.Created, result.Updated, result.Skipped)
				for _, e := range result.Errors {
					writeLine(cmd.OutOrStdout(), "  - %s", e)
				}
			}

			if len(result.Errors) > 0 {
				return fmt.Errorf("%d categories failed to seed", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&update, "update", false, "overwrite categories that already exist")
	cmd.Flags().IntVar(&workers, "workers", 4, "concurrent writes")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "timeout per category")
	return cmd
}

func seed(ctx context.Context, st *state, client extension.Client[*content.Category], w extension.Writer[*content.Category],
	categories []*content.Category, update bool, workers int, timeout time.Duration) SeedResult {

	var created, updated, skipped atomic.Int64

	errs := async.Batch(ctx, st.log, categories, workers, "seed", timeout, func(ctx context.Context, c *content.Category) error {
		err := w.Create(ctx, c)
		if err == nil {
			created.Add(1)
			return nil
		}
		if !errors.Is(err, extension.ErrAlreadyExists) {
			return fmt.Errorf("%s: %w", c.Metadata.Name, err)
		}
		if !update {
			skipped.Add(1)
			return nil
		}

		existing, err := client.Fetch(ctx, c.Metadata.Name)
		if err != nil {
			return fmt.Errorf("%s: %w", c.Metadata.Name, err)
		}
		c.Metadata.SetVersion(existing.Metadata.GetVersion())
		if err := w.Update(ctx, c); err != nil {
			return fmt.Errorf("%s: %w", c.Metadata.Name, err)
		}
		updated.Add(1)
		return nil
	})

	result := SeedResult{
		Created: int(created.Load()),
		Updated: int(updated.Load()),
		Skipped: int(skipped.Load()),
	}
	for _, err := range errs {
		result.Errors = append(result.Errors, err.Error())
	}
	return result
}
