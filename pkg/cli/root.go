package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/platinummonkey/folio/pkg/app"
	"github.com/platinummonkey/folio/pkg/config"
	"github.com/platinummonkey/folio/pkg/content"
	"github.com/platinummonkey/folio/pkg/finder"
	"github.com/platinummonkey/folio/pkg/observability"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// state is shared by every subcommand of one root command
type state struct {
	output   string
	logLevel string
	cfg      *config.Config
	log      *logrus.Logger
}

// NewRootCommand creates the folioctl root command. Store settings come from
// the same FOLIO_* environment variables as the server.
func NewRootCommand() *cobra.Command {
	st := &state{}

	root := &cobra.Command{
		Use:           "folioctl",
		Short:         "Folio - inspect and seed a folio content store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if st.output != OutputText && st.output != OutputJSON {
				return fmt.Errorf("invalid output format %q (must be text or json)", st.output)
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			st.cfg = cfg
			st.log = observability.NewLogger(st.logLevel, cmd.ErrOrStderr())
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&st.output, "output", "o", OutputText, "output format: text or json")
	root.PersistentFlags().StringVar(&st.logLevel, "log-level", "warn", "log level for diagnostics on stderr")

	root.AddCommand(newCategoriesCommand(st))
	root.AddCommand(newPluginsCommand(st))
	root.AddCommand(newSeedCommand(st))

	return root
}

// openFinder opens the configured store and wraps it in a category finder.
// The returned close func releases the store.
func (st *state) openFinder(ctx context.Context) (*finder.CategoryFinder, func() error, error) {
	backend, err := app.OpenBackend(ctx, st.cfg.Store, st.log)
	if err != nil {
		return nil, nil, err
	}
	f := finder.NewCategoryFinder(backend.Categories,
		content.NewCategoryService(backend.Categories, st.log), finder.WithLogger(st.log))
	return f, backend.Close, nil
}

func (st *state) json() bool {
	return st.output == OutputJSON
}

func writeLine(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}
