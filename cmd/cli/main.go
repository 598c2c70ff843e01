package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"listingscope/internal/config"
	"listingscope/internal/dataset"
	"listingscope/internal/errors"
	"listingscope/ports"
)

// options are the flags every data command shares.
type options struct {
	dataFile       string
	roomTypes      []string
	neighbourhoods []string
	asJSON         bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(errorLine(err)))
		os.Exit(1)
	}
}

// errorLine prefixes application errors with their code, e.g. "[DATA_UNAVAILABLE] ...".
func errorLine(err error) string {
	if errors.IsAppError(err) {
		return fmt.Sprintf("[%s] %v", errors.GetCode(err), err)
	}
	return err.Error()
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "listingscope",
		Short: "Explore short-term rental listings from the terminal",
		Long: `Explore short-term rental listings from the terminal.

The table is read from DATA_SOURCE (see .env) unless --data names a csv or xlsx file.
--room-type and --neighbourhood narrow every command; leaving a flag out keeps every
value, passing it with an empty value selects nothing.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.dataFile, "data", "", "csv or xlsx file to read instead of the configured source")
	flags.StringArrayVar(&opts.roomTypes, "room-type", nil, "room type to keep (repeatable)")
	flags.StringArrayVar(&opts.neighbourhoods, "neighbourhood", nil, "neighbourhood group to keep (repeatable)")
	flags.BoolVar(&opts.asJSON, "json", false, "print JSON instead of formatted text")

	rootCmd.AddCommand(
		newOverviewCmd(opts),
		newDictionaryCmd(opts),
		newColumnsCmd(opts),
		newPlotCmd(opts),
		newCorrelationCmd(opts),
		newQuestionsCmd(opts),
		newGenerateCmd(),
	)

	return rootCmd
}

func (o *options) source() (ports.TableSource, error) {
	if o.dataFile != "" {
		return dataset.NewSource(config.DataConfig{Source: config.SourceFile, File: o.dataFile})
	}
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return dataset.NewSource(cfg.Data)
}

// view loads the table and applies the facet flags.
func (o *options) view(cmd *cobra.Command) (*dataset.Table, dataset.Selection, error) {
	source, err := o.source()
	if err != nil {
		return nil, dataset.Selection{}, err
	}
	base, err := dataset.NewHolder(source).Get(cmd.Context())
	if err != nil {
		return nil, dataset.Selection{}, err
	}
	all, err := dataset.DefaultSelection(base)
	if err != nil {
		return nil, dataset.Selection{}, err
	}
	sel := dataset.Selection{
		RoomTypes:      dataset.Facet(all.RoomTypes, o.roomTypes, cmd.Flags().Changed("room-type")),
		Neighbourhoods: dataset.Facet(all.Neighbourhoods, o.neighbourhoods, cmd.Flags().Changed("neighbourhood")),
	}
	view, err := sel.Apply(base)
	if err != nil {
		return nil, dataset.Selection{}, err
	}
	return view, sel, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
