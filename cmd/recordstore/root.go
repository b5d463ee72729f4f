package main

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/jrsteele09/go-recordstore/persistence"
	"github.com/jrsteele09/go-recordstore/recordstore"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	storePathEnv    = "RECORDSTORE_PATH"
	defaultKeyField = "id"
)

type rootOptions struct {
	storePath   string
	format      string
	keyField    string
	lockTimeout time.Duration
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "recordstore",
		Short:         "Query and edit a record document",
		Long:          "recordstore reads and rewrites a JSON or YAML list of records, matching records by the value of a key field.",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), opts.verbose)
			if opts.keyField == "" {
				return errors.New("key field cannot be empty")
			}
			keyField = opts.keyField
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.storePath, "store", "s", "", "path to the document (default $"+storePathEnv+")")
	flags.StringVarP(&opts.format, "format", "f", "json", "document format: json|yaml")
	flags.StringVarP(&opts.keyField, "key-field", "k", defaultKeyField, "record field used as the lookup key")
	flags.DurationVar(&opts.lockTimeout, "lock-timeout", 0, "hold <store>.lock during each operation, waiting at most this long (0 disables locking)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log store activity to stderr")

	cmd.AddCommand(
		newListCmd(opts),
		newInsertCmd(opts),
		newGetCmd(opts),
		newFindCmd(opts),
		newUpdateCmd(opts),
		newDeleteCmd(opts),
	)
	return cmd
}

func setupLogging(w io.Writer, verbose bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

func (o *rootOptions) openStore() (*recordstore.Store[entry], error) {
	path := o.storePath
	if path == "" {
		path = os.Getenv(storePathEnv)
	}
	if path == "" {
		return nil, errors.Errorf("no store path: set --store or %s", storePathEnv)
	}

	var codec recordstore.DocumentCodec[entry]
	switch o.format {
	case "json":
		codec = persistence.NewJSON[entry]()
	case "yaml", "yml":
		codec = persistence.NewYAML[entry]()
	default:
		return nil, errors.Errorf("unknown format %q", o.format)
	}

	storeOptions := []recordstore.StoreOption[entry]{recordstore.WithCodec(codec)}
	if o.lockTimeout > 0 {
		storeOptions = append(storeOptions, recordstore.WithFileLock[entry](o.lockTimeout))
	}
	return recordstore.Open(path, storeOptions...)
}

// print writes v to w in the store's format.
func (o *rootOptions) print(w io.Writer, v any) error {
	var (
		data []byte
		err  error
	)
	if o.format == "json" {
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	} else {
		data, err = yaml.Marshal(v)
	}
	if err != nil {
		return errors.Wrap(err, "print")
	}
	_, err = w.Write(data)
	return err
}
