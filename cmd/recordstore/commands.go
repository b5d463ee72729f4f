package main

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-recordstore/recordstore"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every record in document order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			records, err := s.List()
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), records)
		},
	}
}

func newInsertCmd(opts *rootOptions) *cobra.Command {
	var generateID bool

	cmd := &cobra.Command{
		Use:   "insert <record>",
		Short: "Append a JSON object record to the document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := parseEntry(args[0])
			if err != nil {
				return err
			}
			if generateID && record.RecordKey() == "" {
				record[keyField] = uuid.New().String()
			}

			s, err := opts.openStore()
			if err != nil {
				return err
			}
			if err := s.Insert(record); err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), record)
		},
	}
	cmd.Flags().BoolVar(&generateID, "generate-id", false, "set the key field to a new UUID when the record has none")
	return cmd
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the first record with the given key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			record, err := s.Query(args[0])
			if err != nil {
				return notFound(err, args[0])
			}
			return opts.print(cmd.OutOrStdout(), record)
		},
	}
}

func newFindCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "find <key>",
		Short: "Print every record with the given key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			records, err := s.QueryMany(args[0])
			if err != nil {
				return notFound(err, args[0])
			}
			return opts.print(cmd.OutOrStdout(), records)
		},
	}
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update <key> <record>",
		Short: "Replace the first record with the given key",
		Long:  "Replace the first record with the given key, keeping its position. A key that matches nothing is not an error and leaves the document untouched.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := parseEntry(args[1])
			if err != nil {
				return err
			}
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			return s.Update(args[0], record)
		},
	}
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Remove the first record with the given key and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			removed, err := s.Delete(args[0])
			if err != nil {
				return notFound(err, args[0])
			}
			return opts.print(cmd.OutOrStdout(), removed)
		},
	}
}

func parseEntry(raw string) (entry, error) {
	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return nil, errors.Wrap(err, "record must be a JSON object")
	}
	if e == nil {
		return nil, errors.New("record must be a JSON object")
	}
	return e, nil
}

func notFound(err error, key string) error {
	if errors.Is(err, recordstore.ErrNotFound) {
		return errors.Wrapf(err, "%s %q", keyField, key)
	}
	return err
}
