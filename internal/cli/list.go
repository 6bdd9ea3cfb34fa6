package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/git-pkgs/archversions"
)

func newVersionsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List the game versions in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			catalog, err := e.fetchCatalog(cmd)
			if err != nil {
				return err
			}

			rows := listEntries(catalog)
			if opts.jsonOut {
				return writeJSON(cmd.OutOrStdout(), rows)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), renderVersions(rows))
			return err
		},
	}
}

// entryRow summarises one catalog entry.
type entryRow struct {
	Key     string            `json:"key"`
	Stable  bool              `json:"stable"`
	Default bool              `json:"default"`
	Slots   map[string]string `json:"slots"`
}

func listEntries(catalog *archversions.Catalog) []entryRow {
	var defaultKey string
	if stable, err := catalog.Stable(); err == nil {
		defaultKey = stable.Key
	}

	keys := catalog.Keys()
	rows := make([]entryRow, 0, len(keys))
	for _, key := range keys {
		entry, _ := catalog.Entry(key)
		row := entryRow{
			Key:     key,
			Stable:  entry.Stable,
			Default: key == defaultKey,
			Slots:   make(map[string]string, len(archversions.Slots)),
		}
		for _, slot := range archversions.Slots {
			row.Slots[slot.String()] = entry.Slot(slot).String()
		}
		rows = append(rows, row)
	}
	return rows
}
