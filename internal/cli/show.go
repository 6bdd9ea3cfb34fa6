package cli

import (
	"fmt"
	"io"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"

	"github.com/git-pkgs/archversions"
)

const barTemplate = `Fetching data for {{ string . "key" }} {{ bar . "[" "#" "#" " " "]" }} {{ counters . }}`

func runShow(cmd *cobra.Command, opts *options, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}

	var key string
	if len(args) == 1 {
		key = args[0]
	}

	catalog, err := e.fetchCatalog(cmd)
	if err != nil {
		return err
	}

	entry, err := archversions.SelectEntry(catalog, key, e.cfg.FallbackToStable)
	if err != nil {
		return err
	}
	if key != "" && entry.Key != key {
		e.log.Warn("unknown game version, using the stable entry", "requested", key, "stable", entry.Key)
	}

	src, err := archversions.NewSource(e.cfg.Source, e.client)
	if err != nil {
		return err
	}

	var selectOpts []archversions.SelectOption
	if e.cfg.SkipMalformed {
		selectOpts = append(selectOpts, archversions.WithSkipMalformed())
	}

	bar := newProgress(cmd.ErrOrStderr(), entry.Key, len(archversions.Slots))
	bar.Start()
	report, err := archversions.BuildReport(cmd.Context(), catalog, entry, src, archversions.ReportOptions{
		Select: selectOpts,
		OnSlot: func(archversions.SlotResult) { bar.Increment() },
		Logger: e.log,
	})
	bar.Finish()
	if err != nil {
		return err
	}

	if opts.jsonOut {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), renderReport(report))
	return err
}

func newProgress(w io.Writer, key string, total int) *pb.ProgressBar {
	bar := pb.New(total)
	bar.SetWriter(w)
	bar.SetTemplateString(barTemplate)
	bar.Set("key", key)
	return bar
}
