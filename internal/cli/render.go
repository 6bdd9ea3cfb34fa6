package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/git-pkgs/archversions"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// renderReport lays the four slots out as two header rows, each followed by
// its versions.
func renderReport(r *archversions.Report) string {
	rows := [][]string{
		{archversions.SlotLoom.Title(), archversions.SlotPlugin.Title()},
		{latest(r, archversions.SlotLoom), latest(r, archversions.SlotPlugin)},
		{archversions.SlotAPI.Title(), archversions.SlotInjectables.Title()},
		{latest(r, archversions.SlotAPI), latest(r, archversions.SlotInjectables)},
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderRow(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row%2 == 0 {
				return headerStyle
			}
			return cellStyle
		}).
		Rows(rows...)
	return t.String()
}

func latest(r *archversions.Report, slot archversions.Slot) string {
	res := r.Slot(slot)
	if res == nil || res.Latest == nil {
		return "none"
	}
	return res.Latest.String()
}

func renderVersions(rows []entryRow) string {
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		stable := ""
		switch {
		case row.Default:
			stable = "default"
		case row.Stable:
			stable = "yes"
		}
		line := []string{row.Key, stable}
		for _, slot := range archversions.Slots {
			line = append(line, row.Slots[slot.String()])
		}
		data = append(data, line)
	}

	headers := []string{"Game version", "Stable"}
	for _, slot := range archversions.Slots {
		headers = append(headers, slot.Title())
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Rows(data...)
	return t.String()
}
