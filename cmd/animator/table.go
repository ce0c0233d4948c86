package main

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ivlev/animator/internal/script"
)

// actionTable renders one row per action in script order.
func actionTable(actions []script.Action) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Kind", "Name", "Start", "End", "Interpolation", "References"})

	for _, a := range actions {
		h := a.Common()
		refs := make([]string, 0, len(a.References()))
		for _, r := range a.References() {
			refs = append(refs, r.ID)
		}
		tw.AppendRow(table.Row{
			h.ID,
			string(a.Kind()),
			h.Name,
			strconv.FormatFloat(h.StartTime, 'f', 2, 64),
			strconv.FormatFloat(h.EndTime, 'f', 2, 64),
			string(h.Interpolation),
			strings.Join(refs, ", "),
		})
	}

	// Times line up on the decimal point.
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Start", Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Name: "End", Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
