package cli

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// renderTable writes rows as a bordered table. Cell text is never wrapped so
// that questions are shown exactly as stored.
func renderTable(out io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}
