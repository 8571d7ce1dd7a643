// Package formatting renders expanded test matrices for terminal output.
package formatting

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"trainmatrix/internal/matrix"
)

// maxCellWidth caps the rendered width of pass-through parameter values so
// one oversized field cannot break the table layout.
const maxCellWidth = 60

// MatrixFormatter provides rich table output for expanded test matrices.
type MatrixFormatter struct {
	out io.Writer
}

// NewMatrixFormatter creates a formatter writing to the given writer.
func NewMatrixFormatter(out io.Writer) *MatrixFormatter {
	return &MatrixFormatter{out: out}
}

// FormatMatrix renders one suite's expanded matrix as a table: one row per
// generated record, with the generated test id alongside the stage, model,
// dataset and usecase columns.
func (f *MatrixFormatter) FormatMatrix(suite string, values []matrix.TestParameters, ids []string) {
	if len(values) == 0 {
		fmt.Fprintf(f.out, "%s %s\n",
			text.FgYellow.Sprint("📋"),
			text.FgYellow.Sprintf("No test records expanded for %s", suite))
		return
	}

	fmt.Fprintf(f.out, "%s %s (%d records)\n",
		text.FgHiCyan.Sprint("📋"), text.Bold.Sprint(suite), len(values))

	t := f.createTable()
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("#"),
		text.FgHiCyan.Sprint("STAGE"),
		text.FgHiCyan.Sprint("MODEL"),
		text.FgHiCyan.Sprint("DATASET"),
		text.FgHiCyan.Sprint("USECASE"),
		text.FgHiCyan.Sprint("TEST ID"),
	})

	for i, params := range values {
		t.AppendRow(table.Row{
			i + 1,
			cellValue(params[matrix.KeyTestStage]),
			cellValue(params[matrix.KeyModelName]),
			cellValue(params[matrix.KeyDatasetName]),
			cellValue(params[matrix.KeyUsecase]),
			truncate(ids[i]),
		})
	}

	t.Render()
}

// FormatSummary renders the closing line after all suites were printed.
func (f *MatrixFormatter) FormatSummary(files, records int) {
	fmt.Fprintf(f.out, "%s %d records across %d bunch files\n",
		text.FgGreen.Sprint("✅"), records, files)
}

// createTable creates a new table with standard styling.
func (f *MatrixFormatter) createTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(f.out)
	t.SetStyle(table.StyleRounded)
	return t
}

func cellValue(v interface{}) string {
	if v == nil {
		return ""
	}
	return truncate(fmt.Sprintf("%v", v))
}

func truncate(s string) string {
	if len(s) > maxCellWidth {
		return s[:maxCellWidth-3] + "..."
	}
	return s
}
