// Package hllfmt renders human-readable summaries of HyperLogLog sketches.
// It reads sketches only through their public accessors and is never
// required for correctness of the estimator itself.
package hllfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	hll "github.com/sawmills/go-hll"
)

// Source is the read-only view of a sketch that the renderers consume.
// *hll.Sketch satisfies it for any item type.
type Source interface {
	Precision() int
	NumRegisters() int
	ZeroRegisters() int
	RegisterHistogram() []uint64
	Estimate() (float64, hll.EstimatorKind)
	TypicalErrorRate() float64
}

// Summary returns a one-line description of the sketch's current estimate.
func Summary(src Source) string {
	estimate, kind := src.Estimate()

	return fmt.Sprintf("~%s distinct items (%s, precision %d, typical error %.2f%%)",
		humanize.CommafWithDigits(estimate, 0),
		kind,
		src.Precision(),
		src.TypicalErrorRate()*100,
	)
}

// Histogram writes a table showing how many registers hold each rank value,
// with a proportional bar per row. Ranks no register holds are omitted,
// except rank zero, which always appears so that empty registers are
// visible.
func Histogram(w io.Writer, src Source) error {
	histogram := src.RegisterHistogram()
	total := float64(src.NumRegisters())

	var maxCount uint64
	for _, count := range histogram {
		if count > maxCount {
			maxCount = count
		}
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Rank", "Registers", "Share", ""})

	for rank, count := range histogram {
		if count == 0 && rank != 0 {
			continue
		}

		tbl.AppendRow(table.Row{
			rank,
			count,
			fmt.Sprintf("%.2f%%", float64(count)/total*100),
			bar(count, maxCount),
		})
	}

	tbl.AppendFooter(table.Row{"", humanize.Comma(int64(src.NumRegisters())), "", ""})

	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

const barWidth = 20

func bar(count, maxCount uint64) string {
	if maxCount == 0 {
		return ""
	}

	n := int(float64(count) / float64(maxCount) * barWidth)
	return strings.Repeat("#", n)
}
