package cmd

import (
	"fmt"
	"io"
	"strconv"

	"code.cloudfoundry.org/bytefmt"
	"github.com/olekukonko/tablewriter"

	"github.com/spacemeshos/rle"
)

func bitsSize(bits uint64) string {
	return fmt.Sprintf("%s (%d bits)", bytefmt.ByteSize((bits+7)/8), bits)
}

func report(w io.Writer, stats *rle.Stats) {
	header := []string{"mode", "width", "framing", "runs", "splits", "input", "output", "ratio"}
	data := [][]string{{
		stats.Mode.String(),
		strconv.Itoa(int(stats.Header.Width)),
		stats.Header.Framing.String(),
		strconv.Itoa(stats.Runs),
		strconv.Itoa(stats.Splits),
		bitsSize(stats.InputBits),
		bitsSize(stats.OutputBits),
		strconv.FormatFloat(stats.Ratio(), 'f', 3, 64),
	}}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(true)
	table.AppendBulk(data)
	table.Render()
}
