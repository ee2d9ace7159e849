// Package console renders snapshots for humans.
package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"fxsnapshot/internal/application"
	"fxsnapshot/internal/domain"
)

var _ application.SnapshotPrinter = (*TablePrinter)(nil)

// TablePrinter writes the snapshot as a one-row table, the columns being the
// fixed fields followed by the currencies present in the snapshot.
type TablePrinter struct {
	Out     io.Writer
	Targets []domain.Currency
}

func (p *TablePrinter) Print(s domain.Snapshot) error {
	tw := tabwriter.NewWriter(p.Out, 0, 0, 2, ' ', tabwriter.AlignRight)
	cols := s.Columns(p.Targets)

	row := []string{s.Date.Format(time.DateOnly), string(s.Base)}
	for _, c := range cols[2:] {
		row = append(row, strconv.FormatFloat(s.Rates[domain.Currency(c)], 'f', -1, 64))
	}

	if _, err := fmt.Fprintln(tw, "\t"+strings.Join(cols, "\t")+"\t"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(tw, "0\t"+strings.Join(row, "\t")+"\t"); err != nil {
		return err
	}
	return tw.Flush()
}
