package console

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"fxsnapshot/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestTablePrinter_Print(t *testing.T) {
	var buf bytes.Buffer
	p := &TablePrinter{Out: &buf, Targets: []domain.Currency{"EUR", "GBP", "JPY", "CAD"}}

	err := p.Print(domain.Snapshot{
		Date:  time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		Base:  "USD",
		Rates: domain.NormalizedRates{"EUR": 0.9, "GBP": 0.8, "JPY": 150},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, []string{"fecha", "moneda_base", "EUR", "GBP", "JPY"}, strings.Fields(lines[0]))
	require.Equal(t, []string{"0", "2025-01-02", "USD", "0.9", "0.8", "150"}, strings.Fields(lines[1]))
}
