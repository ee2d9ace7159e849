package pg

import (
	"fmt"
	"strings"

	"fxsnapshot/internal/domain"

	"github.com/jackc/pgx/v5"
)

// Rate columns are lower-case so they match unquoted DDL such as "EUR DECIMAL(10,4)".
func columnName(c domain.Currency) string { return strings.ToLower(string(c)) }

func tableIdent(table string) string {
	return pgx.Identifier(strings.Split(table, ".")).Sanitize()
}

func colIdent(c domain.Currency) string {
	return pgx.Identifier{columnName(c)}.Sanitize()
}

func createTableSQL(table string, cols []domain.Currency) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n    %s DATE,\n    %s VARCHAR(3)",
		tableIdent(table), domain.ColumnDate, domain.ColumnBase)
	for _, c := range cols {
		fmt.Fprintf(&b, ",\n    %s DECIMAL(10,4)", colIdent(c))
	}
	b.WriteString("\n)")
	return b.String()
}

func addColumnSQL(table string, c domain.Currency) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s DECIMAL(10,4)", tableIdent(table), colIdent(c))
}

func insertSQL(table string, cols []domain.Currency) string {
	names := []string{domain.ColumnDate, domain.ColumnBase}
	params := []string{"$1", "$2"}
	for i, c := range cols {
		names = append(names, colIdent(c))
		params = append(params, fmt.Sprintf("$%d", i+3))
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		tableIdent(table), strings.Join(names, ", "), strings.Join(params, ", "))
}

func latestSQL(table string, cols []domain.Currency) string {
	sel := []string{domain.ColumnDate, domain.ColumnBase}
	for _, c := range cols {
		sel = append(sel, colIdent(c)+"::text")
	}
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC LIMIT 1",
		strings.Join(sel, ", "), tableIdent(table), domain.ColumnBase, domain.ColumnDate)
}
