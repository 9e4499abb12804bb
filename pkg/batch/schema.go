package batch

import (
	"fmt"
	"strings"
)

// Table is a column-heterogeneous input table: an SMS export whose column
// names are not contractually fixed.
type Table struct {
	Columns []string
	Rows    [][]string
}

// SchemaError reports that no text-bearing column could be identified in
// the input table. It is the only failure that aborts a whole batch.
type SchemaError struct {
	Columns []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("no text-bearing column among %v", e.Columns)
}

// Schema maps column roles to column indexes. Date and Sender are -1 when
// the table carries no such column.
type Schema struct {
	Text   int
	Date   int
	Sender int
}

// Name fragments used to sniff column roles, matched case-insensitively as
// substrings of the column name.
var (
	textFragments   = []string{"text", "sms", "message", "body", "content"}
	dateFragments   = []string{"date", "time", "timestamp"}
	senderFragments = []string{"sender", "from", "number", "source"}
)

// ResolveSchema sniffs the text/date/sender columns by name. For each role
// the first matching column in table-definition order is taken. A table
// without a text-bearing column yields a SchemaError.
func ResolveSchema(columns []string) (Schema, error) {
	schema := Schema{
		Text:   findColumn(columns, textFragments),
		Date:   findColumn(columns, dateFragments),
		Sender: findColumn(columns, senderFragments),
	}
	if schema.Text < 0 {
		return Schema{Text: -1, Date: -1, Sender: -1}, &SchemaError{Columns: columns}
	}
	return schema, nil
}

func findColumn(columns, fragments []string) int {
	for i, col := range columns {
		name := strings.ToLower(col)
		for _, frag := range fragments {
			if strings.Contains(name, frag) {
				return i
			}
		}
	}
	return -1
}
