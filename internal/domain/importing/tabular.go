package importing

import "strings"

// Row is one parsed data line. Index is 1-based and excludes the
// header line. A row whose field count does not match the header count
// is kept with Valid=false so the processor can record a precise
// per-row error instead of silently dropping it.
type Row struct {
	Index      int
	Fields     map[string]string
	FieldCount int
	Raw        string
	Valid      bool
}

type Table struct {
	Headers []string
	Rows    []Row
}

// ParseTable splits raw file text into header-keyed records. The first
// line is the header; values are trimmed. There is no quote or escape
// handling: input files come from controlled templates, and a field
// containing the delimiter surfaces as a column-count mismatch on that
// row rather than a parse error.
func ParseTable(text, delimiter string) Table {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return Table{}
	}

	headers := splitTrimmed(lines[0], delimiter)

	table := Table{Headers: headers}
	index := 0
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		index++

		values := splitTrimmed(line, delimiter)
		if len(values) != len(headers) {
			table.Rows = append(table.Rows, Row{
				Index:      index,
				FieldCount: len(values),
				Raw:        line,
			})
			continue
		}

		fields := make(map[string]string, len(headers))
		for i, header := range headers {
			fields[header] = values[i]
		}
		table.Rows = append(table.Rows, Row{
			Index:      index,
			Fields:     fields,
			FieldCount: len(values),
			Raw:        line,
			Valid:      true,
		})
	}

	return table
}

func splitTrimmed(line, delimiter string) []string {
	parts := strings.Split(line, delimiter)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
