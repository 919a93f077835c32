package domain

// Record maps header-row values to the cell values of one data row.
type Record map[string]string

// BuildRecords converts a row-major range into records, using row 0 as the header.
//
// Rows shorter than the header yield records with only the columns present.
// Cells beyond the header width are dropped.
func BuildRecords(rows [][]string) []Record {
	records := []Record{}
	if len(rows) == 0 {
		return records
	}

	header := rows[0]
	for _, row := range rows[1:] {
		record := make(Record, len(row))
		for i, value := range row {
			if i >= len(header) {
				break
			}
			record[header[i]] = value
		}
		records = append(records, record)
	}

	return records
}
