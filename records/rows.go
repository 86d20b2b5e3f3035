package records

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FromRows converts raw worksheet rows into records. The first row is the header and
// supplies the object keys for the rows that follow. Blank rows are skipped.
func FromRows(rows [][]any) (Records, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty sheet")
	}

	// .. build index
	index := map[string]int{}
	header := []string{}
	for i, v := range rows[0] {
		h := clean(v)
		if h == "" {
			continue
		}

		k := normalise(h)
		if _, ok := index[k]; ok {
			return nil, fmt.Errorf("duplicate column name '%s'", h)
		}

		index[k] = i
		header = append(header, h)
	}

	if len(header) == 0 {
		return nil, fmt.Errorf("missing/invalid header row")
	}

	// ... records
	list := Records{}
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}

		object := map[string]string{}
		for _, h := range header {
			v := ""
			if ix := index[normalise(h)]; ix < len(row) {
				v = clean(row[ix])
			}

			object[h] = v
		}

		b, err := json.Marshal(object)
		if err != nil {
			return nil, err
		}

		list = append(list, b)
	}

	return list, nil
}

func blank(row []any) bool {
	for _, v := range row {
		if clean(v) != "" {
			return false
		}
	}

	return true
}

func clean(v any) string {
	if v == nil {
		return ""
	}

	return strings.TrimSpace(fmt.Sprintf("%v", v))
}

func normalise(v string) string {
	return strings.ToLower(strings.ReplaceAll(v, " ", ""))
}
