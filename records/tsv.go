package records

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// WriteTSV writes the records as a tab separated table. The header is the sorted union
// of the record keys, so every record must be a JSON object.
func WriteTSV(f io.Writer, rs Records) error {
	objects := make([]map[string]any, 0, len(rs))
	columns := map[string]bool{}

	for i, r := range rs {
		object := map[string]any{}
		if err := json.Unmarshal(r, &object); err != nil || object == nil {
			return fmt.Errorf("record %d is not a JSON object", i+1)
		}

		for k := range object {
			columns[k] = true
		}

		objects = append(objects, object)
	}

	// ... header
	header := make([]string, 0, len(columns))
	for k := range columns {
		header = append(header, k)
	}

	sort.Strings(header)

	// ... write to file
	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(header); err != nil {
		return err
	}

	for _, object := range objects {
		record := make([]string, len(header))
		for i, k := range header {
			record[i] = format(object[k])
		}

		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

func format(v any) string {
	switch value := v.(type) {
	case nil:
		return ""

	case string:
		return value

	case map[string]any, []any:
		b, _ := json.Marshal(value)
		return string(b)

	default:
		return fmt.Sprintf("%v", value)
	}
}
