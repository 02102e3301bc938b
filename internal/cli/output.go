package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// printJSON pretty-prints any raw JSON value.
func printJSON(raw json.RawMessage) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		fmt.Println(string(raw))
		return
	}
	fmt.Println(buf.String())
}

// printRecords renders records as aligned text rows. Column order comes
// from the first record's keys when no field list is given.
func printRecords(records []json.RawMessage, fields []string) {
	if len(records) == 0 {
		fmt.Println("No records found")
		return
	}

	if len(fields) == 0 {
		gjson.ParseBytes(records[0]).ForEach(func(key, _ gjson.Result) bool {
			fields = append(fields, key.String())
			return true
		})
	}

	header := color.New(color.Bold)
	header.Println(strings.Join(fields, "\t"))
	for _, record := range records {
		doc := gjson.ParseBytes(record)
		cells := make([]string, len(fields))
		for i, field := range fields {
			cells[i] = doc.Get(field).String()
		}
		fmt.Println(strings.Join(cells, "\t"))
	}
}

// buildBody assembles a JSON request body from a raw --data document
// plus --set field=value overrides applied with sjson. Values that
// parse as JSON scalars keep their type; everything else is a string.
func buildBody(data string, sets []string) (map[string]any, error) {
	doc := data
	if doc == "" {
		doc = "{}"
	}

	for _, set := range sets {
		field, value, found := strings.Cut(set, "=")
		if !found || field == "" {
			return nil, fmt.Errorf("invalid --set %q: use field=value", set)
		}

		var err error
		if parsed := gjson.Parse(value); parsed.Type != gjson.String && json.Valid([]byte(value)) {
			doc, err = sjson.SetRaw(doc, field, value)
		} else {
			doc, err = sjson.Set(doc, field, value)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid --set %q: %w", set, err)
		}
	}

	var body map[string]any
	if err := json.Unmarshal([]byte(doc), &body); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	return body, nil
}
