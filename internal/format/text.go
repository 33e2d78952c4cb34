package format

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Fields shown first, in this order, when present on an object. They name the entity so the
// outline reads top-down.
var textLeadKeys = []string{"boardName", "listName", "taskName", "type", "summary"}

// WriteText renders v as an indented outline. Objects print their name-like field as a heading and
// the remaining scalar fields as "key: value" lines; nested arrays are indented beneath.
func WriteText(w io.Writer, v any) error {
	x, err := generic(v)
	if err != nil {
		return err
	}
	var sb strings.Builder
	writeTextValue(&sb, x, 0)
	_, err = io.WriteString(w, sb.String())
	return err
}

func writeTextValue(sb *strings.Builder, v any, depth int) {
	pad := strings.Repeat("  ", depth)
	switch t := v.(type) {
	case map[string]any:
		if data, ok := t["data"]; ok && len(t) == 1 {
			writeTextValue(sb, data, depth)
			return
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lead := ""
		for _, k := range textLeadKeys {
			if s, ok := t[k].(string); ok {
				lead = k
				fmt.Fprintf(sb, "%s%s\n", pad, s)
				break
			}
		}
		for _, k := range keys {
			if k == lead {
				continue
			}
			switch c := t[k].(type) {
			case []any:
				fmt.Fprintf(sb, "%s  %s (%d)\n", pad, k, len(c))
				for _, it := range c {
					writeTextValue(sb, it, depth+2)
				}
			case map[string]any:
				fmt.Fprintf(sb, "%s  %s:\n", pad, k)
				writeTextValue(sb, c, depth+2)
			default:
				if s, ok := c.(string); ok && s == "" {
					continue
				}
				fmt.Fprintf(sb, "%s  %s: %v\n", pad, k, scalar(c))
			}
		}
	case []any:
		for _, it := range t {
			writeTextValue(sb, it, depth)
		}
	default:
		fmt.Fprintf(sb, "%s%v\n", pad, scalar(t))
	}
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return "-"
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case string:
		return strings.ReplaceAll(t, "\n", " ")
	default:
		return fmt.Sprint(t)
	}
}
