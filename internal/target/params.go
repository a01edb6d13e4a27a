package target

import "fmt"

// Parameter extraction helpers for MCP tool argument maps.

func StringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
		// JSON clients may send numbers for textual fields
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func IntParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}

func BoolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}

// StringSliceParam reads a list of strings. A single string is treated as a
// one-element list.
func StringSliceParam(params map[string]interface{}, key string) []string {
	switch v := params[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	case string:
		if v != "" {
			return []string{v}
		}
	}
	return nil
}

// FromParams builds Options from an MCP argument map using the same names as
// the CLI flags.
func FromParams(params map[string]interface{}) Options {
	return Options{
		App:    StringParam(params, "app", ""),
		PID:    IntParam(params, "pid", 0),
		Window: StringParam(params, "window", ""),
		Attrs:  StringSliceParam(params, "attr"),
		CName:  StringParam(params, "c_name", ""),
	}
}
