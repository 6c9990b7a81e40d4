package query

import "strings"

// StringSlice parses a single comma-separated string
// into a trimmed slice of strings. Used for genre lists, which are
// stored as one comma-joined column.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}
