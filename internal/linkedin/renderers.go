package linkedin

import (
	"fmt"
	"linkedin-dashboard/lib/export"
	"strings"
)

func renderFullName(value any) string {
	author := asRecord(value)
	first, _ := author.Get("first_name")
	last, _ := author.Get("last_name")
	return strings.TrimSpace(fmt.Sprintf("%s %s", text(first), text(last)))
}

func renderYesNo(value any) string {
	if truthy(value) {
		return "Yes"
	}
	return "No"
}

func renderRange(value any) string {
	r := asRecord(value)
	if r == nil {
		return ""
	}
	start, _ := r.Get("start")
	end, _ := r.Get("end")
	return fmt.Sprintf("%s - %s", text(start), text(end))
}

func renderAddress(value any) string {
	hq := asRecord(value)
	line1, _ := hq.Get("line1")
	line2, _ := hq.Get("line2")
	return strings.TrimSpace(fmt.Sprintf("%s %s", text(line1), text(line2)))
}

func renderCoordinates(value any) string {
	geo := asRecord(value)
	if geo == nil {
		return ""
	}
	lat, _ := geo.Get("latitude")
	lon, _ := geo.Get("longitude")
	return fmt.Sprintf("%s, %s", text(lat), text(lon))
}

// renderPairs summarizes [[name, count], ...] tuples or {name: count}
// objects as "name (count)" joined by "; ".
func renderPairs(value any) string {
	var parts []string
	switch v := value.(type) {
	case []any:
		for _, item := range v {
			tuple, ok := item.([]any)
			if !ok || len(tuple) < 2 {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s (%s)", text(tuple[0]), text(tuple[1])))
		}
	case export.Record:
		for _, f := range v {
			parts = append(parts, fmt.Sprintf("%s (%s)", f.Key, text(f.Value)))
		}
	}
	return strings.Join(parts, "; ")
}
