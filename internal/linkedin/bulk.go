package linkedin

import (
	"fmt"
	"linkedin-dashboard/lib/export"
)

type bulkLayout struct {
	noun string
	// the result field identifying the item
	idKey string
	build func(item export.Record) ([]export.Section, error)
}

var bulkLayouts = map[Kind]bulkLayout{
	KindBulkProfiles: {
		noun:  "Profile",
		idKey: "username",
		build: func(item export.Record) ([]export.Section, error) {
			entity, err := profileEntity(asRecord(valueAt(item, "data")))
			return entity.Sections, err
		},
	},
	KindBulkCompanies: {
		noun:  "Company",
		idKey: "identifier",
		build: func(item export.Record) ([]export.Section, error) {
			entity, err := companyEntity(asRecord(valueAt(item, "data")))
			return entity.Sections, err
		},
	},
	KindBulkAnalytics: {
		noun:  "Post",
		idKey: "post_url",
		build: bulkAnalyticsSections,
	},
}

func errorSection(message string) export.Section {
	return export.Section{Table: export.Table{
		Columns: []string{"Key", "Value"},
		Rows:    [][]string{{"Error", message}},
	}}
}

// bulkEntities lays out one entity per upload result, items the API failed
// on get a single error row.
func bulkEntities(kind Kind, root export.Record) ([]export.Entity, error) {
	layout, ok := bulkLayouts[kind]
	if !ok {
		return nil, fmt.Errorf("%s is not a bulk kind", kind)
	}

	results := asRecords(valueAt(root, "results", "data.results"))
	if len(results) == 0 {
		return nil, fmt.Errorf("bulk upload: %w", ErrNoData)
	}

	entities := make([]export.Entity, len(results))
	for i, item := range results {
		id, _ := item.Get(layout.idKey)
		entity := export.Entity{
			Heading: fmt.Sprintf("%s %d: %s", layout.noun, i+1, text(id)),
		}

		if failure, ok := pick(item, "error"); ok {
			entity.Sections = []export.Section{errorSection(text(failure))}
			entities[i] = entity
			continue
		}

		sections, err := layout.build(item)
		if err != nil {
			sections = []export.Section{{Title: "No data found for this item."}}
		}
		entity.Sections = sections
		entities[i] = entity
	}
	return entities, nil
}

func bulkAnalyticsSections(item export.Record) ([]export.Section, error) {
	summary := asRecord(valueAt(item, "summary"))
	total, _ := summary.Get("total_comments")
	if !truthy(total) {
		return []export.Section{{Title: "No comments or analytics found for this post."}}, nil
	}

	table := export.Table{Columns: []string{"Metric", "Value"}}
	for _, f := range summary {
		var value string
		var err error
		label := humanizeKey(f.Key)
		switch f.Key {
		case "top_commenters":
			label = "Top Commenters"
			value = renderPairs(f.Value)
		case "reaction_histogram":
			label = "Reaction Histogram"
			value = renderPairs(f.Value)
		default:
			value, err = export.FormatCell(f.Value, metricOptions)
			if err != nil {
				return nil, err
			}
		}
		if value == "" {
			value = metricOptions.Empty
		}
		table.Rows = append(table.Rows, []string{label, value})
	}
	return []export.Section{{Table: table}}, nil
}
