package linkedin

import (
	"encoding/json"
	"fmt"
	"linkedin-dashboard/lib/export"
	"strconv"
)

var cellOptions = export.Options{Empty: "-"}

var metricOptions = export.Options{
	Empty:  "-",
	Number: &export.NumberFormat{Grouping: true, MaxFractionDigits: 3},
}

var (
	profileBasicPlan = export.Plan{
		{Header: "Full Name", Path: "basic_info.fullname"},
		{Header: "Headline", Path: "basic_info.headline"},
		{Header: "Profile URL", Path: "basic_info.profile_url"},
		{Header: "Location", Path: "basic_info.location.full"},
		{Header: "Followers", Path: "basic_info.follower_count"},
		{Header: "Connections", Path: "basic_info.connection_count"},
		{Header: "Current Company", Path: "basic_info.current_company"},
	}
	experiencePlan = export.Plan{
		{Header: "Title", Path: "title"},
		{Header: "Company", Path: "company"},
		{Header: "Duration", Path: "duration"},
		{Header: "Company URL", Path: "company_linkedin_url"},
	}
	educationPlan = export.Plan{
		{Header: "School", Path: "school"},
		{Header: "Degree", Path: "degree_name"},
		{Header: "Field", Path: "field_of_study"},
		{Header: "Duration", Path: "duration"},
		{Header: "School URL", Path: "school_linkedin_url"},
	}

	postsPlan = export.Plan{
		{Header: "Author", Path: "author", Render: renderFullName},
		{Header: "Headline", Path: "author.headline"},
		{Header: "Text", Path: "text"},
		{Header: "Reactions", Path: "stats.total_reactions", Default: "0"},
		{Header: "Comments", Path: "stats.comments", Default: "0"},
		{Header: "Reposts", Path: "stats.reposts", Default: "0"},
		{Header: "Posted", Path: "posted_at.relative"},
		{Header: "Link", Path: "url"},
	}

	commentsPlan = export.Plan{
		{Header: "Commenter", Path: "author.name"},
		{Header: "Headline", Path: "author.headline"},
		{Header: "Text", Path: "text"},
		{Header: "Reactions", Path: "stats.total_reactions", Default: "0"},
		{Header: "Posted", Path: "posted_at.relative"},
		{Header: "CommentURL", Path: "comment_url"},
	}

	companyBasicPlan = export.Plan{
		{Header: "Name", Path: "basic_info.name"},
		{Header: "Tagline", Path: "basic_info.description"},
		{Header: "LinkedIn URL", Path: "basic_info.linkedin_url"},
		{Header: "Website", Path: "basic_info.website"},
		{Header: "Industry", Path: "basic_info.industries", Render: export.Join(", ")},
		{Header: "Specialties", Path: "basic_info.specialties", Render: export.Join(", ")},
		{Header: "Founded", Path: "basic_info.founded_info.year"},
		{Header: "Verified", Path: "basic_info.is_verified", Render: renderYesNo},
	}
	companyStatsPlan = export.Plan{
		{Header: "Followers", Path: "stats.follower_count"},
		{Header: "Employees", Path: "stats.employee_count"},
		{Header: "Employee Range", Path: "stats.employee_count_range", Render: renderRange},
		{Header: "Students", Path: "stats.student_count"},
	}
	companyHeadquartersPlan = export.Plan{
		{Header: "Country", Path: "locations.headquarters.country"},
		{Header: "State", Path: "locations.headquarters.state"},
		{Header: "City", Path: "locations.headquarters.city"},
		{Header: "Postal Code", Path: "locations.headquarters.postal_code"},
		{Header: "Address", Path: "locations.headquarters", Render: renderAddress},
		{Header: "Description", Path: "locations.headquarters.description"},
		{Header: "Coordinates", Path: "locations.geo_coordinates", Render: renderCoordinates},
	}
	companyFundingPlan = export.Plan{
		{Header: "Total Rounds", Path: "funding.total_rounds"},
		{Header: "Latest Round Type", Path: "funding.latest_round.type"},
		{Header: "Latest Round Date", Path: "funding.latest_round.date"},
		{Header: "Investors", Path: "funding.latest_round.investors_count"},
		{Header: "Crunchbase URL", Path: "funding.crunchbase_url"},
	}

	topCommentersPlan = export.Plan{
		{Header: "Name", Path: "0"},
		{Header: "Comments", Path: "1"},
	}
	histogramPlan = export.Plan{
		{Header: "Reaction", Path: "reaction"},
		{Header: "Count", Path: "count"},
	}
	analyticsCommentsPlan = export.Plan{
		{Header: "Author", Path: "author.name", Default: "Unknown"},
		{Header: "Headline", Path: "author.headline"},
		{Header: "Comment", Path: "text"},
		{Header: "Reactions", Path: "stats.total_reactions", Default: "0"},
		{Header: "Posted", Path: "posted_at.date"},
		{Header: "Profile URL", Path: "author.profile_url"},
	}

	reactionsPlan = export.Plan{
		{Header: "Name", Path: "reactor.name"},
		{Header: "Headline", Path: "reactor.headline"},
		{Header: "Profile URL", Path: "reactor.profile_url"},
		{Header: "Reaction", Path: "reaction_type"},
	}
)

// Bar is one bar of the reaction histogram.
type Bar struct {
	Label string
	Count float64
}

// View is everything shown for a response: its entities (each a list of
// titled tables) and, for comment analytics, the reaction histogram.
type View struct {
	Kind      Kind
	Entities  []export.Entity
	Histogram []Bar
}

// Rows counts the data rows over every table.
func (v View) Rows() int {
	n := 0
	for _, e := range v.Entities {
		for _, s := range e.Sections {
			n += len(s.Table.Rows)
		}
	}
	return n
}

// BuildView lays out a response payload of the given kind.
func BuildView(kind Kind, payload json.RawMessage) (View, error) {
	root, err := decodeRoot(payload)
	if err != nil {
		return View{}, err
	}

	view := View{Kind: kind}
	var entity export.Entity
	switch kind {
	case KindProfile:
		data := asRecord(valueAt(root, "data", ""))
		entity, err = profileEntity(data)
	case KindPosts:
		entity, err = listEntity(root, "Posts", postsPlan, "data.posts", "posts")
	case KindComments:
		entity, err = listEntity(root, "Comments", commentsPlan, "data.comments", "comments")
	case KindCompany:
		data := asRecord(valueAt(root, "data", ""))
		entity, err = companyEntity(data)
	case KindAnalytics:
		entity, view.Histogram, err = analyticsEntity(root)
	case KindReactions:
		entity, err = listEntity(root, "Post Reactions", reactionsPlan, "data.reactions", "reactions")
	case KindBulkProfiles, KindBulkCompanies, KindBulkAnalytics:
		view.Entities, err = bulkEntities(kind, root)
		if err != nil {
			return View{}, err
		}
		return view, nil
	default:
		return View{}, fmt.Errorf("unknown kind %q", kind)
	}
	if err != nil {
		return View{}, err
	}
	view.Entities = []export.Entity{entity}
	return view, nil
}

// valueAt is pick without the found flag.
func valueAt(root export.Record, paths ...string) any {
	value, _ := pick(root, paths...)
	return value
}

func listEntity(root export.Record, title string, plan export.Plan, paths ...string) (export.Entity, error) {
	value, _ := pick(root, paths...)
	items := asRecords(value)
	if len(items) == 0 {
		return export.Entity{}, fmt.Errorf("%s: %w", title, ErrNoData)
	}
	table, err := plan.Table(items, cellOptions)
	if err != nil {
		return export.Entity{}, err
	}
	return export.Entity{Sections: []export.Section{{Title: title, Table: table}}}, nil
}

func profileEntity(data export.Record) (export.Entity, error) {
	if _, ok := pick(data, "basic_info"); !ok {
		return export.Entity{}, fmt.Errorf("profile: %w", ErrNoData)
	}

	basic, err := profileBasicPlan.KeyValue(data, cellOptions)
	if err != nil {
		return export.Entity{}, err
	}
	entity := export.Entity{Sections: []export.Section{{Title: "Basic Info", Table: basic}}}

	lists := []struct {
		title string
		path  string
		plan  export.Plan
	}{
		{"Experience", "experience", experiencePlan},
		{"Education", "education", educationPlan},
	}
	for _, l := range lists {
		items := asRecords(valueAt(data, l.path))
		if len(items) == 0 {
			continue
		}
		table, err := l.plan.Table(items, cellOptions)
		if err != nil {
			return export.Entity{}, err
		}
		entity.Sections = append(entity.Sections, export.Section{Title: l.title, Table: table})
	}
	return entity, nil
}

func companyEntity(data export.Record) (export.Entity, error) {
	if _, ok := pick(data, "basic_info.name"); !ok {
		return export.Entity{}, fmt.Errorf("company: %w", ErrNoData)
	}

	var entity export.Entity
	sections := []struct {
		title string
		plan  export.Plan
	}{
		{"Basic Info", companyBasicPlan},
		{"Stats", companyStatsPlan},
		{"Headquarters", companyHeadquartersPlan},
		{"Funding Information", companyFundingPlan},
	}
	for _, s := range sections {
		table, err := s.plan.KeyValue(data, cellOptions)
		if err != nil {
			return export.Entity{}, err
		}
		entity.Sections = append(entity.Sections, export.Section{Title: s.title, Table: table})
	}

	links := export.Table{Columns: []string{"Key", "Value"}}
	for _, f := range asRecord(valueAt(data, "links")) {
		value := text(f.Value)
		if value == "" {
			value = cellOptions.Empty
		}
		links.Rows = append(links.Rows, []string{capitalize(f.Key), value})
	}
	entity.Sections = append(entity.Sections, export.Section{Title: "Links", Table: links})
	return entity, nil
}

// summaryTable writes every summary metric except the nested ones,
// numbers are grouped with at most 3 fraction digits.
func summaryTable(summary export.Record) (export.Table, error) {
	table := export.Table{Columns: []string{"Metric", "Value"}}
	for _, f := range summary {
		if f.Key == "top_commenters" || f.Key == "reaction_histogram" {
			continue
		}
		value, err := export.FormatCell(f.Value, metricOptions)
		if err != nil {
			return export.Table{}, err
		}
		if value == "" {
			value = metricOptions.Empty
		}
		table.Rows = append(table.Rows, []string{humanizeKey(f.Key), value})
	}
	return table, nil
}

func histogram(summary export.Record) ([]Bar, []export.Record) {
	var bars []Bar
	var records []export.Record
	for _, f := range asRecord(valueAt(summary, "reaction_histogram")) {
		count, _ := strconv.ParseFloat(text(f.Value), 64)
		bars = append(bars, Bar{Label: f.Key, Count: count})
		records = append(records, export.Record{
			{Key: "reaction", Value: f.Key},
			{Key: "count", Value: f.Value},
		})
	}
	return bars, records
}

func analyticsEntity(root export.Record) (export.Entity, []Bar, error) {
	summary := asRecord(valueAt(root, "summary", "data.summary"))
	total, _ := summary.Get("total_comments")
	if !truthy(total) {
		return export.Entity{}, nil, fmt.Errorf("analytics: %w", ErrNoData)
	}

	summaryT, err := summaryTable(summary)
	if err != nil {
		return export.Entity{}, nil, err
	}
	entity := export.Entity{Sections: []export.Section{
		{Title: "Comment Analytics Summary", Table: summaryT},
	}}

	commenters := asTuples(valueAt(summary, "top_commenters"))
	if len(commenters) > 0 {
		table, err := topCommentersPlan.Table(commenters, cellOptions)
		if err != nil {
			return export.Entity{}, nil, err
		}
		entity.Sections = append(entity.Sections, export.Section{Title: "Top Commenters", Table: table})
	}

	bars, histogramRecords := histogram(summary)
	if len(histogramRecords) > 0 {
		table, err := histogramPlan.Table(histogramRecords, cellOptions)
		if err != nil {
			return export.Entity{}, nil, err
		}
		entity.Sections = append(entity.Sections, export.Section{Title: "Reaction Histogram", Table: table})
	}

	comments := asRecords(valueAt(root, "comments", "data.comments"))
	if len(comments) > 0 {
		table, err := analyticsCommentsPlan.Table(comments, cellOptions)
		if err != nil {
			return export.Entity{}, nil, err
		}
		entity.Sections = append(entity.Sections, export.Section{Title: "Comments", Table: table})
	}

	return entity, bars, nil
}

// asTuples turns [[name, count], ...] into records addressable by index
// ("0", "1") so they can go through a plan.
func asTuples(value any) []export.Record {
	items, _ := value.([]any)
	var out []export.Record
	for _, item := range items {
		tuple, ok := item.([]any)
		if !ok {
			continue
		}
		record := make(export.Record, len(tuple))
		for i, v := range tuple {
			record[i] = export.Field{Key: strconv.Itoa(i), Value: v}
		}
		out = append(out, record)
	}
	return out
}

// recordPaths is where each kind keeps its rows. Profile and company
// responses are a single object and export as one row.
var recordPaths = map[Kind][]string{
	KindProfile:       {"data"},
	KindCompany:       {"data"},
	KindPosts:         {"data.posts", "posts"},
	KindComments:      {"data.comments", "comments"},
	KindReactions:     {"data.reactions", "reactions"},
	KindAnalytics:     {"comments", "data.comments"},
	KindBulkProfiles:  {"results", "data.results"},
	KindBulkCompanies: {"results", "data.results"},
	KindBulkAnalytics: {"results", "data.results"},
}

// Records returns the rows of a response as they came from the API, for
// the generic CSV export.
func Records(kind Kind, payload json.RawMessage) ([]export.Record, error) {
	paths, ok := recordPaths[kind]
	if !ok {
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
	root, err := decodeRoot(payload)
	if err != nil {
		return nil, err
	}

	value, _ := pick(root, paths...)
	var records []export.Record
	if record, ok := value.(export.Record); ok {
		if len(record) > 0 {
			records = []export.Record{record}
		}
	} else {
		records = asRecords(value)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", kind, ErrNoData)
	}
	return records, nil
}
