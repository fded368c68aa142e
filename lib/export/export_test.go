package export

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustRecords(t testing.TB, data string) []Record {
	records, err := DecodeRecords([]byte(data))
	require.NoError(t, err)
	return records
}

func TestCSVBasic(t *testing.T) {
	out, err := CSV(mustRecords(t, `[{"a":1,"b":2},{"a":3,"b":4}]`), Options{})
	require.NoError(t, err)
	require.Equal(t, "\"a\",\"b\"\n\"1\",\"2\"\n\"3\",\"4\"", string(out))
}

func TestCSVEmpty(t *testing.T) {
	_, err := CSV(mustRecords(t, `[]`), Options{})
	require.ErrorIs(t, err, ErrEmptyDataset)

	_, err = CSVFromJSON([]byte(`[]`), Options{})
	require.ErrorIs(t, err, ErrEmptyDataset)
}

func TestCSVQuoteEscaping(t *testing.T) {
	out, err := CSV(mustRecords(t, `[{"a":"he said \"hi\""}]`), Options{})
	require.NoError(t, err)
	require.Equal(t, "\"a\"\n\"he said \"\"hi\"\"\"", string(out))
}

func TestCSVFirstRecordHeader(t *testing.T) {
	records := mustRecords(t, `[{"a":1,"b":2},{"b":3,"c":4},{"a":null,"b":"x"}]`)

	out, err := CSV(records, Options{})
	require.NoError(t, err)
	require.Equal(t, "\"a\",\"b\"\n\"1\",\"2\"\n\"\",\"3\"\n\"\",\"x\"", string(out))

	out, err = CSV(records, Options{Empty: "-"})
	require.NoError(t, err)
	require.Equal(t, "\"a\",\"b\"\n\"1\",\"2\"\n\"-\",\"3\"\n\"-\",\"x\"", string(out))
}

func TestCSVCellFormatting(t *testing.T) {
	records := mustRecords(t, `[{
		"s": "line1\nline2, with comma",
		"t": true,
		"f": false,
		"i": 1200,
		"d": 1.50,
		"e": 1e3,
		"obj": {"x": [1, "<y>"]},
		"arr": [1, 2]
	}]`)

	out, err := CSV(records, Options{})
	require.NoError(t, err)
	expected := `"s","t","f","i","d","e","obj","arr"` + "\n" +
		`"line1` + "\n" + `line2, with comma","true","false","1200","1.5","1000","{""x"":[1,""<y>""]}","[1,2]"`
	require.Equal(t, expected, string(out))
}

func TestCSVFlatten(t *testing.T) {
	records := mustRecords(t, `[{"a":{"b":1,"c":{"d":"x"}},"e":[1]},{"a":{"b":2}}]`)
	out, err := CSV(records, Options{Flatten: true})
	require.NoError(t, err)
	require.Equal(t, "\"a.b\",\"a.c.d\",\"e\"\n\"1\",\"x\",\"[1]\"\n\"2\",\"\",\"\"", string(out))
}

func TestCSVDeterministic(t *testing.T) {
	records := mustRecords(t, `[{"z":1,"y":{"b":2,"a":3}},{"z":4}]`)
	first, err := CSV(records, Options{})
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := CSV(records, Options{})
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestNumberFormat(t *testing.T) {
	format := &NumberFormat{Grouping: true, MaxFractionDigits: 3}
	cases := []struct {
		value    any
		expected string
	}{
		{json.Number("1234567"), "1,234,567"},
		{json.Number("1234.56789"), "1,234.568"},
		{json.Number("0.1"), "0.1"},
		{json.Number("-9876.5"), "-9,876.5"},
		{42.0004, "42"},
		{7, "7"},
	}
	for _, c := range cases {
		out, err := FormatCell(c.value, Options{Number: format})
		require.NoError(t, err)
		require.Equal(t, c.expected, out, c.value)
	}

	out, err := FormatCell(json.Number("1234.56789"), Options{})
	require.NoError(t, err)
	require.Equal(t, "1234.56789", out)
}

func TestNumberFormatLargeValues(t *testing.T) {
	huge := "1" + strings.Repeat("0", 306)

	out, err := FormatCell(json.Number("1e306"), Options{Number: &NumberFormat{MaxFractionDigits: 3}})
	require.NoError(t, err)
	require.Equal(t, huge, out)

	out, err = FormatCell(json.Number("1e306"), Options{Number: &NumberFormat{Grouping: true, MaxFractionDigits: 3}})
	require.NoError(t, err)
	require.NotContains(t, out, "Inf")
	require.True(t, strings.HasPrefix(out, "1,000,000,"), out)
	require.Equal(t, huge, strings.ReplaceAll(out, ",", ""))

	out, err = FormatCell(json.Number("-2e20"), Options{Number: &NumberFormat{MaxFractionDigits: 2}})
	require.NoError(t, err)
	require.Equal(t, "-200000000000000000000", out)
}

func TestCSVFirstRecordWithoutFields(t *testing.T) {
	_, err := CSVFromJSON([]byte(`[{},{"a":1}]`), Options{})
	require.ErrorIs(t, err, ErrEmptyDataset)
}

func TestJSONExport(t *testing.T) {
	out, err := JSON(map[string]any{"x": 1})
	require.NoError(t, err)
	require.Equal(t, "{\n  \"x\": 1\n}", string(out))

	value, err := Decode([]byte(`{"b":[1,{"c":"<&>"}],"a":null}`))
	require.NoError(t, err)
	out, err = JSON(value)
	require.NoError(t, err)
	require.Equal(t, "{\n  \"b\": [\n    1,\n    {\n      \"c\": \"<&>\"\n    }\n  ],\n  \"a\": null\n}", string(out))

	raw := json.RawMessage(`{"z":1,"a":2}`)
	out, err = JSON(raw)
	require.NoError(t, err)
	require.Equal(t, "{\n  \"z\": 1,\n  \"a\": 2\n}", string(out))
}

func TestJSONUnserializable(t *testing.T) {
	_, err := JSON(map[string]any{"ch": make(chan int)})
	require.ErrorIs(t, err, ErrUnserializableValue)

	_, err = JSON(map[string]any{"f": func() {}})
	require.ErrorIs(t, err, ErrUnserializableValue)

	_, err = JSON(math.NaN())
	require.ErrorIs(t, err, ErrUnserializableValue)

	cyclic := map[string]any{}
	cyclic["self"] = cyclic
	_, err = JSON(cyclic)
	require.ErrorIs(t, err, ErrUnserializableValue)
}

func TestPlan(t *testing.T) {
	records := mustRecords(t, `[
		{"author":{"name":"Ada","headline":""},"stats":{"total_reactions":1200},"top":[{"name":"Bob","count":2},{"name":"Cy","count":1}],"tags":["go","csv"]},
		{"author":{"name":"Bob"}}
	]`)
	plan := Plan{
		{Header: "Author", Path: "author.name"},
		{Header: "Headline", Path: "author.headline"},
		{Header: "Reactions", Path: "stats.total_reactions"},
		{Header: "Top", Path: "top", Render: Summaries("name", "count")},
		{Header: "Tags", Path: "tags", Render: Join(", ")},
	}

	table, err := plan.Table(records, Options{Empty: "-"})
	require.NoError(t, err)
	require.Equal(t, []string{"Author", "Headline", "Reactions", "Top", "Tags"}, table.Columns)
	require.Equal(t, [][]string{
		{"Ada", "-", "1200", "Bob (2); Cy (1)", "go, csv"},
		{"Bob", "-", "-", "-", "-"},
	}, table.Rows)

	empty, err := plan.Table(nil, Options{})
	require.NoError(t, err)
	require.Equal(t, "\"Author\",\"Headline\",\"Reactions\",\"Top\",\"Tags\"", string(empty.CSV()))
}

func TestPlanKeyValue(t *testing.T) {
	records := mustRecords(t, `{"fullname":"Ada","follower_count":1500}`)
	plan := Plan{
		{Header: "Full Name", Path: "fullname"},
		{Header: "Followers", Path: "follower_count"},
		{Header: "Location", Path: "location.full"},
	}
	table, err := plan.KeyValue(records[0], Options{Empty: "-", Number: &NumberFormat{Grouping: true}})
	require.NoError(t, err)
	require.Equal(t, "\"Key\",\"Value\"\n\"Full Name\",\"Ada\"\n\"Followers\",\"1,500\"\n\"Location\",\"-\"", string(table.CSV()))
}

func TestSections(t *testing.T) {
	basic := Table{Columns: []string{"Key", "Value"}, Rows: [][]string{{"Name", "Ada"}}}
	experience := Table{Columns: []string{"Title"}, Rows: [][]string{{"Engineer"}}}
	errTable := Table{Columns: []string{"Key", "Value"}, Rows: [][]string{{"Error", "not found"}}}

	out := Sections(
		Entity{
			Heading: "Profile 1: ada",
			Sections: []Section{
				{Title: "Basic Info", Table: basic},
				{Title: "Experience", Table: experience},
			},
		},
		Entity{
			Heading:  "Profile 2: bob",
			Sections: []Section{{Table: errTable}},
		},
	)

	expected := "Profile 1: ada\n" +
		"Basic Info\n" +
		"\"Key\",\"Value\"\n" +
		"\"Name\",\"Ada\"\n" +
		"\n" +
		"Experience\n" +
		"\"Title\"\n" +
		"\"Engineer\"\n" +
		"\n" +
		"\n" +
		"Profile 2: bob\n" +
		"\"Key\",\"Value\"\n" +
		"\"Error\",\"not found\""
	require.Equal(t, expected, string(out))
}

func TestPlanDefault(t *testing.T) {
	records := mustRecords(t, `[{"stats":{"comments":3}},{"stats":{}}]`)
	plan := Plan{{Header: "Comments", Path: "stats.comments", Default: "0"}}
	table, err := plan.Table(records, Options{Empty: "-"})
	require.NoError(t, err)
	require.Equal(t, [][]string{{"3"}, {"0"}}, table.Rows)
}

func TestSectionWithoutTable(t *testing.T) {
	out := Sections(
		Entity{Heading: "Post 1: a", Sections: []Section{{Title: "No comments or analytics found for this post."}}},
		Entity{Heading: "Post 2: b", Sections: []Section{{Table: Table{Columns: []string{"x"}}}}},
	)
	require.Equal(t, "Post 1: a\nNo comments or analytics found for this post.\n\n\nPost 2: b\n\"x\"", string(out))
}
