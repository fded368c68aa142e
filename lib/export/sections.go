package export

import (
	"strings"
)

type Section struct {
	// omitted when empty
	Title string
	Table Table
}

type Entity struct {
	// omitted when empty
	Heading  string
	Sections []Section
}

// Sections lays out several entities in one CSV document: each entity's
// heading, then every section as its title followed by its quoted table and
// a blank line. Entities are separated by an extra blank line.
func Sections(entities ...Entity) []byte {
	var lines []string
	for i, entity := range entities {
		if i > 0 {
			lines = append(lines, "")
		}
		if entity.Heading != "" {
			lines = append(lines, entity.Heading)
		}
		for _, section := range entity.Sections {
			if section.Title != "" {
				lines = append(lines, section.Title)
			}
			lines = append(lines, section.Table.lines()...)
			lines = append(lines, "")
		}
	}
	return []byte(strings.TrimRight(strings.Join(lines, "\n"), "\n"))
}
