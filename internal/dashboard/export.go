package dashboard

import (
	"errors"
	"fmt"
	devenv "linkedin-dashboard/dev/env"
	"linkedin-dashboard/internal/linkedin"
	"linkedin-dashboard/lib/export"
	"os"
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	// one CSV row per response record with nested fields as dotted columns
	FormatFlat Format = "flat"
)

var flatOptions = export.Options{Empty: "-", Flatten: true}

func (f Format) MimeType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV, FormatFlat:
		return "text/csv"
	}
	return "application/octet-stream"
}

// fileName is "<stem>.json", "<stem>.csv" or "<stem>_flat.csv".
func (f Format) fileName(stem string) string {
	if f == FormatFlat {
		return fmt.Sprintf("%s_flat.csv", stem)
	}
	return fmt.Sprintf("%s.%s", stem, f)
}

// ParseFormats reads the value of an --export flag: json, csv, flat, both
// (json and csv) or all. An empty value means no export.
func ParseFormats(value string) ([]Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return nil, nil
	case "json":
		return []Format{FormatJSON}, nil
	case "csv":
		return []Format{FormatCSV}, nil
	case "flat":
		return []Format{FormatFlat}, nil
	case "both":
		return []Format{FormatJSON, FormatCSV}, nil
	case "all":
		return []Format{FormatJSON, FormatCSV, FormatFlat}, nil
	}
	return nil, fmt.Errorf("unknown export format %q, expected json, csv, flat, both or all", value)
}

// Artifact is a written export file.
type Artifact struct {
	Path     string
	MimeType string
	Size     int
}

// Render produces the export contents: the raw payload pretty printed for
// JSON, the laid out tables for CSV and the response records as a single
// table for flat.
func Render(result Result, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return export.JSON(result.Payload)
	case FormatCSV:
		if len(result.View.Entities) == 0 {
			return nil, export.ErrEmptyDataset
		}
		return export.Sections(result.View.Entities...), nil
	case FormatFlat:
		records, err := linkedin.Records(result.Query.Kind, result.Payload)
		if errors.Is(err, linkedin.ErrNoData) {
			return nil, export.ErrEmptyDataset
		}
		if err != nil {
			return nil, err
		}
		return export.CSV(records, flatOptions)
	}
	return nil, fmt.Errorf("unknown export format %q", format)
}

// Export writes the result to "<dir>/<context>_<kind>.<format>". Nothing is
// left behind when it fails.
func Export(result Result, format Format, dir string) (Artifact, error) {
	contents, err := Render(result, format)
	if err != nil {
		return Artifact{}, fmt.Errorf("export %s: %w", format, err)
	}

	if dir == "" {
		dir = "."
	}
	dir, err = devenv.ResolvePath(dir)
	if err != nil {
		return Artifact{}, err
	}
	err = os.MkdirAll(dir, 0777)
	if err != nil {
		return Artifact{}, err
	}

	name := format.fileName(linkedin.FileStem(result.Query.Kind, result.Query.Context))
	path := filepath.Join(dir, name)
	err = writeAtomic(path, contents)
	if err != nil {
		return Artifact{}, fmt.Errorf("write %s: %w", path, err)
	}

	return Artifact{
		Path:     path,
		MimeType: format.MimeType(),
		Size:     len(contents),
	}, nil
}

func writeAtomic(path string, contents []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	_, err = tmp.Write(contents)
	if err != nil {
		tmp.Close()
		return err
	}
	err = tmp.Close()
	if err != nil {
		return err
	}
	err = os.Chmod(tmpName, 0644)
	if err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
