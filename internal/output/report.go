package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rpgo/dignity-planner/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for a format name no formatter answers to.
var ErrUnsupportedFormat = errors.New("unsupported output format")

func lookup(format, currency string) (Formatter, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	return WithCurrency(f, currency), nil
}

// Render formats the report and writes it to w.
func Render(w io.Writer, report *domain.PlanReport, format, currency string) error {
	f, err := lookup(format, currency)
	if err != nil {
		return err
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// GenerateReport writes the report to a timestamped file in dir and returns its path.
// The format "all" writes the console, detailed CSV and JSON reports.
func GenerateReport(report *domain.PlanReport, format, currency, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var paths []string
		for _, name := range []string{"console", "detailed-csv", "json"} {
			p, err := GenerateReport(report, name, currency, dir)
			if err != nil {
				return paths, err
			}
			paths = append(paths, p...)
		}
		return paths, nil
	}

	f, err := lookup(format, currency)
	if err != nil {
		return nil, err
	}
	path, err := WriteFormatted(f, report, dir, extensionFor(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// SaveConfiguration writes a snapshot in the YAML input format.
func SaveConfiguration(snap *domain.Snapshot, filename string) error {
	b, err := yaml.Marshal(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
