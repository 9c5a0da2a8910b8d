package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rpgo/returns-calculator/internal/domain"
)

// ErrUnsupportedFormat is returned for a format name with no registered formatter.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(report *domain.Report) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVProjectionExporter{},
	CSVSummarizer{},
	HTMLFormatter{},
	JSONFormatter{},
}

// extensions maps formatter names to file extensions.
var extensions = map[string]string{
	"console":     "txt",
	"csv":         "csv",
	"csv-summary": "csv",
	"html":        "html",
	"json":        "json",
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"text":        "console",
	"txt":         "console",
	"projection":  "csv",
	"csv-yearly":  "csv",
	"summary":     "csv-summary",
	"html-report": "html",
	"json-pretty": "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// GetFormatterByName fetches a registered formatter, or nil.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Extension returns the file extension used for a formatter's output.
func Extension(f Formatter) string {
	if ext, ok := extensions[f.Name()]; ok {
		return ext
	}
	return "txt"
}

func lookup(format string) (Formatter, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	return f, nil
}

// GenerateReport renders the report in the named format to w.
func GenerateReport(w io.Writer, report *domain.Report, format string) error {
	f, err := lookup(format)
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

// WriteFormatted runs a formatter and writes its output to filename. An empty
// filename becomes investment_projection_<timestamp>.<ext>.
func WriteFormatted(f Formatter, report *domain.Report, filename string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	if filename == "" {
		filename = fmt.Sprintf("investment_projection_%s.%s", nowFunc().Format("20060102_150405"), Extension(f))
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// WriteReport is WriteFormatted with the formatter looked up by name.
func WriteReport(report *domain.Report, format, filename string) (string, error) {
	f, err := lookup(format)
	if err != nil {
		return "", err
	}
	return WriteFormatted(f, report, filename)
}

// NewReport wraps projections with the output settings of a configuration.
func NewReport(projections []domain.Projection, settings domain.OutputSettings, darkMode bool) *domain.Report {
	return &domain.Report{
		Projections:    projections,
		CurrencySymbol: settings.CurrencySymbol,
		Grouping:       settings.Grouping,
		DarkMode:       darkMode,
		GeneratedAt:    nowFunc().UTC(),
	}
}
