// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/dsctl/internal/config"
)

// Column selects one key of each row for text output.
type Column struct {
	Key   string
	Title string
	// Transform, if set, rewrites the value before it is rendered as text.
	Transform func(interface{}) interface{}
}

// Options controls how Render writes a result set.
type Options struct {
	// Format is one of text, json or yaml.
	Format string
	Titles bool
	Color  bool
	// Sort is a comma-separated list of keys, see SortDataset.
	Sort   string
	Header string
}

// Formats lists the accepted values of Options.Format.
var Formats = []string{"text", "json", "yaml"}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	case time.Time:
		return value.UTC().Format(time.RFC3339)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// HumanBytes renders an int64 byte count as e.g. "1.5 MiB".
func HumanBytes(value interface{}) interface{} {
	if n, ok := value.(int64); ok && n >= 0 {
		return humanize.IBytes(uint64(n))
	}
	return value
}

// HumanTime renders a time.Time relative to now, e.g. "3 minutes ago".
func HumanTime(value interface{}) interface{} {
	if t, ok := value.(time.Time); ok && !t.IsZero() {
		return humanize.Time(t)
	}
	return value
}

// ColorAllowed reports whether f is a terminal, so colored output will not
// leak escape codes into pipes and files.
func ColorAllowed(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Render sorts rows and writes them to w in the requested format. Text output
// only shows cols; json and yaml output carry every key of every row.
func Render(w io.Writer, rows []map[string]interface{}, cols []Column, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	SortDataset(rows, opts.Sort)

	switch opts.Format {
	case "json":
		if rows == nil {
			rows = []map[string]interface{}{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml":
		out, err := yaml.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	case "", "text":
		TableWriter(w, rows, cols, opts)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

// TableWriter renders the result set in a tabular form honoring color and
// titles options.
func TableWriter(w io.Writer, rows []map[string]interface{}, cols []Column, opts Options) {
	if len(rows) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	var data [][]string
	for _, row := range rows {
		line := make([]string, 0, len(cols))
		for _, col := range cols {
			value := row[col.Key]
			if col.Transform != nil {
				value = col.Transform(value)
			}
			line = append(line, InterfaceToString(value, "-"))
		}
		data = append(data, line)
	}

	if opts.Header != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Header))
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(1)
			}

			return style
		}).
		Headers().
		Rows(data...)

	if opts.Titles {
		headers := make([]string, 0, len(cols))
		for _, col := range cols {
			title := col.Title
			if title == "" {
				title = col.Key
			}
			headers = append(headers, title)
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// getColors returns configured color values for table rendering, falling back
// to defaults picked by terminal background.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
