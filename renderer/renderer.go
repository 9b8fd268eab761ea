// Package renderer turns an instrument history into reports.
package renderer

import (
	"embed"
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/etnz/ppr"
)

//go:embed templates/*.html
var templates embed.FS

// Render writes the report of kind k for in.
//
// A nil instrument, or one without any point, renders nothing: this is how
// reports for unknown funds are silently skipped.
func Render(w io.Writer, in *ppr.Instrument, k ppr.Kind) error {
	if in == nil || in.Series.Len() == 0 {
		return nil
	}
	switch k {
	case ppr.HTML:
		return renderHTML(w, in)
	case ppr.JSON:
		return renderJSON(w, in)
	case ppr.CSV:
		return renderCSV(w, in)
	default:
		return fmt.Errorf("unknown report kind %d", int(k))
	}
}

// point is a rendered (date, value) pair.
type point struct {
	Date  string
	Value string
}

// report is the view of an instrument used by the html templates.
type report struct {
	Title   string
	Current point
	History []point
}

func newReport(in *ppr.Instrument) *report {
	r := &report{
		Title:   in.Name,
		Current: point{in.Current.Day.String(), in.Current.Value.String()},
		History: make([]point, 0, in.Series.Len()),
	}
	for on, v := range in.Series.Values() {
		r.History = append(r.History, point{on.String(), v.String()})
	}
	return r
}

func renderHTML(w io.Writer, in *ppr.Instrument) error {
	partials := map[string]string{
		"report_current": "report_current.html",
		"report_history": "report_history.html",
	}
	return renderTemplate(w, "report", "report.html", partials, newReport(in))
}

// renderJSON writes {"title", "currentMarketPrice", "history"} in that order.
func renderJSON(w io.Writer, in *ppr.Instrument) error {
	var current jsonObjectWriter
	current.Append("value", in.Current.Value).
		Append("date", in.Current.Day)

	history := make([][2]any, 0, in.Series.Len())
	for on, v := range in.Series.Values() {
		history = append(history, [2]any{on, v})
	}

	var jw jsonObjectWriter
	jw.Append("title", in.Name).
		Append("currentMarketPrice", &current).
		Append("history", history)

	b, err := jw.MarshalJSON()
	if err != nil {
		return fmt.Errorf("cannot encode %q: %w", in.Name, err)
	}
	_, err = w.Write(b)
	return err
}

func renderCSV(w io.Writer, in *ppr.Instrument) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write([]string{"date", "marketPrice"}); err != nil {
		return err
	}
	for on, v := range in.Series.Values() {
		if err := cw.Write([]string{on.String(), v.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(w io.Writer, templateName, mainFile string, partials map[string]string, data any) error {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Errorf("error reading main template %q: %w", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Errorf("error parsing main template %q: %w", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Errorf("error reading partial template %q: %w", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Errorf("error parsing partial template %q for %q: %w", file, name, err)
		}
	}

	if err := tmpl.ExecuteTemplate(w, templateName, data); err != nil {
		return fmt.Errorf("error executing template %q: %w", templateName, err)
	}
	return nil
}
