package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/etnz/ppr"
	md "github.com/nao1215/markdown"
)

// Markdown renders a summary of in: its current value, in the given
// currency, and its history as a table.
func Markdown(in *ppr.Instrument, currency string) string {
	if in == nil {
		return ""
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(in.Name)
	doc.PlainText(fmt.Sprintf("Most recent value: %s on %s", md.Bold(FormatPrice(in.Current.Value, currency)), in.Current.Day))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Date", "Value"},
		Rows:   make([][]string, 0, in.Series.Len()),
	}
	for on, v := range in.Series.Values() {
		table.Rows = append(table.Rows, []string{on.String(), v.String()})
	}
	doc.Table(table)

	return doc.String()
}

// FormatPrice formats p with the currency symbol of code.
// The digits of p are never rounded to the currency precision.
func FormatPrice(p ppr.Price, code string) string {
	c := money.GetCurrency(code)
	if c == nil {
		if code == "" {
			return p.String()
		}
		return p.String() + " " + code
	}
	// go-money templates use "1" for the amount and "$" for the symbol.
	s := strings.Replace(c.Template, "1", p.String(), 1)
	return strings.Replace(s, "$", c.Grapheme, 1)
}
