package renderer

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/ppr"
	"github.com/etnz/ppr/date"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
)

// instrument is a helper for test to build an instrument from "day=price" points.
func instrument(t *testing.T, name string, points ...string) *ppr.Instrument {
	t.Helper()
	quotes := make([]ppr.Quote, 0, len(points))
	for _, p := range points {
		on, price, ok := strings.Cut(p, "=")
		if !ok {
			t.Fatalf("invalid point %q", p)
		}
		quotes = append(quotes, ppr.NewQuote(name, ppr.MustParsePrice(price), date.MustParse(on)))
	}
	return ppr.Build(slices.Values(quotes)).Get(name)
}

func render(t *testing.T, in *ppr.Instrument, k ppr.Kind) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(&buf, in, k); err != nil {
		t.Fatalf("Render(%v) error: %v", k, err)
	}
	return buf.String()
}

func TestRender_JSON(t *testing.T) {
	in := instrument(t, "Test Fund", "2024-01-10=100.5", "2024-03-02=98")

	got := render(t, in, ppr.JSON)
	want := `{"title":"Test Fund","currentMarketPrice":{"value":98.0,"date":"2024-03-02"},"history":[["2024-01-10",100.5],["2024-03-02",98.0]]}`
	if got != want {
		t.Errorf("JSON report mismatch:\ngot:  %s\nwant: %s", got, want)
	}
}

func TestRender_JSON_KeepsWorkbookOrder(t *testing.T) {
	in := instrument(t, "Fund", "2024-03-02=2", "2024-01-10=1", "2024-03-02=3")

	got := render(t, in, ppr.JSON)
	want := `{"title":"Fund","currentMarketPrice":{"value":2.0,"date":"2024-03-02"},"history":[["2024-03-02",2.0],["2024-01-10",1.0],["2024-03-02",3.0]]}`
	if got != want {
		t.Errorf("JSON report mismatch:\ngot:  %s\nwant: %s", got, want)
	}
}

func TestRender_CSV(t *testing.T) {
	tests := []struct {
		name   string
		points []string
		want   string
	}{
		{
			name:   "two points",
			points: []string{"2024-01-10=100.5", "2024-03-02=98"},
			want:   "date;marketPrice\n2024-01-10;100.5\n2024-03-02;98.0\n",
		},
		{
			name:   "single point",
			points: []string{"2023-12-31=1.2345678"},
			want:   "date;marketPrice\n2023-12-31;1.2345678\n",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := render(t, instrument(t, "Test Fund", tc.points...), ppr.CSV)
			if got != tc.want {
				t.Errorf("CSV report mismatch:\ngot:  %q\nwant: %q", got, tc.want)
			}
		})
	}
}

// textByID returns the text content of the element with the given id.
func textByID(n *html.Node, id string) (string, bool) {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				var sb strings.Builder
				collectText(&sb, n)
				return sb.String(), true
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if s, ok := textByID(c, id); ok {
			return s, true
		}
	}
	return "", false
}

func collectText(sb *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(sb, c)
	}
}

func TestRender_HTML(t *testing.T) {
	in := instrument(t, "Test Fund", "2024-01-10=100.5", "2024-03-02=98")

	doc, err := html.Parse(strings.NewReader(render(t, in, ppr.HTML)))
	if err != nil {
		t.Fatalf("html.Parse() error: %v", err)
	}

	checks := []struct {
		id   string
		want []string
	}{
		{"currentMarketPrice_upvalue", []string{"98.0"}},
		{"currentMarketPrice_update", []string{"2024-03-02"}},
		{"historyData", []string{"2024-01-10;100.5", "2024-03-02;98.0"}},
	}
	for _, c := range checks {
		got, ok := textByID(doc, c.id)
		if !ok {
			t.Errorf("element #%s not found", c.id)
			continue
		}
		for _, w := range c.want {
			if !strings.Contains(got, w) {
				t.Errorf("#%s = %q, want it to contain %q", c.id, got, w)
			}
		}
	}

	// History lines are in workbook order.
	history, _ := textByID(doc, "historyData")
	if i, j := strings.Index(history, "2024-01-10"), strings.Index(history, "2024-03-02"); i > j {
		t.Errorf("history out of order: %q", history)
	}
}

func TestRender_HTML_EscapesName(t *testing.T) {
	in := instrument(t, "<script>alert(1)</script>", "2024-01-10=1")

	got := render(t, in, ppr.HTML)
	if strings.Contains(got, "<script>") {
		t.Errorf("HTML report contains an unescaped name:\n%s", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Errorf("HTML report does not contain the escaped name:\n%s", got)
	}
}

func TestRender_NoInstrument(t *testing.T) {
	for _, k := range ppr.Kinds() {
		if got := render(t, nil, k); got != "" {
			t.Errorf("Render(nil, %v) = %q, want nothing", k, got)
		}
		if got := render(t, &ppr.Instrument{Name: "empty"}, k); got != "" {
			t.Errorf("Render(empty, %v) = %q, want nothing", k, got)
		}
	}
}

func TestRender_UnknownKind(t *testing.T) {
	in := instrument(t, "Fund", "2024-01-10=1")
	if err := Render(new(bytes.Buffer), in, ppr.Kind(42)); err == nil {
		t.Error("Render() with an unknown kind succeeded, want an error")
	}
}

func TestMarkdown(t *testing.T) {
	in := instrument(t, "Test Fund", "2024-01-10=100.5", "2024-03-02=98")

	src := []byte(Markdown(in, "EUR"))
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(src))

	var heading string
	rows := 0
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			if n.Level == 1 {
				heading = string(n.Lines().Value(src))
			}
		case *extast.TableRow:
			rows++
		}
		return ast.WalkContinue, nil
	})

	if heading != "Test Fund" {
		t.Errorf("Markdown() heading = %q, want %q", heading, "Test Fund")
	}
	if rows != 2 {
		t.Errorf("Markdown() table has %d rows, want 2", rows)
	}
	if !strings.Contains(string(src), "2024-03-02") {
		t.Errorf("Markdown() does not mention the current day:\n%s", src)
	}
}

func TestFormatPrice(t *testing.T) {
	p := ppr.MustParsePrice("98")
	tests := []struct {
		code string
		want string
	}{
		{"USD", "$98.0"},
		{"XYZ1", "98.0 XYZ1"},
		{"", "98.0"},
	}
	for _, tc := range tests {
		if got := FormatPrice(p, tc.code); got != tc.want {
			t.Errorf("FormatPrice(98, %q) = %q, want %q", tc.code, got, tc.want)
		}
	}
	if got := FormatPrice(p, "EUR"); !strings.Contains(got, "€") || !strings.Contains(got, "98.0") {
		t.Errorf("FormatPrice(98, EUR) = %q, want the euro sign and all digits", got)
	}
}
