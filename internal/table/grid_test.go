package table

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const pmTable = `
<html><body>
<table class="infobox"><tr><th>Name</th></tr><tr><td>Not me</td></tr></table>
<table class="wikitable sortable">
<tbody>
<tr>
  <th rowspan="2">No.</th>
  <th rowspan="2">Name<br/><small>(Birth–Death)</small><br/>Constituency</th>
  <th colspan="2">Term of office</th>
</tr>
<tr><th>Start</th><th>End</th></tr>
<tr>
  <td rowspan="2">1</td>
  <td rowspan="2"><a href="/wiki/Edmund_Barton">Edmund Barton</a><br/><small>(1849–1920)</small><br/><small>MP for Hunter</small><sup class="reference">[1]</sup></td>
  <td>1901</td><td>1902</td>
</tr>
<tr><td>1902</td><td>1903</td></tr>
<tr>
  <td>2</td>
  <td><span class="sortkey" style="display:none">Howard John</span>John&nbsp;Howard<br/><small>(b.&nbsp;1939)</small><br/>MP for Bennelong</td>
  <td>1996</td><td>2007</td>
</tr>
</tbody>
</table>
<table class="wikitable"><tr><th>Other</th></tr></table>
</body></html>`

func TestReadFirst_ExpandsSpans(t *testing.T) {
	grid, err := ReadFirst(pmTable, "wikitable")
	require.NoError(t, err)

	assert.Equal(t, []string{"No.", "Name(Birth–Death)Constituency", "Term of office", "Term of office"}, grid.Header)
	require.Len(t, grid.Rows, 4)

	// Second header row inherits the rowspanned header cells
	assert.Equal(t, []string{"No.", "Name(Birth–Death)Constituency", "Start", "End"}, grid.Rows[0])
	assert.Equal(t, []string{"1", "Edmund Barton(1849–1920)MP for Hunter", "1901", "1902"}, grid.Rows[1])
	assert.Equal(t, []string{"1", "Edmund Barton(1849–1920)MP for Hunter", "1902", "1903"}, grid.Rows[2])
	assert.Equal(t, []string{"2", "John Howard(b. 1939)MP for Bennelong", "1996", "2007"}, grid.Rows[3])
}

func TestReadFirst_NoTable(t *testing.T) {
	_, err := ReadFirst(`<html><body><table class="infobox"></table></body></html>`, "wikitable")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoTable))
}

func TestReadFirst_IgnoresNestedTables(t *testing.T) {
	page := `<table class="wikitable">
<tr><th>Name</th></tr>
<tr><td>Outer<table><tr><td>inner</td></tr></table></td></tr>
</table>`
	grid, err := ReadFirst(page, "wikitable")
	require.NoError(t, err)
	require.Len(t, grid.Rows, 1)
	assert.Equal(t, "Outerinner", grid.Rows[0][0])
}

func TestGrid_Column(t *testing.T) {
	grid, err := ReadFirst(pmTable, "wikitable")
	require.NoError(t, err)

	values, header, err := grid.Column("Name")
	require.NoError(t, err)
	assert.Equal(t, "Name(Birth–Death)Constituency", header)
	assert.Len(t, values, 4)
	assert.Equal(t, "John Howard(b. 1939)MP for Bennelong", values[3])

	_, _, err = grid.Column("Party")
	assert.True(t, errors.Is(err, ErrNoColumn))
}

func TestGrid_ColumnShortRow(t *testing.T) {
	g := &Grid{Header: []string{"A", "Name"}, Rows: [][]string{{"x"}}}
	values, _, err := g.Column("Name")
	require.NoError(t, err)
	assert.Equal(t, []string{""}, values)
}

func TestCellText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `<td>Alfred Deakin</td>`, "Alfred Deakin"},
		{"br joins", `<td>A<br>B</td>`, "AB"},
		{"collapses whitespace", "<td>  a \n\t b  </td>", "a b"},
		{"nbsp", "<td>b.&nbsp;1939</td>", "b. 1939"},
		{"drops sup", `<td>X<sup>[2]</sup></td>`, "X"},
		{"drops hidden", `<td><span style="display: none">key</span>Shown</td>`, "Shown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := html.Parse(strings.NewReader("<table><tr>" + tt.in + "</tr></table>"))
			require.NoError(t, err)
			td := findFirst(doc, "td")
			require.NotNil(t, td)
			assert.Equal(t, tt.want, CellText(td))
		})
	}
}

func TestSpan(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<table><tr><td rowspan="3" colspan="x">a</td></tr></table>`))
	require.NoError(t, err)
	td := findFirst(doc, "td")
	assert.Equal(t, 3, span(td, "rowspan"))
	assert.Equal(t, 1, span(td, "colspan"))
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}
