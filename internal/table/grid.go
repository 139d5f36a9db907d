// Package table turns the first matching HTML table into a grid of text cells.
package table

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrNoTable is returned when the page has no table with the requested class
var ErrNoTable = errors.New("no matching table")

// ErrNoColumn is returned when no header contains the requested marker
var ErrNoColumn = errors.New("no matching column")

// Grid is a table flattened to text, with row and column spans expanded
// so every row has a value for every column it covers.
type Grid struct {
	Header []string
	Rows   [][]string
}

// ReadFirst parses htmlContent and returns the first table carrying class
func ReadFirst(htmlContent string, class string) (*Grid, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	tbl := doc.Find("table." + class).First()
	if tbl.Length() == 0 {
		return nil, fmt.Errorf("%w: table.%s", ErrNoTable, class)
	}
	tableNode := tbl.Get(0)

	grid := &Grid{}
	var carry []carried

	tbl.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		// Rows of nested tables belong to those tables
		if tr.Closest("table").Get(0) != tableNode {
			return
		}

		cells := tr.ChildrenFiltered("th, td")
		if cells.Length() == 0 {
			return
		}

		var row []string
		carry, row = expandRow(carry, cells.Nodes)

		if grid.Header == nil && allHeaders(cells) {
			grid.Header = row
			return
		}
		grid.Rows = append(grid.Rows, row)
	})

	return grid, nil
}

// Column returns the values of the first column whose header contains
// marker, along with that header's text.
func (g *Grid) Column(marker string) ([]string, string, error) {
	idx := -1
	for i, h := range g.Header {
		if strings.Contains(h, marker) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, "", fmt.Errorf("%w: %q", ErrNoColumn, marker)
	}

	values := make([]string, 0, len(g.Rows))
	for _, row := range g.Rows {
		if idx < len(row) {
			values = append(values, row[idx])
		} else {
			values = append(values, "")
		}
	}
	return values, g.Header[idx], nil
}

type carried struct {
	text string
	left int
}

// expandRow lays cells out left to right, filling slots still occupied
// by rowspans from earlier rows, and records the new rowspans.
func expandRow(carry []carried, cells []*html.Node) ([]carried, []string) {
	var row []string
	col := 0

	fill := func() {
		for col < len(carry) && carry[col].left > 0 {
			row = append(row, carry[col].text)
			carry[col].left--
			col++
		}
	}

	for _, cell := range cells {
		fill()
		text := CellText(cell)
		rs := span(cell, "rowspan")
		cs := span(cell, "colspan")
		for k := 0; k < cs; k++ {
			for len(carry) <= col {
				carry = append(carry, carried{})
			}
			carry[col] = carried{text: text, left: rs - 1}
			row = append(row, text)
			col++
		}
	}
	fill()

	return carry, row
}

func allHeaders(cells *goquery.Selection) bool {
	return cells.Length() == cells.Filter("th").Length()
}
