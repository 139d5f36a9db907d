package table

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Classes whose content never belongs to the visible cell value:
// citation markers, hidden sort keys and edit links.
var skippedClasses = []string{"reference", "sortkey", "mw-editsection", "noprint"}

// CellText returns the visible text of a cell. Text nodes are concatenated
// without separators (a <br> contributes nothing), then runs of whitespace,
// including non-breaking spaces, collapse to a single space.
func CellText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		switch node.Type {
		case html.TextNode:
			buf.WriteString(node.Data)
			return
		case html.ElementNode:
			switch node.Data {
			case "script", "style", "sup":
				return
			}
			if isHidden(node) {
				return
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

// HasClass checks if a node has a specific CSS class
func HasClass(n *html.Node, className string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, class := range strings.Fields(GetAttribute(n, "class")) {
		if class == className {
			return true
		}
	}
	return false
}

// GetAttribute gets an attribute value from a node
func GetAttribute(n *html.Node, attrKey string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrKey {
			return attr.Val
		}
	}
	return ""
}

// span reads a rowspan/colspan attribute, defaulting to 1
func span(n *html.Node, attrKey string) int {
	v, err := strconv.Atoi(strings.TrimSpace(GetAttribute(n, attrKey)))
	if err != nil || v < 1 {
		return 1
	}
	// Browsers clamp absurd spans; so do we.
	if v > 1000 {
		return 1000
	}
	return v
}

func isHidden(n *html.Node) bool {
	for _, class := range skippedClasses {
		if HasClass(n, class) {
			return true
		}
	}
	style := strings.ReplaceAll(strings.ToLower(GetAttribute(n, "style")), " ", "")
	return strings.Contains(style, "display:none")
}
