package stockq

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/net/html"

	"github.com/mtlprog/freightstat/internal/domain"
)

const pageDateLayout = "2006/01/02"

// ParseTables extracts index observations from every table in the page.
// The first row of each table is a header. Rows need at least three cells
// (date, value, change); rows that do not parse are skipped.
func ParseTables(r io.Reader) ([]domain.IndexPoint, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var points []domain.IndexPoint
	for _, table := range findAll(doc, "table") {
		rows := findAll(table, "tr")
		if len(rows) < 2 {
			continue
		}
		for _, tr := range rows[1:] {
			cells := findAll(tr, "td")
			if len(cells) < 3 {
				continue
			}
			point, ok := parseRow(textOf(cells[0]), textOf(cells[1]), textOf(cells[2]))
			if ok {
				points = append(points, point)
			}
		}
	}
	return points, nil
}

func parseRow(dateText, valueText, changeText string) (domain.IndexPoint, bool) {
	date, err := time.Parse(pageDateLayout, dateText)
	if err != nil {
		return domain.IndexPoint{}, false
	}
	value, err := decimal.NewFromString(strings.ReplaceAll(valueText, ",", ""))
	if err != nil {
		return domain.IndexPoint{}, false
	}
	return domain.IndexPoint{Date: date, Value: value, Change: changeText}, true
}

// findAll returns descendants of n with the given tag, in document order.
// Nested tables are searched too, so a row is only collected by its innermost table.
func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == tag {
				out = append(out, c)
				if tag == "tr" || tag == "td" {
					continue
				}
			}
			if tag != "table" && c.Type == html.ElementNode && c.Data == "table" {
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
