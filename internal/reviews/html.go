package reviews

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Attributes marking a review element in exported HTML.
const (
	AttrReviewID = "data-review-id"
	AttrScore    = "data-score"
)

// LoadFromHTML extracts reviews from an HTML page. Every element carrying
// both data-review-id and data-score becomes a review whose content is the
// element's text with whitespace collapsed. Elements with an unparsable
// score are skipped. Review elements nested inside another review element
// are read as part of the outer one.
func LoadFromHTML(r io.Reader) ([]Review, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var out []Review
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			id, hasID := attr(n, AttrReviewID)
			raw, hasScore := attr(n, AttrScore)
			if hasID && hasScore {
				if score, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
					out = append(out, Review{ID: id, Content: text(n), Score: score})
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return out, nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func text(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}
