package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// LoadHTML reads the headings of an HTML body. An h2 is a level 1 heading
// and an h3 a level 2 heading; the anchor comes from the heading's id or a
// named link inside it, and headings with neither are skipped.
func LoadHTML(src []byte) (*Document, error) {
	root, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := &Document{Source: src, Metadata: map[string]string{}}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "h2" || n.Data == "h3") {
			if anchor := headingAnchor(n); anchor != "" {
				doc.headings = append(doc.headings, Heading{
					Level:  int(n.Data[1]-'0') - 1,
					Text:   strings.Join(strings.Fields(textContent(n)), " "),
					Anchor: anchor,
				})
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return doc, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func headingAnchor(n *html.Node) string {
	if id := attr(n, "id"); id != "" {
		return id
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "a" {
			if name := attr(c, "name"); name != "" {
				return name
			}
			if id := attr(c, "id"); id != "" {
				return id
			}
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}
