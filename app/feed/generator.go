package feed

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"html"
	"mime"
	"net/url"
	"path"
	"time"

	"github.com/lysyi3m/notiongram/app/cfg"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Run renders items as an RSS 2.0 document. Items are written in the order
// given; callers sort first.
func (g *Generator) Run(title string, items []Item) (string, error) {
	var buf bytes.Buffer

	selfURL := cfg.Get().GetSelfURL()

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", title, 4)
	g.writeElement(&buf, "link", selfURL+"/", 4)
	g.writeElement(&buf, "description", fmt.Sprintf("%s, published from Notion", title), 4)
	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(selfURL+"/feed.xml")))

	lastBuildDate := time.Now().In(time.Local)
	for _, item := range items {
		if d, ok := itemDate(item); ok {
			lastBuildDate = d.Time()
			break
		}
	}

	g.writeElement(&buf, "lastBuildDate", lastBuildDate.Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("Notiongram/%s", cfg.Get().Version), 4)

	for _, item := range items {
		g.writeItem(&buf, item, selfURL)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (g *Generator) writeItem(buf *bytes.Buffer, item Item, selfURL string) {
	buf.WriteString("    <item>\n")

	buf.WriteString("      <guid isPermaLink=\"false\">")
	xml.EscapeText(buf, []byte(item.ID))
	buf.WriteString("</guid>\n")

	if item.Name != nil && *item.Name != "" {
		g.writeElement(buf, "title", *item.Name, 6)
	}

	g.writeElement(buf, "link", fmt.Sprintf("%s/#post-%s", selfURL, item.ID), 6)

	var description string
	if item.Description != nil {
		description = *item.Description
	}
	g.writeElement(buf, "description", cmp.Or(description, "No description available"), 6)

	if len(item.Media) > 0 {
		buf.WriteString("      <content:encoded><![CDATA[")
		for _, media := range item.Media {
			buf.WriteString(fmt.Sprintf("<p><img src=\"%s\" /></p>", html.EscapeString(media)))
		}
		buf.WriteString("]]></content:encoded>\n")
	}

	if d, ok := itemDate(item); ok {
		g.writeElement(buf, "pubDate", d.Time().Format(time.RFC1123Z), 6)
	}

	// RSS 2.0 allows a single enclosure per item
	if len(item.Media) > 0 {
		buf.WriteString(fmt.Sprintf("      <enclosure url=\"%s\" length=\"0\" type=\"%s\" />\n",
			html.EscapeString(item.Media[0]),
			html.EscapeString(g.mediaType(item.Media[0]))))
	}

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

// mediaType guesses the MIME type from the URL path; Notion file URLs are
// signed, so the query string is ignored.
func (g *Generator) mediaType(mediaURL string) string {
	if u, err := url.Parse(mediaURL); err == nil {
		if t := mime.TypeByExtension(path.Ext(u.Path)); t != "" {
			return t
		}
	}
	return "application/octet-stream"
}
