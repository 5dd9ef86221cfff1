// Package insight analyzes a target web page: it extracts metadata and
// metrics, captures section screenshots, derives functional scores, and
// produces the narrative analysis and summary.
package insight

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ImageRef is one image found on the page.
type ImageRef struct {
	Src string
	Alt string
}

// ParseResult holds everything extracted from a single-pass HTML parse.
type ParseResult struct {
	Title           string
	MetaDescription string
	Headings        map[string]int
	Images          []ImageRef
	Links           []string
	WordCount       int
	FormCount       int
}

// Parse performs a single-pass traversal of the HTML body, extracting
// title, meta description, headings, images, links, form count, and the
// visible word count.
func Parse(body io.Reader) (*ParseResult, error) {
	result := &ParseResult{
		Headings: map[string]int{"h1": 0, "h2": 0, "h3": 0, "h4": 0, "h5": 0, "h6": 0},
	}

	z := html.NewTokenizer(body)
	var inTitle bool
	var skipText int // depth inside script/style subtrees

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return result, nil
			}
			return nil, z.Err()

		case html.StartTagToken, html.SelfClosingTagToken:
			tn, hasAttr := z.TagName()
			tag := string(tn)
			selfClosing := tt == html.SelfClosingTagToken

			switch {
			case tag == "title":
				inTitle = true

			case tag == "meta" && hasAttr:
				name, content := metaAttrs(z)
				if strings.EqualFold(name, "description") {
					result.MetaDescription = strings.TrimSpace(content)
				}

			case isHeading(tag):
				result.Headings[tag]++

			case tag == "img" && hasAttr:
				src, alt := imgAttrs(z)
				if src != "" {
					result.Images = append(result.Images, ImageRef{Src: src, Alt: alt})
				}

			case tag == "a" && hasAttr:
				if href := extractAttr(z, "href"); href != "" {
					result.Links = append(result.Links, href)
				}

			case tag == "form":
				result.FormCount++

			case (tag == "script" || tag == "style") && !selfClosing:
				skipText++
			}

		case html.TextToken:
			text := string(z.Text())
			if inTitle {
				result.Title = strings.TrimSpace(text)
				inTitle = false
				continue
			}
			if skipText == 0 {
				result.WordCount += len(strings.Fields(text))
			}

		case html.EndTagToken:
			tn, _ := z.TagName()
			switch string(tn) {
			case "title":
				inTitle = false
			case "script", "style":
				if skipText > 0 {
					skipText--
				}
			}
		}
	}
}

func isHeading(tag string) bool {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

func extractAttr(z *html.Tokenizer, target string) string {
	for {
		key, val, more := z.TagAttr()
		if string(key) == target {
			return string(val)
		}
		if !more {
			return ""
		}
	}
}

func metaAttrs(z *html.Tokenizer) (name, content string) {
	for {
		key, val, more := z.TagAttr()
		switch string(key) {
		case "name":
			name = string(val)
		case "content":
			content = string(val)
		}
		if !more {
			return name, content
		}
	}
}

func imgAttrs(z *html.Tokenizer) (src, alt string) {
	for {
		key, val, more := z.TagAttr()
		switch string(key) {
		case "src":
			src = string(val)
		case "alt":
			alt = string(val)
		}
		if !more {
			return src, alt
		}
	}
}
