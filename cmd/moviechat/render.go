package main

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// renderReply turns a reply into terminal text. Movie detail blocks arrive
// as HTML: the bold title becomes a title line and each data row becomes an
// indented "Label: value" line. Header rows are dropped. Plain replies pass
// through unchanged.
func renderReply(reply string) string {
	if !strings.HasPrefix(reply, "<") {
		return reply
	}

	var (
		out    strings.Builder
		cell   strings.Builder
		row    []string
		title  strings.Builder
		inB    bool
		inCel  bool
		header bool
	)

	z := html.NewTokenizer(strings.NewReader(reply))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return reply
			}
			return strings.TrimRight(out.String(), "\n")

		case html.StartTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "b":
				inB = true
				title.Reset()
			case "tr":
				row = row[:0]
				header = false
			case "th":
				header = true
				inCel = true
				cell.Reset()
			case "td":
				inCel = true
				cell.Reset()
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "b":
				inB = false
				out.WriteString(colorize(colorBold, strings.TrimSpace(title.String())))
				out.WriteString("\n")
			case "th", "td":
				inCel = false
				row = append(row, strings.TrimSpace(cell.String()))
			case "tr":
				if !header && len(row) >= 2 {
					out.WriteString("  ")
					out.WriteString(row[0])
					out.WriteString(": ")
					out.WriteString(strings.Join(row[1:], " "))
					out.WriteString("\n")
				}
			}

		case html.TextToken:
			text := string(z.Text())
			switch {
			case inB:
				title.WriteString(text)
			case inCel:
				cell.WriteString(text)
			}
		}
	}
}
