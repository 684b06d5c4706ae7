package reply

import (
	"html"
	"strings"

	"github.com/kalambet/moviechat/internal/catalog"
)

// Attributes lists the detail table rows in display order.
var Attributes = []string{"Release Date", "Genre", "Length", "Episodes", "OTT Platform"}

// FormatMovie renders m as an HTML detail block: the title in bold followed
// by a "movie-table" with an Attribute/Details header row and one row per
// attribute. The front-end inserts the reply as markup, so values are
// escaped.
func FormatMovie(m catalog.Movie) string {
	values := []string{m.ReleaseDate, m.Genre, m.Runtime, m.EpisodeCount, m.Platform}

	var b strings.Builder
	b.WriteString("<b>")
	b.WriteString(html.EscapeString(m.Title))
	b.WriteString("</b>\n")
	b.WriteString(`<table class="movie-table">` + "\n")
	b.WriteString("<tr><th>Attribute</th><th>Details</th></tr>\n")
	for i, attr := range Attributes {
		b.WriteString("<tr><td>")
		b.WriteString(attr)
		b.WriteString("</td><td>")
		b.WriteString(html.EscapeString(values[i]))
		b.WriteString("</td></tr>\n")
	}
	b.WriteString("</table>")
	return b.String()
}
