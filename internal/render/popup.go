package render

import (
	"html"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/runnerr0/timemap/internal/dataset"
)

// FormatTime renders a record time without trailing zeros.
func FormatTime(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}

// EventPopup builds the popup markup for an event. Every piece of record
// text is HTML-escaped before it is embedded.
func EventPopup(e dataset.Event) string {
	var b strings.Builder
	b.WriteString("<b>" + html.EscapeString(e.Title) + "</b><br>")
	b.WriteString("<i>" + html.EscapeString(e.Type) + "</i><br>")
	writeTime(&b, e.Time)
	b.WriteString(html.EscapeString(e.Desc))
	writeImages(&b, e.Images, e.Title)
	writeRefs(&b, e.Refs)
	return b.String()
}

// RoutePopup builds the popup markup for a route.
func RoutePopup(r dataset.Route) string {
	var b strings.Builder
	b.WriteString("<b>" + html.EscapeString(r.Title) + "</b><br>")
	writeTime(&b, r.Time)
	b.WriteString(html.EscapeString(r.Desc))
	writeRefs(&b, r.Refs)
	return b.String()
}

// writeTime omits the line for records without a usable time.
func writeTime(b *strings.Builder, t float64) {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return
	}
	b.WriteString("Time: " + FormatTime(t) + "<br>")
}

func writeImages(b *strings.Builder, images []string, alt string) {
	for _, src := range images {
		if !safeURL(src, true) {
			continue
		}
		b.WriteString(`<br><img src="` + html.EscapeString(src) + `" alt="` +
			html.EscapeString(alt) + `" style="max-width:200px">`)
	}
}

func writeRefs(b *strings.Builder, refs []string) {
	if len(refs) == 0 {
		return
	}
	b.WriteString("<br>References:<ul>")
	for _, ref := range refs {
		text := html.EscapeString(ref)
		if safeURL(ref, false) {
			b.WriteString(`<li><a href="` + text + `" target="_blank" rel="noopener noreferrer">` + text + `</a></li>`)
		} else {
			b.WriteString("<li>" + text + "</li>")
		}
	}
	b.WriteString("</ul>")
}

// safeURL accepts http(s) URLs and, when relative is set, scheme-less
// relative ones. Anything else ("javascript:", "data:") is never placed in
// an attribute.
func safeURL(raw string, relative bool) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "":
		return relative && u.Host == ""
	case "http", "https":
		return true
	default:
		return false
	}
}
