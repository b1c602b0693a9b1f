package emit

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/cadtrace/cadvec/internal/raster"
	"github.com/cadtrace/cadvec/internal/vectorpath"
)

// svgNamespace is the standard vector-graphics namespace the document root
// declares.
const svgNamespace = "http://www.w3.org/2000/svg"

// Options configures document serialization.
type Options struct {
	Precision      int
	StrokeWidth    float64
	Optimize       bool
	AddMetadata    bool
	AddLayerGroups bool
	Metadata       Metadata
}

// Metadata carries free-text document metadata, each field XML-escaped on
// output.
type Metadata struct {
	Title       string
	Description string
	Creator     string
	Date        string
	Source      string
}

// DefaultOptions mirrors the emitter's documented defaults: 3 decimal
// places, stroke width 1, no optimize pass, no metadata.
func DefaultOptions() Options {
	return Options{Precision: 3, StrokeWidth: vectorpath.DefaultStrokeWidth}
}

// Document renders paths (optionally grouped into layers) into a minimal
// XML vector document sized width x height.
func Document(width, height int, layers []vectorpath.Layer, loosePaths []vectorpath.Path, opts Options) string {
	var b strings.Builder

	fmt.Fprintf(&b, `<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	fmt.Fprintf(&b, `<drawing xmlns="%s" width="%d" height="%d" viewBox="0 0 %d %d" preserveAspectRatio="xMidYMid meet">`+"\n",
		svgNamespace, width, height, width, height)

	if opts.AddMetadata {
		writeMetadata(&b, opts.Metadata)
	}

	writeDefs(&b, collectColors(layers, loosePaths))

	if opts.AddLayerGroups && len(layers) > 0 {
		for _, layer := range layers {
			writeLayerGroup(&b, layer, opts)
		}
	} else {
		for _, layer := range layers {
			for _, p := range layer.Paths {
				writePath(&b, p, opts)
			}
		}
		for _, p := range loosePaths {
			writePath(&b, p, opts)
		}
	}

	if len(layers) == 0 && len(loosePaths) == 0 {
		b.WriteString("  <group></group>\n")
	}

	b.WriteString("</drawing>\n")

	out := b.String()
	if opts.Optimize {
		out = optimize(out)
	}
	return out
}

func writeMetadata(b *strings.Builder, m Metadata) {
	b.WriteString("  <metadata>\n")
	writeField(b, "title", m.Title)
	writeField(b, "description", m.Description)
	writeField(b, "creator", m.Creator)
	writeField(b, "date", m.Date)
	writeField(b, "source", m.Source)
	b.WriteString("  </metadata>\n")
}

// writeField XML-escapes value with the standard library's encoding/xml,
// the spec's one intentionally stdlib-only concern (see the project design
// notes): free-text metadata fields get exactly the escaping an XML parser
// requires, no more.
func writeField(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	var escaped bytes.Buffer
	xml.EscapeText(&escaped, []byte(value))
	fmt.Fprintf(b, "    <%s>%s</%s>\n", name, escaped.String(), name)
}

// collectColors gathers the distinct path colors across layers and loose
// paths, in first-seen order.
func collectColors(layers []vectorpath.Layer, loosePaths []vectorpath.Path) []raster.Color {
	seen := make(map[string]bool)
	var out []raster.Color
	add := func(c raster.Color) {
		hex := c.Hex()
		if seen[hex] {
			return
		}
		seen[hex] = true
		out = append(out, c)
	}
	for _, layer := range layers {
		for _, p := range layer.Paths {
			add(p.Color)
		}
	}
	for _, p := range loosePaths {
		add(p.Color)
	}
	return out
}

// writeDefs emits the document's defs block. It's always present, even when
// empty; once the drawing uses more than two colors it carries a named
// solid-color reference per color so paths/groups can refer back to it.
func writeDefs(b *strings.Builder, colors []raster.Color) {
	if len(colors) <= 2 {
		b.WriteString("  <defs></defs>\n")
		return
	}
	b.WriteString("  <defs>\n")
	for i, c := range colors {
		fmt.Fprintf(b, `    <solidColor id="color-%d" color="%s" />`+"\n", i, c.Hex())
	}
	b.WriteString("  </defs>\n")
}

func writeLayerGroup(b *strings.Builder, layer vectorpath.Layer, opts Options) {
	visibility := "visible"
	if !layer.Visible {
		visibility = "hidden"
	}
	fmt.Fprintf(b, `  <group id="%s" name="%s" visibility="%s">`+"\n",
		escapeXML(layer.ID), escapeXML(layer.Name), visibility)
	for _, p := range layer.Paths {
		writePath(b, p, opts)
	}
	b.WriteString("  </group>\n")
}

func writePath(b *strings.Builder, p vectorpath.Path, opts Options) {
	if len(p.Points) == 0 {
		return
	}
	strokeWidth := p.StrokeWidth
	if strokeWidth <= 0 {
		strokeWidth = opts.StrokeWidth
	}

	var d strings.Builder
	fmt.Fprintf(&d, "M%s,%s", formatNumber(p.Points[0].X, opts.Precision), formatNumber(p.Points[0].Y, opts.Precision))
	for _, pt := range p.Points[1:] {
		fmt.Fprintf(&d, " L%s,%s", formatNumber(pt.X, opts.Precision), formatNumber(pt.Y, opts.Precision))
	}
	if p.Closed {
		d.WriteString(" Z")
	}

	fmt.Fprintf(b, `    <polyline d="%s" stroke="%s" stroke-width="%s" fill="none" />`+"\n",
		d.String(), p.Color.Hex(), formatNumber(strokeWidth, opts.Precision))
}

// formatNumber rounds v to the configured number of decimals and strips
// trailing zeros (and a trailing decimal point).
func formatNumber(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

func escapeXML(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
