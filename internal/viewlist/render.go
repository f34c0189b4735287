package viewlist

import (
	"html"
	"io"
	"strings"
)

type DocumentOptions struct {
	Title         string
	DeployJavaURL string
}

// Render builds the page for one request. A non-empty viewconf in search
// selects deploy mode, which hands a single deployment to emb and emits
// nothing else. Otherwise every view is listed in order.
func Render(views []View, search string, emb Embedder) (Page, error) {
	if emb == nil {
		emb = DeployJava{}
	}
	viewconf := ExtractViewConf(search)
	var b strings.Builder
	if viewconf != "" {
		if err := emb.RunApplet(&b, NewDeployment(viewconf)); err != nil {
			return Page{}, err
		}
		return Page{Mode: ModeDeploy, ViewConf: viewconf, Body: b.String()}, nil
	}

	b.WriteString(`<div style="margin:10px;"><h1>`)
	b.WriteString(IndexHeading)
	b.WriteString("</h1>")
	for _, v := range views {
		writeViewLinks(&b, v)
	}
	b.WriteString("</div>")
	return Page{Mode: ModeIndex, Body: b.String()}, nil
}

func writeViewLinks(b *strings.Builder, v View) {
	b.WriteString(`<h3 class="view">`)
	b.WriteString(html.EscapeString(v.Name))
	b.WriteString(" view</h3>")
	if v.Desc != nil {
		b.WriteString(`<p class="viewdesc">`)
		b.WriteString(*v.Desc)
		b.WriteString("</p>")
	}
	b.WriteString(`<ul class="views">`)
	for _, vc := range v.ViewConfs {
		b.WriteString(`<li><a href="`)
		b.WriteString(html.EscapeString(viewConfLink(vc.JFMV)))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(vc.Name))
		b.WriteString("</a>")
		if vc.Desc != nil {
			b.WriteString(`<p class="jfvmdesc">&ndash; `)
			b.WriteString(*vc.Desc)
			b.WriteString("</p>")
		}
	}
	b.WriteString("</ul>")
}

// WriteDocument wraps page in a complete HTML document. deployJava.js is only
// loaded for deploy mode.
func WriteDocument(w io.Writer, page Page, opts DocumentOptions) error {
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = DefaultTitle
	}
	javaURL := strings.TrimSpace(opts.DeployJavaURL)
	if javaURL == "" {
		javaURL = DefaultJavaURL
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\">")
	b.WriteString("<title>")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</title>")
	if page.Mode == ModeDeploy {
		b.WriteString(`<script src="`)
		b.WriteString(html.EscapeString(javaURL))
		b.WriteString(`"></script>`)
	}
	b.WriteString("</head><body>")
	b.WriteString(page.Body)
	b.WriteString("</body></html>\n")
	_, err := io.WriteString(w, b.String())
	return err
}
