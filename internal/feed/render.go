package feed

import (
	"fmt"
	"time"

	"StockFeed/internal/pipeline"

	"github.com/gorilla/feeds"
)

// Meta carries the envelope-level feed metadata. The pipeline result
// provides the entries; everything here is static configuration.
type Meta struct {
	Title       string
	Subtitle    string
	AtomURL     string
	RSSURL      string
	Homepage    string
	IconURL     string
	Author      string
	Symbol      string
	PubDateZone *time.Location
}

func (m Meta) quoteLink() string {
	return fmt.Sprintf("https://finance.yahoo.com/quote/%s", m.Symbol)
}

// BuildAtom renders the pipeline result as an Atom document. Entry
// timestamps stay in exchange-local time.
func BuildAtom(res pipeline.Result, meta Meta) (string, error) {
	atom := &feeds.AtomFeed{
		Xmlns:    "http://www.w3.org/2005/Atom",
		Title:    meta.Title,
		Subtitle: meta.Subtitle,
		Id:       meta.AtomURL,
		Updated:  res.Now.Format(time.RFC3339),
		Icon:     meta.IconURL,
		Logo:     meta.IconURL,
		Link:     &feeds.AtomLink{Href: meta.AtomURL, Rel: "self"},
		Author:   &feeds.AtomAuthor{AtomPerson: feeds.AtomPerson{Name: meta.Author}},
	}

	for _, rec := range res.Records {
		atom.Entries = append(atom.Entries, &feeds.AtomEntry{
			Title:     fmt.Sprintf("%s: $%.2f", meta.Symbol, rec.Price),
			Id:        rec.ID,
			Published: rec.Time.Format(time.RFC3339),
			Updated:   rec.Time.Format(time.RFC3339),
			Links: []feeds.AtomLink{
				{Href: meta.quoteLink(), Rel: "alternate", Type: "text/html"},
			},
			Author:  &feeds.AtomAuthor{AtomPerson: feeds.AtomPerson{Name: meta.Author}},
			Summary: &feeds.AtomSummary{Content: rec.Summary, Type: "text"},
			Content: &feeds.AtomContent{Content: rec.ContentHTML, Type: "html"},
		})
	}

	return feeds.ToXML(atom)
}

// BuildRSS renders the pipeline result as an RSS 2.0 document. Item
// pubDates use the configured display zone (US market hours read more
// naturally in Eastern time).
func BuildRSS(res pipeline.Result, meta Meta) (string, error) {
	rss := &feeds.RssFeed{
		Title:         meta.Title,
		Link:          meta.Homepage,
		Description:   meta.Subtitle,
		LastBuildDate: res.Now.Format(time.RFC1123Z),
		Generator:     "feedbot",
		Image: &feeds.RssImage{
			Url:   meta.IconURL,
			Title: meta.Title,
			Link:  meta.Homepage,
		},
	}

	for _, rec := range res.Records {
		desc := rec.ContentHTML + fmt.Sprintf("<br/><small>Published: %s</small>", rec.TimeLabel)
		rss.Items = append(rss.Items, &feeds.RssItem{
			Title:       rec.Title,
			Link:        meta.quoteLink(),
			Description: desc,
			Guid:        &feeds.RssGuid{Id: rec.ID, IsPermaLink: "false"},
			PubDate:     rec.Time.In(meta.PubDateZone).Format(time.RFC1123Z),
		})
	}

	return feeds.ToXML(rss)
}

// IndexHTML renders the landing page linking both feed documents.
func IndexHTML(meta Meta) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width,initial-scale=1"><title>%s</title><link rel="icon" type="image/png" href="%s" /></head>
<body><h1>%s</h1><p>%s</p><p><a href="feed.atom">Atom feed</a> | <a href="feed.rss">RSS2 feed</a></p></body></html>
`, meta.Title, meta.Symbol+".png", meta.Title, meta.Subtitle)
}


