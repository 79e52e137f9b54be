package feed

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"StockFeed/internal/model"
	"StockFeed/internal/pipeline"
)

func testMeta() Meta {
	return Meta{
		Title:       "OCGN Stock Price Feed",
		Subtitle:    "Near-real-time OCGN stock price updates.",
		AtomURL:     "https://example.com/feed.atom",
		RSSURL:      "https://example.com/feed.rss",
		Homepage:    "https://example.com/",
		IconURL:     "https://example.com/OCGN.png",
		Author:      "OCGN Stock Feed Bot",
		Symbol:      "OCGN",
		PubDateZone: time.FixedZone("EST", -5*60*60),
	}
}

func testResult() pipeline.Result {
	loc := time.FixedZone("BRT", -3*60*60)
	now := time.Date(2025, 6, 3, 10, 0, 0, 0, loc)
	change := 0.10
	pct := 9.09
	return pipeline.Result{
		Now: now,
		Records: []model.FeedRecord{
			{
				ID:                "ocgn-20250603-1000",
				Time:              now,
				Price:             1.20,
				ChangeVsPrevClose: &change,
				PctVsPrevClose:    &pct,
				Title:             "OCGN: $1.20 [10:00 BRT]",
				Summary:           "OCGN 1.20 (+0.10, +9.09%) at 10:00 BRT",
				ContentHTML:       "<div><p>Price: $1.20</p></div>",
				TimeLabel:         "10:00 BRT",
			},
			{
				ID:          "ocgn-20250603-0900",
				Time:        now.Add(-time.Hour),
				Price:       1.10,
				Title:       "OCGN: $1.10 [09:00 BRT]",
				Summary:     "OCGN 1.10 at 09:00 BRT",
				ContentHTML: "<div><p>Price: $1.10</p></div>",
				TimeLabel:   "09:00 BRT",
			},
		},
	}
}

func TestBuildAtom(t *testing.T) {
	out, err := BuildAtom(testResult(), testMeta())
	if err != nil {
		t.Fatalf("BuildAtom: %v", err)
	}
	var doc struct {
		XMLName xml.Name `xml:"feed"`
		Title   string   `xml:"title"`
		Entries []struct {
			ID    string `xml:"id"`
			Title string `xml:"title"`
		} `xml:"entry"`
	}
	if err := xml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("atom output is not well-formed XML: %v", err)
	}
	if doc.Title != "OCGN Stock Price Feed" {
		t.Errorf("feed title = %q", doc.Title)
	}
	if len(doc.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(doc.Entries))
	}
	if doc.Entries[0].ID != "ocgn-20250603-1000" {
		t.Errorf("entry id = %q", doc.Entries[0].ID)
	}
}

func TestBuildRSS(t *testing.T) {
	out, err := BuildRSS(testResult(), testMeta())
	if err != nil {
		t.Fatalf("BuildRSS: %v", err)
	}
	var doc struct {
		XMLName xml.Name `xml:"rss"`
		Channel struct {
			Title string `xml:"title"`
			Items []struct {
				Guid    string `xml:"guid"`
				PubDate string `xml:"pubDate"`
			} `xml:"item"`
		} `xml:"channel"`
	}
	if err := xml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("rss output is not well-formed XML: %v", err)
	}
	if len(doc.Channel.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(doc.Channel.Items))
	}
	if doc.Channel.Items[0].Guid != "ocgn-20250603-1000" {
		t.Errorf("guid = %q", doc.Channel.Items[0].Guid)
	}
	// 10:00 BRT is 08:00 in the EST display zone.
	if !strings.Contains(doc.Channel.Items[0].PubDate, "08:00:00") {
		t.Errorf("pubDate must use the display zone, got %q", doc.Channel.Items[0].PubDate)
	}
}

func TestIndexHTML(t *testing.T) {
	out := IndexHTML(testMeta())
	for _, want := range []string{"feed.atom", "feed.rss", "OCGN Stock Price Feed"} {
		if !strings.Contains(out, want) {
			t.Errorf("index page missing %q", want)
		}
	}
}


