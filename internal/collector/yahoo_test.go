package collector

import (
	"testing"

	"StockFeed/internal/model"
)

func TestPickQuote_PreMarket(t *testing.T) {
	q := PickQuote(map[string]interface{}{
		"marketState":        "PRE",
		"preMarketPrice":     1.25,
		"preMarketTime":      float64(1748937600),
		"regularMarketPrice": 1.20,
		"regularMarketTime":  float64(1748894400),
	})
	if q == nil {
		t.Fatal("expected a quote")
	}
	if q.Source != "preMarketPrice" {
		t.Errorf("pre-market must prefer the pre-market quote, got %s", q.Source)
	}
	if q.State != model.StatePre {
		t.Errorf("state = %s", q.State)
	}
	if q.Price != 1.25 {
		t.Errorf("price = %v", q.Price)
	}
}

func TestPickQuote_PreMarketFallsBackToRegular(t *testing.T) {
	q := PickQuote(map[string]interface{}{
		"marketState":        "PRE",
		"regularMarketPrice": 1.20,
		"regularMarketTime":  float64(1748894400),
	})
	if q == nil || q.Source != "regularMarketPrice" {
		t.Fatalf("expected regular-market fallback, got %+v", q)
	}
}

func TestPickQuote_PostMarket(t *testing.T) {
	q := PickQuote(map[string]interface{}{
		"marketState":        "POST",
		"postMarketPrice":    1.30,
		"postMarketTime":     float64(1748991600),
		"regularMarketPrice": 1.20,
		"regularMarketTime":  float64(1748980800),
	})
	if q == nil || q.Source != "postMarketPrice" {
		t.Fatalf("expected post-market quote, got %+v", q)
	}
	if q.State != model.StatePost {
		t.Errorf("state = %s", q.State)
	}
}

func TestPickQuote_RegularPreferredOtherwise(t *testing.T) {
	q := PickQuote(map[string]interface{}{
		"marketState":        "REGULAR",
		"preMarketPrice":     1.25,
		"preMarketTime":      float64(1748937600),
		"regularMarketPrice": 1.20,
		"regularMarketTime":  float64(1748959200),
	})
	if q == nil || q.Source != "regularMarketPrice" {
		t.Fatalf("expected regular-market quote, got %+v", q)
	}
}

func TestPickQuote_MissingTimeSkipsCandidate(t *testing.T) {
	q := PickQuote(map[string]interface{}{
		"marketState":        "POST",
		"postMarketPrice":    1.30, // no postMarketTime
		"regularMarketPrice": 1.20,
		"regularMarketTime":  float64(1748980800),
	})
	if q == nil || q.Source != "regularMarketPrice" {
		t.Fatalf("a candidate without a timestamp must be skipped, got %+v", q)
	}
}

func TestPickQuote_NoUsablePair(t *testing.T) {
	if q := PickQuote(map[string]interface{}{"marketState": "CLOSED"}); q != nil {
		t.Errorf("expected nil quote, got %+v", q)
	}
}

func TestMarketState(t *testing.T) {
	tests := []struct {
		in   interface{}
		want model.MarketState
	}{
		{"PRE", model.StatePre},
		{"REGULAR", model.StateRegular},
		{"POST", model.StatePost},
		{"CLOSED", model.StateUnknown},
		{nil, model.StateUnknown},
	}
	for _, tt := range tests {
		if got := marketState(tt.in); got != tt.want {
			t.Errorf("marketState(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}


