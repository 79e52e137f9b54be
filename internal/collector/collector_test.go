package collector

import (
	"errors"
	"testing"
	"time"

	"StockFeed/internal/model"
)

func TestCollect_BarsOnly(t *testing.T) {
	bars := []model.OHLCV{{Time: time.Now(), Close: 1.20}}
	col := NewCollector(&MockFetcher{Bars: bars}, "OCGN")

	data, err := col.Collect()
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(data.Bars) != 1 || data.Quote != nil {
		t.Errorf("expected bars without a quote, got %d bars, quote=%v", len(data.Bars), data.Quote)
	}
}

func TestCollect_QuoteOnly(t *testing.T) {
	quote := &model.QuoteSnapshot{Price: 1.25, Time: time.Now(), State: model.StatePre}
	col := NewCollector(&MockFetcher{Quote: quote}, "OCGN")

	data, err := col.Collect()
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if data.Quote == nil || data.Quote.Price != 1.25 {
		t.Errorf("expected the quote to survive, got %+v", data.Quote)
	}
}

func TestCollect_NothingAvailable(t *testing.T) {
	col := NewCollector(&MockFetcher{Err: errors.New("upstream down")}, "OCGN")
	if _, err := col.Collect(); err == nil {
		t.Error("expected an error when neither bars nor quote are available")
	}
}


