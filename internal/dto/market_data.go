package dto

import "time"

// PricePoint is the narrow contract market-data fetchers return to the core.
type PricePoint struct {
	Date   time.Time
	Price  float64
	Volume *float64
}

type GetPriceParam struct {
	SourceSymbol string
	RangeDays    int
}

// Yahoo Finance chart API response.
type YahooFinanceResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency string `json:"currency"`
				Symbol   string `json:"symbol"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

// CoinGecko market_chart response: [timestamp_ms, value] pairs.
type CoinGeckoMarketChartResponse struct {
	Prices       [][]float64 `json:"prices"`
	TotalVolumes [][]float64 `json:"total_volumes"`
}
