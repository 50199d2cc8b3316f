// Package yahoo implements the market-data provider on the Yahoo Finance v8
// endpoints: one spark call fetches close series for a whole ticker set,
// and the chart endpoint answers single latest-trading-day queries.
package yahoo

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/hgabor/finsheet"
	"github.com/hgabor/finsheet/date"
	"github.com/shopspring/decimal"
)

// Client talks to Yahoo Finance. The zero value is not usable; construct
// with NewClient.
type Client struct {
	base   string
	client *http.Client
}

// NewClient returns a client against the public Yahoo endpoints with a
// daily-expiring response cache.
func NewClient() *Client {
	return &Client{base: "https://query1.finance.yahoo.com", client: newDailyCachingClient()}
}

var _ finsheet.Quoter = (*Client)(nil)

// Fetch pulls daily close series for all tickers in one spark call covering
// the requested range. Days without a usable close are absent from the
// result, never zero.
func (c *Client) Fetch(tickers []string, r date.Range) (finsheet.PriceSet, error) {
	// https://query1.finance.yahoo.com/v8/finance/spark?symbols=AAPL,MSFT&interval=1d&range=1y
	addr := fmt.Sprintf("%s/v8/finance/spark?symbols=%s&interval=1d&range=%s",
		c.base, strings.Join(tickers, ","), rangeParam(r))

	var payload struct {
		Spark struct {
			Result []struct {
				Symbol   string `json:"symbol"`
				Response []struct {
					Timestamp  []int64 `json:"timestamp"`
					Indicators struct {
						Quote []struct {
							Close []*float64 `json:"close"`
						} `json:"quote"`
					} `json:"indicators"`
				} `json:"response"`
			} `json:"result"`
		} `json:"spark"`
	}
	if err := jwget(c.client, addr, &payload); err != nil {
		return nil, fmt.Errorf("spark fetch for %d tickers failed: %w", len(tickers), err)
	}

	ps := make(finsheet.PriceSet)
	for _, result := range payload.Spark.Result {
		if len(result.Response) == 0 || len(result.Response[0].Indicators.Quote) == 0 {
			continue
		}
		resp := result.Response[0]
		closes := resp.Indicators.Quote[0].Close
		series := make(map[date.Date]decimal.Decimal)
		for i, ts := range resp.Timestamp {
			if i >= len(closes) || closes[i] == nil {
				continue // no trade or NaN close that day
			}
			d := date.New(time.Unix(ts, 0).UTC().Date())
			if !r.Contains(d) {
				continue
			}
			series[d] = decimal.NewFromFloat(*closes[i])
		}
		if len(series) > 0 {
			ps[result.Symbol] = series
		}
	}
	return ps, nil
}

// Latest returns the close of the most recent trading day for one ticker.
func (c *Client) Latest(ticker string) (date.Date, decimal.Decimal, error) {
	// https://query1.finance.yahoo.com/v8/finance/chart/AAPL?interval=1d&range=1d
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.base, ticker)

	var jobj any
	if err := jwget(c.client, addr, &jobj); err != nil {
		return date.Date{}, decimal.Decimal{}, fmt.Errorf("latest-day fetch for %q failed: %w", ticker, err)
	}

	price, err := jsonFloat(jobj, "$.chart.result[0].indicators.quote[0].close[-1:]")
	if err != nil {
		return date.Date{}, decimal.Decimal{}, fmt.Errorf("no close in latest-day response for %q: %w", ticker, err)
	}
	ts, err := jsonFloat(jobj, "$.chart.result[0].timestamp[-1:]")
	if err != nil {
		return date.Date{}, decimal.Decimal{}, fmt.Errorf("no timestamp in latest-day response for %q: %w", ticker, err)
	}

	d := date.New(time.Unix(int64(ts), 0).UTC().Date())
	return d, decimal.NewFromFloat(price), nil
}

// jsonFloat extracts a float by jsonpath. The library is never clear about
// whether a slice path yields a list of one answer or a single answer, so
// both are accepted.
func jsonFloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, err
	}
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return 0, fmt.Errorf("path %q matched nothing", path)
		}
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("path %q: not a float: %v", path, jval)
	}
	return val, nil
}

// rangeParam maps a date range onto the smallest named spark range covering
// it. Spark has no from/to parameters; the surplus records are filtered
// by the caller.
func rangeParam(r date.Range) string {
	days := r.Days()
	switch {
	case days <= 5:
		return "5d"
	case days <= 30:
		return "1mo"
	case days <= 91:
		return "3mo"
	case days <= 182:
		return "6mo"
	case days <= 365:
		return "1y"
	case days <= 730:
		return "2y"
	case days <= 1825:
		return "5y"
	case days <= 3650:
		return "10y"
	default:
		return "max"
	}
}
