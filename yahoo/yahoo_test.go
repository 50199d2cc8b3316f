package yahoo

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hgabor/finsheet/date"
)

// sparkFixture has two symbols; MSFT.US carries a null close that must be
// dropped. Timestamps are 2024-06-03 and 2024-06-04 midnight UTC.
const sparkFixture = `{"spark":{"result":[
{"symbol":"AAPL.US","response":[{"timestamp":[1717372800,1717459200],
 "indicators":{"quote":[{"close":[194.03,194.35]}]}}]},
{"symbol":"MSFT.US","response":[{"timestamp":[1717372800,1717459200],
 "indicators":{"quote":[{"close":[null,415.13]}]}}]}
],"error":null}}`

const chartFixture = `{"chart":{"result":[{"meta":{"symbol":"XYZ"},
 "timestamp":[1717459200],
 "indicators":{"quote":[{"close":[12.34]}]}}],"error":null}}`

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Client{base: srv.URL, client: srv.Client()}
}

func TestFetch(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("symbols"); got != "AAPL.US,MSFT.US" {
			t.Errorf("symbols = %q, want AAPL.US,MSFT.US", got)
		}
		w.Write([]byte(sparkFixture))
	})

	r := date.NewRange(date.MustParse("2024-06-01"), date.MustParse("2024-06-05"))
	ps, err := c.Fetch([]string{"AAPL.US", "MSFT.US"}, r)
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}

	if len(ps["AAPL.US"]) != 2 {
		t.Errorf("got %d AAPL.US prices, want 2", len(ps["AAPL.US"]))
	}
	d := date.MustParse("2024-06-04")
	if got := ps["AAPL.US"][d]; got.InexactFloat64() != 194.35 {
		t.Errorf("AAPL.US close on %s = %s, want 194.35", d, got)
	}
	// the null close must be absent, not zero
	if len(ps["MSFT.US"]) != 1 {
		t.Errorf("got %d MSFT.US prices, want 1", len(ps["MSFT.US"]))
	}
	if _, present := ps["MSFT.US"][date.MustParse("2024-06-03")]; present {
		t.Error("null close leaked into the price set")
	}
}

func TestFetchFiltersRange(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sparkFixture))
	})

	// only 2024-06-04 falls inside the range
	r := date.NewRange(date.MustParse("2024-06-04"), date.MustParse("2024-06-05"))
	ps, err := c.Fetch([]string{"AAPL.US", "MSFT.US"}, r)
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if len(ps["AAPL.US"]) != 1 {
		t.Errorf("got %d AAPL.US prices, want 1", len(ps["AAPL.US"]))
	}
}

func TestLatest(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chartFixture))
	})

	d, price, err := c.Latest("XYZ")
	if err != nil {
		t.Fatalf("Latest() failed: %v", err)
	}
	if want := date.MustParse("2024-06-04"); d != want {
		t.Errorf("Latest() date = %s, want %s", d, want)
	}
	if price.InexactFloat64() != 12.34 {
		t.Errorf("Latest() price = %s, want 12.34", price)
	}
}

func TestRangeParam(t *testing.T) {
	from := date.MustParse("2024-01-01")
	cases := []struct {
		days int
		want string
	}{
		{3, "5d"},
		{20, "1mo"},
		{300, "1y"},
		{4000, "max"},
	}
	for _, c := range cases {
		r := date.NewRange(from, from.Add(c.days-1))
		if got := rangeParam(r); got != c.want {
			t.Errorf("rangeParam(%d days) = %q, want %q", c.days, got, c.want)
		}
	}
}
