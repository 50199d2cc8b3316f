package dropbox

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeDropbox serves a two-device budget where device B has the newer
// snapshot.
func fakeDropbox(t *testing.T) *Client {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/files/download", func(w http.ResponseWriter, r *http.Request) {
		var arg struct {
			Path string `json:"path"`
		}
		if err := json.Unmarshal([]byte(r.Header.Get("Dropbox-API-Arg")), &arg); err != nil {
			t.Errorf("bad Dropbox-API-Arg: %v", err)
		}
		switch arg.Path {
		case "/YNAB/My Budget/Budget.ymeta":
			w.Write([]byte(`{"relativeDataFolderName":"My Budget~B0DA"}`))
		case "/YNAB/My Budget/My Budget~B0DA/B/Budget.yfull":
			w.Write([]byte(`{"transactions":[{"entityId":"t1","checkNumber":"10 AAPL.US"}]}`))
		default:
			t.Errorf("unexpected download of %q", arg.Path)
			http.Error(w, "not found", http.StatusConflict)
		}
	})

	mux.HandleFunc("/files/list_folder", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"entries":[{"name":"A"},{"name":"B"},{"name":"stale"}]}`))
	})

	mux.HandleFunc("/files/get_metadata", func(w http.ResponseWriter, r *http.Request) {
		var arg struct {
			Path string `json:"path"`
		}
		json.NewDecoder(r.Body).Decode(&arg)
		switch arg.Path {
		case "/YNAB/My Budget/My Budget~B0DA/A/Budget.yfull":
			w.Write([]byte(`{"server_modified":"2024-06-01T10:00:00Z"}`))
		case "/YNAB/My Budget/My Budget~B0DA/B/Budget.yfull":
			w.Write([]byte(`{"server_modified":"2024-06-02T10:00:00Z"}`))
		default:
			// a device folder without a snapshot
			http.Error(w, `{"error_summary":"path/not_found/"}`, http.StatusConflict)
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return &Client{token: "tok", api: srv.URL, content: srv.URL, client: srv.Client()}
}

func TestLatestBudget(t *testing.T) {
	c := fakeDropbox(t)

	b, err := c.LatestBudget("My Budget")
	if err != nil {
		t.Fatalf("LatestBudget() failed: %v", err)
	}
	if len(b.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(b.Transactions))
	}
	if got := b.Transactions[0].CheckNumber; got != "10 AAPL.US" {
		t.Errorf("checkNumber = %q, want %q", got, "10 AAPL.US")
	}
}
