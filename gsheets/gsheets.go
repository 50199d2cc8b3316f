// Package gsheets implements the spreadsheet backend on the Google Sheets
// REST API, authorized by a stored OAuth user token.
package gsheets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/hgabor/finsheet"
)

const apiBase = "https://sheets.googleapis.com/v4/spreadsheets"

// Spreadsheet is one workbook. It implements finsheet.Workbook.
type Spreadsheet struct {
	id     string
	base   string
	client *http.Client
}

var _ finsheet.Workbook = (*Spreadsheet)(nil)

// Open returns a workbook handle for the given spreadsheet id, authorized
// by the token file.
func Open(spreadsheetID, tokenFile string) (*Spreadsheet, error) {
	src, err := loadTokenSource(tokenFile)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Transport: &authTransport{src: src, base: http.DefaultTransport}}
	return &Spreadsheet{id: spreadsheetID, base: apiBase, client: client}, nil
}

// Worksheet looks up a worksheet by title. The error wraps
// finsheet.ErrWorksheetNotFound when no tab has that title.
func (s *Spreadsheet) Worksheet(title string) (finsheet.GridSheet, error) {
	props, err := s.sheetProperties()
	if err != nil {
		return nil, err
	}
	for _, p := range props {
		if p.Title == title {
			return &Worksheet{
				sp:      s,
				title:   p.Title,
				sheetID: p.SheetID,
				rows:    p.GridProperties.RowCount,
				cols:    p.GridProperties.ColumnCount,
			}, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", title, finsheet.ErrWorksheetNotFound)
}

// AddWorksheet creates a worksheet with the given grid size.
func (s *Spreadsheet) AddWorksheet(title string, rows, cols int) (finsheet.GridSheet, error) {
	var reply struct {
		Replies []struct {
			AddSheet struct {
				Properties sheetProperties `json:"properties"`
			} `json:"addSheet"`
		} `json:"replies"`
	}
	req := map[string]any{"addSheet": map[string]any{"properties": map[string]any{
		"title":          title,
		"gridProperties": map[string]any{"rowCount": rows, "columnCount": cols},
	}}}
	if err := s.structural(&reply, req); err != nil {
		return nil, fmt.Errorf("cannot add worksheet %q: %w", title, err)
	}
	if len(reply.Replies) == 0 {
		return nil, fmt.Errorf("cannot add worksheet %q: empty reply", title)
	}
	p := reply.Replies[0].AddSheet.Properties
	return &Worksheet{sp: s, title: title, sheetID: p.SheetID, rows: rows, cols: cols}, nil
}

type sheetProperties struct {
	SheetID        int64  `json:"sheetId"`
	Title          string `json:"title"`
	GridProperties struct {
		RowCount    int `json:"rowCount"`
		ColumnCount int `json:"columnCount"`
	} `json:"gridProperties"`
}

func (s *Spreadsheet) sheetProperties() ([]sheetProperties, error) {
	var payload struct {
		Sheets []struct {
			Properties sheetProperties `json:"properties"`
		} `json:"sheets"`
	}
	addr := fmt.Sprintf("%s/%s?fields=sheets.properties", s.base, s.id)
	if err := s.call(http.MethodGet, addr, nil, &payload); err != nil {
		return nil, fmt.Errorf("cannot read spreadsheet metadata: %w", err)
	}
	props := make([]sheetProperties, 0, len(payload.Sheets))
	for _, sheet := range payload.Sheets {
		props = append(props, sheet.Properties)
	}
	return props, nil
}

// structural issues one spreadsheets.batchUpdate with the given requests.
func (s *Spreadsheet) structural(reply any, requests ...map[string]any) error {
	addr := fmt.Sprintf("%s/%s:batchUpdate", s.base, s.id)
	return s.call(http.MethodPost, addr, map[string]any{"requests": requests}, reply)
}

// call performs one JSON round trip against the API.
func (s *Spreadsheet) call(method, addr string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequest(method, addr, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		content, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sheets api %s %s: %s: %s", method, req.URL.Path, resp.Status, content)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// rangeURL escapes a "Title!A1" range for a values endpoint path.
func (s *Spreadsheet) rangeURL(title, a1, suffix string) string {
	full := title
	if a1 != "" {
		full += "!" + a1
	}
	return fmt.Sprintf("%s/%s/values/%s%s", s.base, s.id, url.PathEscape(full), suffix)
}
