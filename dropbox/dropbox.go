// Package dropbox locates and downloads the freshest YNAB budget snapshot
// from a Dropbox app folder.
//
// A budget lives under /YNAB/<name>/: Budget.ymeta points at a data folder
// holding one device folder per syncing device, each with its own
// Budget.yfull snapshot. The snapshot with the newest server modification
// time is the budget's current state.
package dropbox

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/hgabor/finsheet"
)

const (
	apiBase     = "https://api.dropboxapi.com/2"
	contentBase = "https://content.dropboxapi.com/2"
)

// Client is a Dropbox API v2 client over a bearer access token.
type Client struct {
	token   string
	api     string
	content string
	client  *http.Client
}

// NewClient returns a client for the given access token.
func NewClient(token string) *Client {
	return &Client{token: token, api: apiBase, content: contentBase, client: http.DefaultClient}
}

// LatestBudget finds and decodes the freshest Budget.yfull snapshot of the
// named budget.
func (c *Client) LatestBudget(budget string) (*finsheet.Budget, error) {
	metaPath := fmt.Sprintf("/YNAB/%s/Budget.ymeta", budget)
	metaContent, err := c.download(metaPath)
	if err != nil {
		return nil, fmt.Errorf("cannot download budget meta %s: %w", metaPath, err)
	}
	var meta struct {
		RelativeDataFolderName string `json:"relativeDataFolderName"`
	}
	if err := json.Unmarshal(metaContent, &meta); err != nil {
		return nil, fmt.Errorf("cannot decode budget meta %s: %w", metaPath, err)
	}
	dataFolder := fmt.Sprintf("/YNAB/%s/%s", budget, meta.RelativeDataFolderName)

	devices, err := c.listFolder(dataFolder)
	if err != nil {
		return nil, fmt.Errorf("cannot list data folder %s: %w", dataFolder, err)
	}

	// One Budget.yfull per device folder; keep the newest. Devices without
	// a snapshot are normal, not errors.
	var latestDevice string
	var latestTime time.Time
	for _, device := range devices {
		path := fmt.Sprintf("%s/%s/Budget.yfull", dataFolder, device)
		modified, err := c.serverModified(path)
		if err != nil {
			log.Printf("no snapshot under device %q: %v", device, err)
			continue
		}
		if latestDevice == "" || modified.After(latestTime) {
			latestDevice, latestTime = device, modified
		}
	}
	if latestDevice == "" {
		return nil, fmt.Errorf("no Budget.yfull snapshot under %s", dataFolder)
	}

	path := fmt.Sprintf("%s/%s/Budget.yfull", dataFolder, latestDevice)
	log.Printf("downloading budget snapshot %s (modified %s)", path, latestTime.Format(time.RFC3339))
	content, err := c.download(path)
	if err != nil {
		return nil, fmt.Errorf("cannot download snapshot %s: %w", path, err)
	}

	var b finsheet.Budget
	if err := json.Unmarshal(content, &b); err != nil {
		return nil, fmt.Errorf("cannot decode snapshot %s: %w", path, err)
	}
	return &b, nil
}

// listFolder returns the entry names of a folder.
func (c *Client) listFolder(path string) ([]string, error) {
	var payload struct {
		Entries []struct {
			Name string `json:"name"`
		} `json:"entries"`
	}
	if err := c.rpc(c.api+"/files/list_folder", map[string]any{"path": path}, &payload); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(payload.Entries))
	for _, e := range payload.Entries {
		names = append(names, e.Name)
	}
	return names, nil
}

// serverModified returns the server modification time of a file.
func (c *Client) serverModified(path string) (time.Time, error) {
	var payload struct {
		ServerModified time.Time `json:"server_modified"`
	}
	if err := c.rpc(c.api+"/files/get_metadata", map[string]any{"path": path}, &payload); err != nil {
		return time.Time{}, err
	}
	return payload.ServerModified, nil
}

// rpc performs one JSON-in JSON-out API call.
func (c *Client) rpc(addr string, body, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, addr, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		content, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("dropbox api %s: %s: %s", req.URL.Path, resp.Status, content)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// download fetches the raw content of a file.
func (c *Client) download(path string) ([]byte, error) {
	arg, err := json.Marshal(map[string]any{"path": path})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, c.content+"/files/download", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Dropbox-API-Arg", string(arg))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		content, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("dropbox download %s: %s: %s", path, resp.Status, content)
	}
	return io.ReadAll(resp.Body)
}
