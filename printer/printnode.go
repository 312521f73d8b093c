package printer

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.printnode.com"

// jobSource identifies the kiosk in the PrintNode dashboard.
const jobSource = "Walters Kitchen Kiosk"

// Client talks to the PrintNode cloud print relay. Printing is best-effort
// everywhere it is used: callers log failures and move on.
type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

type printJobRequest struct {
	PrinterID   int    `json:"printerId"`
	Title       string `json:"title"`
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
	Source      string `json:"source"`
}

// Printer is the subset of PrintNode's printer object the admin panel needs
// to pick a printer id.
type Printer struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (c *Client) authHeader() string {
	// PrintNode uses basic auth with the API key as username, empty password.
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.APIKey+":"))
}

// SendPrintJob submits raw receipt text to a printer.
func (c *Client) SendPrintJob(printerID int, title, content string) error {
	job := printJobRequest{
		PrinterID:   printerID,
		Title:       title,
		ContentType: "raw_base64",
		Content:     base64.StdEncoding.EncodeToString([]byte(content)),
		Source:      jobSource,
	}

	jsonData, _ := json.Marshal(job)
	req, err := http.NewRequest("POST", c.BaseURL+"/printjobs", bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.authHeader())
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach PrintNode: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("printnode API error (%d): %s", resp.StatusCode, string(body))
	}
	return nil
}

// ListPrinters fetches the printers visible to the API key.
func (c *Client) ListPrinters() ([]Printer, error) {
	req, err := http.NewRequest("GET", c.BaseURL+"/printers", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.authHeader())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach PrintNode: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("printnode API error (%d): %s", resp.StatusCode, string(body))
	}

	var printers []Printer
	if err := json.NewDecoder(resp.Body).Decode(&printers); err != nil {
		return nil, fmt.Errorf("failed to parse PrintNode response: %v", err)
	}
	return printers, nil
}
