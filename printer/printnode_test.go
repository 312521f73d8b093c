package printer

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendPrintJob(t *testing.T) {
	var got printJobRequest
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/printjobs", r.URL.Path)
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("12345"))
	}))
	defer server.Close()

	c := NewClient("pn-key")
	c.BaseURL = server.URL

	err := c.SendPrintJob(42, "Order Receipt", "receipt text")
	require.NoError(t, err)

	assert.Equal(t, 42, got.PrinterID)
	assert.Equal(t, "Order Receipt", got.Title)
	assert.Equal(t, "raw_base64", got.ContentType)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("receipt text")), got.Content)
	assert.Equal(t, "Walters Kitchen Kiosk", got.Source)
	assert.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte("pn-key:")), authHeader)
}

func TestSendPrintJobUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad api key", http.StatusUnauthorized)
	}))
	defer server.Close()

	c := NewClient("bad-key")
	c.BaseURL = server.URL

	err := c.SendPrintJob(42, "Order Receipt", "receipt text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestListPrinters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/printers", r.URL.Path)
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "name": "Front Counter", "description": "Thermal 80mm", "state": "online"},
			{"id": 2, "name": "Kitchen", "description": "", "state": "offline"},
		})
	}))
	defer server.Close()

	c := NewClient("pn-key")
	c.BaseURL = server.URL

	printers, err := c.ListPrinters()
	require.NoError(t, err)
	require.Len(t, printers, 2)
	assert.Equal(t, Printer{ID: 1, Name: "Front Counter", Description: "Thermal 80mm"}, printers[0])
}
