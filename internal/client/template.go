package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/stocktrack/stocktrack/internal/csvtemplate"
)

// Template is a downloaded import template.
type Template struct {
	Name     string
	Data     []byte
	Fallback bool
}

// DownloadTemplate fetches the import template. It never fails: any error
// is logged and the embedded copy is returned instead.
func (c *Client) DownloadTemplate(ctx context.Context) Template {
	data, err := c.fetchTemplate(ctx)
	if err != nil {
		slog.Warn("template download failed, using embedded copy", "error", err)
		return Template{Name: csvtemplate.FileName, Data: csvtemplate.Bytes(), Fallback: true}
	}
	return Template{Name: csvtemplate.FileName, Data: data}
}

func (c *Client) fetchTemplate(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/download/consumables-template", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("empty template")
	}
	return data, nil
}
