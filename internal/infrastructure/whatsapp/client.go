// Package whatsapp mengirim notifikasi operasional lewat gateway
// WhatsApp HTTP (Fonnte atau gateway kompatibel).
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Client klien gateway WhatsApp. Kirim pesan adalah best-effort;
// kegagalan hanya dicatat, tidak pernah merambat ke alur transaksi.
type Client struct {
	baseURL string
	token   string
	target  string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient membuat klien gateway. target adalah nomor/grup tujuan.
func NewClient(baseURL, token, target string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		target:  target,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

type sendRequest struct {
	Target  string `json:"target"`
	Message string `json:"message"`
}

// Send mengirim satu pesan teks ke target terkonfigurasi.
func (c *Client) Send(ctx context.Context, message string) error {
	body, err := json.Marshal(sendRequest{Target: c.target, Message: message})
	if err != nil {
		return fmt.Errorf("encode pesan whatsapp: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("bangun request whatsapp: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("kirim pesan whatsapp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("gateway whatsapp menolak pesan: status %d", resp.StatusCode)
	}
	return nil
}
