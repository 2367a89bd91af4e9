package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Room holds the per-side URLs returned by the chat-room service. The
// escrow core never inspects chat content; it only opens the room once
// an order's deposits are locked.
type Room struct {
	OrderID  uint   `json:"order_id"`
	MakerUrl string `json:"maker_url"`
	TakerUrl string `json:"taker_url"`
}

type Client interface {
	OpenRoom(ctx context.Context, orderID uint) (*Room, error)
}

type httpClient struct {
	baseUrl string
	client  *http.Client
}

// NewClient returns nil when no chat service is configured.
func NewClient(baseUrl string) Client {
	if baseUrl == "" {
		return nil
	}
	return &httpClient{
		baseUrl: strings.TrimSuffix(baseUrl, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *httpClient) OpenRoom(ctx context.Context, orderID uint) (*Room, error) {
	payloadBytes, err := json.Marshal(map[string]interface{}{
		"order_id": orderID,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseUrl+"/api/rooms", bytes.NewReader(payloadBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("chat service returned status %d: %s", resp.StatusCode, string(body))
	}

	var room Room
	if err := json.NewDecoder(resp.Body).Decode(&room); err != nil {
		return nil, err
	}
	return &room, nil
}
