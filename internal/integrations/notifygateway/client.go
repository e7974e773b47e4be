package notifygateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент шлюза уведомлений
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента шлюза уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет уведомление в шлюз
func (c *Client) Send(ctx context.Context, n *Notification) error {
	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal notification: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}

// SendBestEffort отправляет уведомление без гарантии доставки.
// Ошибка шлюза не роняет бизнес-операцию: логируем и возвращаем
// ErrGatewayUnavailable, чтобы вызывающий мог это учесть.
func (c *Client) SendBestEffort(ctx context.Context, n *Notification) error {
	if err := c.Send(ctx, n); err != nil {
		c.log.Error("Notification gateway unavailable, event=%s appointment=%d: %v",
			n.Event, n.AppointmentID, err)
		return fmt.Errorf("%w: event=%s, appointment=%d", ErrGatewayUnavailable, n.Event, n.AppointmentID)
	}

	c.log.Info("Notification sent: event=%s appointment=%d phone=%s", n.Event, n.AppointmentID, n.ClientPhone)
	return nil
}
