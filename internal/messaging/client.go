// Package messaging forwards outbound WhatsApp messages to the third-party
// gateway. The adapter is stateless and deliberately never fails at the HTTP
// level: every outcome, including gateway errors, is embedded in a 200
// envelope so the calling browser needs no non-200 handling.
package messaging

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	logrus "github.com/sirupsen/logrus"
)

// Envelope is the fixed response shape of the adapter.
type Envelope struct {
	Success bool        `json:"success"`
	Status  int         `json:"status"`
	Data    interface{} `json:"data"`
}

// Client posts form-encoded send requests to the gateway.
type Client struct {
	apiURL     string
	token      string
	httpClient *http.Client
}

func NewClient(apiURL, token string) *Client {
	return &Client{
		apiURL: apiURL,
		token:  token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NormalizeTarget flattens the accepted target shapes (a single number or a
// list of numbers) into the comma-joined string the gateway expects.
// Returns false for anything else.
func NormalizeTarget(target interface{}) (string, bool) {
	switch v := target.(type) {
	case string:
		return v, v != ""
	case []string:
		return strings.Join(v, ","), len(v) > 0
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return "", false
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), len(parts) > 0
	default:
		return "", false
	}
}

// Send forwards one message. The returned envelope always describes the
// outcome; Send itself never returns an error.
func (c *Client) Send(ctx context.Context, target, message string) Envelope {
	form := url.Values{
		"target":  {target},
		"message": {message},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return Envelope{Success: false, Status: http.StatusInternalServerError, Data: map[string]string{"error": err.Error()}}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("whatsapp gateway request failed")
		return Envelope{Success: false, Status: http.StatusBadGateway, Data: map[string]string{"error": err.Error()}}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logrus.WithError(err).Error("reading whatsapp gateway response failed")
		return Envelope{Success: false, Status: http.StatusBadGateway, Data: map[string]string{"error": err.Error()}}
	}

	// The gateway usually answers JSON; anything else is passed through raw.
	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		data = map[string]string{"raw": string(body)}
	}

	return Envelope{
		Success: resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status:  resp.StatusCode,
		Data:    data,
	}
}
