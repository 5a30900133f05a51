package livescore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"goalsignal/internal/models"
)

// Client fetches per-match live state from the score feed. The feed is the
// system's supplier of match updates; signal settlement consumes its output
// but owns none of its semantics.
type Client struct {
	host       string
	httpClient *http.Client
}

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("livescore api status %d: %s", e.Status, e.Body)
}

func NewClient(httpClient *http.Client, host string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		host:       strings.TrimRight(host, "/"),
		httpClient: httpClient,
	}
}

// matchPayload is the wire shape of one feed match entry.
type matchPayload struct {
	MatchID       string `json:"matchId"`
	CurrentMinute int    `json:"currentMinute"`
	Status        string `json:"status"`
	Goals         []struct {
		Minute int    `json:"minute"`
		Side   string `json:"side"`
	} `json:"goals"`
}

// MatchUpdates returns the current snapshot for the requested matches.
// Matches unknown to the feed are simply absent from the result; the sweep
// treats a missing update as "no news this round".
func (c *Client) MatchUpdates(ctx context.Context, matchIDs []string) (map[string]models.MatchUpdate, error) {
	ids := cleanIDs(matchIDs)
	if len(ids) == 0 {
		return map[string]models.MatchUpdate{}, nil
	}
	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))
	body, err := c.doRequest(ctx, "/api/matches", query)
	if err != nil {
		return nil, err
	}

	var payload []matchPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode matches: %w", err)
	}

	out := make(map[string]models.MatchUpdate, len(payload))
	for _, m := range payload {
		id := strings.TrimSpace(m.MatchID)
		if id == "" {
			continue
		}
		upd := models.MatchUpdate{
			MatchID:       id,
			CurrentMinute: m.CurrentMinute,
			State:         normalizeState(m.Status),
		}
		for _, g := range m.Goals {
			upd.Goals = append(upd.Goals, models.GoalEvent{Minute: g.Minute, Side: g.Side})
		}
		out[id] = upd
	}
	return out, nil
}

func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.host + path
	if len(query) > 0 {
		fullURL = fullURL + "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func normalizeState(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "live", "inplay", "in_play", "playing", "1h", "2h", "ht":
		return models.MatchLive
	case "finished", "ended", "ft", "aet", "afterextratime":
		return models.MatchFinished
	case "postponed", "suspended", "abandoned":
		return models.MatchPostponed
	default:
		return models.MatchLive
	}
}

func cleanIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := map[string]struct{}{}
	for _, raw := range ids {
		val := strings.TrimSpace(raw)
		if val == "" {
			continue
		}
		if _, ok := seen[val]; ok {
			continue
		}
		seen[val] = struct{}{}
		out = append(out, val)
	}
	return out
}
