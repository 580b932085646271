//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func TestRemoteAPI_SessionLifecycle(t *testing.T) {
	baseURL := strings.TrimRight(os.Getenv("E2E_BASE_URL"), "/")
	if baseURL == "" {
		t.Skip("E2E_BASE_URL is required for remote e2e")
	}
	scenarioID := envOr("E2E_SCENARIO_ID", "business-launch")
	client := &http.Client{Timeout: 20 * time.Second}

	t.Run("scenario listing", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodGet, baseURL+"/api/scenarios", nil)
		if status != http.StatusOK {
			t.Fatalf("scenarios status=%d body=%s", status, string(body))
		}
		var resp map[string]any
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal scenarios: %v body=%s", err, string(body))
		}
		if len(asSlice(resp["scenarios"])) == 0 {
			t.Fatalf("expected scenarios, got %s", string(body))
		}
	})

	t.Run("create start decide submit replay", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/sessions", map[string]any{"scenario_id": scenarioID})
		if status != http.StatusCreated {
			t.Fatalf("create status=%d body=%s", status, string(body))
		}
		var created map[string]any
		if err := json.Unmarshal(body, &created); err != nil {
			t.Fatalf("unmarshal create: %v", err)
		}
		id, _ := asMap(created["session"])["id"].(string)
		if id == "" {
			t.Fatalf("missing session id: %s", string(body))
		}
		sessionURL := baseURL + "/api/sessions/" + id

		status, body = mustJSON(t, client, http.MethodPost, sessionURL+"/submit", map[string]any{})
		if status != http.StatusConflict {
			t.Fatalf("submit before start should conflict, got %d body=%s", status, string(body))
		}

		if status, body = mustJSON(t, client, http.MethodPost, sessionURL+"/start", nil); status != http.StatusOK {
			t.Fatalf("start status=%d body=%s", status, string(body))
		}
		if status, body = mustJSON(t, client, http.MethodPost, sessionURL+"/decision", map[string]any{"option_index": 0}); status != http.StatusOK {
			t.Fatalf("decision status=%d body=%s", status, string(body))
		}
		status, body = mustJSON(t, client, http.MethodPost, sessionURL+"/submit", map[string]any{})
		if status != http.StatusOK {
			t.Fatalf("submit status=%d body=%s", status, string(body))
		}
		var submitted map[string]any
		if err := json.Unmarshal(body, &submitted); err != nil {
			t.Fatalf("unmarshal submit: %v", err)
		}
		if asMap(submitted["result"])["feedback"] == "" {
			t.Fatalf("expected feedback: %s", string(body))
		}

		status, body = mustJSON(t, client, http.MethodGet, sessionURL+"/replay?limit=10", nil)
		if status != http.StatusOK {
			t.Fatalf("replay status=%d body=%s", status, string(body))
		}
		var replayed map[string]any
		if err := json.Unmarshal(body, &replayed); err != nil {
			t.Fatalf("unmarshal replay: %v", err)
		}
		if len(asSlice(replayed["records"])) != 1 {
			t.Fatalf("expected one journaled turn: %s", string(body))
		}
	})

	t.Run("ops kpi", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodGet, baseURL+"/ops/kpi", nil)
		if status != http.StatusOK {
			t.Fatalf("kpi status=%d body=%s", status, string(body))
		}
	})
}

func mustJSON(t *testing.T, client *http.Client, method, url string, body any) (int, []byte) {
	t.Helper()
	status, respBody, err := doRequest(client, method, url, body)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return status, respBody
}

func doRequest(client *http.Client, method, url string, body any) (int, []byte, error) {
	var payloadBytes []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		payloadBytes = b
	}

	var lastStatus int
	var lastBody []byte
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		var payload io.Reader
		if len(payloadBytes) > 0 {
			payload = bytes.NewReader(payloadBytes)
		}
		req, err := http.NewRequest(method, url, payload)
		if err != nil {
			return 0, nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		lastStatus, lastBody, lastErr = resp.StatusCode, respBody, nil
		if resp.StatusCode >= 500 {
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		return resp.StatusCode, respBody, nil
	}
	if lastErr != nil {
		return 0, nil, lastErr
	}
	return lastStatus, lastBody, nil
}

func envOr(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func asSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}
