package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jnpd11/grade6-science-prep/internal/logging"
)

func completionJSON(content string) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
		"usage": map[string]any{"prompt_tokens": 12, "completion_tokens": 34},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestCompleteSendsWellFormedRequest(t *testing.T) {
	var (
		gotMethod string
		gotPath   string
		gotAuth   string
		gotType   string
		gotBody   chatRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionJSON("ok")))
	}))
	defer srv.Close()

	client := NewClient("sk-test", WithBaseURL(srv.URL), WithModel("deepseek-chat"))
	if _, err := client.Complete(context.Background(), "system prompt", "user prompt"); err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %q, want POST", gotMethod)
	}
	if gotPath != "/v1/chat/completions" {
		t.Errorf("path = %q, want /v1/chat/completions", gotPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q, want Bearer sk-test", gotAuth)
	}
	if gotType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotType)
	}
	if gotBody.Model != "deepseek-chat" {
		t.Errorf("model = %q, want deepseek-chat", gotBody.Model)
	}
	if gotBody.Temperature != Temperature {
		t.Errorf("temperature = %v, want %v", gotBody.Temperature, Temperature)
	}
	if len(gotBody.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(gotBody.Messages))
	}
	if gotBody.Messages[0].Role != "system" || gotBody.Messages[0].Content != "system prompt" {
		t.Errorf("first message = %+v, want system prompt", gotBody.Messages[0])
	}
	if gotBody.Messages[1].Role != "user" || gotBody.Messages[1].Content != "user prompt" {
		t.Errorf("second message = %+v, want user prompt", gotBody.Messages[1])
	}
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionJSON("## 预习目标\n\n内容")))
	}))
	defer srv.Close()

	client := NewClient("sk-test", WithBaseURL(srv.URL))
	got, err := client.Complete(context.Background(), "s", "u")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if got != "## 预习目标\n\n内容" {
		t.Errorf("content = %q", got)
	}
}

func TestCompleteTrimsTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(completionJSON("ok")))
	}))
	defer srv.Close()

	client := NewClient("sk-test", WithBaseURL(srv.URL+"/"))
	if _, err := client.Complete(context.Background(), "s", "u"); err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if gotPath != "/v1/chat/completions" {
		t.Errorf("path = %q, want /v1/chat/completions", gotPath)
	}
}

func TestCompleteNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limit exceeded"}}`))
	}))
	defer srv.Close()

	client := NewClient("sk-test", WithBaseURL(srv.URL))
	_, err := client.Complete(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("expected error for 429 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d, want 429", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Body, "rate limit exceeded") {
		t.Errorf("Body = %q, want rate limit message", apiErr.Body)
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("Error() = %q, want status in message", err.Error())
	}
}

func TestCompleteTruncatesErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(strings.Repeat("长", 800)))
	}))
	defer srv.Close()

	client := NewClient("sk-test", WithBaseURL(srv.URL))
	_, err := client.Complete(context.Background(), "s", "u")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if n := len([]rune(apiErr.Body)); n != maxErrorBody {
		t.Errorf("Body length = %d runes, want %d", n, maxErrorBody)
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := NewClient("sk-test", WithBaseURL(srv.URL))
	_, err := client.Complete(context.Background(), "s", "u")
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Errorf("error = %v, want ErrEmptyCompletion", err)
	}
}

func TestCompleteEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionJSON("")))
	}))
	defer srv.Close()

	client := NewClient("sk-test", WithBaseURL(srv.URL))
	_, err := client.Complete(context.Background(), "s", "u")
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Errorf("error = %v, want ErrEmptyCompletion", err)
	}
}

func TestCompleteMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": [`))
	}))
	defer srv.Close()

	client := NewClient("sk-test", WithBaseURL(srv.URL))
	if _, err := client.Complete(context.Background(), "s", "u"); err == nil {
		t.Error("expected error for malformed response body")
	}
}

func TestCompleteLogsUsageButNeverTheKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionJSON("ok")))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	client := NewClient("sk-test",
		WithBaseURL(srv.URL),
		WithLogger(logging.NewWithOutput("debug", &buf)),
	)
	if _, err := client.Complete(context.Background(), "s", "u"); err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}

	logged := buf.String()
	if !strings.Contains(logged, "completion received") {
		t.Errorf("debug log missing completion line: %q", logged)
	}
	if !strings.Contains(logged, `"prompt_tokens":12`) {
		t.Errorf("debug log missing token usage: %q", logged)
	}
	if strings.Contains(logged, "sk-test") {
		t.Errorf("credential leaked into log output: %q", logged)
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient("sk-test")
	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, DefaultBaseURL)
	}
	if client.model != DefaultModel {
		t.Errorf("model = %q, want %q", client.model, DefaultModel)
	}
	if client.httpClient.Timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", client.httpClient.Timeout, DefaultTimeout)
	}
}

func TestNewClientOptionsIgnoreZeroValues(t *testing.T) {
	client := NewClient("sk-test", WithBaseURL(""), WithModel(""), WithTimeout(0), WithHTTPClient(nil))
	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want default kept", client.baseURL)
	}
	if client.model != DefaultModel {
		t.Errorf("model = %q, want default kept", client.model)
	}
	if client.httpClient == nil {
		t.Error("httpClient = nil, want default kept")
	}
}
