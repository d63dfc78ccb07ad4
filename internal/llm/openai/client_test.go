package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmorell/tabledict/internal/llm"
)

func respondWithOutputText(t *testing.T, w http.ResponseWriter, text string) {
	t.Helper()
	env := map[string]any{
		"output": []map[string]any{
			{
				"type": "message",
				"content": []map[string]any{
					{"type": "output_text", "text": text},
				},
			},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(env))
}

func testRequest() llm.ExtractRequest {
	return llm.ExtractRequest{
		SchemaFormat: map[string]any{"type": "json_schema", "name": "data_extraction_response"},
		ImageDataURL: "data:image/png;base64,aGVsbG8=",
		SourceName:   "docs_13.pdf",
	}
}

func TestExtractTableSuccess(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/responses", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		respondWithOutputText(t, w, `{"data_records": [
			{"file_name": "docs_13.pdf", "key": "TICKER", "item": "Ticker Symbol",
			 "data_type": "CHAR", "format": "$6.", "length": 6, "start": 1, "end": 6,
			 "comments": ""}
		]}`)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL, Model: "gpt-5-nano"}, nil)
	out, raw, err := c.ExtractTable(context.Background(), testRequest())
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	require.Len(t, out.DataRecords, 1)

	rec := out.DataRecords[0]
	require.Equal(t, "docs_13.pdf", rec.FileName)
	require.Equal(t, 6, rec.Length)
	require.Equal(t, 1, rec.Start)
	require.Equal(t, 6, rec.End)
	// blank comments coerced during normalization
	require.Equal(t, "na", rec.Comments)

	// request carried the model and the opaque format contract
	require.Equal(t, "gpt-5-nano", gotBody["model"])
	text, ok := gotBody["text"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, map[string]any{"type": "json_schema", "name": "data_extraction_response"}, text["format"])

	// the user message attaches the image at high detail
	input, ok := gotBody["input"].([]any)
	require.True(t, ok)
	require.Len(t, input, 2)
	user := input[1].(map[string]any)
	require.Equal(t, "user", user["role"])
	content := user["content"].([]any)
	image := content[1].(map[string]any)
	require.Equal(t, "input_image", image["type"])
	require.Equal(t, "high", image["detail"])
}

func TestExtractTableNonJSONOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithOutputText(t, w, "not json")
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL}, nil)
	_, raw, err := c.ExtractTable(context.Background(), testRequest())
	require.Error(t, err)
	// raw model text is surfaced for diagnosis
	require.Contains(t, err.Error(), "not json")
	require.Equal(t, "not json", string(raw))
}

func TestExtractTableSchemaValidationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// length is a quoted string, which the record schema rejects
		respondWithOutputText(t, w, `{"data_records": [
			{"file_name": "docs_13.pdf", "key": "TICKER", "item": "Ticker Symbol",
			 "data_type": "CHAR", "format": "$6.", "length": "6", "start": 1, "end": 6,
			 "comments": "na"}
		]}`)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL}, nil)
	_, _, err := c.ExtractTable(context.Background(), testRequest())
	require.Error(t, err)
	require.Contains(t, err.Error(), "schema validation failed")
	require.Contains(t, err.Error(), "parsed JSON")
}

func TestExtractTableHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "invalid api key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "sk-bad", BaseURL: srv.URL}, nil)
	_, _, err := c.ExtractTable(context.Background(), testRequest())
	require.Error(t, err)
	require.Contains(t, err.Error(), "401")
}

func TestExtractTableEmptyOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"output": []}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL}, nil)
	_, _, err := c.ExtractTable(context.Background(), testRequest())
	require.Error(t, err)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Config{APIKey: "sk-test"}, nil)
	require.Equal(t, "https://api.openai.com/v1", c.cfg.BaseURL)
	require.Equal(t, "gpt-5-nano", c.cfg.Model)
	require.Positive(t, c.cfg.Timeout)
}
