package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tmorell/tabledict/internal/llm"
)

// responsesEnvelope is the subset of the Responses API reply we consume:
// the concatenated output_text of message items.
type responsesEnvelope struct {
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

func (e responsesEnvelope) outputText() string {
	var b strings.Builder
	for _, item := range e.Output {
		if item.Type != "message" {
			continue
		}
		for _, c := range item.Content {
			if c.Type == "output_text" {
				b.WriteString(c.Text)
			}
		}
	}
	return b.String()
}

// ExtractTable implements llm.TableExtractor against the Responses API.
// The request carries the page image at high detail and the opaque format
// contract; the reply is parsed as JSON, validated against the local record
// schema, and normalized (blank comments become the sentinel).
func (c *Client) ExtractTable(ctx context.Context, req llm.ExtractRequest) (llm.RecordSet, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"source", req.SourceName,
		"image_bytes", len(req.ImageDataURL),
	)

	body := map[string]any{
		"model": c.cfg.Model,
		"input": []map[string]any{
			{
				"role": "system",
				"content": []map[string]any{
					{"type": "input_text", "text": llm.BuildSystemPrompt(req.SourceName)},
				},
			},
			{
				"role": "user",
				"content": []map[string]any{
					{"type": "input_text", "text": llm.BuildUserPrompt()},
					{"type": "input_image", "image_url": req.ImageDataURL, "detail": "high"},
				},
			},
		},
		"text": map[string]any{"format": req.SchemaFormat},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/responses"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
	raw, _, err := llm.SendJSON(ctx, c.httpClient, endpoint, body, headers, c.log)
	if err != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.RecordSet{}, nil, fmt.Errorf("responses call: %w", err)
	}

	var env responsesEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.log.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.RecordSet{}, raw, fmt.Errorf("decode responses envelope: %w", err)
	}

	text := strings.TrimSpace(env.outputText())
	if text == "" {
		c.log.Error("llm.extract.empty_output",
			"req_id", rid, "raw", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.RecordSet{}, raw, fmt.Errorf("no output text in responses reply")
	}
	content := []byte(text)

	// With a json_schema format the output text should be valid JSON.
	var parsed any
	if err := json.Unmarshal(content, &parsed); err != nil {
		c.log.Error("llm.extract.invalid_json",
			"req_id", rid, "error", err, "output", text,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.RecordSet{}, content, fmt.Errorf("model did not return valid JSON: %w; raw output: %s", err, text)
	}

	schema := llm.BuildRecordSetJSONSchema()
	if err := llm.ValidateJSONAgainstSchema(schema, content); err != nil {
		c.log.Error("llm.extract.schema_validation_failed",
			"req_id", rid, "error", err, "content", text,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.RecordSet{}, content, fmt.Errorf("schema validation failed: %w; parsed JSON: %s", err, text)
	}

	var out llm.RecordSet
	if err := json.Unmarshal(content, &out); err != nil {
		c.log.Error("llm.extract.unmarshal_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.RecordSet{}, content, fmt.Errorf("unmarshal record set: %w", err)
	}

	if coerced := llm.NormalizeRecords(&out); len(coerced) > 0 {
		c.log.Warn("llm.extract.blank_comments_coerced", "req_id", rid, "keys", coerced)
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"source", req.SourceName,
		"rows", len(out.DataRecords),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, content, nil
}
