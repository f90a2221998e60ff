package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// defaultHFEndpoint points at a small model the free tier always serves.
const defaultHFEndpoint = "https://api-inference.huggingface.co/models/gpt2"

// HFLLM implements LLMClient against the Hugging Face hosted inference API.
type HFLLM struct {
	Endpoint string
	Token    string
	Client   *http.Client
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Options    hfOptions    `json:"options"`
	Parameters hfParameters `json:"parameters"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type hfParameters struct {
	MaxNewTokens int `json:"max_new_tokens"`
}

func NewHFLLMFromConfig(cfg *LLMSettings) (*HFLLM, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: llm settings are nil", ErrConfiguration)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: hugging face token missing; set HF_INFERENCE_API_TOKEN or llm.api_key", ErrConfiguration)
	}
	endpoint := cfg.BaseURL
	if endpoint == "" {
		endpoint = defaultHFEndpoint
	}
	return &HFLLM{
		Endpoint: endpoint,
		Token:    cfg.APIKey,
		Client:   &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// Complete posts the flattened prompt to the inference endpoint, asking the
// service to wait for a cold model, capped at 400 new tokens.
func (h *HFLLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	payload := hfRequest{
		Inputs:     prompt.Render(),
		Options:    hfOptions{WaitForModel: true},
		Parameters: hfParameters{MaxNewTokens: 400},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrProvider, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", h.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrProvider, err)
	}
	req.Header.Set("Authorization", "Bearer "+h.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrProvider, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(data))
		if len(msg) > 200 {
			msg = msg[:200]
		}
		return "", fmt.Errorf("%w: inference returned %s: %s", ErrProvider, resp.Status, msg)
	}

	return parseHFResponse(data)
}

// parseHFResponse walks the response shapes the inference API is known to
// produce, in priority order: an error object fails the call, a list whose
// first element carries generated_text yields that text, a list of plain
// objects yields the first object verbatim, and anything else comes back in
// its string form.
func parseHFResponse(data []byte) (string, error) {
	body := gjson.ParseBytes(data)

	if body.IsObject() {
		if errField := body.Get("error"); errField.Exists() {
			return "", fmt.Errorf("%w: hf error: %s", ErrProvider, errField.String())
		}
	}
	if body.IsArray() {
		first := body.Get("0")
		if gen := first.Get("generated_text"); gen.Exists() {
			return gen.String(), nil
		}
		if first.IsObject() {
			return first.Raw, nil
		}
	}
	return body.String(), nil
}
