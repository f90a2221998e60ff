package generator

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/gomega"
)

func TestParseHFResponseGeneratedText(t *testing.T) {
	RegisterTestingT(t)

	out, err := parseHFResponse([]byte(`[{"generated_text": "# Hello\n\nWorld"}]`))
	Expect(err).To(BeNil())
	Expect(out).To(Equal("# Hello\n\nWorld"))
}

func TestParseHFResponseListWithoutField(t *testing.T) {
	RegisterTestingT(t)

	out, err := parseHFResponse([]byte(`[{"summary_text": "short"}]`))
	Expect(err).To(BeNil())
	Expect(out).To(Equal(`{"summary_text": "short"}`))
}

func TestParseHFResponseErrorObject(t *testing.T) {
	RegisterTestingT(t)

	_, err := parseHFResponse([]byte(`{"error": "model overloaded"}`))
	Expect(err).To(MatchError(ErrProvider))
	Expect(err.Error()).To(ContainSubstring("model overloaded"))
}

func TestParseHFResponseOtherShapes(t *testing.T) {
	RegisterTestingT(t)

	out, err := parseHFResponse([]byte(`{"status": "queued"}`))
	Expect(err).To(BeNil())
	Expect(out).To(Equal(`{"status": "queued"}`))

	out, err = parseHFResponse([]byte(`"bare text"`))
	Expect(err).To(BeNil())
	Expect(out).To(Equal("bare text"))
}

func TestHFCompleteSendsExpectedRequest(t *testing.T) {
	RegisterTestingT(t)

	var gotAuth, gotBody string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = w.Write([]byte(`[{"generated_text": "# Out\n\nText"}]`))
	}))
	defer ts.Close()

	llm, err := NewHFLLMFromConfig(&LLMSettings{APIKey: "tok-123", BaseURL: ts.URL})
	Expect(err).To(BeNil())

	out, err := llm.Complete(context.Background(), Prompt{System: "sys", User: "Niche: tents"})
	Expect(err).To(BeNil())
	Expect(out).To(HavePrefix("# Out"))
	Expect(gotAuth).To(Equal("Bearer tok-123"))
	Expect(gotBody).To(ContainSubstring(`"wait_for_model":true`))
	Expect(gotBody).To(ContainSubstring(`"max_new_tokens":400`))
	Expect(gotBody).To(ContainSubstring("Niche: tents"))
}

func TestHFCompleteNon2xx(t *testing.T) {
	RegisterTestingT(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer ts.Close()

	llm, err := NewHFLLMFromConfig(&LLMSettings{APIKey: "tok", BaseURL: ts.URL})
	Expect(err).To(BeNil())

	_, err = llm.Complete(context.Background(), Prompt{User: "x"})
	Expect(err).To(MatchError(ErrProvider))
	Expect(err.Error()).To(ContainSubstring("404"))
}

func TestHFCompleteErrorPayload(t *testing.T) {
	RegisterTestingT(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": "Model gpt2 is currently loading"}`))
	}))
	defer ts.Close()

	llm, err := NewHFLLMFromConfig(&LLMSettings{APIKey: "tok", BaseURL: ts.URL})
	Expect(err).To(BeNil())

	_, err = llm.Complete(context.Background(), Prompt{User: "x"})
	Expect(err).To(MatchError(ErrProvider))
	Expect(err.Error()).To(ContainSubstring("currently loading"))
}

func TestHFMissingToken(t *testing.T) {
	RegisterTestingT(t)

	_, err := NewHFLLMFromConfig(&LLMSettings{})
	Expect(err).To(MatchError(ErrConfiguration))

	_, err = NewHFLLMFromConfig(nil)
	Expect(err).To(MatchError(ErrConfiguration))
}

func TestHFDefaultEndpoint(t *testing.T) {
	RegisterTestingT(t)

	llm, err := NewHFLLMFromConfig(&LLMSettings{APIKey: "tok"})
	Expect(err).To(BeNil())
	Expect(llm.Endpoint).To(Equal("https://api-inference.huggingface.co/models/gpt2"))
}
