package openai

import (
	"encoding/json"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/skalacodebr/chatgpt-skala/pkg/llm"
)

func TestOpenAI(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "OpenAI Provider Suite")
}

var _ = Describe("openai provider", func() {
	p := New()

	Describe("Name", func() {
		It("returns openai", func() {
			Expect(p.Name()).To(Equal("openai"))
		})
	})

	Describe("MarshalRequest", func() {
		It("marshals the wire body with stream and show_reasoning", func() {
			temp := 0.7
			body, err := p.MarshalRequest(&llm.ChatRequest{
				Model:         "deepseek-reasoner",
				Messages:      []llm.Message{llm.NewUserMessage("hello")},
				Temperature:   &temp,
				Stream:        true,
				ShowReasoning: true,
			})
			Expect(err).NotTo(HaveOccurred())

			var got map[string]any
			Expect(json.Unmarshal(body, &got)).To(Succeed())
			Expect(got["model"]).To(Equal("deepseek-reasoner"))
			Expect(got["temperature"]).To(BeNumerically("==", 0.7))
			Expect(got["stream"]).To(BeTrue())
			Expect(got["show_reasoning"]).To(BeTrue())

			msgs, ok := got["messages"].([]any)
			Expect(ok).To(BeTrue())
			Expect(msgs).To(HaveLen(1))
			first, ok := msgs[0].(map[string]any)
			Expect(ok).To(BeTrue())
			Expect(first["role"]).To(Equal("user"))
			Expect(first["content"]).To(Equal("hello"))
		})

		It("omits temperature when unset", func() {
			body, err := p.MarshalRequest(&llm.ChatRequest{
				Model:    "deepseek-reasoner",
				Messages: []llm.Message{llm.NewUserMessage("hi")},
				Stream:   true,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(string(body)).NotTo(ContainSubstring("temperature"))
		})
	})

	Describe("ParseStreamChunk", func() {
		It("classifies a reasoning delta", func() {
			chunk, err := p.ParseStreamChunk([]byte(`{"choices":[{"delta":{"reasoning_content":"thinking"},"finish_reason":null}]}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(chunk.ReasoningDelta).To(Equal("thinking"))
			Expect(chunk.ContentDelta).To(BeEmpty())
			Expect(chunk.Finished).To(BeFalse())
		})

		It("classifies a content delta", func() {
			chunk, err := p.ParseStreamChunk([]byte(`{"choices":[{"delta":{"content":"answer"},"finish_reason":null}]}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(chunk.ContentDelta).To(Equal("answer"))
			Expect(chunk.ReasoningDelta).To(BeEmpty())
		})

		It("classifies both channels on one chunk", func() {
			chunk, err := p.ParseStreamChunk([]byte(`{"choices":[{"delta":{"reasoning_content":"r","content":"c"}}]}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(chunk.ReasoningDelta).To(Equal("r"))
			Expect(chunk.ContentDelta).To(Equal("c"))
		})

		It("marks the finish signal", func() {
			chunk, err := p.ParseStreamChunk([]byte(`{"choices":[{"delta":{},"finish_reason":"stop"}]}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(chunk.Finished).To(BeTrue())
			Expect(chunk.FinishReason).To(Equal("stop"))
		})

		It("surfaces the finish signal when delta is absent", func() {
			chunk, err := p.ParseStreamChunk([]byte(`{"choices":[{"finish_reason":"stop"}]}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(chunk).NotTo(BeNil())
			Expect(chunk.Finished).To(BeTrue())
		})

		It("skips a chunk with no choices", func() {
			chunk, err := p.ParseStreamChunk([]byte(`{"id":"chatcmpl-1","choices":[]}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(chunk).To(BeNil())
		})

		It("skips a chunk with neither delta nor finish_reason", func() {
			chunk, err := p.ParseStreamChunk([]byte(`{"choices":[{"index":0}]}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(chunk).To(BeNil())
		})

		It("treats null channel values as absent", func() {
			chunk, err := p.ParseStreamChunk([]byte(`{"choices":[{"delta":{"reasoning_content":null,"content":null}}]}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(chunk.ReasoningDelta).To(BeEmpty())
			Expect(chunk.ContentDelta).To(BeEmpty())
		})

		It("delivers an explicit empty-string delta as-is", func() {
			chunk, err := p.ParseStreamChunk([]byte(`{"choices":[{"delta":{"content":""}}]}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(chunk).NotTo(BeNil())
			Expect(chunk.ContentDelta).To(BeEmpty())
		})

		It("parses usage from the terminal frame", func() {
			chunk, err := p.ParseStreamChunk([]byte(`{"choices":[{"delta":{},"finish_reason":"stop"}],"usage":{"prompt_tokens":3,"completion_tokens":7,"total_tokens":10}}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(chunk.Usage).NotTo(BeNil())
			Expect(chunk.Usage.PromptTokens).To(Equal(3))
			Expect(chunk.Usage.CompletionTokens).To(Equal(7))
			Expect(chunk.Usage.TotalTokens).To(Equal(10))
		})

		It("parses a usage-only frame with no choices", func() {
			chunk, err := p.ParseStreamChunk([]byte(`{"choices":[],"usage":{"prompt_tokens":1,"completion_tokens":2,"total_tokens":3}}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(chunk).NotTo(BeNil())
			Expect(chunk.Finished).To(BeFalse())
			Expect(chunk.Usage.TotalTokens).To(Equal(3))
		})

		It("returns an error for malformed JSON", func() {
			_, err := p.ParseStreamChunk([]byte(`{"choices":[{`))
			Expect(err).To(HaveOccurred())
		})
	})
})
