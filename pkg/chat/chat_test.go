package chat_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/skalacodebr/chatgpt-skala/pkg/chat"
	"github.com/skalacodebr/chatgpt-skala/pkg/llm"
	"github.com/skalacodebr/chatgpt-skala/pkg/llm/provider/openai"
	"github.com/skalacodebr/chatgpt-skala/pkg/logger"
	"github.com/skalacodebr/chatgpt-skala/pkg/sse"
)

func TestChat(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Chat Client Suite")
}

var _ = Describe("Client", func() {
	var upstream *httptest.Server

	AfterEach(func() {
		if upstream != nil {
			upstream.Close()
		}
	})

	newClient := func(baseURL, apiKey string) *chat.Client {
		return chat.NewClient(chat.Config{
			BaseURL:       baseURL,
			APIKey:        apiKey,
			Model:         "deepseek-reasoner",
			Temperature:   0.7,
			ShowReasoning: true,
		}, openai.New(), logger.Nop())
	}

	Describe("Stream", func() {
		It("POSTs the wire request and returns the SSE body", func() {
			var gotPath, gotAuth, gotAccept string
			var gotBody map[string]any

			upstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotAuth = r.Header.Get("Authorization")
				gotAccept = r.Header.Get("Accept")

				raw, err := io.ReadAll(r.Body)
				Expect(err).NotTo(HaveOccurred())
				Expect(json.Unmarshal(raw, &gotBody)).To(Succeed())

				w.Header().Set("Content-Type", "text/event-stream")
				w.Header().Set("Cache-Control", "no-cache")
				w.WriteHeader(http.StatusOK)

				flusher, ok := w.(http.Flusher)
				Expect(ok).To(BeTrue())

				events := []string{
					"data: {\"choices\":[{\"delta\":{\"content\":\"Hello\"},\"finish_reason\":null}]}\n\n",
					"data: {\"choices\":[{\"delta\":{},\"finish_reason\":\"stop\"}]}\n\n",
					"data: [DONE]\n\n",
				}
				for _, ev := range events {
					_, err := w.Write([]byte(ev))
					Expect(err).NotTo(HaveOccurred())
					flusher.Flush()
				}
			}))

			client := newClient(upstream.URL, "sk-test")
			body, err := client.Stream(context.Background(), []llm.Message{llm.NewUserMessage("hi")})
			Expect(err).NotTo(HaveOccurred())
			defer body.Close()

			Expect(gotPath).To(Equal("/chat/completions"))
			Expect(gotAuth).To(Equal("Bearer sk-test"))
			Expect(gotAccept).To(Equal("application/json"))
			Expect(gotBody["model"]).To(Equal("deepseek-reasoner"))
			Expect(gotBody["stream"]).To(BeTrue())
			Expect(gotBody["show_reasoning"]).To(BeTrue())
			Expect(gotBody["temperature"]).To(BeNumerically("==", 0.7))

			r := sse.NewReader(body)
			ev, err := r.Next()
			Expect(err).NotTo(HaveOccurred())
			Expect(ev.Data).To(ContainSubstring("Hello"))
		})

		It("omits the Authorization header without an API key", func() {
			var gotAuth string
			upstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				w.WriteHeader(http.StatusOK)
			}))

			client := newClient(upstream.URL, "")
			body, err := client.Stream(context.Background(), []llm.Message{llm.NewUserMessage("hi")})
			Expect(err).NotTo(HaveOccurred())
			body.Close()

			Expect(gotAuth).To(BeEmpty())
		})

		It("tolerates a trailing slash on the base URL", func() {
			var gotPath string
			upstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.WriteHeader(http.StatusOK)
			}))

			client := newClient(upstream.URL+"/", "")
			body, err := client.Stream(context.Background(), []llm.Message{llm.NewUserMessage("hi")})
			Expect(err).NotTo(HaveOccurred())
			body.Close()

			Expect(gotPath).To(Equal("/chat/completions"))
		})

		It("treats a non-2xx response as a hard failure", func() {
			upstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
			}))

			client := newClient(upstream.URL, "sk-bad")
			_, err := client.Stream(context.Background(), []llm.Message{llm.NewUserMessage("hi")})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("status 401"))
			Expect(err.Error()).To(ContainSubstring("invalid api key"))
		})

		It("fails when the endpoint is unreachable", func() {
			client := newClient("http://127.0.0.1:1", "")
			_, err := client.Stream(context.Background(), []llm.Message{llm.NewUserMessage("hi")})
			Expect(err).To(HaveOccurred())
		})
	})
})
