package conversation_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/skalacodebr/chatgpt-skala/pkg/conversation"
)

func TestConversation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Conversation Suite")
}

var _ = Describe("Conversation", func() {
	var conv *conversation.Conversation

	BeforeEach(func() {
		conv = conversation.New()
	})

	Describe("Append", func() {
		It("returns indices in append order", func() {
			Expect(conv.Append(conversation.Message{Content: "first", IsUser: true})).To(Equal(0))
			Expect(conv.Append(conversation.Message{Content: "second"})).To(Equal(1))
			Expect(conv.Len()).To(Equal(2))
		})

		It("assigns an ID when none is given", func() {
			i := conv.Append(conversation.Message{Content: "hello"})
			msg, err := conv.Message(i)
			Expect(err).NotTo(HaveOccurred())
			Expect(msg.ID).NotTo(BeEmpty())
		})

		It("keeps a caller-provided ID", func() {
			i := conv.Append(conversation.Message{ID: "fixed", Content: "hello"})
			msg, err := conv.Message(i)
			Expect(err).NotTo(HaveOccurred())
			Expect(msg.ID).To(Equal("fixed"))
		})
	})

	Describe("AppendContent", func() {
		It("grows the message content incrementally", func() {
			i := conv.Append(conversation.Message{})
			Expect(conv.AppendContent(i, "Hello")).To(Succeed())
			Expect(conv.AppendContent(i, ", world")).To(Succeed())

			msg, err := conv.Message(i)
			Expect(err).NotTo(HaveOccurred())
			Expect(msg.Content).To(Equal("Hello, world"))
		})

		It("rejects an out-of-range index", func() {
			err := conv.AppendContent(3, "x")
			var idxErr conversation.IndexError
			Expect(err).To(BeAssignableToTypeOf(idxErr))
		})

		It("rejects mutation of a completed message", func() {
			i := conv.Append(conversation.Message{Content: "done"})
			Expect(conv.Finalize(i, "")).To(Succeed())
			Expect(conv.AppendContent(i, "more")).To(MatchError(conversation.ErrMessageComplete))
		})
	})

	Describe("Finalize", func() {
		It("attaches reasoning and marks the message complete", func() {
			i := conv.Append(conversation.Message{ShowReasoning: true})
			Expect(conv.AppendContent(i, "answer")).To(Succeed())
			Expect(conv.Finalize(i, "cleaned reasoning")).To(Succeed())

			msg, err := conv.Message(i)
			Expect(err).NotTo(HaveOccurred())
			Expect(msg.IsComplete).To(BeTrue())
			Expect(msg.Reasoning).To(Equal("cleaned reasoning"))
			Expect(msg.Content).To(Equal("answer"))
		})

		It("cannot run twice on the same message", func() {
			i := conv.Append(conversation.Message{})
			Expect(conv.Finalize(i, "")).To(Succeed())
			Expect(conv.Finalize(i, "again")).To(MatchError(conversation.ErrMessageComplete))
		})
	})

	Describe("Messages", func() {
		It("returns a copy preserving display order", func() {
			conv.Append(conversation.Message{Content: "one", IsUser: true})
			conv.Append(conversation.Message{Content: "two"})

			msgs := conv.Messages()
			Expect(msgs).To(HaveLen(2))
			Expect(msgs[0].Content).To(Equal("one"))
			Expect(msgs[1].Content).To(Equal("two"))

			// Mutating the copy must not leak into the store.
			msgs[0].Content = "changed"
			fresh, err := conv.Message(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(fresh.Content).To(Equal("one"))
		})
	})
})
