package sse

import (
	"io"
	"strings"
	"testing"
	"testing/iotest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSSE(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "SSE Suite")
}

var _ = Describe("Reader", func() {
	Describe("Next", func() {
		Context("with standard SSE events", func() {
			It("parses a single event", func() {
				r := NewReader(strings.NewReader("data: hello world\n\n"))

				ev, err := r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev.Data).To(Equal("hello world"))
				Expect(ev.Type).To(BeEmpty())
				Expect(ev.ID).To(BeEmpty())

				_, err = r.Next()
				Expect(err).To(MatchError(io.EOF))
			})

			It("parses multiple events", func() {
				r := NewReader(strings.NewReader("data: first\n\ndata: second\n\n"))

				ev1, err := r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev1.Data).To(Equal("first"))

				ev2, err := r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev2.Data).To(Equal("second"))

				_, err = r.Next()
				Expect(err).To(MatchError(io.EOF))
			})

			It("parses event type and ID", func() {
				r := NewReader(strings.NewReader("event: delta\nid: 42\ndata: {\"x\":1}\n\n"))

				ev, err := r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev.Type).To(Equal("delta"))
				Expect(ev.ID).To(Equal("42"))
				Expect(ev.Data).To(Equal("{\"x\":1}"))
			})

			It("joins multiple data lines with newline", func() {
				r := NewReader(strings.NewReader("data: line one\ndata: line two\ndata: line three\n\n"))

				ev, err := r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev.Data).To(Equal("line one\nline two\nline three"))
			})

			It("skips comment lines", func() {
				r := NewReader(strings.NewReader(": keep-alive\ndata: payload\n\n"))

				ev, err := r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev.Data).To(Equal("payload"))
			})

			It("skips leading blank lines", func() {
				r := NewReader(strings.NewReader("\n\n\ndata: payload\n\n"))

				ev, err := r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev.Data).To(Equal("payload"))
			})

			It("flushes an in-progress event at EOF", func() {
				r := NewReader(strings.NewReader("data: no trailing blank"))

				ev, err := r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev.Data).To(Equal("no trailing blank"))

				_, err = r.Next()
				Expect(err).To(MatchError(io.EOF))
			})
		})

		Context("with the [DONE] sentinel", func() {
			It("terminates without surfacing the sentinel", func() {
				input := "data: {\"choices\":[{\"delta\":{\"content\":\"Hello\"}}]}\n\n" +
					"data: [DONE]\n\n"
				r := NewReader(strings.NewReader(input))

				ev, err := r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev.Data).To(ContainSubstring("Hello"))

				_, err = r.Next()
				Expect(err).To(MatchError(io.EOF))
			})

			It("ignores events after the sentinel", func() {
				input := "data: [DONE]\n\ndata: {\"choices\":[]}\n\n"
				r := NewReader(strings.NewReader(input))

				_, err := r.Next()
				Expect(err).To(MatchError(io.EOF))

				_, err = r.Next()
				Expect(err).To(MatchError(io.EOF))
			})

			It("trims surrounding whitespace before matching", func() {
				r := NewReader(strings.NewReader("data:  [DONE] \n\n"))

				_, err := r.Next()
				Expect(err).To(MatchError(io.EOF))
			})

			It("matches a sentinel with no trailing blank line", func() {
				input := "data: {\"choices\":[{\"delta\":{\"content\":\"x\"}}]}\n\ndata: [DONE]\n"
				r := NewReader(strings.NewReader(input))

				ev, err := r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev.Data).To(ContainSubstring("x"))

				_, err = r.Next()
				Expect(err).To(MatchError(io.EOF))
			})
		})

		Context("with events split across transport chunks", func() {
			It("reassembles an event whose lines arrive in separate reads", func() {
				// One byte per Read forces every possible chunk boundary.
				r := NewReader(iotest.OneByteReader(strings.NewReader("data: res\ndata: olução\n\ndata: [DONE]\n\n")))

				ev, err := r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev.Data).To(Equal("res\nolução"))

				_, err = r.Next()
				Expect(err).To(MatchError(io.EOF))
			})
		})

		Context("with an empty source", func() {
			It("returns io.EOF immediately", func() {
				r := NewReader(strings.NewReader(""))

				_, err := r.Next()
				Expect(err).To(MatchError(io.EOF))
			})
		})
	})
})
