package chatcmder

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestChatCmd(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Chat Command Suite")
}

var _ = Describe("NewChatCmd", func() {
	It("registers the chat flags from the registry", func() {
		cmd := NewChatCmd()

		for _, name := range []string{"base-url", "api-key", "model", "temperature", "show-reasoning", "timeout"} {
			Expect(cmd.Flags().Lookup(name)).NotTo(BeNil(), "missing flag %s", name)
		}
	})

	It("rejects positional arguments", func() {
		cmd := NewChatCmd()
		Expect(cmd.Args(cmd, []string{"unexpected"})).To(HaveOccurred())
	})
})

var _ = Describe("handleSlashCommand", func() {
	var cmder *chatCommander

	BeforeEach(func() {
		cmder = &chatCommander{showReasoning: true}
	})

	It("signals exit for /exit", func() {
		Expect(cmder.handleSlashCommand("/exit", nil)).To(BeTrue())
	})

	It("toggles reasoning display for /reasoning", func() {
		Expect(cmder.handleSlashCommand("/reasoning", nil)).To(BeFalse())
		Expect(cmder.showReasoning).To(BeFalse())

		Expect(cmder.handleSlashCommand("/reasoning", nil)).To(BeFalse())
		Expect(cmder.showReasoning).To(BeTrue())
	})

	It("does not exit on an unknown command", func() {
		Expect(cmder.handleSlashCommand("/bogus", nil)).To(BeFalse())
	})
})

var _ = Describe("renderReasoningBlock", func() {
	It("prefixes the block with a reasoning header", func() {
		out := renderReasoningBlock("because of X")
		Expect(out).To(ContainSubstring("reasoning"))
		Expect(out).To(ContainSubstring("because of X"))
	})
})
