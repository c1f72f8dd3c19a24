package askcmder

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAskCmd(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ask Command Suite")
}

var _ = Describe("NewAskCmd", func() {
	It("requires at least one argument", func() {
		cmd := NewAskCmd()
		Expect(cmd.Args(cmd, []string{})).To(HaveOccurred())
		Expect(cmd.Args(cmd, []string{"why?"})).NotTo(HaveOccurred())
	})

	It("registers the chat and markdown flags", func() {
		cmd := NewAskCmd()

		for _, name := range []string{"base-url", "api-key", "model", "temperature", "show-reasoning", "timeout", "markdown"} {
			Expect(cmd.Flags().Lookup(name)).NotTo(BeNil(), "missing flag %s", name)
		}
	})

	It("defaults markdown rendering on", func() {
		cmd := NewAskCmd()
		f := cmd.Flags().Lookup("markdown")
		Expect(f.DefValue).To(Equal("true"))
	})
})
