package environment_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/qexat/marrow/diag"
	"github.com/qexat/marrow/environment"
)

var _ = Describe("Environment", func() {
	It("emits a BANNER diagnostic naming a session ID at construction", func() {
		collector := &diag.Collector{}
		env := environment.New(collector, environment.Config{})

		Expect(collector.Has(diag.Banner)).To(BeTrue())
		Expect(env.SessionID.String()).NotTo(BeEmpty())
	})

	It("Run returns 0 and leaves the result on the heap for valid source", func() {
		collector := &diag.Collector{}
		env := environment.New(collector, environment.Config{})

		code := env.Run(strings.NewReader("1 + 2"), "<test>")

		Expect(code).To(Equal(0))
		Expect(env.Machine().DecodeHeapInteger(2)).To(Equal(uint64(3)))
	})

	It("Run returns the compiler's nonzero code without executing, for invalid source", func() {
		collector := &diag.Collector{}
		env := environment.New(collector, environment.Config{})

		code := env.Run(strings.NewReader("1 +"), "<test>")

		Expect(code).To(Equal(1))
	})
})
