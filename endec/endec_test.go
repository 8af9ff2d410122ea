package endec_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/qexat/marrow/endec"
)

var _ = Describe("EnDec", func() {
	It("round-trips an integer through big-endian encode/decode", func() {
		buf := endec.EncodeInteger(0x0102030405060708, true)

		Expect(buf).To(Equal([8]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}))
		Expect(endec.DecodeInteger(buf)).To(Equal(uint64(0x0102030405060708)))
	})

	It("round-trips a float through big-endian encode/decode", func() {
		buf := endec.EncodeFloat(3.14159)

		Expect(endec.DecodeFloat(buf)).To(Equal(3.14159))
	})

	It("truncates to the low 64 bits, which is the identity in Go's uint64", func() {
		Expect(endec.TruncateInteger(42)).To(Equal(uint64(42)))
	})

	It("encodes zero as all-zero bytes", func() {
		Expect(endec.EncodeInteger(0, true)).To(Equal([8]byte{}))
	})
})
