package trace

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/memory"
)

var _ = Describe("OpcodeCounter", func() {
	var p *cpu.Processor

	BeforeEach(func() {
		p = cpu.NewProcessor(memory.FromSlice(countdown))
	})

	It("counts every completed step", func() {
		counter := NewOpcodeCounter(nil)
		p.AcceptHook(counter)
		Expect(p.Execute()).To(Succeed())

		Expect(counter.Names()).To(Equal([]string{"add", "out", "jnz", "halt"}))
		Expect(counter.Count("add")).To(Equal(uint64(4)))
		Expect(counter.Count("out")).To(Equal(uint64(3)))
		Expect(counter.Count("jnz")).To(Equal(uint64(3)))
		Expect(counter.Count("halt")).To(Equal(uint64(1)))
		Expect(counter.Count("mul")).To(BeZero())
		Expect(counter.Total()).To(Equal(uint64(11)))
	})

	It("counts selected opcodes", func() {
		counter := NewOpcodeCounter(OpcodeFilter(cpu.OP_JNZ))
		p.AcceptHook(counter)
		Expect(p.Execute()).To(Succeed())

		Expect(counter.Names()).To(Equal([]string{"jnz"}))
		Expect(counter.Total()).To(Equal(uint64(3)))
	})

	It("skips failed steps", func() {
		counter := NewOpcodeCounter(nil)
		p = cpu.NewProcessor(memory.FromSlice([]memory.Value{104, 1, 3, 0}))
		p.AcceptHook(counter)
		Expect(p.Execute()).To(MatchError(cpu.ErrInputRead))

		Expect(counter.Names()).To(Equal([]string{"out"}))
		Expect(counter.Total()).To(Equal(uint64(1)))
	})

	It("writes a summary", func() {
		counter := NewOpcodeCounter(nil)
		p.AcceptHook(counter)
		Expect(p.Execute()).To(Succeed())

		var buf bytes.Buffer
		n, err := counter.WriteTo(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int64(buf.Len())))
		Expect(buf.String()).To(Equal("add   4\nout   3\njnz   3\nhalt  1\n"))
	})
})
