package trace

import (
	"bytes"
	"log"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/memory"
)

var _ = Describe("LogHook", func() {
	var (
		buf  bytes.Buffer
		hook *LogHook
	)

	BeforeEach(func() {
		buf.Reset()
		hook = &LogHook{Logger: log.New(&buf, "", 0), Name: "node"}
	})

	It("logs a line per step", func() {
		p := cpu.NewProcessor(memory.FromSlice(countdown))
		p.AcceptHook(hook)
		Expect(p.Execute()).To(Succeed())

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		Expect(lines).To(HaveLen(11))
		Expect(lines[0]).To(HavePrefix("node"))
		Expect(lines[0]).To(ContainSubstring("add #3 #0 14"))
		Expect(lines[0]).To(HaveSuffix("continue"))
		Expect(lines[1]).To(ContainSubstring("out 14"))
		Expect(lines[1]).To(HaveSuffix("output 3"))
		Expect(lines[10]).To(ContainSubstring("halt"))
		Expect(lines[10]).To(HaveSuffix("terminate"))
	})

	It("logs the disassembly from before the step", func() {
		// The add overwrites its own first operand.
		p := cpu.NewProcessor(memory.FromSlice([]memory.Value{1101, 7, 8, 1, 99}))
		p.AcceptHook(hook)
		Expect(p.Execute()).To(Succeed())

		Expect(buf.String()).To(ContainSubstring("add #7 #8 1"))
	})

	It("logs failures", func() {
		p := cpu.NewProcessor(memory.FromSlice([]memory.Value{3, 0}))
		p.AcceptHook(hook)
		Expect(p.Execute()).To(MatchError(cpu.ErrInputRead))

		Expect(buf.String()).To(ContainSubstring("error: "))
	})
})
