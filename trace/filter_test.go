package trace

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/memory"
)

// countdown outputs 3, 2, 1 and halts.
var countdown = []memory.Value{
	1101, 3, 0, 14,
	4, 14,
	1001, 14, -1, 14,
	1005, 14, 4,
	99,
	0,
}

var _ = Describe("FilteredHook", func() {
	var (
		mockCtrl *gomock.Controller
		hook     *MockHook
		p        *cpu.Processor
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		hook = NewMockHook(mockCtrl)
		p = cpu.NewProcessor(memory.FromSlice(countdown))
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("forwards everything without a filter", func() {
		hook.EXPECT().Func(gomock.Any()).Times(2)

		p.AcceptHook(FilteredHook{Hook: hook})
		Expect(p.ExecuteOnce().Kind).To(Equal(cpu.STATE_CONTINUE))
	})

	It("forwards completed steps only", func() {
		hook.EXPECT().Func(gomock.Any()).Do(func(ctx cpu.HookCtx) {
			Expect(ctx.Pos).To(Equal(cpu.HOOK_POS_AFTER_STEP))
		}).Times(11)

		p.AcceptHook(FilteredHook{Filter: AfterStep, Hook: hook})
		Expect(p.Execute()).To(Succeed())
	})

	It("forwards selected opcodes", func() {
		var outputs []memory.Value
		hook.EXPECT().Func(gomock.Any()).Do(func(ctx cpu.HookCtx) {
			Expect(ctx.Instruction.Opcode).To(Equal(cpu.OP_OUT))
			Expect(ctx.State.HasOutput).To(BeTrue())
			outputs = append(outputs, ctx.State.Output)
		}).Times(3)

		p.AcceptHook(FilteredHook{Filter: OpcodeFilter(cpu.OP_OUT), Hook: hook})
		Expect(p.Execute()).To(Succeed())
		Expect(outputs).To(Equal([]memory.Value{3, 2, 1}))
	})
})
