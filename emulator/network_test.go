package emulator

import (
	"strconv"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/memory"
)

func parseImage(text string) (image []memory.Value) {
	for _, word := range strings.Split(text, ",") {
		v, err := strconv.ParseInt(word, 10, 64)
		Expect(err).NotTo(HaveOccurred())
		image = append(image, memory.Value(v))
	}
	return
}

const (
	amplifierA = "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0"
	amplifierB = "3,23,3,24,1002,24,10,24,1002,23,-1,23,101,5,23,23,1,24,23,23,4,23,99,0,0"
	amplifierC = "3,31,3,32,1002,32,10,32,1001,31,-2,31,1007,31,0,33,1002,33,7,33,1,33,31,31,1,32,31,31,4,31,99,0,0,0"

	feedbackA = "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5"
	feedbackB = "3,52,1001,52,-5,52,3,53,1,52,56,54,1007,54,5,55,1005,55,26,1001,54,-5,54,1105,1,12,1,53,54,53,1008,54,0,55,1001,55,1,55,2,53,55,53,4,53,1001,56,-1,56,1005,56,6,99,0,0,0,0,10"
)

var _ = Describe("Network", func() {
	Context("without feedback", func() {
		DescribeTable("passes the signal through every node",
			func(program string, phases []memory.Value, expected memory.Value) {
				net := NewNetwork(parseImage(program), phases, false)
				Expect(net.Nodes).To(HaveLen(len(phases)))

				signal, err := net.Run(0)
				Expect(err).NotTo(HaveOccurred())
				Expect(signal).To(Equal(expected))
			},
			Entry("first amplifier", amplifierA, []memory.Value{4, 3, 2, 1, 0}, memory.Value(43210)),
			Entry("second amplifier", amplifierB, []memory.Value{0, 1, 2, 3, 4}, memory.Value(54321)),
			Entry("third amplifier", amplifierC, []memory.Value{1, 0, 4, 3, 2}, memory.Value(65210)),
		)

		It("finds the best phase ordering", func() {
			best, signal, err := BestPhases(parseImage(amplifierA), []memory.Value{0, 1, 2, 3, 4}, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(best).To(Equal([]memory.Value{4, 3, 2, 1, 0}))
			Expect(signal).To(Equal(memory.Value(43210)))
		})

		It("runs each node on its own memory", func() {
			net := NewNetwork(parseImage(amplifierA), []memory.Value{0, 1}, false)
			Expect(net.Nodes[0].Memory()).NotTo(BeIdenticalTo(net.Nodes[1].Memory()))

			_, err := net.Run(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(net.Nodes[0].Memory().Equal(net.Nodes[1].Memory())).To(BeFalse())
		})
	})

	Context("with feedback", func() {
		DescribeTable("circulates until the first node halts",
			func(program string, phases []memory.Value, expected memory.Value) {
				signal, err := NewNetwork(parseImage(program), phases, true).Run(0)
				Expect(err).NotTo(HaveOccurred())
				Expect(signal).To(Equal(expected))
			},
			Entry("first program", feedbackA, []memory.Value{9, 8, 7, 6, 5}, memory.Value(139629729)),
			Entry("second program", feedbackB, []memory.Value{9, 7, 8, 5, 6}, memory.Value(18216)),
		)

		It("finds the best phase ordering", func() {
			best, signal, err := BestPhases(parseImage(feedbackA), []memory.Value{5, 6, 7, 8, 9}, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(best).To(Equal([]memory.Value{9, 8, 7, 6, 5}))
			Expect(signal).To(Equal(memory.Value(139629729)))
		})
	})

	Context("failures", func() {
		It("reports a network without nodes", func() {
			_, err := NewNetwork(parseImage(amplifierA), nil, false).Run(0)
			Expect(err).To(MatchError(ErrNetworkSilent))
		})

		It("reports a node that halts without output", func() {
			_, err := NewNetwork([]memory.Value{3, 0, 99}, []memory.Value{1}, false).Run(0)
			Expect(err).To(MatchError(ErrNetworkSilent))
		})

		It("reports a node that faults", func() {
			_, err := NewNetwork([]memory.Value{3, 0, 3, 0, 3, 0, 99}, []memory.Value{1}, false).Run(0)
			Expect(err).To(MatchError(cpu.ErrInputRead))
		})

		It("stops the phase search on the first failure", func() {
			best, _, err := BestPhases([]memory.Value{45}, []memory.Value{0, 1}, false)
			Expect(err).To(MatchError(cpu.ErrInvalidOpcode))
			Expect(best).To(BeNil())
		})
	})
})
