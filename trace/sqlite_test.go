package trace

import (
	"database/sql"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/memory"
)

var _ = Describe("SQLiteRecorder", func() {
	var (
		path string
		rec  *SQLiteRecorder
	)

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "trace.sqlite3")

		var err error
		rec, err = NewSQLiteRecorder(path)
		Expect(err).NotTo(HaveOccurred())
		rec.Processor = "node-0"
	})

	AfterEach(func() {
		Expect(rec.Close()).To(Succeed())
	})

	It("records a row per completed step", func() {
		p := cpu.NewProcessor(memory.FromSlice(countdown))
		p.AcceptHook(rec)
		Expect(p.Execute()).To(Succeed())
		Expect(rec.Pending()).To(Equal(11))

		Expect(rec.Flush()).To(Succeed())
		Expect(rec.Pending()).To(BeZero())

		steps, err := rec.Steps()
		Expect(err).NotTo(HaveOccurred())
		Expect(steps).To(HaveLen(11))

		Expect(steps[0]).To(Equal(Step{
			Processor: "node-0",
			Tick:      0,
			Ip:        0,
			Opcode:    "add",
			Modes:     "immediate,immediate,positional",
			State:     "continue",
		}))
		Expect(steps[1]).To(Equal(Step{
			Processor: "node-0",
			Tick:      1,
			Ip:        4,
			Opcode:    "out",
			Modes:     "positional",
			Output:    sql.NullInt64{Int64: 3, Valid: true},
			State:     "continue",
		}))
		for i, step := range steps {
			Expect(step.Tick).To(Equal(i))
		}
		Expect(steps[10].Opcode).To(Equal("halt"))
		Expect(steps[10].Modes).To(BeEmpty())
		Expect(steps[10].State).To(Equal("terminate"))
	})

	It("flushes automatically per batch", func() {
		rec.BatchSize = 4

		p := cpu.NewProcessor(memory.FromSlice(countdown))
		p.AcceptHook(rec)
		Expect(p.Execute()).To(Succeed())
		Expect(rec.Err()).NotTo(HaveOccurred())
		Expect(rec.Pending()).To(Equal(3))

		steps, err := rec.Steps()
		Expect(err).NotTo(HaveOccurred())
		Expect(steps).To(HaveLen(8))
	})

	It("records the relative base after the step", func() {
		p := cpu.NewProcessor(memory.FromSlice([]memory.Value{109, 19, 204, -19, 99}))
		p.AcceptHook(rec)
		Expect(p.Execute()).To(Succeed())
		Expect(rec.Flush()).To(Succeed())

		steps, err := rec.Steps()
		Expect(err).NotTo(HaveOccurred())
		Expect(steps).To(HaveLen(3))
		Expect(steps[0].RelativeBase).To(Equal(int64(19)))
		Expect(steps[1].Modes).To(Equal("relative"))
		Expect(steps[1].Output.Valid).To(BeTrue())
	})

	It("refuses to overwrite a trace", func() {
		_, err := NewSQLiteRecorder(path)
		Expect(err).To(MatchError(ErrTraceExists(path)))
	})

	It("flushes on close", func() {
		p := cpu.NewProcessor(memory.FromSlice(countdown))
		p.AcceptHook(rec)
		Expect(p.Execute()).To(Succeed())
		Expect(rec.Close()).To(Succeed())

		db, err := sql.Open("sqlite3", path)
		Expect(err).NotTo(HaveOccurred())
		defer db.Close()

		var count int
		Expect(db.QueryRow(`SELECT COUNT(*) FROM trace`).Scan(&count)).To(Succeed())
		Expect(count).To(Equal(11))

		// Closing twice is harmless.
		Expect(rec.Close()).To(Succeed())
	})

	It("names the database when no path is given", func() {
		dir := GinkgoT().TempDir()
		cwd, err := os.Getwd()
		Expect(err).NotTo(HaveOccurred())
		Expect(os.Chdir(dir)).To(Succeed())
		defer os.Chdir(cwd)

		named, err := NewSQLiteRecorder("")
		Expect(err).NotTo(HaveOccurred())
		Expect(named.Path()).To(MatchRegexp(`^intcode_trace_[0-9a-v]{20}\.sqlite3$`))
		Expect(named.Close()).To(Succeed())
	})
})
