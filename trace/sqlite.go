package trace

import (
	"database/sql"
	"errors"
	"log"
	"os"
	"strings"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/ezrec/intcode/cpu"
)

// Step is one recorded row of a trace.
type Step struct {
	Processor    string
	Tick         int
	Ip           int64
	Opcode       string
	Modes        string
	RelativeBase int64
	Output       sql.NullInt64
	State        string
}

// SQLiteRecorder records every completed step into a SQLite database.
// Rows are buffered and written in a transaction per batch.
type SQLiteRecorder struct {
	*sql.DB
	Processor string // Value of the processor column.
	BatchSize int    // Rows buffered before an automatic flush.

	statement *sql.Stmt
	path      string
	steps     []Step
	err       error
}

var _ cpu.Hook = (*SQLiteRecorder)(nil)

// NewSQLiteRecorder creates a trace database at path. If path is empty,
// intcode_trace_<id>.sqlite3 in the working directory is used. An existing
// file is never overwritten.
func NewSQLiteRecorder(path string) (rec *SQLiteRecorder, err error) {
	if path == "" {
		path = "intcode_trace_" + xid.New().String() + ".sqlite3"
	}

	_, err = os.Stat(path)
	if err == nil {
		err = ErrTraceExists(path)
		return
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return
	}

	rec = &SQLiteRecorder{
		DB:        db,
		BatchSize: 100000,
		path:      path,
	}

	err = rec.createTable()
	if err == nil {
		rec.statement, err = rec.Prepare(`INSERT INTO trace VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	}
	if err != nil {
		db.Close()
		rec = nil
		return
	}

	atexit.Register(func() { rec.Flush() })

	return
}

func (rec *SQLiteRecorder) createTable() (err error) {
	_, err = rec.Exec(`
		CREATE TABLE IF NOT EXISTS trace
		(
			processor     VARCHAR(200) NOT NULL,
			tick          INTEGER      NOT NULL,
			ip            INTEGER      NOT NULL,
			opcode        VARCHAR(16)  NOT NULL,
			modes         VARCHAR(64)  NOT NULL,
			relative_base INTEGER      NOT NULL,
			output        INTEGER      NULL,
			state         VARCHAR(16)  NOT NULL
		);
		CREATE INDEX IF NOT EXISTS trace_tick_index ON trace (tick);
		CREATE INDEX IF NOT EXISTS trace_opcode_index ON trace (opcode);
	`)
	return
}

// Path returns the file name of the database.
func (rec *SQLiteRecorder) Path() string {
	return rec.path
}

// Err returns the first error of an automatic flush.
func (rec *SQLiteRecorder) Err() error {
	return rec.err
}

// Pending returns the number of buffered rows.
func (rec *SQLiteRecorder) Pending() int {
	return len(rec.steps)
}

// Func buffers a row for a completed step.
func (rec *SQLiteRecorder) Func(ctx cpu.HookCtx) {
	if !AfterStep(ctx) {
		return
	}

	modes := make([]string, 0, cpu.MAX_OPERANDS)
	for n := range max(ctx.Instruction.Opcode.Operands(), 0) {
		modes = append(modes, ctx.Instruction.Modes[n].String())
	}

	step := Step{
		Processor:    rec.Processor,
		Tick:         ctx.Tick,
		Ip:           int64(ctx.Ip),
		Opcode:       ctx.Instruction.Opcode.String(),
		Modes:        strings.Join(modes, ","),
		RelativeBase: int64(ctx.Domain.RelativeBase()),
		Output:       sql.NullInt64{Int64: int64(ctx.State.Output), Valid: ctx.State.HasOutput},
		State:        ctx.State.Kind.String(),
	}

	rec.steps = append(rec.steps, step)
	if rec.BatchSize > 0 && len(rec.steps) >= rec.BatchSize {
		err := rec.Flush()
		if err != nil && rec.err == nil {
			log.Printf("trace: %v", err)
			rec.err = err
		}
	}
}

// Flush writes all the buffered rows to the database.
func (rec *SQLiteRecorder) Flush() (err error) {
	if len(rec.steps) == 0 {
		return
	}
	if rec.statement == nil {
		err = ErrRecorderClosed
		return
	}

	tx, err := rec.Begin()
	if err != nil {
		return
	}

	statement := tx.Stmt(rec.statement)
	for _, step := range rec.steps {
		_, err = statement.Exec(
			step.Processor,
			step.Tick,
			step.Ip,
			step.Opcode,
			step.Modes,
			step.RelativeBase,
			step.Output,
			step.State,
		)
		if err != nil {
			err = errors.Join(err, tx.Rollback())
			return
		}
	}

	err = tx.Commit()
	if err != nil {
		return
	}

	rec.steps = nil
	return
}

// Close flushes the buffered rows and closes the database.
func (rec *SQLiteRecorder) Close() (err error) {
	if rec.statement == nil {
		return
	}

	err = rec.Flush()
	err = errors.Join(err, rec.statement.Close(), rec.DB.Close())
	rec.statement = nil

	return
}

// Steps reads back every recorded row, in insertion order.
func (rec *SQLiteRecorder) Steps() (steps []Step, err error) {
	rows, err := rec.Query(`SELECT * FROM trace ORDER BY rowid`)
	if err != nil {
		return
	}
	defer rows.Close()

	for rows.Next() {
		var step Step
		err = rows.Scan(
			&step.Processor,
			&step.Tick,
			&step.Ip,
			&step.Opcode,
			&step.Modes,
			&step.RelativeBase,
			&step.Output,
			&step.State,
		)
		if err != nil {
			return
		}
		steps = append(steps, step)
	}

	err = rows.Err()
	return
}
