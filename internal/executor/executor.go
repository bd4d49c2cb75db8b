package executor

import (
	"io"
	"log/slog"

	"memdb/internal/apperrors"
	"memdb/internal/ast"
	"memdb/internal/codec"
	"memdb/internal/model"
)

// Executor runs Commands against a Database. It is single-threaded and
// synchronous per spec.md §5: no command is cancelled mid-flight, and each
// command either fully applies or leaves the Database untouched.
type Executor struct {
	DB     *model.Database
	Ctx    Context
	Logger *slog.Logger // optional; defaults to a discarding logger
}

// New builds an Executor over db using ctx for file/history I/O. A nil
// logger is replaced with one that discards everything.
func New(db *model.Database, ctx Context, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Executor{DB: db, Ctx: ctx, Logger: logger}
}

// Execute runs cmd against e.DB. On error, e.DB is left exactly as it was
// before the call (spec.md §5's per-command atomicity): every handler
// validates fully before mutating shared state.
func (e *Executor) Execute(cmd *ast.Command) (*Result, error) {
	res, err := e.dispatch(cmd)
	e.log(cmd, res, err)
	return res, err
}

func (e *Executor) dispatch(cmd *ast.Command) (*Result, error) {
	switch cmd.Kind {
	case ast.CmdCreate:
		return e.execCreate(cmd)
	case ast.CmdInsert:
		return e.execInsert(cmd)
	case ast.CmdDelete:
		return e.execDelete(cmd)
	case ast.CmdSelect:
		return e.execSelect(cmd)
	case ast.CmdDumpTo:
		return e.execDumpTo(cmd)
	case ast.CmdLoadFrom:
		return e.execLoadFrom(cmd)
	case ast.CmdSaveAs:
		return e.execSaveAs(cmd)
	case ast.CmdReadFrom:
		return &Result{Kind: DeferredScript, Path: cmd.Path}, nil
	default:
		return nil, apperrors.Newf(apperrors.UnexpectedToken, "unknown command kind %v", cmd.Kind)
	}
}

func (e *Executor) log(cmd *ast.Command, res *Result, err error) {
	attrs := []any{slog.String("command", cmd.Kind.String())}
	if cmd.TableName != "" {
		attrs = append(attrs, slog.String("table", cmd.TableName))
	}
	if err != nil {
		e.Logger.Error("command failed", append(attrs, slog.String("error", err.Error()))...)
		return
	}
	if res != nil && res.Kind == Rows {
		attrs = append(attrs, slog.Int("rows", len(res.Values)))
	}
	e.Logger.Info("command ok", attrs...)
}

func (e *Executor) execCreate(cmd *ast.Command) (*Result, error) {
	schema := make([]model.Column, len(cmd.Columns))
	for i, c := range cmd.Columns {
		schema[i] = model.Column{Name: c.Name, Type: c.Type}
	}

	t, err := model.NewTable(cmd.TableName, schema, cmd.KeyColumn)
	if err != nil {
		return nil, err
	}
	if err := e.DB.CreateTable(t); err != nil {
		return nil, err
	}
	return &Result{Kind: Ack, Message: "table created"}, nil
}

func (e *Executor) execDumpTo(cmd *ast.Command) (*Result, error) {
	data, err := codec.Encode(e.DB)
	if err != nil {
		return nil, apperrors.New(apperrors.EncodeError, err.Error()).WithPath(cmd.Path)
	}
	if err := e.Ctx.WriteBytes(cmd.Path, data); err != nil {
		return nil, apperrors.New(apperrors.IoError, err.Error()).WithPath(cmd.Path)
	}
	return &Result{Kind: Ack, Message: "database dumped"}, nil
}

func (e *Executor) execLoadFrom(cmd *ast.Command) (*Result, error) {
	data, err := e.Ctx.ReadBytes(cmd.Path)
	if err != nil {
		return nil, apperrors.New(apperrors.IoError, err.Error()).WithPath(cmd.Path)
	}
	db, err := codec.Decode(data)
	if err != nil {
		return nil, err
	}
	// Atomic per spec.md §5: only swap once decoding has fully succeeded.
	e.DB.Replace(db)
	return &Result{Kind: Ack, Message: "database loaded"}, nil
}

func (e *Executor) execSaveAs(cmd *ast.Command) (*Result, error) {
	var buf []byte
	for _, stmt := range e.Ctx.History() {
		buf = append(buf, []byte(stmt)...)
		buf = append(buf, '\n')
	}
	if err := e.Ctx.WriteBytes(cmd.Path, buf); err != nil {
		return nil, apperrors.New(apperrors.IoError, err.Error()).WithPath(cmd.Path)
	}
	return &Result{Kind: Ack, Message: "history saved"}, nil
}
