package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joacominatel/datafetch/internal/config"
	"github.com/joacominatel/datafetch/internal/database"
	"github.com/joacominatel/datafetch/internal/render"
	"go.uber.org/zap"
)

// Lines printed to the output as a run progresses.
const (
	MsgConnected = "Database connection successful!"
	MsgLoaded    = "Data loaded successfully!"
	errorPrefix  = "Error: "
)

// ErrAlreadyRun is returned when Run is called on a Fetcher a second time.
var ErrAlreadyRun = errors.New("fetcher already ran")

// State tracks the connection lifecycle of a Fetcher.
type State int

const (
	StateUnconnected State = iota
	StateConnected
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUnconnected:
		return "unconnected"
	case StateConnected:
		return "connected"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Outcome is the result of one run: either a result set or an error.
type Outcome struct {
	Result *database.ResultSet
	Err    error
}

// OK reports whether the run succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Fetcher runs one connect, query, preview, release cycle.
type Fetcher struct {
	cfg         config.Config
	driver      database.Driver
	query       string
	out         io.Writer
	logger      *zap.Logger
	previewRows int
	state       State
	ran         bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithOutput sets where progress lines and the preview are written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(f *Fetcher) {
		f.out = w
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// New creates a Fetcher that will run query against the database described by cfg.
func New(cfg config.Config, driver database.Driver, query string, opts ...Option) *Fetcher {
	f := &Fetcher{
		cfg:         cfg,
		driver:      driver,
		query:       query,
		out:         os.Stdout,
		logger:      zap.NewNop(),
		previewRows: render.PreviewRows,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns the current connection state.
func (f *Fetcher) State() State {
	return f.state
}

// Run connects, executes the query, prints the preview and releases the
// connection. The connection is released on every path that opened it.
func (f *Fetcher) Run(ctx context.Context) (outcome Outcome) {
	if f.ran {
		return Outcome{Err: ErrAlreadyRun}
	}
	f.ran = true

	target := zap.String("target", f.cfg.DisplayString())
	f.logger.Debug("connecting", target)

	start := time.Now()
	if err := f.driver.Connect(ctx, f.cfg.DSN()); err != nil {
		f.logger.Info("connect failed", target, zap.Error(err))
		return Outcome{Err: &ErrConnection{Cause: err}}
	}
	f.state = StateConnected
	f.logger.Info("connected", target,
		zap.String("database", f.driver.DatabaseName()),
		zap.Duration("elapsed", time.Since(start)))

	defer func() {
		if err := f.release(); err != nil && outcome.OK() {
			outcome = Outcome{Err: &ErrConnection{Cause: err}}
		}
	}()

	f.println(MsgConnected)

	rs, err := f.driver.ExecuteQuery(ctx, f.query)
	if err != nil {
		f.logger.Info("query failed", zap.String("query", f.query), zap.Error(err))
		return Outcome{Err: &ErrQuery{Query: f.query, Cause: err}}
	}
	f.logger.Info("query complete",
		zap.Int("rows", rs.RowCount),
		zap.Int("columns", len(rs.Columns)),
		zap.Duration("elapsed", rs.Duration))

	f.println(MsgLoaded)

	if err := render.Preview(f.out, rs, f.previewRows); err != nil {
		return Outcome{Err: fmt.Errorf("print preview: %w", err)}
	}

	return Outcome{Result: rs}
}

func (f *Fetcher) release() error {
	err := f.driver.Close()
	f.state = StateClosed
	if err != nil {
		f.logger.Warn("close failed", zap.Error(err))
		return err
	}
	f.logger.Debug("connection released")
	return nil
}

func (f *Fetcher) println(line string) {
	_, _ = fmt.Fprintln(f.out, line)
}

// Report writes the single failure line for a failed outcome. Successful
// outcomes have already been reported by Run.
func Report(w io.Writer, o Outcome) {
	if o.OK() {
		return
	}
	_, _ = fmt.Fprintln(w, errorPrefix+o.Err.Error())
}
