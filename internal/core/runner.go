package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"dmclient/config"
	"dmclient/internal/metrics"
	"dmclient/internal/session"
	"dmclient/util"
)

// PacingDelay is the pause after every scripted message.  It keeps the
// client from flooding the server and is not configurable.
const PacingDelay = 5 * time.Second

// Status lines reported during a run.
const (
	msgNotConfigured = "required program configuration is not defined"
	msgConnecting    = "connecting to the server..."
	msgConnected     = "connected"
	msgNoConnection  = "no connection to the server"
	msgReplied       = "server replied (see below)"
	msgNoReply       = "no response received from the server"
	msgClosing       = "closing the connection to the server..."
	msgClosed        = "connection closed"
	msgFinished      = "program finished"
)

// Pacer blocks between scripted messages.
type Pacer interface {
	Pause(d time.Duration)
}

// PacerFunc adapts a function to [Pacer].
type PacerFunc func(d time.Duration)

// Pause calls f(d).
func (f PacerFunc) Pause(d time.Duration) { f(d) }

var (
	// SleepPacer blocks the calling goroutine for the full duration.
	SleepPacer Pacer = PacerFunc(time.Sleep)
	// NoPause returns immediately.
	NoPause Pacer = PacerFunc(func(time.Duration) {})
)

// Runner drives one session: connect, send the scripted messages,
// report what the server sent back, close.  It never retries.
type Runner struct {
	Outcome   config.Outcome
	Connector session.Connector
	Pacer     Pacer
	Logger    *util.Logger
	Metrics   *metrics.Collector

	// Stdout receives echoed messages and server lines; defaults to
	// os.Stdout when nil.
	Stdout io.Writer
}

var _ Mode = (*Runner)(nil)

func (r *Runner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *Runner) pacer() Pacer {
	if r.Pacer != nil {
		return r.Pacer
	}
	return SleepPacer
}

// Run executes the session and discards the result.
func (r *Runner) Run(ctx context.Context) error {
	_, err := r.Execute(ctx)
	return err
}

// Execute runs the session once.  An incomplete configuration or an
// unreachable server is reported and ends the run cleanly; errors
// raised by the session while connecting, sending or closing are
// returned as they are.
func (r *Runner) Execute(ctx context.Context) (session.Result, error) {
	var res session.Result

	cfg, ok := r.Outcome.Complete()
	if !ok {
		r.Logger.Info(msgNotConfigured)
		if missing := r.Outcome.Missing(); len(missing) > 0 {
			r.Logger.Verbose("missing [%s] settings: %s",
				config.SectionConnection, strings.Join(missing, ", "))
		}
		r.Logger.Info(msgFinished)
		return res, nil
	}

	if c, ok := r.Connector.(io.Closer); ok {
		defer c.Close()
	}

	r.Logger.Info(msgConnecting)
	r.Logger.Verbose("server %s, user %s, join %s", cfg.Addr(), cfg.User, cfg.JoinServer)

	sess, err := r.Connector.Connect(ctx, session.Params{
		Host:       cfg.Host,
		Port:       cfg.Port,
		User:       cfg.User,
		Password:   cfg.Password,
		JoinServer: cfg.JoinServer,
	})
	if err != nil {
		return res, fmt.Errorf("connect to %s: %w", cfg.Addr(), err)
	}
	if !sess.Connected() {
		r.Logger.Info(msgNoConnection)
		r.Logger.Info(msgFinished)
		return res, nil
	}
	res.Connected = true
	r.Logger.Info(msgConnected)

	out := r.stdout()
	for _, msg := range cfg.Messages {
		if err := sess.Send(msg); err != nil {
			sess.Close() //nolint:errcheck
			return res, err
		}
		res.Sent++
		fmt.Fprintln(out, msg)
		r.pacer().Pause(PacingDelay)
	}

	res.Received = sess.Lines()
	if len(res.Received) > 0 {
		r.Logger.Info(msgReplied)
		for _, line := range res.Received {
			fmt.Fprintln(out, line)
		}
	} else {
		r.Logger.Info(msgNoReply)
	}

	r.Logger.Info(msgClosing)
	if err := sess.Close(); err != nil {
		return res, err
	}
	r.Logger.Info(msgClosed)

	r.Logger.Debug("session metrics: %s", r.Metrics.JSON())
	r.Logger.Info(msgFinished)
	return res, nil
}
