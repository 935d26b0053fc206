package dispatcher

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"hello-api/internal/models"
	"hello-api/internal/router"
	"hello-api/pkg/lambda"
)

// Dispatcher routes canonical requests to handlers and turns every failure into
// a well-formed response. It holds no per-request state and is safe for
// concurrent use once its route table is built.
type Dispatcher struct {
	table  *router.Table
	logger logrus.FieldLogger
}

// New creates a dispatcher over a fully registered route table
func New(table *router.Table, logger logrus.FieldLogger) *Dispatcher {
	if table == nil {
		table = router.NewTable()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Dispatcher{table: table, logger: logger}
}

// Table returns the route table the dispatcher serves
func (d *Dispatcher) Table() *router.Table {
	return d.table
}

// Dispatch serves a canonical request (direct mode)
func (d *Dispatcher) Dispatch(ctx context.Context, req *models.Request) *models.Response {
	inv := d.begin()
	inv.request(req)
	inv.to(StageCanonicalized)

	resp := d.serve(ctx, inv, req)

	inv.to(StageDone)
	inv.complete(resp.StatusCode())
	return resp
}

// DispatchEvent serves a raw API Gateway invocation payload (event mode).
// It always returns a reply; failures become 4xx/5xx replies.
func (d *Dispatcher) DispatchEvent(ctx context.Context, payload []byte) lambda.Reply {
	inv := d.begin()

	var resp *models.Response
	version := lambda.PayloadV1

	req, info, err := lambda.Canonicalize(payload)
	inv.to(StageCanonicalized)
	if err != nil {
		inv.log.WithError(err).Warn("Rejected malformed invocation event")
		inv.to(StageFailed)
		resp = models.NewErrorResponse(http.StatusBadRequest, models.ErrorKindMalformedEvent)
	} else {
		version = info.Version
		inv.request(req)
		inv.log = inv.log.WithField("payload_version", version)
		resp = d.serve(ctx, inv, req)
	}

	reply := lambda.SerializeFor(resp, version)
	inv.to(StageSerialized)
	inv.to(StageDone)
	inv.complete(reply.StatusCode)
	return reply
}

// serve runs routing and the handler, starting from the Canonicalized stage
func (d *Dispatcher) serve(ctx context.Context, inv *invocation, req *models.Request) *models.Response {
	res := d.table.Resolve(req.Method(), req.Path())
	inv.log = inv.log.WithFields(logrus.Fields{
		"route":   res.Template,
		"outcome": res.Outcome.String(),
	})
	inv.to(StageRouted)

	switch res.Outcome {
	case router.NotFound:
		return models.NewErrorResponse(http.StatusNotFound, models.ErrorKindNotFound)
	case router.MethodNotAllowed:
		return models.NewErrorResponse(http.StatusMethodNotAllowed, models.ErrorKindMethodNotAllowed).
			WithHeader("Allow", strings.Join(res.Allowed, ", "))
	}

	resp, err := d.invoke(ctx, res, req)
	inv.to(StageHandled)
	if err != nil {
		entry := inv.log.WithError(err)
		if fault, ok := err.(*HandlerFault); ok && fault.Stack != nil {
			entry = entry.WithField("stack_trace", string(fault.Stack))
		}
		entry.Error("Handler fault")
		inv.to(StageFailed)
		return models.NewErrorResponse(http.StatusInternalServerError, models.ErrorKindInternal)
	}

	return resp
}

// invoke calls the handler and converts errors, panics and unusable responses into a HandlerFault
func (d *Dispatcher) invoke(ctx context.Context, res router.Resolution, req *models.Request) (resp *models.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = &HandlerFault{Route: res.Template, Panic: r, Stack: debug.Stack()}
		}
	}()

	resp, err = res.Handler.Serve(ctx, req, res.Params)
	switch {
	case err != nil:
		return nil, &HandlerFault{Route: res.Template, Err: err}
	case resp == nil:
		return nil, &HandlerFault{Route: res.Template, Err: ErrNilResponse}
	case resp.StatusCode() < 100 || resp.StatusCode() > 599:
		return nil, &HandlerFault{Route: res.Template, Err: fmt.Errorf("%w: status %d", ErrInvalidResponse, resp.StatusCode())}
	}
	return resp, nil
}

// invocation tracks the stage of one request for logging
type invocation struct {
	stage Stage
	start time.Time
	log   logrus.FieldLogger
}

func (d *Dispatcher) begin() *invocation {
	return &invocation{stage: StageReceived, start: time.Now(), log: d.logger}
}

func (inv *invocation) request(req *models.Request) {
	inv.log = inv.log.WithFields(logrus.Fields{
		"request_id": req.RequestID(),
		"method":     req.Method().String(),
		"path":       req.Path(),
	})
}

func (inv *invocation) to(stage Stage) {
	if !CanTransition(inv.stage, stage) {
		inv.log.WithFields(logrus.Fields{
			"from": inv.stage.String(),
			"to":   stage.String(),
		}).Warn("Unexpected invocation stage transition")
	}
	inv.stage = stage
	inv.log.WithFields(logrus.Fields{
		"stage":      stage.String(),
		"elapsed_ms": float64(time.Since(inv.start).Nanoseconds()) / 1000000,
	}).Debug("Invocation stage")
}

// complete writes the single completion entry for the invocation
func (inv *invocation) complete(status int) {
	entry := inv.log.WithFields(logrus.Fields{
		"status_code": status,
		"latency_ms":  float64(time.Since(inv.start).Nanoseconds()) / 1000000,
	})
	switch {
	case status >= 500:
		entry.Error("Invocation completed")
	case status >= 400:
		entry.Warn("Invocation completed")
	default:
		entry.Info("Invocation completed")
	}
}
