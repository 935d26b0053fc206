package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/sirupsen/logrus"

	"hello-api/internal/config"
	"hello-api/internal/dispatcher"
)

// LambdaHandler serves API Gateway invocations (event mode). It implements the
// aws-lambda-go Handler interface so the raw payload reaches the canonicalizer.
type LambdaHandler struct {
	dispatcher  *dispatcher.Dispatcher
	logger      logrus.FieldLogger
	invocations atomic.Int64
	lastUsed    atomic.Int64
}

// NewLambdaHandler creates the event mode entry point. The dispatcher must be
// fully built before the first invocation.
func NewLambdaHandler(d *dispatcher.Dispatcher, logger logrus.FieldLogger, function *config.ServerlessConfig) *LambdaHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if function == nil {
		function = config.GetServerlessConfig()
	}
	return &LambdaHandler{
		dispatcher: d,
		logger: logger.WithFields(logrus.Fields{
			"function_name": function.FunctionName,
			"stage":         function.Stage,
		}),
	}
}

// Invoke handles one invocation payload and returns the encoded reply. Request
// failures are replies, not errors; an error here means the reply could not be encoded.
func (h *LambdaHandler) Invoke(ctx context.Context, payload []byte) ([]byte, error) {
	now := time.Now()
	count := h.invocations.Add(1)
	previous := h.lastUsed.Swap(now.UnixNano())

	fields := logrus.Fields{
		"cold_start": count == 1,
		"invocation": count,
	}
	if previous != 0 {
		fields["idle_ms"] = now.Sub(time.Unix(0, previous)).Milliseconds()
	}
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		fields["aws_request_id"] = lc.AwsRequestID
	}
	h.logger.WithFields(fields).Debug("Invocation received")

	reply := h.dispatcher.DispatchEvent(ctx, payload)

	data, err := json.Marshal(reply)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reply: %w", err)
	}
	return data, nil
}

// Invocations returns how many invocations this process has served
func (h *LambdaHandler) Invocations() int64 {
	return h.invocations.Load()
}

// IsWarm reports whether the process has served an invocation within maxIdle
func (h *LambdaHandler) IsWarm(maxIdle time.Duration) bool {
	last := h.lastUsed.Load()
	if last == 0 {
		return false
	}
	return time.Since(time.Unix(0, last)) < maxIdle
}
