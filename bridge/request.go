package bridge

import (
	"context"
	"time"

	"github.com/c360/opcbridge/engine"
	"github.com/c360/opcbridge/errors"
	"github.com/c360/opcbridge/ua"
)

// serviceRequest is the one template every façade operation follows: prepare
// an arena slot, hold the guard just long enough to hand the request to the
// engine's asynchronous send primitive, release, and suspend on the slot.
//
// The completion callback registered with the engine runs inside a later
// drive call, on whatever goroutine is driving; it only resolves the arena
// slot and must never fail, even when the awaiting caller is long gone.
func serviceRequest[R ua.Response](ctx context.Context, c *Client, service string, req ua.Request) (R, error) {
	var zero R

	start := time.Now()
	c.metrics.RecordRequestStarted()

	token, future := c.arena.Prepare()

	err := c.handle.Submit(service, func(eng engine.Engine) error {
		c.logger.Debug("sending request", "service", service)

		status := eng.SendAsync(req, func(resp ua.Response) {
			c.arena.Execute(token, resp)
		})
		return errors.VerifyGood(service, status)
	})
	if err != nil {
		// The request never reached the engine; no callback will fire.
		c.arena.Abandon(token)
		c.metrics.RecordRequestCompleted(service, "error", time.Since(start))
		return zero, err
	}

	select {
	case <-ctx.Done():
		// Withdraw interest only. The in-flight operation is not canceled;
		// its eventual completion is discarded by the arena.
		c.arena.Abandon(token)
		c.metrics.RecordRequestCompleted(service, "canceled", time.Since(start))
		return zero, ctx.Err()

	case done := <-future:
		if done.err != nil {
			c.metrics.RecordRequestCompleted(service, "error", time.Since(start))
			return zero, done.err
		}

		resp, ok := done.resp.(R)
		if !ok {
			c.metrics.RecordRequestCompleted(service, "error", time.Since(start))
			return zero, errors.Internalf(service, "unexpected response type %T", done.resp)
		}

		if err := errors.VerifyGood(service, resp.ServiceResult()); err != nil {
			c.logger.Debug("request failed", "service", service, "status", resp.ServiceResult())
			c.metrics.RecordRequestCompleted(service, "service_failure", time.Since(start))
			return zero, err
		}

		c.logger.Debug("request completed", "service", service)
		c.metrics.RecordRequestCompleted(service, "ok", time.Since(start))
		return resp, nil
	}
}

// fireAndForget hands a request to the engine with a completion callback that
// does nothing. Used by child-resource teardown, where no caller is left to
// receive an outcome: errors are logged, never propagated, and the dropping
// call site is never blocked on completion.
func fireAndForget(c *Client, service string, req ua.Request) {
	err := c.handle.Submit(service, func(eng engine.Engine) error {
		c.logger.Debug("sending fire-and-forget request", "service", service)

		status := eng.SendAsync(req, func(ua.Response) {
			// Nothing to do here.
			c.logger.Debug("fire-and-forget request completed", "service", service)
		})
		return errors.VerifyGood(service, status)
	})
	if err != nil {
		c.logger.Debug("fire-and-forget request not sent", "service", service, "error", err)
	}
}
