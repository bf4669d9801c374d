// Package submit resuelve el envío de un formulario: validación completa y
// sincrónica, un solo request en vuelo y el volcado de las fallas del
// request al mapa de errores.
package submit

import (
	"context"
	"errors"
	"sync/atomic"

	"pet-adoption/internal/forms/validate"
	"pet-adoption/internal/platform/httpclient"
	"pet-adoption/internal/platform/logger"
)

// ErrBusy: ya hay un envío en vuelo para este controller.
var ErrBusy = errors.New("submit: request already in flight")

// SendFunc hace la única llamada de red del envío.
type SendFunc[D validate.Draft, R any] func(ctx context.Context, draft D) (R, error)

type Controller[D validate.Draft, R any] struct {
	Schema validate.Schema
	Send   SendFunc[D, R]
	// ErrorField recibe los errores de red/servidor. Si está vacío se usa el
	// primer campo del schema.
	ErrorField string
	Log        logger.Logger

	busy atomic.Bool
}

// Result: OK solo si se validó y el servidor respondió 2xx.
type Result[R any] struct {
	OK       bool
	Sent     bool
	Errors   validate.Errors
	Response R
}

// Validate arma el mapa de errores desde cero.
func (c *Controller[D, R]) Validate(d D) validate.Errors {
	return c.Schema.Validate(d)
}

// Busy indica si hay un envío en vuelo.
func (c *Controller[D, R]) Busy() bool { return c.busy.Load() }

// Submit valida y, solo si todo pasa, envía. Las fallas de transporte y de
// aplicación vuelven en Result.Errors; el único error devuelto es ErrBusy.
func (c *Controller[D, R]) Submit(ctx context.Context, d D) (Result[R], error) {
	if !c.busy.CompareAndSwap(false, true) {
		return Result[R]{}, ErrBusy
	}
	defer c.busy.Store(false)

	errs := c.Validate(d)
	if !errs.Valid() {
		return Result[R]{Errors: errs}, nil
	}

	resp, err := c.Send(ctx, d)
	if err != nil {
		errs.Set(c.errorField(), c.describe(err))
		return Result[R]{Sent: true, Errors: errs}, nil
	}
	return Result[R]{OK: true, Sent: true, Errors: errs, Response: resp}, nil
}

func (c *Controller[D, R]) errorField() string {
	if c.ErrorField != "" {
		return c.ErrorField
	}
	if fields := c.Schema.Fields(); len(fields) > 0 {
		return fields[0]
	}
	return "form"
}

// Describe traduce un error de red al mensaje que ve el usuario.
func Describe(err error) string {
	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		if he.Message != "" {
			return he.Message
		}
		return validate.MsgRequestFailed
	}
	return validate.MsgNetwork
}

func (c *Controller[D, R]) describe(err error) string {
	log := c.Log
	if log == nil {
		log = logger.NewNop()
	}

	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		log.Warn("submit rejected", map[string]any{"status": he.StatusCode, "message": he.Message})
	} else {
		log.Error("submit failed", map[string]any{"error": err})
	}
	return Describe(err)
}
