// Package modals modela los diálogos de alta, edición y baja de mascotas del
// dashboard de admin como máquinas de estado:
//
//	closed -> open -> submitting -> closed (committed)
//	              \-> closed (cancelled)
//
// Cada Open arranca una sesión nueva. Un envío que termina después de que su
// sesión terminó (Close u otro Open) no toca el estado del modal.
package modals

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pet-adoption/internal/dashboard"
	"pet-adoption/internal/forms/submit"
	"pet-adoption/internal/forms/validate"
)

type State int

const (
	Closed State = iota
	Open
	Submitting
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Submitting:
		return "submitting"
	default:
		return "closed"
	}
}

type Outcome int

const (
	None Outcome = iota
	Committed
	Cancelled
)

// SampleLatency es la demora fija de las maquetas originales.
const SampleLatency = 1500 * time.Millisecond

// FormField recibe errores que no son de un campo puntual.
const FormField = "form"

var (
	ErrNotOpen      = errors.New("modals: not open")
	ErrInvalid      = errors.New("modals: draft has errors")
	ErrNotConfirmed = errors.New("modals: confirmation text does not match")
	// ErrClosed: la sesión del modal terminó antes de completar el envío.
	ErrClosed = errors.New("modals: closed before completion")
	// ErrSavedAfterClose: el modal se cerró con el envío en vuelo pero la
	// mutación llegó a aplicarse; el resultado acompaña al error.
	ErrSavedAfterClose = fmt.Errorf("%w: change was saved", ErrClosed)
)

type Option func(*machine)

// WithLatency agrega una demora antes de aplicar la mutación.
func WithLatency(d time.Duration) Option {
	return func(m *machine) { m.latency = d }
}

// machine es el ciclo de vida común a los tres modales.
type machine struct {
	mu      sync.Mutex
	state   State
	outcome Outcome
	session uint64
	errs    validate.Errors
	latency time.Duration
}

func (m *machine) configure(opts []Option) {
	m.errs = validate.Errors{}
	for _, o := range opts {
		o(m)
	}
}

func (m *machine) openLocked(fields ...string) {
	m.session++
	m.state = Open
	m.outcome = None
	m.errs = validate.NewErrors(fields...)
}

func (m *machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *machine) Outcome() Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outcome
}

func (m *machine) Errors() validate.Errors {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errs.Clone()
}

// Close cierra como cancelado. Un envío en curso se descarta.
func (m *machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Closed {
		return
	}
	m.session++
	m.state = Closed
	m.outcome = Cancelled
}

// begin pasa a submitting y devuelve la sesión a la que pertenece el envío.
func (m *machine) beginLocked() uint64 {
	m.state = Submitting
	return m.session
}

// wait aplica la demora configurada y confirma que la sesión sigue viva.
func (m *machine) wait(ctx context.Context, session uint64) error {
	if m.latency > 0 {
		t := time.NewTimer(m.latency)
		select {
		case <-ctx.Done():
			t.Stop()
			m.finish(session, ctx.Err())
			return ctx.Err()
		case <-t.C:
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session != session {
		return ErrClosed
	}
	return nil
}

// finish cierra el envío. Con error vuelve a open y muestra el mensaje.
// Si la sesión ya no es la actual el modal no cambia: devuelve
// ErrSavedAfterClose cuando la mutación se aplicó y ErrClosed cuando no.
func (m *machine) finish(session uint64, err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session != session {
		if err == nil {
			return ErrSavedAfterClose
		}
		return ErrClosed
	}
	if err != nil {
		m.state = Open
		m.errs.Set(FormField, describe(err))
		return err
	}
	m.session++
	m.state = Closed
	m.outcome = Committed
	return nil
}

func describe(err error) string {
	switch {
	case errors.Is(err, dashboard.ErrNotFound):
		return "This pet no longer exists"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return validate.MsgNetwork
	}
	return submit.Describe(err)
}
