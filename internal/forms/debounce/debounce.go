// Package debounce posterga la validación de un campo hasta que se deja de
// escribir.
//
// Un Debouncer tiene a lo sumo un timer vivo: cada Trigger cancela el
// pendiente y arranca otra cuenta. El callback del timer lleva la generación
// con la que se programó; si un Trigger o Stop posterior le ganó, se descarta.
package debounce

import (
	"sync"
	"time"
)

// DefaultWait es la ventana de quietud usada por los formularios.
const DefaultWait = 550 * time.Millisecond

type Debouncer struct {
	wait time.Duration
	fn   func(string)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending string
	armed   bool
	stopped bool

	inflight sync.WaitGroup
}

// New crea un Debouncer que llama fn con el último valor tras wait sin
// cambios. fn no debe llamar a Stop del mismo Debouncer.
func New(wait time.Duration, fn func(string)) *Debouncer {
	if wait <= 0 {
		wait = DefaultWait
	}
	return &Debouncer{wait: wait, fn: fn}
}

// Trigger reinicia la cuenta regresiva con v como valor pendiente.
func (d *Debouncer) Trigger(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = v
	d.armed = true
	d.timer = time.AfterFunc(d.wait, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || !d.armed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	v := d.pending
	d.armed = false
	d.timer = nil
	d.inflight.Add(1)
	d.mu.Unlock()

	defer d.inflight.Done()
	d.fn(v)
}

// Flush ejecuta ya el valor pendiente, si hay uno. Devuelve false si no
// había nada pendiente.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if d.stopped || !d.armed {
		d.mu.Unlock()
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	v := d.pending
	d.armed = false
	d.inflight.Add(1)
	d.mu.Unlock()

	defer d.inflight.Done()
	d.fn(v)
	return true
}

// Pending indica si hay un valor esperando la ventana.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.armed && !d.stopped
}

// Stop cancela el timer y espera a que termine cualquier fn en curso.
// Después de Stop, Trigger y Flush no hacen nada.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.armed = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.mu.Unlock()

	d.inflight.Wait()
}
