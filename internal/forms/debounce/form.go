package debounce

import (
	"sync"
	"time"

	"pet-adoption/internal/forms/validate"
)

// Form es la validación en vivo de un formulario: un Debouncer por campo
// sobre un mapa de errores compartido.
//
// Escribir en un campo limpia su error al instante; el formato se evalúa
// recién cuando el valor se asienta. Un valor vacío asentado no marca error
// (lo obligatorio se chequea al enviar).
type Form struct {
	schema   validate.Schema
	wait     time.Duration
	onChange func(validate.Errors)

	mu        sync.Mutex
	values    validate.Values
	committed validate.Values
	errs      validate.Errors
	fields    map[string]*Debouncer
	closed    bool
	version   uint64

	// deliverMu ordena las entregas a onChange; delivered es la última versión
	// entregada y las copias más viejas se descartan.
	deliverMu sync.Mutex
	delivered uint64
}

// snapshot es una copia del mapa de errores con la versión tomada bajo mu.
type snapshot struct {
	version uint64
	errs    validate.Errors
}

type Option func(*Form)

func WithWait(d time.Duration) Option {
	return func(f *Form) { f.wait = d }
}

// WithOnChange registra un callback que recibe una copia del mapa de errores
// cada vez que cambia. Se llama fuera del lock de estado, desde la goroutine
// del timer o la del Set, de a una entrega por vez y nunca con una copia más
// vieja que la última entregada. fn no debe llamar a Close: Close espera a
// las validaciones en curso.
func WithOnChange(fn func(validate.Errors)) Option {
	return func(f *Form) { f.onChange = fn }
}

func NewForm(schema validate.Schema, opts ...Option) *Form {
	f := &Form{
		schema:    schema,
		wait:      DefaultWait,
		values:    validate.Values{},
		committed: validate.Values{},
		errs:      validate.NewErrors(schema.Fields()...),
		fields:    map[string]*Debouncer{},
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Set registra el valor crudo de un campo y reinicia su ventana.
func (f *Form) Set(field, value string) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.values[field] = value
	changed := f.errs.Get(field) != ""
	f.errs.Clear(field)
	d := f.debouncerLocked(field)
	snap := f.snapshotLocked(changed)
	f.mu.Unlock()

	f.notify(snap)
	d.Trigger(value)
}

// SetFlag marca un checkbox; no pasa por la ventana.
func (f *Form) SetFlag(field string, on bool) {
	v := "false"
	if on {
		v = "true"
	}
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.values[field] = v
	f.committed[field] = v
	changed := f.errs.Get(field) != ""
	f.errs.Clear(field)
	snap := f.snapshotLocked(changed)
	f.mu.Unlock()

	f.notify(snap)
}

func (f *Form) debouncerLocked(field string) *Debouncer {
	if d, ok := f.fields[field]; ok {
		return d
	}
	d := New(f.wait, func(v string) { f.commit(field, v) })
	f.fields[field] = d
	return d
}

func (f *Form) commit(field, v string) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.committed[field] = v
	before := f.errs.Clone()

	if r, ok := f.schema.Rule(field); ok {
		f.errs.Set(field, r.FormatMessage(v))
	}
	for _, m := range f.schema.MatchesFor(field) {
		a, b := f.committed.Field(m.Field), f.committed.Field(m.Other)
		if a == "" || b == "" {
			continue
		}
		if a != b {
			f.errs.Set(m.Field, m.Message)
		} else if f.errs.Get(m.Field) == m.Message {
			f.errs.Clear(m.Field)
		}
	}

	snap := f.snapshotLocked(!equalErrors(before, f.errs))
	f.mu.Unlock()

	f.notify(snap)
}

func (f *Form) snapshotLocked(changed bool) *snapshot {
	if !changed || f.onChange == nil {
		return nil
	}
	f.version++
	return &snapshot{version: f.version, errs: f.errs.Clone()}
}

func (f *Form) notify(snap *snapshot) {
	if snap == nil {
		return
	}
	f.deliverMu.Lock()
	defer f.deliverMu.Unlock()
	if snap.version <= f.delivered {
		return
	}
	f.delivered = snap.version
	f.onChange(snap.errs)
}

// Value devuelve el valor crudo (no el asentado).
func (f *Form) Value(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

// Values devuelve una copia de los valores crudos, lista para enviar.
func (f *Form) Values() validate.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(validate.Values, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

func (f *Form) Errors() validate.Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs.Clone()
}

// Replace pisa el mapa de errores con el resultado de una validación de envío.
func (f *Form) Replace(errs validate.Errors) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.errs = errs.Clone()
	snap := f.snapshotLocked(true)
	f.mu.Unlock()

	f.notify(snap)
}

// Flush asienta ya todos los campos pendientes.
func (f *Form) Flush() {
	f.mu.Lock()
	ds := make([]*Debouncer, 0, len(f.fields))
	for _, d := range f.fields {
		ds = append(ds, d)
	}
	f.mu.Unlock()

	for _, d := range ds {
		d.Flush()
	}
}

// Close detiene los timers; resultados que lleguen después se descartan.
// Espera a la validación en curso, así que no se puede llamar desde onChange.
func (f *Form) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	ds := make([]*Debouncer, 0, len(f.fields))
	for _, d := range f.fields {
		ds = append(ds, d)
	}
	f.mu.Unlock()

	for _, d := range ds {
		d.Stop()
	}
}

func equalErrors(a, b validate.Errors) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
