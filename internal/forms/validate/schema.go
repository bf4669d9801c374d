package validate

import "strings"

// Draft expone los campos de texto de un formulario por nombre.
type Draft interface {
	Field(name string) string
}

// Flags expone checkboxes (p.ej. términos aceptados).
type Flags interface {
	Flag(name string) bool
}

// Values es un Draft simple basado en map; los flags son "true".
type Values map[string]string

func (v Values) Field(name string) string { return v[name] }
func (v Values) Flag(name string) bool    { return v[name] == "true" }

// Rule describe un campo: obligatoriedad y formato.
type Rule struct {
	Field           string
	Label           string
	Required        bool
	RequiredMessage string // si vacío: "<Label> is required"
	Check           Predicate
	Message         string
}

func (r Rule) requiredMessage() string {
	if r.RequiredMessage != "" {
		return r.RequiredMessage
	}
	label := r.Label
	if label == "" {
		label = r.Field
	}
	return Required(label)
}

// FormatMessage devuelve el mensaje de formato para un valor ya no vacío,
// o "" si pasa (o no hay predicado).
func (r Rule) FormatMessage(v string) string {
	if v == "" || r.Check == nil || r.Check(v) {
		return ""
	}
	return r.Message
}

// Match exige que Field sea igual a Other cuando ambos tienen valor.
type Match struct {
	Field   string
	Other   string
	Message string
}

// Gate es un booleano que debe estar en true para enviar.
type Gate struct {
	Field   string
	Message string
}

type Schema struct {
	Rules   []Rule
	Matches []Match
	Gates   []Gate
}

// Fields lista los campos del schema en orden de declaración.
func (s Schema) Fields() []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(s.Rules)+len(s.Gates))
	add := func(f string) {
		if _, ok := seen[f]; ok {
			return
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	for _, r := range s.Rules {
		add(r.Field)
	}
	for _, m := range s.Matches {
		add(m.Field)
	}
	for _, g := range s.Gates {
		add(g.Field)
	}
	return out
}

func (s Schema) Rule(field string) (Rule, bool) {
	for _, r := range s.Rules {
		if r.Field == field {
			return r, true
		}
	}
	return Rule{}, false
}

// MatchesFor devuelve los Match donde field participa (de cualquier lado).
func (s Schema) MatchesFor(field string) []Match {
	out := make([]Match, 0)
	for _, m := range s.Matches {
		if m.Field == field || m.Other == field {
			out = append(out, m)
		}
	}
	return out
}

// Validate arma un mapa de errores desde cero: requeridos, formato, cruces y
// gates. Nunca reutiliza errores previos.
func (s Schema) Validate(d Draft) Errors {
	errs := NewErrors(s.Fields()...)

	for _, r := range s.Rules {
		v := d.Field(r.Field)
		if strings.TrimSpace(v) == "" {
			if r.Required {
				errs.Set(r.Field, r.requiredMessage())
			}
			continue
		}
		if msg := r.FormatMessage(v); msg != "" {
			errs.Set(r.Field, msg)
		}
	}

	for _, m := range s.Matches {
		a, b := d.Field(m.Field), d.Field(m.Other)
		if a != "" && b != "" && a != b {
			errs.Set(m.Field, m.Message)
		}
	}

	flags, _ := d.(Flags)
	for _, g := range s.Gates {
		if flags == nil || !flags.Flag(g.Field) {
			errs.Set(g.Field, g.Message)
		}
	}

	return errs
}

// Error es un mapa de errores devuelto como error (lado servidor).
type Error struct {
	Fields Errors
	order  []string
}

// Error devuelve el primer mensaje en el orden del schema.
func (e *Error) Error() string {
	_, msg := e.Fields.First(e.order)
	return msg
}

// Check valida d y devuelve *Error si algo falla, nil si no.
func (s Schema) Check(d Draft) error {
	errs := s.Validate(d)
	if errs.Valid() {
		return nil
	}
	return &Error{Fields: errs, order: s.Fields()}
}
