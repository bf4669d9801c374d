// Package validate tiene los predicados, mensajes y schemas que comparten los
// formularios de la app y los handlers del servidor que los reciben.
package validate

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MsgEmail           = "Please enter a valid email address"
	MsgPhone           = "Please enter a valid phone number"
	MsgPassword        = "Password must be at least 8 characters long"
	MsgPasswordsDiffer = "Passwords do not match"
	MsgConfirmRequired = "Please confirm your password"
	MsgTerms           = "You must agree to the terms and conditions"
	MsgNetwork         = "Network error. Please try again."
	MsgRequestFailed   = "Something went wrong. Please try again."

	MinPasswordLen = 8
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[+]?[1-9][\d]{0,15}$`)
)

// Predicate decide si un valor (no vacío) es válido.
type Predicate func(string) bool

func Email(v string) bool {
	return emailRe.MatchString(v)
}

// Phone ignora espacios, guiones y paréntesis antes de aplicar el patrón.
func Phone(v string) bool {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '(' || r == ')' {
			return -1
		}
		return r
	}, v)
	return phoneRe.MatchString(stripped)
}

func Password(v string) bool {
	return utf8.RuneCountInString(v) >= MinPasswordLen
}

// Required es el mensaje estándar "X is required".
func Required(label string) string {
	return label + " is required"
}

// Errors mapea campo -> mensaje; "" significa sin error.
type Errors map[string]string

// NewErrors arranca con todos los campos en "".
func NewErrors(fields ...string) Errors {
	e := make(Errors, len(fields))
	for _, f := range fields {
		e[f] = ""
	}
	return e
}

func (e Errors) Set(field, msg string) { e[field] = msg }
func (e Errors) Clear(field string)    { e[field] = "" }
func (e Errors) Get(field string) string {
	return e[field]
}

// Valid es true si ninguna entrada tiene mensaje.
func (e Errors) Valid() bool {
	for _, msg := range e {
		if msg != "" {
			return false
		}
	}
	return true
}

// Failed devuelve los campos con error, ordenados.
func (e Errors) Failed() []string {
	out := make([]string, 0)
	for f, msg := range e {
		if msg != "" {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}

// First devuelve el primer error según el orden dado (útil para CLI/logs).
func (e Errors) First(order []string) (string, string) {
	for _, f := range order {
		if msg := e[f]; msg != "" {
			return f, msg
		}
	}
	failed := e.Failed()
	if len(failed) == 0 {
		return "", ""
	}
	return failed[0], e[failed[0]]
}

func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Messages devuelve solo las entradas con error (cuerpo de un 400).
func (e Errors) Messages() map[string]string {
	out := make(map[string]string)
	for f, msg := range e {
		if msg != "" {
			out[f] = msg
		}
	}
	return out
}
