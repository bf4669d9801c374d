// Package textclean limpia texto libre que llega de formularios (descripción
// de mascota, experiencia/motivo de una solicitud) antes de persistirlo.
package textclean

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Plain quita todo markup y devuelve texto plano sin espacios en los bordes.
// bluemonday escapa entidades; las revertimos porque el valor se guarda como
// texto, no como HTML.
func Plain(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := strictPolicy().Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func strictPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}
