// Package policy produces the instructions the engine hands to the language
// service: the per-session system prompt and the per-turn extraction prompt.
// Both builders are deterministic template fills; all conversational state
// lives in the session record, none here.
package policy

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sanrafael-clinic/frontdesk/internal/catalog"
	"github.com/sanrafael-clinic/frontdesk/internal/session"
)

// BuildSystemPrompt concatenates the behavioral rules, the request-type
// taxonomy, the flow script, the special-case rules and a rendering of the
// catalog snapshot plus the wall-clock date/time. It is built exactly once
// per session, when the record is opened, and never refreshed: a long call
// crossing midnight keeps the stale date.
func BuildSystemPrompt(cat *catalog.Catalog, now time.Time) string {
	var b strings.Builder
	b.WriteString(personaPrompt)
	b.WriteString("\n\n")
	b.WriteString(requestTypesPrompt)
	b.WriteString("\n\n")
	b.WriteString(flowPrompt)
	b.WriteString("\n\n")
	b.WriteString(specialCasesPrompt)
	b.WriteString("\n\nINFORMACIÓN DE LA CLÍNICA QUE DEBES CONOCER:\n")
	b.WriteString(renderCatalog(cat, now))
	fmt.Fprintf(&b, "\nHORA ACTUAL: %s\nFECHA ACTUAL: %s\n", now.Format("15:04"), now.Format("02/01/2006"))
	b.WriteString("\nRecuerda: eres el primer punto de contacto del paciente. Sé empático, profesional y eficiente.")
	return b.String()
}

func renderCatalog(cat *catalog.Catalog, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CLÍNICA: %s\nDIRECCIÓN: %s\nTELÉFONO: %s\n", cat.Clinic.Name, cat.Clinic.Address, cat.Clinic.Phone)

	fmt.Fprintf(&b, "\nHORARIOS:\n- Lunes a Viernes: %s\n- Sábados: %s\n- Domingos y Feriados: %s\n",
		cat.Hours.Weekdays, cat.Hours.Saturdays, cat.Hours.Sundays)

	b.WriteString("\nESPECIALIDADES DISPONIBLES:\n")
	for _, sp := range cat.Specialties {
		fmt.Fprintf(&b, "- %s:\n", sp.Name)
		for _, d := range sp.Doctors {
			fmt.Fprintf(&b, "  * %s - %s (%s)\n", d.Name, strings.Join(d.Days, ", "), d.Hours)
		}
	}

	fmt.Fprintf(&b, "\nOBRAS SOCIALES ACEPTADAS: %s\n", strings.Join(cat.ObrasSociales, ", "))
	fmt.Fprintf(&b, "PREPAGAS ACEPTADAS: %s\n", strings.Join(cat.Prepagas, ", "))
	fmt.Fprintf(&b, "PRECIO CONSULTA PARTICULAR: $%d\n", cat.Prices["consulta_particular"])

	b.WriteString("\nSERVICIOS ADICIONALES:\n")
	for _, sv := range cat.Services {
		fmt.Fprintf(&b, "- %s (%s)\n", sv.Name, sv.Hours)
	}

	b.WriteString("\nTURNOS DISPONIBLES:\n")
	for _, day := range []catalog.Day{catalog.DayToday, catalog.DayTomorrow, catalog.DayAfter} {
		slots, _ := cat.SlotsFor(day, now)
		label := map[catalog.Day]string{
			catalog.DayToday:    "Hoy",
			catalog.DayTomorrow: "Mañana",
			catalog.DayAfter:    "Pasado mañana",
		}[day]
		if len(slots.Times) == 0 {
			fmt.Fprintf(&b, "- %s (%s): COMPLETO\n", label, slots.Date)
		} else {
			fmt.Fprintf(&b, "- %s (%s): %s\n", label, slots.Date, strings.Join(slots.Times, ", "))
		}
	}
	return b.String()
}

// BuildExtractionPrompt fills the extraction template with the fixed
// instruction, the tail of the conversation, the current intake snapshot and
// the new utterance.
func BuildExtractionPrompt(intake map[string]any, tail []session.Turn, utterance string) string {
	var b strings.Builder
	b.WriteString(extractionInstruction)

	b.WriteString("\n\nConversación hasta ahora:\n")
	for _, t := range tail {
		role := "Usuario"
		if t.Speaker == session.SpeakerAssistant {
			role = "Asistente"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, t.Text)
	}

	snap, _ := json.Marshal(intake)
	fmt.Fprintf(&b, "\nDatos actuales del paciente: %s\n", snap)
	fmt.Fprintf(&b, "\nÚltimo mensaje del usuario: %q\n", utterance)
	b.WriteString("\nExtrae SOLO la información nueva del último mensaje. Si un campo ya tiene valor y no se menciona, devuélvelo null.")
	return b.String()
}

// Greeting returns the time-of-day opening line the assistant speaks when a
// call or chat is answered.
func Greeting(now time.Time) string {
	var saludo string
	switch h := now.Hour(); {
	case h >= 6 && h < 12:
		saludo = "Buenos días"
	case h >= 12 && h < 20:
		saludo = "Buenas tardes"
	default:
		saludo = "Buenas noches"
	}
	return saludo + ", Clínica San Rafael, ¿en qué puedo ayudarlo?"
}
