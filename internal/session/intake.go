package session

// Field names of the intake record, shared with the extraction prompt and
// its JSON response.
const (
	FieldFullName      = "full_name"
	FieldNationalID    = "national_id"
	FieldInsurance     = "insurance"
	FieldVisitReason   = "visit_reason"
	FieldSpecialty     = "specialty"
	FieldPreferredDate = "preferred_date"
	FieldUrgent        = "urgent_symptoms"
	FieldAppointment   = "confirmed_appointment"
)

// Appointment is the structured confirmation the extraction step fills when
// the caller settles on a slot. There is no booking backend behind it.
type Appointment struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Specialty string `json:"specialty"`
	Doctor    string `json:"doctor,omitempty"`
}

// Intake is the structured patient record filled incrementally from the
// conversation. Each field keeps its value until a later extraction supplies
// a new non-null one; UrgentSymptoms is sticky once raised.
type Intake struct {
	FullName       string       `json:"full_name,omitempty"`
	NationalID     string       `json:"national_id,omitempty"`
	Insurance      string       `json:"insurance,omitempty"`
	VisitReason    string       `json:"visit_reason,omitempty"`
	Specialty      string       `json:"specialty,omitempty"`
	PreferredDate  string       `json:"preferred_date,omitempty"`
	UrgentSymptoms bool         `json:"urgent_symptoms"`
	Appointment    *Appointment `json:"confirmed_appointment,omitempty"`
}

// Merge applies an extraction result to the intake. Fields absent, null or
// empty in the result leave the prior value untouched (last non-null wins,
// per field). The urgency flag can only be raised here, never cleared: once
// true it must keep suppressing normal dialogue until an operator resets the
// session. Returns whether the urgency flag transitioned to true.
func (in *Intake) Merge(fields map[string]any) (raisedUrgent bool) {
	setStr := func(dst *string, key string) {
		if v, ok := fields[key].(string); ok && v != "" && v != "unknown" && v != "null" {
			*dst = v
		}
	}
	setStr(&in.FullName, FieldFullName)
	setStr(&in.NationalID, FieldNationalID)
	setStr(&in.Insurance, FieldInsurance)
	setStr(&in.VisitReason, FieldVisitReason)
	setStr(&in.Specialty, FieldSpecialty)
	setStr(&in.PreferredDate, FieldPreferredDate)

	if v, ok := fields[FieldUrgent].(bool); ok && v && !in.UrgentSymptoms {
		in.UrgentSymptoms = true
		raisedUrgent = true
	}

	if m, ok := fields[FieldAppointment].(map[string]any); ok {
		appt := &Appointment{}
		if v, ok := m["date"].(string); ok {
			appt.Date = v
		}
		if v, ok := m["time"].(string); ok {
			appt.Time = v
		}
		if v, ok := m["specialty"].(string); ok {
			appt.Specialty = v
		}
		if v, ok := m["doctor"].(string); ok {
			appt.Doctor = v
		}
		if appt.Date != "" || appt.Time != "" {
			in.Appointment = appt
		}
	}
	return raisedUrgent
}

// Snapshot serializes the intake for the extraction prompt, reporting
// "unknown" for fields not yet filled.
func (in Intake) Snapshot() map[string]any {
	str := func(v string) any {
		if v == "" {
			return "unknown"
		}
		return v
	}
	snap := map[string]any{
		FieldFullName:      str(in.FullName),
		FieldNationalID:    str(in.NationalID),
		FieldInsurance:     str(in.Insurance),
		FieldVisitReason:   str(in.VisitReason),
		FieldSpecialty:     str(in.Specialty),
		FieldPreferredDate: str(in.PreferredDate),
		FieldUrgent:        in.UrgentSymptoms,
	}
	if in.Appointment != nil {
		snap[FieldAppointment] = map[string]any{
			"date":      in.Appointment.Date,
			"time":      in.Appointment.Time,
			"specialty": in.Appointment.Specialty,
			"doctor":    in.Appointment.Doctor,
		}
	} else {
		snap[FieldAppointment] = "unknown"
	}
	return snap
}
