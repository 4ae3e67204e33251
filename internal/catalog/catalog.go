// Package catalog holds the static reference data of the clinic: opening
// hours, specialties and their doctors, accepted insurers, prices, mock
// appointment slots and the FAQ index. Everything here is read-only; the
// dialogue policy renders a snapshot of it into the system prompt.
package catalog

import "time"

type Clinic struct {
	Name    string
	Address string
	Phone   string
	Email   string
	Website string
}

type Hours struct {
	Weekdays  string
	Saturdays string
	Sundays   string
	Holidays  string
}

type Doctor struct {
	Name  string
	Days  []string
	Hours string
}

type Specialty struct {
	Key     string
	Name    string
	Doctors []Doctor
}

// InsurerKind distinguishes the two coverage regimes the clinic accepts.
type InsurerKind string

const (
	KindObraSocial InsurerKind = "obra_social"
	KindPrepaga    InsurerKind = "prepaga"
)

type Insurer struct {
	Name string
	Kind InsurerKind
}

type Service struct {
	Name             string
	Hours            string
	NeedsAppointment bool
	NeedsOrder       bool
}

type FAQ struct {
	Key      string
	Question string
	Answer   string
	Keywords []string
}

type Catalog struct {
	Clinic        Clinic
	Hours         Hours
	Specialties   []Specialty
	ObrasSociales []string
	Prepagas      []string
	Prices        map[string]int
	Services      []Service
	FAQs          []FAQ
}

// Default returns the demonstration catalog of Clínica San Rafael. In a
// production deployment this would be loaded from an administrative backend.
func Default() *Catalog {
	return &Catalog{
		Clinic: Clinic{
			Name:    "Clínica San Rafael",
			Address: "Av. Libertador 1234, CABA",
			Phone:   "(011) 4567-8900",
			Email:   "info@clinicasanrafael.com.ar",
			Website: "www.clinicasanrafael.com.ar",
		},
		Hours: Hours{
			Weekdays:  "8:00 a 20:00",
			Saturdays: "9:00 a 13:00",
			Sundays:   "Cerrado",
			Holidays:  "Cerrado",
		},
		Specialties: []Specialty{
			{Key: "clinica_medica", Name: "Clínica Médica", Doctors: []Doctor{
				{Name: "Dr. Carlos Méndez", Days: []string{"Lunes", "Miércoles", "Jueves"}, Hours: "8:00 a 13:00"},
				{Name: "Dra. Ana Torres", Days: []string{"Martes", "Viernes"}, Hours: "14:00 a 20:00"},
			}},
			{Key: "cardiologia", Name: "Cardiología", Doctors: []Doctor{
				{Name: "Dr. Roberto Silva", Days: []string{"Lunes", "Miércoles", "Viernes"}, Hours: "9:00 a 14:00"},
				{Name: "Dra. Laura Gómez", Days: []string{"Jueves", "Viernes"}, Hours: "15:00 a 19:00"},
			}},
			{Key: "traumatologia", Name: "Traumatología", Doctors: []Doctor{
				{Name: "Dr. Martín López", Days: []string{"Lunes", "Martes", "Jueves", "Viernes"}, Hours: "10:00 a 18:00"},
			}},
			{Key: "pediatria", Name: "Pediatría", Doctors: []Doctor{
				{Name: "Dra. Sofía Fernández", Days: []string{"Lunes", "Miércoles", "Jueves"}, Hours: "8:00 a 14:00"},
				{Name: "Dr. Diego Ruiz", Days: []string{"Martes", "Viernes"}, Hours: "14:00 a 20:00"},
			}},
			{Key: "dermatologia", Name: "Dermatología", Doctors: []Doctor{
				{Name: "Dra. Patricia Valdés", Days: []string{"Martes", "Jueves"}, Hours: "9:00 a 15:00"},
			}},
			{Key: "ginecologia", Name: "Ginecología", Doctors: []Doctor{
				{Name: "Dra. Marcela Russo", Days: []string{"Lunes", "Miércoles", "Viernes"}, Hours: "10:00 a 16:00"},
			}},
			{Key: "oftalmologia", Name: "Oftalmología", Doctors: []Doctor{
				{Name: "Dr. Pablo Moreno", Days: []string{"Martes", "Jueves"}, Hours: "8:00 a 13:00"},
			}},
		},
		ObrasSociales: []string{
			"OSDE", "Swiss Medical", "GALENO", "IOMA", "PAMI",
			"OSECAC", "OSPEDYC", "OSDEPYM", "UOM",
		},
		Prepagas: []string{
			"Medifé", "Sancor Salud", "Accord Salud", "Prevención Salud",
		},
		Prices: map[string]int{
			"consulta_particular":   15000,
			"consulta_pediatria":    12000,
			"consulta_especialista": 18000,
			"certificado":           5000,
			"receta":                2000,
		},
		Services: []Service{
			{Name: "Laboratorio de Análisis Clínicos", Hours: "Lunes a Viernes 7:00 a 10:00 (ayuno)", NeedsAppointment: false, NeedsOrder: true},
			{Name: "Ecografía", Hours: "Lunes a Viernes 9:00 a 18:00", NeedsAppointment: true, NeedsOrder: true},
			{Name: "Electrocardiograma", Hours: "Lunes a Viernes 8:00 a 19:00", NeedsAppointment: true, NeedsOrder: true},
			{Name: "Radiografía", Hours: "Lunes a Viernes 8:00 a 18:00, Sábados 9:00 a 12:00", NeedsAppointment: true, NeedsOrder: true},
		},
		FAQs: defaultFAQs(),
	}
}

// SpecialtyByKey returns the specialty with the given key, if present.
func (c *Catalog) SpecialtyByKey(key string) (Specialty, bool) {
	for _, s := range c.Specialties {
		if s.Key == key {
			return s, true
		}
	}
	return Specialty{}, false
}

// DoctorsFor returns the doctors of a specialty, or nil if unknown.
func (c *Catalog) DoctorsFor(key string) []Doctor {
	s, ok := c.SpecialtyByKey(key)
	if !ok {
		return nil
	}
	return s.Doctors
}

// Date formats a catalog date the same way the gateway speaks it.
func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
