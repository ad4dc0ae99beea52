package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ContestStates are the team slots of the contest, one team per state.
var ContestStates = []string{
	"Aguascalientes", "Baja California", "Baja California Sur", "Campeche",
	"Chiapas", "Chihuahua", "Ciudad de México", "Coahuila",
	"Colima", "Durango", "Estado de México", "Guanajuato",
	"Guerrero", "Hidalgo", "Jalisco", "Michoacán",
	"Morelos", "Nayarit", "Nuevo León", "Oaxaca",
	"Puebla", "Querétaro", "Quintana Roo", "San Luis Potosí",
	"Sinaloa", "Sonora", "Tabasco", "Tamaulipas",
	"Tlaxcala", "Veracruz", "Yucatán", "Zacatecas",
}

// CanonicalState matches s case-insensitively against ContestStates.
// A Caser keeps state between calls, so each call builds its own.
func CanonicalState(s string) (string, bool) {
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(s))
	for _, st := range ContestStates {
		if fold.String(st) == want {
			return st, true
		}
	}
	return "", false
}

// NormalizeName trims and title-cases a personal name.
func NormalizeName(s string) string {
	return cases.Title(language.Spanish).String(strings.Join(strings.Fields(s), " "))
}
