// Package campus defines the closed set of campus identifiers and the
// qualitative performance vocabulary used across all pipeline stages.
//
// Both sets are enumerated, not open strings: an identifier or category
// word that is not in the set is an input error, never silently accepted
// text. The registry is fixed at compile time and acts as the join key
// across the three source datasets and the three reports.
package campus

import (
	"fmt"
	"strings"
)

// ID is a short campus code, one of the 20 registered values.
type ID string

const (
	MTY ID = "MTY"
	PUE ID = "PUE"
	GDL ID = "GDL"
	CDJ ID = "CDJ"
	TOL ID = "TOL"
	CCM ID = "CCM"
	CEM ID = "CEM"
	QRO ID = "QRO"
	CHI ID = "CHI"
	SIN ID = "SIN"
	AGS ID = "AGS"
	COB ID = "COB"
	LEO ID = "LEO"
	LAG ID = "LAG"
	SON ID = "SON"
	HGO ID = "HGO"
	SLP ID = "SLP"
	CVA ID = "CVA"
	CSF ID = "CSF"
	SAL ID = "SAL"
)

// names maps every registered ID to its display name.
var names = map[ID]string{
	MTY: "Monterrey",
	PUE: "Puebla",
	GDL: "Guadalajara",
	CDJ: "Ciudad Juárez",
	TOL: "Toluca",
	CCM: "Ciudad de México",
	CEM: "Estado de México",
	QRO: "Querétaro",
	CHI: "Chihuahua",
	SIN: "Sinaloa",
	AGS: "Aguascalientes",
	COB: "Ciudad Obregón",
	LEO: "León",
	LAG: "Laguna",
	SON: "Sonora",
	HGO: "Hidalgo",
	SLP: "San Luis Potosí",
	CVA: "Cuernavaca",
	CSF: "Santa Fe",
	SAL: "Saltillo",
}

// All returns the registry in a stable order. The slice is a copy, callers
// may reorder it freely.
func All() []ID {
	return []ID{
		MTY, PUE, GDL, CDJ, TOL, CCM, CEM, QRO, CHI, SIN,
		AGS, COB, LEO, LAG, SON, HGO, SLP, CVA, CSF, SAL,
	}
}

// Count is the size of the registry.
const Count = 20

// Name returns the display name for the ID, or the ID itself if it is
// not registered.
func (id ID) Name() string {
	if name, ok := names[id]; ok {
		return name
	}
	return string(id)
}

// Valid reports whether the ID belongs to the registry.
func (id ID) Valid() bool {
	_, ok := names[id]
	return ok
}

// Parse converts a raw string to a registered ID.
func Parse(s string) (ID, error) {
	id := ID(strings.ToUpper(strings.TrimSpace(s)))
	if !id.Valid() {
		return "", fmt.Errorf("unknown campus id %q", s)
	}
	return id, nil
}
