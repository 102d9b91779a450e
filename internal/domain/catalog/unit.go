package catalog

// Unit is the unit of measure a product is counted in
type Unit string

const (
	UnitPiece       Unit = "adet"
	UnitKilogram    Unit = "kg"
	UnitLiter       Unit = "lt"
	UnitMeter       Unit = "m"
	UnitSquareMeter Unit = "m2"
	UnitPackage     Unit = "paket"
)

// AllUnits returns every supported unit
func AllUnits() []Unit {
	return []Unit{UnitPiece, UnitKilogram, UnitLiter, UnitMeter, UnitSquareMeter, UnitPackage}
}

// IsValid reports whether u is a supported unit
func (u Unit) IsValid() bool {
	for _, known := range AllUnits() {
		if u == known {
			return true
		}
	}
	return false
}

// String returns the string representation
func (u Unit) String() string {
	return string(u)
}

func unitNames() []string {
	units := AllUnits()
	names := make([]string, len(units))
	for i, u := range units {
		names[i] = string(u)
	}
	return names
}
