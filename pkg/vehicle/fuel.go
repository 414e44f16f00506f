package vehicle

import "strings"

type FuelType uint8

const (
	PETROL FuelType = iota
	DIESEL
	LPG
	OTHER_FUEL
)

func (f FuelType) String() string {
	switch f {
	case PETROL:
		return "petrol"
	case DIESEL:
		return "diesel"
	case LPG:
		return "lpg"
	default:
		return "other"
	}
}

func (f FuelType) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// ParseFuelType. accepts english & turkish labels of the vehicle database ("Dizel", "Benzin").
func ParseFuelType(s string) FuelType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "diesel", "dizel":
		return DIESEL
	case "petrol", "gasoline", "benzin", "gas":
		return PETROL
	case "lpg", "autogas":
		return LPG
	default:
		return OTHER_FUEL
	}
}

// EmissionFactor. kg CO2 per liter of burned fuel
func (f FuelType) EmissionFactor() float64 {
	switch f {
	case PETROL:
		return 2.31
	case DIESEL:
		return 2.68
	case LPG:
		return 1.51
	default:
		return 2.5
	}
}
