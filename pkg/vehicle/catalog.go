package vehicle

import (
	"sort"
	"strings"
)

// built-in passenger vehicles. fuel_type keeps the labels of the source database.
var catalog = map[string]Spec{
	"Fiat Egea 1.3 Multijet":   {HP: 95, TorqueNm: 200, WeightKg: 1185, FuelConsumptionCity: 4.9, FuelConsumptionHighway: 3.8, FuelType: "Dizel", EngineCC: 1300},
	"Renault Clio 1.0 TCe":     {HP: 100, TorqueNm: 160, WeightKg: 1100, FuelConsumptionCity: 5.7, FuelConsumptionHighway: 4.2, FuelType: "Benzin", EngineCC: 999},
	"Volkswagen Polo 1.0 TSI":  {HP: 95, TorqueNm: 175, WeightKg: 1150, FuelConsumptionCity: 5.8, FuelConsumptionHighway: 4.3, FuelType: "Benzin", EngineCC: 999},
	"Hyundai i20 1.4 CRDi":     {HP: 90, TorqueNm: 220, WeightKg: 1120, FuelConsumptionCity: 4.7, FuelConsumptionHighway: 3.6, FuelType: "Dizel", EngineCC: 1396},
	"Toyota Corolla 1.6":       {HP: 132, TorqueNm: 160, WeightKg: 1300, FuelConsumptionCity: 6.4, FuelConsumptionHighway: 4.7, FuelType: "Benzin", EngineCC: 1598},
	"Peugeot 301 1.5 BlueHDi":  {HP: 100, TorqueNm: 250, WeightKg: 1170, FuelConsumptionCity: 4.5, FuelConsumptionHighway: 3.4, FuelType: "Dizel", EngineCC: 1499},
	"Dacia Duster 1.5 dCi":     {HP: 115, TorqueNm: 260, WeightKg: 1320, FuelConsumptionCity: 5.3, FuelConsumptionHighway: 4.1, FuelType: "Dizel", EngineCC: 1461},
	"Ford Focus 1.5 TDCi":      {HP: 120, TorqueNm: 270, WeightKg: 1350, FuelConsumptionCity: 4.8, FuelConsumptionHighway: 3.7, FuelType: "Dizel", EngineCC: 1499},
	"Opel Astra 1.5 D":         {HP: 105, TorqueNm: 260, WeightKg: 1320, FuelConsumptionCity: 4.9, FuelConsumptionHighway: 3.8, FuelType: "Dizel", EngineCC: 1499},
	"Nissan Qashqai 1.3 DIG-T": {HP: 140, TorqueNm: 240, WeightKg: 1425, FuelConsumptionCity: 6.8, FuelConsumptionHighway: 5.0, FuelType: "Benzin", EngineCC: 1332},
	"Skoda Octavia 1.6 TDI":    {HP: 115, TorqueNm: 250, WeightKg: 1350, FuelConsumptionCity: 4.6, FuelConsumptionHighway: 3.5, FuelType: "Dizel", EngineCC: 1598},
	"Seat Leon 1.0 TSI":        {HP: 110, TorqueNm: 200, WeightKg: 1205, FuelConsumptionCity: 5.9, FuelConsumptionHighway: 4.4, FuelType: "Benzin", EngineCC: 999},
}

// LookupSpec. case-insensitive lookup of a built-in vehicle
func LookupSpec(name string) (Spec, bool) {
	needle := strings.TrimSpace(name)
	if spec, ok := catalog[needle]; ok {
		spec.Name = needle
		return spec, true
	}
	for vname, spec := range catalog {
		if strings.EqualFold(vname, needle) {
			spec.Name = vname
			return spec, true
		}
	}
	return Spec{}, false
}

// CatalogSpecs. every built-in vehicle sorted by name
func CatalogSpecs() []Spec {
	specs := make([]Spec, 0, len(catalog))
	for name, spec := range catalog {
		spec.Name = name
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].Name < specs[j].Name
	})
	return specs
}
