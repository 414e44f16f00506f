package vehicle

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/lintang-b-s/Slopex/pkg"
)

var ErrInvalidVehicle = errors.New("vehicle spec is missing required fields")

// Spec. raw vehicle specification supplied by the caller or the vehicle catalog.
type Spec struct {
	Name                   string  `json:"name,omitempty"`
	HP                     float64 `json:"hp" validate:"required,gt=0"`
	TorqueNm               float64 `json:"torque_nm" validate:"required,gt=0"`
	WeightKg               float64 `json:"weight_kg" validate:"required,gt=0"`
	FuelConsumptionCity    float64 `json:"fuel_consumption_city" validate:"required,gt=0"`    // l/100km
	FuelConsumptionHighway float64 `json:"fuel_consumption_highway" validate:"omitempty,gt=0"` // l/100km
	FuelType               string  `json:"fuel_type" validate:"required"`
	EngineCC               int     `json:"engine_cc,omitempty" validate:"gte=0"`
}

// SlopeThresholds. percent grade limits of a vehicle
type SlopeThresholds struct {
	Comfortable float64 `json:"comfortable"`
	Manageable  float64 `json:"manageable"`
	Maximum     float64 `json:"maximum"`
}

func (t SlopeThresholds) scale(factor float64) SlopeThresholds {
	return SlopeThresholds{
		Comfortable: t.Comfortable * factor,
		Manageable:  t.Manageable * factor,
		Maximum:     t.Maximum * factor,
	}
}

// fuel multiplier per slope category, indexed by pkg.SlopeCategory
var fuelMultipliers = [...]float64{
	pkg.FLAT:     1.0,
	pkg.GENTLE:   1.15,
	pkg.MODERATE: 1.35,
	pkg.STEEP:    1.65,
	pkg.EXTREME:  2.2,
	pkg.DESCENT:  0.7,
}

const (
	lowPowerToWeight = 70.0  // hp/ton
	midPowerToWeight = 100.0 // hp/ton
)

var (
	lowPowerThresholds  = SlopeThresholds{Comfortable: 8, Manageable: 12, Maximum: 15}
	midPowerThresholds  = SlopeThresholds{Comfortable: 10, Manageable: 15, Maximum: 18}
	highPowerThresholds = SlopeThresholds{Comfortable: 12, Manageable: 18, Maximum: 22}
	dieselBonus         = SlopeThresholds{Comfortable: 1.0, Manageable: 1.5, Maximum: 2.0}
)

// Capability. slope tolerance & fuel behaviour derived from a Spec. immutable, copy freely.
type Capability struct {
	name               string
	powerToWeight      float64
	torqueToWeight     float64
	thresholds         SlopeThresholds
	cityConsumption    float64
	highwayConsumption float64
	fuelType           FuelType
}

var validate = validator.New()

// NewCapability. computes the capability of a vehicle, fails with ErrInvalidVehicle if the spec is incomplete.
func NewCapability(spec Spec) (Capability, error) {
	if err := validate.Struct(spec); err != nil {
		return Capability{}, fmt.Errorf("%w: %v", ErrInvalidVehicle, err)
	}

	powerToWeight := spec.HP / spec.WeightKg * 1000
	torqueToWeight := spec.TorqueNm / spec.WeightKg

	var thresholds SlopeThresholds
	switch {
	case powerToWeight < lowPowerToWeight:
		thresholds = lowPowerThresholds
	case powerToWeight < midPowerToWeight:
		thresholds = midPowerThresholds
	default:
		thresholds = highPowerThresholds
	}

	fuelType := ParseFuelType(spec.FuelType)
	if fuelType == DIESEL {
		// diesel torque advantage on grades
		thresholds.Comfortable += dieselBonus.Comfortable
		thresholds.Manageable += dieselBonus.Manageable
		thresholds.Maximum += dieselBonus.Maximum
	}

	highway := spec.FuelConsumptionHighway
	if highway == 0 {
		highway = spec.FuelConsumptionCity
	}

	return Capability{
		name:               spec.Name,
		powerToWeight:      powerToWeight,
		torqueToWeight:     torqueToWeight,
		thresholds:         thresholds,
		cityConsumption:    spec.FuelConsumptionCity,
		highwayConsumption: highway,
		fuelType:           fuelType,
	}, nil
}

func (c Capability) GetName() string {
	return c.name
}

// GetPowerToWeight. hp per metric ton
func (c Capability) GetPowerToWeight() float64 {
	return c.powerToWeight
}

// GetTorqueToWeight. Nm per kg
func (c Capability) GetTorqueToWeight() float64 {
	return c.torqueToWeight
}

func (c Capability) GetThresholds() SlopeThresholds {
	return c.thresholds
}

func (c Capability) GetComfortableSlope() float64 {
	return c.thresholds.Comfortable
}

func (c Capability) GetManageableSlope() float64 {
	return c.thresholds.Manageable
}

func (c Capability) GetMaximumSlope() float64 {
	return c.thresholds.Maximum
}

// GetCityConsumption. l/100km
func (c Capability) GetCityConsumption() float64 {
	return c.cityConsumption
}

// GetHighwayConsumption. l/100km, equals city consumption when the spec had none
func (c Capability) GetHighwayConsumption() float64 {
	return c.highwayConsumption
}

func (c Capability) GetFuelType() FuelType {
	return c.fuelType
}

func (c Capability) GetFuelMultiplier(category pkg.SlopeCategory) float64 {
	if int(category) < len(fuelMultipliers) {
		return fuelMultipliers[category]
	}
	return 1.0
}

// FuelMultipliers. copy of the multiplier table keyed by category name
func (c Capability) FuelMultipliers() map[string]float64 {
	m := make(map[string]float64, len(fuelMultipliers))
	for cat, mult := range fuelMultipliers {
		m[pkg.SlopeCategory(cat).String()] = mult
	}
	return m
}

// Relaxed. copy of the capability with every slope threshold multiplied by factor.
func (c Capability) Relaxed(factor float64) Capability {
	relaxed := c
	relaxed.thresholds = c.thresholds.scale(factor)
	return relaxed
}

func (c Capability) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name             string             `json:"name,omitempty"`
		PowerToWeight    float64            `json:"power_to_weight"`
		TorqueToWeight   float64            `json:"torque_to_weight"`
		ComfortableSlope float64            `json:"comfortable_slope"`
		ManageableSlope  float64            `json:"manageable_slope"`
		MaximumSlope     float64            `json:"maximum_slope"`
		FuelType         FuelType           `json:"fuel_type"`
		FuelMultipliers  map[string]float64 `json:"fuel_multipliers"`
	}{
		Name:             c.name,
		PowerToWeight:    c.powerToWeight,
		TorqueToWeight:   c.torqueToWeight,
		ComfortableSlope: c.thresholds.Comfortable,
		ManageableSlope:  c.thresholds.Manageable,
		MaximumSlope:     c.thresholds.Maximum,
		FuelType:         c.fuelType,
		FuelMultipliers:  c.FuelMultipliers(),
	})
}
