package engine

import (
	"runtime"

	"github.com/lintang-b-s/Slopex/pkg/costfunction"
	"github.com/lintang-b-s/Slopex/pkg/engine/routing"
	"github.com/lintang-b-s/Slopex/pkg/vehicle"
	"github.com/spf13/viper"
)

// FuelPrices. price per liter used when the caller does not supply one
type FuelPrices struct {
	Petrol float64
	Diesel float64
	LPG    float64
	Other  float64
}

func (fp FuelPrices) Get(ft vehicle.FuelType) float64 {
	switch ft {
	case vehicle.PETROL:
		return fp.Petrol
	case vehicle.DIESEL:
		return fp.Diesel
	case vehicle.LPG:
		return fp.LPG
	default:
		return fp.Other
	}
}

type Config struct {
	GraphPath           string
	DirectionExpansion  bool
	SearchRadius        float64 // meter
	Search              routing.SearchConfig
	Cost                costfunction.Config
	FuelPrices          FuelPrices
	CapabilityCacheSize int
	BatchWorkers        int
}

func DefaultConfig() Config {
	return Config{
		GraphPath:          "./data/road_network.json.bz2",
		DirectionExpansion: true,
		SearchRadius:       200,
		Search:             routing.DefaultSearchConfig(),
		Cost:               costfunction.DefaultConfig(),
		FuelPrices: FuelPrices{
			Petrol: 42.15,
			Diesel: 43.25,
			LPG:    24.85,
			Other:  42.15,
		},
		CapabilityCacheSize: 256,
		BatchWorkers:        runtime.NumCPU(),
	}
}

// LoadConfig. DefaultConfig overridden by viper keys, call util.ReadConfig first to pick up data/config.yaml.
func LoadConfig() Config {
	def := DefaultConfig()

	viper.SetDefault("graph_path", def.GraphPath)
	viper.SetDefault("graph.direction_expansion", def.DirectionExpansion)
	viper.SetDefault("locator.search_radius_m", def.SearchRadius)
	viper.SetDefault("search.max_iterations", def.Search.MaxIterations)
	viper.SetDefault("search.backward_relax_factor", def.Search.BackwardRelaxFactor)
	viper.SetDefault("search.destination_penalty", def.Search.DestinationPenalty)
	viper.SetDefault("cost.default_elevation_m", def.Cost.DefaultElevation)
	viper.SetDefault("cost.default_speed_kmh", def.Cost.DefaultSpeed)
	viper.SetDefault("cost.min_speed_kmh", def.Cost.MinSpeed)
	viper.SetDefault("cost.time_cost_per_minute", def.Cost.TimeCostPerMinute)
	viper.SetDefault("cost.slope_cost_unit", def.Cost.SlopeCostUnit)
	viper.SetDefault("cost.peak_speed_factor", def.Cost.PeakSpeedFactor)
	viper.SetDefault("fuel.price_per_liter.petrol", def.FuelPrices.Petrol)
	viper.SetDefault("fuel.price_per_liter.diesel", def.FuelPrices.Diesel)
	viper.SetDefault("fuel.price_per_liter.lpg", def.FuelPrices.LPG)
	viper.SetDefault("fuel.price_per_liter.other", def.FuelPrices.Other)
	viper.SetDefault("cache.capability_size", def.CapabilityCacheSize)
	viper.SetDefault("batch.workers", def.BatchWorkers)

	return Config{
		GraphPath:          viper.GetString("graph_path"),
		DirectionExpansion: viper.GetBool("graph.direction_expansion"),
		SearchRadius:       viper.GetFloat64("locator.search_radius_m"),
		Search: routing.SearchConfig{
			MaxIterations:       viper.GetInt("search.max_iterations"),
			BackwardRelaxFactor: viper.GetFloat64("search.backward_relax_factor"),
			DestinationPenalty:  viper.GetFloat64("search.destination_penalty"),
		},
		Cost: costfunction.Config{
			DefaultElevation:  viper.GetFloat64("cost.default_elevation_m"),
			DefaultSpeed:      viper.GetFloat64("cost.default_speed_kmh"),
			MinSpeed:          viper.GetFloat64("cost.min_speed_kmh"),
			TimeCostPerMinute: viper.GetFloat64("cost.time_cost_per_minute"),
			SlopeCostUnit:     viper.GetFloat64("cost.slope_cost_unit"),
			PeakSpeedFactor:   viper.GetFloat64("cost.peak_speed_factor"),
		},
		FuelPrices: FuelPrices{
			Petrol: viper.GetFloat64("fuel.price_per_liter.petrol"),
			Diesel: viper.GetFloat64("fuel.price_per_liter.diesel"),
			LPG:    viper.GetFloat64("fuel.price_per_liter.lpg"),
			Other:  viper.GetFloat64("fuel.price_per_liter.other"),
		},
		CapabilityCacheSize: viper.GetInt("cache.capability_size"),
		BatchWorkers:        viper.GetInt("batch.workers"),
	}
}
