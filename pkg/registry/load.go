// Package registry assembles the versioned, immutable ghgtypes.FactorSet
// bundle from the static reference tables embedded in this binary (C2 in
// the design). Loading is deterministic: same embedded bytes in, same
// FactorSet out, every time, with no filesystem or network access — the
// teacher's handler.go clones a live git data repo over HTTP at startup;
// this package instead embeds its data so the registry never performs I/O,
// matching the core's "never performs I/O" contract.
package registry

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/re-cinq/ghgcore/pkg/ghgtypes"
	"github.com/re-cinq/ghgcore/pkg/ghgunits"
)

//go:embed data/*.json
var dataFS embed.FS

const (
	epaYear   = 2024
	egridYear = 2023
	defraYear = 2024
)

// Load decodes the embedded reference tables and assembles a fresh
// ghgtypes.FactorSet. It is safe to call repeatedly; each call returns an
// independent value (see LoadCached for a memoized variant).
func Load() (*ghgtypes.FactorSet, error) {
	var epa epaFile
	if err := readJSON("data/epa-emission-factors-2024.json", &epa); err != nil {
		return nil, err
	}
	var egrid egridFile
	if err := readJSON("data/egrid-subregions-2023.json", &egrid); err != nil {
		return nil, err
	}
	var gwp gwpFile
	if err := readJSON("data/ipcc-ar6-gwp100.json", &gwp); err != nil {
		return nil, err
	}
	var cbecs cbecsFile
	if err := readJSON("data/cbecs-2018-benchmarks.json", &cbecs); err != nil {
		return nil, err
	}
	var climate climateFile
	if err := readJSON("data/ashrae-climate-zones.json", &climate); err != nil {
		return nil, err
	}
	var spend spendFile
	if err := readJSON("data/scope3-spend-factors.json", &spend); err != nil {
		return nil, err
	}
	var gridProj gridProjectionFile
	if err := readJSON("data/grid-projection-eia.json", &gridProj); err != nil {
		return nil, err
	}

	fs := &ghgtypes.FactorSet{
		Version: ghgunits.VersionString(epaYear, egridYear, defraYear),
	}

	fs.Stationary = make(map[ghgtypes.FuelKey]ghgtypes.StationaryFactor, len(epa.Stationary))
	for _, s := range epa.Stationary {
		fs.Stationary[ghgtypes.FuelKey(s.Fuel)] = ghgtypes.StationaryFactor{
			Fuel:                      ghgtypes.FuelKey(s.Fuel),
			CO2KgPerUnit:              s.CO2KgPerUnit,
			CH4GPerUnit:               s.CH4GPerUnit,
			N2OGPerUnit:               s.N2OGPerUnit,
			NativeUnit:                s.NativeUnit,
			HeatContentMMBtuPerNative: s.HeatContentMMBtuPerNative,
		}
	}

	fs.Mobile = make(map[ghgtypes.MobileKey]ghgtypes.MobileFactor, len(epa.Mobile))
	for _, m := range epa.Mobile {
		fs.Mobile[ghgtypes.MobileKey{VehicleType: m.VehicleType, FuelType: ghgtypes.VehicleFuelType(m.FuelType)}] = ghgtypes.MobileFactor{
			CO2KgPerGallon: m.CO2KgPerGallon,
			CH4GPerMile:    m.CH4GPerMile,
			N2OGPerMile:    m.N2OGPerMile,
			DefaultMPG:     m.DefaultMPG,
		}
	}

	fs.BusinessTravel = toTransportMap(epa.BusinessTravel)
	fs.Commuting = toTransportMap(epa.Commuting)
	fs.ProductTransport = toTransportMap(epa.ProductTransport)

	fs.UpstreamWTT = make(map[ghgtypes.FuelKey]float64, len(epa.UpstreamWTT))
	for _, w := range epa.UpstreamWTT {
		val := 0.0
		if w.KgPerNativeUnitMMBtu != nil {
			val = *w.KgPerNativeUnitMMBtu
		} else if w.KgPerNativeUnitGallon != nil {
			val = *w.KgPerNativeUnitGallon
		}
		fs.UpstreamWTT[ghgtypes.FuelKey(w.Fuel)] = val
	}

	fs.WasteFactors = make(map[ghgtypes.WasteFactorKey]float64, len(epa.WasteFactors))
	for _, w := range epa.WasteFactors {
		fs.WasteFactors[ghgtypes.WasteFactorKey{WasteType: w.WasteType, DisposalMethod: w.DisposalMethod}] = w.TCO2ePerShortTon
	}

	fs.WaterSupplyPer1000Gal = epa.WaterSupplyPer1000Gal
	fs.WaterTreatmentPer1000Gal = make(map[string]float64, len(epa.WaterTreatmentPer1000Gal))
	for _, w := range epa.WaterTreatmentPer1000Gal {
		fs.WaterTreatmentPer1000Gal[w.TreatmentType] = w.TCO2ePer1000Gal
	}

	fs.GridSubregions = make(map[string]ghgtypes.GridSubregionFactor, len(egrid.Subregions))
	for _, s := range egrid.Subregions {
		fs.GridSubregions[s.Subregion] = ghgtypes.GridSubregionFactor{
			Subregion:    s.Subregion,
			KgCO2ePerKWh: s.KgCO2ePerKWh,
			GrossLossPct: s.GrossLossPct,
		}
	}
	fs.StateToSubregion = make(map[string]string, len(egrid.StateToSubregion))
	for k, v := range egrid.StateToSubregion {
		fs.StateToSubregion[strings.ToUpper(k)] = v
	}
	fs.CountryGridEF = egrid.InternationalGridFactors

	fs.Refrigerants = make(map[ghgtypes.RefrigerantType]ghgtypes.RefrigerantFactor, len(gwp.Gases))
	fs.RefrigerantCommonName = make(map[string]ghgtypes.RefrigerantType, len(gwp.Gases))
	for _, g := range gwp.Gases {
		t := ghgtypes.RefrigerantType(g.Name)
		fs.Refrigerants[t] = ghgtypes.RefrigerantFactor{Name: g.Name, CommonName: g.CommonName, GWP100: g.GWP100}
		if g.CommonName != "" {
			fs.RefrigerantCommonName[strings.ToUpper(g.CommonName)] = t
		}
	}
	fs.DefaultLeakRateByEquipment = gwp.DefaultLeakRatesByEquipment

	fs.SpendFactors = make(map[string]float64, len(spend.Sectors))
	for _, s := range spend.Sectors {
		fs.SpendFactors[s.Sector] = s.KgPerUSD
	}

	fs.Benchmarks = make(map[ghgtypes.BuildingType]ghgtypes.BuildingBenchmark, len(cbecs.Benchmarks))
	for _, b := range cbecs.Benchmarks {
		fuelSplit := make(map[ghgtypes.FuelKey]float64, len(b.FuelSplit))
		for k, v := range b.FuelSplit {
			fuelSplit[ghgtypes.FuelKey(k)] = v
		}
		bt := ghgtypes.BuildingType(b.BuildingType)
		fs.Benchmarks[bt] = ghgtypes.BuildingBenchmark{
			BuildingType:   bt,
			EUIKBtuPerSqFt: ghgtypes.BenchmarkQuartiles(b.EUIKBtuPerSqFt),
			FuelSplit:      fuelSplit,
			KgCO2ePerSqFt:  ghgtypes.BenchmarkQuartiles(b.KgCO2ePerSqFt),
		}
	}

	fs.ClimateZones = make(map[string]ghgtypes.ClimateZoneDegreeDays, len(climate.Zones))
	for _, z := range climate.Zones {
		fs.ClimateZones[z.Zone] = ghgtypes.ClimateZoneDegreeDays{Zone: z.Zone, HDD65: z.HDD65, CDD65: z.CDD65}
	}
	fs.StateToDefaultClimateZone = make(map[string]string, len(climate.StateToDefaultZone))
	for k, v := range climate.StateToDefaultZone {
		fs.StateToDefaultClimateZone[strings.ToUpper(k)] = v
	}

	fs.GridProjectionByYear = make(map[int]float64, len(gridProj.NationalGridEFByYear))
	for _, p := range gridProj.NationalGridEFByYear {
		fs.GridProjectionByYear[p.Year] = p.KgCO2ePerKWh
	}

	return fs, nil
}

func toTransportMap(entries []factorEntry) map[string]ghgtypes.TransportFactor {
	out := make(map[string]ghgtypes.TransportFactor, len(entries))
	for _, e := range entries {
		out[e.Mode] = ghgtypes.TransportFactor{Mode: e.Mode, KgPerUnit: e.KgPerUnit}
	}
	return out
}

func readJSON(path string, v any) error {
	b, err := dataFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("registry: reading embedded %s: %w", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("registry: decoding embedded %s: %w", path, err)
	}
	return nil
}

// GridProjectionFallback exposes the two-level fall-back constants (the
// fallback year and the ultimate kgCO2e/kWh) from grid-projection-eia.json for
// pkg/projection to consume without re-parsing the file.
func GridProjectionFallback() (fallbackYear int, ultimate float64, err error) {
	var gridProj gridProjectionFile
	if err := readJSON("data/grid-projection-eia.json", &gridProj); err != nil {
		return 0, 0, err
	}
	return gridProj.FallbackYear, gridProj.UltimateFallbackKgCO2ePerKWh, nil
}
