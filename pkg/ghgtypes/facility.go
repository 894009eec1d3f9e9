// Package ghgtypes is the data model shared by every component of the
// engine: the immutable FacilityProfile and FactorSet inputs, and the
// EmissionResult/SimulationResult/ScenarioResult outputs. It mirrors the
// layout of the teacher's pkg/types/v1 package: plain structs, enumerated
// string-backed key types (with no fall-back variant; any string converts
// to a key), and no behavior beyond small accessors.
package ghgtypes

// BuildingType enumerates the facility archetypes the CBECS benchmarks and
// estimator fallback are keyed on.
type BuildingType string

const (
	BuildingOffice        BuildingType = "office"
	BuildingWarehouse     BuildingType = "warehouse"
	BuildingManufacturing BuildingType = "manufacturing"
	BuildingDataCenter    BuildingType = "data_center"
	BuildingHospital      BuildingType = "hospital"
	BuildingRetail        BuildingType = "retail"
	BuildingEducation     BuildingType = "education"
	BuildingFoodService   BuildingType = "food_service"
	BuildingLodging       BuildingType = "lodging"
)

// InputMode selects how aggressively the estimator fallback fills gaps in
// the facility's reported energy use.
type InputMode string

const (
	InputModeBasic    InputMode = "basic"
	InputModeAdvanced InputMode = "advanced"
	InputModeExpert   InputMode = "expert"
)

// FuelKey enumerates the stationary-combustion fuels a facility may report
// energy for. There is no Other variant: a key that isn't one of the
// constants below is kept as supplied, and a calculator with no factor for
// it skips it.
type FuelKey string

const (
	FuelElectricity FuelKey = "electricity"
	FuelNaturalGas  FuelKey = "naturalGas"
	FuelDiesel      FuelKey = "diesel"
	FuelOil2        FuelKey = "fuelOil2"
	FuelOil6        FuelKey = "fuelOil6"
	FuelPropane     FuelKey = "propane"
	FuelKerosene    FuelKey = "kerosene"
)

// DataQuality tags the provenance of a single reported or estimated value.
type DataQuality string

const (
	DataQualityMeasured  DataQuality = "measured"
	DataQualityEstimated DataQuality = "estimated"
	DataQualityModeled   DataQuality = "modeled"
)

// EnergyPeriod is the reporting cadence of an EnergyLineItem.
type EnergyPeriod string

const (
	PeriodAnnual  EnergyPeriod = "annual"
	PeriodMonthly EnergyPeriod = "monthly"
)

// EnergyLineItem is one fuel's reported (or estimator-filled) consumption.
type EnergyLineItem struct {
	Quantity    float64
	Unit        string
	Period      EnergyPeriod
	DataQuality DataQuality
	IsRenewable bool
	// SupplierEF, when non-nil, is a supplier-specific market-based
	// emission factor in kg CO2e/kWh for the electricity line item.
	SupplierEF *float64
}

// AnnualQuantity returns the line item's quantity normalized to an annual
// basis.
func (e EnergyLineItem) AnnualQuantity() float64 {
	if e.Period == PeriodMonthly {
		return e.Quantity * 12
	}
	return e.Quantity
}

// RefrigerantType names a refrigerant gas by its formal or common name;
// resolution against the GWP table happens in the registry.
type RefrigerantType string

// RefrigerantLineItem describes one piece of refrigerant-charged equipment.
type RefrigerantLineItem struct {
	Type          RefrigerantType
	ChargeKg      float64
	LeakRate      float64 // in [0,1]; 0 means "use default"
	EquipmentType string
	DataQuality   DataQuality
}

// VehicleFuelType enumerates fleet fuel types.
type VehicleFuelType string

const (
	VehicleFuelGasoline VehicleFuelType = "gasoline"
	VehicleFuelDiesel   VehicleFuelType = "diesel"
	VehicleFuelEV       VehicleFuelType = "ev"
	VehicleFuelHybrid   VehicleFuelType = "hybrid"
)

// FleetGroup is one homogeneous group of vehicles in the facility's fleet.
type FleetGroup struct {
	VehicleType          string
	FuelType             VehicleFuelType
	Count                float64
	AnnualMilesPerVehicle float64
	FuelEfficiency       *float64 // mpg override, nil means "use default table"
	DataQuality          DataQuality
}

// TotalMiles is the group's total annual vehicle-miles.
func (f FleetGroup) TotalMiles() float64 {
	return f.Count * f.AnnualMilesPerVehicle
}

// WasteLineItem is one reported waste stream.
type WasteLineItem struct {
	WasteType       string
	DisposalMethod  string
	AnnualTonnes    float64 // metric tonnes
	DataQuality     DataQuality
}

// WaterLineItem is one reported water source.
type WaterLineItem struct {
	Source         string
	AnnualGallons  float64
	TreatmentType  string
	DataQuality    DataQuality
}

// Occupancy carries the optional headcount inputs used for intensity and
// commuting calculations.
type Occupancy struct {
	Employees     float64
	AnnualVisitors float64
}

// FacilityProfile is the immutable input record for a single computeAll
// call. External collaborators build it; the core only ever reads it.
type FacilityProfile struct {
	Name        string
	Building    BuildingType
	SquareFeet  float64
	YearBuilt   *int

	Country        string
	State          string
	Zip            string
	City           string
	ClimateZone    string
	EGRIDSubregion string
	Latitude       *float64
	Longitude      *float64

	InputMode InputMode

	Energy       map[FuelKey]EnergyLineItem
	Refrigerants []RefrigerantLineItem
	Fleet        []FleetGroup
	Waste        []WasteLineItem
	Water        []WaterLineItem
	Scope3       Scope3Inputs

	Occupancy *Occupancy
}

// Clone returns a deep copy of the profile so Monte Carlo perturbation
// never mutates the caller's original.
func (f *FacilityProfile) Clone() *FacilityProfile {
	if f == nil {
		return nil
	}
	clone := *f
	if f.YearBuilt != nil {
		yb := *f.YearBuilt
		clone.YearBuilt = &yb
	}
	if f.Latitude != nil {
		lat := *f.Latitude
		clone.Latitude = &lat
	}
	if f.Longitude != nil {
		lon := *f.Longitude
		clone.Longitude = &lon
	}
	if f.Occupancy != nil {
		occ := *f.Occupancy
		clone.Occupancy = &occ
	}
	clone.Energy = make(map[FuelKey]EnergyLineItem, len(f.Energy))
	for k, v := range f.Energy {
		if v.SupplierEF != nil {
			ef := *v.SupplierEF
			v.SupplierEF = &ef
		}
		clone.Energy[k] = v
	}
	clone.Refrigerants = append([]RefrigerantLineItem(nil), f.Refrigerants...)
	clone.Fleet = make([]FleetGroup, len(f.Fleet))
	for i, fg := range f.Fleet {
		if fg.FuelEfficiency != nil {
			v := *fg.FuelEfficiency
			fg.FuelEfficiency = &v
		}
		clone.Fleet[i] = fg
	}
	clone.Waste = append([]WasteLineItem(nil), f.Waste...)
	clone.Water = append([]WaterLineItem(nil), f.Water...)
	clone.Scope3 = f.Scope3.clone()
	return &clone
}

// SpendEntry is one reported spend-based Scope 3 input (categories 1, 2, 8,
// 10-15).
type SpendEntry struct {
	Sector    string
	AnnualUSD float64
}

// TransportEntry is one reported ton-mile shipment (categories 4, 9).
type TransportEntry struct {
	Mode     string
	TonMiles float64
}

// TravelEntry is one reported business-travel leg (category 6).
type TravelEntry struct {
	Mode       string
	PaxMiles   float64
}

// CommuteMode is one mode's share of the commuting population and its
// one-way distance (category 7).
type CommuteMode struct {
	Mode          string
	Share         float64 // fraction of employees in [0,1]
	OneWayMiles   float64
}

// Scope3Inputs bundles the optional set-valued inputs for the 15 Scope 3
// categories, keyed loosely by category number via named fields since each
// category's shape differs.
type Scope3Inputs struct {
	Spend       map[int][]SpendEntry // category -> entries
	Transport   []TransportEntry     // categories 4 and 9 combined; entries carry no category tag
	Travel      []TravelEntry        // category 6
	Commute     []CommuteMode        // category 7
	WorkingDays float64              // category 7, default 250 if zero

	// AutoComputeCat3 and AutoComputeCat5 flag the two categories whose
	// value is derived from other reported inputs rather than a direct
	// entry (cat 3 from S1/S2 usage, cat 5 from Waste).
	AutoComputeCat3 bool
	AutoComputeCat5 bool
}

func (s Scope3Inputs) clone() Scope3Inputs {
	clone := s
	if s.Spend != nil {
		clone.Spend = make(map[int][]SpendEntry, len(s.Spend))
		for k, v := range s.Spend {
			clone.Spend[k] = append([]SpendEntry(nil), v...)
		}
	}
	clone.Transport = append([]TransportEntry(nil), s.Transport...)
	clone.Travel = append([]TravelEntry(nil), s.Travel...)
	clone.Commute = append([]CommuteMode(nil), s.Commute...)
	return clone
}
