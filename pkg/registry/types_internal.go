package registry

// These mirror the on-disk JSON shape of the embedded reference tables.
// They exist only to decode the bundled files; registry.Load converts them
// into the typed ghgtypes.FactorSet the rest of the engine consumes.

type epaFile struct {
	Stationary []struct {
		Fuel                      string   `json:"fuel"`
		CO2KgPerUnit              float64  `json:"co2_kg_per_unit"`
		CH4GPerUnit               float64  `json:"ch4_g_per_unit"`
		N2OGPerUnit               float64  `json:"n2o_g_per_unit"`
		NativeUnit                string   `json:"native_unit"`
		HeatContentMMBtuPerNative *float64 `json:"heat_content_mmbtu_per_native"`
	} `json:"stationary"`
	Mobile []struct {
		VehicleType    string  `json:"vehicle_type"`
		FuelType       string  `json:"fuel_type"`
		CO2KgPerGallon float64 `json:"co2_kg_per_gallon"`
		CH4GPerMile    float64 `json:"ch4_g_per_mile"`
		N2OGPerMile    float64 `json:"n2o_g_per_mile"`
		DefaultMPG     float64 `json:"default_mpg"`
	} `json:"mobile"`
	BusinessTravel []factorEntry `json:"business_travel"`
	Commuting      []factorEntry `json:"commuting"`
	ProductTransport []factorEntry `json:"product_transport"`
	UpstreamWTT    []struct {
		Fuel                  string   `json:"fuel"`
		KgPerNativeUnitMMBtu  *float64 `json:"kg_per_native_unit_mmbtu"`
		KgPerNativeUnitGallon *float64 `json:"kg_per_native_unit_gallon"`
	} `json:"upstream_wtt"`
	WasteFactors []struct {
		WasteType      string  `json:"waste_type"`
		DisposalMethod string  `json:"disposal_method"`
		TCO2ePerShortTon float64 `json:"tco2e_per_short_ton"`
	} `json:"waste_factors"`
	WaterSupplyPer1000Gal   float64 `json:"water_supply_per_1000_gal"`
	WaterTreatmentPer1000Gal []struct {
		TreatmentType  string  `json:"treatment_type"`
		TCO2ePer1000Gal float64 `json:"tco2e_per_1000gal"`
	} `json:"water_treatment_per_1000_gal"`
}

type factorEntry struct {
	Mode      string  `json:"mode"`
	KgPerUnit float64 `json:"kg_per_unit"`
}

type egridFile struct {
	Subregions []struct {
		Subregion       string  `json:"subregion"`
		KgCO2ePerKWh    float64 `json:"kg_co2e_per_kwh"`
		GrossLossPct    float64 `json:"grid_gross_loss_pct"`
	} `json:"subregions"`
	StateToSubregion          map[string]string  `json:"state_to_subregion"`
	InternationalGridFactors  map[string]float64 `json:"international_grid_factors"`
}

type gwpFile struct {
	Gases []struct {
		Name       string  `json:"name"`
		CommonName string  `json:"common_name"`
		GWP100     float64 `json:"gwp100"`
	} `json:"gases"`
	DefaultLeakRatesByEquipment map[string]float64 `json:"default_leak_rates_by_equipment"`
}

type cbecsFile struct {
	Benchmarks []struct {
		BuildingType string  `json:"building_type"`
		EUIKBtuPerSqFt quartiles `json:"eui_kbtu_per_sqft"`
		FuelSplit     map[string]float64 `json:"fuel_split"`
		KgCO2ePerSqFt quartiles `json:"kg_co2e_per_sqft"`
	} `json:"benchmarks"`
}

type quartiles struct {
	P25    float64 `json:"p25"`
	Median float64 `json:"median"`
	P75    float64 `json:"p75"`
}

type climateFile struct {
	Zones []struct {
		Zone  string  `json:"zone"`
		HDD65 float64 `json:"hdd65"`
		CDD65 float64 `json:"cdd65"`
	} `json:"zones"`
	StateToDefaultZone map[string]string `json:"state_to_default_zone"`
}

type spendFile struct {
	Sectors []struct {
		Sector   string  `json:"sector"`
		KgPerUSD float64 `json:"kg_per_usd"`
	} `json:"sectors"`
}

type gridProjectionFile struct {
	NationalGridEFByYear []struct {
		Year         int     `json:"year"`
		KgCO2ePerKWh float64 `json:"kg_co2e_per_kwh"`
	} `json:"national_grid_ef_by_year"`
	FallbackYear                 int     `json:"fallback_year"`
	UltimateFallbackKgCO2ePerKWh float64 `json:"ultimate_fallback_kg_co2e_per_kwh"`
}
