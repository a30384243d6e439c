package extract

import "strconv"

// PolymerRecord is one extracted data row: a sample identifier plus 17
// structural, morphological, and conductivity measurements. The JSON tags
// double as the CSV column names and must stay in sync with Header.
type PolymerRecord struct {
	SampleID                      string  `json:"sample_id"`
	AromaticRingCount             int     `json:"aromatic_ring_count"`
	FusedRingPresence             int     `json:"fused_ring_presence"`
	LinkageType                   string  `json:"linkage_type"`
	StericBulk                    string  `json:"steric_bulk"`
	DegreeOfSulfonationOrGrafting string  `json:"degree_of_sulfonation_or_grafting"`
	CationType                    string  `json:"cation_type"`
	AcidicProton                  int     `json:"acidic_proton"`
	AcidicProtonPosition          string  `json:"acidic_proton_position"`
	WaterUptakePercent            string  `json:"water_uptake_percent"`
	KOHUptakePercent              string  `json:"koh_uptake_percent"`
	FreeVolumeNm3PerG             string  `json:"free_volume_nm3_per_g"`
	SwellingDegreeAlkaline        string  `json:"swelling_degree_alkaline"`
	PorosityDescription           string  `json:"porosity_description"`
	ConductivityOHmSPerCm         float64 `json:"conductivity_oh_mS_per_cm"`
	TemperatureConductivityTested int     `json:"temperature_conductivity_tested"`
	KOHConcentrationTestedM       string  `json:"koh_concentration_tested_M"`
	AgingTimeInAlkalineConditions int     `json:"aging_time_in_alkaline_conditions"`
}

// Response is the top-level shape the model is constrained to return.
type Response struct {
	Data []PolymerRecord `json:"data"`
}

// Header returns the CSV column names in their fixed output order.
func Header() []string {
	return []string{
		"sample_id",
		"aromatic_ring_count",
		"fused_ring_presence",
		"linkage_type",
		"steric_bulk",
		"degree_of_sulfonation_or_grafting",
		"cation_type",
		"acidic_proton",
		"acidic_proton_position",
		"water_uptake_percent",
		"koh_uptake_percent",
		"free_volume_nm3_per_g",
		"swelling_degree_alkaline",
		"porosity_description",
		"conductivity_oh_mS_per_cm",
		"temperature_conductivity_tested",
		"koh_concentration_tested_M",
		"aging_time_in_alkaline_conditions",
	}
}

// Row renders the record as CSV cell values matching Header order.
func (r PolymerRecord) Row() []string {
	return []string{
		r.SampleID,
		strconv.Itoa(r.AromaticRingCount),
		strconv.Itoa(r.FusedRingPresence),
		r.LinkageType,
		r.StericBulk,
		r.DegreeOfSulfonationOrGrafting,
		r.CationType,
		strconv.Itoa(r.AcidicProton),
		r.AcidicProtonPosition,
		r.WaterUptakePercent,
		r.KOHUptakePercent,
		r.FreeVolumeNm3PerG,
		r.SwellingDegreeAlkaline,
		r.PorosityDescription,
		strconv.FormatFloat(r.ConductivityOHmSPerCm, 'g', -1, 64),
		strconv.Itoa(r.TemperatureConductivityTested),
		r.KOHConcentrationTestedM,
		strconv.Itoa(r.AgingTimeInAlkalineConditions),
	}
}

// ResponseSchema is the strict JSON Schema handed to the model as the
// response format. Field order and types mirror PolymerRecord.
func ResponseSchema() map[string]any {
	integer := map[string]any{"type": "integer"}
	str := map[string]any{"type": "string"}
	number := map[string]any{"type": "number"}

	properties := map[string]any{
		"sample_id":                         str,
		"aromatic_ring_count":               integer,
		"fused_ring_presence":               integer,
		"linkage_type":                      str,
		"steric_bulk":                       str,
		"degree_of_sulfonation_or_grafting": str,
		"cation_type":                       str,
		"acidic_proton":                     integer,
		"acidic_proton_position":            str,
		"water_uptake_percent":              str,
		"koh_uptake_percent":                str,
		"free_volume_nm3_per_g":             str,
		"swelling_degree_alkaline":          str,
		"porosity_description":              str,
		"conductivity_oh_mS_per_cm":         number,
		"temperature_conductivity_tested":   integer,
		"koh_concentration_tested_M":        str,
		"aging_time_in_alkaline_conditions": integer,
	}

	required := make([]string, 0, len(properties))
	required = append(required, Header()...)

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"data": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"properties":           properties,
					"required":             required,
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"data"},
		"additionalProperties": false,
	}
}
