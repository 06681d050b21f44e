package advisor

// OptimizationRecommendation is one scored strategy candidate. Feasibility
// is a first-class field derived from the RAM comparison; the summary text
// is rendered from it, never the other way around.
type OptimizationRecommendation struct {
	Strategy       Strategy `json:"strategy"`
	StrategyName   string   `json:"strategy_name"`
	EstimatedROMKB float64  `json:"estimated_rom_kb"`
	EstimatedRAMKB float64  `json:"estimated_ram_kb"`
	Feasible       bool     `json:"feasible"`
	PriorityScore  float64  `json:"priority_score"`
	Summary        string   `json:"summary"`
}

// AdvisorReport is the terminal, immutable output of an advisory run.
// Recommendations are ordered by descending priority score; equal scores
// preserve strategy-generation order.
type AdvisorReport struct {
	ModelSHA256     string                       `json:"model_sha256"`
	TargetHardware  string                       `json:"target_hardware"`
	Priority        Priority                     `json:"priority"`
	Recommendations []OptimizationRecommendation `json:"recommendations"`
}
