package dto

type DrawResultDTO struct {
	Date    string   `json:"date" example:"2024-11-20"`
	Special string   `json:"special" example:"92568"`
	First   string   `json:"first" example:"37815"`
	Second  []string `json:"second"`
	Third   []string `json:"third"`
	Fourth  []string `json:"fourth"`
	Fifth   []string `json:"fifth"`
	Sixth   []string `json:"sixth"`
	Seventh []string `json:"seventh"`
}

// DrawViewDTO is the derived lo view of a draw: trailing 2- and 3-digit
// endings across all 27 prize numbers.
type DrawViewDTO struct {
	Date       string   `json:"date" example:"2024-11-20"`
	TwoDigit   []string `json:"two_digit"`
	ThreeDigit []string `json:"three_digit"`
}

type RatesDTO struct {
	Version       int              `json:"version" example:"3"`
	Rates         map[string]int64 `json:"rates"`
	EffectiveFrom string           `json:"effective_from,omitempty" example:"2024-11-01T00:00:00+07:00"`
}

type SettlementRequestDTO struct {
	Date string `json:"date" example:"2024-11-20"`
}
