package viewmodels

type Assignment struct {
	ID         string `json:"id"`
	LineageID  string `json:"lineage_id"`
	Version    int    `json:"version"`
	PersonID   string `json:"person_id"`
	UnitID     string `json:"unit_id"`
	JobTitleID string `json:"job_title_id"`
	Percentage int    `json:"percentage"`
	AdInterim  bool   `json:"is_ad_interim"`
	UnitBoss   bool   `json:"is_unit_boss"`
	Notes      string `json:"notes,omitempty"`
	Status     string `json:"status"`
	ValidFrom  string `json:"valid_from"`
	ValidTo    string `json:"valid_to,omitempty"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type AssignmentList struct {
	Items []Assignment `json:"items"`
	Total int64        `json:"total"`
}

type AssignmentHistory struct {
	LineageID string       `json:"lineage_id"`
	Versions  []Assignment `json:"versions"`
}

type PersonWorkload struct {
	PersonID    string       `json:"person_id"`
	TotalPoints int          `json:"total_percentage"`
	Band        string       `json:"band"`
	Assignments []Assignment `json:"assignments,omitempty"`
}

type WorkloadReport struct {
	Items []PersonWorkload `json:"items"`
}
