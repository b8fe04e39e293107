package viewmodels

type Unit struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
	Emoji       string `json:"emoji,omitempty"`
	ParentID    string `json:"parent_id,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type UnitList struct {
	Items []Unit `json:"items"`
	Total int64  `json:"total"`
}

type JobTitle struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type JobTitleList struct {
	Items []JobTitle `json:"items"`
	Total int64      `json:"total"`
}

type TreeNode struct {
	Unit     Unit       `json:"unit"`
	Children []TreeNode `json:"children"`
}

type Tree struct {
	Roots []TreeNode `json:"roots"`
}

type Breadcrumbs struct {
	Path []Unit `json:"path"`
}

type Descendants struct {
	Items []Unit `json:"items"`
}

type SpanOfControl struct {
	Unit             Unit `json:"unit"`
	DirectChildren   int  `json:"direct_children"`
	TotalDescendants int  `json:"total_descendants"`
	DirectHeadcount  int  `json:"direct_headcount"`
	TotalHeadcount   int  `json:"total_headcount"`
}

type MatrixCell struct {
	UnitID     string `json:"unit_id"`
	JobTitleID string `json:"job_title_id"`
	Headcount  int    `json:"headcount"`
}

type Matrix struct {
	Units     []Unit       `json:"units"`
	JobTitles []JobTitle   `json:"job_titles"`
	Cells     []MatrixCell `json:"cells"`
}
