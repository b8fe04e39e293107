package viewmodels

type Person struct {
	ID             string `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	FullName       string `json:"full_name"`
	ShortName      string `json:"short_name,omitempty"`
	RegistrationNo string `json:"registration_no"`
	Email          string `json:"email,omitempty"`
	ProfileImage   string `json:"profile_image,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

type PersonList struct {
	Items []Person `json:"items"`
	Total int64    `json:"total"`
}
