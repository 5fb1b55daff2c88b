package domain

// Placeholder fills optional listing fields the page did not provide.
const Placeholder = "N/A"

// Listing is one job card scraped from a board search page.
type Listing struct {
	Title          string `json:"title" yaml:"title"`
	EmploymentType string `json:"type" yaml:"type"`
	Salary         string `json:"salary" yaml:"salary"`
	Company        string `json:"company" yaml:"company"`
	CompanyImage   string `json:"company_image" yaml:"company_image"`
	PostedDate     string `json:"posted_date" yaml:"posted_date"` // YYYY-MM-DD
	Location       string `json:"location" yaml:"location"`
	PostingURL     string `json:"posting_url" yaml:"posting_url"`
}
