package handler

import "time"

// --- Request / Response types ---

type projectRequest struct {
	Title          string  `json:"title"           validate:"required,max=500"`
	Leader         string  `json:"leader"`
	Staff          string  `json:"staff"`
	StartDate      string  `json:"start_date"      validate:"omitempty,datetime=2006-01-02"`
	CompletionDate string  `json:"completion_date" validate:"omitempty,datetime=2006-01-02"`
	Budget         float64 `json:"budget"          validate:"gte=0"`
	FundSource     string  `json:"fund_source"`
	Location       string  `json:"location"`
	ResearchType   string  `json:"research_type"`
	Status         string  `json:"status"          validate:"omitempty,oneof=New Continuing On-going Completed"`
	Remarks        string  `json:"remarks"`
}

// projectQuery is shared by the list, export and report endpoints.
type projectQuery struct {
	Search string `query:"search"`
	Status string `query:"status" validate:"omitempty,oneof=New Continuing On-going Completed"`
	Year   int    `query:"year"   validate:"omitempty,gte=1900,lte=9999"`
}

type projectLinks struct {
	Self string `json:"self"`
}

type projectResponse struct {
	ID             int64        `json:"id"`
	OwnerID        int64        `json:"owner_id"`
	Title          string       `json:"title"`
	Leader         string       `json:"leader"`
	Staff          string       `json:"staff"`
	StartDate      string       `json:"start_date"`
	CompletionDate string       `json:"completion_date"`
	Budget         float64      `json:"budget"`
	FundSource     string       `json:"fund_source"`
	Location       string       `json:"location"`
	ResearchType   string       `json:"research_type"`
	Status         string       `json:"status"`
	Remarks        string       `json:"remarks"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	Links          projectLinks `json:"_links"`
}

type listProjectsResponse struct {
	Count    int               `json:"count"`
	Projects []projectResponse `json:"projects"`
}
