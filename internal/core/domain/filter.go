package domain

import "strings"

// ProjectFilter narrows a project list after it has been read. Zero values
// disable the corresponding criterion.
type ProjectFilter struct {
	// Search is a case-insensitive substring match on the title.
	Search string
	// Status must match exactly.
	Status ProjectStatus
	// Year matches the year of the start date.
	Year int
}

// Match reports whether p satisfies every active criterion.
func (f ProjectFilter) Match(p *Project) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.Search)) {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Year != 0 && p.StartYear() != f.Year {
		return false
	}
	return true
}

// Apply returns the projects matching f, preserving order.
func (f ProjectFilter) Apply(projects []*Project) []*Project {
	out := make([]*Project, 0, len(projects))
	for _, p := range projects {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// ProjectSummary holds the aggregate figures shown on the admin dashboard.
type ProjectSummary struct {
	Total       int                   `json:"total"`
	ByStatus    map[ProjectStatus]int `json:"by_status"`
	TotalBudget float64               `json:"total_budget"`
}

// Summarize aggregates projects. Every known status is present in ByStatus,
// including those with a zero count.
func Summarize(projects []*Project) ProjectSummary {
	s := ProjectSummary{ByStatus: make(map[ProjectStatus]int, len(Statuses))}
	for _, st := range Statuses {
		s.ByStatus[st] = 0
	}
	for _, p := range projects {
		s.Total++
		s.ByStatus[p.Status]++
		s.TotalBudget += p.Budget
	}
	return s
}
