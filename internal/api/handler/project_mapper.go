package handler

import (
	"strconv"

	"github.com/rpdbs/research-databank/internal/core/domain"
)

func toProjectFields(req projectRequest) domain.ProjectFields {
	return domain.ProjectFields{
		Title:          req.Title,
		Leader:         req.Leader,
		Staff:          req.Staff,
		StartDate:      req.StartDate,
		CompletionDate: req.CompletionDate,
		Budget:         req.Budget,
		FundSource:     req.FundSource,
		Location:       req.Location,
		ResearchType:   req.ResearchType,
		Status:         domain.ProjectStatus(req.Status),
		Remarks:        req.Remarks,
	}
}

func toProjectFilter(q projectQuery) domain.ProjectFilter {
	return domain.ProjectFilter{
		Search: q.Search,
		Status: domain.ProjectStatus(q.Status),
		Year:   q.Year,
	}
}

func toProjectResponse(p *domain.Project) projectResponse {
	return projectResponse{
		ID:             p.ID,
		OwnerID:        p.OwnerID,
		Title:          p.Title,
		Leader:         p.Leader,
		Staff:          p.Staff,
		StartDate:      p.StartDate,
		CompletionDate: p.CompletionDate,
		Budget:         p.Budget,
		FundSource:     p.FundSource,
		Location:       p.Location,
		ResearchType:   p.ResearchType,
		Status:         string(p.Status),
		Remarks:        p.Remarks,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		Links:          projectLinks{Self: "/v1/projects/" + strconv.FormatInt(p.ID, 10)},
	}
}

func toListResponse(projects []*domain.Project) listProjectsResponse {
	out := listProjectsResponse{Count: len(projects), Projects: make([]projectResponse, len(projects))}
	for i, p := range projects {
		out.Projects[i] = toProjectResponse(p)
	}
	return out
}
