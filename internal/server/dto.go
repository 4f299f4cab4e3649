package server

import (
	"github.com/ecolink/ecolink/internal/directory"
	"github.com/ecolink/ecolink/internal/matching"
	"github.com/ecolink/ecolink/internal/waste"
)

type classifyRequest struct {
	Bio string `json:"bio"`
}

type classifyResponse struct {
	Waste []waste.Tag `json:"waste"`
}

type matchRequest struct {
	Waste    []string `json:"waste"`
	Category string   `json:"category"`
	Search   string   `json:"search"`
}

type matchResponse struct {
	Companies       []companyResponse `json:"companies"`
	BestMatches     []string          `json:"best_matches"`
	ShowBestMatches bool              `json:"show_best_matches"`
	Steps           []stepResponse    `json:"steps"`
}

type companyResponse struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description,omitempty"`
	AcceptedWaste []waste.Tag `json:"accepted_waste"`
	BestMatch     *bool       `json:"best_match,omitempty"`
}

type stepResponse struct {
	Name    string `json:"name"`
	Initial int    `json:"initial"`
	Dropped int    `json:"dropped"`
	Left    int    `json:"left"`
}

type categoryResponse struct {
	Key  string      `json:"key"`
	Name string      `json:"name"`
	Tags []waste.Tag `json:"tags"`
}

type explainResponse struct {
	Company companyResponse `json:"company"`
	Shared  []waste.Tag     `json:"shared"`
}

func toCompany(c *directory.Company) companyResponse {
	accepted := make([]waste.Tag, len(c.AcceptedWaste))
	copy(accepted, c.AcceptedWaste)
	return companyResponse{
		ID:            c.ID.String(),
		Name:          c.Name,
		Description:   c.Description,
		AcceptedWaste: accepted,
	}
}

func toMatch(result matching.Result) matchResponse {
	resp := matchResponse{
		Companies:       make([]companyResponse, len(result.Entries)),
		BestMatches:     make([]string, len(result.BestMatches)),
		ShowBestMatches: result.ShowBestMatches,
		Steps:           make([]stepResponse, len(result.Steps)),
	}

	for i, e := range result.Entries {
		c := toCompany(e.Company)
		best := e.BestMatch
		c.BestMatch = &best
		resp.Companies[i] = c
	}
	for i, c := range result.BestMatches {
		resp.BestMatches[i] = c.ID.String()
	}
	for i, step := range result.Steps {
		resp.Steps[i] = stepResponse(step)
	}
	return resp
}
