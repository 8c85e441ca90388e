package dto

import "strings"

type CreateProjectRequest struct {
	Name              string   `json:"name" validate:"required"`
	TargetDomain      string   `json:"target_domain" validate:"required"`
	EnumerationMethod string   `json:"enumeration_method" validate:"oneof=auto manual"`
	Subdomains        []string `json:"subdomains,omitempty"`
}

func (r *CreateProjectRequest) Validate() []string {
	var errors []string

	if strings.TrimSpace(r.Name) == "" {
		errors = append(errors, "name is required")
	}
	if strings.TrimSpace(r.TargetDomain) == "" {
		errors = append(errors, "target_domain is required")
	}

	switch r.EnumerationMethod {
	case "auto":
	case "manual", "":
		// manual projects may start empty and grow by hand
	default:
		errors = append(errors, "enumeration_method must be auto or manual")
	}

	return errors
}

type AddSubdomainRequest struct {
	Name string `json:"name" validate:"required"`
}

func (r *AddSubdomainRequest) Validate() []string {
	if strings.TrimSpace(r.Name) == "" {
		return []string{"name is required"}
	}
	return nil
}
