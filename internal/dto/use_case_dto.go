package dto

import "time"

type CreateUseCaseRequest struct {
	UseCase                string `json:"useCase" validate:"required,min=3,max=500"`
	ConceptDescription     string `json:"conceptDescription" validate:"required,min=10,max=10000"`
	ConcreteImplementation string `json:"concreteImplementation" validate:"omitempty,max=10000"`
	Benefit                string `json:"benefit" validate:"omitempty,max=10000"`
	Industry               string `json:"industry" validate:"omitempty,max=200"`
	Department             string `json:"department" validate:"omitempty,max=200"`
	ValueChainStep         string `json:"valueChainStep" validate:"omitempty,max=200"`
	Url                    string `json:"url" validate:"omitempty,max=2048"`
}

type UseCaseResponse struct {
	Id                     uint64    `json:"id"`
	UseCase                string    `json:"useCase"`
	ConceptDescription     string    `json:"conceptDescription"`
	ConcreteImplementation *string   `json:"concreteImplementation"`
	Benefit                *string   `json:"benefit"`
	Industry               *string   `json:"industry"`
	Department             *string   `json:"department"`
	ValueChainStep         *string   `json:"valueChainStep"`
	Url                    *string   `json:"url"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

type ListUseCasesRequest struct {
	Page           int    `json:"page" validate:"min=1"`
	Limit          int    `json:"limit" validate:"min=1,max=100"`
	Industry       string `json:"industry" validate:"max=200"`
	ValueChainStep string `json:"valueChainStep" validate:"max=200"`
	Department     string `json:"department" validate:"max=200"`
	Search         string `json:"search" validate:"max=200"`
}

type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// AppliedFiltersResponse echoes the filters that actually narrowed the query.
type AppliedFiltersResponse struct {
	Industry       *string `json:"industry,omitempty"`
	ValueChainStep *string `json:"valueChainStep,omitempty"`
	Department     *string `json:"department,omitempty"`
	Search         *string `json:"search,omitempty"`
}

type ListUseCasesResponse struct {
	UseCases   []*UseCaseResponse     `json:"useCases"`
	Pagination PaginationResponse     `json:"pagination"`
	Filters    AppliedFiltersResponse `json:"filters"`
}

type UseCaseFiltersResponse struct {
	Industries      []string `json:"industries"`
	ValueChainSteps []string `json:"valueChainSteps"`
	Departments     []string `json:"departments"`
}

type UseCaseCreatedMessage struct {
	Id        uint64    `json:"id"`
	UseCase   string    `json:"useCase"`
	CreatedAt time.Time `json:"createdAt"`
}

type HealthResponse struct {
	Status        string    `json:"status"`
	Environment   string    `json:"environment"`
	Timestamp     time.Time `json:"timestamp"`
	UptimeSeconds int64     `json:"uptimeSeconds"`
}
