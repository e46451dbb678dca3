package entity

import "time"

type UseCase struct {
	Id                     uint64
	UseCase                string
	ConceptDescription     string
	ConcreteImplementation *string
	Benefit                *string
	Industry               *string
	Department             *string
	ValueChainStep         *string
	Url                    *string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// UseCaseFilterValues are the distinct categorical values present in the store.
type UseCaseFilterValues struct {
	Industries      []string
	ValueChainSteps []string
	Departments     []string
}
