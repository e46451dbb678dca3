package mapper

import (
	"usecase-catalog-be/internal/dto"
	"usecase-catalog-be/internal/entity"
	"usecase-catalog-be/internal/model"
)

type UseCaseMapper struct{}

func NewUseCaseMapper() *UseCaseMapper {
	return &UseCaseMapper{}
}

func (m *UseCaseMapper) ToEntity(u *model.UseCase) *entity.UseCase {
	if u == nil {
		return nil
	}
	return &entity.UseCase{
		Id:                     u.Id,
		UseCase:                u.UseCase,
		ConceptDescription:     u.ConceptDescription,
		ConcreteImplementation: u.ConcreteImplementation,
		Benefit:                u.Benefit,
		Industry:               u.Industry,
		Department:             u.Department,
		ValueChainStep:         u.ValueChainStep,
		Url:                    u.Url,
		CreatedAt:              u.CreatedAt,
		UpdatedAt:              u.UpdatedAt,
	}
}

func (m *UseCaseMapper) ToModel(u *entity.UseCase) *model.UseCase {
	if u == nil {
		return nil
	}
	return &model.UseCase{
		Id:                     u.Id,
		UseCase:                u.UseCase,
		ConceptDescription:     u.ConceptDescription,
		ConcreteImplementation: u.ConcreteImplementation,
		Benefit:                u.Benefit,
		Industry:               u.Industry,
		Department:             u.Department,
		ValueChainStep:         u.ValueChainStep,
		Url:                    u.Url,
		CreatedAt:              u.CreatedAt,
		UpdatedAt:              u.UpdatedAt,
	}
}

func (m *UseCaseMapper) ToEntities(useCases []*model.UseCase) []*entity.UseCase {
	entities := make([]*entity.UseCase, len(useCases))
	for i, u := range useCases {
		entities[i] = m.ToEntity(u)
	}
	return entities
}

func (m *UseCaseMapper) ToResponse(u *entity.UseCase) *dto.UseCaseResponse {
	if u == nil {
		return nil
	}
	return &dto.UseCaseResponse{
		Id:                     u.Id,
		UseCase:                u.UseCase,
		ConceptDescription:     u.ConceptDescription,
		ConcreteImplementation: u.ConcreteImplementation,
		Benefit:                u.Benefit,
		Industry:               u.Industry,
		Department:             u.Department,
		ValueChainStep:         u.ValueChainStep,
		Url:                    u.Url,
		CreatedAt:              u.CreatedAt,
		UpdatedAt:              u.UpdatedAt,
	}
}

func (m *UseCaseMapper) ToResponses(useCases []*entity.UseCase) []*dto.UseCaseResponse {
	res := make([]*dto.UseCaseResponse, len(useCases))
	for i, u := range useCases {
		res[i] = m.ToResponse(u)
	}
	return res
}
