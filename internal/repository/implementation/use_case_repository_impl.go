package implementation

import (
	"context"
	"errors"
	"fmt"

	"usecase-catalog-be/internal/entity"
	"usecase-catalog-be/internal/mapper"
	"usecase-catalog-be/internal/model"
	"usecase-catalog-be/internal/repository/contract"
	"usecase-catalog-be/internal/repository/specification"

	"gorm.io/gorm"
)

// Columns DistinctValues may be asked for. The name is interpolated into SQL.
var distinctColumns = map[string]bool{
	"industry":         true,
	"department":       true,
	"value_chain_step": true,
}

type UseCaseRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UseCaseMapper
}

func NewUseCaseRepository(db *gorm.DB) contract.UseCaseRepository {
	return &UseCaseRepositoryImpl{
		db:     db,
		mapper: mapper.NewUseCaseMapper(),
	}
}

func (r *UseCaseRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UseCaseRepositoryImpl) Create(ctx context.Context, useCase *entity.UseCase) error {
	m := r.mapper.ToModel(useCase)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		return fmt.Errorf("insert use case: %w", err)
	}
	*useCase = *r.mapper.ToEntity(m)
	return nil
}

func (r *UseCaseRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UseCase, error) {
	var m model.UseCase
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UseCaseRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UseCase, error) {
	var models []*model.UseCase
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *UseCaseRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.UseCase{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UseCaseRepositoryImpl) DistinctValues(ctx context.Context, column string) ([]string, error) {
	if !distinctColumns[column] {
		return nil, fmt.Errorf("distinct values not supported for column %q", column)
	}

	values := make([]string, 0)
	err := r.db.WithContext(ctx).
		Model(&model.UseCase{}).
		Where(fmt.Sprintf("%s IS NOT NULL AND %s <> ''", column, column)).
		Distinct().
		Order(fmt.Sprintf("%s ASC", column)).
		Pluck(column, &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}
