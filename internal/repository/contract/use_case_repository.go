package contract

import (
	"context"

	"usecase-catalog-be/internal/entity"
	"usecase-catalog-be/internal/repository/specification"
)

type UseCaseRepository interface {
	// Create inserts the row. A name that collides case-insensitively with an
	// existing row fails with gorm.ErrDuplicatedKey.
	Create(ctx context.Context, useCase *entity.UseCase) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UseCase, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UseCase, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// DistinctValues returns the distinct non-null, non-empty values of column in ascending order.
	DistinctValues(ctx context.Context, column string) ([]string, error)
}
