package unitofwork

import (
	"context"

	"usecase-catalog-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UseCaseRepository() contract.UseCaseRepository
}
