package unitofwork_test

import (
	"context"
	"log"
	"os"
	"testing"

	"usecase-catalog-be/internal/entity"
	"usecase-catalog-be/internal/model"
	"usecase-catalog-be/internal/repository/specification"
	"usecase-catalog-be/internal/repository/unitofwork"
	"usecase-catalog-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostgresUnitOfWork(t *testing.T) {
	if err := godotenv.Load("../../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn, database.DefaultPoolConfig())
	require.NoError(t, err)
	require.NoError(t, model.Migrate(gormDB))

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Ping())
	t.Cleanup(func() { _ = sqlDB.Close() })

	ctx := context.Background()
	factory := unitofwork.NewRepositoryFactory(gormDB)

	t.Run("rolled back rows are not visible", func(t *testing.T) {
		name := "Integration " + uuid.NewString()

		uow := factory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.UseCaseRepository().Create(ctx, &entity.UseCase{
			UseCase:            name,
			ConceptDescription: "Created inside a transaction",
		}))
		require.NoError(t, uow.Rollback())

		found, err := factory.NewUnitOfWork(ctx).UseCaseRepository().FindOne(ctx, specification.ByUseCaseName{Name: name})
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("unique index ignores case", func(t *testing.T) {
		name := "Integration " + uuid.NewString()

		uow := factory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		repo := uow.UseCaseRepository()
		require.NoError(t, repo.Create(ctx, &entity.UseCase{UseCase: name, ConceptDescription: "First insert wins"}))

		err := repo.Create(ctx, &entity.UseCase{UseCase: swapCase(name), ConceptDescription: "Second insert loses"})
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})
}

func swapCase(s string) string {
	out := []rune(s)
	for i, r := range out {
		switch {
		case r >= 'a' && r <= 'z':
			out[i] = r - 32
		case r >= 'A' && r <= 'Z':
			out[i] = r + 32
		}
	}
	return string(out)
}
