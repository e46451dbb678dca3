package implementation

import (
	"context"
	"testing"
	"time"

	"usecase-catalog-be/internal/entity"
	"usecase-catalog-be/internal/repository/scope"
	"usecase-catalog-be/internal/repository/specification"
	"usecase-catalog-be/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seed(t *testing.T, repo *UseCaseRepositoryImpl, rows ...*entity.UseCase) {
	t.Helper()
	for _, row := range rows {
		require.NoError(t, repo.Create(context.Background(), row))
	}
}

func newRepo(t *testing.T) *UseCaseRepositoryImpl {
	return NewUseCaseRepository(testutil.NewDB(t)).(*UseCaseRepositoryImpl)
}

func TestUseCaseRepository_CreateAndFind(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	uc := &entity.UseCase{
		UseCase:            "Predictive Maintenance",
		ConceptDescription: "Use ML to predict failures",
		Industry:           testutil.StrPtr("Manufacturing"),
	}
	require.NoError(t, repo.Create(ctx, uc))
	assert.NotZero(t, uc.Id)
	assert.False(t, uc.CreatedAt.IsZero())

	found, err := repo.FindOne(ctx, specification.ByID{ID: uc.Id})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Predictive Maintenance", found.UseCase)
	assert.Equal(t, "Manufacturing", *found.Industry)
	assert.Nil(t, found.Benefit)

	missing, err := repo.FindOne(ctx, specification.ByID{ID: uc.Id + 100})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUseCaseRepository_ByUseCaseNameIgnoresCase(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	seed(t, repo, &entity.UseCase{UseCase: "Digital Twin", ConceptDescription: "Virtual replica of assets"})

	found, err := repo.FindOne(ctx, specification.ByUseCaseName{Name: "DIGITAL twin"})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Digital Twin", found.UseCase)
}

func TestUseCaseRepository_UniqueNameIndex(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	seed(t, repo, &entity.UseCase{UseCase: "Demand Forecasting", ConceptDescription: "Forecast demand with ML"})

	err := repo.Create(ctx, &entity.UseCase{UseCase: "demand forecasting", ConceptDescription: "Another description"})
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUseCaseRepository_FiltersAndSearch(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	seed(t, repo,
		&entity.UseCase{
			UseCase:            "Predictive Maintenance",
			ConceptDescription: "Use ML to predict failures",
			Industry:           testutil.StrPtr("Manufacturing"),
			Department:         testutil.StrPtr("Operations"),
		},
		&entity.UseCase{
			UseCase:            "Chatbot Support",
			ConceptDescription: "Answer customer questions automatically",
			Benefit:            testutil.StrPtr("Lower PREDICTIVE staffing costs"),
			Industry:           testutil.StrPtr("Retail"),
		},
		&entity.UseCase{
			UseCase:            "Route Optimization",
			ConceptDescription: "Shorter delivery routes with 100% coverage",
			Industry:           testutil.StrPtr("manufacturing"),
		},
	)

	t.Run("industry equality ignores case", func(t *testing.T) {
		rows, err := repo.FindAll(ctx, specification.ByIndustry{Industry: "MANUFACTURING"})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("industry is exact not substring", func(t *testing.T) {
		rows, err := repo.FindAll(ctx, specification.ByIndustry{Industry: "Manu"})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("search spans name description and benefit", func(t *testing.T) {
		rows, err := repo.FindAll(ctx, specification.UseCaseSearchQuery{Query: "predictive"})
		require.NoError(t, err)
		names := []string{}
		for _, r := range rows {
			names = append(names, r.UseCase)
		}
		assert.ElementsMatch(t, []string{"Predictive Maintenance", "Chatbot Support"}, names)
	})

	t.Run("search treats wildcards literally", func(t *testing.T) {
		rows, err := repo.FindAll(ctx, specification.UseCaseSearchQuery{Query: "100%"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Route Optimization", rows[0].UseCase)

		rows, err = repo.FindAll(ctx, specification.UseCaseSearchQuery{Query: "%"})
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		count, err := repo.Count(ctx,
			specification.ByIndustry{Industry: "manufacturing"},
			specification.ByDepartment{Department: "operations"},
		)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})
}

func TestUseCaseRepository_OrderAndPagination(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUseCaseRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"Alpha case", "Bravo case", "Charlie case"} {
		uc := &entity.UseCase{
			UseCase:            name,
			ConceptDescription: "Some concept description",
			CreatedAt:          base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, repo.Create(ctx, uc))
	}

	order := specification.ScopeFunc(scope.OrderByCreatedDesc)

	page1, err := repo.FindAll(ctx, order, specification.PageOf(1, 2))
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "Charlie case", page1[0].UseCase)
	assert.Equal(t, "Bravo case", page1[1].UseCase)

	page2, err := repo.FindAll(ctx, order, specification.PageOf(2, 2))
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "Alpha case", page2[0].UseCase)
}

func TestUseCaseRepository_DistinctValues(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	seed(t, repo,
		&entity.UseCase{UseCase: "One case", ConceptDescription: "Description one", Industry: testutil.StrPtr("Retail")},
		&entity.UseCase{UseCase: "Two case", ConceptDescription: "Description two", Industry: testutil.StrPtr("Energy")},
		&entity.UseCase{UseCase: "Three case", ConceptDescription: "Description three", Industry: testutil.StrPtr("Retail")},
		&entity.UseCase{UseCase: "Four case", ConceptDescription: "Description four"},
	)

	industries, err := repo.DistinctValues(ctx, "industry")
	require.NoError(t, err)
	assert.Equal(t, []string{"Energy", "Retail"}, industries)

	departments, err := repo.DistinctValues(ctx, "department")
	require.NoError(t, err)
	assert.Empty(t, departments)

	_, err = repo.DistinctValues(ctx, "use_case; DROP TABLE use_cases")
	assert.Error(t, err)
}
