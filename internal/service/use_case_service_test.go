package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"usecase-catalog-be/internal/dto"
	"usecase-catalog-be/internal/pkg/apperror"
	"usecase-catalog-be/internal/pkg/logger"
	"usecase-catalog-be/internal/repository/cache"
	"usecase-catalog-be/internal/repository/unitofwork"
	"usecase-catalog-be/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingPublisher struct {
	mu       sync.Mutex
	messages []interface{}
	err      error
}

func (p *recordingPublisher) SendMessage(ctx context.Context, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, payload)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages)
}

type fixture struct {
	svc       IUseCaseService
	cache     *cache.MemoryCache
	publisher *recordingPublisher
	logs      *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	memCache := cache.NewMemoryCache(time.Minute)
	pub := &recordingPublisher{}
	svc := NewUseCaseService(
		unitofwork.NewRepositoryFactory(testutil.NewDB(t)),
		pub,
		memCache,
		time.Minute,
		logger.NewFromCore(core),
	)
	return &fixture{svc: svc, cache: memCache, publisher: pub, logs: logs}
}

func (f *fixture) create(t *testing.T, req dto.CreateUseCaseRequest) *dto.UseCaseResponse {
	t.Helper()
	res, err := f.svc.Create(context.Background(), &req)
	require.NoError(t, err)
	return res
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		page, limit int
		total       int64
		want        dto.PaginationResponse
	}{
		{1, 20, 0, dto.PaginationResponse{Page: 1, Limit: 20, Total: 0, TotalPages: 0, HasNext: false, HasPrev: false}},
		{1, 2, 5, dto.PaginationResponse{Page: 1, Limit: 2, Total: 5, TotalPages: 3, HasNext: true, HasPrev: false}},
		{3, 2, 5, dto.PaginationResponse{Page: 3, Limit: 2, Total: 5, TotalPages: 3, HasNext: false, HasPrev: true}},
		{2, 5, 10, dto.PaginationResponse{Page: 2, Limit: 5, Total: 10, TotalPages: 2, HasNext: false, HasPrev: true}},
		{9, 5, 10, dto.PaginationResponse{Page: 9, Limit: 5, Total: 10, TotalPages: 2, HasNext: false, HasPrev: true}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page=%d limit=%d total=%d", tt.page, tt.limit, tt.total), func(t *testing.T) {
			assert.Equal(t, tt.want, Paginate(tt.page, tt.limit, tt.total))
		})
	}
}

func TestUseCaseService_CreateTrimsAndNullsOptionals(t *testing.T) {
	f := newFixture(t)

	res := f.create(t, dto.CreateUseCaseRequest{
		UseCase:            "  Predictive Maintenance  ",
		ConceptDescription: "\tUse ML to predict failures\n",
		Benefit:            "   ",
		Industry:           " Manufacturing ",
	})

	assert.NotZero(t, res.Id)
	assert.Equal(t, "Predictive Maintenance", res.UseCase)
	assert.Equal(t, "Use ML to predict failures", res.ConceptDescription)
	assert.Nil(t, res.Benefit)
	require.NotNil(t, res.Industry)
	assert.Equal(t, "Manufacturing", *res.Industry)
	assert.False(t, res.CreatedAt.IsZero())

	shown, err := f.svc.Show(context.Background(), res.Id)
	require.NoError(t, err)
	assert.Equal(t, res.UseCase, shown.UseCase)
	assert.Equal(t, res.ConceptDescription, shown.ConceptDescription)
	assert.Equal(t, *res.Industry, *shown.Industry)
	assert.Nil(t, shown.Benefit)
	assert.WithinDuration(t, res.CreatedAt, shown.CreatedAt, time.Second)

	assert.Equal(t, 1, f.publisher.count())
	msg, ok := f.publisher.messages[0].(dto.UseCaseCreatedMessage)
	require.True(t, ok)
	assert.Equal(t, res.Id, msg.Id)
}

func TestUseCaseService_CreateValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		req   dto.CreateUseCaseRequest
		field string
	}{
		{"blank name", dto.CreateUseCaseRequest{UseCase: "   ", ConceptDescription: "A long enough description"}, "useCase"},
		{"short name", dto.CreateUseCaseRequest{UseCase: "AI", ConceptDescription: "A long enough description"}, "useCase"},
		{"short description", dto.CreateUseCaseRequest{UseCase: "Valid name", ConceptDescription: "too short"}, "conceptDescription"},
		{"long industry", dto.CreateUseCaseRequest{UseCase: "Valid name", ConceptDescription: "A long enough description", Industry: strings.Repeat("i", 201)}, "industry"},
		{"long url", dto.CreateUseCaseRequest{UseCase: "Valid name", ConceptDescription: "A long enough description", Url: "https://example.com/" + strings.Repeat("u", 2048)}, "url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := f.svc.Create(context.Background(), &req)
			require.Error(t, err)
			appErr := apperror.From(err)
			assert.Equal(t, apperror.KindValidation, appErr.Kind)
			assert.Contains(t, appErr.Details, tt.field)
		})
	}

	assert.Zero(t, f.publisher.count())
}

func TestUseCaseService_CreateDuplicateIgnoresCase(t *testing.T) {
	f := newFixture(t)
	f.create(t, dto.CreateUseCaseRequest{UseCase: "Digital Twin", ConceptDescription: "Virtual replica of physical assets"})

	_, err := f.svc.Create(context.Background(), &dto.CreateUseCaseRequest{
		UseCase:            "  digital TWIN ",
		ConceptDescription: "Another description entirely",
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindDuplicate))

	list, err := f.svc.List(context.Background(), &dto.ListUseCasesRequest{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Pagination.Total)
	assert.Equal(t, 1, f.publisher.count())
}

func TestUseCaseService_ConcurrentCreatesStoreOneRow(t *testing.T) {
	f := newFixture(t)

	names := []string{"Route Optimization", "route optimization", "ROUTE OPTIMIZATION", "Route optimization", "route Optimization"}
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		created    int
		duplicates int
	)
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			_, err := f.svc.Create(context.Background(), &dto.CreateUseCaseRequest{
				UseCase:            name,
				ConceptDescription: "Shorter delivery routes",
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case apperror.Is(err, apperror.KindDuplicate):
				duplicates++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(name)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, len(names)-1, duplicates)
}

func TestUseCaseService_CreateWarnsOnOddURL(t *testing.T) {
	f := newFixture(t)

	res := f.create(t, dto.CreateUseCaseRequest{
		UseCase:            "Odd URL case",
		ConceptDescription: "Stores the url even though it looks wrong",
		Url:                "not a url",
	})
	require.NotNil(t, res.Url)
	assert.Equal(t, "not a url", *res.Url)
	assert.Equal(t, 1, f.logs.FilterMessage("URL does not look valid, storing as given").Len())

	f.create(t, dto.CreateUseCaseRequest{
		UseCase:            "Good URL case",
		ConceptDescription: "A perfectly normal link",
		Url:                "https://example.com/case?id=1",
	})
	assert.Equal(t, 1, f.logs.FilterMessage("URL does not look valid, storing as given").Len())
}

func TestUseCaseService_CreateSucceedsWhenPublishFails(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("bus closed")

	res := f.create(t, dto.CreateUseCaseRequest{UseCase: "Resilient create", ConceptDescription: "Events are auxiliary"})
	assert.NotZero(t, res.Id)
	assert.Equal(t, 1, f.logs.FilterMessage("Failed to publish created event").Len())
}

func TestUseCaseService_Show(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Show(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func seedCatalog(t *testing.T, f *fixture) {
	t.Helper()
	rows := []dto.CreateUseCaseRequest{
		{UseCase: "Predictive Maintenance", ConceptDescription: "Use ML to predict failures", Industry: "Manufacturing", Department: "Operations", ValueChainStep: "Production"},
		{UseCase: "Chatbot Support", ConceptDescription: "Answer customer questions", Benefit: "Predictive staffing", Industry: "Retail", Department: "Customer Service", ValueChainStep: "Service"},
		{UseCase: "Demand Forecasting", ConceptDescription: "Forecast demand from sales history", Industry: "retail", ValueChainStep: "Planning"},
		{UseCase: "Quality Inspection", ConceptDescription: "Computer vision on the assembly line", Industry: "Manufacturing", Department: "Quality"},
		{UseCase: "Invoice Processing", ConceptDescription: "Extract fields from scanned invoices", Department: "Finance"},
	}
	for _, r := range rows {
		f.create(t, r)
	}
}

func TestUseCaseService_ListFiltersAndSearch(t *testing.T) {
	f := newFixture(t)
	seedCatalog(t, f)
	ctx := context.Background()

	t.Run("no filters newest first", func(t *testing.T) {
		res, err := f.svc.List(ctx, &dto.ListUseCasesRequest{Page: 1, Limit: 20})
		require.NoError(t, err)
		require.Len(t, res.UseCases, 5)
		assert.Equal(t, "Invoice Processing", res.UseCases[0].UseCase)
		assert.Equal(t, "Predictive Maintenance", res.UseCases[4].UseCase)
		assert.Nil(t, res.Filters.Industry)
	})

	t.Run("industry ignores case", func(t *testing.T) {
		res, err := f.svc.List(ctx, &dto.ListUseCasesRequest{Page: 1, Limit: 20, Industry: " RETAIL "})
		require.NoError(t, err)
		assert.EqualValues(t, 2, res.Pagination.Total)
		require.NotNil(t, res.Filters.Industry)
		assert.Equal(t, "RETAIL", *res.Filters.Industry)
	})

	t.Run("filters combine", func(t *testing.T) {
		res, err := f.svc.List(ctx, &dto.ListUseCasesRequest{Page: 1, Limit: 20, Industry: "manufacturing", Department: "quality"})
		require.NoError(t, err)
		require.Len(t, res.UseCases, 1)
		assert.Equal(t, "Quality Inspection", res.UseCases[0].UseCase)
	})

	t.Run("value chain step", func(t *testing.T) {
		res, err := f.svc.List(ctx, &dto.ListUseCasesRequest{Page: 1, Limit: 20, ValueChainStep: "planning"})
		require.NoError(t, err)
		require.Len(t, res.UseCases, 1)
		assert.Equal(t, "Demand Forecasting", res.UseCases[0].UseCase)
	})

	t.Run("search covers name description and benefit", func(t *testing.T) {
		res, err := f.svc.List(ctx, &dto.ListUseCasesRequest{Page: 1, Limit: 20, Search: "PREDICT"})
		require.NoError(t, err)
		names := make([]string, 0, len(res.UseCases))
		for _, uc := range res.UseCases {
			names = append(names, uc.UseCase)
		}
		assert.ElementsMatch(t, []string{"Predictive Maintenance", "Chatbot Support"}, names)
		require.NotNil(t, res.Filters.Search)
		assert.Equal(t, "PREDICT", *res.Filters.Search)
	})

	t.Run("search with no match", func(t *testing.T) {
		res, err := f.svc.List(ctx, &dto.ListUseCasesRequest{Page: 1, Limit: 20, Search: "blockchain"})
		require.NoError(t, err)
		assert.Empty(t, res.UseCases)
		assert.EqualValues(t, 0, res.Pagination.Total)
		assert.Equal(t, 0, res.Pagination.TotalPages)
	})

	t.Run("out of range limit", func(t *testing.T) {
		_, err := f.svc.List(ctx, &dto.ListUseCasesRequest{Page: 1, Limit: 101})
		require.Error(t, err)
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})
}

func TestUseCaseService_ListTotalStableAcrossPages(t *testing.T) {
	f := newFixture(t)
	seedCatalog(t, f)

	seen := map[uint64]bool{}
	for page := 1; page <= 3; page++ {
		res, err := f.svc.List(context.Background(), &dto.ListUseCasesRequest{Page: page, Limit: 2})
		require.NoError(t, err)
		assert.EqualValues(t, 5, res.Pagination.Total)
		assert.Equal(t, 3, res.Pagination.TotalPages)
		assert.Equal(t, page < 3, res.Pagination.HasNext)
		assert.Equal(t, page > 1, res.Pagination.HasPrev)
		for _, uc := range res.UseCases {
			assert.False(t, seen[uc.Id], "row %d returned twice", uc.Id)
			seen[uc.Id] = true
		}
	}
	assert.Len(t, seen, 5)
}

func TestUseCaseService_ListPageBeyondOffsetRange(t *testing.T) {
	f := newFixture(t)
	f.create(t, dto.CreateUseCaseRequest{UseCase: "Digital Twin", ConceptDescription: "Virtual replica of assets"})

	res, err := f.svc.List(context.Background(), &dto.ListUseCasesRequest{Page: math.MaxInt, Limit: MaxLimit})
	require.NoError(t, err)
	assert.Empty(t, res.UseCases)
	assert.EqualValues(t, 1, res.Pagination.Total)
	assert.Equal(t, 1, res.Pagination.TotalPages)
	assert.False(t, res.Pagination.HasNext)
	assert.True(t, res.Pagination.HasPrev)
}

func TestUseCaseService_FiltersCachedAndInvalidated(t *testing.T) {
	f := newFixture(t)
	seedCatalog(t, f)
	ctx := context.Background()

	res, err := f.svc.Filters(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Manufacturing", "Retail", "retail"}, res.Industries)
	assert.Equal(t, []string{"Customer Service", "Finance", "Operations", "Quality"}, res.Departments)
	assert.Equal(t, []string{"Planning", "Production", "Service"}, res.ValueChainSteps)

	var cached dto.UseCaseFiltersResponse
	hit, err := f.cache.Get(ctx, FiltersCacheKey, &cached)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, res.Industries, cached.Industries)

	// Cached values are served until the key is dropped.
	f.create(t, dto.CreateUseCaseRequest{UseCase: "Energy Trading", ConceptDescription: "Optimise energy purchases", Industry: "Energy"})
	stale, err := f.svc.Filters(ctx)
	require.NoError(t, err)
	assert.NotContains(t, stale.Industries, "Energy")

	require.NoError(t, f.cache.Delete(ctx, FiltersCacheKey))
	fresh, err := f.svc.Filters(ctx)
	require.NoError(t, err)
	assert.Contains(t, fresh.Industries, "Energy")
}

func TestUseCaseService_FiltersEmptyCatalog(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Filters(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, res.Industries)
	assert.Empty(t, res.Industries)
	assert.Empty(t, res.Departments)
	assert.Empty(t, res.ValueChainSteps)
}

func TestUseCaseService_CheckCreate(t *testing.T) {
	f := newFixture(t)
	f.create(t, dto.CreateUseCaseRequest{UseCase: "Existing case", ConceptDescription: "Already in the catalog"})

	err := f.svc.CheckCreate(context.Background(), &dto.CreateUseCaseRequest{UseCase: "EXISTING CASE", ConceptDescription: "Already in the catalog"})
	assert.True(t, apperror.Is(err, apperror.KindDuplicate))

	err = f.svc.CheckCreate(context.Background(), &dto.CreateUseCaseRequest{UseCase: "New case", ConceptDescription: "Not yet in the catalog"})
	require.NoError(t, err)

	list, err := f.svc.List(context.Background(), &dto.ListUseCasesRequest{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Pagination.Total)
}
