package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"usecase-catalog-be/internal/dto"
	"usecase-catalog-be/internal/entity"
	"usecase-catalog-be/internal/mapper"
	"usecase-catalog-be/internal/pkg/apperror"
	"usecase-catalog-be/internal/pkg/logger"
	"usecase-catalog-be/internal/pkg/serverutils"
	"usecase-catalog-be/internal/repository/cache"
	"usecase-catalog-be/internal/repository/scope"
	"usecase-catalog-be/internal/repository/specification"
	"usecase-catalog-be/internal/repository/unitofwork"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	FiltersCacheKey = "use_cases:filters"

	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Loose shape check only: scheme optional, no whitespace.
var urlPattern = regexp.MustCompile(`^(https?://)?[^\s/$.?#][^\s.]*\.[^\s]+$`)

type IUseCaseService interface {
	List(ctx context.Context, req *dto.ListUseCasesRequest) (*dto.ListUseCasesResponse, error)
	Show(ctx context.Context, id uint64) (*dto.UseCaseResponse, error)
	Filters(ctx context.Context) (*dto.UseCaseFiltersResponse, error)
	Create(ctx context.Context, req *dto.CreateUseCaseRequest) (*dto.UseCaseResponse, error)
	// CheckCreate runs every Create check without writing anything.
	CheckCreate(ctx context.Context, req *dto.CreateUseCaseRequest) error
}

type useCaseService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	filterCache      cache.Cache
	filtersTTL       time.Duration
	mapper           *mapper.UseCaseMapper
	logger           logger.ILogger
}

func NewUseCaseService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	filterCache cache.Cache,
	filtersTTL time.Duration,
	log logger.ILogger,
) IUseCaseService {
	return &useCaseService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		filterCache:      filterCache,
		filtersTTL:       filtersTTL,
		mapper:           mapper.NewUseCaseMapper(),
		logger:           log,
	}
}

func (s *useCaseService) List(ctx context.Context, req *dto.ListUseCasesRequest) (*dto.ListUseCasesResponse, error) {
	req.Industry = strings.TrimSpace(req.Industry)
	req.ValueChainStep = strings.TrimSpace(req.ValueChainStep)
	req.Department = strings.TrimSpace(req.Department)
	req.Search = strings.TrimSpace(req.Search)

	if err := serverutils.ValidateRequest(*req); err != nil {
		return nil, err
	}

	var (
		filters []specification.Specification
		applied dto.AppliedFiltersResponse
	)
	if req.Industry != "" {
		filters = append(filters, specification.ByIndustry{Industry: req.Industry})
		applied.Industry = &req.Industry
	}
	if req.ValueChainStep != "" {
		filters = append(filters, specification.ByValueChainStep{ValueChainStep: req.ValueChainStep})
		applied.ValueChainStep = &req.ValueChainStep
	}
	if req.Department != "" {
		filters = append(filters, specification.ByDepartment{Department: req.Department})
		applied.Department = &req.Department
	}
	if req.Search != "" {
		filters = append(filters, specification.UseCaseSearchQuery{Query: req.Search})
		applied.Search = &req.Search
	}

	pageSpecs := append([]specification.Specification{}, filters...)
	pageSpecs = append(pageSpecs,
		specification.ScopeFunc(scope.OrderByCreatedDesc),
		specification.PageOf(req.Page, req.Limit),
	)

	var (
		rows  []*entity.UseCase
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	// A page whose offset does not fit in an int lies past any stored row.
	if req.Page-1 <= math.MaxInt/req.Limit {
		g.Go(func() error {
			var err error
			rows, err = s.uowFactory.NewUnitOfWork(gctx).UseCaseRepository().FindAll(gctx, pageSpecs...)
			return err
		})
	}
	g.Go(func() error {
		var err error
		total, err = s.uowFactory.NewUnitOfWork(gctx).UseCaseRepository().Count(gctx, filters...)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to list use cases: %w", err)
	}

	return &dto.ListUseCasesResponse{
		UseCases:   s.mapper.ToResponses(rows),
		Pagination: Paginate(req.Page, req.Limit, total),
		Filters:    applied,
	}, nil
}

// Paginate derives the pagination block. totalPages is 0 for an empty result.
func Paginate(page, limit int, total int64) dto.PaginationResponse {
	totalPages := 0
	if total > 0 && limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return dto.PaginationResponse{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

func (s *useCaseService) Show(ctx context.Context, id uint64) (*dto.UseCaseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	useCase, err := uow.UseCaseRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch use case %d: %w", id, err)
	}
	if useCase == nil {
		return nil, apperror.NotFound("Use case not found")
	}

	return s.mapper.ToResponse(useCase), nil
}

func (s *useCaseService) Filters(ctx context.Context) (*dto.UseCaseFiltersResponse, error) {
	var cached dto.UseCaseFiltersResponse
	if s.filterCache != nil {
		hit, err := s.filterCache.Get(ctx, FiltersCacheKey, &cached)
		if err != nil {
			s.logger.Warn("CACHE", "Failed to read filter cache", map[string]interface{}{"error": err.Error()})
		} else if hit {
			return &cached, nil
		}
	}

	res := &dto.UseCaseFiltersResponse{}
	columns := []struct {
		column string
		dest   *[]string
	}{
		{"industry", &res.Industries},
		{"value_chain_step", &res.ValueChainSteps},
		{"department", &res.Departments},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range columns {
		g.Go(func() error {
			values, err := s.uowFactory.NewUnitOfWork(gctx).UseCaseRepository().DistinctValues(gctx, c.column)
			if err != nil {
				return err
			}
			if values == nil {
				values = make([]string, 0)
			}
			*c.dest = values
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load filter values: %w", err)
	}

	if s.filterCache != nil {
		if err := s.filterCache.Set(ctx, FiltersCacheKey, res, s.filtersTTL); err != nil {
			s.logger.Warn("CACHE", "Failed to write filter cache", map[string]interface{}{"error": err.Error()})
		}
	}

	return res, nil
}

func (s *useCaseService) Create(ctx context.Context, req *dto.CreateUseCaseRequest) (*dto.UseCaseResponse, error) {
	useCase, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	repo := uow.UseCaseRepository()
	existing, err := repo.FindOne(ctx, specification.ByUseCaseName{Name: useCase.UseCase})
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing use case: %w", err)
	}
	if existing != nil {
		return nil, duplicateError(useCase.UseCase)
	}

	if err := repo.Create(ctx, useCase); err != nil {
		// Lost the race against a concurrent insert of the same name.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateError(useCase.UseCase)
		}
		return nil, fmt.Errorf("failed to create use case: %w", err)
	}

	if err := uow.Commit(); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateError(useCase.UseCase)
		}
		return nil, fmt.Errorf("failed to commit use case: %w", err)
	}

	s.publishCreated(ctx, useCase)

	return s.mapper.ToResponse(useCase), nil
}

func (s *useCaseService) CheckCreate(ctx context.Context, req *dto.CreateUseCaseRequest) error {
	useCase, err := s.prepare(req)
	if err != nil {
		return err
	}

	existing, err := s.uowFactory.NewUnitOfWork(ctx).UseCaseRepository().FindOne(ctx, specification.ByUseCaseName{Name: useCase.UseCase})
	if err != nil {
		return fmt.Errorf("failed to check for existing use case: %w", err)
	}
	if existing != nil {
		return duplicateError(useCase.UseCase)
	}
	return nil
}

// prepare trims the request in place, validates it and builds the entity.
func (s *useCaseService) prepare(req *dto.CreateUseCaseRequest) (*entity.UseCase, error) {
	trimCreateRequest(req)

	if err := serverutils.ValidateRequest(*req); err != nil {
		return nil, err
	}

	if req.Url != "" && !urlPattern.MatchString(req.Url) {
		s.logger.Warn("USE_CASE", "URL does not look valid, storing as given", map[string]interface{}{
			"use_case": req.UseCase,
			"url":      req.Url,
		})
	}

	return &entity.UseCase{
		UseCase:                req.UseCase,
		ConceptDescription:     req.ConceptDescription,
		ConcreteImplementation: optional(req.ConcreteImplementation),
		Benefit:                optional(req.Benefit),
		Industry:               optional(req.Industry),
		Department:             optional(req.Department),
		ValueChainStep:         optional(req.ValueChainStep),
		Url:                    optional(req.Url),
	}, nil
}

func (s *useCaseService) publishCreated(ctx context.Context, useCase *entity.UseCase) {
	if s.publisherService == nil {
		return
	}
	msg := dto.UseCaseCreatedMessage{
		Id:        useCase.Id,
		UseCase:   useCase.UseCase,
		CreatedAt: useCase.CreatedAt,
	}
	if err := s.publisherService.SendMessage(ctx, msg); err != nil {
		s.logger.Error("USE_CASE", "Failed to publish created event", map[string]interface{}{
			"error":       err.Error(),
			"use_case_id": useCase.Id,
		})
	}
}

func trimCreateRequest(req *dto.CreateUseCaseRequest) {
	req.UseCase = strings.TrimSpace(req.UseCase)
	req.ConceptDescription = strings.TrimSpace(req.ConceptDescription)
	req.ConcreteImplementation = strings.TrimSpace(req.ConcreteImplementation)
	req.Benefit = strings.TrimSpace(req.Benefit)
	req.Industry = strings.TrimSpace(req.Industry)
	req.Department = strings.TrimSpace(req.Department)
	req.ValueChainStep = strings.TrimSpace(req.ValueChainStep)
	req.Url = strings.TrimSpace(req.Url)
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func duplicateError(name string) error {
	return apperror.Duplicate(fmt.Sprintf("A use case named %q already exists", name))
}
