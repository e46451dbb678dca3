package service

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"usecase-catalog-be/internal/dto"
	"usecase-catalog-be/internal/pkg/apperror"
	"usecase-catalog-be/internal/pkg/logger"
)

const DefaultMaxDiagnostics = 50

// Import columns keyed by their normalized header name.
const (
	colUseCase                = "usecase"
	colConceptDescription     = "conceptdescription"
	colConcreteImplementation = "concreteimplementation"
	colBenefit                = "benefit"
	colIndustry               = "industry"
	colDepartment             = "department"
	colValueChainStep         = "valuechainstep"
	colUrl                    = "url"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var headerNormalizer = strings.NewReplacer(" ", "", "_", "", "-", "")

type IImportService interface {
	// Import loads every row of a CSV document through the create path.
	// Only an unreadable document returns an error; row failures land in the summary.
	Import(ctx context.Context, r io.Reader, dryRun bool) (*dto.ImportSummary, error)
}

type importService struct {
	useCaseService IUseCaseService
	logger         logger.ILogger
	maxDiagnostics int
}

func NewImportService(useCaseService IUseCaseService, log logger.ILogger, maxDiagnostics int) IImportService {
	if maxDiagnostics <= 0 {
		maxDiagnostics = DefaultMaxDiagnostics
	}
	return &importService{
		useCaseService: useCaseService,
		logger:         log,
		maxDiagnostics: maxDiagnostics,
	}
}

// NormalizeHeader folds case, spaces, underscores and dashes so "Use Case",
// "use_case" and "USECASE" name the same column.
func NormalizeHeader(name string) string {
	return strings.ToLower(headerNormalizer.Replace(strings.TrimSpace(name)))
}

func (s *importService) Import(ctx context.Context, r io.Reader, dryRun bool) (*dto.ImportSummary, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv file is empty")
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := NormalizeHeader(name)
		if _, exists := columns[key]; !exists {
			columns[key] = i
		}
	}
	for _, required := range []string{colUseCase, colConceptDescription} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("csv header is missing required column %q", required)
		}
	}

	summary := &dto.ImportSummary{
		DryRun:      dryRun,
		Diagnostics: make([]dto.ImportDiagnostic, 0),
	}
	seen := make(map[string]bool)

	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return summary, fmt.Errorf("failed to parse csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		summary.Total++

		field := func(col string) string {
			idx, ok := columns[col]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		req := &dto.CreateUseCaseRequest{
			UseCase:                field(colUseCase),
			ConceptDescription:     field(colConceptDescription),
			ConcreteImplementation: field(colConcreteImplementation),
			Benefit:                field(colBenefit),
			Industry:               field(colIndustry),
			Department:             field(colDepartment),
			ValueChainStep:         field(colValueChainStep),
			Url:                    field(colUrl),
		}

		s.processRow(ctx, summary, line, req, dryRun, seen)
	}

	s.logger.Info("IMPORT", "Import finished", map[string]interface{}{
		"total":      summary.Total,
		"inserted":   summary.Inserted,
		"skipped":    summary.Skipped,
		"duplicates": summary.Duplicates,
		"errors":     summary.Errors,
		"dry_run":    dryRun,
	})

	return summary, nil
}

func (s *importService) processRow(ctx context.Context, summary *dto.ImportSummary, line int, req *dto.CreateUseCaseRequest, dryRun bool, seen map[string]bool) {
	switch {
	case req.UseCase == "":
		summary.Skipped++
		s.addDiagnostic(summary, line, "", "missing use case name")
		return
	case req.ConceptDescription == "":
		summary.Skipped++
		s.addDiagnostic(summary, line, req.UseCase, "missing concept description")
		return
	}

	var err error
	if dryRun {
		err = s.useCaseService.CheckCreate(ctx, req)
		// Rows earlier in this file are not in the store yet.
		if err == nil && seen[strings.ToLower(req.UseCase)] {
			err = duplicateError(req.UseCase)
		}
	} else {
		_, err = s.useCaseService.Create(ctx, req)
	}

	switch {
	case err == nil:
		summary.Inserted++
		seen[strings.ToLower(req.UseCase)] = true
		s.logger.Debug("IMPORT", "Row accepted", map[string]interface{}{"line": line, "use_case": req.UseCase})
	case apperror.Is(err, apperror.KindDuplicate):
		summary.Duplicates++
		s.logger.Info("IMPORT", "Row skipped as duplicate", map[string]interface{}{"line": line, "use_case": req.UseCase})
	case apperror.Is(err, apperror.KindValidation):
		summary.Skipped++
		s.addDiagnostic(summary, line, req.UseCase, "invalid: "+describeValidation(err))
	default:
		summary.Errors++
		s.addDiagnostic(summary, line, req.UseCase, err.Error())
		s.logger.Error("IMPORT", "Row failed", map[string]interface{}{
			"line":     line,
			"use_case": req.UseCase,
			"error":    err.Error(),
		})
	}
}

func (s *importService) addDiagnostic(summary *dto.ImportSummary, line int, useCase, reason string) {
	s.logger.Warn("IMPORT", "Row not imported", map[string]interface{}{
		"line":     line,
		"use_case": useCase,
		"reason":   reason,
	})

	if len(summary.Diagnostics) >= s.maxDiagnostics {
		summary.DiagnosticsTruncated = true
		return
	}
	summary.Diagnostics = append(summary.Diagnostics, dto.ImportDiagnostic{
		Line:    line,
		UseCase: useCase,
		Reason:  reason,
	})
}

// describeValidation flattens field details into "field message; field message".
func describeValidation(err error) string {
	appErr := apperror.From(err)
	if len(appErr.Details) == 0 {
		return appErr.Message
	}

	fields := make([]string, 0, len(appErr.Details))
	for field := range appErr.Details {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = field + " " + appErr.Details[field]
	}
	return strings.Join(parts, "; ")
}
