package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-events-api/internal/dto"
	"github.com/noah-isme/campus-events-api/internal/models"
)

type gradeRepository interface {
	List(ctx context.Context, filter models.GradeFilter) ([]models.Grade, error)
	FindByID(ctx context.Context, id int64) (*models.Grade, error)
	Create(ctx context.Context, grade *models.Grade) error
	Update(ctx context.Context, grade *models.Grade) error
	Delete(ctx context.Context, id int64) error
}

type gradeEnrollmentLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
	FindByIDs(ctx context.Context, ids []int64) ([]models.Enrollment, error)
}

// CreateGradeRequest represents payload for recording a grade.
type CreateGradeRequest struct {
	EnrollmentID   *int64   `json:"enrollment_id" validate:"required"`
	AssignmentName string   `json:"assignment_name" validate:"required,max=255"`
	AssignmentType string   `json:"assignment_type" validate:"required,oneof=homework quiz midterm final project participation"`
	Grade          *float64 `json:"grade" validate:"required,min=0"`
	MaxGrade       *float64 `json:"max_grade" validate:"required,min=0"`
	Weight         *float64 `json:"weight" validate:"required,min=0,max=100"`
	GradeDate      string   `json:"grade_date" validate:"required,timestamp"`
	Remarks        *string  `json:"remarks"`
}

// UpdateGradeRequest represents a partial grade update.
type UpdateGradeRequest struct {
	AssignmentName *string              `json:"assignment_name" validate:"omitnil,filled,max=255"`
	AssignmentType *string              `json:"assignment_type" validate:"omitnil,oneof=homework quiz midterm final project participation"`
	Grade          *float64             `json:"grade" validate:"omitnil,min=0"`
	MaxGrade       *float64             `json:"max_grade" validate:"omitnil,min=0"`
	Weight         *float64             `json:"weight" validate:"omitnil,min=0,max=100"`
	GradeDate      *string              `json:"grade_date" validate:"omitnil,timestamp"`
	Remarks        dto.Optional[string] `json:"remarks"`
}

// GradeService orchestrates grade operations.
type GradeService struct {
	repo        gradeRepository
	enrollments gradeEnrollmentLookup
	relations   *Relations
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewGradeService constructs a GradeService.
func NewGradeService(repo gradeRepository, enrollments gradeEnrollmentLookup, relations *Relations, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{repo: repo, enrollments: enrollments, relations: relations, validator: validate, logger: logger}
}

// List returns grades with their enrollment.
func (s *GradeService) List(ctx context.Context, filter models.GradeFilter) ([]models.GradeView, error) {
	grades, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list grades")
	}
	return s.views(ctx, grades, enrollmentWith{})
}

// Get returns a grade with its enrollment, student and course.
func (s *GradeService) Get(ctx context.Context, id int64) (*models.GradeView, error) {
	return s.view(ctx, id, enrollmentSummary)
}

// Create records a grade against an existing enrollment.
func (s *GradeService) Create(ctx context.Context, req CreateGradeRequest) (*models.GradeView, error) {
	fields, err := validateStruct(s.validator, req)
	if err != nil {
		return nil, err
	}
	if req.EnrollmentID != nil {
		if err := fields.exists("enrollment_id", func() (bool, error) { return s.enrollments.Exists(ctx, *req.EnrollmentID) }); err != nil {
			return nil, err
		}
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	grade := &models.Grade{
		EnrollmentID:   *req.EnrollmentID,
		AssignmentName: strings.TrimSpace(req.AssignmentName),
		AssignmentType: req.AssignmentType,
		Grade:          *req.Grade,
		MaxGrade:       *req.MaxGrade,
		Weight:         *req.Weight,
		GradeDate:      parseDay(req.GradeDate),
		Remarks:        nullableString(req.Remarks),
	}
	if err := s.repo.Create(ctx, grade); err != nil {
		return nil, writeError(s.logger, err, "failed to create grade")
	}
	return s.view(ctx, grade.ID, enrollmentWith{})
}

// Update applies the fields present in req.
func (s *GradeService) Update(ctx context.Context, id int64, req UpdateGradeRequest) (*models.GradeView, error) {
	grade, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	fields, err := validateStruct(s.validator, req)
	if err != nil {
		return nil, err
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	grade.AssignmentName = stringOr(req.AssignmentName, grade.AssignmentName)
	grade.AssignmentType = stringOr(req.AssignmentType, grade.AssignmentType)
	if req.Grade != nil {
		grade.Grade = *req.Grade
	}
	if req.MaxGrade != nil {
		grade.MaxGrade = *req.MaxGrade
	}
	if req.Weight != nil {
		grade.Weight = *req.Weight
	}
	if req.GradeDate != nil {
		grade.GradeDate = parseDay(*req.GradeDate)
	}
	applyString(req.Remarks, &grade.Remarks)

	if err := s.repo.Update(ctx, grade); err != nil {
		return nil, writeError(s.logger, err, "failed to update grade")
	}
	return s.view(ctx, id, enrollmentWith{})
}

// Delete removes a grade.
func (s *GradeService) Delete(ctx context.Context, id int64) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(s.logger, err, "failed to delete grade")
	}
	return nil
}

func (s *GradeService) find(ctx context.Context, id int64) (*models.Grade, error) {
	grade, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Grade")
	}
	return grade, nil
}

func (s *GradeService) view(ctx context.Context, id int64, with enrollmentWith) (*models.GradeView, error) {
	grade, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.views(ctx, []models.Grade{*grade}, with)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// views attaches each grade's enrollment, itself loaded with the given relations.
func (s *GradeService) views(ctx context.Context, grades []models.Grade, with enrollmentWith) ([]models.GradeView, error) {
	ids := make([]int64, len(grades))
	for i, g := range grades {
		ids[i] = g.EnrollmentID
	}
	enrollments, err := s.enrollments.FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, internalError(err, "failed to load enrollments")
	}
	enrollmentViews, err := s.relations.enrollmentViews(ctx, enrollments, with)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*models.EnrollmentView, len(enrollmentViews))
	for i := range enrollmentViews {
		byID[enrollmentViews[i].ID] = &enrollmentViews[i]
	}

	out := make([]models.GradeView, len(grades))
	for i, g := range grades {
		out[i] = models.GradeView{Grade: g, Enrollment: byID[g.EnrollmentID]}
	}
	return out, nil
}
