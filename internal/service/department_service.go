package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-events-api/internal/dto"
	"github.com/noah-isme/campus-events-api/internal/models"
)

type departmentRepository interface {
	List(ctx context.Context, filter models.DepartmentFilter) ([]models.Department, error)
	FindByID(ctx context.Context, id int64) (*models.Department, error)
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error)
	Create(ctx context.Context, department *models.Department) error
	Update(ctx context.Context, department *models.Department) error
	Delete(ctx context.Context, id int64) error
}

// CreateDepartmentRequest represents payload for creating departments.
type CreateDepartmentRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Code        string  `json:"code" validate:"required,max=10"`
	Description *string `json:"description"`
	Head        *string `json:"head" validate:"omitempty,max=255"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone" validate:"omitempty,max=20"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateDepartmentRequest represents a partial department update.
type UpdateDepartmentRequest struct {
	Name        *string              `json:"name" validate:"omitnil,filled,max=255"`
	Code        *string              `json:"code" validate:"omitnil,filled,max=10"`
	Description dto.Optional[string] `json:"description"`
	Head        dto.Optional[string] `json:"head" validate:"omitempty,max=255"`
	Email       dto.Optional[string] `json:"email" validate:"omitempty,email"`
	Phone       dto.Optional[string] `json:"phone" validate:"omitempty,max=20"`
	IsActive    *bool                `json:"is_active"`
}

// DepartmentService orchestrates department operations.
type DepartmentService struct {
	repo      departmentRepository
	relations *Relations
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDepartmentService constructs a DepartmentService.
func NewDepartmentService(repo departmentRepository, relations *Relations, validate *validator.Validate, logger *zap.Logger) *DepartmentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepartmentService{repo: repo, relations: relations, validator: validate, logger: logger}
}

// List returns departments with their teachers and courses.
func (s *DepartmentService) List(ctx context.Context, filter models.DepartmentFilter) ([]models.DepartmentDetail, error) {
	departments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list departments")
	}
	return s.relations.departmentDetails(ctx, departments)
}

// Get returns one department with its teachers and courses.
func (s *DepartmentService) Get(ctx context.Context, id int64) (*models.DepartmentDetail, error) {
	department, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := s.relations.departmentDetails(ctx, []models.Department{*department})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// Create validates and stores a new department.
func (s *DepartmentService) Create(ctx context.Context, req CreateDepartmentRequest) (*models.Department, error) {
	fields, err := validateStruct(s.validator, req)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	code := strings.TrimSpace(req.Code)
	if err := s.ensureUnique(ctx, fields, name, code, 0); err != nil {
		return nil, err
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	department := &models.Department{
		Name:        name,
		Code:        code,
		Description: nullableString(req.Description),
		Head:        nullableString(req.Head),
		Email:       nullableString(req.Email),
		Phone:       nullableString(req.Phone),
		IsActive:    boolOr(req.IsActive, true),
	}
	if err := s.repo.Create(ctx, department); err != nil {
		return nil, writeError(s.logger, err, "failed to create department")
	}
	return department, nil
}

// Update applies the fields present in req.
func (s *DepartmentService) Update(ctx context.Context, id int64, req UpdateDepartmentRequest) (*models.Department, error) {
	department, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	fields, err := validateStruct(s.validator, req)
	if err != nil {
		return nil, err
	}
	name := stringOr(req.Name, "")
	code := stringOr(req.Code, "")
	if err := s.ensureUnique(ctx, fields, name, code, id); err != nil {
		return nil, err
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	department.Name = stringOr(&name, department.Name)
	department.Code = stringOr(&code, department.Code)
	applyString(req.Description, &department.Description)
	applyString(req.Head, &department.Head)
	applyString(req.Email, &department.Email)
	applyString(req.Phone, &department.Phone)
	department.IsActive = boolOr(req.IsActive, department.IsActive)

	if err := s.repo.Update(ctx, department); err != nil {
		return nil, writeError(s.logger, err, "failed to update department")
	}
	return department, nil
}

// Delete removes a department together with its teachers and courses.
func (s *DepartmentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(s.logger, err, "failed to delete department")
	}
	return nil
}

// Teachers lists the department's teachers with their user accounts.
func (s *DepartmentService) Teachers(ctx context.Context, id int64) ([]models.TeacherView, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	teachers, err := s.relations.teachers.ListByDepartmentIDs(ctx, []int64{id})
	if err != nil {
		return nil, internalError(err, "failed to list department teachers")
	}
	return s.relations.teacherViews(ctx, teachers, false)
}

// Courses lists the department's courses with teacher and enrolled students.
func (s *DepartmentService) Courses(ctx context.Context, id int64) ([]models.CourseView, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	courses, err := s.relations.courses.ListByDepartmentIDs(ctx, []int64{id})
	if err != nil {
		return nil, internalError(err, "failed to list department courses")
	}
	return s.relations.courseViews(ctx, courses, courseWith{teacher: true, students: true})
}

func (s *DepartmentService) find(ctx context.Context, id int64) (*models.Department, error) {
	department, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Department")
	}
	return department, nil
}

// ensureUnique probes name and code; empty values are skipped.
func (s *DepartmentService) ensureUnique(ctx context.Context, fields fieldErrors, name, code string, excludeID int64) error {
	if name != "" {
		if err := fields.unique("name", func() (bool, error) { return s.repo.ExistsByName(ctx, name, excludeID) }); err != nil {
			return err
		}
	}
	if code != "" {
		if err := fields.unique("code", func() (bool, error) { return s.repo.ExistsByCode(ctx, code, excludeID) }); err != nil {
			return err
		}
	}
	return nil
}
