package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-events-api/internal/dto"
	"github.com/noah-isme/campus-events-api/internal/models"
)

type teacherRepository interface {
	List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, error)
	FindByID(ctx context.Context, id int64) (*models.Teacher, error)
	ExistsByEmployeeID(ctx context.Context, employeeID string, excludeID int64) (bool, error)
	CreateWithUser(ctx context.Context, user *models.User, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id int64) error
}

type accountChecker interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type departmentChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type teacherCourseLister interface {
	ListByTeacherID(ctx context.Context, teacherID int64) ([]models.Course, error)
}

// CreateTeacherRequest represents payload for creating teachers and their accounts.
type CreateTeacherRequest struct {
	Name           string  `json:"name" validate:"required,max=255"`
	Email          string  `json:"email" validate:"required,email,max=255"`
	Password       string  `json:"password" validate:"required,min=8"`
	DepartmentID   *int64  `json:"department_id" validate:"required"`
	EmployeeID     string  `json:"employee_id" validate:"required,max=255"`
	Phone          *string `json:"phone" validate:"omitempty,max=255"`
	Specialization *string `json:"specialization" validate:"omitempty,max=255"`
	HireDate       string  `json:"hire_date" validate:"required,timestamp"`
	EmploymentType *string `json:"employment_type" validate:"omitnil,oneof=full-time part-time contract"`
	Bio            *string `json:"bio"`
	OfficeLocation *string `json:"office_location" validate:"omitempty,max=255"`
	IsActive       *bool   `json:"is_active"`
}

// UpdateTeacherRequest represents a partial teacher update. Account fields
// are not editable here.
type UpdateTeacherRequest struct {
	DepartmentID   *int64               `json:"department_id"`
	EmployeeID     *string              `json:"employee_id" validate:"omitnil,filled,max=255"`
	Phone          dto.Optional[string] `json:"phone" validate:"omitempty,max=255"`
	Specialization dto.Optional[string] `json:"specialization" validate:"omitempty,max=255"`
	HireDate       *string              `json:"hire_date" validate:"omitnil,timestamp"`
	EmploymentType *string              `json:"employment_type" validate:"omitnil,oneof=full-time part-time contract"`
	Bio            dto.Optional[string] `json:"bio"`
	OfficeLocation dto.Optional[string] `json:"office_location" validate:"omitempty,max=255"`
	IsActive       *bool                `json:"is_active"`
}

// TeacherService orchestrates teacher operations.
type TeacherService struct {
	repo        teacherRepository
	users       accountChecker
	departments departmentChecker
	courses     teacherCourseLister
	relations   *Relations
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(repo teacherRepository, users accountChecker, departments departmentChecker, courses teacherCourseLister, relations *Relations, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{
		repo:        repo,
		users:       users,
		departments: departments,
		courses:     courses,
		relations:   relations,
		validator:   validate,
		logger:      logger,
	}
}

// List returns teachers with user and department.
func (s *TeacherService) List(ctx context.Context, filter models.TeacherFilter) ([]models.TeacherView, error) {
	teachers, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list teachers")
	}
	return s.relations.teacherViews(ctx, teachers, true)
}

// Get returns a teacher with user, department and courses.
func (s *TeacherService) Get(ctx context.Context, id int64) (*models.TeacherDetail, error) {
	view, err := s.view(ctx, id)
	if err != nil {
		return nil, err
	}
	courses, err := s.courses.ListByTeacherID(ctx, id)
	if err != nil {
		return nil, internalError(err, "failed to load teacher courses")
	}
	return &models.TeacherDetail{TeacherView: *view, Courses: courses}, nil
}

// Create registers the user account and the teacher together.
func (s *TeacherService) Create(ctx context.Context, req CreateTeacherRequest) (*models.TeacherView, error) {
	fields, err := validateStruct(s.validator, req)
	if err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	employeeID := strings.TrimSpace(req.EmployeeID)

	if err := fields.unique("email", func() (bool, error) { return s.users.ExistsByEmail(ctx, email) }); err != nil {
		return nil, err
	}
	if req.DepartmentID != nil {
		if err := fields.exists("department_id", func() (bool, error) { return s.departments.Exists(ctx, *req.DepartmentID) }); err != nil {
			return nil, err
		}
	}
	if err := fields.unique("employee_id", func() (bool, error) { return s.repo.ExistsByEmployeeID(ctx, employeeID, 0) }); err != nil {
		return nil, err
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, internalError(err, "failed to hash password")
	}
	user := &models.User{Name: strings.TrimSpace(req.Name), Email: email, PasswordHash: hash}
	teacher := &models.Teacher{
		DepartmentID:   *req.DepartmentID,
		EmployeeID:     employeeID,
		Phone:          nullableString(req.Phone),
		Specialization: nullableString(req.Specialization),
		HireDate:       parseDay(req.HireDate),
		EmploymentType: stringOr(req.EmploymentType, models.EmploymentFullTime),
		Bio:            nullableString(req.Bio),
		OfficeLocation: nullableString(req.OfficeLocation),
		IsActive:       boolOr(req.IsActive, true),
	}
	if err := s.repo.CreateWithUser(ctx, user, teacher); err != nil {
		return nil, writeError(s.logger, err, "failed to create teacher")
	}
	return s.view(ctx, teacher.ID)
}

// Update applies the fields present in req.
func (s *TeacherService) Update(ctx context.Context, id int64, req UpdateTeacherRequest) (*models.TeacherView, error) {
	teacher, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	fields, err := validateStruct(s.validator, req)
	if err != nil {
		return nil, err
	}
	if req.DepartmentID != nil {
		if err := fields.exists("department_id", func() (bool, error) { return s.departments.Exists(ctx, *req.DepartmentID) }); err != nil {
			return nil, err
		}
	}
	employeeID := stringOr(req.EmployeeID, "")
	if employeeID != "" {
		if err := fields.unique("employee_id", func() (bool, error) { return s.repo.ExistsByEmployeeID(ctx, employeeID, id) }); err != nil {
			return nil, err
		}
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	if req.DepartmentID != nil {
		teacher.DepartmentID = *req.DepartmentID
	}
	teacher.EmployeeID = stringOr(&employeeID, teacher.EmployeeID)
	if req.HireDate != nil {
		teacher.HireDate = parseDay(*req.HireDate)
	}
	teacher.EmploymentType = stringOr(req.EmploymentType, teacher.EmploymentType)
	applyString(req.Phone, &teacher.Phone)
	applyString(req.Specialization, &teacher.Specialization)
	applyString(req.Bio, &teacher.Bio)
	applyString(req.OfficeLocation, &teacher.OfficeLocation)
	teacher.IsActive = boolOr(req.IsActive, teacher.IsActive)

	if err := s.repo.Update(ctx, teacher); err != nil {
		return nil, writeError(s.logger, err, "failed to update teacher")
	}
	return s.view(ctx, id)
}

// Delete removes a teacher. Their courses stay, unassigned.
func (s *TeacherService) Delete(ctx context.Context, id int64) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(s.logger, err, "failed to delete teacher")
	}
	return nil
}

// Courses lists the courses a teacher is assigned to, with department.
func (s *TeacherService) Courses(ctx context.Context, id int64) ([]models.CourseView, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	courses, err := s.courses.ListByTeacherID(ctx, id)
	if err != nil {
		return nil, internalError(err, "failed to list teacher courses")
	}
	return s.relations.courseViews(ctx, courses, courseWith{department: true})
}

func (s *TeacherService) find(ctx context.Context, id int64) (*models.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Teacher")
	}
	return teacher, nil
}

func (s *TeacherService) view(ctx context.Context, id int64) (*models.TeacherView, error) {
	teacher, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.relations.teacherViews(ctx, []models.Teacher{*teacher}, true)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}
