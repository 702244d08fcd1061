package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-events-api/internal/dto"
	"github.com/noah-isme/campus-events-api/internal/models"
)

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error)
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

type teacherChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type courseEnrollmentLister interface {
	List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, error)
}

// CreateCourseRequest represents payload for creating courses.
type CreateCourseRequest struct {
	Code         string                        `json:"code" validate:"required,max=255"`
	Name         string                        `json:"name" validate:"required,max=255"`
	Description  *string                       `json:"description"`
	Credits      *int                          `json:"credits" validate:"required,min=1,max=10"`
	DepartmentID *int64                        `json:"department_id" validate:"required"`
	TeacherID    *int64                        `json:"teacher_id"`
	Semester     string                        `json:"semester" validate:"required,oneof=Fall Spring Summer"`
	AcademicYear string                        `json:"academic_year" validate:"required,max=10"`
	MaxStudents  *int                          `json:"max_students" validate:"omitnil,min=1"`
	Level        *string                       `json:"level" validate:"omitnil,oneof=undergraduate graduate doctoral"`
	Room         *string                       `json:"room" validate:"omitempty,max=255"`
	Schedule     dto.Optional[json.RawMessage] `json:"schedule" validate:"omitempty,json_container"`
	IsActive     *bool                         `json:"is_active"`
}

// UpdateCourseRequest represents a partial course update.
type UpdateCourseRequest struct {
	Code         *string                       `json:"code" validate:"omitnil,filled,max=255"`
	Name         *string                       `json:"name" validate:"omitnil,filled,max=255"`
	Description  dto.Optional[string]          `json:"description"`
	Credits      *int                          `json:"credits" validate:"omitnil,min=1,max=10"`
	DepartmentID *int64                        `json:"department_id"`
	TeacherID    dto.Optional[int64]           `json:"teacher_id"`
	Semester     *string                       `json:"semester" validate:"omitnil,oneof=Fall Spring Summer"`
	AcademicYear *string                       `json:"academic_year" validate:"omitnil,filled,max=10"`
	MaxStudents  *int                          `json:"max_students" validate:"omitnil,min=1"`
	Level        *string                       `json:"level" validate:"omitnil,oneof=undergraduate graduate doctoral"`
	Room         dto.Optional[string]          `json:"room" validate:"omitempty,max=255"`
	Schedule     dto.Optional[json.RawMessage] `json:"schedule" validate:"omitempty,json_container"`
	IsActive     *bool                         `json:"is_active"`
}

// CourseService orchestrates course operations.
type CourseService struct {
	repo        courseRepository
	departments departmentChecker
	teachers    teacherChecker
	enrollments courseEnrollmentLister
	relations   *Relations
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewCourseService constructs a CourseService.
func NewCourseService(repo courseRepository, departments departmentChecker, teachers teacherChecker, enrollments courseEnrollmentLister, relations *Relations, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{
		repo:        repo,
		departments: departments,
		teachers:    teachers,
		enrollments: enrollments,
		relations:   relations,
		validator:   validate,
		logger:      logger,
	}
}

var courseSummary = courseWith{department: true, teacher: true}

// List returns courses with department and teacher.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.CourseView, error) {
	courses, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list courses")
	}
	return s.relations.courseViews(ctx, courses, courseSummary)
}

// Get returns a course with department, teacher and enrollments.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.CourseDetail, error) {
	view, err := s.view(ctx, id)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.enrollmentsOf(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.CourseDetail{CourseView: *view, Enrollments: enrollments}, nil
}

// Create validates and stores a new course.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.CourseView, error) {
	fields, err := validateStruct(s.validator, req)
	if err != nil {
		return nil, err
	}
	code := strings.TrimSpace(req.Code)
	if code != "" {
		if err := fields.unique("code", func() (bool, error) { return s.repo.ExistsByCode(ctx, code, 0) }); err != nil {
			return nil, err
		}
	}
	if err := s.checkReferences(ctx, fields, req.DepartmentID, req.TeacherID); err != nil {
		return nil, err
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	course := &models.Course{
		Code:         code,
		Name:         strings.TrimSpace(req.Name),
		Description:  nullableString(req.Description),
		Credits:      *req.Credits,
		DepartmentID: *req.DepartmentID,
		TeacherID:    req.TeacherID,
		Semester:     req.Semester,
		AcademicYear: strings.TrimSpace(req.AcademicYear),
		MaxStudents:  30,
		Level:        stringOr(req.Level, "undergraduate"),
		Room:         nullableString(req.Room),
		Schedule:     schedule(req.Schedule),
		IsActive:     boolOr(req.IsActive, true),
	}
	if req.MaxStudents != nil {
		course.MaxStudents = *req.MaxStudents
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, writeError(s.logger, err, "failed to create course")
	}
	return s.view(ctx, course.ID)
}

// Update applies the fields present in req.
func (s *CourseService) Update(ctx context.Context, id int64, req UpdateCourseRequest) (*models.CourseView, error) {
	course, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	fields, err := validateStruct(s.validator, req)
	if err != nil {
		return nil, err
	}
	code := stringOr(req.Code, "")
	if code != "" {
		if err := fields.unique("code", func() (bool, error) { return s.repo.ExistsByCode(ctx, code, id) }); err != nil {
			return nil, err
		}
	}
	if err := s.checkReferences(ctx, fields, req.DepartmentID, req.TeacherID.Value); err != nil {
		return nil, err
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	course.Code = stringOr(&code, course.Code)
	course.Name = stringOr(req.Name, course.Name)
	applyString(req.Description, &course.Description)
	if req.Credits != nil {
		course.Credits = *req.Credits
	}
	if req.DepartmentID != nil {
		course.DepartmentID = *req.DepartmentID
	}
	req.TeacherID.Apply(&course.TeacherID)
	course.Semester = stringOr(req.Semester, course.Semester)
	course.AcademicYear = stringOr(req.AcademicYear, course.AcademicYear)
	if req.MaxStudents != nil {
		course.MaxStudents = *req.MaxStudents
	}
	course.Level = stringOr(req.Level, course.Level)
	applyString(req.Room, &course.Room)
	if req.Schedule.Set {
		course.Schedule = schedule(req.Schedule)
	}
	course.IsActive = boolOr(req.IsActive, course.IsActive)

	if err := s.repo.Update(ctx, course); err != nil {
		return nil, writeError(s.logger, err, "failed to update course")
	}
	return s.view(ctx, id)
}

// Delete removes a course with its enrollments.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(s.logger, err, "failed to delete course")
	}
	return nil
}

// Students lists the course roster with the enrollment pivot.
func (s *CourseService) Students(ctx context.Context, id int64) ([]models.EnrolledStudent, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	students, err := s.relations.students.ListEnrolledByCourseIDs(ctx, []int64{id})
	if err != nil {
		return nil, internalError(err, "failed to list course students")
	}
	return students, nil
}

// Enrollments lists the course's enrollments with their students.
func (s *CourseService) Enrollments(ctx context.Context, id int64) ([]models.EnrollmentView, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	return s.enrollmentsOf(ctx, id)
}

func (s *CourseService) enrollmentsOf(ctx context.Context, id int64) ([]models.EnrollmentView, error) {
	enrollments, err := s.enrollments.List(ctx, models.EnrollmentFilter{CourseID: &id})
	if err != nil {
		return nil, internalError(err, "failed to list course enrollments")
	}
	return s.relations.enrollmentViews(ctx, enrollments, enrollmentWith{student: true})
}

func (s *CourseService) checkReferences(ctx context.Context, fields fieldErrors, departmentID, teacherID *int64) error {
	if departmentID != nil {
		if err := fields.exists("department_id", func() (bool, error) { return s.departments.Exists(ctx, *departmentID) }); err != nil {
			return err
		}
	}
	if teacherID != nil {
		if err := fields.exists("teacher_id", func() (bool, error) { return s.teachers.Exists(ctx, *teacherID) }); err != nil {
			return err
		}
	}
	return nil
}

func (s *CourseService) find(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Course")
	}
	return course, nil
}

func (s *CourseService) view(ctx context.Context, id int64) (*models.CourseView, error) {
	course, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.relations.courseViews(ctx, []models.Course{*course}, courseSummary)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func schedule(raw dto.Optional[json.RawMessage]) *types.JSONText {
	if raw.Value == nil {
		return nil
	}
	text := types.JSONText(*raw.Value)
	return &text
}
