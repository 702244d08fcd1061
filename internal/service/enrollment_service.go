package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-events-api/internal/dto"
	"github.com/noah-isme/campus-events-api/internal/models"
)

type enrollmentRepository interface {
	List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, error)
	FindByID(ctx context.Context, id int64) (*models.Enrollment, error)
	ExistsForPair(ctx context.Context, studentID, courseID int64) (bool, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Update(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id int64) error
}

type studentChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type courseChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type enrollmentGradeLister interface {
	List(ctx context.Context, filter models.GradeFilter) ([]models.Grade, error)
}

const duplicateEnrollmentMessage = "The student is already enrolled in this course."

// CreateEnrollmentRequest represents payload for enrolling a student.
type CreateEnrollmentRequest struct {
	StudentID      *int64   `json:"student_id" validate:"required"`
	CourseID       *int64   `json:"course_id" validate:"required"`
	EnrollmentDate string   `json:"enrollment_date" validate:"required,timestamp"`
	Status         *string  `json:"status" validate:"omitnil,oneof=enrolled dropped completed failed"`
	FinalGrade     *float64 `json:"final_grade" validate:"omitnil,min=0,max=100"`
	LetterGrade    *string  `json:"letter_grade" validate:"omitempty,oneof=A+ A A- B+ B B- C+ C C- D F"`
	Notes          *string  `json:"notes"`
}

// UpdateEnrollmentRequest represents a partial enrollment update. The
// student and course of an enrollment cannot change.
type UpdateEnrollmentRequest struct {
	EnrollmentDate *string               `json:"enrollment_date" validate:"omitnil,timestamp"`
	Status         *string               `json:"status" validate:"omitnil,oneof=enrolled dropped completed failed"`
	FinalGrade     dto.Optional[float64] `json:"final_grade" validate:"omitempty,min=0,max=100"`
	LetterGrade    dto.Optional[string]  `json:"letter_grade" validate:"omitempty,oneof=A+ A A- B+ B B- C+ C C- D F"`
	Notes          dto.Optional[string]  `json:"notes"`
}

// EnrollmentService orchestrates enrollment operations.
type EnrollmentService struct {
	repo      enrollmentRepository
	students  studentChecker
	courses   courseChecker
	grades    enrollmentGradeLister
	relations *Relations
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs an EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, students studentChecker, courses courseChecker, grades enrollmentGradeLister, relations *Relations, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		repo:      repo,
		students:  students,
		courses:   courses,
		grades:    grades,
		relations: relations,
		validator: validate,
		logger:    logger,
	}
}

var (
	enrollmentSummary = enrollmentWith{student: true, course: true}
	enrollmentFull    = enrollmentWith{student: true, studentUser: true, course: true}
)

// List returns enrollments with student (and user) and course.
func (s *EnrollmentService) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentView, error) {
	enrollments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list enrollments")
	}
	return s.relations.enrollmentViews(ctx, enrollments, enrollmentFull)
}

// Get returns an enrollment with student, course and grades.
func (s *EnrollmentService) Get(ctx context.Context, id int64) (*models.EnrollmentDetail, error) {
	view, err := s.view(ctx, id, enrollmentFull)
	if err != nil {
		return nil, err
	}
	grades, err := s.gradesOf(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.EnrollmentDetail{EnrollmentView: *view, Grades: grades}, nil
}

// Create enrolls a student in a course. A pair can only be enrolled once.
func (s *EnrollmentService) Create(ctx context.Context, req CreateEnrollmentRequest) (*models.EnrollmentView, error) {
	fields, err := validateStruct(s.validator, req)
	if err != nil {
		return nil, err
	}
	if req.StudentID != nil {
		if err := fields.exists("student_id", func() (bool, error) { return s.students.Exists(ctx, *req.StudentID) }); err != nil {
			return nil, err
		}
	}
	if req.CourseID != nil {
		if err := fields.exists("course_id", func() (bool, error) { return s.courses.Exists(ctx, *req.CourseID) }); err != nil {
			return nil, err
		}
	}
	if !fields.has("student_id") && !fields.has("course_id") {
		enrolled, err := s.repo.ExistsForPair(ctx, *req.StudentID, *req.CourseID)
		if err != nil {
			return nil, internalError(err, "failed to check enrollment")
		}
		if enrolled {
			fields.add("student_id", duplicateEnrollmentMessage)
		}
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	enrollment := &models.Enrollment{
		StudentID:      *req.StudentID,
		CourseID:       *req.CourseID,
		EnrollmentDate: parseDay(req.EnrollmentDate),
		Status:         stringOr(req.Status, models.EnrollmentEnrolled),
		FinalGrade:     req.FinalGrade,
		LetterGrade:    nullableString(req.LetterGrade),
		Notes:          nullableString(req.Notes),
	}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		return nil, writeError(s.logger, err, "failed to create enrollment")
	}
	return s.view(ctx, enrollment.ID, enrollmentSummary)
}

// Update applies the fields present in req. Status changes are unrestricted.
func (s *EnrollmentService) Update(ctx context.Context, id int64, req UpdateEnrollmentRequest) (*models.EnrollmentView, error) {
	enrollment, err := s.find(ctx, id)
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

	if req.EnrollmentDate != nil {
		enrollment.EnrollmentDate = parseDay(*req.EnrollmentDate)
	}
	enrollment.Status = stringOr(req.Status, enrollment.Status)
	req.FinalGrade.Apply(&enrollment.FinalGrade)
	applyString(req.LetterGrade, &enrollment.LetterGrade)
	applyString(req.Notes, &enrollment.Notes)

	if err := s.repo.Update(ctx, enrollment); err != nil {
		return nil, writeError(s.logger, err, "failed to update enrollment")
	}
	return s.view(ctx, id, enrollmentSummary)
}

// Delete removes an enrollment with its grades.
func (s *EnrollmentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(s.logger, err, "failed to delete enrollment")
	}
	return nil
}

// Grades lists the grades recorded for an enrollment.
func (s *EnrollmentService) Grades(ctx context.Context, id int64) ([]models.Grade, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	return s.gradesOf(ctx, id)
}

func (s *EnrollmentService) gradesOf(ctx context.Context, id int64) ([]models.Grade, error) {
	grades, err := s.grades.List(ctx, models.GradeFilter{EnrollmentID: &id})
	if err != nil {
		return nil, internalError(err, "failed to list enrollment grades")
	}
	return grades, nil
}

func (s *EnrollmentService) find(ctx context.Context, id int64) (*models.Enrollment, error) {
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Enrollment")
	}
	return enrollment, nil
}

func (s *EnrollmentService) view(ctx context.Context, id int64, with enrollmentWith) (*models.EnrollmentView, error) {
	enrollment, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.relations.enrollmentViews(ctx, []models.Enrollment{*enrollment}, with)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}
