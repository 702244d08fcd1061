package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-events-api/internal/dto"
	"github.com/noah-isme/campus-events-api/internal/models"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	ExistsByStudentID(ctx context.Context, studentID string, excludeID int64) (bool, error)
	CreateWithUser(ctx context.Context, user *models.User, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

type studentEnrollmentLister interface {
	List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, error)
}

type studentCourseLister interface {
	ListEnrolledByStudentID(ctx context.Context, studentID int64) ([]models.EnrolledCourse, error)
}

// CreateStudentRequest represents payload for creating students and their accounts.
type CreateStudentRequest struct {
	Name              string  `json:"name" validate:"required,max=255"`
	Email             string  `json:"email" validate:"required,email,max=255"`
	Password          string  `json:"password" validate:"required,min=8"`
	StudentID         string  `json:"student_id" validate:"required,max=255"`
	DateOfBirth       string  `json:"date_of_birth" validate:"required,timestamp"`
	Gender            string  `json:"gender" validate:"required,oneof=male female other"`
	Phone             *string `json:"phone" validate:"omitempty,max=255"`
	Address           *string `json:"address"`
	GuardianName      string  `json:"guardian_name" validate:"required,max=255"`
	GuardianPhone     string  `json:"guardian_phone" validate:"required,max=255"`
	GuardianEmail     *string `json:"guardian_email" validate:"omitempty,email,max=255"`
	AdmissionDate     string  `json:"admission_date" validate:"required,timestamp"`
	EnrollmentStatus  *string `json:"enrollment_status" validate:"omitnil,oneof=active inactive graduated suspended"`
	BloodGroup        *string `json:"blood_group" validate:"omitempty,max=10"`
	MedicalConditions *string `json:"medical_conditions"`
}

// UpdateStudentRequest represents a partial student update.
type UpdateStudentRequest struct {
	StudentID         *string              `json:"student_id" validate:"omitnil,filled,max=255"`
	DateOfBirth       *string              `json:"date_of_birth" validate:"omitnil,timestamp"`
	Gender            *string              `json:"gender" validate:"omitnil,oneof=male female other"`
	Phone             dto.Optional[string] `json:"phone" validate:"omitempty,max=255"`
	Address           dto.Optional[string] `json:"address"`
	GuardianName      *string              `json:"guardian_name" validate:"omitnil,filled,max=255"`
	GuardianPhone     *string              `json:"guardian_phone" validate:"omitnil,filled,max=255"`
	GuardianEmail     dto.Optional[string] `json:"guardian_email" validate:"omitempty,email,max=255"`
	AdmissionDate     *string              `json:"admission_date" validate:"omitnil,timestamp"`
	EnrollmentStatus  *string              `json:"enrollment_status" validate:"omitnil,oneof=active inactive graduated suspended"`
	BloodGroup        dto.Optional[string] `json:"blood_group" validate:"omitempty,max=10"`
	MedicalConditions dto.Optional[string] `json:"medical_conditions"`
}

// StudentService orchestrates student operations.
type StudentService struct {
	repo        studentRepository
	users       accountChecker
	enrollments studentEnrollmentLister
	courses     studentCourseLister
	relations   *Relations
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(repo studentRepository, users accountChecker, enrollments studentEnrollmentLister, courses studentCourseLister, relations *Relations, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{
		repo:        repo,
		users:       users,
		enrollments: enrollments,
		courses:     courses,
		relations:   relations,
		validator:   validate,
		logger:      logger,
	}
}

// List returns students with their user accounts.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentView, error) {
	students, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list students")
	}
	return s.relations.studentViews(ctx, students)
}

// Get returns a student with user and enrollments, each with its course.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.StudentDetail, error) {
	view, err := s.view(ctx, id)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.enrollmentsOf(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.StudentDetail{StudentView: *view, Enrollments: enrollments}, nil
}

// Create registers the user account and the student together.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.StudentView, error) {
	fields, err := validateStruct(s.validator, req)
	if err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	studentID := strings.TrimSpace(req.StudentID)

	if err := fields.unique("email", func() (bool, error) { return s.users.ExistsByEmail(ctx, email) }); err != nil {
		return nil, err
	}
	if err := fields.unique("student_id", func() (bool, error) { return s.repo.ExistsByStudentID(ctx, studentID, 0) }); err != nil {
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
	student := &models.Student{
		StudentID:         studentID,
		DateOfBirth:       parseDay(req.DateOfBirth),
		Gender:            req.Gender,
		Phone:             nullableString(req.Phone),
		Address:           nullableString(req.Address),
		GuardianName:      strings.TrimSpace(req.GuardianName),
		GuardianPhone:     strings.TrimSpace(req.GuardianPhone),
		GuardianEmail:     nullableString(req.GuardianEmail),
		AdmissionDate:     parseDay(req.AdmissionDate),
		EnrollmentStatus:  stringOr(req.EnrollmentStatus, "active"),
		BloodGroup:        nullableString(req.BloodGroup),
		MedicalConditions: nullableString(req.MedicalConditions),
	}
	if err := s.repo.CreateWithUser(ctx, user, student); err != nil {
		return nil, writeError(s.logger, err, "failed to create student")
	}
	return s.view(ctx, student.ID)
}

// Update applies the fields present in req.
func (s *StudentService) Update(ctx context.Context, id int64, req UpdateStudentRequest) (*models.StudentView, error) {
	student, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	fields, err := validateStruct(s.validator, req)
	if err != nil {
		return nil, err
	}
	studentID := stringOr(req.StudentID, "")
	if studentID != "" {
		if err := fields.unique("student_id", func() (bool, error) { return s.repo.ExistsByStudentID(ctx, studentID, id) }); err != nil {
			return nil, err
		}
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	student.StudentID = stringOr(&studentID, student.StudentID)
	if req.DateOfBirth != nil {
		student.DateOfBirth = parseDay(*req.DateOfBirth)
	}
	student.Gender = stringOr(req.Gender, student.Gender)
	applyString(req.Phone, &student.Phone)
	applyString(req.Address, &student.Address)
	student.GuardianName = stringOr(req.GuardianName, student.GuardianName)
	student.GuardianPhone = stringOr(req.GuardianPhone, student.GuardianPhone)
	applyString(req.GuardianEmail, &student.GuardianEmail)
	if req.AdmissionDate != nil {
		student.AdmissionDate = parseDay(*req.AdmissionDate)
	}
	student.EnrollmentStatus = stringOr(req.EnrollmentStatus, student.EnrollmentStatus)
	applyString(req.BloodGroup, &student.BloodGroup)
	applyString(req.MedicalConditions, &student.MedicalConditions)

	if err := s.repo.Update(ctx, student); err != nil {
		return nil, writeError(s.logger, err, "failed to update student")
	}
	return s.view(ctx, id)
}

// Delete removes a student with their enrollments and grades.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(s.logger, err, "failed to delete student")
	}
	return nil
}

// Enrollments lists a student's enrollments with their courses.
func (s *StudentService) Enrollments(ctx context.Context, id int64) ([]models.EnrollmentView, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	return s.enrollmentsOf(ctx, id)
}

func (s *StudentService) enrollmentsOf(ctx context.Context, id int64) ([]models.EnrollmentView, error) {
	enrollments, err := s.enrollments.List(ctx, models.EnrollmentFilter{StudentID: &id})
	if err != nil {
		return nil, internalError(err, "failed to list student enrollments")
	}
	return s.relations.enrollmentViews(ctx, enrollments, enrollmentWith{course: true})
}

// Courses lists a student's courses with the enrollment pivot.
func (s *StudentService) Courses(ctx context.Context, id int64) ([]models.EnrolledCourse, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	courses, err := s.courses.ListEnrolledByStudentID(ctx, id)
	if err != nil {
		return nil, internalError(err, "failed to list student courses")
	}
	return courses, nil
}

func (s *StudentService) find(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Student")
	}
	return student, nil
}

func (s *StudentService) view(ctx context.Context, id int64) (*models.StudentView, error) {
	student, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.relations.studentViews(ctx, []models.Student{*student})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}
