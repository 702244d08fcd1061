package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-events-api/internal/dto"
	"github.com/noah-isme/campus-events-api/internal/models"
)

type enrollmentFixture struct {
	campus  *fakeCampus
	student *models.Student
	course  *models.Course
}

func newEnrollmentFixture() (*EnrollmentService, enrollmentFixture) {
	campus := newFakeCampus()
	dept := campus.addDepartment("Computing", "CMP")
	fx := enrollmentFixture{
		campus:  campus,
		student: campus.addStudent("Ada", "ada@campus.test", "STU-001"),
		course:  campus.addCourse(dept.ID, nil, "CMP101", "Fall", "2025-2026"),
	}
	svc := NewEnrollmentService(fakeEnrollments{campus}, fakeStudents{campus}, fakeCourses{campus}, fakeGrades{campus}, campus.relations(), nil, nil)
	return svc, fx
}

func TestEnrollmentServiceCreate(t *testing.T) {
	svc, fx := newEnrollmentFixture()

	view, err := svc.Create(context.Background(), CreateEnrollmentRequest{
		StudentID:      &fx.student.ID,
		CourseID:       &fx.course.ID,
		EnrollmentDate: "2025-09-02",
	})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentEnrolled, view.Status)
	require.NotNil(t, view.Student)
	assert.Nil(t, view.Student.User)
	require.NotNil(t, view.Course)
	assert.Equal(t, "CMP101", view.Course.Code)
}

func TestEnrollmentServiceCreateBlankLetterGradeIsNull(t *testing.T) {
	svc, fx := newEnrollmentFixture()

	view, err := svc.Create(context.Background(), CreateEnrollmentRequest{
		StudentID:      &fx.student.ID,
		CourseID:       &fx.course.ID,
		EnrollmentDate: "2025-09-02",
		LetterGrade:    ptr(" "),
	})
	require.NoError(t, err)
	assert.Nil(t, view.LetterGrade)

	_, err = svc.Create(context.Background(), CreateEnrollmentRequest{
		StudentID:      &fx.student.ID,
		CourseID:       &fx.course.ID,
		EnrollmentDate: "2025-09-02",
		LetterGrade:    ptr("Z"),
	})
	appErr := requireFields(t, err, "letter_grade")
	assert.Equal(t, []string{"The selected letter grade is invalid."}, appErr.Fields["letter_grade"])
}

func TestEnrollmentServiceRejectsDuplicatePair(t *testing.T) {
	svc, fx := newEnrollmentFixture()
	fx.campus.addEnrollment(fx.student.ID, fx.course.ID)

	appErr := requireFields(t, mustFail(svc.Create(context.Background(), CreateEnrollmentRequest{
		StudentID:      &fx.student.ID,
		CourseID:       &fx.course.ID,
		EnrollmentDate: "2025-09-02",
	})), "student_id")
	assert.Equal(t, []string{"The student is already enrolled in this course."}, appErr.Fields["student_id"])
	assert.Len(t, fx.campus.enrollments, 1)
}

func TestEnrollmentServiceCreateValidation(t *testing.T) {
	svc, fx := newEnrollmentFixture()

	appErr := requireFields(t, mustFail(svc.Create(context.Background(), CreateEnrollmentRequest{
		StudentID:      ptr(int64(999)),
		CourseID:       &fx.course.ID,
		EnrollmentDate: "2025-09-02",
		FinalGrade:     ptr(120.0),
		LetterGrade:    ptr("E"),
	})), "student_id", "final_grade", "letter_grade")
	assert.Equal(t, []string{"The selected student id is invalid."}, appErr.Fields["student_id"])
	assert.Equal(t, []string{"The final grade field must not be greater than 100."}, appErr.Fields["final_grade"])
}

func TestEnrollmentServiceUpdate(t *testing.T) {
	svc, fx := newEnrollmentFixture()
	enrollment := fx.campus.addEnrollment(fx.student.ID, fx.course.ID)
	enrollment.FinalGrade = ptr(71.5)

	view, err := svc.Update(context.Background(), enrollment.ID, UpdateEnrollmentRequest{
		Status:      ptr(models.EnrollmentCompleted),
		FinalGrade:  dto.Null[float64](),
		LetterGrade: dto.Some("B+"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentCompleted, view.Status)
	assert.Nil(t, view.FinalGrade)
	require.NotNil(t, view.LetterGrade)
	assert.Equal(t, "B+", *view.LetterGrade)

	_, err = svc.Update(context.Background(), enrollment.ID, UpdateEnrollmentRequest{Status: ptr("paused")})
	requireFields(t, err, "status")
}

func TestEnrollmentServiceDetailAndGrades(t *testing.T) {
	svc, fx := newEnrollmentFixture()
	enrollment := fx.campus.addEnrollment(fx.student.ID, fx.course.ID)
	fx.campus.grades[100] = &models.Grade{ID: 100, EnrollmentID: enrollment.ID, AssignmentName: "Quiz 1", AssignmentType: "quiz", Grade: 8, MaxGrade: 10, Weight: 5}

	detail, err := svc.Get(context.Background(), enrollment.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Student)
	require.NotNil(t, detail.Student.User)
	assert.Equal(t, "Ada", detail.Student.User.Name)
	require.Len(t, detail.Grades, 1)

	grades, err := svc.Grades(context.Background(), enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, "Quiz 1", grades[0].AssignmentName)

	require.NoError(t, svc.Delete(context.Background(), enrollment.ID))
	_, err = svc.Grades(context.Background(), enrollment.ID)
	requireStatus(t, err, http.StatusNotFound)
}
