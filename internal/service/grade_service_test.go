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

func newGradeFixture() (*GradeService, *fakeCampus, *models.Enrollment) {
	campus := newFakeCampus()
	dept := campus.addDepartment("Computing", "CMP")
	student := campus.addStudent("Ada", "ada@campus.test", "STU-001")
	course := campus.addCourse(dept.ID, nil, "CMP101", "Fall", "2025-2026")
	enrollment := campus.addEnrollment(student.ID, course.ID)
	svc := NewGradeService(fakeGrades{campus}, fakeEnrollments{campus}, campus.relations(), nil, nil)
	return svc, campus, enrollment
}

func TestGradeServiceCreate(t *testing.T) {
	svc, _, enrollment := newGradeFixture()

	view, err := svc.Create(context.Background(), CreateGradeRequest{
		EnrollmentID:   &enrollment.ID,
		AssignmentName: " Midterm ",
		AssignmentType: "midterm",
		Grade:          ptr(42.5),
		MaxGrade:       ptr(50.0),
		Weight:         ptr(30.0),
		GradeDate:      "2025-10-20",
	})
	require.NoError(t, err)
	assert.Equal(t, "Midterm", view.AssignmentName)
	assert.Equal(t, "2025-10-20", view.GradeDate.String())
	require.NotNil(t, view.Enrollment)
	assert.Equal(t, enrollment.ID, view.Enrollment.ID)
	assert.Nil(t, view.Enrollment.Student)
}

func TestGradeServiceCreateValidation(t *testing.T) {
	svc, campus, _ := newGradeFixture()

	appErr := requireFields(t, mustFail(svc.Create(context.Background(), CreateGradeRequest{
		EnrollmentID:   ptr(int64(999)),
		AssignmentName: "Essay",
		AssignmentType: "essay",
		Grade:          ptr(-1.0),
		MaxGrade:       ptr(10.0),
		Weight:         ptr(101.0),
		GradeDate:      "2025-10-20",
	})), "enrollment_id", "assignment_type", "grade", "weight")
	assert.Equal(t, []string{"The grade field must be at least 0."}, appErr.Fields["grade"])
	assert.Equal(t, []string{"The selected enrollment id is invalid."}, appErr.Fields["enrollment_id"])
	assert.Empty(t, campus.grades)

	_, err := svc.Create(context.Background(), CreateGradeRequest{})
	requireFields(t, err, "enrollment_id", "assignment_name", "assignment_type", "grade", "max_grade", "weight", "grade_date")
}

func TestGradeServiceUpdateAndGet(t *testing.T) {
	svc, campus, enrollment := newGradeFixture()
	campus.grades[50] = &models.Grade{ID: 50, EnrollmentID: enrollment.ID, AssignmentName: "Quiz", AssignmentType: "quiz",
		Grade: 7, MaxGrade: 10, Weight: 5, Remarks: ptr("late")}

	view, err := svc.Update(context.Background(), 50, UpdateGradeRequest{Grade: ptr(9.0), Remarks: dto.Some("  ")})
	require.NoError(t, err)
	assert.Equal(t, 9.0, view.Grade.Grade)
	assert.Nil(t, view.Remarks)

	detail, err := svc.Get(context.Background(), 50)
	require.NoError(t, err)
	require.NotNil(t, detail.Enrollment)
	require.NotNil(t, detail.Enrollment.Student)
	require.NotNil(t, detail.Enrollment.Course)
	assert.Equal(t, "CMP101", detail.Enrollment.Course.Code)

	_, err = svc.Update(context.Background(), 51, UpdateGradeRequest{Weight: ptr(500.0)})
	requireStatus(t, err, http.StatusNotFound)
}

func TestGradeServiceListFilter(t *testing.T) {
	svc, campus, enrollment := newGradeFixture()
	campus.grades[60] = &models.Grade{ID: 60, EnrollmentID: enrollment.ID, AssignmentType: "quiz"}
	campus.grades[61] = &models.Grade{ID: 61, EnrollmentID: enrollment.ID, AssignmentType: "final"}

	views, err := svc.List(context.Background(), models.GradeFilter{AssignmentType: "final"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, int64(61), views[0].ID)

	require.NoError(t, svc.Delete(context.Background(), 61))
	assert.Len(t, campus.grades, 1)
}
