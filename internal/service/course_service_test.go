package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-events-api/internal/dto"
	"github.com/noah-isme/campus-events-api/internal/models"
)

func newCourseFixture() (*CourseService, *fakeCampus) {
	campus := newFakeCampus()
	svc := NewCourseService(fakeCourses{campus}, fakeDepartments{campus}, fakeTeachers{campus}, fakeEnrollments{campus}, campus.relations(), nil, nil)
	return svc, campus
}

func TestCourseServiceCreateDefaults(t *testing.T) {
	svc, campus := newCourseFixture()
	dept := campus.addDepartment("Computing", "CMP")
	teacher := campus.addTeacher(dept.ID, "Alan", "alan@campus.test", "EMP-1")

	view, err := svc.Create(context.Background(), CreateCourseRequest{
		Code:         " CMP201 ",
		Name:         "Algorithms",
		Credits:      ptr(4),
		DepartmentID: &dept.ID,
		TeacherID:    &teacher.ID,
		Semester:     "Spring",
		AcademicYear: "2025-2026",
		Schedule:     dto.Some(json.RawMessage(`{"mon":"09:00"}`)),
	})
	require.NoError(t, err)
	assert.Equal(t, "CMP201", view.Code)
	assert.Equal(t, 30, view.MaxStudents)
	assert.Equal(t, "undergraduate", view.Level)
	assert.True(t, view.IsActive)
	require.NotNil(t, view.Schedule)
	assert.JSONEq(t, `{"mon":"09:00"}`, string(*view.Schedule))
	require.NotNil(t, view.Teacher)
	assert.Equal(t, teacher.ID, view.Teacher.ID)
	assert.Equal(t, "CMP", view.Department.Code)
}

func TestCourseServiceCreateValidation(t *testing.T) {
	svc, campus := newCourseFixture()
	dept := campus.addDepartment("Computing", "CMP")
	campus.addCourse(dept.ID, nil, "CMP101", "Fall", "2025-2026")

	appErr := requireFields(t, mustFail(svc.Create(context.Background(), CreateCourseRequest{
		Code:         "CMP101",
		Name:         "Intro",
		Credits:      ptr(11),
		DepartmentID: ptr(int64(404)),
		TeacherID:    ptr(int64(405)),
		Semester:     "Winter",
		AcademicYear: "2025-2026",
		Schedule:     dto.Some(json.RawMessage(`"mondays"`)),
	})), "code", "credits", "department_id", "teacher_id", "semester", "schedule")
	assert.Equal(t, []string{"The credits field must not be greater than 10."}, appErr.Fields["credits"])
	assert.Equal(t, []string{"The schedule field must be an array."}, appErr.Fields["schedule"])
	assert.Len(t, campus.courses, 1)
}

func TestCourseServiceListFilters(t *testing.T) {
	svc, campus := newCourseFixture()
	dept := campus.addDepartment("Computing", "CMP")
	campus.addCourse(dept.ID, nil, "A", "Fall", "2024-2025")
	campus.addCourse(dept.ID, nil, "B", "Fall", "2025-2026")
	campus.addCourse(dept.ID, nil, "C", "Spring", "2025-2026")

	all, err := svc.List(context.Background(), models.CourseFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	both, err := svc.List(context.Background(), models.CourseFilter{Semester: "Fall", AcademicYear: "2025-2026"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "B", both[0].Code)
}

func TestCourseServiceUpdateClearsTeacher(t *testing.T) {
	svc, campus := newCourseFixture()
	dept := campus.addDepartment("Computing", "CMP")
	teacher := campus.addTeacher(dept.ID, "Alan", "alan@campus.test", "EMP-1")
	course := campus.addCourse(dept.ID, &teacher.ID, "CMP101", "Fall", "2025-2026")

	_, err := svc.Update(context.Background(), course.ID, UpdateCourseRequest{TeacherID: dto.Some(int64(999))})
	requireFields(t, err, "teacher_id")

	view, err := svc.Update(context.Background(), course.ID, UpdateCourseRequest{
		TeacherID: dto.Null[int64](),
		Room:      dto.Some("B-12"),
		Code:      ptr("CMP101"),
	})
	require.NoError(t, err)
	assert.Nil(t, view.TeacherID)
	assert.Nil(t, view.Teacher)
	require.NotNil(t, view.Room)
	assert.Equal(t, "B-12", *view.Room)
}

func TestCourseServiceUpdateNameOnlyKeepsOtherFields(t *testing.T) {
	svc, campus := newCourseFixture()
	dept := campus.addDepartment("Computing", "CMP")
	teacher := campus.addTeacher(dept.ID, "Alan", "alan@campus.test", "EMP-1")
	course := campus.addCourse(dept.ID, &teacher.ID, "CMP101", "Fall", "2025-2026")
	course.Room = ptr("B-12")
	before := *course

	view, err := svc.Update(context.Background(), course.ID, UpdateCourseRequest{Name: ptr("New Name")})
	require.NoError(t, err)
	assert.Equal(t, "New Name", view.Name)

	stored := campus.courses[course.ID]
	assert.Equal(t, "New Name", stored.Name)
	assert.Equal(t, before.Code, stored.Code)
	assert.Equal(t, before.Credits, stored.Credits)
	assert.Equal(t, before.DepartmentID, stored.DepartmentID)
	require.NotNil(t, stored.TeacherID)
	assert.Equal(t, teacher.ID, *stored.TeacherID)
	assert.Equal(t, before.Semester, stored.Semester)
	assert.Equal(t, before.AcademicYear, stored.AcademicYear)
	assert.Equal(t, before.MaxStudents, stored.MaxStudents)
	assert.Equal(t, before.Level, stored.Level)
	assert.Equal(t, before.Room, stored.Room)
	assert.Equal(t, before.IsActive, stored.IsActive)
}

func TestCourseServiceRosterAndEnrollments(t *testing.T) {
	svc, campus := newCourseFixture()
	dept := campus.addDepartment("Computing", "CMP")
	course := campus.addCourse(dept.ID, nil, "CMP101", "Fall", "2025-2026")
	student := campus.addStudent("Ada", "ada@campus.test", "STU-001")
	campus.addEnrollment(student.ID, course.ID)

	roster, err := svc.Students(context.Background(), course.ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "STU-001", roster[0].StudentID)
	assert.Equal(t, course.ID, roster[0].Pivot.CourseID)

	detail, err := svc.Get(context.Background(), course.ID)
	require.NoError(t, err)
	require.Len(t, detail.Enrollments, 1)
	require.NotNil(t, detail.Enrollments[0].Student)
	assert.Nil(t, detail.Enrollments[0].Course)

	_, err = svc.Students(context.Background(), 777)
	requireStatus(t, err, http.StatusNotFound)
}
