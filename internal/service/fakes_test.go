package service

import (
	"context"
	"database/sql"
	"net/http"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-events-api/internal/models"
	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
)

// fakeCampus is an in-memory academic store shared by the per-table fakes
// below so that relations resolve across them.
type fakeCampus struct {
	nextID      int64
	users       map[int64]*models.User
	departments map[int64]*models.Department
	teachers    map[int64]*models.Teacher
	students    map[int64]*models.Student
	courses     map[int64]*models.Course
	enrollments map[int64]*models.Enrollment
	grades      map[int64]*models.Grade
}

func newFakeCampus() *fakeCampus {
	return &fakeCampus{
		users:       map[int64]*models.User{},
		departments: map[int64]*models.Department{},
		teachers:    map[int64]*models.Teacher{},
		students:    map[int64]*models.Student{},
		courses:     map[int64]*models.Course{},
		enrollments: map[int64]*models.Enrollment{},
		grades:      map[int64]*models.Grade{},
	}
}

func (c *fakeCampus) id() int64 {
	c.nextID++
	return c.nextID
}

func (c *fakeCampus) relations() *Relations {
	return NewRelations(fakeUsers{c}, fakeDepartments{c}, fakeTeachers{c}, fakeStudents{c}, fakeCourses{c})
}

func (c *fakeCampus) addDepartment(name, code string) *models.Department {
	d := &models.Department{ID: c.id(), Name: name, Code: code, IsActive: true}
	c.departments[d.ID] = d
	return d
}

func (c *fakeCampus) addTeacher(departmentID int64, name, email, employeeID string) *models.Teacher {
	u := &models.User{ID: c.id(), Name: name, Email: email}
	c.users[u.ID] = u
	t := &models.Teacher{ID: c.id(), UserID: u.ID, DepartmentID: departmentID, EmployeeID: employeeID, EmploymentType: models.EmploymentFullTime, IsActive: true}
	c.teachers[t.ID] = t
	return t
}

func (c *fakeCampus) addStudent(name, email, studentID string) *models.Student {
	u := &models.User{ID: c.id(), Name: name, Email: email}
	c.users[u.ID] = u
	s := &models.Student{ID: c.id(), UserID: u.ID, StudentID: studentID, Gender: "female", EnrollmentStatus: "active"}
	c.students[s.ID] = s
	return s
}

func (c *fakeCampus) addCourse(departmentID int64, teacherID *int64, code, semester, year string) *models.Course {
	course := &models.Course{ID: c.id(), Code: code, Name: code, Credits: 3, DepartmentID: departmentID, TeacherID: teacherID,
		Semester: semester, AcademicYear: year, MaxStudents: 30, Level: "undergraduate", IsActive: true}
	c.courses[course.ID] = course
	return course
}

func (c *fakeCampus) addEnrollment(studentID, courseID int64) *models.Enrollment {
	e := &models.Enrollment{ID: c.id(), StudentID: studentID, CourseID: courseID,
		EnrollmentDate: models.MustParseDate("2025-09-01"), Status: models.EnrollmentEnrolled}
	c.enrollments[e.ID] = e
	return e
}

func sortedIDs[T any](m map[int64]*T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func collect[T any](m map[int64]*T, keep func(*T) bool) []T {
	out := []T{}
	for _, id := range sortedIDs(m) {
		if keep == nil || keep(m[id]) {
			out = append(out, *m[id])
		}
	}
	return out
}

func find[T any](m map[int64]*T, id int64) (*T, error) {
	item, ok := m[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *item
	return &cp, nil
}

func inIDs(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func (c *fakeCampus) pivot(e *models.Enrollment) models.Pivot {
	return models.Pivot{StudentID: e.StudentID, CourseID: e.CourseID, EnrollmentDate: e.EnrollmentDate, Status: e.Status,
		FinalGrade: e.FinalGrade, LetterGrade: e.LetterGrade, Notes: e.Notes}
}

type fakeUsers struct{ *fakeCampus }

func (f fakeUsers) FindByIDs(ctx context.Context, ids []int64) ([]models.User, error) {
	return collect(f.users, func(u *models.User) bool { return inIDs(ids, u.ID) }), nil
}

func (f fakeUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

type fakeDepartments struct{ *fakeCampus }

func (f fakeDepartments) List(ctx context.Context, filter models.DepartmentFilter) ([]models.Department, error) {
	return collect(f.departments, func(d *models.Department) bool {
		return filter.IsActive == nil || d.IsActive == *filter.IsActive
	}), nil
}

func (f fakeDepartments) FindByID(ctx context.Context, id int64) (*models.Department, error) {
	return find(f.departments, id)
}

func (f fakeDepartments) FindByIDs(ctx context.Context, ids []int64) ([]models.Department, error) {
	return collect(f.departments, func(d *models.Department) bool { return inIDs(ids, d.ID) }), nil
}

func (f fakeDepartments) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := f.departments[id]
	return ok, nil
}

func (f fakeDepartments) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	return len(collect(f.departments, func(d *models.Department) bool { return d.Name == name && d.ID != excludeID })) > 0, nil
}

func (f fakeDepartments) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	return len(collect(f.departments, func(d *models.Department) bool { return d.Code == code && d.ID != excludeID })) > 0, nil
}

func (f fakeDepartments) Create(ctx context.Context, d *models.Department) error {
	d.ID = f.id()
	d.CreatedAt, d.UpdatedAt = time.Now(), time.Now()
	cp := *d
	f.departments[d.ID] = &cp
	return nil
}

func (f fakeDepartments) Update(ctx context.Context, d *models.Department) error {
	if _, ok := f.departments[d.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *d
	f.departments[d.ID] = &cp
	return nil
}

func (f fakeDepartments) Delete(ctx context.Context, id int64) error {
	delete(f.departments, id)
	return nil
}

type fakeTeachers struct{ *fakeCampus }

func (f fakeTeachers) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, error) {
	return collect(f.teachers, func(t *models.Teacher) bool {
		return (filter.DepartmentID == nil || t.DepartmentID == *filter.DepartmentID) &&
			(filter.IsActive == nil || t.IsActive == *filter.IsActive)
	}), nil
}

func (f fakeTeachers) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	return find(f.teachers, id)
}

func (f fakeTeachers) FindByIDs(ctx context.Context, ids []int64) ([]models.Teacher, error) {
	return collect(f.teachers, func(t *models.Teacher) bool { return inIDs(ids, t.ID) }), nil
}

func (f fakeTeachers) ListByDepartmentIDs(ctx context.Context, departmentIDs []int64) ([]models.Teacher, error) {
	return collect(f.teachers, func(t *models.Teacher) bool { return inIDs(departmentIDs, t.DepartmentID) }), nil
}

func (f fakeTeachers) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := f.teachers[id]
	return ok, nil
}

func (f fakeTeachers) ExistsByEmployeeID(ctx context.Context, employeeID string, excludeID int64) (bool, error) {
	return len(collect(f.teachers, func(t *models.Teacher) bool { return t.EmployeeID == employeeID && t.ID != excludeID })) > 0, nil
}

func (f fakeTeachers) CreateWithUser(ctx context.Context, user *models.User, t *models.Teacher) error {
	user.ID = f.id()
	u := *user
	f.users[user.ID] = &u
	t.ID = f.id()
	t.UserID = user.ID
	cp := *t
	f.teachers[t.ID] = &cp
	return nil
}

func (f fakeTeachers) Update(ctx context.Context, t *models.Teacher) error {
	cp := *t
	f.teachers[t.ID] = &cp
	return nil
}

func (f fakeTeachers) Delete(ctx context.Context, id int64) error {
	delete(f.teachers, id)
	return nil
}

type fakeStudents struct{ *fakeCampus }

func (f fakeStudents) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	return collect(f.students, func(s *models.Student) bool {
		return filter.EnrollmentStatus == "" || s.EnrollmentStatus == filter.EnrollmentStatus
	}), nil
}

func (f fakeStudents) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	return find(f.students, id)
}

func (f fakeStudents) FindByIDs(ctx context.Context, ids []int64) ([]models.Student, error) {
	return collect(f.students, func(s *models.Student) bool { return inIDs(ids, s.ID) }), nil
}

func (f fakeStudents) ListEnrolledByCourseIDs(ctx context.Context, courseIDs []int64) ([]models.EnrolledStudent, error) {
	out := []models.EnrolledStudent{}
	for _, e := range collect(f.enrollments, func(e *models.Enrollment) bool { return inIDs(courseIDs, e.CourseID) }) {
		e := e
		if s, ok := f.students[e.StudentID]; ok {
			out = append(out, models.EnrolledStudent{Student: *s, Pivot: f.pivot(&e)})
		}
	}
	return out, nil
}

func (f fakeStudents) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := f.students[id]
	return ok, nil
}

func (f fakeStudents) ExistsByStudentID(ctx context.Context, studentID string, excludeID int64) (bool, error) {
	return len(collect(f.students, func(s *models.Student) bool { return s.StudentID == studentID && s.ID != excludeID })) > 0, nil
}

func (f fakeStudents) CreateWithUser(ctx context.Context, user *models.User, s *models.Student) error {
	user.ID = f.id()
	u := *user
	f.users[user.ID] = &u
	s.ID = f.id()
	s.UserID = user.ID
	cp := *s
	f.students[s.ID] = &cp
	return nil
}

func (f fakeStudents) Update(ctx context.Context, s *models.Student) error {
	cp := *s
	f.students[s.ID] = &cp
	return nil
}

func (f fakeStudents) Delete(ctx context.Context, id int64) error {
	delete(f.students, id)
	return nil
}

type fakeCourses struct{ *fakeCampus }

func (f fakeCourses) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	return collect(f.courses, func(c *models.Course) bool {
		return (filter.DepartmentID == nil || c.DepartmentID == *filter.DepartmentID) &&
			(filter.Semester == "" || c.Semester == filter.Semester) &&
			(filter.AcademicYear == "" || c.AcademicYear == filter.AcademicYear)
	}), nil
}

func (f fakeCourses) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	return find(f.courses, id)
}

func (f fakeCourses) FindByIDs(ctx context.Context, ids []int64) ([]models.Course, error) {
	return collect(f.courses, func(c *models.Course) bool { return inIDs(ids, c.ID) }), nil
}

func (f fakeCourses) ListByDepartmentIDs(ctx context.Context, departmentIDs []int64) ([]models.Course, error) {
	return collect(f.courses, func(c *models.Course) bool { return inIDs(departmentIDs, c.DepartmentID) }), nil
}

func (f fakeCourses) ListByTeacherID(ctx context.Context, teacherID int64) ([]models.Course, error) {
	return collect(f.courses, func(c *models.Course) bool { return c.TeacherID != nil && *c.TeacherID == teacherID }), nil
}

func (f fakeCourses) ListEnrolledByStudentID(ctx context.Context, studentID int64) ([]models.EnrolledCourse, error) {
	out := []models.EnrolledCourse{}
	for _, e := range collect(f.enrollments, func(e *models.Enrollment) bool { return e.StudentID == studentID }) {
		e := e
		if c, ok := f.courses[e.CourseID]; ok {
			out = append(out, models.EnrolledCourse{Course: *c, Pivot: f.pivot(&e)})
		}
	}
	return out, nil
}

func (f fakeCourses) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := f.courses[id]
	return ok, nil
}

func (f fakeCourses) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	return len(collect(f.courses, func(c *models.Course) bool { return c.Code == code && c.ID != excludeID })) > 0, nil
}

func (f fakeCourses) Create(ctx context.Context, c *models.Course) error {
	c.ID = f.id()
	cp := *c
	f.courses[c.ID] = &cp
	return nil
}

func (f fakeCourses) Update(ctx context.Context, c *models.Course) error {
	cp := *c
	f.courses[c.ID] = &cp
	return nil
}

func (f fakeCourses) Delete(ctx context.Context, id int64) error {
	delete(f.courses, id)
	return nil
}

type fakeEnrollments struct{ *fakeCampus }

func (f fakeEnrollments) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, error) {
	return collect(f.enrollments, func(e *models.Enrollment) bool {
		return (filter.StudentID == nil || e.StudentID == *filter.StudentID) &&
			(filter.CourseID == nil || e.CourseID == *filter.CourseID) &&
			(filter.Status == "" || e.Status == filter.Status)
	}), nil
}

func (f fakeEnrollments) FindByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	return find(f.enrollments, id)
}

func (f fakeEnrollments) FindByIDs(ctx context.Context, ids []int64) ([]models.Enrollment, error) {
	return collect(f.enrollments, func(e *models.Enrollment) bool { return inIDs(ids, e.ID) }), nil
}

func (f fakeEnrollments) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := f.enrollments[id]
	return ok, nil
}

func (f fakeEnrollments) ExistsForPair(ctx context.Context, studentID, courseID int64) (bool, error) {
	return len(collect(f.enrollments, func(e *models.Enrollment) bool { return e.StudentID == studentID && e.CourseID == courseID })) > 0, nil
}

func (f fakeEnrollments) Create(ctx context.Context, e *models.Enrollment) error {
	e.ID = f.id()
	cp := *e
	f.enrollments[e.ID] = &cp
	return nil
}

func (f fakeEnrollments) Update(ctx context.Context, e *models.Enrollment) error {
	cp := *e
	f.enrollments[e.ID] = &cp
	return nil
}

func (f fakeEnrollments) Delete(ctx context.Context, id int64) error {
	delete(f.enrollments, id)
	return nil
}

type fakeGrades struct{ *fakeCampus }

func (f fakeGrades) List(ctx context.Context, filter models.GradeFilter) ([]models.Grade, error) {
	return collect(f.grades, func(g *models.Grade) bool {
		return (filter.EnrollmentID == nil || g.EnrollmentID == *filter.EnrollmentID) &&
			(filter.AssignmentType == "" || g.AssignmentType == filter.AssignmentType)
	}), nil
}

func (f fakeGrades) FindByID(ctx context.Context, id int64) (*models.Grade, error) {
	return find(f.grades, id)
}

func (f fakeGrades) Create(ctx context.Context, g *models.Grade) error {
	g.ID = f.id()
	cp := *g
	f.grades[g.ID] = &cp
	return nil
}

func (f fakeGrades) Update(ctx context.Context, g *models.Grade) error {
	cp := *g
	f.grades[g.ID] = &cp
	return nil
}

func (f fakeGrades) Delete(ctx context.Context, id int64) error {
	delete(f.grades, id)
	return nil
}

func ptr[T any](v T) *T { return &v }

// requireFields asserts err is a 422 carrying exactly the given fields.
func requireFields(t *testing.T, err error, fields ...string) *appErrors.Error {
	t.Helper()
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	require.Equal(t, http.StatusUnprocessableEntity, appErr.Status, err.Error())
	got := make([]string, 0, len(appErr.Fields))
	for k := range appErr.Fields {
		got = append(got, k)
	}
	require.ElementsMatch(t, fields, got)
	return appErr
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, status, appErrors.FromError(err).Status)
}
