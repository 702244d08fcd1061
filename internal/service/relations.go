package service

import (
	"context"

	"github.com/noah-isme/campus-events-api/internal/models"
)

type userLookup interface {
	FindByIDs(ctx context.Context, ids []int64) ([]models.User, error)
}

type departmentLookup interface {
	FindByIDs(ctx context.Context, ids []int64) ([]models.Department, error)
}

type teacherLookup interface {
	FindByIDs(ctx context.Context, ids []int64) ([]models.Teacher, error)
	ListByDepartmentIDs(ctx context.Context, departmentIDs []int64) ([]models.Teacher, error)
}

type studentLookup interface {
	FindByIDs(ctx context.Context, ids []int64) ([]models.Student, error)
	ListEnrolledByCourseIDs(ctx context.Context, courseIDs []int64) ([]models.EnrolledStudent, error)
}

type courseLookup interface {
	FindByIDs(ctx context.Context, ids []int64) ([]models.Course, error)
	ListByDepartmentIDs(ctx context.Context, departmentIDs []int64) ([]models.Course, error)
}

// Relations batch-loads the associations attached to academic responses.
// Every loader issues one query per relation regardless of row count.
type Relations struct {
	users       userLookup
	departments departmentLookup
	teachers    teacherLookup
	students    studentLookup
	courses     courseLookup
}

// NewRelations constructs a relation loader.
func NewRelations(users userLookup, departments departmentLookup, teachers teacherLookup, students studentLookup, courses courseLookup) *Relations {
	return &Relations{users: users, departments: departments, teachers: teachers, students: students, courses: courses}
}

// courseWith selects the relations of a course view.
type courseWith struct {
	department bool
	teacher    bool
	students   bool
}

// enrollmentWith selects the relations of an enrollment view.
type enrollmentWith struct {
	student     bool
	studentUser bool
	course      bool
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (r *Relations) usersByID(ctx context.Context, ids []int64) (map[int64]*models.User, error) {
	users, err := r.users.FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, internalError(err, "failed to load users")
	}
	out := make(map[int64]*models.User, len(users))
	for i := range users {
		out[users[i].ID] = &users[i]
	}
	return out, nil
}

func (r *Relations) departmentsByID(ctx context.Context, ids []int64) (map[int64]*models.Department, error) {
	departments, err := r.departments.FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, internalError(err, "failed to load departments")
	}
	out := make(map[int64]*models.Department, len(departments))
	for i := range departments {
		out[departments[i].ID] = &departments[i]
	}
	return out, nil
}

func (r *Relations) teachersByID(ctx context.Context, ids []int64) (map[int64]*models.Teacher, error) {
	teachers, err := r.teachers.FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, internalError(err, "failed to load teachers")
	}
	out := make(map[int64]*models.Teacher, len(teachers))
	for i := range teachers {
		out[teachers[i].ID] = &teachers[i]
	}
	return out, nil
}

func (r *Relations) coursesByID(ctx context.Context, ids []int64) (map[int64]*models.Course, error) {
	courses, err := r.courses.FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, internalError(err, "failed to load courses")
	}
	out := make(map[int64]*models.Course, len(courses))
	for i := range courses {
		out[courses[i].ID] = &courses[i]
	}
	return out, nil
}

// departmentDetails attaches teachers and courses to each department.
func (r *Relations) departmentDetails(ctx context.Context, departments []models.Department) ([]models.DepartmentDetail, error) {
	ids := make([]int64, len(departments))
	for i, d := range departments {
		ids[i] = d.ID
	}
	teachers, err := r.teachers.ListByDepartmentIDs(ctx, ids)
	if err != nil {
		return nil, internalError(err, "failed to load department teachers")
	}
	courses, err := r.courses.ListByDepartmentIDs(ctx, ids)
	if err != nil {
		return nil, internalError(err, "failed to load department courses")
	}

	byDeptTeachers := make(map[int64][]models.Teacher)
	for _, t := range teachers {
		byDeptTeachers[t.DepartmentID] = append(byDeptTeachers[t.DepartmentID], t)
	}
	byDeptCourses := make(map[int64][]models.Course)
	for _, c := range courses {
		byDeptCourses[c.DepartmentID] = append(byDeptCourses[c.DepartmentID], c)
	}

	out := make([]models.DepartmentDetail, len(departments))
	for i, d := range departments {
		out[i] = models.DepartmentDetail{Department: d, Teachers: byDeptTeachers[d.ID], Courses: byDeptCourses[d.ID]}
		if out[i].Teachers == nil {
			out[i].Teachers = []models.Teacher{}
		}
		if out[i].Courses == nil {
			out[i].Courses = []models.Course{}
		}
	}
	return out, nil
}

// teacherViews attaches each teacher's user and, optionally, department.
func (r *Relations) teacherViews(ctx context.Context, teachers []models.Teacher, withDepartment bool) ([]models.TeacherView, error) {
	userIDs := make([]int64, len(teachers))
	deptIDs := make([]int64, len(teachers))
	for i, t := range teachers {
		userIDs[i] = t.UserID
		deptIDs[i] = t.DepartmentID
	}
	users, err := r.usersByID(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	var departments map[int64]*models.Department
	if withDepartment {
		if departments, err = r.departmentsByID(ctx, deptIDs); err != nil {
			return nil, err
		}
	}

	out := make([]models.TeacherView, len(teachers))
	for i, t := range teachers {
		out[i] = models.TeacherView{Teacher: t, User: users[t.UserID]}
		if withDepartment {
			out[i].Department = departments[t.DepartmentID]
		}
	}
	return out, nil
}

// studentViews attaches each student's user.
func (r *Relations) studentViews(ctx context.Context, students []models.Student) ([]models.StudentView, error) {
	userIDs := make([]int64, len(students))
	for i, s := range students {
		userIDs[i] = s.UserID
	}
	users, err := r.usersByID(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	out := make([]models.StudentView, len(students))
	for i, s := range students {
		out[i] = models.StudentView{Student: s, User: users[s.UserID]}
	}
	return out, nil
}

func (r *Relations) courseViews(ctx context.Context, courses []models.Course, with courseWith) ([]models.CourseView, error) {
	ids := make([]int64, len(courses))
	deptIDs := make([]int64, len(courses))
	teacherIDs := make([]int64, 0, len(courses))
	for i, c := range courses {
		ids[i] = c.ID
		deptIDs[i] = c.DepartmentID
		if c.TeacherID != nil {
			teacherIDs = append(teacherIDs, *c.TeacherID)
		}
	}

	var (
		departments map[int64]*models.Department
		teachers    map[int64]*models.Teacher
		rosters     = make(map[int64][]models.EnrolledStudent)
		err         error
	)
	if with.department {
		if departments, err = r.departmentsByID(ctx, deptIDs); err != nil {
			return nil, err
		}
	}
	if with.teacher {
		if teachers, err = r.teachersByID(ctx, teacherIDs); err != nil {
			return nil, err
		}
	}
	if with.students {
		enrolled, err := r.students.ListEnrolledByCourseIDs(ctx, ids)
		if err != nil {
			return nil, internalError(err, "failed to load course students")
		}
		for _, s := range enrolled {
			rosters[s.Pivot.CourseID] = append(rosters[s.Pivot.CourseID], s)
		}
	}

	out := make([]models.CourseView, len(courses))
	for i, c := range courses {
		out[i] = models.CourseView{Course: c}
		if with.department {
			out[i].Department = departments[c.DepartmentID]
		}
		if with.teacher && c.TeacherID != nil {
			out[i].Teacher = teachers[*c.TeacherID]
		}
		if with.students {
			out[i].Students = rosters[c.ID]
			if out[i].Students == nil {
				out[i].Students = []models.EnrolledStudent{}
			}
		}
	}
	return out, nil
}

func (r *Relations) enrollmentViews(ctx context.Context, enrollments []models.Enrollment, with enrollmentWith) ([]models.EnrollmentView, error) {
	studentIDs := make([]int64, len(enrollments))
	courseIDs := make([]int64, len(enrollments))
	for i, e := range enrollments {
		studentIDs[i] = e.StudentID
		courseIDs[i] = e.CourseID
	}

	students := make(map[int64]*models.StudentView)
	if with.student {
		list, err := r.students.FindByIDs(ctx, uniqueIDs(studentIDs))
		if err != nil {
			return nil, internalError(err, "failed to load students")
		}
		views := make([]models.StudentView, len(list))
		if with.studentUser {
			if views, err = r.studentViews(ctx, list); err != nil {
				return nil, err
			}
		} else {
			for i, s := range list {
				views[i] = models.StudentView{Student: s}
			}
		}
		for i := range views {
			students[views[i].ID] = &views[i]
		}
	}

	var courses map[int64]*models.Course
	if with.course {
		var err error
		if courses, err = r.coursesByID(ctx, courseIDs); err != nil {
			return nil, err
		}
	}

	out := make([]models.EnrollmentView, len(enrollments))
	for i, e := range enrollments {
		out[i] = models.EnrollmentView{Enrollment: e}
		if with.student {
			out[i].Student = students[e.StudentID]
		}
		if with.course {
			out[i].Course = courses[e.CourseID]
		}
	}
	return out, nil
}
