package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-events-api/internal/dto"
	"github.com/noah-isme/campus-events-api/internal/models"
)

func newDepartmentFixture() (*DepartmentService, *fakeCampus) {
	campus := newFakeCampus()
	return NewDepartmentService(fakeDepartments{campus}, campus.relations(), nil, nil), campus
}

func TestDepartmentServiceCreate(t *testing.T) {
	svc, campus := newDepartmentFixture()

	dept, err := svc.Create(context.Background(), CreateDepartmentRequest{
		Name:  " Computer Science ",
		Code:  "CS",
		Email: ptr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Computer Science", dept.Name)
	assert.True(t, dept.IsActive)
	assert.Nil(t, dept.Email)
	assert.Len(t, campus.departments, 1)
}

func TestDepartmentServiceCreateDuplicateWritesNothing(t *testing.T) {
	svc, campus := newDepartmentFixture()
	campus.addDepartment("Mathematics", "MATH")

	_, err := svc.Create(context.Background(), CreateDepartmentRequest{Name: "Mathematics", Code: "MATH"})
	appErr := requireFields(t, err, "name", "code")
	assert.Equal(t, []string{"The code has already been taken."}, appErr.Fields["code"])
	assert.Len(t, campus.departments, 1)
}

func TestDepartmentServiceCreateValidation(t *testing.T) {
	svc, _ := newDepartmentFixture()

	_, err := svc.Create(context.Background(), CreateDepartmentRequest{Code: "TOOLONGCODE1", Email: ptr("nope")})
	appErr := requireFields(t, err, "name", "code", "email")
	assert.Equal(t, []string{"The name field is required."}, appErr.Fields["name"])
	assert.Equal(t, []string{"The code field must not be greater than 10 characters."}, appErr.Fields["code"])
}

func TestDepartmentServiceUpdateExcludesSelf(t *testing.T) {
	svc, campus := newDepartmentFixture()
	dept := campus.addDepartment("Physics", "PHY")
	campus.addDepartment("Chemistry", "CHEM")

	updated, err := svc.Update(context.Background(), dept.ID, UpdateDepartmentRequest{
		Code: ptr("PHY"),
		Head: dto.Some("Dr. Curie"),
	})
	require.NoError(t, err)
	assert.Equal(t, "PHY", updated.Code)
	require.NotNil(t, updated.Head)
	assert.Equal(t, "Dr. Curie", *updated.Head)

	_, err = svc.Update(context.Background(), dept.ID, UpdateDepartmentRequest{Code: ptr("CHEM")})
	requireFields(t, err, "code")

	cleared, err := svc.Update(context.Background(), dept.ID, UpdateDepartmentRequest{Head: dto.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, cleared.Head)
	assert.Equal(t, "Physics", cleared.Name)
}

func TestDepartmentServiceUpdateMissingIsNotFoundBeforeValidation(t *testing.T) {
	svc, _ := newDepartmentFixture()

	_, err := svc.Update(context.Background(), 404, UpdateDepartmentRequest{Name: ptr("")})
	requireStatus(t, err, http.StatusNotFound)
}

func TestDepartmentServiceGetLoadsTeachersAndCourses(t *testing.T) {
	svc, campus := newDepartmentFixture()
	dept := campus.addDepartment("History", "HIST")
	empty := campus.addDepartment("Art", "ART")
	teacher := campus.addTeacher(dept.ID, "Herodotus", "hero@campus.test", "EMP-1")
	campus.addCourse(dept.ID, &teacher.ID, "HIST101", "Fall", "2025-2026")

	detail, err := svc.Get(context.Background(), dept.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Teachers, 1)
	assert.Len(t, detail.Courses, 1)

	bare, err := svc.Get(context.Background(), empty.ID)
	require.NoError(t, err)
	assert.NotNil(t, bare.Teachers)
	assert.Empty(t, bare.Teachers)

	views, err := svc.Courses(context.Background(), dept.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].Teacher)
	assert.Equal(t, teacher.ID, views[0].Teacher.ID)

	teachers, err := svc.Teachers(context.Background(), dept.ID)
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	require.NotNil(t, teachers[0].User)
	assert.Equal(t, "Herodotus", teachers[0].User.Name)
	assert.Nil(t, teachers[0].Department)
}

func TestDepartmentServiceListFilter(t *testing.T) {
	svc, campus := newDepartmentFixture()
	campus.addDepartment("Active", "ACT")
	inactive := campus.addDepartment("Dormant", "DOR")
	inactive.IsActive = false

	all, err := svc.List(context.Background(), models.DepartmentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.List(context.Background(), models.DepartmentFilter{IsActive: ptr(true)})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "ACT", active[0].Code)
}

type racingDepartments struct{ fakeDepartments }

func (r racingDepartments) Create(ctx context.Context, d *models.Department) error {
	return &pq.Error{Code: "23505", Constraint: "departments_code_key"}
}

func TestDepartmentServiceConstraintRaceMapsToFieldError(t *testing.T) {
	campus := newFakeCampus()
	svc := NewDepartmentService(racingDepartments{fakeDepartments{campus}}, campus.relations(), nil, nil)

	_, err := svc.Create(context.Background(), CreateDepartmentRequest{Name: "Biology", Code: "BIO"})
	appErr := requireFields(t, err, "code")
	assert.Equal(t, []string{"The code has already been taken."}, appErr.Fields["code"])
}

func TestDepartmentServiceDelete(t *testing.T) {
	svc, campus := newDepartmentFixture()
	dept := campus.addDepartment("Music", "MUS")

	require.NoError(t, svc.Delete(context.Background(), dept.ID))
	assert.Empty(t, campus.departments)
	requireStatus(t, svc.Delete(context.Background(), dept.ID), http.StatusNotFound)
}
