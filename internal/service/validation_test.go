package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-events-api/internal/dto"
)

func TestValidateStructTreatsBlankNullableStringsAsAbsent(t *testing.T) {
	v := NewValidator()

	fields, err := validateStruct(v, CreateDepartmentRequest{Name: "Physics", Code: "PHYS", Email: ptr("  "), Phone: ptr("")})
	require.NoError(t, err)
	assert.Empty(t, fields)

	fields, err = validateStruct(v, &dto.CreateSpeakerRequest{Name: "Grace", TopicID: ptr(""), Email: ptr("")})
	require.NoError(t, err)
	assert.Empty(t, fields)

	fields, err = validateStruct(v, CreateDepartmentRequest{Name: "Physics", Code: "PHYS", Email: ptr("nope")})
	require.NoError(t, err)
	assert.Equal(t, []string{"The email field must be a valid email address."}, fields["email"])
}

func TestBlankToNilLeavesCallerValueAlone(t *testing.T) {
	req := CreateDepartmentRequest{Name: "Physics", Code: "PHYS", Email: ptr("")}

	copied, ok := blankToNil(req).(CreateDepartmentRequest)
	require.True(t, ok)
	assert.Nil(t, copied.Email)
	require.NotNil(t, req.Email)
	assert.Equal(t, "", *req.Email)

	// omitnil fields keep blank input so their own rules still run.
	update := UpdateDepartmentRequest{Name: ptr("")}
	fields, err := validateStruct(NewValidator(), update)
	require.NoError(t, err)
	assert.Equal(t, []string{"The name field is required."}, fields["name"])
}
