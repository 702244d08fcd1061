package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodiesEqualIgnoresKeysAndDecimalStrings(t *testing.T) {
	legacy := []byte(`{"id":1,"final_grade":"85.50","created_at":"2026-01-01T00:00:00.000000Z","course":{"code":"CS101","updated_at":"x"}}`)
	ported := []byte(`{"course":{"code":"CS101","updated_at":"y"},"final_grade":85.5,"id":1,"created_at":"2026-01-01T00:00:00Z"}`)

	assert.True(t, bodiesEqual(legacy, ported, []string{"created_at", "updated_at"}))
	assert.False(t, bodiesEqual(legacy, ported, nil))
}

func TestBodiesEqualDetectsDifferences(t *testing.T) {
	assert.False(t, bodiesEqual([]byte(`{"success":true,"data":[]}`), []byte(`{"success":true,"data":null}`), nil))
	assert.False(t, bodiesEqual([]byte(`not json`), []byte(`{}`), nil))
	assert.True(t, bodiesEqual([]byte(""), []byte("  "), nil))
}

func TestCompareTargetAgainstTwoServers(t *testing.T) {
	legacy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"year":2026,"updated_at":"a"}}`))
	}))
	defer legacy.Close()
	ported := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"year":2026,"updated_at":"b"}}`))
	}))
	defer ported.Close()

	res := compareTarget(http.DefaultClient, ported.URL, legacy.URL, target{Method: "GET", Path: "events/current"}, []string{"updated_at"})

	require.NoError(t, res.Error)
	assert.True(t, res.StatusMatch)
	assert.True(t, res.BodyMatch)
}

func TestLoadTargets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ignore":["created_at"],"targets":[{"method":"GET","path":"/events","critical":true}]}`), 0o600))

	file, err := loadTargets(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"created_at"}, file.Ignore)
	require.Len(t, file.Targets, 1)
	assert.True(t, file.Targets[0].Critical)

	require.NoError(t, os.WriteFile(path, []byte(`{"targets":[]}`), 0o600))
	_, err = loadTargets(path)
	assert.Error(t, err)
}
