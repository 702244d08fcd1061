package service

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-events-api/internal/dto"
	"github.com/noah-isme/campus-events-api/internal/models"
	"github.com/noah-isme/campus-events-api/pkg/database"
	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
)

func internalError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

// lookupError maps a missing row to a 404 labelled after the resource.
func lookupError(err error, label string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, label+" not found")
	}
	return internalError(err, "failed to load "+strings.ToLower(label))
}

// writeError maps constraint violations on known constraints back to field
// errors. Anything else is logged, tagged with the violation kind when there
// is one, and surfaces as a 500.
func writeError(logger *zap.Logger, err error, message string) error {
	if fieldErr := database.ConstraintError(err); fieldErr != nil {
		return fieldErr
	}
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.ErrNotFound
	}
	switch {
	case database.IsUniqueViolation(err):
		logger.Error(message, zap.String("violation", "unique"), zap.Error(err))
	case database.IsForeignKeyViolation(err):
		logger.Error(message, zap.String("violation", "foreign_key"), zap.Error(err))
	default:
		logger.Error(message, zap.Error(err))
	}
	return internalError(err, message)
}

// nullableString trims s and turns blank input into NULL.
func nullableString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// parseDay reads a validated date input and drops any time component.
func parseDay(raw string) models.Date {
	t, err := ParseTimestamp(raw)
	if err != nil {
		return models.Date{}
	}
	return models.NewDate(t)
}

func utcNow() time.Time {
	return time.Now().UTC()
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func stringOr(v *string, fallback string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return fallback
	}
	return strings.TrimSpace(*v)
}

// applyString writes a present Optional into dst, storing blank input as NULL.
func applyString(o dto.Optional[string], dst **string) {
	if !o.Set {
		return
	}
	*dst = nullableString(o.Value)
}

// isUUID reports whether id can address an event-subsystem row.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
