package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-events-api/internal/dto"
	"github.com/noah-isme/campus-events-api/internal/models"
	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
)

type contentStore[T any] interface {
	ListByEventID(ctx context.Context, eventID string) ([]T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id string) error
}

type eventChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type topicMembership interface {
	BelongsToEvent(ctx context.Context, topicID, eventID string) (bool, error)
}

// contentRow is satisfied by pointers to the event content models.
type contentRow[T any] interface {
	*T
	Stamp(id, eventID string, now time.Time)
	Touch(now time.Time)
}

// contentKind maps the payloads of one content kind onto its row type.
type contentKind[T, C, U any] struct {
	label string
	build func(req C) T
	apply func(item *T, req U)
	// check runs cross-field rules once the payload passed validation.
	check       func(ctx context.Context, eventID string, req C, fields fieldErrors) error
	checkUpdate func(ctx context.Context, item *T, req U, fields fieldErrors) error
}

// ContentService implements list/create/update/delete for one kind of event
// content. Every write invalidates the cached event reads.
type ContentService[T any, P contentRow[T], C, U any] struct {
	kind      contentKind[T, C, U]
	repo      contentStore[T]
	events    eventChecker
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

func newContentService[T any, P contentRow[T], C, U any](kind contentKind[T, C, U], repo contentStore[T], events eventChecker, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ContentService[T, P, C, U] {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentService[T, P, C, U]{kind: kind, repo: repo, events: events, cache: cache, validator: validate, logger: logger}
}

// Label names the kind in messages, e.g. "Speaker".
func (s *ContentService[T, P, C, U]) Label() string {
	return s.kind.label
}

// ListByEvent returns the content of one event.
func (s *ContentService[T, P, C, U]) ListByEvent(ctx context.Context, eventID string) ([]T, error) {
	if err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, internalError(err, "failed to list "+strings.ToLower(s.kind.label))
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Create stores a new item under eventID. A missing event is a 404 and is
// reported before payload errors.
func (s *ContentService[T, P, C, U]) Create(ctx context.Context, eventID string, req C) (*T, error) {
	if err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}

	fields, err := validateStruct(s.validator, req)
	if err != nil {
		return nil, err
	}
	if s.kind.check != nil {
		if err := s.kind.check(ctx, eventID, req, fields); err != nil {
			return nil, err
		}
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	item := s.kind.build(req)
	P(&item).Stamp(uuid.NewString(), eventID, utcNow())
	if err := s.repo.Create(ctx, &item); err != nil {
		return nil, writeError(s.logger, err, "failed to create "+strings.ToLower(s.kind.label))
	}
	s.cache.PurgeEvents(ctx)
	return &item, nil
}

// Update applies the allow-listed fields present in req.
func (s *ContentService[T, P, C, U]) Update(ctx context.Context, id string, req U) (*T, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	fields, err := validateStruct(s.validator, req)
	if err != nil {
		return nil, err
	}
	if s.kind.checkUpdate != nil {
		if err := s.kind.checkUpdate(ctx, item, req, fields); err != nil {
			return nil, err
		}
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	s.kind.apply(item, req)
	P(item).Touch(utcNow())
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, writeError(s.logger, err, "failed to update "+strings.ToLower(s.kind.label))
	}
	s.cache.PurgeEvents(ctx)
	return item, nil
}

// Delete removes one item.
func (s *ContentService[T, P, C, U]) Delete(ctx context.Context, id string) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(s.logger, err, "failed to delete "+strings.ToLower(s.kind.label))
	}
	s.cache.PurgeEvents(ctx)
	return nil
}

func (s *ContentService[T, P, C, U]) requireEvent(ctx context.Context, eventID string) error {
	notFound := appErrors.Clone(appErrors.ErrNotFound, "Event not found")
	if !isUUID(eventID) {
		return notFound
	}
	found, err := s.events.Exists(ctx, eventID)
	if err != nil {
		return internalError(err, "failed to load event")
	}
	if !found {
		return notFound
	}
	return nil
}

func (s *ContentService[T, P, C, U]) find(ctx context.Context, id string) (*T, error) {
	if !isUUID(id) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, s.kind.label+" not found")
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, s.kind.label)
	}
	return item, nil
}

type (
	SummaryService    = ContentService[models.Summary, *models.Summary, dto.CreateSummaryRequest, dto.UpdateSummaryRequest]
	ThemeService      = ContentService[models.Theme, *models.Theme, dto.CreateThemeRequest, dto.UpdateThemeRequest]
	ProgrammeService  = ContentService[models.Programme, *models.Programme, dto.CreateProgrammeRequest, dto.UpdateProgrammeRequest]
	ResourceService   = ContentService[models.Resource, *models.Resource, dto.CreateResourceRequest, dto.UpdateResourceRequest]
	SpeakerService    = ContentService[models.Speaker, *models.Speaker, dto.CreateSpeakerRequest, dto.UpdateSpeakerRequest]
	SponsorService    = ContentService[models.Sponsor, *models.Sponsor, dto.CreateSponsorRequest, dto.UpdateSponsorRequest]
	FAQService        = ContentService[models.FAQ, *models.FAQ, dto.CreateFAQRequest, dto.UpdateFAQRequest]
	MediaService      = ContentService[models.Media, *models.Media, dto.CreateMediaRequest, dto.UpdateMediaRequest]
	GalleryService    = ContentService[models.Gallery, *models.Gallery, dto.CreateGalleryRequest, dto.UpdateGalleryRequest]
	AttendanceService = ContentService[models.Attendance, *models.Attendance, dto.CreateAttendanceRequest, dto.UpdateAttendanceRequest]
)

// ContentDeps carries what every content service shares.
type ContentDeps struct {
	Events    eventChecker
	Cache     *CacheService
	Validator *validator.Validate
	Logger    *zap.Logger
}

func NewSummaryService(repo contentStore[models.Summary], deps ContentDeps) *SummaryService {
	return newContentService[models.Summary, *models.Summary](summaryKind, repo, deps.Events, deps.Cache, deps.Validator, deps.Logger)
}

func NewThemeService(repo contentStore[models.Theme], deps ContentDeps) *ThemeService {
	return newContentService[models.Theme, *models.Theme](themeKind, repo, deps.Events, deps.Cache, deps.Validator, deps.Logger)
}

func NewProgrammeService(repo contentStore[models.Programme], deps ContentDeps) *ProgrammeService {
	return newContentService[models.Programme, *models.Programme](programmeKind, repo, deps.Events, deps.Cache, deps.Validator, deps.Logger)
}

func NewResourceService(repo contentStore[models.Resource], deps ContentDeps) *ResourceService {
	return newContentService[models.Resource, *models.Resource](resourceKind, repo, deps.Events, deps.Cache, deps.Validator, deps.Logger)
}

// NewSpeakerService also needs topics to check that a speaker's topic
// belongs to the speaker's event.
func NewSpeakerService(repo contentStore[models.Speaker], topics topicMembership, deps ContentDeps) *SpeakerService {
	return newContentService[models.Speaker, *models.Speaker](speakerKind(topics), repo, deps.Events, deps.Cache, deps.Validator, deps.Logger)
}

func NewSponsorService(repo contentStore[models.Sponsor], deps ContentDeps) *SponsorService {
	return newContentService[models.Sponsor, *models.Sponsor](sponsorKind, repo, deps.Events, deps.Cache, deps.Validator, deps.Logger)
}

func NewFAQService(repo contentStore[models.FAQ], deps ContentDeps) *FAQService {
	return newContentService[models.FAQ, *models.FAQ](faqKind, repo, deps.Events, deps.Cache, deps.Validator, deps.Logger)
}

func NewMediaService(repo contentStore[models.Media], deps ContentDeps) *MediaService {
	return newContentService[models.Media, *models.Media](mediaKind, repo, deps.Events, deps.Cache, deps.Validator, deps.Logger)
}

func NewGalleryService(repo contentStore[models.Gallery], deps ContentDeps) *GalleryService {
	return newContentService[models.Gallery, *models.Gallery](galleryKind, repo, deps.Events, deps.Cache, deps.Validator, deps.Logger)
}

func NewAttendanceService(repo contentStore[models.Attendance], deps ContentDeps) *AttendanceService {
	return newContentService[models.Attendance, *models.Attendance](attendanceKind, repo, deps.Events, deps.Cache, deps.Validator, deps.Logger)
}
