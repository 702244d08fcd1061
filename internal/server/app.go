package server

import (
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-events-api/internal/dto"
	"github.com/noah-isme/campus-events-api/internal/handler"
	"github.com/noah-isme/campus-events-api/internal/models"
	"github.com/noah-isme/campus-events-api/internal/repository"
	"github.com/noah-isme/campus-events-api/internal/service"
	"github.com/noah-isme/campus-events-api/pkg/config"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	Departments *handler.DepartmentHandler
	Teachers    *handler.TeacherHandler
	Students    *handler.StudentHandler
	Courses     *handler.CourseHandler
	Enrollments *handler.EnrollmentHandler
	Grades      *handler.GradeHandler
	Events      *handler.EventHandler
	Topics      *handler.TopicHandler
	Contents    []ContentRoute
	Metrics     *handler.MetricsHandler
}

// App holds the wired services and handlers.
type App struct {
	Handlers Handlers
	Tokens   *service.AuthService
	Metrics  *service.MetricsService
}

// NewApp builds repositories, services and handlers on top of db. redisClient
// may be nil, in which case event reads are never cached.
func NewApp(cfg *config.Config, db *sqlx.DB, redisClient redis.UniversalClient, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	validate := service.NewValidator()
	metrics := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, logger)
	}
	cache := service.NewCacheService(cacheRepo, metrics, cfg.EventCache.TTL, logger, cfg.EventCache.Enabled && redisClient != nil)

	users := repository.NewUserRepository(db)
	departments := repository.NewDepartmentRepository(db)
	teachers := repository.NewTeacherRepository(db)
	students := repository.NewStudentRepository(db)
	courses := repository.NewCourseRepository(db)
	enrollments := repository.NewEnrollmentRepository(db)
	grades := repository.NewGradeRepository(db)
	relations := service.NewRelations(users, departments, teachers, students, courses)

	auth := service.NewAuthService(users, validate, logger, service.AuthConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
		Issuer: cfg.JWT.Issuer,
	})
	exports := service.NewExportService(courses, students, users, metrics, logger)

	events := repository.NewEventRepository(db)
	topics := repository.NewTopicRepository(db)
	summaries := repository.NewSummaryRepository(db)
	themes := repository.NewThemeRepository(db)
	programmes := repository.NewProgrammeRepository(db)
	resources := repository.NewResourceRepository(db)
	speakers := repository.NewSpeakerRepository(db)
	sponsors := repository.NewSponsorRepository(db)
	faqs := repository.NewFAQRepository(db)
	media := repository.NewMediaRepository(db)
	galleries := repository.NewGalleryRepository(db)
	attendances := repository.NewAttendanceRepository(db)

	contents := service.EventContents{
		Summaries:   summaries,
		Themes:      themes,
		Programmes:  programmes,
		Resources:   resources,
		Speakers:    speakers,
		Sponsors:    sponsors,
		FAQs:        faqs,
		Media:       media,
		Galleries:   galleries,
		Attendances: attendances,
	}
	deps := service.ContentDeps{Events: events, Cache: cache, Validator: validate, Logger: logger}

	h := Handlers{
		Auth:        handler.NewAuthHandler(auth),
		Departments: handler.NewDepartmentHandler(service.NewDepartmentService(departments, relations, validate, logger)),
		Teachers:    handler.NewTeacherHandler(service.NewTeacherService(teachers, users, departments, courses, relations, validate, logger)),
		Students:    handler.NewStudentHandler(service.NewStudentService(students, users, enrollments, courses, relations, validate, logger)),
		Courses:     handler.NewCourseHandler(service.NewCourseService(courses, departments, teachers, enrollments, relations, validate, logger), exports),
		Enrollments: handler.NewEnrollmentHandler(service.NewEnrollmentService(enrollments, students, courses, grades, relations, validate, logger)),
		Grades:      handler.NewGradeHandler(service.NewGradeService(grades, enrollments, relations, validate, logger)),
		Events:      handler.NewEventHandler(service.NewEventService(events, contents, cache, validate, logger)),
		Topics:      handler.NewTopicHandler(service.NewTopicService(topics, events, speakers, cache, validate, logger)),
		Metrics:     handler.NewMetricsHandler(metrics, db, logger),
		Contents: []ContentRoute{
			{Path: "summaries", Handler: handler.NewContentHandler[models.Summary, dto.CreateSummaryRequest, dto.UpdateSummaryRequest](service.NewSummaryService(summaries, deps))},
			{Path: "themes", Handler: handler.NewContentHandler[models.Theme, dto.CreateThemeRequest, dto.UpdateThemeRequest](service.NewThemeService(themes, deps))},
			{Path: "programmes", Handler: handler.NewContentHandler[models.Programme, dto.CreateProgrammeRequest, dto.UpdateProgrammeRequest](service.NewProgrammeService(programmes, deps))},
			{Path: "resources", Handler: handler.NewContentHandler[models.Resource, dto.CreateResourceRequest, dto.UpdateResourceRequest](service.NewResourceService(resources, deps))},
			{Path: "speakers", Handler: handler.NewContentHandler[models.Speaker, dto.CreateSpeakerRequest, dto.UpdateSpeakerRequest](service.NewSpeakerService(speakers, topics, deps))},
			{Path: "sponsors", Handler: handler.NewContentHandler[models.Sponsor, dto.CreateSponsorRequest, dto.UpdateSponsorRequest](service.NewSponsorService(sponsors, deps))},
			{Path: "faqs", Handler: handler.NewContentHandler[models.FAQ, dto.CreateFAQRequest, dto.UpdateFAQRequest](service.NewFAQService(faqs, deps))},
			{Path: "media", Handler: handler.NewContentHandler[models.Media, dto.CreateMediaRequest, dto.UpdateMediaRequest](service.NewMediaService(media, deps))},
			{Path: "galleries", Handler: handler.NewContentHandler[models.Gallery, dto.CreateGalleryRequest, dto.UpdateGalleryRequest](service.NewGalleryService(galleries, deps))},
			{Path: "attendances", Handler: handler.NewContentHandler[models.Attendance, dto.CreateAttendanceRequest, dto.UpdateAttendanceRequest](service.NewAttendanceService(attendances, deps))},
		},
	}

	return &App{Handlers: h, Tokens: auth, Metrics: metrics}
}
