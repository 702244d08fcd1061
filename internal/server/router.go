package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-events-api/internal/middleware"
	"github.com/noah-isme/campus-events-api/internal/service"
	"github.com/noah-isme/campus-events-api/pkg/config"
	"github.com/noah-isme/campus-events-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/campus-events-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/campus-events-api/pkg/middleware/requestid"
)

type contentRoutes interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// ContentRoute mounts one content kind: nested under /events/:id/<Path> and
// flat under /<Path>/:id.
type ContentRoute struct {
	Path    string
	Handler contentRoutes
}

// NewRouter builds the gin engine with the middleware chain and every route.
func NewRouter(cfg *config.Config, h Handlers, tokens *service.AuthService, metrics *service.MetricsService, logr *zap.Logger) *gin.Engine {
	if logr == nil {
		logr = zap.NewNop()
	}
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if cfg.Metrics.Enabled && metrics != nil {
		r.Use(middleware.Metrics(metrics))
		r.GET("/metrics", h.Metrics.Prometheus)
	}

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/login", h.Auth.Login)
	api.GET("/user", middleware.JWT(tokens), h.Auth.Me)

	departments := api.Group("/departments")
	departments.GET("", h.Departments.List)
	departments.POST("", h.Departments.Create)
	departments.GET("/:id", h.Departments.Get)
	departments.PUT("/:id", h.Departments.Update)
	departments.DELETE("/:id", h.Departments.Delete)
	departments.GET("/:id/teachers", h.Departments.Teachers)
	departments.GET("/:id/courses", h.Departments.Courses)

	teachers := api.Group("/teachers")
	teachers.GET("", h.Teachers.List)
	teachers.POST("", h.Teachers.Create)
	teachers.GET("/:id", h.Teachers.Get)
	teachers.PUT("/:id", h.Teachers.Update)
	teachers.DELETE("/:id", h.Teachers.Delete)
	teachers.GET("/:id/courses", h.Teachers.Courses)

	students := api.Group("/students")
	students.GET("", h.Students.List)
	students.POST("", h.Students.Create)
	students.GET("/:id", h.Students.Get)
	students.PUT("/:id", h.Students.Update)
	students.DELETE("/:id", h.Students.Delete)
	students.GET("/:id/enrollments", h.Students.Enrollments)
	students.GET("/:id/courses", h.Students.Courses)

	courses := api.Group("/courses")
	courses.GET("", h.Courses.List)
	courses.POST("", h.Courses.Create)
	courses.GET("/:id", h.Courses.Get)
	courses.PUT("/:id", h.Courses.Update)
	courses.DELETE("/:id", h.Courses.Delete)
	courses.GET("/:id/students", h.Courses.Students)
	courses.GET("/:id/students/export", h.Courses.ExportRoster)
	courses.GET("/:id/enrollments", h.Courses.Enrollments)

	enrollments := api.Group("/enrollments")
	enrollments.GET("", h.Enrollments.List)
	enrollments.POST("", h.Enrollments.Create)
	enrollments.GET("/:id", h.Enrollments.Get)
	enrollments.PUT("/:id", h.Enrollments.Update)
	enrollments.DELETE("/:id", h.Enrollments.Delete)
	enrollments.GET("/:id/grades", h.Enrollments.Grades)

	grades := api.Group("/grades")
	grades.GET("", h.Grades.List)
	grades.POST("", h.Grades.Create)
	grades.GET("/:id", h.Grades.Get)
	grades.PUT("/:id", h.Grades.Update)
	grades.DELETE("/:id", h.Grades.Delete)

	events := api.Group("/events")
	events.GET("", h.Events.List)
	events.POST("", h.Events.Create)
	events.GET("/current", h.Events.Current)
	events.GET("/year/:year", h.Events.ByYear)
	events.GET("/:id", h.Events.Get)
	events.PUT("/:id", h.Events.Update)
	events.DELETE("/:id", h.Events.Delete)

	topics := api.Group("/topics")
	topics.GET("", h.Topics.List)
	topics.POST("", h.Topics.Create)
	topics.GET("/:id", h.Topics.Get)
	topics.PUT("/:id", h.Topics.Update)
	topics.DELETE("/:id", h.Topics.Delete)

	for _, content := range h.Contents {
		events.GET("/:id/"+content.Path, content.Handler.List)
		events.POST("/:id/"+content.Path, content.Handler.Create)
		api.PUT("/"+content.Path+"/:id", content.Handler.Update)
		api.DELETE("/"+content.Path+"/:id", content.Handler.Delete)
	}

	return r
}
