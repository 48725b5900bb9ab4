package server

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "github.com/xpanvictor/voicetaker/docs"
	"github.com/xpanvictor/voicetaker/internal/config"
	"github.com/xpanvictor/voicetaker/internal/domains/feedback"
	"github.com/xpanvictor/voicetaker/internal/domains/note"
	"github.com/xpanvictor/voicetaker/internal/domains/user"
	"github.com/xpanvictor/voicetaker/internal/handlers"
	"github.com/xpanvictor/voicetaker/pkg/Logger"
)

type Dependencies struct {
	NoteService     note.NoteService
	UserService     user.UserService
	FeedbackService feedback.FeedbackService
	HealthChecks    map[string]handlers.HealthCheck
	// MediaFS backs /media when the local storage driver is served
	MediaFS afero.Fs
	Logger  *Logger.Logger
	Configs *config.Settings
}

func NewServerDependencies(
	noteService note.NoteService,
	userService user.UserService,
	feedbackService feedback.FeedbackService,
	healthChecks map[string]handlers.HealthCheck,
	mediaFS afero.Fs,
	logger *Logger.Logger,
	config *config.Settings,
) Dependencies {
	return Dependencies{
		NoteService:     noteService,
		UserService:     userService,
		FeedbackService: feedbackService,
		HealthChecks:    healthChecks,
		MediaFS:         mediaFS,
		Logger:          logger,
		Configs:         config,
	}
}

func InitializeRoutes(cfg *config.Settings, r *gin.Engine, dep Dependencies) {
	r.Use(handlers.ErrorHandlerMiddleware(dep.Logger), handlers.RequestLoggerMiddleware(dep.Logger), handlers.CORSMiddleware())

	r.GET("/", func(ctx *gin.Context) { ctx.JSON(200, gin.H{"message": "Server healthy"}) })
	r.GET("/health", handlers.NewHealthHandler(dep.HealthChecks).Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("")
	handlers.NewNoteHandler(dep.NoteService, dep.Logger).RegisterNoteRoutes(api)
	handlers.NewUserHandler(dep.UserService, dep.Logger).RegisterUserRoutes(api)
	handlers.NewFeedbackHandler(dep.FeedbackService, dep.Logger).RegisterFeedbackRoutes(api)

	if cfg.Storage.Driver == "local" && cfg.Storage.ServeLocal && dep.MediaFS != nil {
		r.StaticFS("/media", afero.NewHttpFs(dep.MediaFS).Dir(cfg.Storage.LocalDir))
		dep.Logger.Infof("serving local media from %s at /media", cfg.Storage.LocalDir)
	}
}
