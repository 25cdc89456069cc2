package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lmhoang/survey-api/controllers"
	"github.com/lmhoang/survey-api/middleware"
)

type Handlers struct {
	Surveys   *controllers.SurveyHandler
	Responses *controllers.ResponseHandler
	Auth      *controllers.AuthHandler
	Health    *controllers.HealthHandler
}

func Setup(r *gin.Engine, h Handlers) {
	r.GET("/health", h.Health.Check)

	api := r.Group("/api")
	{
		api.POST("/auth/login", h.Auth.Login)

		surveys := api.Group("/surveys")
		{
			// public: respondents submit and read results
			surveys.GET("/active", h.Surveys.ListActive)
			surveys.GET("/:id", h.Surveys.Get)
			surveys.GET("/:id/results", h.Responses.Results)
			surveys.GET("/:id/responses/count", h.Responses.Count)
			surveys.POST("/:id/responses", middleware.RateLimitSubmissions(), h.Responses.Submit)

			// operator: lifecycle management
			operator := surveys.Group("", middleware.AuthJWT())
			{
				operator.GET("", h.Surveys.List)
				operator.POST("", h.Surveys.Create)
				operator.PUT("/:id", h.Surveys.Update)
				operator.POST("/:id/activate", h.Surveys.Activate)
				operator.POST("/:id/close", h.Surveys.CloseSurvey)
				operator.DELETE("/:id", h.Surveys.Delete)
				operator.POST("/:id/questions", h.Surveys.AddQuestion)
				operator.DELETE("/:id/questions/:questionId", h.Surveys.RemoveQuestion)
			}
		}
	}
}
