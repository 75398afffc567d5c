package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// RouterDeps is everything the API routes need.
type RouterDeps struct {
	DB           *gorm.DB
	Jobs         *JobHandler
	Interviews   *InterviewHandler
	Resumes      *ResumeHandler
	Gatherer     prometheus.Gatherer
	AllowOrigins []string
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	if len(d.AllowOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = d.AllowOrigins
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck(d.DB))

		api.POST("/jobs/extract", d.Jobs.ParseJob)
		api.POST("/jobs", d.Jobs.CreateJob)
		api.GET("/jobs", d.Jobs.ListJobs)
		api.GET("/jobs/:id", d.Jobs.GetJob)
		api.PUT("/jobs/:id", d.Jobs.ReplaceJob)
		api.PATCH("/jobs/:id", d.Jobs.UpdateJob)
		api.DELETE("/jobs/:id", d.Jobs.DeleteJob)
		api.GET("/jobs/:id/events", d.Jobs.JobEvents)
		api.POST("/jobs/:id/resume", d.Resumes.TailorResume)
	}

	interview := r.Group("/interview")
	{
		interview.POST("/generate-questions", d.Interviews.GenerateQuestions)
		interview.POST("/get-feedback", d.Interviews.GetFeedback)
	}

	return r
}
