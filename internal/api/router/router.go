package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tutor-center/backend/config"
	"tutor-center/backend/internal/api/handler"
	"tutor-center/backend/internal/api/middleware"
	"tutor-center/backend/internal/model"
	"tutor-center/backend/pkg/jwt"
	"tutor-center/backend/pkg/redis"
)

// Setup builds the Gin engine with every route of the API
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	adminOnly := middleware.RoleAuth(model.RoleAdmin)
	loginLimit := middleware.RateLimit(rdb, cfg.Center.LoginRateLimit, cfg.Center.LoginRateWindow)

	v1 := r.Group("/api/v1")
	{
		// public
		auth := v1.Group("/auth")
		{
			auth.POST("/login", loginLimit, h.Auth.Login)
			auth.POST("/refresh", loginLimit, h.Auth.RefreshToken)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// roster
			grades := authorized.Group("/grades")
			{
				grades.GET("", h.Roster.ListGrades)
				grades.POST("", adminOnly, h.Roster.CreateGrade)
				grades.GET("/:id/tracks", h.Roster.ListTracks)
				grades.POST("/:id/tracks", adminOnly, h.Roster.CreateTrack)
			}

			groups := authorized.Group("/group-days")
			{
				groups.GET("", h.Roster.ListGroupDays)
				groups.POST("", adminOnly, h.Roster.CreateGroupDay)
				groups.GET("/:id", h.Roster.GetGroupDay)
				groups.GET("/:id/dates", h.Roster.GroupDates)
				groups.GET("/:id/calendar.ics", h.Export.Calendar)
			}

			students := authorized.Group("/students")
			{
				students.GET("", adminOnly, h.Roster.ListStudents)
				students.GET("/me", h.Roster.MyProfile)
				students.GET("/:id", h.Roster.GetStudent) // admin or the student (service layer)
				students.POST("", adminOnly, h.Roster.CreateStudent)
				students.PUT("/:id", adminOnly, h.Roster.UpdateStudent)
				students.POST("/:id/deactivate", adminOnly, h.Roster.DeactivateStudent)
			}

			// attendance
			attendance := authorized.Group("/attendance")
			{
				attendance.GET("/students/:id", h.Attendance.GetStatus)
				attendance.GET("/students/:id/rate", h.Attendance.Rate)
				attendance.GET("/students/:id/history", h.Attendance.History)
				attendance.PUT("/students/:id", adminOnly, h.Attendance.SetStatus)
				attendance.POST("/students/:id/cycle", adminOnly, h.Attendance.CycleStatus)
				attendance.GET("/groups/:id", adminOnly, h.Attendance.GroupMonth)
				attendance.GET("/groups/:id/export", adminOnly, h.Export.ExportAttendance)
			}

			// payments
			payments := authorized.Group("/payments")
			{
				payments.GET("/students/:id", h.Payment.StudentPayments)
				payments.GET("/students/:id/stats", h.Payment.Stats)
				payments.GET("/students/:id/monthly", h.Payment.MonthlyStatus)
				payments.GET("/students/:id/amount", h.Payment.Amount)
				payments.POST("/monthly", adminOnly, h.Payment.RecordMonthly)
				payments.POST("/book", adminOnly, h.Payment.RecordBook)
				payments.DELETE("/:id", adminOnly, h.Payment.Delete)
				payments.GET("/groups/:id", adminOnly, h.Payment.GroupMonth)
				payments.GET("/groups/:id/export", adminOnly, h.Export.ExportPayments)
			}
			authorized.PUT("/payment-settings", adminOnly, h.Payment.SetSettings)

			// homework
			homework := authorized.Group("/homework")
			{
				homework.POST("", adminOnly, h.Homework.Create)
				homework.GET("", adminOnly, h.Homework.List)
				homework.GET("/students/:id", h.Homework.StudentHomework)
				homework.PUT("/submissions/:id/review", adminOnly, h.Homework.Review)
				homework.GET("/:id", adminOnly, h.Homework.Details)
				homework.DELETE("/:id", adminOnly, h.Homework.Delete)
				homework.POST("/:id/submissions", h.Homework.Submit)
			}
		}
	}

	return r
}
