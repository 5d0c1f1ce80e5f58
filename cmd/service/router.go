package service

import (
	"github.com/gin-gonic/gin"

	"github.com/vitaehub/vitaehub/app/core"
	v1 "github.com/vitaehub/vitaehub/app/logic/v1"
	"github.com/vitaehub/vitaehub/app/response"
	"github.com/vitaehub/vitaehub/cmd/service/handler"
	"github.com/vitaehub/vitaehub/cmd/service/middleware"
	"github.com/vitaehub/vitaehub/pkg/metrics"
)

func serve(core *core.Core) {
	httpSrv := &handler.HttpSrv{
		Core:   core,
		Engine: core.HttpEngine(),
	}
	setupHttpRouter(httpSrv)

	core.HttpEngine().Run(core.Cfg().Addr)
}

type LimiterFunc func(key string, opts ...core.LimitOption) gin.HandlerFunc

func GetIPLimitBuilder(appCore *core.Core) LimiterFunc {
	return func(key string, opts ...core.LimitOption) gin.HandlerFunc {
		return middleware.UseLimit(appCore, key, func(c *gin.Context) string {
			return c.ClientIP()
		}, opts...)
	}
}

func GetUserLimitBuilder(appCore *core.Core) LimiterFunc {
	return func(key string, opts ...core.LimitOption) gin.HandlerFunc {
		return middleware.UseLimit(appCore, key, func(c *gin.Context) string {
			token, _ := v1.InjectTokenClaim(c)
			return token.User
		}, opts...)
	}
}

func setupHttpRouter(s *handler.HttpSrv) {
	ipLimit := GetIPLimitBuilder(s.Core)
	userLimit := GetUserLimitBuilder(s.Core)

	s.Engine.Use(gin.Recovery())
	s.Engine.Use(middleware.Cors)
	s.Engine.Use(middleware.I18n(), response.NewResponse())
	s.Engine.Use(middleware.SetAppid(s.Core), middleware.AcceptLanguage())
	s.Engine.Use(middleware.Monitoring(s.Core))

	s.Engine.GET("/health", func(c *gin.Context) {
		response.APISuccess(c, "ok")
	})
	s.Engine.GET("/metrics", metrics.DefaultExportHandler())

	apiV1 := s.Engine.Group("/api/v1")
	{
		apiV1.POST("/register", ipLimit("register", core.WithLimit(10)), s.Register)
		apiV1.POST("/login", ipLimit("login", core.WithLimit(20)), s.Login)

		authed := apiV1.Group("")
		authed.Use(middleware.Authorization(s.Core))
		{
			authed.POST("/logout", s.Logout)
			authed.GET("/user", s.GetUser)

			cv := authed.Group("/cv")
			{
				cv.GET("", s.GetCV)
				cv.PUT("/personal", s.UpdatePersonalInfo)
				cv.PUT("/summary", s.UpdateSummary)
				cv.POST("/education", s.AddEducation)
				cv.DELETE("/education/:id", s.RemoveEducation)
				cv.POST("/skill", s.AddSkill)
				cv.DELETE("/skill/:id", s.RemoveSkill)
			}

			chat := authed.Group("/chat")
			{
				chat.POST("/stream", userLimit("chat", core.WithLimit(30)), s.ChatStream)
				chat.POST("/message", userLimit("chat", core.WithLimit(30)), s.SendChatMessage)
				chat.GET("/history", s.GetChatHistory)
				chat.POST("/open", s.OpenChatWidget)
				chat.POST("/close", s.CloseChatWidget)
				chat.POST("/toggle", s.ToggleChatWidget)
				chat.DELETE("/session", s.ClearChatSession)
			}

			authed.GET("/jobs", s.ListJobs)
		}
	}
}
