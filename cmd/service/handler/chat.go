package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/vitaehub/vitaehub/app/logic/v1"
	"github.com/vitaehub/vitaehub/app/response"
	"github.com/vitaehub/vitaehub/pkg/utils"
)

type SendChatMessageRequest struct {
	Message string `json:"message" form:"message" binding:"required,max=4000"`
}

// ChatStream relays one agent turn to the browser as server-sent events.
// Auth for this route also accepts ?token= since EventSource cannot set
// request headers.
func (s *HttpSrv) ChatStream(c *gin.Context) {
	var req SendChatMessageRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	logic := v1.NewChatLogic(c, s.Core)
	err := logic.SendMessageStream(req.Message, func(chunk v1.StreamChunk) {
		c.SSEvent("message", chunk)
		c.Writer.Flush()
	})
	if err != nil {
		// the failure chunk already went out on the stream; nothing more
		// can be sent once headers are flushed
		c.Abort()
		return
	}
	c.Abort()
}

type SendChatMessageResponse struct {
	Reply string `json:"reply"`
}

// SendChatMessage is the non-streaming fallback around the agent's /run API.
func (s *HttpSrv) SendChatMessage(c *gin.Context) {
	var req SendChatMessageRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	reply, err := v1.NewChatLogic(c, s.Core).SendMessage(req.Message)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, SendChatMessageResponse{Reply: reply})
}

func (s *HttpSrv) GetChatHistory(c *gin.Context) {
	response.APISuccess(c, v1.NewChatLogic(c, s.Core).History())
}

func (s *HttpSrv) OpenChatWidget(c *gin.Context) {
	v1.NewChatLogic(c, s.Core).Open()
	response.APISuccess(c, nil)
}

func (s *HttpSrv) CloseChatWidget(c *gin.Context) {
	v1.NewChatLogic(c, s.Core).Close()
	response.APISuccess(c, nil)
}

func (s *HttpSrv) ToggleChatWidget(c *gin.Context) {
	v1.NewChatLogic(c, s.Core).Toggle()
	response.APISuccess(c, nil)
}

func (s *HttpSrv) ClearChatSession(c *gin.Context) {
	if err := v1.NewChatLogic(c, s.Core).ClearSession(); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}
