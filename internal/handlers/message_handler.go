package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"bookshelf-api/internal/middleware"
	"bookshelf-api/internal/services"
	"bookshelf-api/pkg/lambda"
)

// MessageHandler echoes a caller name with the current time
type MessageHandler struct {
	messageService services.MessageService
	logger         *logrus.Logger
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService services.MessageService, logger *logrus.Logger) *MessageHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &MessageHandler{
		messageService: messageService,
		logger:         logger,
	}
}

func (h *MessageHandler) echo(ctx context.Context, method, url string, req *services.EchoRequest) *Result {
	h.logger.Infof("Function processed for %s %s", method, url)

	msg := h.messageService.Echo(ctx, req)
	h.logger.WithField("name", msg.Name).Info("Resolved message name")

	return &Result{StatusCode: http.StatusOK, Body: msg}
}

// @Summary Echo a name
// @Description Returns the name from the query string or request body with the current time
// @Tags message
// @Accept plain
// @Produce json
// @Param name query string false "Name to echo"
// @Success 200 {object} models.Message
// @Failure 500 {object} ErrorResponse
// @Router /message [get]
// @Router /message [post]
func (h *MessageHandler) Echo(c *gin.Context) {
	body, failed := readBody(c, h.logger, logrus.Fields{
		"request_id": c.GetString(middleware.RequestIDKey),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
	})
	if failed != nil {
		c.JSON(failed.StatusCode, failed.Body)
		return
	}

	result := h.echo(c.Request.Context(), c.Request.Method, c.Request.URL.String(), &services.EchoRequest{
		QueryName:   c.Query("name"),
		Body:        body,
		ContentType: c.ContentType(),
	})
	c.JSON(result.StatusCode, result.Body)
}

// HandleRequest serves a message request arriving through API Gateway
func (h *MessageHandler) HandleRequest(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	if req.Method != http.MethodGet && req.Method != http.MethodPost {
		return lambda.JSONResponse(http.StatusNotFound, ErrorResponse{Message: services.MessageNotFound})
	}

	result := h.echo(ctx, req.Method, req.URL(), &services.EchoRequest{
		QueryName:   req.QueryParams["name"],
		Body:        req.Body,
		ContentType: req.Header("Content-Type"),
	})

	return lambda.JSONResponse(result.StatusCode, result.Body)
}
