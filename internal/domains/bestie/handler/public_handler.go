package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bestiespace-backend/internal/domains/bestie/model"
	"bestiespace-backend/internal/domains/bestie/service"
	"bestiespace-backend/internal/shared/response"
	"bestiespace-backend/pkg/logger"
)

// PublicHandler serves the anonymous, secret-code scoped routes. No auth;
// holding a valid code for a published bestie is the only credential.
type PublicHandler struct {
	service service.BestieService
}

func NewPublicHandler(service service.BestieService) *PublicHandler {
	return &PublicHandler{service: service}
}

// GetBySecretCode handles GET /public/besties/:secretCode
func (h *PublicHandler) GetBySecretCode(c *gin.Context) {
	public, err := h.service.GetBySecretCode(c.Request.Context(), c.Param("secretCode"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", public)
}

// AnswerQuestion handles POST /public/besties/:secretCode/answer
func (h *PublicHandler) AnswerQuestion(c *gin.Context) {
	var req model.AnswerQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	b, err := h.service.AnswerQuestion(c.Request.Context(), c.Param("secretCode"), *req.QuestionIndex, req.Answer)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Answer submitted", gin.H{
		"question": b.Questions[*req.QuestionIndex],
	})
}

// SubmitMessage handles POST /public/besties/:secretCode/message
func (h *PublicHandler) SubmitMessage(c *gin.Context) {
	var req model.SubmitMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	b, err := h.service.SubmitMessage(c.Request.Context(), c.Param("secretCode"), *req.MessageIndex, req.Message)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Message submitted", gin.H{
		"messages": b.Messages,
	})
}

func (h *PublicHandler) handleError(c *gin.Context, err error) {
	switch {
	// Missing and unpublished codes are deliberately indistinguishable.
	case errors.Is(err, model.ErrBestieNotFound):
		response.NotFound(c, "Bestie not found")
	case errors.Is(err, model.ErrInvalidIndex):
		response.BadRequest(c, "Index out of range")
	default:
		logger.Error("public handler error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
