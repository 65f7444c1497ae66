// ABOUTME: HTTP handlers for the movie chat routes
// ABOUTME: Binds JSON requests, short-circuits when disconnected, maps client error kinds to response text

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jee1994/movie-chat-backend/internal/health"
	"github.com/jee1994/movie-chat-backend/internal/llm"
)

const notConnectedReply = "Azure OpenAI is not connected. Please check your configuration."

type Handler struct {
	llmClient *llm.Client
	checker   *health.Checker
	log       *zap.Logger
}

type chatRequest struct {
	Message string `json:"message"`
}

func NewHandler(llmClient *llm.Client, checker *health.Checker, log *zap.Logger) *Handler {
	return &Handler{
		llmClient: llmClient,
		checker:   checker,
		log:       log,
	}
}

// Home reports process status and the cached connectivity state.
func (h *Handler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":      "Movie Recommendation Backend is running!",
		"status":       "success",
		"azure_openai": connectivityLabel(h.checker.Connected()),
	})
}

// Chat forwards the user's message to Azure OpenAI and returns the reply.
func (h *Handler) Chat(c *gin.Context) {
	if !h.checker.Connected() {
		c.JSON(http.StatusInternalServerError, gin.H{
			"reply":  notConnectedReply,
			"status": "error",
		})
		return
	}

	// An absent message field, or a body that doesn't bind, is an empty
	// message. Presence is the only validation this service does.
	var req chatRequest
	_ = c.ShouldBindJSON(&req)

	h.log.Info("chat request received", zap.Int("message_len", len(req.Message)))

	reply, err := h.llmClient.Complete(c.Request.Context(), req.Message)
	if err != nil {
		h.log.Error("completion call failed",
			zap.String("kind", llm.KindOf(err).String()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"reply":  errorReply(err),
			"status": "error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":  reply,
		"status": "success",
	})
}

// Health re-probes the completion endpoint and reports the result.
func (h *Handler) Health(c *gin.Context) {
	connected := h.checker.Refresh(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"status":       "Backend is running!",
		"azure_openai": connectivityLabel(connected),
		"deployment":   h.llmClient.Deployment(),
	})
}

// TestConnection issues a completion call with the fixed probe prompt.
func (h *Handler) TestConnection(c *gin.Context) {
	reply, err := h.llmClient.Complete(c.Request.Context(), llm.ProbePrompt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"response": reply,
		"message":  "Azure OpenAI is working!",
	})
}

func connectivityLabel(connected bool) string {
	if connected {
		return "Connected"
	}
	return "Not connected"
}

// errorReply turns a completion failure into the user-facing reply text.
// Kinds differ only in wording, never in status code.
func errorReply(err error) string {
	switch llm.KindOf(err) {
	case llm.KindBadResponse:
		return "Azure OpenAI returned an unexpected response: " + err.Error()
	default:
		return "I'm having trouble connecting to the movie database: " + err.Error()
	}
}
