package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/talentgraph/backend/gemini"
	"github.com/talentgraph/backend/models"
	"github.com/talentgraph/backend/storage"
)

const (
	defaultSessionID = "default_session"
	defaultChatMode  = "hybrid"
	defaultChatTopK  = 5
)

// ChatHandler handles knowledge-graph chat requests
type ChatHandler struct {
	firestoreClient *storage.FirestoreClient
	geminiClient    *gemini.Client
}

// NewChatHandler creates a new chat handler
func NewChatHandler(firestoreClient *storage.FirestoreClient, geminiClient *gemini.Client) *ChatHandler {
	return &ChatHandler{
		firestoreClient: firestoreClient,
		geminiClient:    geminiClient,
	}
}

// Chat answers a question against the knowledge graph, scoped to a session
// @Summary Ask the knowledge graph
// @Description Answer a question about stored candidates and jobs, keeping per-session history
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "Chat request"
// @Success 200 {object} models.ChatResponse "Answer"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 500 {object} models.ErrorResponse "Answering failed"
// @Router /chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	start := time.Now()

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	if req.SessionID == "" {
		req.SessionID = defaultSessionID
	}
	if req.Mode == "" {
		req.Mode = defaultChatMode
	}
	if req.TopK <= 0 {
		req.TopK = defaultChatTopK
	}

	session, err := h.firestoreClient.GetChatSession(c.Request.Context(), req.SessionID)
	if err != nil {
		log.Printf("[ChatHandler] Failed to load session %s: %v", req.SessionID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to load chat session",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	history := make([]gemini.Turn, 0, len(session.Messages))
	for _, m := range session.Messages {
		history = append(history, gemini.Turn{Role: m.Role, Content: m.Content})
	}

	answer, err := h.geminiClient.AnswerQuestion(c.Request.Context(), req.Question, history, req.Mode, req.TopK)
	if err != nil {
		log.Printf("[ChatHandler] Failed to answer question: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to answer question",
			Code:    http.StatusInternalServerError,
			Details: err.Error(),
		})
		return
	}

	now := time.Now()
	if err := h.firestoreClient.AppendChatMessages(c.Request.Context(), req.SessionID,
		storage.ChatMessage{Role: "user", Content: req.Question, CreatedAt: now},
		storage.ChatMessage{Role: "assistant", Content: answer, CreatedAt: now},
	); err != nil {
		// The answer is already computed; losing one transcript append is
		// not worth failing the request.
		log.Printf("[ChatHandler] Failed to persist session %s: %v", req.SessionID, err)
	}

	c.JSON(http.StatusOK, models.ChatResponse{
		SessionID:    req.SessionID,
		Question:     req.Question,
		Answer:       answer,
		Sources:      []string{},
		Mode:         req.Mode,
		Model:        h.geminiClient.ModelName(),
		ResponseTime: time.Since(start).Seconds(),
	})
}

// ClearHistory clears one chat session transcript
// @Summary Clear chat history
// @Description Delete the stored transcript for one session
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body models.ClearChatHistoryRequest true "Clear history request"
// @Success 200 {object} models.ClearChatHistoryResponse "History cleared"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 500 {object} models.ErrorResponse "Deletion failed"
// @Router /chat/clear-history [post]
func (h *ChatHandler) ClearHistory(c *gin.Context) {
	var req models.ClearChatHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	if err := h.firestoreClient.ClearChatSession(c.Request.Context(), req.SessionID); err != nil {
		log.Printf("[ChatHandler] Failed to clear session %s: %v", req.SessionID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to clear chat history",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	log.Printf("[ChatHandler] Chat session cleared: %s", req.SessionID)
	c.JSON(http.StatusOK, models.ClearChatHistoryResponse{
		SessionID: req.SessionID,
		Message:   "Chat history cleared",
		Success:   true,
	})
}
