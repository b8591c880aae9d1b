package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/engine"
	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/engine/preprocess"
	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/metrics"
)

// Client-facing error strings. The exact texts are part of the API contract.
const (
	msgEmptyMessage = "Message must be a non-empty string"
	msgNoFile       = "No file provided"
	msgInvalidImage = "Invalid image format"
	msgInternal     = "Internal server error"
)

// ChatRequest is the POST /chat payload.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the POST /chat reply.
type ChatResponse struct {
	Response   string  `json:"response"`
	Confidence float64 `json:"confidence"`
}

// ImageResponse is the POST /predict_image reply.
type ImageResponse struct {
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
}

// Handler serves the triage endpoints.
type Handler struct {
	engine  *engine.Engine
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewHandler creates a Handler.
func NewHandler(eng *engine.Engine, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		engine:  eng,
		metrics: m,
		logger:  logger,
	}
}

// Chat triages a free-text symptom description.
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.CountPrediction(metrics.ModalityText, metrics.OutcomeError)
		c.JSON(http.StatusBadRequest, gin.H{"error": msgEmptyMessage})
		return
	}

	start := time.Now()
	pred, err := h.engine.ClassifyText(req.Message)
	h.metrics.ObserveTriage(metrics.ModalityText, time.Since(start).Seconds())
	if err != nil {
		h.fail(c, metrics.ModalityText, err)
		return
	}

	h.countOutcome(metrics.ModalityText, pred.Confident)
	c.JSON(http.StatusOK, ChatResponse{
		Response:   pred.Message,
		Confidence: pred.Confidence,
	})
}

// PredictImage triages an uploaded skin photo. The image arrives as the
// multipart field "file".
func (h *Handler) PredictImage(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		h.metrics.CountPrediction(metrics.ModalityImage, metrics.OutcomeError)
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoFile})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.metrics.CountPrediction(metrics.ModalityImage, metrics.OutcomeError)
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidImage})
		return
	}

	start := time.Now()
	pred, err := h.engine.ClassifyImage(data)
	h.metrics.ObserveTriage(metrics.ModalityImage, time.Since(start).Seconds())
	if err != nil {
		h.fail(c, metrics.ModalityImage, err)
		return
	}

	h.countOutcome(metrics.ModalityImage, pred.Confident)
	c.JSON(http.StatusOK, ImageResponse{
		Prediction: pred.Message,
		Confidence: pred.Confidence,
	})
}

// Health is the liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// fail maps a triage error to its HTTP payload. Validation failures carry
// their contract message; anything else is a 500 with no internals leaked.
func (h *Handler) fail(c *gin.Context, modality string, err error) {
	h.metrics.CountPrediction(modality, metrics.OutcomeError)
	switch {
	case errors.Is(err, preprocess.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgEmptyMessage})
	case errors.Is(err, preprocess.ErrInvalidImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidImage})
	default:
		h.logger.Error("triage failed",
			zap.String("modality", modality),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
	}
}

func (h *Handler) countOutcome(modality string, confident bool) {
	outcome := metrics.OutcomeAccepted
	if !confident {
		outcome = metrics.OutcomeRejected
	}
	h.metrics.CountPrediction(modality, outcome)
}
