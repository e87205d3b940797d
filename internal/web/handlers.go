package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amishk599/resumeiq/internal/intake"
	"github.com/amishk599/resumeiq/internal/model"
	"github.com/amishk599/resumeiq/internal/session"
)

// sessionView is the JSON shape of a session.State.
type sessionView struct {
	Phase          string                `json:"phase"`
	ResumeText     string                `json:"resumeText"`
	JobDescription string                `json:"jobDescription"`
	Result         *model.AnalysisResult `json:"result"`
	Error          string                `json:"error,omitempty"`
}

func toView(s session.State) sessionView {
	return sessionView{
		Phase:          s.Phase.String(),
		ResumeText:     s.ResumeText,
		JobDescription: s.JobDescription,
		Result:         s.Result,
		Error:          s.ErrorMessage(),
	}
}

// inputsRequest updates whichever fields are present.
type inputsRequest struct {
	ResumeText     *string `json:"resumeText"`
	JobDescription *string `json:"jobDescription"`
}

// Handler serves the session API for a single Controller.
type Handler struct {
	ctrl   *session.Controller
	logger *slog.Logger
}

// NewHandler builds a Handler.
func NewHandler(ctrl *session.Controller, logger *slog.Logger) *Handler {
	return &Handler{ctrl: ctrl, logger: logger}
}

// RegisterRoutes mounts the session API on r.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.health)
	s := r.Group("/session")
	s.GET("", h.getSession)
	s.PUT("/inputs", h.putInputs)
	s.POST("/resume-file", h.uploadResume)
	s.POST("/analyze", h.analyze)
	s.POST("/reset", h.reset)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, toView(h.ctrl.State()))
}

func (h *Handler) putInputs(c *gin.Context) {
	var req inputsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, http.StatusBadRequest, codeBadRequest, "Request body must be JSON.")
		return
	}
	st, err := h.ctrl.SetInputs(req.ResumeText, req.JobDescription)
	if err != nil {
		h.stateError(c, err)
		return
	}
	c.JSON(http.StatusOK, toView(st))
}

func (h *Handler) uploadResume(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		respondError(c, h.logger, http.StatusBadRequest, codeBadRequest, "Missing file field.")
		return
	}
	if !intake.Allowed(fh.Filename) {
		respondError(c, h.logger, http.StatusBadRequest, codeUnsupportedFile, "Only .txt and .md files can be loaded.")
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, h.logger, http.StatusBadRequest, codeBadRequest, "Could not read the uploaded file.")
		return
	}
	defer f.Close()

	text, err := intake.ReadText(f)
	if err != nil {
		respondError(c, h.logger, http.StatusBadRequest, codeBadRequest, "Could not read the uploaded file.")
		return
	}
	st, err := h.ctrl.SetInputs(&text, nil)
	if err != nil {
		h.stateError(c, err)
		return
	}
	c.JSON(http.StatusOK, toView(st))
}

func (h *Handler) analyze(c *gin.Context) {
	st, err := h.ctrl.Analyze(c.Request.Context())
	if err != nil {
		h.stateError(c, err)
		return
	}
	c.JSON(http.StatusOK, toView(st))
}

func (h *Handler) reset(c *gin.Context) {
	st, err := h.ctrl.Reset()
	if err != nil {
		h.stateError(c, err)
		return
	}
	c.JSON(http.StatusOK, toView(st))
}

// stateError maps session and analysis errors to HTTP responses. Analysis
// failures never expose their cause.
func (h *Handler) stateError(c *gin.Context, err error) {
	var analysisErr *model.AnalysisError
	switch {
	case errors.Is(err, model.ErrInputIncomplete):
		respondError(c, h.logger, http.StatusBadRequest, codeInputIncomplete, model.UserMessage(err))
	case errors.Is(err, model.ErrAnalysisInProgress):
		respondError(c, h.logger, http.StatusConflict, codeInProgress, model.UserMessage(err))
	case errors.Is(err, session.ErrLocked):
		respondError(c, h.logger, http.StatusConflict, codeInputsLocked, "Reset the session before editing inputs.")
	case errors.As(err, &analysisErr):
		respondError(c, h.logger, http.StatusBadGateway, codeAnalysisFailed, analysisErr.UserMessage())
	default:
		h.logger.Error("unexpected session error", "error", err, "request_id", requestIDFromContext(c))
		respondError(c, h.logger, http.StatusBadGateway, codeAnalysisFailed, model.UserMessage(err))
	}
}
