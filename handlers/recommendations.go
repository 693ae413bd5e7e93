package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/talentgraph/backend/config"
	"github.com/talentgraph/backend/matching"
	"github.com/talentgraph/backend/models"
	"github.com/talentgraph/backend/recommend"
	"github.com/talentgraph/backend/storage"
)

// RecommendationHandler handles ranking and stats requests
type RecommendationHandler struct {
	service *recommend.Service
	cfg     *config.Config
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(service *recommend.Service, cfg *config.Config) *RecommendationHandler {
	return &RecommendationHandler{service: service, cfg: cfg}
}

// CandidatesForJob ranks stored candidates for a stored job
// @Summary Recommend candidates for a job
// @Description Rank every stored candidate against a job and return the best matches
// @Tags Recommendations
// @Produce json
// @Param jobID path string true "Job id"
// @Param top_k query int false "Maximum results to return"
// @Param min_score query number false "Minimum overall score in [0,1]"
// @Param include_location_score query bool false "Include the location factor" default(true)
// @Success 200 {object} models.CandidateRecommendationResponse "Ranked candidates"
// @Failure 400 {object} models.ErrorResponse "Invalid parameters or record"
// @Failure 404 {object} models.ErrorResponse "Job not found"
// @Router /recommendations/candidates/{jobID} [get]
func (h *RecommendationHandler) CandidatesForJob(c *gin.Context) {
	params, ok := h.rankParams(c)
	if !ok {
		return
	}

	resp, err := h.service.CandidatesForJob(c.Request.Context(), c.Param("jobID"), params)
	if err != nil {
		h.writeRankingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// JobsForCandidate ranks stored jobs for a stored candidate
// @Summary Recommend jobs for a candidate
// @Description Rank every stored job against a candidate and return the best matches
// @Tags Recommendations
// @Produce json
// @Param candidateID path string true "Candidate id"
// @Param top_k query int false "Maximum results to return"
// @Param min_score query number false "Minimum overall score in [0,1]"
// @Param include_location_score query bool false "Include the location factor" default(true)
// @Success 200 {object} models.JobRecommendationResponse "Ranked jobs"
// @Failure 400 {object} models.ErrorResponse "Invalid parameters or record"
// @Failure 404 {object} models.ErrorResponse "Candidate not found"
// @Router /recommendations/jobs/{candidateID} [get]
func (h *RecommendationHandler) JobsForCandidate(c *gin.Context) {
	params, ok := h.rankParams(c)
	if !ok {
		return
	}

	resp, err := h.service.JobsForCandidate(c.Request.Context(), c.Param("candidateID"), params)
	if err != nil {
		h.writeRankingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CandidatesByJDText ranks stored candidates against raw job description text
// @Summary Recommend candidates for raw JD text
// @Description Extract a transient job requirement from raw text and rank stored candidates against it
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body models.JDTextMatchRequest true "JD text match request"
// @Success 200 {object} models.CandidateRecommendationResponse "Ranked candidates"
// @Failure 400 {object} models.ErrorResponse "Invalid request or extraction failure"
// @Router /recommendations/candidates-by-jd-text [post]
func (h *RecommendationHandler) CandidatesByJDText(c *gin.Context) {
	var req models.JDTextMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.CandidatesForJDText(c.Request.Context(), req.JobDescriptionText, h.jdTextParams(req))
	if err != nil {
		if errors.Is(err, matching.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Invalid ranking input",
				Code:    http.StatusBadRequest,
				Details: err.Error(),
			})
			return
		}
		log.Printf("[RecommendationHandler] JD text ranking failed: %v", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Job description matching failed",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Stats returns corpus-wide aggregate statistics
// @Summary Recommendation statistics
// @Description Aggregate counts over the stored candidate and job corpus
// @Tags Recommendations
// @Produce json
// @Success 200 {object} models.RecommendationStats "Corpus statistics"
// @Failure 500 {object} models.ErrorResponse "Storage failure"
// @Router /recommendations/stats [get]
func (h *RecommendationHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		log.Printf("[RecommendationHandler] Failed to compute stats: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to compute statistics",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// jdTextParams resolves ranking knobs for a JD-text request: omitted fields
// fall back to configured defaults, explicit values (including zero
// min_score) are honored.
func (h *RecommendationHandler) jdTextParams(req models.JDTextMatchRequest) recommend.RankParams {
	params := recommend.RankParams{
		TopK:                 req.TopK,
		MinScore:             h.cfg.DefaultMinScore,
		IncludeLocationScore: true,
	}
	if params.TopK == 0 {
		params.TopK = h.cfg.DefaultTopK
	}
	if req.MinScore != nil {
		params.MinScore = *req.MinScore
	}
	if req.IncludeLocationScore != nil {
		params.IncludeLocationScore = *req.IncludeLocationScore
	}
	return params
}

// rankParams parses the shared ranking query parameters, falling back to
// configured defaults. Writes the error response itself when a value fails
// to parse.
func (h *RecommendationHandler) rankParams(c *gin.Context) (recommend.RankParams, bool) {
	params := recommend.RankParams{
		TopK:                 h.cfg.DefaultTopK,
		MinScore:             h.cfg.DefaultMinScore,
		IncludeLocationScore: true,
	}

	if raw := c.Query("top_k"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			h.writeParamError(c, "top_k must be an integer")
			return params, false
		}
		params.TopK = v
	}
	if raw := c.Query("min_score"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.writeParamError(c, "min_score must be a number")
			return params, false
		}
		params.MinScore = v
	}
	if raw := c.Query("include_location_score"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.writeParamError(c, "include_location_score must be a boolean")
			return params, false
		}
		params.IncludeLocationScore = v
	}

	return params, true
}

func (h *RecommendationHandler) writeParamError(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "Invalid query parameter",
		Code:    http.StatusBadRequest,
		Details: detail,
	})
}

func (h *RecommendationHandler) writeRankingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "Record not found",
			Code:    http.StatusNotFound,
			Details: err.Error(),
		})
	case errors.Is(err, matching.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid ranking input",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
	default:
		log.Printf("[RecommendationHandler] Ranking failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Ranking failed",
			Code:  http.StatusInternalServerError,
		})
	}
}
