package v1

import (
	"net/http"

	"riverpatch-inquiry-backend/internal/delivery/http/middleware"
	"riverpatch-inquiry-backend/internal/delivery/http/response"
	"riverpatch-inquiry-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC domain.HealthUsecase
}

// NewHealthHandler registers the liveness route at the service root
func NewHealthHandler(r gin.IRoutes, policy *middleware.OriginPolicy, healthUC domain.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}

	r.OPTIONS("/", middleware.Preflight(policy, "GET, POST, OPTIONS", "Content-Type, Authorization"))
	r.GET("/", handler.Health)
}

// Health godoc
// @Summary      Health Check
// @Description  Liveness probe. Does not check the mail provider.
// @Tags         health
// @Produce      json
// @Success      200  {object}  domain.HealthStatus
// @Router       / [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, h.healthUC.Check(c.Request.Context()))
}
