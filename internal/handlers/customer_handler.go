package handlers

import (
	"context"
	"net/http"

	"northwind-ai-api/internal/middleware"
	"northwind-ai-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// anonymousName is logged when the request carries no identity.
const anonymousName = "anonymous"

// CustomerLister returns every customer row.
type CustomerLister interface {
	ListCustomers(ctx context.Context) ([]models.Customer, error)
}

// CustomerHandler serves /api/customers. The route is expected to sit behind
// middleware.AuthMiddleware; the handler itself does no identity checks.
type CustomerHandler struct {
	Customers CustomerLister
}

// --- GET: /api/customers ---
func (h *CustomerHandler) GetAllCustomers(c *gin.Context) {
	ctx := c.Request.Context()

	name := middleware.ClaimsFrom(c).DisplayName()
	if name == "" {
		name = anonymousName
	}
	zerolog.Ctx(ctx).Info().Str("user", name).Msg("listing customers")

	customers, err := h.Customers.ListCustomers(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to list customers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	c.JSON(http.StatusOK, customers)
}
