package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"northwind-ai-api/internal/ai"
	"northwind-ai-api/internal/config"
	"northwind-ai-api/internal/middleware"
	"northwind-ai-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Envelope diagnostics for the OpenRouter endpoints.
const (
	MsgPromptRequired     = "Prompt is required"
	MsgAPIURLMissing      = "OpenRouter API URL is not configured"
	MsgAPIKeyMissing      = "OpenRouter API key is not configured"
	MsgModelMissing       = "OpenRouter model is not configured"
	MsgNotConfigured      = "OpenRouter is not properly configured"
	MsgProductIDsRequired = "At least one product ID is required"
	msgProductsNotFound   = "Following product IDs were not found: "
	msgInvalidProductID   = "Invalid product ID: "
)

const (
	promptQueryParam     = "prompt"
	productIDsQueryParam = "productIds"
)

// ProductFinder loads products with their category in one read-only query.
type ProductFinder interface {
	FindProductsWithCategory(ctx context.Context, ids []int) ([]models.Product, error)
}

// OpenRouterHandler serves /api/openrouter/*. Every response is HTTP 200 with
// an ai.Result body; failures are reported through success=false.
type OpenRouterHandler struct {
	Products ProductFinder
	AI       ai.Completer
	// Settings is called once per request. Defaults to config.LoadOpenRouter.
	Settings func() (config.OpenRouter, error)
}

// NewOpenRouterHandler wires the handler to live configuration.
func NewOpenRouterHandler(products ProductFinder, completer ai.Completer) *OpenRouterHandler {
	return &OpenRouterHandler{Products: products, AI: completer, Settings: config.LoadOpenRouter}
}

func (h *OpenRouterHandler) settings() (config.OpenRouter, error) {
	if h.Settings == nil {
		return config.LoadOpenRouter()
	}
	return h.Settings()
}

// --- GET: /api/openrouter/test?prompt=... ---
func (h *OpenRouterHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, h.test(c.Request.Context(), c.Query(promptQueryParam)))
}

func (h *OpenRouterHandler) test(ctx context.Context, prompt string) ai.Result {
	if strings.TrimSpace(prompt) == "" {
		return ai.Failed(MsgPromptRequired)
	}

	cfg, err := h.settings()
	if err != nil {
		return unexpected(ctx, err)
	}
	switch {
	case strings.TrimSpace(cfg.APIURL) == "":
		return ai.Failed(MsgAPIURLMissing)
	case strings.TrimSpace(cfg.APIKey) == "":
		return ai.Failed(MsgAPIKeyMissing)
	case strings.TrimSpace(cfg.Model) == "":
		return ai.Failed(MsgModelMissing)
	}

	// The upstream call outlives a disconnected caller.
	return h.AI.Complete(context.WithoutCancel(ctx), cfg.APIURL, cfg.APIKey, cfg.Model, prompt)
}

// --- GET: /api/openrouter/FindRecipe?productIds=1&productIds=2 ---
func (h *OpenRouterHandler) FindRecipe(c *gin.Context) {
	ids, bad, ok := productIDsFromQuery(c.Request.URL.RawQuery)
	if !ok {
		c.JSON(http.StatusOK, ai.Failed(msgInvalidProductID+bad))
		return
	}
	c.JSON(http.StatusOK, h.findRecipe(c.Request.Context(), ids))
}

func (h *OpenRouterHandler) findRecipe(ctx context.Context, ids []int) ai.Result {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return ai.Failed(MsgProductIDsRequired)
	}

	products, err := h.Products.FindProductsWithCategory(ctx, ids)
	if err != nil {
		return unexpected(ctx, err)
	}
	if missing := missingIDs(ids, products); len(missing) > 0 {
		return ai.Failed(msgProductsNotFound + joinIDs(missing))
	}

	items := make([]ai.RecipeIngredient, 0, len(products))
	for _, p := range products {
		items = append(items, ai.RecipeIngredient{Name: p.Name, CategoryName: p.CategoryName()})
	}
	prompt := ai.BuildRecipePrompt(items)

	cfg, err := h.settings()
	if err != nil {
		return unexpected(ctx, err)
	}
	if !cfg.Complete() {
		zerolog.Ctx(ctx).Error().Msg("openrouter configuration is incomplete")
		return ai.Failed(MsgNotConfigured)
	}

	return h.AI.Complete(context.WithoutCancel(ctx), cfg.APIURL, cfg.APIKey, cfg.Model, prompt)
}

func unexpected(ctx context.Context, err error) ai.Result {
	zerolog.Ctx(ctx).Error().Err(err).Msg("unexpected error")
	return ai.Failed(middleware.UnexpectedErrorMessage(err))
}

// productIDsFromQuery collects every productIds value in the order it appears
// in the raw query. The key is matched case-insensitively (ProductIds,
// productids). The first unparsable or blank value is returned as bad with ok false.
func productIDsFromQuery(rawQuery string) (ids []int, bad string, ok bool) {
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil || !strings.EqualFold(key, productIDsQueryParam) {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, rawValue, false
		}
		id, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, value, false
		}
		ids = append(ids, id)
	}
	return ids, "", true
}

// uniqueIDs drops repeated ids, keeping first occurrences in order.
func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// missingIDs returns the requested ids with no matching product, in request order.
func missingIDs(requested []int, found []models.Product) []int {
	have := make(map[int]struct{}, len(found))
	for _, p := range found {
		have[int(p.ID)] = struct{}{}
	}
	var missing []int
	for _, id := range requested {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ", ")
}
