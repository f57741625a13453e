package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerly/internal/insights"
)

// CategoryHandler exposes the keyword categorizer
type CategoryHandler struct{}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// SuggestionResponse is the category guessed for a note
type SuggestionResponse struct {
	Note     string `json:"note"`
	Category string `json:"category"`
}

// ListCategories returns the keyword table used to categorize notes
// @Summary     List categories
// @Description Get the categories and the keywords that select them, in match order
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]insights.Rule "Keyword table"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": insights.Rules(),
		"fallback":   insights.FallbackCategory,
	})
}

// SuggestCategory guesses a category for a note
// @Summary     Suggest a category
// @Description Run the keyword categorizer over a note. An empty note yields the fallback category.
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       note query string false "Free-text note"
// @Success     200 {object} SuggestionResponse "Suggested category"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories/suggest [get]
func (h *CategoryHandler) SuggestCategory(c *gin.Context) {
	note := c.Query("note")
	c.JSON(http.StatusOK, SuggestionResponse{Note: note, Category: insights.Categorize(note)})
}
