package ai

import (
	"fmt"
	"strings"
)

// RecipeIngredient is one product fed into the recipe prompt.
type RecipeIngredient struct {
	Name         string
	CategoryName string
}

// recipeLanguage is the language the recipe must be written in.
const recipeLanguage = "English"

const recipeTemplate = `Create a cooking recipe in %s that uses the following products: %s.

Return the recipe as HTML using exactly this structure:
- Wrap the whole recipe in a single <div class="recipe"> element.
- Put the recipe title in an <h2> element.
- Add an <h3>Ingredients</h3> heading followed by a <ul> list with one <li> per ingredient, including quantities.
- Add an <h3>Method</h3> heading followed by an <ol> list with one <li> per preparation step.

Rules:
- Every product listed above must appear in the ingredients list.
- Do not use emoji, icons or other decorative symbols.
- Return only the HTML markup, with no explanations, comments or code fences before or after it.`

// DescribeIngredients renders products as "Name" or "Name (Category)" joined by ", ".
func DescribeIngredients(items []RecipeIngredient) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if it.CategoryName != "" {
			parts = append(parts, fmt.Sprintf("%s (%s)", it.Name, it.CategoryName))
		} else {
			parts = append(parts, it.Name)
		}
	}
	return strings.Join(parts, ", ")
}

// BuildRecipePrompt renders the instruction asking for an HTML recipe built from items, in the given order.
func BuildRecipePrompt(items []RecipeIngredient) string {
	return fmt.Sprintf(recipeTemplate, recipeLanguage, DescribeIngredients(items))
}
