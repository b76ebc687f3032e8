package scraper

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/domgielar/UDash/internal/domain"
	"github.com/domgielar/UDash/internal/pricing"
)

// DefaultCategory is assigned to items seen before any category header.
const DefaultCategory = "Entrees"

// ParseMenu extracts menu items from one upstream document in document
// order. Items belong to the most recently seen category header; headers
// with empty text keep the previous category. A document matching none of
// the expected node shapes yields zero items, which is a valid "no items
// found" outcome, not an error.
func ParseMenu(doc *goquery.Document) []domain.MenuItem {
	container := doc.Find("#dining_menu")
	if container.Length() == 0 {
		container = doc.Selection
	}

	items := []domain.MenuItem{}
	currentCategory := DefaultCategory

	nodes := container.Find("h2.menu_category_name, li.lightbox-nutrition")
	nodes.Each(func(_ int, sel *goquery.Selection) {
		if goquery.NodeName(sel) == "h2" {
			if cat := strings.TrimSpace(sel.Text()); cat != "" {
				currentCategory = cat
			}
			return
		}

		link := sel.Find("a")
		name := link.AttrOr("data-dish-name", "")
		if strings.TrimSpace(name) == "" {
			name = link.Text()
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}

		calories := link.AttrOr("data-calories", "N/A")
		if calories == "" {
			calories = "N/A"
		}

		items = append(items, domain.MenuItem{
			Name:       name,
			Category:   currentCategory,
			MealPeriod: "Lunch/Dinner",
			Price:      pricing.PriceForCategory(currentCategory),
			Calories:   calories,
			Image:      ImageURL(name),
		})
	})

	// Alternate grab-n-go layout: plain item anchors with no category
	// containers anywhere in the page. Categories are inferred from names.
	if nodes.Length() == 0 {
		container.Find("li.item a").Each(func(_ int, link *goquery.Selection) {
			name := strings.TrimSpace(link.Text())
			if name == "" {
				return
			}

			category := InferCategory(name)
			items = append(items, domain.MenuItem{
				Name:       name,
				Category:   category,
				MealPeriod: "Lunch/Dinner",
				Price:      pricing.PriceForCategory(category),
				Calories:   "N/A",
				Image:      ImageURL(name),
			})
		})
	}

	return items
}

// InferCategory guesses a category from an item name for layouts that carry
// no explicit category headers.
func InferCategory(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "wrap"):
		return "Wrap"
	case strings.Contains(n, "salad"):
		return "Salad"
	case strings.Contains(n, "bowl"):
		return "Bowl"
	case strings.Contains(n, "sandwich"), strings.Contains(n, "grinder"):
		return "Sandwich"
	case strings.Contains(n, "sushi"):
		return "Sushi"
	case strings.Contains(n, "parfait"):
		return "Snack"
	default:
		return "Misc"
	}
}

// ImageURL derives a stable placeholder image reference from an item name.
func ImageURL(name string) string {
	seed := strings.Join(strings.Fields(name), "-")
	return "https://picsum.photos/seed/" + url.PathEscape(seed) + "/400"
}
