package domain

// Source values for a MenuSnapshot.
const (
	SourceScraped = "scraped"
	SourceMock    = "mock"
)

type MenuItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	MealPeriod  string  `json:"mealPeriod,omitempty"`
	Price       float64 `json:"price"`
	Calories    string  `json:"calories,omitempty"`
	Image       string  `json:"image,omitempty"`
}

// LocationMenu holds one dining location's items in upstream document order.
type LocationMenu struct {
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

// MenuSnapshot is a point-in-time aggregate of all scraped locations. Built
// fresh per request and never mutated after construction.
type MenuSnapshot struct {
	Date         string         `json:"date"`
	Locations    []LocationMenu `json:"locations"`
	IsFutureMenu bool           `json:"isFutureMenu"`
	Source       string         `json:"source,omitempty"`
	Message      string         `json:"message,omitempty"`
}

// UpstreamError records a single location fetch failure. Status carries the
// HTTP status code as text, or "network/error" for transport-level failures.
type UpstreamError struct {
	URL     string `json:"url"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
