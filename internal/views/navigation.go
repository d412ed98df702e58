// Package views builds the view descriptions the client renders. Each
// render function takes the current state and returns a fresh value; the
// client decides how to place it.
package views

// Route names a screen of the app
type Route string

const (
	RouteShopping      Route = "shopping"
	RouteFridgeCheck   Route = "fridge-check"
	RouteArchive       Route = "archive"
	RouteArchiveCreate Route = "archive-create"
	RouteArchiveDetail Route = "archive-detail"
	RouteRecipes       Route = "recipes"
	RouteRecipeDetail  Route = "recipe-detail"
	RouteRecipeEdit    Route = "recipe-edit"
)

// Navigation tells the client which screen to show next
type Navigation struct {
	Route  Route             `json:"route"`
	Params map[string]string `json:"params,omitempty"`
}

// NavigateTo builds a navigation value. params are key/value pairs.
func NavigateTo(route Route, params ...string) *Navigation {
	nav := &Navigation{Route: route}
	if len(params) > 1 {
		nav.Params = make(map[string]string, len(params)/2)
		for i := 0; i+1 < len(params); i += 2 {
			nav.Params[params[i]] = params[i+1]
		}
	}
	return nav
}

// EmptyState is the terminal placeholder shown when there is nothing to display
type EmptyState struct {
	Icon    string `json:"icon"`
	Title   string `json:"title"`
	Message string `json:"message,omitempty"`
}

var (
	NoShoppingList = EmptyState{Icon: "🛒", Title: "Keine Einkaufsliste", Message: "Erstelle erst eine Einkaufsliste"}
	NoArchive      = EmptyState{Icon: "📊", Title: "Kein Archiv", Message: "Archiviere deinen ersten Einkauf!"}
	EntryNotFound  = EmptyState{Icon: "❌", Title: "Eintrag nicht gefunden"}
	RecipeNotFound = EmptyState{Icon: "❌", Title: "Rezept nicht gefunden"}
)
