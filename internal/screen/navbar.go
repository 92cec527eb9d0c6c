package screen

// NavItem is one entry of the bottom navigation bar
type NavItem struct {
	Route    Route  `json:"route"`
	Label    string `json:"label"`
	Icon     string `json:"icon"`
	Selected bool   `json:"selected"`
}

var navItems = []NavItem{
	{Route: RouteCamera, Label: "Cámara", Icon: "camera"},
	{Route: RouteMain, Label: "Inicio", Icon: "home"},
	{Route: RouteStatistics, Label: "Estadísticas", Icon: "statistics"},
}

// Navbar returns the bar entries with the current route selected
func Navbar(current Route) []NavItem {
	items := make([]NavItem, len(navItems))
	copy(items, navItems)
	for i := range items {
		items[i].Selected = items[i].Route == current
	}
	return items
}

// NavbarVisible reports whether the bar is drawn on route; the camera is full-screen
func NavbarVisible(route Route) bool {
	return route != RouteCamera
}
