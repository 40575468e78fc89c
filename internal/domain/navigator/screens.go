package navigator

// Screen is one full-page mode of the application. Exactly one is active
// per session.
type Screen string

const (
	ScreenLogin   Screen = "login"
	ScreenLoading Screen = "loading"
	ScreenList    Screen = "list"
	ScreenChart   Screen = "chart"
	ScreenMap     Screen = "map"
	ScreenDetails Screen = "details"
	ScreenPhoto   Screen = "photo"
)

// transitions is the full navigation graph. Logout (any screen back to
// login) is listed explicitly per screen; there is no terminal screen.
var transitions = map[Screen][]Screen{
	ScreenLogin:   {ScreenLoading},
	ScreenLoading: {ScreenList, ScreenLogin},
	ScreenList:    {ScreenChart, ScreenMap, ScreenDetails, ScreenLogin},
	ScreenChart:   {ScreenList, ScreenLogin},
	ScreenMap:     {ScreenList, ScreenLogin},
	ScreenDetails: {ScreenPhoto, ScreenList, ScreenLogin},
	ScreenPhoto:   {ScreenDetails, ScreenList, ScreenLogin},
}

func ValidScreen(s Screen) bool {
	_, ok := transitions[s]
	return ok
}

// CanNavigate reports whether the graph allows moving from one screen to
// another in a single step.
func CanNavigate(from, to Screen) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
