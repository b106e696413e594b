package domain

type View string

const (
	ViewHome         View = "home"
	ViewAvailability View = "availability"
	ViewPackages     View = "packages"
	ViewBooking      View = "booking"
	ViewRSVP         View = "rsvp"
	ViewDashboard    View = "dashboard"
)

var Views = []View{ViewHome, ViewAvailability, ViewPackages, ViewBooking, ViewRSVP, ViewDashboard}

// ParseView maps a view name to a View, falling back to home.
func ParseView(name string) View {
	for _, v := range Views {
		if string(v) == name {
			return v
		}
	}
	return ViewHome
}
