package endpoints

// Endpoints holds every endpoint group served by the frontend.
type Endpoints struct {
	BookingEndpoint BookingEndpoint
}
