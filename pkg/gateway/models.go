package gateway

// ShipmentResult is the normalized outcome of a carrier create call.
type ShipmentResult struct {
	Success        bool
	Carrier        string
	TrackingNumber string
	TrackingURL    string
	Cost           float64
	RawStatus      string
	ErrorMessage   string
}

// PaymentOrder is the normalized outcome of a provider order-create call.
// Either PaymentLink or ProviderOrderID is handed to the client to complete
// checkout, depending on the provider's flow.
type PaymentOrder struct {
	Provider        string
	ProviderOrderID string
	PaymentLink     string
	Amount          float64
	Currency        string
}

// TrackResult pairs a carrier name with its tracking status, used when
// fanning a tracking number out across carriers.
type TrackResult struct {
	Carrier string
	Status  string
}

// Warehouse is the static pickup location used as the origin of every
// consignment, resolved from configuration at adapter construction time.
type Warehouse struct {
	Name    string
	Street  string
	City    string
	State   string
	Country string
	ZipCode string
	Phone   string
}

// UnableToTrack is the caller-friendly sentinel returned by TrackShipment
// when the carrier lookup fails.
const UnableToTrack = "unable to track"
