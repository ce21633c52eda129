package dto

// Coordinate fields deliberately carry no "required" tag: zero is a valid
// latitude and longitude, and validator treats zero values as missing.
type ReverseGeocodeRequest struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

type ReverseGeocodeResponse struct {
	Address string `json:"address"`
}

type GeoSample struct {
	Lat      float64 `json:"lat" validate:"latitude"`
	Lng      float64 `json:"lng" validate:"longitude"`
	Accuracy float64 `json:"accuracy" validate:"gte=0"`
}

// ResolveLocationRequest carries the position samples a client's watch
// collected, in arrival order.
type ResolveLocationRequest struct {
	Samples []GeoSample `json:"samples" validate:"required,min=1,dive"`
}

type ResolveLocationResponse struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Accuracy float64 `json:"accuracy"`
	Address  string  `json:"address"`
}
