package domain

// Offer is the letter issued once an application reaches the offer stage.
// One-to-one with its application; re-issuing updates the letter in place.
type Offer struct {
	OfferID       string `json:"offerID"`
	ApplicationID string `json:"applicationID"`
	LetterURL     string `json:"letterURL"` // opaque reference to an external document
	AuditFields
}
