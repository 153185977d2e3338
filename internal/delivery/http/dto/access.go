package dto

type AccessRequestResponse struct {
	ID            string `json:"id"`
	RequesterID   string `json:"requester_id"`
	RequesterName string `json:"requester_name"`
	ListingID     string `json:"listing_id"`
	OwnerID       string `json:"owner_id"`
	Status        string `json:"status"`
	RequestedAt   string `json:"requested_at"`
}

type RequestAccessRequest struct {
	ListingID string `json:"listing_id"`
}
