package dto

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileRequest is shared by complete-signup and PUT /me. Absent fields stay as they are.
type ProfileRequest struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Province    *string `json:"province,omitempty"`
	City        *string `json:"city,omitempty"`
	PostalCode  *string `json:"postal_code,omitempty"`
	Address     *string `json:"address,omitempty"`
}

type CompleteSignupRequest struct {
	ProfileRequest
	IsBrand bool `json:"is_brand"`
	IsKOL   bool `json:"is_kol"`
}

// Campaigns

type CampaignRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Goal        *string `json:"goal,omitempty"`
	Platform    *string `json:"platform,omitempty"`
	Budget      *string `json:"budget,omitempty"`
	Status      *string `json:"status,omitempty"`
	Timeline    *string `json:"timeline,omitempty"` // YYYY-MM-DD, "" clears it
}
