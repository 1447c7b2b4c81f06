// AngelaMos | 2026
// dto.go

package shipping

type CreateShippingRequest struct {
	FirstName   string `json:"firstName"   validate:"required,min=1,max=100"`
	LastName    string `json:"lastName"    validate:"required,min=1,max=100"`
	PhoneNumber string `json:"phoneNumber" validate:"required,min=3,max=32"`
	Address     string `json:"address"     validate:"required,max=255"`
	SubAddress  string `json:"subAddress"  validate:"max=255"`
	State       string `json:"state"       validate:"required,max=100"`
	City        string `json:"city"        validate:"required,max=100"`
}
