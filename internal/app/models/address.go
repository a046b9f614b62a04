package models

// Address is a value embedded in a Campus. It has no identity of its own: two
// addresses are equal (==) when all four fields are equal, and it can be used as a map key.
type Address struct {
	Street       string `json:"street"`
	HouseNumber  string `json:"houseNumber"`
	PostalCode   string `json:"postalCode"`
	Municipality string `json:"municipality"`
}

// NewAddress creates an Address
func NewAddress(street, houseNumber, postalCode, municipality string) Address {
	return Address{
		Street:       street,
		HouseNumber:  houseNumber,
		PostalCode:   postalCode,
		Municipality: municipality,
	}
}
