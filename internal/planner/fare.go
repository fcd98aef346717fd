package planner

import (
	"encoding/json"
	"fmt"
)

// Fare is an optional flight price. The zero value means no flight was found.
type Fare struct {
	amount float64
	valid  bool
}

// NoFare is the absent price.
var NoFare = Fare{}

// FareOf returns a present price.
func FareOf(amount float64) Fare {
	return Fare{amount: amount, valid: true}
}

// Amount returns the price and whether one is present.
func (f Fare) Amount() (float64, bool) {
	return f.amount, f.valid
}

func (f Fare) String() string {
	if !f.valid {
		return "No flights found"
	}
	return fmt.Sprintf("$%.2f", f.amount)
}

// MarshalJSON encodes an absent fare as null.
func (f Fare) MarshalJSON() ([]byte, error) {
	if !f.valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.amount)
}

func (f *Fare) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = NoFare
		return nil
	}
	var amount float64
	if err := json.Unmarshal(b, &amount); err != nil {
		return err
	}
	*f = FareOf(amount)
	return nil
}
