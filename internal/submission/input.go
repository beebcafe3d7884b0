package submission

import (
	"strings"

	"pottyspotty/internal/models"
)

// AddressInput is the address part of a submission.
type AddressInput struct {
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	ZipCode string `json:"zipCode"`
}

// Input is the body of a restroom submission.
type Input struct {
	Name             string        `json:"name" binding:"required"`
	Address          *AddressInput `json:"address" binding:"required"`
	IsAccessible     bool          `json:"isAccessible"`
	IsGenderNeutral  bool          `json:"isGenderNeutral"`
	HasChangingTable bool          `json:"hasChangingTable"`
	Comments         string        `json:"comments"`
	Directions       string        `json:"directions"`
}

// Validate checks required fields after trimming and the comments length.
func (in Input) Validate() error {
	missing := make([]string, 0)
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if in.Address == nil {
		missing = append(missing, "address")
	} else {
		if strings.TrimSpace(in.Address.Street) == "" {
			missing = append(missing, "address.street")
		}
		if strings.TrimSpace(in.Address.City) == "" {
			missing = append(missing, "address.city")
		}
		if strings.TrimSpace(in.Address.State) == "" {
			missing = append(missing, "address.state")
		}
	}
	if len(missing) > 0 {
		return &FieldError{Err: ErrMissingFields, Fields: missing}
	}

	if len([]rune(in.comments())) > models.MaxCommentsLength {
		return &FieldError{Err: ErrInvalidInput, Fields: []string{"comments"}}
	}
	return nil
}

// Restroom converts the input into an unsaved restroom without a location.
func (in Input) Restroom() models.Restroom {
	return models.Restroom{
		Name: strings.TrimSpace(in.Name),
		Address: models.Address{
			Street:  strings.TrimSpace(in.Address.Street),
			City:    strings.TrimSpace(in.Address.City),
			State:   strings.TrimSpace(in.Address.State),
			ZipCode: strings.TrimSpace(in.Address.ZipCode),
		},
		IsAccessible:     in.IsAccessible,
		IsGenderNeutral:  in.IsGenderNeutral,
		HasChangingTable: in.HasChangingTable,
		Comments:         in.comments(),
	}
}

// comments folds directions into the free-text comments.
func (in Input) comments() string {
	comments := strings.TrimSpace(in.Comments)
	directions := strings.TrimSpace(in.Directions)
	if directions == "" {
		return comments
	}
	return strings.TrimSpace("Directions: " + directions + ". " + comments)
}
