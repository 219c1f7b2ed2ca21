package store

// Gender is the optional gender of a child.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// ParentingMethod is the optional parenting approach the family follows.
type ParentingMethod string

const (
	ParentingPositive      ParentingMethod = "positive"
	ParentingAuthoritative ParentingMethod = "authoritative"
	ParentingAttachment    ParentingMethod = "attachment"
	ParentingMontessori    ParentingMethod = "montessori"
	ParentingRespectful    ParentingMethod = "respectful"
)

// ParentingMethods lists the supported methods in display order.
var ParentingMethods = []ParentingMethod{
	ParentingPositive,
	ParentingAuthoritative,
	ParentingAttachment,
	ParentingMontessori,
	ParentingRespectful,
}

func (m ParentingMethod) IsValid() bool {
	for _, method := range ParentingMethods {
		if m == method {
			return true
		}
	}
	return false
}

const (
	MinChildAge = 0
	MaxChildAge = 18
)

// Child is a saved child profile.
type Child struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Age             int             `json:"age"`
	Gender          Gender          `json:"gender,omitempty"`
	Characteristics string          `json:"characteristics"`
	Notes           string          `json:"notes,omitempty"`
	ParentingMethod ParentingMethod `json:"parentingMethod,omitempty"`
}

// UpdateChild specifies the fields to merge into an existing child.
// Nil fields are left unchanged.
type UpdateChild struct {
	Name            *string          `json:"name,omitempty"`
	Age             *int             `json:"age,omitempty"`
	Gender          *Gender          `json:"gender,omitempty"`
	Characteristics *string          `json:"characteristics,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	ParentingMethod *ParentingMethod `json:"parentingMethod,omitempty"`
}

// Apply merges the set fields of u into c.
func (u UpdateChild) Apply(c *Child) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Age != nil {
		c.Age = *u.Age
	}
	if u.Gender != nil {
		c.Gender = *u.Gender
	}
	if u.Characteristics != nil {
		c.Characteristics = *u.Characteristics
	}
	if u.Notes != nil {
		c.Notes = *u.Notes
	}
	if u.ParentingMethod != nil {
		c.ParentingMethod = *u.ParentingMethod
	}
}
