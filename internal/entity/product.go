package domain

import "errors"

type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// AllWeekdays in calendar order, Monday first.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func (d Weekday) Valid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// Weekend is the short-hours slot class (see schedule package).
func (d Weekday) Weekend() bool {
	return d == Saturday || d == Sunday
}

type Category string

const (
	CategoryBread    Category = "bread"
	CategoryPastry   Category = "pastry"
	CategoryCookie   Category = "cookie"
	CategoryCake     Category = "cake"
	CategorySeasonal Category = "seasonal"
)

// SpecialTier is a display-ordering hint only; a product carries at most one.
type SpecialTier string

const (
	SpecialNone SpecialTier = ""
	SpecialWeek SpecialTier = "week"
	SpecialDay  SpecialTier = "day"
)

var (
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrInvalidWeekdays = errors.New("availableDays must be distinct valid weekdays")
	ErrUnknownVariant  = errors.New("unknown variant")
	ErrVariantRequired = errors.New("variant selection required")
)

// Variant is a named sub-choice of a product. PriceDiff is added to the
// product's base price (whole SEK, may be negative).
type Variant struct {
	ID        string `bson:"id" json:"id"`
	Name      string `bson:"name" json:"name"`
	NameSv    string `bson:"nameSv" json:"nameSv"`
	PriceDiff int64  `bson:"priceDiff" json:"priceDiff"`
}

// Product is read-only from this service's point of view: it is fetched
// from the catalog store and never mutated here. Prices are whole SEK.
type Product struct {
	ID            string      `bson:"_id" json:"id"`
	Name          string      `bson:"name" json:"name"`
	NameSv        string      `bson:"nameSv" json:"nameSv"`
	Description   string      `bson:"description" json:"description"`
	DescriptionSv string      `bson:"descriptionSv" json:"descriptionSv"`
	Price         int64       `bson:"price" json:"price"`
	Category      Category    `bson:"category" json:"category"`
	Image         string      `bson:"image,omitempty" json:"image,omitempty"`
	Available     bool        `bson:"available" json:"available"`
	Featured      bool        `bson:"featured,omitempty" json:"featured,omitempty"`
	Allergens     []string    `bson:"allergens,omitempty" json:"allergens,omitempty"`
	Weight        string      `bson:"weight,omitempty" json:"weight,omitempty"`
	AvailableDays []Weekday   `bson:"availableDays,omitempty" json:"availableDays,omitempty"`
	SpecialType   SpecialTier `bson:"specialType,omitempty" json:"specialType,omitempty"`
	IsFettisdagen bool        `bson:"isFettisdagen,omitempty" json:"isFettisdagen,omitempty"`
	MinOrder      int         `bson:"minOrder,omitempty" json:"minOrder,omitempty"`
	Variants      []Variant   `bson:"variants,omitempty" json:"variants,omitempty"`
}

// AvailableOn reports whether the product may be picked up on the given
// weekday. An empty AvailableDays list means every open day.
func (p Product) AvailableOn(day Weekday) bool {
	if len(p.AvailableDays) == 0 {
		return true
	}
	for _, d := range p.AvailableDays {
		if d == day {
			return true
		}
	}
	return false
}

func (p Product) HasVariants() bool { return len(p.Variants) > 0 }

func (p Product) Variant(id string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

func (p Product) Validate() error {
	if p.Price < 0 {
		return ErrInvalidPrice
	}
	seen := map[Weekday]bool{}
	for _, d := range p.AvailableDays {
		if !d.Valid() || seen[d] {
			return ErrInvalidWeekdays
		}
		seen[d] = true
	}
	return nil
}
