package domain

import "time"

// CollectionID names a collection in the content store.
type CollectionID string

const (
	CustomerReviews   CollectionID = "customerreviews"
	DiningOptions     CollectionID = "diningoptions"
	HotelAmenities    CollectionID = "hotelamenities"
	NearbyAttractions CollectionID = "nearbyattractions"
	RoomTypes         CollectionID = "roomtypes"
	SpecialOffers     CollectionID = "specialoffers"
)

// Collections lists every collection the site knows, in navigation order.
var Collections = []CollectionID{
	RoomTypes,
	HotelAmenities,
	DiningOptions,
	NearbyAttractions,
	SpecialOffers,
	CustomerReviews,
}

// ParseCollection maps a free-form name onto the closed collection set.
func ParseCollection(name string) (CollectionID, error) {
	for _, c := range Collections {
		if string(c) == name {
			return c, nil
		}
	}
	return "", NotFound(CollectionID(name))
}

// Record is implemented by exactly one struct per collection.
type Record interface {
	RecordID() string
	Collection() CollectionID
}

// Meta carries the store-managed fields every record has.
type Meta struct {
	ID        string     `json:"_id"`
	CreatedAt *time.Time `json:"_createdDate,omitempty"`
	UpdatedAt *time.Time `json:"_updatedDate,omitempty"`
}

func (m Meta) RecordID() string { return m.ID }

type Review struct {
	Meta
	ReviewerName    *string    `json:"reviewerName,omitempty"`
	Rating          *float64   `json:"rating,omitempty"` // 1–5
	Comment         *string    `json:"comment,omitempty"`
	ReviewDate      *time.Time `json:"reviewDate,omitempty"`
	IsVerifiedGuest *bool      `json:"isVerifiedGuest,omitempty"`
	ReviewTitle     *string    `json:"reviewTitle,omitempty"`
}

func (Review) Collection() CollectionID { return CustomerReviews }

type DiningOption struct {
	Meta
	Name                   *string    `json:"name,omitempty"`
	Description            *string    `json:"description,omitempty"`
	CuisineType            *string    `json:"cuisineType,omitempty"`
	OpeningTime            *TimeOfDay `json:"openingTime,omitempty"`
	ClosingTime            *TimeOfDay `json:"closingTime,omitempty"`
	IsReservationsRequired *bool      `json:"isReservationsRequired,omitempty"`
	MenuURL                *string    `json:"menuUrl,omitempty"`
	MainImage              *ImageRef  `json:"mainImage,omitempty"`
}

func (DiningOption) Collection() CollectionID { return DiningOptions }

type Amenity struct {
	Meta
	AmenityName  *string   `json:"amenityName,omitempty"`
	Description  *string   `json:"description,omitempty"`
	AmenityImage *ImageRef `json:"amenityImage,omitempty"`
	IsAvailable  *bool     `json:"isAvailable,omitempty"`
	Category     *string   `json:"category,omitempty"`
}

func (Amenity) Collection() CollectionID { return HotelAmenities }

type Attraction struct {
	Meta
	AttractionName    *string   `json:"attractionName,omitempty"`
	Description       *string   `json:"description,omitempty"`
	DistanceFromHotel *string   `json:"distanceFromHotel,omitempty"`
	Address           *string   `json:"address,omitempty"`
	AttractionImage   *ImageRef `json:"attractionImage,omitempty"`
	WebsiteURL        *string   `json:"websiteUrl,omitempty"`
}

func (Attraction) Collection() CollectionID { return NearbyAttractions }

type RoomType struct {
	Meta
	RoomTypeName     *string   `json:"roomTypeName,omitempty"`
	Description      *string   `json:"description,omitempty"`
	BedConfiguration *string   `json:"bedConfiguration,omitempty"`
	RoomSize         *string   `json:"roomSize,omitempty"`
	RoomFeatures     *string   `json:"roomFeatures,omitempty"`
	MaxOccupancy     *int      `json:"maxOccupancy,omitempty"`
	RoomImage        *ImageRef `json:"roomImage,omitempty"`
}

func (RoomType) Collection() CollectionID { return RoomTypes }

type Offer struct {
	Meta
	OfferTitle         *string    `json:"offerTitle,omitempty"`
	OfferDescription   *string    `json:"offerDescription,omitempty"`
	TermsAndConditions *string    `json:"termsAndConditions,omitempty"`
	OfferImage         *ImageRef  `json:"offerImage,omitempty"`
	ValidFrom          *time.Time `json:"validFrom,omitempty"`
	ValidUntil         *time.Time `json:"validUntil,omitempty"`
	BookingURL         *string    `json:"bookingUrl,omitempty"`
}

func (Offer) Collection() CollectionID { return SpecialOffers }
