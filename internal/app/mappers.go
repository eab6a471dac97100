package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"lakeshore_hotel/internal/domain"
)

/********** alias registries (single source of truth) **********/

// Store-managed fields arrive under different names depending on the backend.
var metaAliases = map[string][]string{
	"id":      {"_id", "id"},
	"created": {"_createdDate", "createdDate", "created_at"},
	"updated": {"_updatedDate", "updatedDate", "updated_at"},
}

// dateLayouts are tried in order for date and datetime fields.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

func ptrStr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// fields reads typed optional values out of one raw record and collects
// every type mismatch so a record is rejected with all of its problems.
type fields struct {
	m    map[string]any
	errs []error
}

func newFields(m map[string]any) *fields { return &fields{m: m} }

func (f *fields) fail(key string, v any, want string) {
	f.errs = append(f.errs, fmt.Errorf("field %q: got %T, want %s", key, v, want))
}

func (f *fields) err() error { return errors.Join(f.errs...) }

// first returns the first alias with a non-nil value.
func (f *fields) first(aliases []string) (string, any) {
	for _, k := range aliases {
		if v := lookupAny(f.m, k); v != nil {
			return k, v
		}
	}
	return "", nil
}

func (f *fields) text(key string) *string {
	switch v := lookupAny(f.m, key).(type) {
	case nil:
		return nil
	case string:
		return ptrStr(v)
	default:
		f.fail(key, v, "text")
		return nil
	}
}

// number accepts JSON numbers and numeric strings. A single comma is read
// as the decimal mark ("4,5"); grouped digits like "1,000" are rejected.
func (f *fields) number(key string) *float64 {
	switch v := lookupAny(f.m, key).(type) {
	case nil:
		return nil
	case float64:
		return &v
	case int:
		x := float64(v)
		return &x
	case int64:
		x := float64(v)
		return &x
	case json.Number:
		x, err := v.Float64()
		if err != nil {
			f.fail(key, v, "number")
			return nil
		}
		return &x
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
			s = strings.Replace(s, ",", ".", 1)
		}
		x, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
			f.fail(key, v, "number")
			return nil
		}
		return &x
	default:
		f.fail(key, v, "number")
		return nil
	}
}

func (f *fields) integer(key string) *int {
	x := f.number(key)
	if x == nil {
		return nil
	}
	if *x != math.Trunc(*x) {
		f.errs = append(f.errs, fmt.Errorf("field %q: %v is not a whole number", key, *x))
		return nil
	}
	if *x < math.MinInt || *x >= math.MaxInt {
		f.errs = append(f.errs, fmt.Errorf("field %q: %v is out of range", key, *x))
		return nil
	}
	n := int(*x)
	return &n
}

func (f *fields) boolean(key string) *bool {
	switch v := lookupAny(f.m, key).(type) {
	case nil:
		return nil
	case bool:
		return &v
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			f.fail(key, v, "boolean")
			return nil
		}
		return &b
	default:
		f.fail(key, v, "boolean")
		return nil
	}
}

// date accepts ISO strings and the store's {"$date": "..."} wrapper.
func (f *fields) date(key string) *time.Time {
	v := lookupAny(f.m, key)
	if w, ok := v.(map[string]any); ok {
		v = w["$date"]
	}
	switch s := v.(type) {
	case nil:
		return nil
	case string:
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				t = t.UTC()
				return &t
			}
		}
		f.errs = append(f.errs, fmt.Errorf("field %q: %q is not a date", key, s))
		return nil
	default:
		f.fail(key, v, "date")
		return nil
	}
}

func (f *fields) timeOfDay(key string) *domain.TimeOfDay {
	s := f.text(key)
	if s == nil {
		return nil
	}
	t, err := domain.ParseTimeOfDay(*s)
	if err != nil {
		f.errs = append(f.errs, fmt.Errorf("field %q: %w", key, err))
		return nil
	}
	return &t
}

func (f *fields) url(key string) *string {
	s := f.text(key)
	if s == nil {
		return nil
	}
	if _, err := url.Parse(*s); err != nil {
		f.errs = append(f.errs, fmt.Errorf("field %q: %w", key, err))
		return nil
	}
	return s
}

func (f *fields) image(key string) *domain.ImageRef {
	s := f.text(key)
	if s == nil {
		return nil
	}
	ref := domain.ImageRef(*s)
	return &ref
}

func (f *fields) meta() domain.Meta {
	var m domain.Meta
	switch k, v := f.first(metaAliases["id"]); id := v.(type) {
	case nil:
		f.errs = append(f.errs, errors.New("record has no id"))
	case string:
		if p := ptrStr(id); p != nil {
			m.ID = *p
		} else {
			f.errs = append(f.errs, errors.New("record has an empty id"))
		}
	case float64:
		m.ID = strconv.FormatFloat(id, 'f', -1, 64)
	default:
		f.fail(k, v, "text")
	}
	if k, _ := f.first(metaAliases["created"]); k != "" {
		m.CreatedAt = f.date(k)
	}
	if k, _ := f.first(metaAliases["updated"]); k != "" {
		m.UpdatedAt = f.date(k)
	}
	return m
}

/********** per-collection decoders **********/

type decodeFunc func(map[string]any) (domain.Record, error)

var decoders = map[domain.CollectionID]decodeFunc{
	domain.CustomerReviews:   decodeReview,
	domain.DiningOptions:     decodeDiningOption,
	domain.HotelAmenities:    decodeAmenity,
	domain.NearbyAttractions: decodeAttraction,
	domain.RoomTypes:         decodeRoomType,
	domain.SpecialOffers:     decodeOffer,
}

func decodeReview(m map[string]any) (domain.Record, error) {
	f := newFields(m)
	r := domain.Review{
		Meta:            f.meta(),
		ReviewerName:    f.text("reviewerName"),
		Rating:          f.number("rating"),
		Comment:         f.text("comment"),
		ReviewDate:      f.date("reviewDate"),
		IsVerifiedGuest: f.boolean("isVerifiedGuest"),
		ReviewTitle:     f.text("reviewTitle"),
	}
	return r, f.err()
}

func decodeDiningOption(m map[string]any) (domain.Record, error) {
	f := newFields(m)
	r := domain.DiningOption{
		Meta:                   f.meta(),
		Name:                   f.text("name"),
		Description:            f.text("description"),
		CuisineType:            f.text("cuisineType"),
		OpeningTime:            f.timeOfDay("openingTime"),
		ClosingTime:            f.timeOfDay("closingTime"),
		IsReservationsRequired: f.boolean("isReservationsRequired"),
		MenuURL:                f.url("menuUrl"),
		MainImage:              f.image("mainImage"),
	}
	return r, f.err()
}

func decodeAmenity(m map[string]any) (domain.Record, error) {
	f := newFields(m)
	r := domain.Amenity{
		Meta:         f.meta(),
		AmenityName:  f.text("amenityName"),
		Description:  f.text("description"),
		AmenityImage: f.image("amenityImage"),
		IsAvailable:  f.boolean("isAvailable"),
		Category:     f.text("category"),
	}
	return r, f.err()
}

func decodeAttraction(m map[string]any) (domain.Record, error) {
	f := newFields(m)
	r := domain.Attraction{
		Meta:              f.meta(),
		AttractionName:    f.text("attractionName"),
		Description:       f.text("description"),
		DistanceFromHotel: f.text("distanceFromHotel"),
		Address:           f.text("address"),
		AttractionImage:   f.image("attractionImage"),
		WebsiteURL:        f.url("websiteUrl"),
	}
	return r, f.err()
}

func decodeRoomType(m map[string]any) (domain.Record, error) {
	f := newFields(m)
	r := domain.RoomType{
		Meta:             f.meta(),
		RoomTypeName:     f.text("roomTypeName"),
		Description:      f.text("description"),
		BedConfiguration: f.text("bedConfiguration"),
		RoomSize:         f.text("roomSize"),
		RoomFeatures:     f.text("roomFeatures"),
		MaxOccupancy:     f.integer("maxOccupancy"),
		RoomImage:        f.image("roomImage"),
	}
	return r, f.err()
}

func decodeOffer(m map[string]any) (domain.Record, error) {
	f := newFields(m)
	r := domain.Offer{
		Meta:               f.meta(),
		OfferTitle:         f.text("offerTitle"),
		OfferDescription:   f.text("offerDescription"),
		TermsAndConditions: f.text("termsAndConditions"),
		OfferImage:         f.image("offerImage"),
		ValidFrom:          f.date("validFrom"),
		ValidUntil:         f.date("validUntil"),
		BookingURL:         f.url("bookingUrl"),
	}
	return r, f.err()
}

// decodePage maps a raw page onto typed records, enforcing id uniqueness.
func decodePage(c domain.CollectionID, page domain.RawPage) ([]domain.Record, error) {
	dec, ok := decoders[c]
	if !ok {
		return nil, domain.NotFound(c)
	}
	out := make([]domain.Record, 0, len(page.Items))
	seen := make(map[string]int, len(page.Items))
	for i, raw := range page.Items {
		if raw == nil {
			return nil, domain.Malformed(c, fmt.Errorf("item %d is null", i))
		}
		rec, err := dec(raw)
		if err != nil {
			return nil, domain.Malformed(c, fmt.Errorf("item %d: %w", i, err))
		}
		if j, dup := seen[rec.RecordID()]; dup {
			return nil, domain.Malformed(c, fmt.Errorf("items %d and %d share id %q", j, i, rec.RecordID()))
		}
		seen[rec.RecordID()] = i
		out = append(out, rec)
	}
	return out, nil
}
