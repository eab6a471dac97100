package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"lakeshore_hotel/internal/app"
	"lakeshore_hotel/internal/domain"
)

func TestGetAll_DecodesTypedReviews(t *testing.T) {
	store := newFakeStore().with(domain.CustomerReviews,
		map[string]any{
			"_id":             "r1",
			"_createdDate":    map[string]any{"$date": "2024-03-01T10:00:00Z"},
			"reviewerName":    "Ana",
			"rating":          float64(5),
			"comment":         "Lovely stay",
			"reviewDate":      "2024-02-28",
			"isVerifiedGuest": true,
			"reviewTitle":     "   ",
		},
		map[string]any{"_id": "r2", "rating": nil, "reviewerName": ""},
	)
	c := app.NewClient(store)

	res, err := app.GetAll[domain.Review](context.Background(), c)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if res.TotalCount != len(res.Items) || res.TotalCount != 2 {
		t.Fatalf("count mismatch: total=%d items=%d", res.TotalCount, len(res.Items))
	}

	r1 := res.Items[0]
	if r1.ID != "r1" || deref(r1.ReviewerName) != "Ana" || r1.Rating == nil || *r1.Rating != 5 {
		t.Fatalf("unexpected r1: %+v", r1)
	}
	if r1.IsVerifiedGuest == nil || !*r1.IsVerifiedGuest {
		t.Fatalf("verified flag lost: %+v", r1)
	}
	if r1.ReviewDate == nil || !r1.ReviewDate.Equal(time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("review date: %v", r1.ReviewDate)
	}
	if r1.CreatedAt == nil || r1.CreatedAt.Year() != 2024 {
		t.Fatalf("created date: %v", r1.CreatedAt)
	}
	if r1.ReviewTitle != nil {
		t.Fatalf("blank title should be absent, got %q", *r1.ReviewTitle)
	}

	r2 := res.Items[1]
	if r2.Rating != nil || r2.ReviewerName != nil || r2.Comment != nil {
		t.Fatalf("absent fields must be nil: %+v", r2)
	}
}

func TestGetAll_DiningAndRooms(t *testing.T) {
	store := newFakeStore().
		with(domain.DiningOptions, map[string]any{
			"_id":         "d1",
			"name":        "Lakeside Grill",
			"openingTime": "07:30:00.000",
			"closingTime": "22:00",
			"menuUrl":     "https://example.com/menu",
			"mainImage":   "wix:image://v1/abc_123.jpg/grill.jpg#originWidth=800",
		}).
		with(domain.RoomTypes, map[string]any{"_id": "k1", "roomTypeName": "King", "maxOccupancy": "3"})
	c := app.NewClient(store)

	dining, err := app.GetAll[domain.DiningOption](context.Background(), c)
	if err != nil {
		t.Fatalf("dining err: %v", err)
	}
	d := dining.Items[0]
	if d.OpeningTime == nil || d.OpeningTime.Format("3:04 PM") != "7:30 AM" {
		t.Fatalf("opening time: %v", d.OpeningTime)
	}
	if d.MainImage == nil || d.MainImage.URL("") != "https://static.wixstatic.com/media/abc_123.jpg" {
		t.Fatalf("image: %v", d.MainImage)
	}

	rooms, err := app.GetAll[domain.RoomType](context.Background(), c)
	if err != nil {
		t.Fatalf("rooms err: %v", err)
	}
	if rooms.Items[0].MaxOccupancy == nil || *rooms.Items[0].MaxOccupancy != 3 {
		t.Fatalf("max occupancy: %v", rooms.Items[0].MaxOccupancy)
	}
}

func TestGetAll_NumericStrings(t *testing.T) {
	c := app.NewClient(newFakeStore().with(domain.CustomerReviews,
		map[string]any{"_id": "r1", "rating": "4,5"},
		map[string]any{"_id": "r2", "rating": " 3.0 "},
	))
	res, err := app.GetAll[domain.Review](context.Background(), c)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if got := deref(res.Items[0].Rating); got != 4.5 {
		t.Fatalf("decimal comma: got %v", got)
	}
	if got := deref(res.Items[1].Rating); got != 3 {
		t.Fatalf("padded number: got %v", got)
	}

	bad := []struct {
		name  string
		value any
	}{
		{"thousands separator", "1,000"},
		{"two commas", "1,000,000"},
		{"comma and dot", "1,000.5"},
		{"not a number", "NaN"},
		{"infinite", "Inf"},
		{"fraction", 2.5},
		{"beyond int range", 1e300},
		{"beyond int range as text", "1e300"},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			c := app.NewClient(newFakeStore().with(domain.RoomTypes,
				map[string]any{"_id": "k1", "maxOccupancy": tt.value}))
			res, err := app.GetAll[domain.RoomType](context.Background(), c)
			if !errors.Is(err, domain.ErrMalformed) {
				t.Fatalf("maxOccupancy %v: want ErrMalformed, got %v (items %+v)", tt.value, err, res.Items)
			}
		})
	}
}

func TestGetAll_EmptyCollection(t *testing.T) {
	c := app.NewClient(newFakeStore().with(domain.SpecialOffers))

	res, err := app.GetAll[domain.Offer](context.Background(), c)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if res.TotalCount != 0 || len(res.Items) != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestGetAll_MalformedRecords(t *testing.T) {
	tests := []struct {
		name  string
		items []map[string]any
	}{
		{"wrong type", []map[string]any{{"_id": "a", "amenityName": 42.0}}},
		{"bad boolean", []map[string]any{{"_id": "a", "isAvailable": "maybe"}}},
		{"missing id", []map[string]any{{"amenityName": "Pool"}}},
		{"empty id", []map[string]any{{"_id": " "}}},
		{"duplicate id", []map[string]any{{"_id": "a"}, {"_id": "a"}}},
		{"null item", []map[string]any{{"_id": "a"}, nil}},
		{"bad date", []map[string]any{{"_id": "a", "_updatedDate": "yesterday"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := app.NewClient(newFakeStore().with(domain.HotelAmenities, tt.items...))
			_, err := app.GetAll[domain.Amenity](context.Background(), c)
			if !errors.Is(err, domain.ErrMalformed) {
				t.Fatalf("want ErrMalformed, got %v", err)
			}
			var fe *domain.FetchError
			if !errors.As(err, &fe) || fe.Collection != domain.HotelAmenities {
				t.Fatalf("want FetchError for hotelamenities, got %#v", err)
			}
		})
	}
}

func TestGetAll_ClassifiesStoreErrors(t *testing.T) {
	plain := errors.New("connection reset")
	store := newFakeStore().failing(domain.NearbyAttractions, plain)
	c := app.NewClient(store)

	_, err := app.GetAll[domain.Attraction](context.Background(), c)
	if !errors.Is(err, domain.ErrTransient) || !errors.Is(err, plain) {
		t.Fatalf("want transient wrapping cause, got %v", err)
	}

	// collection missing from the store entirely
	_, err = app.GetAll[domain.Offer](context.Background(), c)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestGetAll_OneRoundTripPerCall(t *testing.T) {
	store := newFakeStore().
		with(domain.RoomTypes, records("room", 2, nil)...).
		failing(domain.RoomTypes, domain.Transient(domain.RoomTypes, errors.New("503")))
	c := app.NewClient(store)

	if _, err := app.GetAll[domain.RoomType](context.Background(), c); err == nil {
		t.Fatalf("expected first call to fail")
	}
	if got := store.callCount(domain.RoomTypes); got != 1 {
		t.Fatalf("client must not retry, calls=%d", got)
	}
	if _, err := app.GetAll[domain.RoomType](context.Background(), c); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if got := store.callCount(domain.RoomTypes); got != 2 {
		t.Fatalf("calls=%d", got)
	}
}

func TestGetAll_SinglePageEvenWhenStoreHasMore(t *testing.T) {
	store := newFakeStore()
	store.pages[domain.RoomTypes] = domain.RawPage{Items: records("room", 2, nil), TotalCount: 50}
	c := app.NewClient(store)

	res, err := app.GetAll[domain.RoomType](context.Background(), c)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if res.TotalCount != 2 {
		t.Fatalf("TotalCount must equal len(Items), got %d", res.TotalCount)
	}
}

func TestCollection_ByName(t *testing.T) {
	store := newFakeStore().with(domain.HotelAmenities, records("a", 3, nil)...)
	c := app.NewClient(store)

	res, err := c.Collection(context.Background(), "hotelamenities")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if res.TotalCount != 3 {
		t.Fatalf("count: %d", res.TotalCount)
	}
	if _, ok := res.Items[0].(domain.Amenity); !ok {
		t.Fatalf("want domain.Amenity, got %T", res.Items[0])
	}

	_, err = c.Collection(context.Background(), "guestbook")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if got := store.callCount("guestbook"); got != 0 {
		t.Fatalf("unknown names must not reach the store, calls=%d", got)
	}
}
