package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"lakeshore_hotel/internal/adapters/observability"
	"lakeshore_hotel/internal/domain"
	"lakeshore_hotel/internal/shared"
)

// Home page section sizes.
const (
	HomeAmenities = 6
	HomeRooms     = 3
	HomeOffers    = 2
)

// View is the chrome every page carries.
type View struct {
	Site *shared.Site
	// Page is the route name, used to highlight the navigation.
	Page string
	// Unavailable is set when content could not be fetched; the page
	// renders a placeholder instead of its records.
	Unavailable bool
}

type HomeView struct {
	View
	Amenities []domain.Amenity
	Rooms     []domain.RoomType
	Offers    []domain.Offer
}

type RoomsView struct {
	View
	Rooms []domain.RoomType
}

type AmenitiesView struct {
	View
	Groups []AmenityGroup
}

type DiningView struct {
	View
	Options []domain.DiningOption
}

type AttractionsView struct {
	View
	Attractions []domain.Attraction
}

type OffersView struct {
	View
	Offers []domain.Offer
}

type RatingsView struct {
	View
	Reviews []domain.Review
	Summary RatingSummary
}

type PoliciesView struct {
	View
	Policies shared.Policies
}

// PageService builds page view models. Every call fetches fresh content;
// nothing is shared between calls.
type PageService struct {
	client *Client
	site   *shared.Site
	retry  RetryPolicy
}

func NewPageService(c *Client, site *shared.Site, p RetryPolicy) *PageService {
	return &PageService{client: c, site: site, retry: p}
}

func (s *PageService) view(page string) View { return View{Site: s.site, Page: page} }

// load joins the tasks under the retry policy. A failed join degrades the
// page; only cancellation of ctx itself is returned as an error.
func (s *PageService) load(ctx context.Context, page string, tasks ...Task) (bool, error) {
	wrapped := make([]Task, len(tasks))
	for i, t := range tasks {
		wrapped[i] = s.retry.Wrap(t)
	}
	err := JoinAll(ctx, wrapped...)
	if err == nil {
		return false, nil
	}
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	log.Warn().Str("page", page).Str("kind", domain.KindOf(err)).Err(err).Msg("page content unavailable")
	observability.ObservePageDegraded(page)
	return true, nil
}

func (s *PageService) Home(ctx context.Context) (HomeView, error) {
	var (
		amenities Result[domain.Amenity]
		rooms     Result[domain.RoomType]
		offers    Result[domain.Offer]
	)
	unavailable, err := s.load(ctx, "home",
		Fetch(s.client, &amenities),
		Fetch(s.client, &rooms),
		Fetch(s.client, &offers),
	)
	if err != nil {
		return HomeView{}, err
	}
	v := HomeView{View: s.view("home")}
	v.Unavailable = unavailable
	v.Amenities = Take(amenities.Items, HomeAmenities)
	v.Rooms = Take(rooms.Items, HomeRooms)
	v.Offers = Take(offers.Items, HomeOffers)
	return v, nil
}

func (s *PageService) Rooms(ctx context.Context) (RoomsView, error) {
	var rooms Result[domain.RoomType]
	unavailable, err := s.load(ctx, "rooms", Fetch(s.client, &rooms))
	if err != nil {
		return RoomsView{}, err
	}
	v := RoomsView{View: s.view("rooms"), Rooms: rooms.Items}
	v.Unavailable = unavailable
	return v, nil
}

func (s *PageService) Amenities(ctx context.Context) (AmenitiesView, error) {
	var amenities Result[domain.Amenity]
	unavailable, err := s.load(ctx, "amenities", Fetch(s.client, &amenities))
	if err != nil {
		return AmenitiesView{}, err
	}
	v := AmenitiesView{
		View:   s.view("amenities"),
		Groups: GroupAmenitiesByCategory(amenities.Items),
	}
	v.Unavailable = unavailable
	return v, nil
}

func (s *PageService) Dining(ctx context.Context) (DiningView, error) {
	var options Result[domain.DiningOption]
	unavailable, err := s.load(ctx, "dining", Fetch(s.client, &options))
	if err != nil {
		return DiningView{}, err
	}
	v := DiningView{View: s.view("dining"), Options: options.Items}
	v.Unavailable = unavailable
	return v, nil
}

func (s *PageService) Attractions(ctx context.Context) (AttractionsView, error) {
	var attractions Result[domain.Attraction]
	unavailable, err := s.load(ctx, "attractions", Fetch(s.client, &attractions))
	if err != nil {
		return AttractionsView{}, err
	}
	v := AttractionsView{View: s.view("attractions"), Attractions: attractions.Items}
	v.Unavailable = unavailable
	return v, nil
}

func (s *PageService) Offers(ctx context.Context) (OffersView, error) {
	var offers Result[domain.Offer]
	unavailable, err := s.load(ctx, "offers", Fetch(s.client, &offers))
	if err != nil {
		return OffersView{}, err
	}
	v := OffersView{View: s.view("offers"), Offers: offers.Items}
	v.Unavailable = unavailable
	return v, nil
}

func (s *PageService) Ratings(ctx context.Context) (RatingsView, error) {
	var reviews Result[domain.Review]
	unavailable, err := s.load(ctx, "ratings", Fetch(s.client, &reviews))
	if err != nil {
		return RatingsView{}, err
	}
	v := RatingsView{
		View:    s.view("ratings"),
		Reviews: reviews.Items,
		Summary: SummarizeRatings(reviews.Items),
	}
	v.Unavailable = unavailable
	return v, nil
}

// Policies is static and never fetches.
func (s *PageService) Policies(context.Context) (PoliciesView, error) {
	return PoliciesView{View: s.view("policies"), Policies: s.site.Policies}, nil
}
