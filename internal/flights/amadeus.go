package flights

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/i474232898/travel-checker/internal/common"
)

const segmentTimeLayout = "2006-01-02T15:04:05"

// AmadeusConfig bundles credentials and client settings for the Amadeus
// Self-Service flight offers API.
type AmadeusConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string

	// HTTPClient is the base client used for both the token and offer requests.
	HTTPClient *http.Client

	// Requests per second allowed towards Amadeus and the burst size.
	RPS   float64
	Burst int

	Policy Policy

	// Locations used to interpret the airport-local segment times.
	DepartureLocation *time.Location
	ArrivalLocation   *time.Location
}

// AmadeusClient searches one-way flight offers.
type AmadeusClient struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	circuit *gobreaker.CircuitBreaker
	policy  Policy
	depLoc  *time.Location
	arrLoc  *time.Location
}

// NewAmadeusClient creates a client authenticating with the OAuth2 client
// credentials grant. Tokens are refreshed as they expire.
func NewAmadeusClient(cfg AmadeusConfig) *AmadeusClient {
	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: 10 * time.Second}
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.amadeus.com"
	}

	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     baseURL + "/v1/security/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	client := cc.Client(tokenCtx)
	client.Timeout = base.Timeout

	rps := cfg.RPS
	if rps <= 0 {
		rps = 5
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	depLoc, arrLoc := cfg.DepartureLocation, cfg.ArrivalLocation
	if depLoc == nil {
		depLoc = time.UTC
	}
	if arrLoc == nil {
		arrLoc = depLoc
	}

	return &AmadeusClient{
		baseURL: baseURL,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		circuit: common.NewBreaker("amadeus"),
		policy:  cfg.Policy,
		depLoc:  depLoc,
		arrLoc:  arrLoc,
	}
}

type segmentPayload struct {
	Departure struct {
		IataCode string `json:"iataCode"`
		At       string `json:"at"`
	} `json:"departure"`
	Arrival struct {
		IataCode string `json:"iataCode"`
		At       string `json:"at"`
	} `json:"arrival"`
	CarrierCode string `json:"carrierCode"`
	Number      string `json:"number"`
}

type offerPayload struct {
	Data []struct {
		ID    string `json:"id"`
		Price struct {
			Currency   string `json:"currency"`
			GrandTotal string `json:"grandTotal"`
		} `json:"price"`
		Itineraries []struct {
			Segments []segmentPayload `json:"segments"`
		} `json:"itineraries"`
	} `json:"data"`
}

// Offers returns up to MaxOffers qualifying offers for the exact date, cheapest
// first. A date without qualifying offers yields an empty slice and no error.
func (c *AmadeusClient) Offers(ctx context.Context, origin, destination string, date time.Time) ([]FlightOffer, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("originLocationCode", origin)
		values.Set("destinationLocationCode", destination)
		values.Set("departureDate", date.Format("2006-01-02"))
		values.Set("adults", "1")
		values.Set("nonStop", strconv.FormatBool(c.policy.NonStop))
		values.Set("max", "20")
		values.Set("currencyCode", "USD")

		u := fmt.Sprintf("%s/v2/shopping/flight-offers?%s", c.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := common.DoRequest(ctx, c.client, c.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload offerPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode flight offers: %w", err)
	}

	return c.selectOffers(payload), nil
}

type pricedOffer struct {
	price decimal.Decimal
	offer FlightOffer
}

// selectOffers drops malformed and non-qualifying offers, sorts the rest by
// grand total and keeps the cheapest.
func (c *AmadeusClient) selectOffers(payload offerPayload) []FlightOffer {
	candidates := make([]pricedOffer, 0, len(payload.Data))

	for _, o := range payload.Data {
		price, err := decimal.NewFromString(o.Price.GrandTotal)
		if err != nil || price.IsNegative() {
			log.Printf("DEBUG: skipping offer %s with price %q", o.ID, o.Price.GrandTotal)
			continue
		}
		if len(o.Itineraries) == 0 {
			continue
		}

		segments, err := c.parseSegments(o.Itineraries[0].Segments)
		if err != nil {
			log.Printf("DEBUG: skipping offer %s: %v", o.ID, err)
			continue
		}
		if !c.policy.Allows(segments) {
			continue
		}

		first := segments[0]
		candidates = append(candidates, pricedOffer{
			price: price,
			offer: FlightOffer{
				Price:         price.Round(2).InexactFloat64(),
				CarrierCode:   first.CarrierCode,
				Carrier:       CarrierName(first.CarrierCode),
				FlightNumber:  first.Number,
				DepartureTime: first.Departure,
				ArrivalTime:   first.Arrival,
			},
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].price.LessThan(candidates[j].price)
	})
	if len(candidates) > MaxOffers {
		candidates = candidates[:MaxOffers]
	}

	out := make([]FlightOffer, 0, len(candidates))
	for _, cand := range candidates {
		out = append(out, cand.offer)
	}
	return out
}

func (c *AmadeusClient) parseSegments(raw []segmentPayload) ([]Segment, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("itinerary has no segments")
	}

	segments := make([]Segment, 0, len(raw))
	for i, s := range raw {
		dep, err := time.ParseInLocation(segmentTimeLayout, s.Departure.At, c.depLoc)
		if err != nil {
			return nil, fmt.Errorf("segment %d departure: %w", i, err)
		}
		// Only the last leg lands at the destination airport.
		arrLoc := c.depLoc
		if i == len(raw)-1 {
			arrLoc = c.arrLoc
		}
		arr, err := time.ParseInLocation(segmentTimeLayout, s.Arrival.At, arrLoc)
		if err != nil {
			return nil, fmt.Errorf("segment %d arrival: %w", i, err)
		}
		segments = append(segments, Segment{
			CarrierCode: s.CarrierCode,
			Number:      s.Number,
			Departure:   dep,
			Arrival:     arr,
		})
	}
	return segments, nil
}
