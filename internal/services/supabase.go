// Supabase implementation of [Library]
//
// Query syntax based on https://postgrest.org/en/stable/references/api/tables_views.html
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mnfaaiiq/soniq/internal/models"
	"github.com/mnfaaiiq/soniq/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const restPath = "/rest/v1"

// subscriptionSelect embeds each subscription's price and that price's product.
const subscriptionSelect = "*,prices(*,products(*))"

// SupabaseService implements [Library] against a Supabase project's PostgREST endpoint.
type SupabaseService struct {
	baseURL    string
	anonKey    string
	tokens     oauth2.TokenSource
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewSupabaseService creates a Library client for the configured project.
//
// Fails fast with [shared.ErrMissingConfig] / [shared.ErrMissingAPIKey] so a
// misconfigured backend surfaces at startup rather than per-operation.
func NewSupabaseService(cfg shared.BackendConfig, client *http.Client, logger *log.Logger) (*SupabaseService, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: backend.url", shared.ErrMissingConfig)
	}
	if cfg.AnonKey == "" {
		return nil, fmt.Errorf("%w: backend.anon_key", shared.ErrMissingAPIKey)
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	limit := cfg.RateLimit
	if limit <= 0 {
		limit = 5.0
	}

	svc := &SupabaseService{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		anonKey:    cfg.AnonKey,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(limit), 1),
		logger:     shared.WithLogger(logger, "service", "supabase"),
	}

	if cfg.AccessToken != "" {
		svc.tokens = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken})
	}

	return svc, nil
}

func (s *SupabaseService) Name() string {
	return "Supabase"
}

// Authenticate attaches an identity's access token so subsequent requests run
// under that identity's row-level security policies.
func (s *SupabaseService) Authenticate(identity models.Identity) {
	if identity.AccessToken == "" {
		s.tokens = nil
		return
	}
	s.tokens = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: identity.AccessToken})
}

// bearerToken returns the access token when one is held, else the anon key.
func (s *SupabaseService) bearerToken() (string, error) {
	if s.tokens == nil {
		return s.anonKey, nil
	}
	tok, err := s.tokens.Token()
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return tok.AccessToken, nil
}

// doRequest performs a rate-limited GET against a PostgREST table and decodes the JSON response.
func (s *SupabaseService) doRequest(ctx context.Context, table string, query url.Values, result any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter interrupted: %w", err)
	}

	apiURL := fmt.Sprintf("%s%s/%s?%s", s.baseURL, restPath, table, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	token, err := s.bearerToken()
	if err != nil {
		return err
	}

	req.Header.Set("apikey", s.anonKey)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s status %d", shared.ErrAPIRequest, table, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// SongByID retrieves a single song record. Returns (nil, nil) if no song has the id.
func (s *SupabaseService) SongByID(ctx context.Context, id string) (*models.Song, error) {
	if id == "" {
		return nil, nil
	}

	query := url.Values{}
	query.Set("select", "*")
	query.Set("id", "eq."+id)
	query.Set("limit", "1")

	var songs []models.Song
	if err := s.doRequest(ctx, "songs", query, &songs); err != nil {
		return nil, err
	}
	if len(songs) == 0 {
		return nil, nil
	}

	return &songs[0], nil
}

// SearchSongs retrieves songs whose title matches the query, newest first.
func (s *SupabaseService) SearchSongs(ctx context.Context, title string) ([]models.Song, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "created_at.desc")
	if title != "" {
		query.Set("title", "ilike.*"+title+"*")
	}

	var songs []models.Song
	if err := s.doRequest(ctx, "songs", query, &songs); err != nil {
		return nil, err
	}

	return songs, nil
}

// SongsByUser retrieves the songs uploaded by the identity's user, newest first.
func (s *SupabaseService) SongsByUser(ctx context.Context, identity models.Identity) ([]models.Song, error) {
	if !identity.Present() {
		return nil, shared.ErrNoIdentity
	}

	query := url.Values{}
	query.Set("select", "*")
	query.Set("user_id", "eq."+identity.User.UserID)
	query.Set("order", "created_at.desc")

	var songs []models.Song
	if err := s.doRequest(ctx, "songs", query, &songs); err != nil {
		return nil, err
	}

	return songs, nil
}

// ProfileByIdentity retrieves the profile record for the identity.
func (s *SupabaseService) ProfileByIdentity(ctx context.Context, identity models.Identity) (*models.UserProfile, error) {
	if !identity.Present() {
		return nil, shared.ErrNoIdentity
	}

	query := url.Values{}
	query.Set("select", "*")
	query.Set("id", "eq."+identity.User.UserID)
	query.Set("limit", "1")

	var profiles []models.UserProfile
	if err := s.doRequest(ctx, "users", query, &profiles); err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, nil
	}

	return &profiles[0], nil
}

// CurrentSubscription retrieves the identity's trialing or active subscription
// with its price and product embedded. Returns (nil, nil) when none is current.
func (s *SupabaseService) CurrentSubscription(ctx context.Context, identity models.Identity) (*models.Subscription, error) {
	if !identity.Present() {
		return nil, shared.ErrNoIdentity
	}

	statuses := make([]string, len(models.CurrentStatuses))
	for i, status := range models.CurrentStatuses {
		statuses[i] = string(status)
	}

	query := url.Values{}
	query.Set("select", subscriptionSelect)
	query.Set("user_id", "eq."+identity.User.UserID)
	query.Set("status", fmt.Sprintf("in.(%s)", strings.Join(statuses, ",")))
	query.Set("limit", "1")

	var subs []models.Subscription
	if err := s.doRequest(ctx, "subscriptions", query, &subs); err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, nil
	}

	return &subs[0], nil
}
