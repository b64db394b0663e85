// Package services defines the [Library] interface for the hosted backend and implements it for Supabase.
//
// # Library Interface
//
// The playback core reads four record kinds from the backend: songs by id,
// songs by title search, the profile for an identity, and that identity's
// current subscription. All lookups return (data, error) pairs where a
// missing record is (nil, nil); absence is a normal state, not a failure.
//
// # Supabase Implementation
//
// [SupabaseService] talks to the PostgREST endpoint under /rest/v1 using
// horizontal filters (id=eq.X, title=ilike.*q*, status=in.(trialing,active))
// and nested resource embedding (select=*,prices(*,products(*))).
//
// Requests carry the project anon key in the apikey header. When an access
// token is present it is supplied through an [oauth2.TokenSource] and sent
// as the bearer token so row-level security applies to the caller's rows;
// otherwise the anon key doubles as the bearer token.
//
// Outbound requests are throttled with a [rate.Limiter] to stay inside the
// hosted tier's request budget.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrMissingConfig] : backend URL absent at construction
//   - [shared.ErrMissingAPIKey] : anon key absent at construction
//   - [shared.ErrAPIRequest] : HTTP request failed or non-2xx status
//   - [shared.ErrNoIdentity] : identity-scoped lookup without an identity
package services
