// Package services implements the outbound catalog clients used to find cover art.
//
// # Music Catalog
//
// [SpotifyService] authenticates with the client-credentials grant. The token comes from
// [clientcredentials.Config] wrapped in a reuse source that refreshes one minute before expiry,
// so a single token serves every search until it is close to lapsing.
//
// [SpotifyService.SearchAlbum] walks [SearchStrategies] from the strictest query to the loosest and
// returns the first candidate accepted by [MatchAlbum].
//
// # Film Metadata
//
// [TMDBService] searches movies by title and year. Titles listed as series go straight to the TV
// search, and an empty movie result falls back to it.
//
// # Error Handling
//
// Services use sentinel errors from the shared package:
//   - [shared.ErrMissingCredentials] : client constructed without a key or secret
//   - [shared.ErrAuthFailed] : client-credentials exchange failed
//   - [shared.ErrAPIRequest] : HTTP request failed or returned a non-2xx status
//
// A search that completes without an acceptable candidate is not an error: it returns nil or "".
package services
