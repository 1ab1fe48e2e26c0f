// Package ythistory reads a user's YouTube watch history and turns a recent
// slice of it into either a listing or a transcript file.
//
// Overview
//
// ythistory offers two runs:
//
//   - ListRecent: videos watched in the last 7 days, read from a Google
//     Takeout watch-history.json export
//   - DumpYesterdayTranscripts: caption transcripts of every video watched
//     yesterday (UTC), read live from the YouTube Data API
//
// Quick Start
//
// List recent history from an export:
//
//	records, err := ythistory.ListRecent("watch-history.json", time.Now())
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, r := range records {
//		fmt.Println(r.Line())
//	}
//
// Save yesterday's transcripts:
//
//	ctx := context.Background()
//	session, err := ythistory.Authenticate(ctx, "client_secret.json", os.Stdin, os.Stderr)
//	if err != nil {
//		log.Fatal(err)
//	}
//	n, err := ythistory.DumpYesterdayTranscripts(ctx, session, config.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Saved %d transcripts\n", n)
//
// Configuration
//
// ythistory loads settings from multiple sources:
//
//  1. Environment variables (highest priority)
//  2. Config file (ythistory.yaml, ythistory.yml or ythistory.json in the
//     working directory or ~/.config/ythistory/)
//  3. Default values (lowest priority)
//
// Environment variables:
//
//   - YTHISTORY_CLIENT_SECRETS: OAuth client secret file
//   - YTHISTORY_OUTPUT: Transcript file path
//   - YTHISTORY_PLAYLIST_ID: History playlist to walk (default HL)
//   - YTHISTORY_LANG: Caption language, or a comma-separated preference list
//   - YTHISTORY_CAPTION_SOURCE: transcript-api (default) or timedtext
//   - YTHISTORY_HTTP_TIMEOUT: Timeout for each caption request
//   - YTHISTORY_RPS: Caption requests per second per host (0 = unpaced)
//   - YTHISTORY_USER_AGENT: User agent for caption requests
//   - YTHISTORY_LOG_LEVEL: debug, info, warn or error
//
// Error Handling
//
// A failed history page aborts the run and no file is written:
//
//	var walkErr *ythistory.WalkError
//	if errors.As(err, &walkErr) {
//		fmt.Printf("page %d failed: %v\n", walkErr.Page, walkErr.Err)
//	}
//
// A failed transcript does not. It is written inline as
// "Could not fetch transcript for <id>: <reason>" and the run continues.
//
// Advanced Usage
//
// For more control, use the sub-packages directly:
//
//   - history: Takeout parsing, record normalization, window filters
//   - youtube: Data API history walker, transcript fetcher, caption sources
//   - pipeline: The listing and transcript runs
//   - http: Single-attempt HTTP client with optional pacing
//   - config: Configuration management
package ythistory
