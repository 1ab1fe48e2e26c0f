// Package pipeline composes the history sources, the window filters and the
// transcript fetcher into the two runs ythistory offers:
//
//   - the offline listing, which prints export entries watched in the last
//     seven days;
//   - the live transcript dump, which walks the account's watch history,
//     keeps yesterday's videos and writes their transcripts to one file.
package pipeline
