// Package icecold builds password-candidate wordlists from website text.
// It crawls sites under a depth and domain budget, reads page text in
// fixed-size windows, and runs each window through a word pipeline that
// normalizes fragments and chains neighbouring words together.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, bloom/, http/).
package icecold
