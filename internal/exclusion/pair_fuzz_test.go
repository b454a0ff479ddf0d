// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package exclusion

import "testing"

// FuzzNormalizePair verifies pair canonicalization holds for arbitrary
// identifier strings
func FuzzNormalizePair(f *testing.F) {
	// Seed corpus with typical identifier shapes
	f.Add("466d1b4f-e1a5-4bfe-8321-4b73abc00a28", "tt0775367")
	f.Add("tt0775367", "466d1b4f-e1a5-4bfe-8321-4b73abc00a28")
	f.Add("", "")
	f.Add("a", "")
	f.Add("id-1", "id-1")
	f.Add("tt0000001", "tt0000002")
	f.Add("\x00", "\xff")
	f.Add("UPPER", "upper")

	f.Fuzz(func(t *testing.T, a, b string) {
		forward := NormalizePair(a, b)
		reverse := NormalizePair(b, a)

		// Canonicalization must be order-insensitive.
		if forward != reverse {
			t.Errorf("NormalizePair not commutative: (%q,%q) -> %+v vs %+v", a, b, forward, reverse)
		}

		// The canonical form is sorted.
		if forward.A > forward.B {
			t.Errorf("canonical pair out of order: %+v", forward)
		}

		// Both members survive unchanged.
		if !(forward.A == a && forward.B == b) && !(forward.A == b && forward.B == a) {
			t.Errorf("NormalizePair(%q, %q) lost a member: %+v", a, b, forward)
		}

		// Membership checks must see the pair from either direction.
		result := newResult()
		result.VotedPairs[forward] = struct{}{}
		if !result.PairVoted(a, b) || !result.PairVoted(b, a) {
			t.Errorf("voted pair (%q, %q) not found by membership check", a, b)
		}
	})
}
