package bench

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"sort"

	"github.com/robalobadob/wordle-solver/internal/words"
)

// Sample returns n dictionary words chosen deterministically by salt, in
// dictionary order. Each word is ranked by HMAC(salt, word) and the n lowest
// ranks are kept, so equal salts always pick the same answers. n <= 0 or
// n >= dict.Len() returns every word.
func Sample(dict *words.Dictionary, salt string, n int) []string {
	all := dict.Words()
	if n <= 0 || n >= len(all) {
		return append([]string(nil), all...)
	}

	type ranked struct {
		index int
		rank  uint64
	}
	rs := make([]ranked, len(all))
	for i, w := range all {
		rs[i] = ranked{index: i, rank: wordRank(salt, w)}
	}
	sort.Slice(rs, func(a, b int) bool {
		if rs[a].rank != rs[b].rank {
			return rs[a].rank < rs[b].rank
		}
		return rs[a].index < rs[b].index
	})

	keep := rs[:n]
	sort.Slice(keep, func(a, b int) bool { return keep[a].index < keep[b].index })
	out := make([]string, n)
	for i, r := range keep {
		out[i] = all[r.index]
	}
	return out
}

// wordRank uses the first 8 bytes of HMAC-SHA256(salt, word).
func wordRank(salt, word string) uint64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(word))
	return binary.BigEndian.Uint64(h.Sum(nil)[:8])
}
