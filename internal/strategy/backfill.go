package strategy

// Backfill wraps a strategy with the position-aware refinement: once some
// positions are confirmed, their slots in the inner guess are overwritten
// with the most frequent letters (over all unconfirmed positions) that the
// guess does not already use, so no slot is spent re-testing a known letter.
// Confirmed slots are filled in position order; letters rank by count, then
// alphabetically.
func Backfill(inner Strategy) Strategy { return backfill{inner: inner} }

type backfill struct {
	inner Strategy
}

func (b backfill) Name() string        { return b.inner.Name() + backfillSuffix }
func (b backfill) Key() string         { return Key(b.inner) + backfillSuffix }
func (b backfill) Deterministic() bool { return b.inner.Deterministic() }

func (b backfill) Propose(in Input) (Proposal, error) {
	prop, err := b.inner.Propose(in)
	if err != nil {
		return prop, err
	}
	if prop.Confirmed == nil {
		prop.Confirmed = in.Confirmed
	}

	hists, confirmed := positionCounts(in.Candidates, prop.Confirmed)
	prop.Confirmed = confirmed
	if !confirmed.Any() {
		return prop, nil
	}

	var overall histogram
	for i, h := range hists {
		if confirmed.Locked(i) {
			continue
		}
		for j, c := range h {
			overall[j] += c
		}
	}

	guess := []byte(prop.Guess)
	for i := range guess {
		if !confirmed.Locked(i) {
			overall[guess[i]-'a'] = 0
		}
	}
	spare := ranked(overall)

	for i := range guess {
		if len(spare) == 0 {
			break
		}
		if confirmed.Locked(i) {
			guess[i] = spare[0].letter
			spare = spare[1:]
		}
	}
	prop.Guess = string(guess)
	return prop, nil
}
