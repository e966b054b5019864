package game

// Challenge is a pending proposal from one room member to another.
type Challenge struct {
	ChallengerID string
	ChallengedID string
}

// ChallengeBroker tracks at most one pending challenge per player, in
// either direction: a player with a challenge in flight can neither issue
// another nor be challenged. It is plain bookkeeping; the owning Room
// serializes every call.
type ChallengeBroker struct {
	pending map[string]*Challenge // keyed by both participants' ids
}

func NewChallengeBroker() *ChallengeBroker {
	return &ChallengeBroker{pending: make(map[string]*Challenge)}
}

// Challenge records fromID challenging toID.
func (b *ChallengeBroker) Challenge(fromID, toID string) (*Challenge, error) {
	if fromID == toID {
		return nil, ErrSelfChallenge
	}
	if _, busy := b.pending[fromID]; busy {
		return nil, ErrChallengePending
	}
	if _, busy := b.pending[toID]; busy {
		return nil, ErrChallengePending
	}

	c := &Challenge{ChallengerID: fromID, ChallengedID: toID}
	b.pending[fromID] = c
	b.pending[toID] = c
	return c, nil
}

// Accept resolves the challenge issued by fromID to byID and removes it.
func (b *ChallengeBroker) Accept(byID, fromID string) (*Challenge, error) {
	c, ok := b.pending[byID]
	if !ok || c.ChallengerID != fromID || c.ChallengedID != byID {
		return nil, ErrNoSuchChallenge
	}
	delete(b.pending, c.ChallengerID)
	delete(b.pending, c.ChallengedID)
	return c, nil
}

// CancelFor drops any pending challenge involving playerID (both sides are
// freed at once) and returns the other party's id if there was one.
func (b *ChallengeBroker) CancelFor(playerID string) (otherID string, ok bool) {
	c, found := b.pending[playerID]
	if !found {
		return "", false
	}
	delete(b.pending, c.ChallengerID)
	delete(b.pending, c.ChallengedID)
	if c.ChallengerID == playerID {
		return c.ChallengedID, true
	}
	return c.ChallengerID, true
}
