package internal

// SafeWriteJSON serializes writes to the underlying connection.
func (p *Player) SafeWriteJSON(v any) error {
	p.Mu.Lock()
	defer p.Mu.Unlock()
	return p.Conn.WriteJSON(v)
}

// WordFor returns the word this player should see at round start.
func (p *Player) WordFor(word string) string {
	if p.IsImposter {
		return MaskedWord
	}
	return word
}
