package engine

// Session hands out block numbers and holds the one active block.
type Session struct {
	next   int
	active *Block
}

func NewSession() *Session {
	return &Session{next: 1}
}

// Begin creates a new block and makes it active. The block number is only
// consumed when the block is valid.
func (s *Session) Begin(total int) (*Block, error) {
	if s.active != nil {
		return nil, ErrBlockActive
	}
	b, err := NewBlock(s.next, total)
	if err != nil {
		return nil, err
	}
	s.next++
	s.active = b
	return b, nil
}

func (s *Session) Active() *Block { return s.active }

// End drops the active block, if any, and returns it.
func (s *Session) End() *Block {
	b := s.active
	s.active = nil
	return b
}
