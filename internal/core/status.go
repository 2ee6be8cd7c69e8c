package core

// GetStatusPayload returns the current status.
func (s *Service) GetStatusPayload() *StatusPayload {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg := s.configManager.Get()
	snap := s.last

	payload := &StatusPayload{
		Icon:           snap.Icon,
		IconChanged:    snap.Changed,
		BoardOK:        snap.BoardOK,
		NetworkTableOK: snap.NetworkTableOK,
		ServerAddress:  s.prober.Address(),
		AddressMode:    cfg.NetworkTables.Mode,
		BoardName:      s.board.Info().LongName,
		Switches:       append([]bool(nil), s.switches...),
		Analog:         append([]uint16(nil), s.analog...),
		CheckedAt:      snap.At,
	}

	switch {
	case snap.BoardErr != nil && snap.NetworkTableErr != nil:
		payload.Error = snap.BoardErr.Error() + "; " + snap.NetworkTableErr.Error()
	case snap.BoardErr != nil:
		payload.Error = snap.BoardErr.Error()
	case snap.NetworkTableErr != nil:
		payload.Error = snap.NetworkTableErr.Error()
	}

	return payload
}

// broadcastStatus sends status update to listener.
func (s *Service) broadcastStatus() {
	s.mu.RLock()
	listener := s.statusListener
	s.mu.RUnlock()
	if listener != nil {
		listener(s.GetStatusPayload())
	}
}
