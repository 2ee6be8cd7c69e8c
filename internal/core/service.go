// Package core wires the control board, the network-table probe and the
// health monitor into the service the tray UI talks to.
package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/user/controlboard/internal/address"
	"github.com/user/controlboard/internal/config"
	"github.com/user/controlboard/internal/hal"
	"github.com/user/controlboard/internal/health"
	"github.com/user/controlboard/internal/logger"
	"github.com/user/controlboard/internal/nt"
	"github.com/user/controlboard/internal/status"
)

// StatusPayload represents the board and network-table status for UI updates.
type StatusPayload struct {
	Icon           status.IconState
	IconChanged    bool
	BoardOK        bool
	NetworkTableOK bool
	ServerAddress  string
	AddressMode    address.Mode
	BoardName      string
	Switches       []bool
	Analog         []uint16
	Error          string
	CheckedAt      time.Time
}

// StatusListener is a callback invoked after every health poll.
type StatusListener func(status *StatusPayload)

// Service is the control board service.
type Service struct {
	mu             sync.RWMutex
	configManager  *config.Manager
	board          hal.Board
	prober         *nt.Prober
	monitor        *health.Monitor
	watcher        *config.Watcher
	ctx            context.Context
	cancel         context.CancelFunc
	started        bool
	last           health.Snapshot
	switches       []bool
	analog         []uint16
	statusListener StatusListener
}

// NewService loads the configuration and builds the board, probe and monitor.
func NewService(configPath string) (*Service, error) {
	logger.Info("Control board service initializing...")

	configManager := config.NewManager(configPath)
	if err := configManager.Load(); err != nil {
		logger.Error("Failed to load config: %v", err)
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := configManager.Get()
	logger.Info("Configuration loaded from %s", configPath)

	board, err := hal.New(boardConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &Service{
		configManager: configManager,
		board:         board,
		prober:        nt.NewProber(serverAddress(cfg.NetworkTables), cfg.NetworkTables.Port, cfg.NetworkTables.ProbeTimeout()),
		ctx:           ctx,
		cancel:        cancel,
		last:          health.Snapshot{Icon: status.IconNoBoardNoNT},
	}
	s.monitor = health.NewMonitor(health.CheckerFunc(s.checkBoard), s.prober, cfg.Poll.Interval())
	s.monitor.SetOnUpdate(s.onHealth)

	logger.Info("Using board %s", board.Info().LongName)
	return s, nil
}

func boardConfig(cfg *config.Config) hal.Config {
	return hal.Config{
		Driver:    cfg.Board.Driver,
		Transport: string(cfg.Board.Transport),
		Endpoint:  cfg.Board.Endpoint,
		BaudRate:  cfg.Board.BaudRate,
		SlaveID:   byte(cfg.Board.SlaveID),
		Timeout:   cfg.Board.Timeout(),
	}
}

// SetStatusListener sets a callback that will be called after every poll.
func (s *Service) SetStatusListener(listener StatusListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusListener = listener
}

// Start opens the board, starts health polling and watches the config file.
func (s *Service) Start() error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return errors.New("service already started")
	}
	s.started = true
	s.mu.Unlock()

	logger.Info("Starting control board service...")

	if err := s.board.Open(s.ctx); err != nil {
		// The poller keeps retrying; an unplugged board is a status, not a failure.
		logger.Warning("Control board not available yet: %v", err)
	}

	s.monitor.Start(s.ctx)

	w, err := s.configManager.Watch(s.ctx, s.applyConfig)
	if err != nil {
		logger.Warning("Config file watching disabled: %v", err)
	} else {
		s.mu.Lock()
		s.watcher = w
		s.mu.Unlock()
	}

	logger.Info("Control board service started")
	return nil
}

// Stop stops polling and closes the board.
func (s *Service) Stop() error {
	logger.Info("Stopping control board service...")
	s.monitor.Stop()

	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()
	if w != nil {
		w.Close()
	}

	s.cancel()
	err := s.board.Close()
	logger.Info("Control board service stopped")
	return err
}

// Probe runs a single health poll. It is meant for one-shot use when the
// service has not been started.
func (s *Service) Probe(ctx context.Context) *StatusPayload {
	if err := s.board.Open(ctx); err != nil {
		logger.Debug("Board open failed: %v", err)
	}
	s.monitor.PollOnce(ctx)
	return s.GetStatusPayload()
}

// Board returns the control board.
func (s *Service) Board() hal.Board {
	return s.board
}

// checkBoard pings the board and reopens the link after it dropped.
func (s *Service) checkBoard(ctx context.Context) error {
	err := s.board.Ping(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, hal.ErrDisconnected) {
		_ = s.board.Close()
		return err
	}
	if err := s.board.Open(ctx); err != nil {
		return err
	}
	return s.board.Ping(ctx)
}

func (s *Service) onHealth(snap health.Snapshot) {
	var switches []bool
	var analog []uint16
	if snap.BoardOK {
		var err error
		if switches, err = s.board.ReadSwitches(); err != nil {
			logger.Debug("Read switches failed: %v", err)
		}
		if analog, err = s.board.ReadAnalog(); err != nil {
			logger.Debug("Read analog failed: %v", err)
		}
	}

	s.mu.Lock()
	s.last = snap
	s.switches = switches
	s.analog = analog
	s.mu.Unlock()

	s.broadcastStatus()
}
