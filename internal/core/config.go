package core

import (
	"fmt"

	"github.com/user/controlboard/internal/address"
	"github.com/user/controlboard/internal/config"
	"github.com/user/controlboard/internal/logger"
)

// GetConfig returns the current configuration.
func (s *Service) GetConfig() *config.Config {
	return s.configManager.Get()
}

// ConfigPath returns the path of the configuration file.
func (s *Service) ConfigPath() string {
	return s.configManager.Path()
}

// ServerAddress returns the network-table server address in use, or "" if
// none has been chosen.
func (s *Service) ServerAddress() string {
	return s.prober.Address()
}

// SetServerAddress persists the address chosen in the address dialog and
// retargets the network-table probe.
func (s *Service) SetServerAddress(mode address.Mode, team, addr string) error {
	cfg := s.configManager.Get()
	cfg.NetworkTables.Mode = mode
	cfg.NetworkTables.Address = addr
	if mode.UsesTeam() {
		cfg.NetworkTables.Team = team
	}

	if err := s.configManager.Update(cfg); err != nil {
		return fmt.Errorf("failed to save server address: %w", err)
	}

	s.prober.SetAddress(addr)
	logger.Info("Network table server address set to %q (%s)", addr, mode)
	return nil
}

// ReloadConfig re-reads the configuration file from disk.
func (s *Service) ReloadConfig() error {
	if err := s.configManager.Reload(); err != nil {
		return err
	}
	s.applyConfig(s.configManager.Get())
	return nil
}

// applyConfig pushes settings that can change at runtime. Board and poll
// settings take effect on restart.
func (s *Service) applyConfig(cfg *config.Config) {
	s.prober.SetAddress(serverAddress(cfg.NetworkTables))
	s.prober.SetPort(cfg.NetworkTables.Port)
	if cfg.Log.Level != "" {
		if err := logger.SetLevel(cfg.Log.Level); err != nil {
			logger.Warning("Ignoring log level: %v", err)
		}
	}
}

// serverAddress resolves the configured mode and team into the address to
// probe. The stored address is the previous one for Current mode and the
// verbatim text for Manual mode.
func serverAddress(n config.NetworkTables) string {
	addr, err := address.Resolve(n.Mode, address.Input{
		Previous: n.Address,
		Team:     n.Team,
		Manual:   n.Address,
	})
	if err != nil {
		logger.Warning("Cannot resolve %s address for team %q: %v", n.Mode, n.Team, err)
		return n.Address
	}
	return addr
}
