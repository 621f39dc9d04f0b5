package lsp

import (
	"fmt"

	"bennypowers.dev/sls/internal/analysis"
	"bennypowers.dev/sls/internal/config"
	"bennypowers.dev/sls/internal/log"
	"bennypowers.dev/sls/lsp/types"
)

// GetConfig returns the current server configuration
func (s *Server) GetConfig() types.ServerConfig {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.config
}

// SetConfig replaces the configuration, switching the tree parser and the
// log level to match. An unknown parser keeps the previous analyzer.
func (s *Server) SetConfig(cfg types.ServerConfig) {
	trees, err := analysis.TreeParser(cfg.Parser)
	if err != nil {
		log.Warn("Keeping previous parser: %v", err)
	}

	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.config = cfg
	if err == nil {
		s.analyzer = analysis.New(trees)
	}
	if level, ok := log.ParseLevel(cfg.LogLevel); ok {
		log.SetLevel(level)
	}
}

// Analyzer returns the analyzer for the current configuration
func (s *Server) Analyzer() *analysis.Analyzer {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.analyzer
}

// LoadPackageJSONConfig overlays the scssLanguageServer section of the
// workspace package.json onto the current configuration. Settings sent by
// the client later take precedence.
func (s *Server) LoadPackageJSONConfig() error {
	rootPath := s.RootPath()
	if rootPath == "" {
		return nil
	}

	section, err := config.LoadPackageJSON(rootPath)
	if err != nil {
		return err
	}
	if section == nil {
		return nil
	}

	cfg, err := s.GetConfig().Apply(section)
	if err != nil {
		return fmt.Errorf("package.json %s: %w", config.Key, err)
	}
	s.SetConfig(cfg)
	log.Info("Loaded configuration from package.json: %+v", cfg)
	return nil
}
