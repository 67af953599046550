//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
)

const sampleCatalog = `representatives:
  - code: 7
    name: Jane Doe
    zone: Norte
  - code: 12
    name: Luis Pérez
    zone: Sur

materials:
  - id: "M-100"
    name: Swab Kit
    unit: caja
  - id: "M-200"
    name: Gasas estériles
    unit: paquete

distributions:
  - id: "D-1"
    representative: 7
    material: "M-100"
    quantity: 10
    period: "2026-10"
    status: delivered
  - id: "D-2"
    representative: 12
    material: "M-200"
    quantity: 3
    period: "2026-09"
`

// createWorkspace creates a temp dir holding the catalog and a config file
// pointing at it, and returns the config path
func (s *appSession) createWorkspace() (string, error) {
	s.workspace = s.t.TempDir()

	if err := s.writeCatalog(sampleCatalog); err != nil {
		return "", err
	}

	configPath := filepath.Join(s.workspace, ".distrimed.toml")
	cfg := fmt.Sprintf(`version = 1
catalog_path = "catalog.yaml"
default_page = "distribution"
log_file = %q

[ui]
show_help_bar = true
use_pager = false
watch_catalog = true
debounce_ms = 50
`, filepath.Join(s.workspace, "distrimed.log"))
	if err := os.WriteFile(configPath, []byte(cfg), 0644); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return configPath, nil
}

// writeCatalog replaces the workspace catalog
func (s *appSession) writeCatalog(content string) error {
	path := filepath.Join(s.workspace, "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}
