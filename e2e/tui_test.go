//go:build e2e && unix

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startWithWorkspace(t *testing.T) *appSession {
	t.Helper()
	s := newSession(t)

	configPath, err := s.createWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	// registered after the workspace so the app stops before its dir is removed
	t.Cleanup(s.close)

	require.NoError(t, s.start("--config", configPath), "Failed to start app")
	if !s.ready() {
		s.dumpTail("not-ready", 4096)
		t.Fatal("distribution page never rendered")
	}
	return s
}

func TestQuitExitsCleanly(t *testing.T) {
	t.Parallel()
	s := startWithWorkspace(t)

	s.press(keyQuit)

	exited, exitErr := s.waitExit(2 * time.Second)
	if !exited {
		s.dumpTail("exit-failure", 4096)
		s.press(keyCtrlC)
		t.Fatal("app did not exit after q")
	}
	require.NoError(t, exitErr, "q should exit with status 0")
}

func TestCtrlCExits(t *testing.T) {
	t.Parallel()
	s := startWithWorkspace(t)

	s.press(keyEnter)
	require.True(t, s.see("Representante #7"))
	s.press(keyCtrlC)

	exited, _ := s.waitExit(2 * time.Second)
	require.True(t, exited, "ctrl+c exits even with a detail open")
}

func TestOpenAndCloseRepresentativeDetail(t *testing.T) {
	t.Parallel()
	s := startWithWorkspace(t)

	require.True(t, s.see("Jane Doe"), "Should list distributions")

	s.press(keyEnter)
	require.True(t, s.see("Representante #7"), "Enter should open the representative detail")
	require.True(t, s.see("Total unidades"), "Detail should show totals")

	s.press(keyEsc)
	// with the detail closed, page keys reach the shell again
	s.press(keyTab)
	require.True(t, s.see("Maestro de Materiales"), "Esc should close the detail")
}

func TestSecondRowOpensOtherRepresentative(t *testing.T) {
	t.Parallel()
	s := startWithWorkspace(t)

	require.True(t, s.see("Luis Pérez"))
	s.press(keyDown, keyEnter)

	require.True(t, s.see("Representante #12"), "Down then Enter opens the second row")
}

func TestSwitchToMaterialsPage(t *testing.T) {
	t.Parallel()
	s := startWithWorkspace(t)

	s.press(keyTab)
	require.True(t, s.see("Maestro de Materiales"), "Tab should switch pages")
	require.True(t, s.see("Swab Kit"), "Should list materials")

	s.press(keyEnter)
	require.True(t, s.see("Material M-100"), "Enter should open the material detail")
}

func TestCatalogChangeReloadsList(t *testing.T) {
	t.Parallel()
	s := startWithWorkspace(t)

	require.True(t, s.see("Jane Doe"))

	updated := strings.Replace(sampleCatalog, "name: Jane Doe", "name: Jane Smith", 1)
	require.NoError(t, s.writeCatalog(updated))

	require.True(t, s.waitFor("Catálogo actualizado", 5*time.Second), "Watcher should report the reload")
	require.True(t, s.see("Jane Smith"), "List should show the new name")
}

func TestInlineHelp(t *testing.T) {
	t.Parallel()
	s := startWithWorkspace(t)

	s.press(keyHelp)
	require.True(t, s.see("Ayuda"), "? should show the help popup")
}
