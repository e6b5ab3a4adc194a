package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewRegistry_Defaults(t *testing.T) {
	r := NewRegistry()

	if r.Version != 1 {
		t.Errorf("Version = %d, want 1", r.Version)
	}
	if r.Devices == nil {
		t.Error("Devices map not initialized")
	}
	if r.Preferences == nil {
		t.Fatal("Preferences not initialized")
	}
	if r.Preferences.Network != DefaultNetwork {
		t.Errorf("Network = %q, want %q", r.Preferences.Network, DefaultNetwork)
	}
	if r.Preferences.TimeoutSecs != DefaultTimeoutSecs {
		t.Errorf("TimeoutSecs = %v, want %v", r.Preferences.TimeoutSecs, DefaultTimeoutSecs)
	}
	if r.Preferences.Language != DefaultLanguage {
		t.Errorf("Language = %q, want %q", r.Preferences.Language, DefaultLanguage)
	}
}

func TestGetConfigDir_XDGOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error: %v", err)
	}
	want := filepath.Join(dir, "pulsescan")
	if got != want {
		t.Errorf("GetConfigDir() = %q, want %q", got, want)
	}
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	r := NewRegistry()
	r.Preferences.Network = "10.1.2.0/24"
	r.Preferences.DisplayLevel = 4
	r.Devices["AA:BB:00:C0:17:33:00:30"] = &Device{
		Nickname: "lab switch closet",
		LastIP:   "10.1.2.77",
		LastSeen: time.Now().Round(time.Second),
	}

	if err := SaveRegistry(r); err != nil {
		t.Fatalf("SaveRegistry() error: %v", err)
	}

	loaded, err := loadRegistryFromDisk()
	if err != nil {
		t.Fatalf("loadRegistryFromDisk() error: %v", err)
	}

	if loaded.Preferences.Network != "10.1.2.0/24" {
		t.Errorf("Network = %q", loaded.Preferences.Network)
	}
	if loaded.Preferences.DisplayLevel != 4 {
		t.Errorf("DisplayLevel = %d", loaded.Preferences.DisplayLevel)
	}

	dev, ok := loaded.Devices["AA:BB:00:C0:17:33:00:30"]
	if !ok {
		t.Fatal("device record missing after roundtrip")
	}
	if dev.Nickname != "lab switch closet" {
		t.Errorf("Nickname = %q", dev.Nickname)
	}
	if dev.LastIP != "10.1.2.77" {
		t.Errorf("LastIP = %q", dev.LastIP)
	}
}

func TestLoadRegistryFromDisk_Missing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	r, err := loadRegistryFromDisk()
	if err != nil {
		t.Fatalf("loadRegistryFromDisk() error: %v", err)
	}
	if r.Preferences.Network != DefaultNetwork {
		t.Errorf("missing config did not produce defaults: %q", r.Preferences.Network)
	}
}

func TestLoadRegistryFromDisk_PartialFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfgDir := filepath.Join(dir, "pulsescan")
	if err := os.MkdirAll(cfgDir, 0700); err != nil {
		t.Fatal(err)
	}
	// Older config with no preferences block
	content := "version: 1\ndevices:\n  \"AA:BB\":\n    nickname: old\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	r, err := loadRegistryFromDisk()
	if err != nil {
		t.Fatalf("loadRegistryFromDisk() error: %v", err)
	}
	if r.Preferences == nil || r.Preferences.Network != DefaultNetwork {
		t.Error("missing preferences were not backfilled with defaults")
	}
	if r.Devices["AA:BB"].Nickname != "old" {
		t.Error("existing device record lost")
	}
}

func TestRememberDevice(t *testing.T) {
	r := NewRegistry()
	r.Devices["AA:BB"] = &Device{Nickname: "keep me"}

	r.RememberDevice("AA:BB", "10.0.0.9")
	if r.Devices["AA:BB"].Nickname != "keep me" {
		t.Error("RememberDevice overwrote the nickname")
	}
	if r.Devices["AA:BB"].LastIP != "10.0.0.9" {
		t.Errorf("LastIP = %q", r.Devices["AA:BB"].LastIP)
	}

	r.RememberDevice("CC:DD", "10.0.0.10")
	if _, ok := r.Devices["CC:DD"]; !ok {
		t.Error("RememberDevice did not create a new record")
	}

	// Empty MAC is ignored
	r.RememberDevice("", "10.0.0.11")
	if _, ok := r.Devices[""]; ok {
		t.Error("RememberDevice stored an empty MAC")
	}
}
