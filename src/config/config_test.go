package config

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetDataDir(t *testing.T) {
	conf := NewTestConfig(t, logrus.DebugLevel)

	conf.SetDataDir("/tmp/utxo")
	if conf.DatabaseDir != filepath.Join("/tmp/utxo", DefaultBadgerFile) {
		t.Fatalf("DatabaseDir should follow DataDir, got %s", conf.DatabaseDir)
	}
	if conf.Keyfile() != filepath.Join("/tmp/utxo", DefaultKeyfile) {
		t.Fatalf("Keyfile should be in DataDir, got %s", conf.Keyfile())
	}

	conf.DatabaseDir = "/var/db"
	conf.SetDataDir("/tmp/other")
	if conf.DatabaseDir != "/var/db" {
		t.Fatalf("explicit DatabaseDir should not change, got %s", conf.DatabaseDir)
	}
}

func TestDerivedConfigs(t *testing.T) {
	conf := NewTestConfig(t, logrus.DebugLevel)
	conf.CutoffAge = 3
	conf.NumNodes = 7
	conf.Seed = 42

	bc := conf.BlockChainConfig(nil)
	if bc.CutoffAge != 3 {
		t.Fatalf("CutoffAge should be 3, not %d", bc.CutoffAge)
	}
	if bc.Store == nil {
		t.Fatal("Store should default to an in-memory store")
	}

	sim := conf.SimulationConfig()
	if sim.NumNodes != 7 || sim.Seed != 42 {
		t.Fatalf("unexpected simulation config %+v", sim)
	}
	if err := sim.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestLogLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"info":    logrus.InfoLevel,
		"warn":    logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"unknown": logrus.DebugLevel,
	}
	for s, l := range cases {
		if LogLevel(s) != l {
			t.Fatalf("LogLevel(%s) should be %v, not %v", s, l, LogLevel(s))
		}
	}
}
