package util

import (
	"os"
	"testing"
)

func TestReadConfDefaults(t *testing.T) {
	// Run from a scratch dir so no local config.yaml is picked up
	dir := t.TempDir()
	wd, _ := os.Getwd()
	defer os.Chdir(wd)
	os.Chdir(dir)

	conf, err := ReadConf()
	if err != nil {
		t.Fatalf("ReadConf failed: %v", err)
	}

	if conf.Conf.SshPort == 0 {
		t.Error("Expected a default ssh port")
	}
	if conf.Conf.HttpPort == 0 {
		t.Error("Expected a default http port")
	}
	if conf.Conf.DbFile == "" {
		t.Error("Expected a default db file")
	}
}

func TestReadConfEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	defer os.Chdir(wd)
	os.Chdir(dir)

	t.Setenv("KIGO_HOST", "haiku.example.org")
	t.Setenv("KIGO_SSHPORT", "2222")
	t.Setenv("KIGO_HTTPPORT", "9090")
	t.Setenv("KIGO_PLACE", "Kyoto")
	t.Setenv("KIGO_CLOSED", "true")

	conf, err := ReadConf()
	if err != nil {
		t.Fatalf("ReadConf failed: %v", err)
	}

	if conf.Conf.Host != "haiku.example.org" {
		t.Errorf("Expected env host, got %s", conf.Conf.Host)
	}
	if conf.Conf.SshPort != 2222 {
		t.Errorf("Expected ssh port 2222, got %d", conf.Conf.SshPort)
	}
	if conf.Conf.HttpPort != 9090 {
		t.Errorf("Expected http port 9090, got %d", conf.Conf.HttpPort)
	}
	if conf.Conf.Place != "Kyoto" {
		t.Errorf("Expected place Kyoto, got %s", conf.Conf.Place)
	}
	if !conf.Conf.Closed {
		t.Error("Expected closed to be true")
	}
}
