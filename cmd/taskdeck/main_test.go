package main

import "testing"

func TestGetConfigPath(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG", "")
	if got := getConfigPath(); got != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want default %q", got, defaultConfigPath)
	}

	t.Setenv("TASKDECK_CONFIG", "/etc/taskdeck/config.yaml")
	if got := getConfigPath(); got != "/etc/taskdeck/config.yaml" {
		t.Errorf("getConfigPath() = %q, want env override", got)
	}
}
