package database

import "testing"

func TestEnvInt(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "40")
	if got := envInt("DB_MAX_OPEN_CONNS", 25); got != 40 {
		t.Errorf("envInt(set) = %d, want 40", got)
	}

	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
	if got := envInt("DB_MAX_OPEN_CONNS", 25); got != 25 {
		t.Errorf("envInt(garbage) = %d, want default 25", got)
	}

	if got := envInt("DB_UNSET_TUNING_KEY", 7); got != 7 {
		t.Errorf("envInt(unset) = %d, want default 7", got)
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("DB_NAME", "override")
	if got := getEnvOrDefault("DB_NAME", "cyberquest"); got != "override" {
		t.Errorf("getEnvOrDefault(set) = %q, want %q", got, "override")
	}
	if got := getEnvOrDefault("DB_UNSET_NAME_KEY", "cyberquest"); got != "cyberquest" {
		t.Errorf("getEnvOrDefault(unset) = %q, want default", got)
	}
}
