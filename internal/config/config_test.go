package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigs(t *testing.T, public, private string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "public.yaml"), []byte(public), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "private.yaml"), []byte(private), 0o600); err != nil {
		t.Fatal(err)
	}
	return dir
}

const validPublic = `media:
  storage_root: /var/lib/pictonet/media
  delivery_mode: direct
  cache_max_age_seconds: 300
elevated_roles: [admin, editor]
log_level: info
`

const validPrivate = `pg:
  host: localhost
  port: 5432
  user: pictonet
  password: secret
  dbname: pictonet
jwt_key: 'k'
jwt_ttl: 3600000000000
`

func TestMustLoad(t *testing.T) {
	dir := writeConfigs(t, validPublic, validPrivate)

	cfg := MustLoad(dir)

	if cfg.Public.Media.DeliveryMode != "direct" {
		t.Errorf("unexpected delivery mode: %s", cfg.Public.Media.DeliveryMode)
	}
	if cfg.JwtKey() != "k" {
		t.Errorf("unexpected jwt key: %s", cfg.JwtKey())
	}
	if len(cfg.Public.ElevatedRoles) != 2 {
		t.Errorf("unexpected elevated roles: %v", cfg.Public.ElevatedRoles)
	}
}

func TestMustLoad_MissingStorageRoot(t *testing.T) {
	public := "media:\n  delivery_mode: direct\n"
	dir := writeConfigs(t, public, validPrivate)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic due to missing storage_root, got none")
		}
	}()

	_ = MustLoad(dir)
}

func TestMustLoad_DelegatedRequiresPrefix(t *testing.T) {
	public := "media:\n  storage_root: /srv/media\n  delivery_mode: delegated\n"
	dir := writeConfigs(t, public, validPrivate)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic due to missing accel_prefix, got none")
		}
	}()

	_ = MustLoad(dir)
}

func TestMustLoad_UnknownDeliveryMode(t *testing.T) {
	public := "media:\n  storage_root: /srv/media\n  delivery_mode: teleport\n"
	dir := writeConfigs(t, public, validPrivate)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic due to unknown delivery mode, got none")
		}
	}()

	_ = MustLoad(dir)
}
