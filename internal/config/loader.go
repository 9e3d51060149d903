package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config captures configuration values for the roster service. Values come
// from built-in defaults, then an optional TOML file, then the environment,
// with later sources winning.
type Config struct {
	HTTPPort     int    `toml:"http_port"`
	SQLiteDSN    string `toml:"sqlite_dsn"`
	APITokenHash string `toml:"api_token_hash"`
	BranchALabel string `toml:"branch_a_label"`
	BranchBLabel string `toml:"branch_b_label"`
	WeeklyOffCap int    `toml:"weekly_off_cap"`
}

// Load assembles the configuration. When ROSTER_CONFIG names a TOML file it
// is read before environment overrides are applied.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:     8080,
		SQLiteDSN:    "file:roster.db",
		BranchALabel: "本店",
		BranchBLabel: "支店",
		WeeklyOffCap: 2,
	}

	if path := strings.TrimSpace(os.Getenv("ROSTER_CONFIG")); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("設定ファイルを読み込めません (%s): %w", path, err)
		}
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("ROSTER_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "ROSTER_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("ROSTER_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if hash := strings.TrimSpace(os.Getenv("ROSTER_API_TOKEN_HASH")); hash != "" {
		cfg.APITokenHash = hash
	}

	if label := strings.TrimSpace(os.Getenv("ROSTER_BRANCH_A_LABEL")); label != "" {
		cfg.BranchALabel = label
	}
	if label := strings.TrimSpace(os.Getenv("ROSTER_BRANCH_B_LABEL")); label != "" {
		cfg.BranchBLabel = label
	}

	if capValue := strings.TrimSpace(os.Getenv("ROSTER_OFF_CAP")); capValue != "" {
		offCap, err := strconv.Atoi(capValue)
		if err != nil || offCap < 0 {
			invalid = append(invalid, "ROSTER_OFF_CAP")
		} else {
			cfg.WeeklyOffCap = offCap
		}
	}

	if cfg.HTTPPort <= 0 {
		invalid = append(invalid, "http_port")
	}
	if cfg.WeeklyOffCap < 0 {
		invalid = append(invalid, "weekly_off_cap")
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("設定値が不正です: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
