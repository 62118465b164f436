package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"ved/internal/styles"
)

// loadConfigFromYAML is a helper to load config from a YAML string.
func loadConfigFromYAML(t *testing.T, yaml string) Config {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(configPath, []byte(yaml), 0o644)
	require.NoError(t, err)

	v := viper.New()
	v.SetConfigFile(configPath)
	err = v.ReadInConfig()
	require.NoError(t, err)

	var cfg Config
	err = v.Unmarshal(&cfg)
	require.NoError(t, err)

	return cfg
}

// preserveStyles restores the package-level style state after a test
// mutates it through ApplyTheme.
func preserveStyles(t *testing.T) {
	t.Helper()

	filler, status, notice := styles.FillerColor, styles.StatusTextColor, styles.NoticeColor
	fillerS, statusS, noticeS := styles.FillerStyle, styles.StatusBarStyle, styles.NoticeStyle
	t.Cleanup(func() {
		styles.FillerColor, styles.StatusTextColor, styles.NoticeColor = filler, status, notice
		styles.FillerStyle, styles.StatusBarStyle, styles.NoticeStyle = fillerS, statusS, noticeS
	})
}

// TestThemeConfig_FromYAML tests that theme colors load from a config file
// and reach the style definitions.
func TestThemeConfig_FromYAML(t *testing.T) {
	preserveStyles(t)

	configYAML := `
theme:
  filler: "#FF0000"
  status: "#00FF00"
  notice: "#0000FF"
`
	cfg := loadConfigFromYAML(t, configYAML)

	require.Equal(t, "#FF0000", cfg.Theme.Filler)
	require.Equal(t, "#00FF00", cfg.Theme.Status)
	require.Equal(t, "#0000FF", cfg.Theme.Notice)

	styles.ApplyTheme(cfg.Theme.Filler, cfg.Theme.Status, cfg.Theme.Notice)

	require.Equal(t, "#FF0000", styles.FillerColor.Dark)
	require.Equal(t, "#00FF00", styles.StatusTextColor.Dark)
	require.Equal(t, "#0000FF", styles.NoticeColor.Dark)
}

// TestThemeConfig_ANSIIndexes tests that ANSI palette indexes work as colors.
func TestThemeConfig_ANSIIndexes(t *testing.T) {
	preserveStyles(t)

	configYAML := `
theme:
  filler: "5"
`
	cfg := loadConfigFromYAML(t, configYAML)
	require.Equal(t, "5", cfg.Theme.Filler)

	styles.ApplyTheme(cfg.Theme.Filler, cfg.Theme.Status, cfg.Theme.Notice)

	require.Equal(t, "5", styles.FillerColor.Dark)
	require.Equal(t, "5", styles.FillerColor.Light)
}

// TestThemeConfig_PartialOverride tests that unset colors keep their defaults.
func TestThemeConfig_PartialOverride(t *testing.T) {
	preserveStyles(t)

	configYAML := `
theme:
  notice: "#ABCDEF"
`
	cfg := loadConfigFromYAML(t, configYAML)

	require.Empty(t, cfg.Theme.Filler)
	require.Empty(t, cfg.Theme.Status)

	defaultFiller := styles.FillerColor
	defaultStatus := styles.StatusTextColor

	styles.ApplyTheme(cfg.Theme.Filler, cfg.Theme.Status, cfg.Theme.Notice)

	require.Equal(t, "#ABCDEF", styles.NoticeColor.Dark)
	require.Equal(t, defaultFiller, styles.FillerColor, "unset filler keeps the default")
	require.Equal(t, defaultStatus, styles.StatusTextColor, "unset status keeps the default")
}

// TestThemeConfig_EmptyConfig tests that a config without a theme section
// leaves every style untouched.
func TestThemeConfig_EmptyConfig(t *testing.T) {
	preserveStyles(t)

	configYAML := `
watch:
  enabled: true
`
	cfg := loadConfigFromYAML(t, configYAML)
	require.Zero(t, cfg.Theme)

	defaultFiller := styles.FillerColor
	defaultStatus := styles.StatusTextColor
	defaultNotice := styles.NoticeColor

	styles.ApplyTheme(cfg.Theme.Filler, cfg.Theme.Status, cfg.Theme.Notice)

	require.Equal(t, defaultFiller, styles.FillerColor)
	require.Equal(t, defaultStatus, styles.StatusTextColor)
	require.Equal(t, defaultNotice, styles.NoticeColor)
}
