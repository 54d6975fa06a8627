package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Kevin-Rudy/gosun/pkg/core"
	"github.com/Kevin-Rudy/gosun/pkg/render"
	"github.com/Kevin-Rudy/gosun/pkg/suntimes"
	"github.com/Kevin-Rudy/gosun/pkg/trajectory"
	"github.com/Kevin-Rudy/gosun/pkg/viewport"
)

func float64Ptr(v float64) *float64 {
	return &v
}

// TestResolveConfigDefaults 测试默认配置
func TestResolveConfigDefaults(t *testing.T) {
	config, err := resolveConfig(defaultSettings(), time.Now())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if config.Sunrise != defaultSunrise || config.Sunset != defaultSunset {
		t.Errorf("Expected default times, got %s-%s", config.Sunrise, config.Sunset)
	}

	if config.MapperConfig.Profile.Mode != trajectory.SizingResponsive {
		t.Errorf("Expected responsive profile, got %v", config.MapperConfig.Profile.Mode)
	}

	if config.ServerConfig.Mapper != config.MapperConfig {
		t.Error("Server should share the mapper config")
	}

	if err := validateConfig(config); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

// TestResolveConfigInvalidNames 测试无效的策略和运动方式名称
func TestResolveConfigInvalidNames(t *testing.T) {
	s := defaultSettings()
	s.Profile = "huge"
	if _, err := resolveConfig(s, time.Now()); err == nil {
		t.Error("Expected error for unknown profile")
	}

	s = defaultSettings()
	s.Easing = "linear"
	if _, err := resolveConfig(s, time.Now()); err == nil {
		t.Error("Expected error for unknown easing")
	}
}

// TestValidateConfigInvalidTime 测试无效时间在启动时被拒绝
func TestValidateConfigInvalidTime(t *testing.T) {
	s := defaultSettings()
	s.Sunrise = "abc"
	s.Sunset = "18:00"

	config, err := resolveConfig(s, time.Now())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	err = validateConfig(config)
	if err == nil || !strings.Contains(err.Error(), "日出时间") {
		t.Errorf("Expected sunrise validation error, got %v", err)
	}

	config.Sunrise = "06:00"
	config.ServerConfig.Sunrise = "06:00"
	config.LogLevel = "loud"
	if err := validateConfig(config); err == nil {
		t.Error("Expected error for unknown log level")
	}
}

// TestResolveSunTimesFromLocation 测试按经纬度填充未给出的时间
func TestResolveSunTimesFromLocation(t *testing.T) {
	today := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

	s := defaultSettings()
	s.Lat = float64Ptr(51.5074)
	s.Lon = float64Ptr(-0.1278)
	s.Sunset = "20:00"

	sunrise, sunset, source, err := resolveSunTimes(s, today)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if sunset != "20:00" {
		t.Errorf("Explicit sunset should be kept, got %s", sunset)
	}

	if !strings.HasPrefix(sunrise, "06:") {
		t.Errorf("Expected London equinox sunrise around 06:xx UTC, got %s", sunrise)
	}

	if source != "suncalc" {
		t.Errorf("Expected source suncalc, got %s", source)
	}

	// 只给出纬度时使用默认值
	s = defaultSettings()
	s.Lat = float64Ptr(51.5)
	sunrise, sunset, source, err = resolveSunTimes(s, today)
	if err != nil || sunrise != defaultSunrise || sunset != defaultSunset || source != "默认值" {
		t.Errorf("Expected defaults, got %s-%s (%s, %v)", sunrise, sunset, source, err)
	}
}

// TestResolveSunTimesPolarNight 测试极夜时报错
func TestResolveSunTimesPolarNight(t *testing.T) {
	s := defaultSettings()
	s.Lat = float64Ptr(69.6492)
	s.Lon = float64Ptr(18.9553)
	s.Date = "2024-12-21"

	_, _, _, err := resolveSunTimes(s, time.Now().UTC())
	if !errors.Is(err, suntimes.ErrNoSunEvent) {
		t.Errorf("Expected ErrNoSunEvent, got %v", err)
	}
}

// TestParseDate 测试日期解析
func TestParseDate(t *testing.T) {
	today := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)

	got, err := parseDate("", today)
	if err != nil || !got.Equal(today) {
		t.Errorf("Expected today for empty date, got %v (%v)", got, err)
	}

	got, err = parseDate("2024-12-21", today)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got.Year() != 2024 || got.Month() != time.December || got.Day() != 21 {
		t.Errorf("Unexpected date: %v", got)
	}

	if _, err := parseDate("21/12/2024", today); err == nil {
		t.Error("Expected error for wrong date format")
	}
}

// TestHydrateFromFile 测试YAML配置文件与环境变量覆盖
func TestHydrateFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gosun.yaml")
	content := `sunrise: "05:30"
sunset: "21:15"
profile: fixed
easing: bezier
tui:
  refreshInterval: 250ms
  hideStatus: true
server:
  address: ":9000"
  maxConns: 8
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	s := defaultSettings()
	if err := hydrateFromFile(s, path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if s.Sunrise != "05:30" || s.Sunset != "21:15" {
		t.Errorf("Unexpected times: %s-%s", s.Sunrise, s.Sunset)
	}
	if s.TUI.RefreshInterval != 250*time.Millisecond || !s.TUI.HideStatus {
		t.Errorf("Unexpected tui settings: %+v", s.TUI)
	}
	// 文件中未出现的字段保留默认值
	if s.TUI.PulsePeriod != 2*time.Second {
		t.Errorf("Expected default pulse period, got %v", s.TUI.PulsePeriod)
	}

	t.Setenv("GOSUN_SUNRISE", "07:00")
	t.Setenv("GOSUN_ADDR", ":7000")
	t.Setenv("GOSUN_LAT", "not-a-number")
	applyEnvOverrides(s)

	if s.Sunrise != "07:00" || s.Server.Address != ":7000" {
		t.Errorf("Env overrides not applied: %s %s", s.Sunrise, s.Server.Address)
	}
	if s.Lat != nil {
		t.Error("Invalid latitude from env should be ignored")
	}

	config, err := resolveConfig(s, time.Now())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if config.MapperConfig.Profile.Mode != trajectory.SizingFixed || config.MapperConfig.Easing != trajectory.EasingBezier {
		t.Errorf("Unexpected mapper config: %+v", config.MapperConfig)
	}
	if config.TUIConfig.ShowStatus {
		t.Error("Status line should be hidden")
	}
	if config.ServerConfig.MaxConns != 8 {
		t.Errorf("Expected maxConns 8 from file, got %d", config.ServerConfig.MaxConns)
	}

	if err := hydrateFromFile(s, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

// TestParseLogLevel 测试日志级别解析
func TestParseLogLevel(t *testing.T) {
	for _, name := range []string{"debug", "info", "WARN", "error"} {
		if _, err := parseLogLevel(name); err != nil {
			t.Errorf("parseLogLevel(%q): unexpected error %v", name, err)
		}
	}
	if _, err := parseLogLevel("verbose"); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func newTestJob(t *testing.T, output string) *renderJob {
	t.Helper()
	config, err := resolveConfig(defaultSettings(), time.Now())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return &renderJob{
		config: config,
		mapper: trajectory.NewMapper(config.MapperConfig, nil),
		output: output,
		format: render.FormatSVG,
		opts:   render.DefaultPNGOptions(),
	}
}

// TestRenderJobWrite 测试输出到文件
func TestRenderJobWrite(t *testing.T) {
	output := filepath.Join(t.TempDir(), "sun.svg")
	job := newTestJob(t, output)

	if err := job.write(core.Viewport{Width: 300, Height: 150}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !bytes.Contains(data, []byte(`viewBox="0 0 300 150"`)) {
		t.Errorf("Unexpected svg: %s", data)
	}

	if _, err := os.Stat(output + ".tmp"); !os.IsNotExist(err) {
		t.Error("Temporary file should be renamed")
	}

	// 响应式策略下视口为空不输出
	if err := job.write(core.Viewport{}); !errors.Is(err, trajectory.ErrNoViewport) {
		t.Errorf("Expected ErrNoViewport, got %v", err)
	}
}

// TestRenderJobWatch 测试尺寸通知触发重新输出
func TestRenderJobWatch(t *testing.T) {
	output := filepath.Join(t.TempDir(), "sun.svg")
	job := newTestJob(t, output)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	src := viewport.NewStaticSource(core.Viewport{Width: 640, Height: 320})
	var failures int
	if err := job.watch(ctx, src, func(error) { failures++ }); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if failures != 0 {
		t.Errorf("Expected no render failures, got %d", failures)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Watch should have written the output: %v", err)
	}
	if !bytes.Contains(data, []byte(`viewBox="0 0 640 320"`)) {
		t.Errorf("Unexpected svg: %s", data)
	}
}

// TestPrintTimes 测试日出日落输出格式
func TestPrintTimes(t *testing.T) {
	s := defaultSettings()
	s.Lat = float64Ptr(51.5)
	s.Lon = float64Ptr(-0.13)

	rise := time.Date(2024, 3, 20, 6, 3, 0, 0, time.UTC)
	set := time.Date(2024, 3, 20, 18, 14, 0, 0, time.UTC)

	var buf bytes.Buffer
	printTimes(&buf, s, rise, set)

	out := buf.String()
	for _, want := range []string{"日期: 2024-03-20", "日出: 06:03", "日落: 18:14", "白昼: 12h11m0s", "算法: suncalc"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}
