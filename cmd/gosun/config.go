package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Kevin-Rudy/gosun/pkg/server"
	"github.com/Kevin-Rudy/gosun/pkg/suntimes"
	"github.com/Kevin-Rudy/gosun/pkg/trajectory"
	"github.com/Kevin-Rudy/gosun/pkg/tui"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// 日出日落均未给出且无法推算时使用的默认值
const (
	defaultSunrise = "06:00"
	defaultSunset  = "18:00"
)

// settings 配置文件、环境变量和命令行参数合并后的原始值
// 优先级：命令行 > 环境变量 > 配置文件 > 默认值
type settings struct {
	Sunrise  string   `yaml:"sunrise"`
	Sunset   string   `yaml:"sunset"`
	Lat      *float64 `yaml:"lat"`
	Lon      *float64 `yaml:"lon"`
	Date     string   `yaml:"date"`
	Provider string   `yaml:"provider"`
	Profile  string   `yaml:"profile"`
	Easing   string   `yaml:"easing"`
	LogLevel string   `yaml:"logLevel"`
	LogFile  string   `yaml:"logFile"`

	TUI struct {
		RefreshInterval time.Duration `yaml:"refreshInterval"`
		PulsePeriod     time.Duration `yaml:"pulsePeriod"`
		HideStatus      bool          `yaml:"hideStatus"`
	} `yaml:"tui"`

	Server struct {
		Address  string `yaml:"address"`
		FontPath string `yaml:"fontPath"`
		MaxConns int    `yaml:"maxConns"`
	} `yaml:"server"`
}

// AppConfig 应用层配置聚合
type AppConfig struct {
	Sunrise      string
	Sunset       string
	TimesSource  string // 日出日落来源，例如 "参数" 或算法名称
	LogLevel     string
	LogFile      string
	MapperConfig *trajectory.Config
	TUIConfig    *tui.Config
	ServerConfig *server.Config
}

func defaultSettings() *settings {
	s := &settings{
		Provider: "suncalc",
		Profile:  "responsive",
		Easing:   "sine",
		LogLevel: "info",
	}
	tuiDefaults := tui.DefaultConfig()
	s.TUI.RefreshInterval = tuiDefaults.RefreshInterval
	s.TUI.PulsePeriod = tuiDefaults.PulsePeriod
	serverDefaults := server.DefaultConfig()
	s.Server.Address = serverDefaults.Address
	s.Server.MaxConns = serverDefaults.MaxConns
	return s
}

// buildConfigFromCLI 从配置文件、环境变量和命令行参数构建配置
func buildConfigFromCLI(c *cli.Context) (*AppConfig, error) {
	s := defaultSettings()

	if path := c.Path("config"); path != "" {
		if err := hydrateFromFile(s, path); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(s)
	applyFlagOverrides(c, s)

	return resolveConfig(s, time.Now())
}

func hydrateFromFile(s *settings, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取配置文件: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("解析配置文件: %w", err)
	}
	return nil
}

func applyEnvOverrides(s *settings) {
	if v := os.Getenv("GOSUN_SUNRISE"); v != "" {
		s.Sunrise = v
	}
	if v := os.Getenv("GOSUN_SUNSET"); v != "" {
		s.Sunset = v
	}
	if v := os.Getenv("GOSUN_LAT"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			s.Lat = &parsed
		}
	}
	if v := os.Getenv("GOSUN_LON"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			s.Lon = &parsed
		}
	}
	if v := os.Getenv("GOSUN_PROFILE"); v != "" {
		s.Profile = v
	}
	if v := os.Getenv("GOSUN_ADDR"); v != "" {
		s.Server.Address = v
	}
}

// applyFlagOverrides 只应用显式给出的参数，保留配置文件和环境变量的值
func applyFlagOverrides(c *cli.Context, s *settings) {
	stringFlags := map[string]*string{
		"sunrise":   &s.Sunrise,
		"sunset":    &s.Sunset,
		"date":      &s.Date,
		"provider":  &s.Provider,
		"profile":   &s.Profile,
		"easing":    &s.Easing,
		"log-level": &s.LogLevel,
		"addr":      &s.Server.Address,
	}
	for name, dst := range stringFlags {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}

	if c.IsSet("log-file") {
		s.LogFile = c.Path("log-file")
	}
	if c.IsSet("font") {
		s.Server.FontPath = c.Path("font")
	}
	if c.IsSet("max-conns") {
		s.Server.MaxConns = c.Int("max-conns")
	}
	if c.IsSet("lat") {
		lat := c.Float64("lat")
		s.Lat = &lat
	}
	if c.IsSet("lon") {
		lon := c.Float64("lon")
		s.Lon = &lon
	}
	if c.IsSet("refresh-rate") {
		s.TUI.RefreshInterval = c.Duration("refresh-rate")
	}
	if c.IsSet("pulse-period") {
		s.TUI.PulsePeriod = c.Duration("pulse-period")
	}
	if c.IsSet("no-status") {
		s.TUI.HideStatus = c.Bool("no-status")
	}
}

// resolveConfig 将原始值转换为各组件的配置，必要时按经纬度推算日出日落
func resolveConfig(s *settings, today time.Time) (*AppConfig, error) {
	profile, err := trajectory.ProfileByName(s.Profile)
	if err != nil {
		return nil, err
	}
	easing, err := trajectory.ParseEasing(s.Easing)
	if err != nil {
		return nil, err
	}
	mapperConfig := trajectory.NewConfigWithOptions(
		trajectory.WithProfile(profile),
		trajectory.WithEasing(easing),
	)

	sunrise, sunset, source, err := resolveSunTimes(s, today)
	if err != nil {
		return nil, err
	}

	tuiConfig := tui.NewConfigWithOptions(
		tui.WithRefreshInterval(s.TUI.RefreshInterval),
		tui.WithPulsePeriod(s.TUI.PulsePeriod),
		tui.WithStatus(!s.TUI.HideStatus),
	)

	serverConfig := server.DefaultConfig()
	serverConfig.Address = s.Server.Address
	serverConfig.FontPath = s.Server.FontPath
	serverConfig.MaxConns = s.Server.MaxConns
	serverConfig.Sunrise = sunrise
	serverConfig.Sunset = sunset
	serverConfig.Mapper = mapperConfig

	return &AppConfig{
		Sunrise:      sunrise,
		Sunset:       sunset,
		TimesSource:  source,
		LogLevel:     s.LogLevel,
		LogFile:      s.LogFile,
		MapperConfig: mapperConfig,
		TUIConfig:    tuiConfig,
		ServerConfig: serverConfig,
	}, nil
}

// resolveSunTimes 确定日出日落字符串
// 只有未显式给出的一项才由算法填充
func resolveSunTimes(s *settings, today time.Time) (sunrise, sunset, source string, err error) {
	sunrise, sunset, source = s.Sunrise, s.Sunset, "参数"
	if sunrise != "" && sunset != "" {
		return sunrise, sunset, source, nil
	}

	if s.Lat == nil || s.Lon == nil {
		if sunrise == "" {
			sunrise = defaultSunrise
		}
		if sunset == "" {
			sunset = defaultSunset
		}
		return sunrise, sunset, "默认值", nil
	}

	times, err := computeTimes(s, today)
	if err != nil {
		return "", "", "", err
	}

	rise, set := times.HHMM()
	if sunrise == "" {
		sunrise = rise
	}
	if sunset == "" {
		sunset = set
	}
	return sunrise, sunset, s.Provider, nil
}

// computeTimes 使用配置的算法计算日出日落
func computeTimes(s *settings, today time.Time) (suntimes.Times, error) {
	if s.Lat == nil || s.Lon == nil {
		return suntimes.Times{}, errors.New("必须同时指定 --lat 和 --lon")
	}

	date, err := parseDate(s.Date, today)
	if err != nil {
		return suntimes.Times{}, err
	}

	provider, err := suntimes.New(s.Provider, *s.Lat, *s.Lon)
	if err != nil {
		return suntimes.Times{}, err
	}

	times, err := provider.Times(date)
	if err != nil {
		return suntimes.Times{}, fmt.Errorf("%s: %w", provider.Name(), err)
	}
	return times, nil
}

// parseDate 解析 YYYY-MM-DD，为空时使用 today，使用 today 的时区
func parseDate(value string, today time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return today, nil
	}
	date, err := time.ParseInLocation("2006-01-02", value, today.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("无效的日期 %q，应为 YYYY-MM-DD", value)
	}
	return date, nil
}

// validateConfig 验证配置的合理性
func validateConfig(config *AppConfig) error {
	// 验证映射器配置
	if err := config.MapperConfig.Validate(); err != nil {
		return fmt.Errorf("映射器配置错误: %v", err)
	}

	// 验证 TUI 配置
	if err := config.TUIConfig.Validate(); err != nil {
		return fmt.Errorf("tui配置错误: %v", err)
	}

	// 验证服务配置，同时校验日出日落格式
	if err := config.ServerConfig.Validate(); err != nil {
		return fmt.Errorf("服务配置错误: %v", err)
	}

	if _, err := parseLogLevel(config.LogLevel); err != nil {
		return err
	}

	return nil
}
