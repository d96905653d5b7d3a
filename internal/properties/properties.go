package properties

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Load reads the first .env file found among paths. Missing files are not an
// error, the process environment is used as is.
func Load(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env", "../.env", "../../.env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err == nil {
			log.WithField("file", p).Debug("loaded environment file")
			return
		}
	}
}

func envOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		return fallback
	}
	return i
}

func RootPath() string {
	return envOrDefault("ROOT_PATH", ".")
}

// OutputDir is the default destination store directory.
func OutputDir() string {
	return envOrDefault("LST_OUTPUT_DIR", filepath.Join(RootPath(), "data", "result"))
}

func CacheDir() string {
	return envOrDefault("LST_CACHE_DIR", filepath.Join(RootPath(), "data", "cache"))
}

// Workers bounds the per-pixel worker pool and reduction fan-out.
func Workers() int {
	return envOrDefaultInt("LST_WORKERS", runtime.NumCPU())
}

func LogLevel() log.Level {
	level, err := log.ParseLevel(envOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

type Color struct {
	R, G, B uint8
}

// ColorMap holds the quicklook ramp stops, from low to high values.
var ColorMap = map[string]Color{
	"low":    {0, 0, 255},
	"mid":    {0, 255, 0},
	"high":   {255, 0, 0},
	"nodata": {0, 0, 0},
}

func DiscordErrorNotificationUrl() string {
	return os.Getenv("DISCORD_ERROR_NOTIFICATION_URL")
}
func DiscordSuccessNotificationUrl() string {
	return os.Getenv("DISCORD_SUCCESS_NOTIFICATION_URL")
}

// ScenesDir holds one folder per Landsat scene.
func ScenesDir() string {
	return envOrDefault("LST_SCENES_DIR", filepath.Join(RootPath(), "data", "scenes"))
}

// MasksDir holds the GeoJSON clip areas, one per file.
func MasksDir() string {
	return envOrDefault("LST_MASKS_DIR", filepath.Join(RootPath(), "data", "geojsons"))
}
