// Package metadata extracts calibration constants from Landsat 8 MTL files.
package metadata

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/forest-guardian/landsat-lst/internal/cache"
	log "github.com/sirupsen/logrus"
)

var (
	ErrMissingKey     = errors.New("required key missing")
	ErrMalformedValue = errors.New("malformed value")
)

// ParseError is returned for any metadata file that lacks a required key or
// carries a value that cannot be used.
type ParseError struct {
	Key  Key
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("metadata %s (line %d): %v", e.Key, e.Line, e.Err)
	}
	return fmt.Sprintf("metadata %s: %v", e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type assignment struct {
	value string
	line  int
}

// Parse reads KEY = VALUE lines. Keys are compared for exact equality, so
// K1_CONSTANT_BAND_1 never matches a K1_CONSTANT_BAND_10 line. The first
// assignment of a key wins.
func Parse(r io.Reader) (*CalibrationConstants, error) {
	wanted := make(map[Key]bool, len(Keys))
	for _, k := range Keys {
		wanted[k] = true
	}

	found := make(map[Key]assignment, len(Keys))
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		name, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			continue
		}
		key := Key(strings.TrimSpace(name))
		if !wanted[key] {
			continue
		}
		if _, seen := found[key]; seen {
			continue
		}
		found[key] = assignment{value: strings.TrimSpace(value), line: lineNo}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	c := &CalibrationConstants{Values: make(map[Key]float64, len(Keys)-2)}
	for _, k := range Keys {
		a, ok := found[k]
		if !ok {
			return nil, &ParseError{Key: k, Err: ErrMissingKey}
		}
		if a.value == "" {
			return nil, &ParseError{Key: k, Line: a.line, Err: ErrMalformedValue}
		}

		switch k {
		case DateAcquired:
			c.DateAcquired = cleanDate(a.value)
		case SceneCenterTime:
			c.SceneCenterTime = cleanTime(a.value)
		default:
			v, err := strconv.ParseFloat(a.value, 64)
			if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
				err = errors.New("not finite")
			}
			if err != nil {
				return nil, &ParseError{Key: k, Line: a.line, Err: fmt.Errorf("%w: %q", ErrMalformedValue, a.value)}
			}
			c.Values[k] = v
		}
	}
	return c, nil
}

// cleanDate turns 2020-04-03 into 20200403.
func cleanDate(v string) string {
	return strings.ReplaceAll(v, "-", "")
}

// cleanTime turns "18:44:57.1234560Z" into 184457.
func cleanTime(v string) string {
	v = strings.Trim(v, `"`)
	if i := strings.Index(v, "."); i >= 0 {
		v = v[:i]
	}
	v = strings.TrimSuffix(v, "Z")
	return strings.ReplaceAll(v, ":", "")
}

func ParseFile(path string) (*CalibrationConstants, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata file %s: %w", path, err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return c, nil
}

// Load parses path through the cache. Entries are keyed on the file path,
// size and modification time so an edited file is parsed again.
func Load(path string, c cache.CacheService[CalibrationConstants]) (*CalibrationConstants, error) {
	if c == nil {
		return ParseFile(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat metadata file %s: %w", path, err)
	}
	key := c.GenerateKey(path, info.Size(), info.ModTime().UnixNano())
	if cached, ok := c.Get(key); ok && cached.complete() {
		log.WithField("metadata", path).Debug("calibration constants loaded from cache")
		return &cached, nil
	}

	constants, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	if err := c.Set(key, *constants); err != nil {
		log.WithError(err).Warn("failed to cache calibration constants")
	}
	return constants, nil
}

func (c *CalibrationConstants) complete() bool {
	if c.DateAcquired == "" || c.SceneCenterTime == "" {
		return false
	}
	for _, k := range Keys {
		if k == DateAcquired || k == SceneCenterTime {
			continue
		}
		if _, ok := c.Values[k]; !ok {
			return false
		}
	}
	return true
}
