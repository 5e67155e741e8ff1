package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFloors   = 6
	DefaultLifts    = 2
	DefaultCapacity = 10
	DefaultTicks    = 10

	envFloors       = "LIFTSIM_FLOORS"
	envLifts        = "LIFTSIM_LIFTS"
	envCapacity     = "LIFTSIM_CAPACITY"
	envTicks        = "LIFTSIM_TICKS"
	envTickInterval = "LIFTSIM_TICK_INTERVAL"
)

// Config describes the building and how long the demo driver runs.
// Floors, Lifts and Capacity are fixed once a dispatcher is built from it.
type Config struct {
	Floors       int           `yaml:"Floors"`
	Lifts        int           `yaml:"Lifts"`
	Capacity     int           `yaml:"Capacity"`
	Ticks        int           `yaml:"Ticks"`
	TickInterval time.Duration `yaml:"TickInterval"`
	Events       []Event       `yaml:"Events"`
}

type EventKind string

const (
	HallCall EventKind = "hall"
	CarCall  EventKind = "car"
)

// Event is one scripted call the demo driver plays once Tick ticks have
// been processed. Tick 0 events are played before the first tick.
type Event struct {
	Tick  int       `yaml:"Tick"`
	Kind  EventKind `yaml:"Kind"`
	Floor int       `yaml:"Floor"`
	Dir   string    `yaml:"Dir,omitempty"`  // hall calls: U or D
	Lift  int       `yaml:"Lift,omitempty"` // car calls
}

func Default() Config {
	return Config{
		Floors:   DefaultFloors,
		Lifts:    DefaultLifts,
		Capacity: DefaultCapacity,
		Ticks:    DefaultTicks,
		Events: []Event{
			{Tick: 0, Kind: HallCall, Floor: DefaultFloors - 1, Dir: "U"},
		},
	}
}

// Load decodes a YAML file on top of the defaults. Keys missing from the
// file keep their default value.
func Load(path string) (Config, error) {
	c := Default()
	file, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return c, fmt.Errorf("decode config %s: %w", path, err)
	}
	return c, c.Validate()
}

// ApplyEnv overrides c with values from envFile (if non-empty) and then from
// the process environment, which wins over the file.
func ApplyEnv(c Config, envFile string) (Config, error) {
	values := map[string]string{}
	if envFile != "" {
		fileValues, err := godotenv.Read(envFile)
		if err != nil {
			return c, fmt.Errorf("read env file: %w", err)
		}
		values = fileValues
	}
	for _, key := range []string{envFloors, envLifts, envCapacity, envTicks, envTickInterval} {
		if v, ok := os.LookupEnv(key); ok {
			values[key] = v
		}
	}

	ints := map[string]*int{
		envFloors:   &c.Floors,
		envLifts:    &c.Lifts,
		envCapacity: &c.Capacity,
		envTicks:    &c.Ticks,
	}
	for key, field := range ints {
		v, ok := values[key]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("%s: %w", key, err)
		}
		*field = n
	}
	if v, ok := values[envTickInterval]; ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return c, fmt.Errorf("%s: %w", envTickInterval, err)
		}
		c.TickInterval = d
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Floors < 1 {
		errs = append(errs, fmt.Errorf("floors must be at least 1, got %d", c.Floors))
	}
	if c.Lifts < 1 {
		errs = append(errs, fmt.Errorf("lifts must be at least 1, got %d", c.Lifts))
	}
	if c.Capacity < 1 {
		errs = append(errs, fmt.Errorf("capacity must be at least 1, got %d", c.Capacity))
	}
	if c.Ticks < 0 {
		errs = append(errs, fmt.Errorf("ticks must not be negative, got %d", c.Ticks))
	}
	if c.TickInterval < 0 {
		errs = append(errs, fmt.Errorf("tick interval must not be negative, got %s", c.TickInterval))
	}
	for i, e := range c.Events {
		if e.Tick < 0 {
			errs = append(errs, fmt.Errorf("event %d: tick must not be negative, got %d", i, e.Tick))
		}
		switch e.Kind {
		case HallCall:
			if e.Dir != "U" && e.Dir != "D" {
				errs = append(errs, fmt.Errorf("event %d: hall call direction must be U or D, got %q", i, e.Dir))
			}
		case CarCall:
		default:
			errs = append(errs, fmt.Errorf("event %d: unknown kind %q", i, e.Kind))
		}
	}
	return errors.Join(errs...)
}
