// Package config loads and validates the feed filter configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/bnema/activity-feed-filter/internal/models"
)

// DefaultPath is where init writes the config and where it is looked up first
const DefaultPath = "./configs/feed_filter.toml"

// EnvConfigPath names the environment variable that may point at a config file
const EnvConfigPath = "FEEDFILTER_CONFIG"

// ValidationError lists every problem found in a configuration
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "filtering disabled due to configuration errors: " + strings.Join(e.Messages, ", ")
}

// SetDefaults registers the default value of every option
func SetDefaults(v *viper.Viper) {
	v.SetDefault("remove.uncommented", false)
	v.SetDefault("remove.unliked", false)
	v.SetDefault("remove.text", false)
	v.SetDefault("remove.images", false)
	v.SetDefault("remove.gifs", false)
	v.SetDefault("remove.videos", false)
	v.SetDefault("remove.contains_strings", []any{})

	v.SetDefault("options.target_load_count", 2)
	v.SetDefault("options.case_sensitive", false)
	v.SetDefault("options.reverse_conditions", false)
	v.SetDefault("options.linked_conditions", []any{})

	v.SetDefault("run_on.home", true)
	v.SetDefault("run_on.social", true)
	v.SetDefault("run_on.profile", false)
	v.SetDefault("run_on.guest_home", false)
}

// Configure points v at the config file. An explicit path wins, then
// FEEDFILTER_CONFIG (which may come from a .env file), then the default
// locations.
func Configure(v *viper.Viper, cfgFile string) {
	// A missing .env is fine
	_ = godotenv.Load()

	if cfgFile == "" {
		cfgFile = os.Getenv(EnvConfigPath)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("feed_filter")
		v.SetConfigType("toml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	SetDefaults(v)
}

// Read loads the config file if there is one. A missing file leaves the defaults.
func Read(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// Load validates the current settings of v and decodes them into a Config
func Load(v *viper.Viper) (*models.Config, error) {
	if msgs := Validate(v.AllSettings()); len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	var cfg models.Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(GroupsHook())); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

var (
	termGroupsType   = reflect.TypeOf(models.TermGroups{})
	linkedGroupsType = reflect.TypeOf(models.LinkedGroups{})
)

// GroupsHook normalises the mixed string/list shapes accepted for
// contains_strings and linked_conditions
func GroupsHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		switch to {
		case termGroupsType:
			return models.NormalizeTermGroups(data)
		case linkedGroupsType:
			return models.NormalizeLinkedGroups(data)
		}
		return data, nil
	}
}

// WriteDefault writes DefaultTOML to path, refusing to overwrite an existing file
func WriteDefault(fs afero.Fs, path string) error {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("config file already exists: %s", path)
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return afero.WriteFile(fs, path, []byte(DefaultTOML), 0644)
}

// DefaultTOML is the commented configuration written by init
const DefaultTOML = `# Activity feed filter configuration

[remove]
images = false        # Remove activities with images
gifs = false          # Remove activities with gifs
videos = false        # Remove activities with videos
text = false          # Remove activities with only text
uncommented = false   # Remove activities without comments
unliked = false       # Remove activities without likes
# Remove activities containing these strings. A nested list must match as a whole:
# contains_strings = ["spoiler", ["season 2", "leak"]]
contains_strings = []

[options]
target_load_count = 2        # Minimum number of activities to keep per "Load More" click
case_sensitive = false       # Case-sensitive matching for contains_strings
reverse_conditions = false   # Keep only activities that meet every configured condition
# Conditions checked together instead of independently:
# linked_conditions = [["images", "unliked"], ["videos", "uncommented"]]
linked_conditions = []

[run_on]
home = true          # Home feed
social = true        # "Recent Activity" of anime/manga entries
profile = false      # User profile feeds
guest_home = false   # Home feed for visitors that are not logged in
`
