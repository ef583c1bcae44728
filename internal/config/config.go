// Package config loads tool settings from a JSON config file via viper.
// Every key has a default, so a missing file is not an error.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// SceneConfig holds scene backend settings.
type SceneConfig struct {
	Backend        string `json:"backend" mapstructure:"backend"`
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
	DSN            string `json:"dsn" mapstructure:"dsn"`
}

// MarkerConfig holds marker sphere settings.
type MarkerConfig struct {
	Radius       float64 `json:"radius" mapstructure:"radius"`
	Subdivisions int     `json:"subdivisions" mapstructure:"subdivisions"`
}

// Load reads maya_mocap.cfg.json from configDir and sets default values.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "")

	viper.SetDefault("scene.backend", "script")
	viper.SetDefault("scene.outputDir", ".")
	viper.SetDefault("scene.compressOutput", false)
	viper.SetDefault("scene.dsn", "")

	viper.SetDefault("marker.radius", 0.03)
	viper.SetDefault("marker.subdivisions", 20)

	viper.SetDefault("playback.speed", 1.0)

	viper.SetConfigName("maya_mocap.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat returns a float config value.
func GetFloat(key string) float64 {
	return viper.GetFloat64(key)
}

// GetSceneConfig returns the scene backend settings.
func GetSceneConfig() SceneConfig {
	return SceneConfig{
		Backend:        viper.GetString("scene.backend"),
		OutputDir:      viper.GetString("scene.outputDir"),
		CompressOutput: viper.GetBool("scene.compressOutput"),
		DSN:            viper.GetString("scene.dsn"),
	}
}

// GetMarkerConfig returns the marker sphere settings.
func GetMarkerConfig() MarkerConfig {
	return MarkerConfig{
		Radius:       viper.GetFloat64("marker.radius"),
		Subdivisions: viper.GetInt("marker.subdivisions"),
	}
}
