package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// load resolves a prototype config.
// Search order: customPath -> ~/.protolab/configs/<id>.yaml -> ./configs/<id>.yaml -> embedded default -> hardcoded.
// Unreadable or malformed files below customPath are skipped silently.
func load[T any](id, customPath string, fallback func() T) (T, error) {
	var cfg T

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := id + ".yaml"

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			var user T
			if err := yaml.Unmarshal(data, &user); err == nil {
				return user, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		var local T
		if err := yaml.Unmarshal(data, &local); err == nil {
			return local, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(GetDefaultYAML(id), &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadSurvivors loads the survivors configuration.
func LoadSurvivors(customPath string) (SurvivorsConfig, error) {
	return load("survivors", customPath, DefaultSurvivorsConfig)
}

// LoadBattle loads the battle configuration.
func LoadBattle(customPath string) (BattleConfig, error) {
	return load("battle", customPath, DefaultBattleConfig)
}

// LoadMaze loads the maze configuration.
func LoadMaze(customPath string) (MazeConfig, error) {
	return load("maze", customPath, DefaultMazeConfig)
}

// LoadSandbox loads the sandbox configuration.
func LoadSandbox(customPath string) (SandboxConfig, error) {
	return load("sandbox", customPath, DefaultSandboxConfig)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".protolab", "configs", filename)
}

// ApplySurvivorsPreset modifies the config based on a difficulty preset.
func ApplySurvivorsPreset(cfg *SurvivorsConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Player.Health = 150
		cfg.Waves.Monsters = cfg.Waves.Monsters / 2
	case DifficultyHard:
		cfg.Player.Health = 75
		cfg.Monsters.Power = cfg.Monsters.Power * 1.5
	}
}

// ApplyBattlePreset scales the monster party for a difficulty preset.
func ApplyBattlePreset(cfg *BattleConfig, preset DifficultyPreset) {
	scale := 1.0
	switch preset {
	case DifficultyEasy:
		scale = 0.75
	case DifficultyHard:
		scale = 1.5
	}
	for i := range cfg.Monsters {
		cfg.Monsters[i].Health *= scale
	}
}
