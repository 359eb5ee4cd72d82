package config

import (
	_ "embed"
)

//go:embed defaults/survivors.yaml
var defaultSurvivorsYAML []byte

//go:embed defaults/battle.yaml
var defaultBattleYAML []byte

//go:embed defaults/maze.yaml
var defaultMazeYAML []byte

//go:embed defaults/sandbox.yaml
var defaultSandboxYAML []byte

// DefaultSurvivorsConfig returns the default survivors configuration.
func DefaultSurvivorsConfig() SurvivorsConfig {
	return SurvivorsConfig{
		World: SurvivorsWorld{
			PoolCapacity: 4096,
			Tile:         16,
			ScreenW:      240,
			ScreenH:      135,
			DespawnScale: 2,
			WinAfter:     600,
		},
		Player: SurvivorsPlayer{
			Size:          8,
			Speed:         150,
			Health:        100,
			ExperienceMax: 100,
		},
		Sword: SurvivorsSword{
			Length:    35,
			Thickness: 2,
			Power:     500,
		},
		Monsters: SurvivorsMonster{
			Initial:      10,
			Size:         8,
			Speed:        25,
			Health:       50,
			Power:        100,
			DropChance:   0.2,
			SpawnMinTile: 5,
			SpawnMaxTile: 15,
		},
		Pickups: SurvivorsPickup{
			Size:       4,
			Experience: 50,
		},
		Waves: SurvivorsWaves{
			Enabled:      true,
			Interval:     1.0,
			Monsters:     40,
			Bullets:      15,
			BulletSpeed:  250,
			BulletPower:  500,
			BulletSize:   2,
			BulletLife:   2.0,
			MaxPopulated: 3500,
		},
		Rocks: SurvivorsRocks{
			Enabled:   true,
			Radius:    30,
			Threshold: 0.3,
			Alpha:     2,
			Beta:      2,
			Octaves:   3,
			ClearZone: 4,
		},
		LevelUp: SurvivorsLevelUp{
			ExperienceGrowth: 1.1,
			HealthGrowth:     1.05,
			SwordGrowth:      1.01,
		},
		Camera: CameraConfig{
			FollowRate: 10,
			MaxShake:   3,
			HitShake:   0.1,
			CellW:      3,
			CellH:      6,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 300, // 5 minutes
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  1.0,
				WaveMultiplier:   0.5,
				HealthMultiplier: 1.0,
			},
		},
	}
}

type stats = map[string]float64

// DefaultBattleConfig returns the default battle configuration.
func DefaultBattleConfig() BattleConfig {
	return BattleConfig{
		Party: []CombatantConfig{
			{Name: "Knight", Health: 120, Mana: 10, TimeMax: 100, TimeRate: 30,
				Stats:   stats{"str": 25, "dex": 10, "con": 18, "int": 4, "wis": 6, "cha": 8},
				Resists: stats{"physical": 2}},
			{Name: "Mage", Health: 70, Mana: 60, TimeMax: 100, TimeRate: 35,
				Stats:   stats{"str": 6, "dex": 12, "con": 8, "int": 26, "wis": 14, "cha": 10},
				Resists: stats{"fire": 3, "ice": 3}},
			{Name: "Cleric", Health: 90, Mana: 40, TimeMax: 100, TimeRate: 25,
				Stats:   stats{"str": 12, "dex": 8, "con": 12, "int": 10, "wis": 24, "cha": 14},
				Resists: stats{"holy": 5, "dark": 2}},
		},
		Monsters: []CombatantConfig{
			{Name: "Goblin", Health: 60, TimeMax: 100, TimeRate: 28,
				Stats: stats{"str": 14, "dex": 16, "con": 10}},
			{Name: "Wolf", Health: 50, TimeMax: 100, TimeRate: 40,
				Stats:   stats{"str": 12, "dex": 22, "con": 8},
				Resists: stats{"ice": 4}},
			{Name: "Ogre", Health: 160, TimeMax: 100, TimeRate: 15,
				Stats:   stats{"str": 26, "dex": 4, "con": 20, "int": 2},
				Resists: stats{"physical": 3, "fire": -2}},
		},
		Actions: []ActionConfig{
			{Name: "Slash", Kind: "attack", Element: "physical", BaseDamage: 5, ScaleStat: "str", TargetStat: "con"},
			{Name: "Guard", Kind: "defend", TimeCost: 50},
			{Name: "Claw", Kind: "attack", Element: "physical", BaseDamage: 4, ScaleStat: "str", TargetStat: "con"},
			{Name: "Fire", Kind: "magic", Element: "fire", BaseDamage: 10, ScaleStat: "int", TargetStat: "wis", ManaCost: 8},
			{Name: "Frost", Kind: "magic", Element: "ice", BaseDamage: 8, ScaleStat: "int", TargetStat: "wis", TimeCost: 20, ManaCost: 5},
			{Name: "Smite", Kind: "magic", Element: "holy", BaseDamage: 6, ScaleStat: "wis", TargetStat: "wis", ManaCost: 6, HealthCost: 5},
			{Name: "Potion", Kind: "item", Heal: 40},
			{Name: "Ether", Kind: "item", Mana: 25, TimeCost: 60},
		},
		Items: map[string]int{"Potion": 3, "Ether": 2},
		Commands: BattleCommands{
			Attack:        "Slash",
			Defend:        "Guard",
			MonsterAttack: "Claw",
		},
	}
}

// DefaultMazeConfig returns the default maze configuration.
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		Grid: MazeGrid{
			Width:        16,
			Height:       16,
			Tile:         19,
			Wall:         1,
			PoolCapacity: 1024,
		},
		Player: MazeActor{Size: 8, Speed: 100},
		Monster: MazeMonster{
			MazeActor:  MazeActor{Size: 8, Speed: 25, TileX: 3, TileY: 4},
			ProbeTiles: 5,
		},
		Sword: MazeSword{Size: 6, TileX: 1, TileY: 1},
		Camera: CameraConfig{
			FollowRate: 30,
			CellW:      2,
			CellH:      4,
		},
	}
}

// DefaultSandboxConfig returns the default sandbox configuration.
func DefaultSandboxConfig() SandboxConfig {
	return SandboxConfig{
		Tile:        16,
		PlayerSpeed: 100,
		Citizens:    4,
		TileRadiusX: 40,
		TileRadiusY: 30,
		Camera: CameraConfig{
			FollowRate: 10,
			CellW:      2,
			CellH:      4,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a prototype.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "survivors":
		return defaultSurvivorsYAML
	case "battle":
		return defaultBattleYAML
	case "maze":
		return defaultMazeYAML
	case "sandbox":
		return defaultSandboxYAML
	default:
		return nil
	}
}
