// Package config provides YAML-based prototype configuration loading and
// difficulty management for the prototype lab.
package config

// SurvivorsConfig contains all configuration for the survivors prototype.
type SurvivorsConfig struct {
	World      SurvivorsWorld   `yaml:"world"`
	Player     SurvivorsPlayer  `yaml:"player"`
	Sword      SurvivorsSword   `yaml:"sword"`
	Monsters   SurvivorsMonster `yaml:"monsters"`
	Pickups    SurvivorsPickup  `yaml:"pickups"`
	Waves      SurvivorsWaves   `yaml:"waves"`
	Rocks      SurvivorsRocks   `yaml:"rocks"`
	LevelUp    SurvivorsLevelUp `yaml:"level_up"`
	Camera     CameraConfig     `yaml:"camera"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SurvivorsWorld defines world-wide parameters.
type SurvivorsWorld struct {
	PoolCapacity int     `yaml:"pool_capacity"`
	Tile         float64 `yaml:"tile"`
	ScreenW      float64 `yaml:"screen_w"`      // world units visible horizontally
	ScreenH      float64 `yaml:"screen_h"`      // world units visible vertically
	DespawnScale float64 `yaml:"despawn_scale"` // despawn beyond this many screen extents
	WinAfter     float64 `yaml:"win_after"`     // seconds survived to win; 0 = endless
}

// SurvivorsPlayer defines the player.
type SurvivorsPlayer struct {
	Size          float64 `yaml:"size"`
	Speed         float64 `yaml:"speed"`
	Health        float64 `yaml:"health"`
	ExperienceMax float64 `yaml:"experience_max"`
}

// SurvivorsSword defines the player-attached melee weapon.
type SurvivorsSword struct {
	Length    float64 `yaml:"length"`
	Thickness float64 `yaml:"thickness"`
	Power     float64 `yaml:"power"`
}

// SurvivorsMonster defines the horde.
type SurvivorsMonster struct {
	Initial      int     `yaml:"initial"`
	Size         float64 `yaml:"size"`
	Speed        float64 `yaml:"speed"`
	Health       float64 `yaml:"health"`
	Power        float64 `yaml:"power"`
	DropChance   float64 `yaml:"drop_chance"`
	SpawnMinTile int     `yaml:"spawn_min_tiles"`
	SpawnMaxTile int     `yaml:"spawn_max_tiles"`
}

// SurvivorsPickup defines experience pickups.
type SurvivorsPickup struct {
	Size       float64 `yaml:"size"`
	Experience float64 `yaml:"experience"`
}

// SurvivorsWaves defines the once-per-interval spawn burst.
type SurvivorsWaves struct {
	Enabled      bool    `yaml:"enabled"`
	Interval     float64 `yaml:"interval"` // seconds
	Monsters     int     `yaml:"monsters"`
	Bullets      int     `yaml:"bullets"`
	BulletSpeed  float64 `yaml:"bullet_speed"`
	BulletPower  float64 `yaml:"bullet_power"`
	BulletSize   float64 `yaml:"bullet_size"`
	BulletLife   float64 `yaml:"bullet_life"` // seconds
	MaxPopulated int     `yaml:"max_populated"`
}

// SurvivorsRocks defines the perlin-noise rock scatter.
type SurvivorsRocks struct {
	Enabled   bool    `yaml:"enabled"`
	Radius    int     `yaml:"radius"` // tiles around the origin
	Threshold float64 `yaml:"threshold"`
	Alpha     float64 `yaml:"alpha"`
	Beta      float64 `yaml:"beta"`
	Octaves   int32   `yaml:"octaves"`
	ClearZone int     `yaml:"clear_zone"` // tiles kept free around spawn
}

// SurvivorsLevelUp defines growth on a full experience bar.
type SurvivorsLevelUp struct {
	ExperienceGrowth float64 `yaml:"experience_growth"`
	HealthGrowth     float64 `yaml:"health_growth"`
	SwordGrowth      float64 `yaml:"sword_growth"`
}

// CameraConfig defines follow and shake.
type CameraConfig struct {
	FollowRate float64 `yaml:"follow_rate"`
	MaxShake   float64 `yaml:"max_shake"`
	HitShake   float64 `yaml:"hit_shake"`
	CellW      float64 `yaml:"cell_w"` // world units per terminal column
	CellH      float64 `yaml:"cell_h"` // world units per terminal row
}

// BattleConfig contains all configuration for the battle prototype.
type BattleConfig struct {
	Party    []CombatantConfig `yaml:"party"`
	Monsters []CombatantConfig `yaml:"monsters"`
	Actions  []ActionConfig    `yaml:"actions"`
	Items    map[string]int    `yaml:"items"`
	Commands BattleCommands    `yaml:"commands"`
}

// CombatantConfig describes one party member or monster.
type CombatantConfig struct {
	Name       string             `yaml:"name"`
	Health     float64            `yaml:"health"`
	Mana       float64            `yaml:"mana"`
	TimeMax    float64            `yaml:"time_max"`
	TimeRate   float64            `yaml:"time_rate"`
	Stats      map[string]float64 `yaml:"stats"`
	Resists    map[string]float64 `yaml:"resists"`
	Invincible bool               `yaml:"invincible"`
}

// ActionConfig describes one entry of the action library.
type ActionConfig struct {
	Name       string  `yaml:"name"`
	Kind       string  `yaml:"kind"`
	Element    string  `yaml:"element"`
	BaseDamage float64 `yaml:"base_damage"`
	ScaleStat  string  `yaml:"scale_stat"`
	TargetStat string  `yaml:"target_stat"`
	TimeCost   float64 `yaml:"time_cost"`
	ManaCost   float64 `yaml:"mana_cost"`
	HealthCost float64 `yaml:"health_cost"`
	Heal       float64 `yaml:"heal"`
	Mana       float64 `yaml:"mana"` // restored by items
}

// BattleCommands binds menu commands to library actions.
type BattleCommands struct {
	Attack        string `yaml:"attack"`
	Defend        string `yaml:"defend"`
	MonsterAttack string `yaml:"monster_attack"`
}

// MazeConfig contains all configuration for the maze prototype.
type MazeConfig struct {
	Grid    MazeGrid     `yaml:"grid"`
	Player  MazeActor    `yaml:"player"`
	Monster MazeMonster  `yaml:"monster"`
	Sword   MazeSword    `yaml:"sword"`
	Camera  CameraConfig `yaml:"camera"`
}

// MazeGrid defines the maze dimensions.
type MazeGrid struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	Tile         float64 `yaml:"tile"`
	Wall         float64 `yaml:"wall"`
	PoolCapacity int     `yaml:"pool_capacity"`
}

// MazeActor defines a moving maze entity.
type MazeActor struct {
	Size  float64 `yaml:"size"`
	Speed float64 `yaml:"speed"`
	TileX int     `yaml:"tile_x"`
	TileY int     `yaml:"tile_y"`
}

// MazeMonster defines the wandering monster.
type MazeMonster struct {
	MazeActor  `yaml:",inline"`
	ProbeTiles float64 `yaml:"probe_tiles"` // wall probe length in tiles
}

// MazeSword defines the sword powerup.
type MazeSword struct {
	Size  float64 `yaml:"size"`
	TileX int     `yaml:"tile_x"`
	TileY int     `yaml:"tile_y"`
}

// SandboxConfig contains all configuration for the sandbox prototype.
type SandboxConfig struct {
	Tile        float64      `yaml:"tile"`
	PlayerSpeed float64      `yaml:"player_speed"`
	Citizens    int          `yaml:"citizens"`
	TileRadiusX int          `yaml:"tile_radius_x"`
	TileRadiusY int          `yaml:"tile_radius_y"`
	Camera      CameraConfig `yaml:"camera"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "score", "time", or "none"
	MaxAt float64 `yaml:"max_at"` // score or seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // added to monster speed at max difficulty
	WaveMultiplier   float64 `yaml:"wave_multiplier"`   // added to wave size at max difficulty
	HealthMultiplier float64 `yaml:"health_multiplier"` // added to monster health at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
