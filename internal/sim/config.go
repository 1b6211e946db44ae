package sim

// Config holds every tunable of the combat core. Values are per tick unless
// the name says otherwise; the host steps one tick per animation frame.
type Config struct {
	// Contact / shared damage
	ContactDamage  float64 `json:"contactDamage"`
	ContactMargin  float64 `json:"contactMargin"`
	BossContactCD  int     `json:"bossContactCd"`
	EdgeNudge      float64 `json:"edgeNudge"`
	EdgeNudgeZone  float64 `json:"edgeNudgeZone"`
	DriftSpeed     float64 `json:"driftSpeed"`
	SpawnMargin    float64 `json:"spawnMargin"`
	FarEdgeMargin  float64 `json:"farEdgeMargin"`
	ScalingStep    int     `json:"scalingStep"`
	SideSpawnDepth float64 `json:"sideSpawnDepth"`

	// Raft
	RaftHP     float64 `json:"raftHp"`
	RaftSpeed  float64 `json:"raftSpeed"`
	RaftSize   float64 `json:"raftSize"`
	RaftReward int     `json:"raftReward"`

	// Gunboat
	GunboatHP        float64 `json:"gunboatHp"`
	GunboatSpeed     float64 `json:"gunboatSpeed"`
	GunboatSize      float64 `json:"gunboatSize"`
	GunboatReward    int     `json:"gunboatReward"`
	GunboatRange     float64 `json:"gunboatRange"`
	GunboatReload    int     `json:"gunboatReload"`
	GunboatEngage    float64 `json:"gunboatEngage"` // fraction of min(W,H)
	GunboatClose     float64 `json:"gunboatClose"`  // fraction of min(W,H)
	GunboatOrbitMult float64 `json:"gunboatOrbitMult"`

	// Serpent
	SerpentHP        float64 `json:"serpentHp"`
	SerpentSpeed     float64 `json:"serpentSpeed"`
	SerpentSize      float64 `json:"serpentSize"`
	SerpentReward    int     `json:"serpentReward"`
	SerpentSwayRate  float64 `json:"serpentSwayRate"`
	SerpentSwayAngle float64 `json:"serpentSwayAngle"`

	// Boss
	BossHP          float64 `json:"bossHp"`
	BossHPStep      float64 `json:"bossHpStep"`
	BossSpeed       float64 `json:"bossSpeed"`
	BossSize        float64 `json:"bossSize"`
	BossReward      int     `json:"bossReward"`
	BossRewardStep  int     `json:"bossRewardStep"`
	BossRange       float64 `json:"bossRange"`
	BossRetreat     float64 `json:"bossRetreat"` // fraction of min(W,H)
	BossRing        float64 `json:"bossRing"`    // fraction of min(W,H)
	BossEdgeMargin  float64 `json:"bossEdgeMargin"`
	BossEdgeGain    float64 `json:"bossEdgeGain"`
	BossTurnEase    float64 `json:"bossTurnEase"`
	BossOutOfBounds float64 `json:"bossOutOfBounds"`
	BossSpawnY      float64 `json:"bossSpawnY"`
	BossCannonSpan  float64 `json:"bossCannonSpan"`

	// Per-step scaling of non-boss stats (applied floor(wave/ScalingStep) times)
	HPStep    float64 `json:"hpStep"`
	SpeedStep float64 `json:"speedStep"`

	// Enemy fire
	EnemyAimJitter  float64 `json:"enemyAimJitter"`
	EnemyAccuracyLo float64 `json:"enemyAccuracyLo"`
	EnemyAccuracyHi float64 `json:"enemyAccuracyHi"`

	// Projectile arcs
	ShotLife          float64 `json:"shotLife"`
	ShotHeight        float64 `json:"shotHeight"`
	PlayerZVel        float64 `json:"playerZVel"`
	PlayerGravity     float64 `json:"playerGravity"`
	EnemyZVel         float64 `json:"enemyZVel"`
	EnemyGravity      float64 `json:"enemyGravity"`
	EnemyShotSize     float64 `json:"enemyShotSize"`
	SkimDamping       float64 `json:"skimDamping"`
	SkimLifePenalty   float64 `json:"skimLifePenalty"`
	FriendlyHitHeight float64 `json:"friendlyHitHeight"`
	EnemyHitHeight    float64 `json:"enemyHitHeight"`
	HitMargin         float64 `json:"hitMargin"`
	ShipHitboxScale   float64 `json:"shipHitboxScale"`
	TrailEvery        int     `json:"trailEvery"`
	TrailMax          int     `json:"trailMax"`

	// Mounts
	CannonReload    int     `json:"cannonReload"`
	CannonFloor     int     `json:"cannonFloor"`
	CannonRange     float64 `json:"cannonRange"`
	CannonDamage    float64 `json:"cannonDamage"`
	CannonSpeed     float64 `json:"cannonSpeed"`
	SwivelReload    int     `json:"swivelReload"`
	SwivelFloor     int     `json:"swivelFloor"`
	SwivelRange     float64 `json:"swivelRange"`
	SwivelDamage    float64 `json:"swivelDamage"`
	SwivelSpeed     float64 `json:"swivelSpeed"`
	ReloadPerCrew   int     `json:"reloadPerCrew"`
	MountCrewCap    int     `json:"mountCrewCap"`
	MountShotHeight float64 `json:"mountShotHeight"`
	MountShotDrop   float64 `json:"mountShotDrop"`

	// Bilge
	CriticalHPFrac float64 `json:"criticalHpFrac"`
	RepairInterval int     `json:"repairInterval"`
	RepairPerCrew  float64 `json:"repairPerCrew"`

	// Main weapon (fling shot)
	MainBaseDamage  float64 `json:"mainBaseDamage"`
	MainLevelDamage float64 `json:"mainLevelDamage"`
	MainMaxSpeed    float64 `json:"mainMaxSpeed"`
	MainCrewSpeed   float64 `json:"mainCrewSpeed"`
	MainCooldown    int     `json:"mainCooldown"`
	MainCrewCD      int     `json:"mainCrewCd"`
	MainMinCooldown int     `json:"mainMinCooldown"`
	MainShotSize    float64 `json:"mainShotSize"`

	// Helm
	HelmGain float64 `json:"helmGain"`

	// Ship
	ShipMaxHP    float64 `json:"shipMaxHp"`
	ShipSinkRate float64 `json:"shipSinkRate"`
	ShipSinkTilt float64 `json:"shipSinkTilt"`

	// Waves
	WaveBaseEnemies  int `json:"waveBaseEnemies"`
	WaveEnemiesStep  int `json:"waveEnemiesStep"`
	SpawnEvery       int `json:"spawnEvery"`
	SpawnEveryStep   int `json:"spawnEveryStep"`
	SpawnEveryMin    int `json:"spawnEveryMin"`
	BossWaveEvery    int `json:"bossWaveEvery"`
	BossEscortStep   int `json:"bossEscortStep"`
	GunboatFromWave  int `json:"gunboatFromWave"`
	SerpentFromWave  int `json:"serpentFromWave"`
	BossCannonsBase  int `json:"bossCannonsBase"`
	BossCannonsMax   int `json:"bossCannonsMax"`
	BossReloadBase   int `json:"bossReloadBase"`
	BossReloadStep   int `json:"bossReloadStep"`
	BossReloadMin    int `json:"bossReloadMin"`
	MaxPlayerShots   int `json:"maxPlayerShots"`
	MaxEnemyShots    int `json:"maxEnemyShots"`
	MaxEnemiesOnline int `json:"maxEnemiesOnline"`
}

// DefaultConfig returns the tuning used by the shipped game
func DefaultConfig() Config {
	return Config{
		ContactDamage:  10,
		ContactMargin:  40,
		BossContactCD:  60,
		EdgeNudge:      0.5,
		EdgeNudgeZone:  20,
		DriftSpeed:     0.1,
		SpawnMargin:    50,
		FarEdgeMargin:  50,
		ScalingStep:    5,
		SideSpawnDepth: 0.6,

		RaftHP:     20,
		RaftSpeed:  0.2,
		RaftSize:   20,
		RaftReward: 10,

		GunboatHP:        30,
		GunboatSpeed:     0.4,
		GunboatSize:      20,
		GunboatReward:    20,
		GunboatRange:     500,
		GunboatReload:    300,
		GunboatEngage:    0.45,
		GunboatClose:     0.25,
		GunboatOrbitMult: 1.5,

		SerpentHP:        60,
		SerpentSpeed:     0.4,
		SerpentSize:      25,
		SerpentReward:    30,
		SerpentSwayRate:  0.05,
		SerpentSwayAngle: 0.5,

		BossHP:          300,
		BossHPStep:      250,
		BossSpeed:       0.3,
		BossSize:        50,
		BossReward:      200,
		BossRewardStep:  100,
		BossRange:       700,
		BossRetreat:     0.25,
		BossRing:        0.4,
		BossEdgeMargin:  150,
		BossEdgeGain:    1.5,
		BossTurnEase:    0.05,
		BossOutOfBounds: 200,
		BossSpawnY:      -80,
		BossCannonSpan:  30,

		HPStep:    10,
		SpeedStep: 0.05,

		EnemyAimJitter:  0.08,
		EnemyAccuracyLo: 0.9,
		EnemyAccuracyHi: 1.1,

		ShotLife:          180,
		ShotHeight:        10,
		PlayerZVel:        4,
		PlayerGravity:     0.15,
		EnemyZVel:         3,
		EnemyGravity:      0.06,
		EnemyShotSize:     4,
		SkimDamping:       0.8,
		SkimLifePenalty:   15,
		FriendlyHitHeight: 20,
		EnemyHitHeight:    10,
		HitMargin:         5,
		ShipHitboxScale:   1.2,
		TrailEvery:        3,
		TrailMax:          12,

		CannonReload:    240,
		CannonFloor:     90,
		CannonRange:     600,
		CannonDamage:    20,
		CannonSpeed:     9,
		SwivelReload:    120,
		SwivelFloor:     45,
		SwivelRange:     400,
		SwivelDamage:    8,
		SwivelSpeed:     11,
		ReloadPerCrew:   30,
		MountCrewCap:    4,
		MountShotHeight: 8,
		MountShotDrop:   0.002,

		CriticalHPFrac: 0.3,
		RepairInterval: 60,
		RepairPerCrew:  1,

		MainBaseDamage:  10,
		MainLevelDamage: 5,
		MainMaxSpeed:    16,
		MainCrewSpeed:   1,
		MainCooldown:    40,
		MainCrewCD:      5,
		MainMinCooldown: 10,
		MainShotSize:    8,

		HelmGain: 0.015,

		ShipMaxHP:    100,
		ShipSinkRate: 0.005,
		ShipSinkTilt: 0.002,

		WaveBaseEnemies:  5,
		WaveEnemiesStep:  2,
		SpawnEvery:       300,
		SpawnEveryStep:   15,
		SpawnEveryMin:    60,
		BossWaveEvery:    5,
		BossEscortStep:   2,
		GunboatFromWave:  2,
		SerpentFromWave:  3,
		BossCannonsBase:  1,
		BossCannonsMax:   6,
		BossReloadBase:   240,
		BossReloadStep:   30,
		BossReloadMin:    90,
		MaxPlayerShots:   200,
		MaxEnemyShots:    200,
		MaxEnemiesOnline: 60,
	}
}
