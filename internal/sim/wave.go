package sim

// Arena is the visible playfield in world units, origin top-left
type Arena struct {
	W, H float64
}

// MinDim returns min(W, H); distance bands scale with it
func (a Arena) MinDim() float64 {
	if a.W < a.H {
		return a.W
	}
	return a.H
}

// ScalingTier is the stepwise difficulty step: floor(wave / ScalingStep).
// Stats plateau between boss waves.
func (c *Config) ScalingTier(wave int) int {
	if wave < 0 || c.ScalingStep <= 0 {
		return 0
	}
	return wave / c.ScalingStep
}

// IsBossWave reports whether the wave opens with a boss
func (c *Config) IsBossWave(wave int) bool {
	return c.BossWaveEvery > 0 && wave > 0 && wave%c.BossWaveEvery == 0
}

// BossCannons is the number of simultaneous boss shots for the wave
func (c *Config) BossCannons(wave int) int {
	n := c.BossCannonsBase + c.ScalingTier(wave)
	if n < 1 {
		n = 1
	}
	if n > c.BossCannonsMax {
		n = c.BossCannonsMax
	}
	return n
}

// BossReload is the boss reload cadence in ticks for the wave
func (c *Config) BossReload(wave int) int {
	r := c.BossReloadBase - c.BossReloadStep*(c.ScalingTier(wave)-1)
	if r > c.BossReloadBase {
		r = c.BossReloadBase
	}
	if r < c.BossReloadMin {
		r = c.BossReloadMin
	}
	return r
}

// EnemiesInWave returns how many enemies the director spawns for the wave
func (c *Config) EnemiesInWave(wave int) int {
	if wave < 1 {
		wave = 1
	}
	if c.IsBossWave(wave) {
		return 1 + c.BossEscortStep*c.ScalingTier(wave)
	}
	return c.WaveBaseEnemies + c.WaveEnemiesStep*(wave-1)
}

// SpawnInterval returns ticks between spawns for the wave
func (c *Config) SpawnInterval(wave int) int {
	n := c.SpawnEvery - c.SpawnEveryStep*(wave-1)
	if n < c.SpawnEveryMin {
		n = c.SpawnEveryMin
	}
	return n
}

// EnemyStats returns the wave-scaled base stats for a type
func (c *Config) EnemyStats(t EnemyType, wave int) (hp, speed, size float64) {
	tier := float64(c.ScalingTier(wave))
	switch t {
	case EnemyGunboat:
		return c.GunboatHP + c.HPStep*tier, c.GunboatSpeed + c.SpeedStep*tier, c.GunboatSize
	case EnemySerpent:
		return c.SerpentHP + 2*c.HPStep*tier, c.SerpentSpeed + c.SpeedStep*tier, c.SerpentSize
	case EnemyBoss:
		return c.BossHP + c.BossHPStep*tier, c.BossSpeed, c.BossSize
	default:
		return c.RaftHP + c.HPStep*tier, c.RaftSpeed + c.SpeedStep*tier, c.RaftSize
	}
}

// Reward returns the gold granted for destroying a type on the given wave
func (c *Config) Reward(t EnemyType, wave int) int {
	switch t {
	case EnemyGunboat:
		return c.GunboatReward
	case EnemySerpent:
		return c.SerpentReward
	case EnemyBoss:
		return c.BossReward + c.BossRewardStep*c.ScalingTier(wave)
	default:
		return c.RaftReward
	}
}

// Director paces enemy spawns for the current wave
type Director struct {
	Wave       int
	ToSpawn    int
	SpawnTimer int
	Active     bool
}

// pickType chooses the next enemy type for a normal wave
func (w *World) pickType() EnemyType {
	c := &w.cfg
	wave := w.director.Wave
	if c.IsBossWave(wave) && w.director.ToSpawn == c.EnemiesInWave(wave) {
		return EnemyBoss
	}
	if c.IsBossWave(wave) {
		return EnemyRaft
	}
	pool := []EnemyType{EnemyRaft, EnemyRaft}
	if wave >= c.GunboatFromWave {
		pool = append(pool, EnemyGunboat)
	}
	if wave >= c.SerpentFromWave {
		pool = append(pool, EnemySerpent)
	}
	return pool[w.rng.Intn(len(pool))]
}

// StartWave arms the director for the given wave number
func (w *World) StartWave(wave int) {
	if wave < 1 {
		wave = 1
	}
	w.director = Director{
		Wave:    wave,
		ToSpawn: w.cfg.EnemiesInWave(wave),
		Active:  true,
	}
	w.emit(Event{Kind: EvtWaveStarted, Wave: wave})
}

// stepDirector spawns at most one enemy per tick and detects wave clear
func (w *World) stepDirector() {
	d := &w.director
	if !d.Active || w.ship.Sinking {
		return
	}
	if d.ToSpawn > 0 {
		d.SpawnTimer--
		if d.SpawnTimer <= 0 && w.liveEnemies() < w.cfg.MaxEnemiesOnline {
			e := NewEnemy(w.pickType(), w.arena, d.Wave, &w.cfg, w.rng)
			w.addEnemy(e)
			d.ToSpawn--
			d.SpawnTimer = w.cfg.SpawnInterval(d.Wave)
		}
		return
	}
	if w.liveEnemies() == 0 {
		d.Active = false
		w.emit(Event{Kind: EvtWaveCleared, Wave: d.Wave})
	}
}
