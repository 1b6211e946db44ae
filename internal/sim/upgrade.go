package sim

// Ship mutators used by the port screen. Pricing lives with the host; these
// only enforce what the hull can physically take.

// AddCrew hires n crew
func (s *Ship) AddCrew(n int) {
	if n > 0 {
		s.Crew += n
	}
}

// AddBilge raises the bilge pump level by one
func (s *Ship) AddBilge() {
	s.BilgeLevel++
}

// InstallMount places a mount of type t on the first free slot that accepts
// it. Returns false when the hull has no room.
func (s *Ship) InstallMount(t MountType) bool {
	idx := s.FreeSlot(t)
	if idx < 0 {
		return false
	}
	s.Mounts = append(s.Mounts, &Mount{SlotIndex: idx})
	return true
}

// HireCaptain enables the auto-helm. Only one captain can be hired.
func (s *Ship) HireCaptain() bool {
	if s.HasCaptain {
		return false
	}
	s.HasCaptain = true
	return true
}

// UpgradeTier moves to the next hull tier. Installed mounts keep their slot
// index; the layouts keep slot types stable so they remain valid.
func (s *Ship) UpgradeTier() bool {
	if s.Tier >= MaxTier {
		return false
	}
	s.SetTier(s.Tier + 1)
	return true
}

// UpgradeMainCannon raises the fling cannon level by one
func (s *Ship) UpgradeMainCannon() {
	s.MainCannonLevel++
}

// UnlockAmmo makes an ammo type selectable
func (s *Ship) UnlockAmmo(t AmmoType) bool {
	if !ValidAmmo(t) || s.UnlockedAmmo[t] {
		return false
	}
	if s.UnlockedAmmo == nil {
		s.UnlockedAmmo = make(map[AmmoType]bool)
	}
	s.UnlockedAmmo[t] = true
	return true
}

// SelectAmmo switches the loaded ammo to an unlocked type
func (s *Ship) SelectAmmo(t AmmoType) bool {
	if !s.UnlockedAmmo[t] {
		return false
	}
	s.Ammo = t
	return true
}
