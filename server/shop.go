package main

import (
	"errors"
	"fmt"

	"seafling/internal/sim"
)

var (
	ErrUnknownItem     = errors.New("unknown item")
	ErrCannotAfford    = errors.New("not enough gold")
	ErrUpgradeRejected = errors.New("upgrade not possible")
)

// Prices grow by 6/5 (floored) after every purchase
const (
	priceGrowthNum = 6
	priceGrowthDen = 5
)

// ShopItem is a purchasable ship upgrade
type ShopItem struct {
	ID       string
	Name     string
	BaseCost int
	apply    func(s *sim.Ship) bool
	owned    func(s *sim.Ship) int
}

// ShopCatalog is the full list of upgrades sold in port
var ShopCatalog = []ShopItem{
	{ID: "crew", Name: "Crew", BaseCost: 150,
		apply: func(s *sim.Ship) bool { s.AddCrew(1); return true },
		owned: func(s *sim.Ship) int { return s.Crew }},
	{ID: "bilge", Name: "Bilge Pump", BaseCost: 300,
		apply: func(s *sim.Ship) bool { s.AddBilge(); return true },
		owned: func(s *sim.Ship) int { return s.BilgeLevel }},
	{ID: "cannon", Name: "Cannon", BaseCost: 250,
		apply: func(s *sim.Ship) bool { return s.InstallMount(sim.MountCannon) },
		owned: func(s *sim.Ship) int { return s.MountCount(sim.MountCannon) }},
	{ID: "swivel", Name: "Swivel Gun", BaseCost: 400,
		apply: func(s *sim.Ship) bool { return s.InstallMount(sim.MountSwivel) },
		owned: func(s *sim.Ship) int { return s.MountCount(sim.MountSwivel) }},
	{ID: "captain", Name: "Captain", BaseCost: 800,
		apply: func(s *sim.Ship) bool { return s.HireCaptain() },
		owned: func(s *sim.Ship) int { return boolCount(s.HasCaptain) }},
	{ID: "ship", Name: "Upgr. Ship", BaseCost: 1200,
		apply: func(s *sim.Ship) bool { return s.UpgradeTier() },
		owned: func(s *sim.Ship) int { return s.Tier }},
	{ID: "main", Name: "Main Cannon", BaseCost: 200,
		apply: func(s *sim.Ship) bool { s.UpgradeMainCannon(); return true },
		owned: func(s *sim.Ship) int { return s.MainCannonLevel }},
	{ID: "grape", Name: "Grape Shot", BaseCost: 350,
		apply: func(s *sim.Ship) bool { return s.UnlockAmmo(sim.AmmoGrape) },
		owned: func(s *sim.Ship) int { return boolCount(s.UnlockedAmmo[sim.AmmoGrape]) }},
	{ID: "chain", Name: "Chain Shot", BaseCost: 500,
		apply: func(s *sim.Ship) bool { return s.UnlockAmmo(sim.AmmoChain) },
		owned: func(s *sim.Ship) int { return boolCount(s.UnlockedAmmo[sim.AmmoChain]) }},
}

// shopCatalogMap provides O(1) lookup by item ID
var shopCatalogMap map[string]ShopItem

func init() {
	shopCatalogMap = make(map[string]ShopItem, len(ShopCatalog))
	for _, item := range ShopCatalog {
		shopCatalogMap[item.ID] = item
	}
}

func boolCount(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Shop tracks the escalating prices of one voyage
type Shop struct {
	prices map[string]int
}

// NewShop creates a shop at catalog prices
func NewShop() *Shop {
	s := &Shop{prices: make(map[string]int, len(ShopCatalog))}
	for _, item := range ShopCatalog {
		s.prices[item.ID] = item.BaseCost
	}
	return s
}

// Price returns the current price of an item
func (s *Shop) Price(id string) (int, bool) {
	p, ok := s.prices[id]
	return p, ok
}

// Buy charges the world's gold and applies the upgrade to its ship. Gold is
// only spent when the upgrade actually applies.
func (s *Shop) Buy(id string, w *sim.World) error {
	item, ok := shopCatalogMap[id]
	if !ok {
		return fmt.Errorf("buy %q: %w", id, ErrUnknownItem)
	}
	price := s.prices[id]
	if w.Gold() < price {
		return fmt.Errorf("buy %s for %d: %w", id, price, ErrCannotAfford)
	}
	if !item.apply(w.Ship()) {
		return fmt.Errorf("buy %s: %w", id, ErrUpgradeRejected)
	}
	w.SpendGold(price)
	s.prices[id] = price * priceGrowthNum / priceGrowthDen
	return nil
}

// Listing returns the catalog rows for the port screen, in catalog order
func (s *Shop) Listing(w *sim.World) []PriceEntry {
	ship := w.Ship()
	rows := make([]PriceEntry, 0, len(ShopCatalog))
	for _, item := range ShopCatalog {
		price := s.prices[item.ID]
		rows = append(rows, PriceEntry{
			ID:        item.ID,
			Name:      item.Name,
			Price:     price,
			Owned:     item.owned(ship),
			Available: w.Gold() >= price && s.canApply(item.ID, ship),
		})
	}
	return rows
}

// canApply mirrors the apply rules without mutating the ship
func (s *Shop) canApply(id string, ship *sim.Ship) bool {
	switch id {
	case "cannon":
		return ship.FreeSlot(sim.MountCannon) >= 0
	case "swivel":
		return ship.FreeSlot(sim.MountSwivel) >= 0
	case "captain":
		return !ship.HasCaptain
	case "ship":
		return ship.Tier < sim.MaxTier
	case "grape":
		return !ship.UnlockedAmmo[sim.AmmoGrape]
	case "chain":
		return !ship.UnlockedAmmo[sim.AmmoChain]
	}
	return true
}
