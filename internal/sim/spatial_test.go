package sim

import "testing"

func TestSpatialGridInsertAndQuery(t *testing.T) {
	grid := NewSpatialGrid(1000, 800, 100)

	ref := EntityRef{Kind: EntityEnemy, Idx: 0}
	grid.InsertCircle(100, 100, 0, ref)

	results := grid.QueryBuf(100, 100, 50, nil)
	found := false
	for _, r := range results {
		if r == ref {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected to find entity at (100,100)")
	}

	results = grid.QueryBuf(900, 700, 50, nil)
	for _, r := range results {
		if r == ref {
			t.Error("should not find entity at (900,700)")
		}
	}
}

func TestSpatialGridClear(t *testing.T) {
	grid := NewSpatialGrid(1000, 800, 100)
	grid.InsertCircle(500, 500, 0, EntityRef{Kind: EntityEnemy, Idx: 0})
	grid.Clear()

	if results := grid.QueryBuf(500, 500, 100, nil); len(results) != 0 {
		t.Errorf("expected 0 results after clear, got %d", len(results))
	}
}

func TestSpatialGridInsertCircle(t *testing.T) {
	grid := NewSpatialGrid(1000, 800, 100)

	// boss-sized radius spans several cells
	grid.InsertCircle(160, 160, 50, EntityRef{Kind: EntityEnemy, Idx: 3})

	found := false
	for _, r := range grid.QueryBuf(115, 115, 2, nil) {
		if r.Idx == 3 {
			found = true
		}
	}
	if !found {
		t.Error("expected to find circle entity near its edge")
	}
}

func TestSpatialGridOffArena(t *testing.T) {
	grid := NewSpatialGrid(1000, 800, 100)

	// inside the margin: a spawning enemy above the top edge
	grid.InsertCircle(500, -50, 0, EntityRef{Kind: EntityEnemy, Idx: 1})
	found := false
	for _, r := range grid.QueryBuf(500, -50, 10, nil) {
		if r.Idx == 1 {
			found = true
		}
	}
	if !found {
		t.Error("expected to find entity inside the spawn margin")
	}

	// far outside clamps into the border cells
	grid.InsertCircle(-5000, -5000, 0, EntityRef{Kind: EntityEnemy, Idx: 2})
	found = false
	for _, r := range grid.QueryBuf(-100, -100, 10, nil) {
		if r.Idx == 2 {
			found = true
		}
	}
	if !found {
		t.Error("expected to find entity clamped into the corner cell")
	}
}

func TestSpatialGridCapsCells(t *testing.T) {
	grid := NewSpatialGrid(1e9, 1e9, 100)
	if grid.cols != maxGridDim || grid.rows != maxGridDim {
		t.Fatalf("grid should cap at %d cells per axis, got %dx%d", maxGridDim, grid.cols, grid.rows)
	}

	grid.InsertCircle(5e8, 5e8, 50, EntityRef{Kind: EntityEnemy, Idx: 4})
	found := false
	for _, r := range grid.QueryBuf(5e8, 5e8, 10, nil) {
		if r.Idx == 4 {
			found = true
		}
	}
	if !found {
		t.Error("entity beyond the capped area should clamp into a border cell")
	}
}
