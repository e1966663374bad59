package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func unitAABB() AABB {
	return AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}
}

// =============================================================================
// Overlaps
// =============================================================================

func TestAABBOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		other    AABB
		expected bool
	}{
		{"separated on +x", AABB{Min: mgl64.Vec3{2, 0, 0}, Max: mgl64.Vec3{3, 1, 1}}, false},
		{"separated on -y", AABB{Min: mgl64.Vec3{0, -2, 0}, Max: mgl64.Vec3{1, -1, 1}}, false},
		{"separated on +z", AABB{Min: mgl64.Vec3{0, 0, 2}, Max: mgl64.Vec3{1, 1, 3}}, false},
		{"separated diagonally", AABB{Min: mgl64.Vec3{1.1, 1.1, 1.1}, Max: mgl64.Vec3{2, 2, 2}}, false},
		{"identical", unitAABB(), true},
		{"partial on all axes", AABB{Min: mgl64.Vec3{0.5, 0.5, 0.5}, Max: mgl64.Vec3{2, 2, 2}}, true},
		{"contained", AABB{Min: mgl64.Vec3{0.25, 0.25, 0.25}, Max: mgl64.Vec3{0.75, 0.75, 0.75}}, true},
		{"face touching", AABB{Min: mgl64.Vec3{1, 0, 0}, Max: mgl64.Vec3{2, 1, 1}}, true},
		{"corner touching", AABB{Min: mgl64.Vec3{1, 1, 1}, Max: mgl64.Vec3{2, 2, 2}}, true},
		{"zero volume inside", AABB{Min: mgl64.Vec3{0.5, 0.5, 0.5}, Max: mgl64.Vec3{0.5, 0.5, 0.5}}, true},
		{"flat slab across", AABB{Min: mgl64.Vec3{-5, 0.5, -5}, Max: mgl64.Vec3{5, 0.5, 5}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unitAABB().Overlaps(tt.other); got != tt.expected {
				t.Errorf("Overlaps() = %v, want %v", got, tt.expected)
			}
			// Test symmetry
			if got := tt.other.Overlaps(unitAABB()); got != tt.expected {
				t.Errorf("Overlaps() symmetry = %v, want %v", got, tt.expected)
			}
		})
	}
}

// =============================================================================
// ContainsPoint
// =============================================================================

func TestAABBContainsPoint(t *testing.T) {
	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected bool
	}{
		{"center", mgl64.Vec3{0.5, 0.5, 0.5}, true},
		{"min corner", mgl64.Vec3{0, 0, 0}, true},
		{"max corner", mgl64.Vec3{1, 1, 1}, true},
		{"face center", mgl64.Vec3{1, 0.5, 0.5}, true},
		{"just outside x", mgl64.Vec3{math.Nextafter(1, 2), 0.5, 0.5}, false},
		{"negative", mgl64.Vec3{-0.1, 0.5, 0.5}, false},
		{"far away", mgl64.Vec3{100, 100, 100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unitAABB().ContainsPoint(tt.point); got != tt.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

// =============================================================================
// ClampPoint
// =============================================================================

func TestAABBClampPoint(t *testing.T) {
	aabb := AABB{Min: mgl64.Vec3{-1, -2, -3}, Max: mgl64.Vec3{1, 2, 3}}

	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected mgl64.Vec3
	}{
		{"inside unchanged", mgl64.Vec3{0.5, -1, 2}, mgl64.Vec3{0.5, -1, 2}},
		{"beyond one face", mgl64.Vec3{5, 0, 0}, mgl64.Vec3{1, 0, 0}},
		{"beyond an edge", mgl64.Vec3{-5, 5, 0}, mgl64.Vec3{-1, 2, 0}},
		{"beyond a corner", mgl64.Vec3{9, -9, 9}, mgl64.Vec3{1, -2, 3}},
		{"on the boundary", mgl64.Vec3{1, 2, -3}, mgl64.Vec3{1, 2, -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := aabb.ClampPoint(tt.point); got != tt.expected {
				t.Errorf("ClampPoint(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestAABBClampPoint_ZeroVolume(t *testing.T) {
	line := AABB{Min: mgl64.Vec3{0, 1, 1}, Max: mgl64.Vec3{4, 1, 1}}

	got := line.ClampPoint(mgl64.Vec3{2, -7, 12})
	if got != (mgl64.Vec3{2, 1, 1}) {
		t.Errorf("ClampPoint on a line = %v, want [2 1 1]", got)
	}
	if !line.ContainsPoint(got) {
		t.Errorf("clamped point %v should be contained", got)
	}
}
