// Package maze builds perfect mazes by randomized depth-first carving.
package maze

import (
	"math/rand"

	"github.com/vovakirdan/tui-protolab/internal/core"
)

// Dir is a wall index. World space is y-down, so North is -y.
type Dir int

const (
	North Dir = iota
	East
	South
	West
)

// Opposite returns the wall on the neighbouring tile that faces d.
func (d Dir) Opposite() Dir {
	return (d + 2) % 4
}

// Delta returns the tile offset of the neighbour in direction d.
func (d Dir) Delta() (int, int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	default:
		return -1, 0
	}
}

// Tile is a maze cell.
type Tile struct {
	Visited bool
	Walls   [4]bool
}

// Grid is a W x H maze.
type Grid struct {
	W, H  int
	tiles []Tile
}

// NewGrid returns a grid with every wall standing.
func NewGrid(w, h int) *Grid {
	g := &Grid{W: w, H: h, tiles: make([]Tile, w*h)}
	for i := range g.tiles {
		g.tiles[i].Walls = [4]bool{true, true, true, true}
	}
	return g
}

// In reports whether (x, y) is on the grid.
func (g *Grid) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.W && y < g.H
}

// At returns the tile at (x, y). The coordinates must be in range.
func (g *Grid) At(x, y int) *Tile {
	return &g.tiles[y*g.W+x]
}

// Open reports whether the wall d of tile (x, y) has been carved away.
func (g *Grid) Open(x, y int, d Dir) bool {
	return g.In(x, y) && !g.At(x, y).Walls[d]
}

type frame struct {
	x, y  int
	order [4]Dir
	next  int
}

func shuffled(rng *rand.Rand) [4]Dir {
	order := [4]Dir{North, East, South, West}
	for i := 3; i > 0; i-- {
		j := rng.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// Carve runs a randomized depth-first search from (0, 0), knocking down
// the wall pair between each tile and the unvisited neighbour it moves to.
// The result is a spanning tree: every tile reachable, W*H-1 pairs removed.
func (g *Grid) Carve(rng *rand.Rand) {
	if g.W == 0 || g.H == 0 {
		return
	}
	g.At(0, 0).Visited = true
	stack := []frame{{order: shuffled(rng)}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == 4 {
			stack = stack[:len(stack)-1]
			continue
		}
		d := top.order[top.next]
		top.next++

		dx, dy := d.Delta()
		nx, ny := top.x+dx, top.y+dy
		if !g.In(nx, ny) || g.At(nx, ny).Visited {
			continue
		}
		g.At(top.x, top.y).Walls[d] = false
		next := g.At(nx, ny)
		next.Walls[d.Opposite()] = false
		next.Visited = true
		stack = append(stack, frame{x: nx, y: ny, order: shuffled(rng)})
	}
}

// Removed counts carved wall pairs.
func (g *Grid) Removed() int {
	n := 0
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if x+1 < g.W && g.Open(x, y, East) {
				n++
			}
			if y+1 < g.H && g.Open(x, y, South) {
				n++
			}
		}
	}
	return n
}

// Reachable returns how many tiles can be walked to from (x, y).
func (g *Grid) Reachable(x, y int) int {
	if !g.In(x, y) {
		return 0
	}
	seen := make([]bool, len(g.tiles))
	seen[y*g.W+x] = true
	queue := [][2]int{{x, y}}
	n := 0
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		n++
		for d := North; d <= West; d++ {
			if !g.Open(c[0], c[1], d) {
				continue
			}
			dx, dy := d.Delta()
			nx, ny := c[0]+dx, c[1]+dy
			if !g.In(nx, ny) || seen[ny*g.W+nx] {
				continue
			}
			seen[ny*g.W+nx] = true
			queue = append(queue, [2]int{nx, ny})
		}
	}
	return n
}

// Segment is a wall rectangle in world units.
type Segment struct {
	Pos  core.Vec2
	Size core.Vec2
}

// WallSegments returns one rectangle per standing wall. Walls shared by two
// tiles are emitted once, from the tile to the south or east of them.
func (g *Grid) WallSegments(tile, thickness float64) []Segment {
	var out []Segment
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			t := g.At(x, y)
			ox, oy := float64(x)*tile, float64(y)*tile
			if t.Walls[North] {
				out = append(out, Segment{Pos: core.V2(ox, oy), Size: core.V2(tile, thickness)})
			}
			if t.Walls[West] {
				out = append(out, Segment{Pos: core.V2(ox, oy), Size: core.V2(thickness, tile)})
			}
			if y == g.H-1 && t.Walls[South] {
				out = append(out, Segment{Pos: core.V2(ox, oy+tile), Size: core.V2(tile, thickness)})
			}
			if x == g.W-1 && t.Walls[East] {
				out = append(out, Segment{Pos: core.V2(ox+tile, oy), Size: core.V2(thickness, tile)})
			}
		}
	}
	return out
}
