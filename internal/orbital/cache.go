package orbital

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/hydrogensim/internal/quantum"
)

const DefaultGridSize = 40

// Grid is a square image of brightness values in [0, 1], stored row-major.
// Grids handed out by Cache are shared and must not be modified.
type Grid struct {
	size   int
	values []float64
}

func newGrid(size int) Grid {
	return Grid{size: size, values: make([]float64, size*size)}
}

func (g Grid) Size() int { return g.size }

func (g Grid) At(row, col int) float64 { return g.values[row*g.size+col] }

func (g Grid) set(row, col int, v float64) { g.values[row*g.size+col] = v }

// Values returns a copy of the row-major values.
func (g Grid) Values() []float64 {
	out := make([]float64, len(g.values))
	copy(out, g.values)
	return out
}

// Max returns the largest value in the grid.
func (g Grid) Max() float64 {
	if len(g.values) == 0 {
		return 0
	}
	return floats.Max(g.values)
}

type entry struct {
	quadrant Grid
	full     Grid
}

// Cache memoizes orbital images keyed by (n, l, |m|). Each image is computed
// at most once per key in sequential use; concurrent misses on the same key
// may both compute, and the first stored result wins.
type Cache struct {
	gridSize int

	mu      sync.RWMutex
	entries [quantum.MaxN][quantum.MaxN][quantum.MaxN]*entry

	computations atomic.Int64
}

// NewCache returns a cache of gridSize×gridSize quadrants. With eager set,
// every image is computed before NewCache returns.
func NewCache(gridSize int, eager bool) *Cache {
	if gridSize < 1 {
		panic(fmt.Sprintf("orbital: grid size must be positive, got %d", gridSize))
	}
	c := &Cache{gridSize: gridSize}
	if eager {
		// Background never cancels; Warm cannot fail.
		_ = c.Warm(context.Background())
	}
	return c
}

func (c *Cache) GridSize() int { return c.gridSize }

// Computations counts quadrant computations performed so far.
func (c *Cache) Computations() int { return int(c.computations.Load()) }

// Brightness returns the full mirrored image of q, 2N×2N, with row 0 at the
// top (positive z) and column 0 at the left (negative x).
func (c *Cache) Brightness(q quantum.Numbers) Grid {
	return c.get(q).full
}

// Quadrant returns the N×N image of the positive (x, z) quadrant, indexed
// [z][x] from the nucleus outward.
func (c *Cache) Quadrant(q quantum.Numbers) Grid {
	return c.get(q).quadrant
}

// Cached reports whether the image of q has been computed.
func (c *Cache) Cached(q quantum.Numbers) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[q.N-1][q.L][absInt(q.M)] != nil
}

// Warm computes every image not yet cached, spreading states across CPUs.
func (c *Cache) Warm(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for n := quantum.GroundN; n <= quantum.MaxN; n++ {
		for l := 0; l < n; l++ {
			for m := 0; m <= l; m++ {
				q := quantum.Numbers{N: n, L: l, M: m}
				if c.Cached(q) {
					continue
				}
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					c.get(q)
					return nil
				})
			}
		}
	}
	return g.Wait()
}

func (c *Cache) get(q quantum.Numbers) *entry {
	if !q.Valid() {
		panic(&quantum.InvalidStateError{N: q.N, L: q.L, M: q.M})
	}
	n, l, am := q.N-1, q.L, absInt(q.M)

	c.mu.RLock()
	e := c.entries[n][l][am]
	c.mu.RUnlock()
	if e != nil {
		return e
	}

	quadrant := computeQuadrant(q, c.gridSize)
	c.computations.Add(1)
	computed := &entry{quadrant: quadrant, full: mirror(quadrant)}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing := c.entries[n][l][am]; existing != nil {
		return existing
	}
	c.entries[n][l][am] = computed
	return computed
}

// computeQuadrant sums the density through the depth of one octant for each
// (x, z) cell and normalizes by the largest sum.
func computeQuadrant(q quantum.Numbers, size int) Grid {
	cell := Extent / float64(size)
	g := newGrid(size)

	parallelRows(size, func(start, end int) {
		for zi := start; zi < end; zi++ {
			z := (float64(zi) + 0.5) * cell
			for xi := 0; xi < size; xi++ {
				x := (float64(xi) + 0.5) * cell
				sum := 0.0
				for yi := 0; yi < size; yi++ {
					y := (float64(yi) + 0.5) * cell
					sum += ProbabilityDensity(q, x, y, z)
				}
				g.set(zi, xi, sum)
			}
		}
	})

	if peak := floats.Max(g.values); peak > 0 {
		for i := range g.values {
			g.values[i] /= peak
		}
	}
	return g
}

// mirror reflects a quadrant about both axes into a 2N×2N image.
func mirror(quadrant Grid) Grid {
	n := quadrant.size
	full := newGrid(2 * n)
	for row := 0; row < 2*n; row++ {
		zi := row - n
		if row < n {
			zi = n - 1 - row
		}
		for col := 0; col < 2*n; col++ {
			xi := col - n
			if col < n {
				xi = n - 1 - col
			}
			full.set(row, col, quadrant.At(zi, xi))
		}
	}
	return full
}

// parallelRows splits [0, n) across workers when the range is large enough.
func parallelRows(n int, fn func(start, end int)) {
	const minChunk = 8
	workers := runtime.NumCPU()
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
