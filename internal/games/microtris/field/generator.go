package field

import (
	"math/rand/v2"
)

// Seed is a 128-bit generator seed.
type Seed struct {
	Hi uint64
	Lo uint64
}

// TableSize is the number of outcomes a weight table maps.
const TableSize = 10

// Table maps each outcome of a draw in [0, TableSize) to a shape kind.
// Repeating a kind raises its weight.
type Table [TableSize]Kind

// StandardTable keeps the straight piece rare:
// Straight 1/10, Square 1/10, L 3/10, S 2/10, T 3/10.
var StandardTable = Table{
	KindL, KindS, KindT, KindSquare, KindStraight,
	KindL, KindS, KindT, KindL, KindT,
}

// BoardTable is the distribution shipped on the original board:
// Straight 1/10, Square 1/10, L 4/10, S 2/10, T 2/10.
var BoardTable = Table{
	KindL, KindS, KindT, KindSquare, KindStraight,
	KindL, KindS, KindT, KindL, KindL,
}

// Weights counts how many outcomes select each kind.
func (t Table) Weights() map[Kind]int {
	w := make(map[Kind]int, len(Kinds))
	for _, k := range t {
		w[k]++
	}
	return w
}

// Generator draws weighted shapes from a persistent PCG stream.
// It is seeded once per game and advanced on every spawn.
type Generator struct {
	rng   *rand.Rand
	table Table
	seed  Seed
	draws uint64
}

// NewGenerator returns a generator seeded with seed that picks from table.
func NewGenerator(seed Seed, table Table) *Generator {
	return &Generator{
		rng:   rand.New(rand.NewPCG(seed.Hi, seed.Lo)),
		table: table,
		seed:  seed,
	}
}

// Next draws one kind.
func (g *Generator) Next() Kind {
	g.draws++
	return g.table[g.rng.IntN(TableSize)]
}

// NextShape draws one kind and returns its mask.
func (g *Generator) NextShape() Shape {
	return g.Next().Shape()
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() Seed {
	return g.seed
}

// Draws returns how many shapes have been drawn.
func (g *Generator) Draws() uint64 {
	return g.draws
}

// Generate reseeds from seed and draws a single shape from the standard table.
// Same seed, same shape.
func Generate(seed Seed) Shape {
	return NewGenerator(seed, StandardTable).NextShape()
}
