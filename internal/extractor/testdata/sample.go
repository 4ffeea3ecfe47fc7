package sample

import "fmt"

// Version is the application version.
const Version = "1.0.0"

const (
	// StatusOK indicates success.
	StatusOK = 200
	// StatusError indicates failure.
	StatusError = 500
	statusHidden = 0
)

// Color names a palette entry.
type Color int

// Palette entries.
const (
	Red Color = iota
	Green
	Blue
)

// GlobalVar is a global variable.
var GlobalVar = "hello"

// Point is a position on a grid.
//
// Example:
//
//	p := NewPoint(1, 2)
//	fmt.Println(p)
type Point struct {
	X, Y int // coordinates
	// hidden is not exported.
	hidden bool
}

// NewPoint returns a point at x, y.
func NewPoint(x, y int) *Point {
	return &Point{X: x, Y: y}
}

// String implements fmt.Stringer.
func (p *Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

func (p *Point) reset() {}

// Shape is anything with an area.
type Shape interface {
	fmt.Stringer
	Area() float64
}

type (
	// ID identifies a record.
	ID = string

	internal struct{}
)

//go:noinline
// Tick returns the current tick.
func Tick() int64 { return 0 }

func helper() {}
