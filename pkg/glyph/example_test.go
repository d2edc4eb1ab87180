package glyph_test

import (
	"fmt"

	"github.com/algexeno/cistercian/pkg/expr"
	"github.com/algexeno/cistercian/pkg/glyph"
)

func ExampleFromExpression() {
	shape, err := glyph.FromExpression(expr.Mul(expr.C(0), expr.C(0)))
	if err != nil {
		panic(err)
	}
	strokes, extent := glyph.Strokes(shape, glyph.Absolute, glyph.Settings{CircleResolution: 4})
	fmt.Println(shape.Kind(), len(strokes), extent)
	fmt.Println(strokes[0].From, strokes[0].To)
	fmt.Println(strokes[5].From, strokes[5].To)
	// Output:
	// chain 6 1
	// (0.5, 1) (0.5, 0)
	// (1.5, 1) (1.5, 0)
}
