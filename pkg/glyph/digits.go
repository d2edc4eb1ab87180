package glyph

// MaxDigit is the largest primitive digit index with a glyph.
const MaxDigit = 18

// stem is the vertical line every digit glyph is built on.
var stem = Line{From: Pt(0.5, 1), To: Pt(0.5, 0)}

// digitBranches lists, for each digit index, the lines attached to the stem.
// The right-hand quadrant (x in [0.5, 0.75]) encodes indices 1 to 9 and the
// mirrored left-hand quadrant encodes 10 to 18, following the Cistercian
// units and tens strokes. Index 0 is the bare stem.
var digitBranches = [MaxDigit + 1][]Line{
	0: nil,
	1: {
		{Pt(0.5, 0), Pt(0.75, 0)},
	},
	2: {
		{Pt(0.5, 0.25), Pt(0.75, 0.25)},
	},
	3: {
		{Pt(0.5, 0), Pt(0.75, 0.25)},
	},
	4: {
		{Pt(0.5, 0.25), Pt(0.75, 0)},
	},
	5: {
		{Pt(0.5, 0), Pt(0.75, 0)},
		{Pt(0.75, 0), Pt(0.5, 0.25)},
	},
	6: {
		{Pt(0.75, 0), Pt(0.75, 0.25)},
	},
	7: {
		{Pt(0.5, 0), Pt(0.75, 0)},
		{Pt(0.75, 0), Pt(0.75, 0.25)},
	},
	8: {
		{Pt(0.5, 0.25), Pt(0.75, 0.25)},
		{Pt(0.75, 0.25), Pt(0.75, 0)},
	},
	9: {
		{Pt(0.5, 0), Pt(0.75, 0)},
		{Pt(0.75, 0), Pt(0.75, 0.25)},
		{Pt(0.75, 0.25), Pt(0.5, 0.25)},
	},
	10: {
		{Pt(0.5, 0), Pt(0.25, 0)},
	},
	11: {
		{Pt(0.5, 0.25), Pt(0.25, 0.25)},
	},
	12: {
		{Pt(0.5, 0), Pt(0.25, 0.25)},
	},
	13: {
		{Pt(0.5, 0.25), Pt(0.25, 0)},
	},
	14: {
		{Pt(0.5, 0), Pt(0.25, 0)},
		{Pt(0.25, 0), Pt(0.5, 0.25)},
	},
	15: {
		{Pt(0.25, 0), Pt(0.25, 0.25)},
	},
	16: {
		{Pt(0.5, 0), Pt(0.25, 0)},
		{Pt(0.25, 0), Pt(0.25, 0.25)},
	},
	17: {
		{Pt(0.5, 0.25), Pt(0.25, 0.25)},
		{Pt(0.25, 0.25), Pt(0.25, 0)},
	},
	18: {
		{Pt(0.5, 0), Pt(0.25, 0)},
		{Pt(0.25, 0), Pt(0.25, 0.25)},
		{Pt(0.25, 0.25), Pt(0.5, 0.25)},
	},
}

// digit returns the glyph for digit index k, which must be in [0, MaxDigit].
// Index 0 is the bare stem; every other digit is a sequence starting with
// the stem followed by its branches.
func digit(k int) Draw {
	if k == 0 {
		return stem
	}
	branches := digitBranches[k]
	children := make([]Draw, 0, len(branches)+1)
	children = append(children, stem)
	for _, b := range branches {
		children = append(children, b)
	}
	return Sequence{Children: children}
}
