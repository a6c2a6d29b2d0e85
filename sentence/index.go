package sentence

// Index is built once per sentence and gives constant time access from a
// token offset to its position and from a position to the positions of its
// dependents. Positions refer to the token slice the Index was built from.
type Index struct {
	byIdx    map[int]int
	children [][]int
}

// NewIndex builds the Index of tokens. tokens must be sorted by Idx, so that
// the children of every token are also sorted by Idx.
func NewIndex(tokens []Token) *Index {
	ix := &Index{
		byIdx:    make(map[int]int, len(tokens)),
		children: make([][]int, len(tokens)),
	}

	for i, t := range tokens {
		// multi token words share idx, first wins
		if _, ok := ix.byIdx[t.Idx]; !ok {
			ix.byIdx[t.Idx] = i
		}
	}

	for i, t := range tokens {
		if t.Head == t.Idx {
			continue
		}

		h, ok := ix.byIdx[t.Head]
		if !ok {
			continue
		}

		ix.children[h] = append(ix.children[h], i)
	}

	return ix
}

// Pos returns the position of the token at offset idx.
func (ix *Index) Pos(idx int) (int, bool) {
	p, ok := ix.byIdx[idx]
	return p, ok
}

// Children returns the positions of the direct dependents of the token at
// position p, in sentence order.
func (ix *Index) Children(p int) []int {
	if p < 0 || p >= len(ix.children) {
		return nil
	}
	return ix.children[p]
}
