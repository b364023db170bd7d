package lob

// treeIndex is the ordered price index backend: a red-black tree keyed
// by tick. Levels are never deleted; a level whose members are all
// tombstoned is logically empty and skipped during iteration, matching
// the other backends.

type color uint8

const (
	red   color = 0
	black color = 1
)

type treeNode struct {
	key    int64
	level  priceLevel
	color  color
	left   *treeNode
	right  *treeNode
	parent *treeNode
}

type treeIndex struct {
	root *treeNode
	nil  *treeNode
	size int
}

func newTreeIndex() *treeIndex {
	sentinel := &treeNode{color: black}
	return &treeIndex{root: sentinel, nil: sentinel}
}

func (t *treeIndex) Contains(tick int64) bool {
	return tick >= 0
}

func (t *treeIndex) Get(tick int64) *priceLevel {
	n := t.root
	for n != t.nil {
		switch {
		case tick < n.key:
			n = n.left
		case tick > n.key:
			n = n.right
		default:
			return &n.level
		}
	}
	return nil
}

func (t *treeIndex) Upsert(tick int64) *priceLevel {
	y := t.nil
	x := t.root
	for x != t.nil {
		y = x
		if tick < x.key {
			x = x.left
		} else if tick > x.key {
			x = x.right
		} else {
			return &x.level
		}
	}
	z := &treeNode{key: tick, level: newPriceLevel(), color: red, left: t.nil, right: t.nil, parent: y}
	if y == t.nil {
		t.root = z
	} else if z.key < y.key {
		y.left = z
	} else {
		y.right = z
	}
	t.insertFixup(z)
	t.size++
	return &z.level
}

func (t *treeIndex) AscendRange(from, to int64, fn func(int64, *priceLevel) bool) {
	for n := t.lowerBound(from); n != t.nil && n.key <= to; n = t.next(n) {
		if n.level.head == noSlot {
			continue
		}
		if !fn(n.key, &n.level) {
			return
		}
	}
}

func (t *treeIndex) DescendRange(from, to int64, fn func(int64, *priceLevel) bool) {
	for n := t.upperBound(to); n != t.nil && n.key >= from; n = t.prev(n) {
		if n.level.head == noSlot {
			continue
		}
		if !fn(n.key, &n.level) {
			return
		}
	}
}

func (t *treeIndex) Clone() PriceIndex {
	cp := newTreeIndex()
	cp.size = t.size
	cp.root = t.cloneNode(t.root, cp.nil, cp.nil)
	return cp
}

func (t *treeIndex) cloneNode(n, parent, sentinel *treeNode) *treeNode {
	if n == t.nil {
		return sentinel
	}
	m := &treeNode{key: n.key, level: n.level, color: n.color, parent: parent}
	m.left = t.cloneNode(n.left, m, sentinel)
	m.right = t.cloneNode(n.right, m, sentinel)
	return m
}

// lowerBound returns the leftmost node with key >= k.
func (t *treeIndex) lowerBound(k int64) *treeNode {
	best := t.nil
	n := t.root
	for n != t.nil {
		if n.key >= k {
			best = n
			n = n.left
		} else {
			n = n.right
		}
	}
	return best
}

// upperBound returns the rightmost node with key <= k.
func (t *treeIndex) upperBound(k int64) *treeNode {
	best := t.nil
	n := t.root
	for n != t.nil {
		if n.key <= k {
			best = n
			n = n.right
		} else {
			n = n.left
		}
	}
	return best
}

func (t *treeIndex) minNode(n *treeNode) *treeNode {
	if n == t.nil {
		return t.nil
	}
	for n.left != t.nil {
		n = n.left
	}
	return n
}

func (t *treeIndex) maxNode(n *treeNode) *treeNode {
	if n == t.nil {
		return t.nil
	}
	for n.right != t.nil {
		n = n.right
	}
	return n
}

func (t *treeIndex) next(n *treeNode) *treeNode {
	if n.right != t.nil {
		return t.minNode(n.right)
	}
	p := n.parent
	for p != t.nil && n == p.right {
		n = p
		p = p.parent
	}
	return p
}

func (t *treeIndex) prev(n *treeNode) *treeNode {
	if n.left != t.nil {
		return t.maxNode(n.left)
	}
	p := n.parent
	for p != t.nil && n == p.left {
		n = p
		p = p.parent
	}
	return p
}

func (t *treeIndex) rotateLeft(x *treeNode) {
	y := x.right
	x.right = y.left
	if y.left != t.nil {
		y.left.parent = x
	}
	y.parent = x.parent
	if x.parent == t.nil {
		t.root = y
	} else if x == x.parent.left {
		x.parent.left = y
	} else {
		x.parent.right = y
	}
	y.left = x
	x.parent = y
}

func (t *treeIndex) rotateRight(x *treeNode) {
	y := x.left
	x.left = y.right
	if y.right != t.nil {
		y.right.parent = x
	}
	y.parent = x.parent
	if x.parent == t.nil {
		t.root = y
	} else if x == x.parent.right {
		x.parent.right = y
	} else {
		x.parent.left = y
	}
	y.right = x
	x.parent = y
}

func (t *treeIndex) insertFixup(z *treeNode) {
	for z.parent.color == red {
		if z.parent == z.parent.parent.left {
			y := z.parent.parent.right
			if y.color == red {
				z.parent.color = black
				y.color = black
				z.parent.parent.color = red
				z = z.parent.parent
			} else {
				if z == z.parent.right {
					z = z.parent
					t.rotateLeft(z)
				}
				z.parent.color = black
				z.parent.parent.color = red
				t.rotateRight(z.parent.parent)
			}
		} else {
			y := z.parent.parent.left
			if y.color == red {
				z.parent.color = black
				y.color = black
				z.parent.parent.color = red
				z = z.parent.parent
			} else {
				if z == z.parent.left {
					z = z.parent
					t.rotateRight(z)
				}
				z.parent.color = black
				z.parent.parent.color = red
				t.rotateLeft(z.parent.parent)
			}
		}
	}
	t.root.color = black
}
