package pathfind

import (
	"container/heap"

	"github.com/mitchelldurbincs/CreatureSim/internal/game/core"
)

type pathNode struct {
	idx    int
	g, h   int
	seq    int
	parent *pathNode
	index  int // heap index
}

// openList orders nodes by f, then h, then insertion order so equal-cost
// paths always resolve the same way.
type openList []*pathNode

func (ol openList) Len() int { return len(ol) }
func (ol openList) Less(i, j int) bool {
	fi, fj := ol[i].g+ol[i].h, ol[j].g+ol[j].h
	if fi != fj {
		return fi < fj
	}
	if ol[i].h != ol[j].h {
		return ol[i].h < ol[j].h
	}
	return ol[i].seq < ol[j].seq
}
func (ol openList) Swap(i, j int)       { ol[i], ol[j] = ol[j], ol[i]; ol[i].index = i; ol[j].index = j }
func (ol *openList) Push(x interface{}) { n := x.(*pathNode); n.index = len(*ol); *ol = append(*ol, n) }
func (ol *openList) Pop() interface{} {
	old := *ol
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*ol = old[:len(old)-1]
	return n
}

// Path returns a shortest 4-connected route from a to b, both included, over
// tiles pass allows. It is empty when no route exists.
func (p *Pathfinder) Path(a, b *core.Tile, pass core.Passability) []*core.Tile {
	if a == nil || b == nil || !pass.Allows(a) || !pass.Allows(b) {
		return nil
	}
	if a == b {
		return []*core.Tile{a}
	}
	if !p.PathExists(a, b, pass) {
		return nil
	}

	g := p.grid
	goal := b.Coordinate()
	startIdx := g.IndexOf(a)
	goalIdx := g.IndexOf(b)

	seq := 0
	start := &pathNode{idx: startIdx, h: a.Coordinate().Manhattan(goal), seq: seq}
	best := map[int]*pathNode{startIdx: start}
	closed := make(map[int]bool)

	ol := &openList{start}
	heap.Init(ol)

	for ol.Len() > 0 {
		cur := heap.Pop(ol).(*pathNode)
		if cur.idx == goalIdx {
			return p.buildPath(cur)
		}
		if closed[cur.idx] {
			continue
		}
		closed[cur.idx] = true

		for _, n := range g.T[cur.idx].Neighbors() {
			if !pass.Allows(n) {
				continue
			}
			nIdx := g.IndexOf(n)
			if closed[nIdx] {
				continue
			}
			ng := cur.g + 1
			if prev, ok := best[nIdx]; ok && prev.g <= ng {
				continue
			}
			seq++
			node := &pathNode{
				idx:    nIdx,
				g:      ng,
				h:      n.Coordinate().Manhattan(goal),
				seq:    seq,
				parent: cur,
			}
			best[nIdx] = node
			heap.Push(ol, node)
		}
	}
	return nil
}

// PathXY is Path between coordinates. Out-of-bounds ends yield no path.
func (p *Pathfinder) PathXY(x1, y1, x2, y2 int, pass core.Passability) []*core.Tile {
	return p.Path(p.grid.Tile(x1, y1), p.grid.Tile(x2, y2), pass)
}

func (p *Pathfinder) buildPath(end *pathNode) []*core.Tile {
	var path []*core.Tile
	for n := end; n != nil; n = n.parent {
		path = append(path, &p.grid.T[n.idx])
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
