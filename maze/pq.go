package maze

// openItem is a frontier entry. seq records insertion order for tie-breaking.
type openItem struct {
	index        int
	gScore       int
	fScore       int
	hScore       int
	seq          int
	indexInQueue int
}

// openQueue is a min-heap on f, then h, then insertion order.
type openQueue []*openItem

func (q openQueue) Len() int { return len(q) }

func (q openQueue) Less(i, j int) bool {
	if q[i].fScore != q[j].fScore {
		return q[i].fScore < q[j].fScore
	}
	if q[i].hScore != q[j].hScore {
		return q[i].hScore < q[j].hScore
	}
	return q[i].seq < q[j].seq
}

func (q openQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].indexInQueue = i
	q[j].indexInQueue = j
}

func (q *openQueue) Push(x any) {
	item := x.(*openItem)
	item.indexInQueue = len(*q)
	*q = append(*q, item)
}

func (q *openQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.indexInQueue = -1
	*q = old[:n-1]
	return item
}
