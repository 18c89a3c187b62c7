package systems

// pathItem - узел открытого множества A*.
type pathItem struct {
	Cell     Cell
	Cost     int // g: длина пути от старта
	Priority int // f = g + h
	Seq      int // порядок вставки, разрешает равенство f
	Index    int // индекс в куче
}

// pathQueue реализует heap.Interface: min-heap по f, затем по порядку вставки.
type pathQueue []*pathItem

func (pq pathQueue) Len() int { return len(pq) }

func (pq pathQueue) Less(i, j int) bool {
	if pq[i].Priority != pq[j].Priority {
		return pq[i].Priority < pq[j].Priority
	}
	return pq[i].Seq < pq[j].Seq
}

func (pq pathQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *pathQueue) Push(x interface{}) {
	item := x.(*pathItem)
	item.Index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *pathQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.Index = -1
	*pq = old[0 : n-1]
	return item
}
