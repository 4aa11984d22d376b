package astar

// PriorityQueueItem is one push of a cell onto the frontier. A cell may have
// several items in the queue; those whose GScore is above the cell's recorded
// best are stale and get skipped on pop.
type PriorityQueueItem struct {
	Index  int32
	GScore int32
	FCost  int32
	Seq    uint64
}

// PriorityQueue orders items by (FCost, Seq), so items with equal f-cost come
// out in insertion order. Use it through container/heap.
type PriorityQueue []PriorityQueueItem

func (queue PriorityQueue) Len() int { return len(queue) }
func (queue PriorityQueue) Less(i, j int) bool {
	if queue[i].FCost != queue[j].FCost {
		return queue[i].FCost < queue[j].FCost
	}
	return queue[i].Seq < queue[j].Seq
}
func (queue PriorityQueue) Swap(i, j int) { queue[i], queue[j] = queue[j], queue[i] }

func (queue *PriorityQueue) Push(x any) {
	*queue = append(*queue, x.(PriorityQueueItem))
}

func (queue *PriorityQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	*queue = oldQueue[:n-1]
	return item
}
