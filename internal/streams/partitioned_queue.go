package streams

import (
	"encoding/binary"
	"hash/fnv"
)

// PartitionedQueue is an in-process queue of buffered channels. Messages
// with the same partition key always land on the same channel, giving a
// single-consumer lane per key when the consumer runs one worker per
// partition.
type PartitionedQueue[T any] struct {
	partitions []chan T
}

const (
	defaultNumPartitions = 4
	defaultBuffer        = 64
)

func NewPartitionedQueue[T any]() *PartitionedQueue[T] {
	partitions := make([]chan T, defaultNumPartitions)
	for i := range partitions {
		partitions[i] = make(chan T, defaultBuffer)
	}
	return &PartitionedQueue[T]{partitions: partitions}
}

func (queue *PartitionedQueue[T]) PartitionCount() int { return len(queue.partitions) }

func (queue *PartitionedQueue[T]) Publish(partitionKey string, msg T) {
	queue.partitions[partitionIndex(partitionKey, len(queue.partitions))] <- msg
}

func (queue *PartitionedQueue[T]) Close() {
	for _, ch := range queue.partitions {
		close(ch)
	}
}

func partitionIndex(key string, n int) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	v := binary.LittleEndian.Uint32(hash.Sum(nil))
	return int(v % uint32(n))
}
