package sat

import (
	"reflect"
	"testing"
)

func TestQueue_fifoOrder(t *testing.T) {
	q := NewQueue(2)
	for _, l := range []Literal{3, -1, 2, -4, 5} {
		q.Push(l)
	}

	got := []Literal{}
	for !q.IsEmpty() {
		got = append(got, q.Pop())
	}
	want := []Literal{3, -1, 2, -4, 5}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("Mismatch: want %v, got %v", want, got)
	}
}

func TestQueue_pushWithGrowAndRotation(t *testing.T) {
	q := &Queue{
		ring:  []Literal{3, 4, 1, 2},
		start: 2,
		end:   2,
		size:  4,
		mask:  0b11,
	}
	want := &Queue{
		ring:  []Literal{1, 2, 3, 4, 5, 0, 0, 0},
		start: 0,
		end:   5,
		size:  5,
		mask:  0b111,
	}

	q.Push(5)

	if !reflect.DeepEqual(want, q) {
		t.Errorf("Mismatch: want %#v, got %#v", want, q)
	}
}

func TestQueue_clear(t *testing.T) {
	q := NewQueue(4)
	q.Push(1)
	q.Push(2)
	q.Clear()

	if !q.IsEmpty() || q.Size() != 0 {
		t.Errorf("queue not empty after Clear: %s", q)
	}
}
