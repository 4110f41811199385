// Package queue provides the unbounded FIFO queues that connect the
// monitoring tasks to the presentation layer. Sends never block, which keeps
// the bus loop decoupled from the redraw rate; the buffer grows without
// limit if the consumer stalls, a deliberate simplification.
package queue

// Unbounded returns the sending and receiving halves of an unbounded FIFO
// queue. Closing the sending half drains the buffer and then closes the
// receiving half.
func Unbounded[T any]() (chan<- T, <-chan T) {
	in := make(chan T)
	out := make(chan T)

	go func() {
		in := in
		var buf []T

		for in != nil || len(buf) > 0 {
			var (
				outCh chan T
				next  T
			)

			if len(buf) > 0 {
				outCh = out
				next = buf[0]
			}

			select {
			case v, ok := <-in:
				if !ok {
					in = nil
					continue
				}
				buf = append(buf, v)
			case outCh <- next:
				buf = buf[1:]
			}
		}

		close(out)
	}()

	return in, out
}
