package state

// Ticket identifies one in-flight request of a Resource. Completions carrying
// an older ticket are ignored.
type Ticket uint64

// Resource tracks one remotely fetched value and the request producing it.
// At most one request is in flight at a time.
type Resource[T any] struct {
	data    T
	has     bool
	loading bool
	ticket  Ticket
	err     error
}

// Begin starts a request. It refuses, returning false, while another request
// is still in flight.
func (r *Resource[T]) Begin() (Ticket, bool) {
	if r.loading {
		return 0, false
	}
	r.ticket++
	r.loading = true
	r.err = nil
	return r.ticket, true
}

func (r *Resource[T]) current(t Ticket) bool {
	return r.loading && t == r.ticket
}

// Succeed stores v as the result of request t.
func (r *Resource[T]) Succeed(t Ticket, v T) bool {
	if !r.current(t) {
		return false
	}
	r.data, r.has = v, true
	r.loading = false
	return true
}

// Fail records err for request t and drops any previous data.
func (r *Resource[T]) Fail(t Ticket, err error) bool {
	if !r.current(t) {
		return false
	}
	var zero T
	r.data, r.has = zero, false
	r.loading = false
	r.err = err
	return true
}

// Retain records err for request t and keeps the previous data.
func (r *Resource[T]) Retain(t Ticket, err error) bool {
	if !r.current(t) {
		return false
	}
	r.loading = false
	r.err = err
	return true
}

// Clear drops the data and orphans any in-flight request.
func (r *Resource[T]) Clear() {
	var zero T
	r.data, r.has = zero, false
	r.loading = false
	r.err = nil
	r.ticket++
}

// Data returns the stored value and whether one exists.
func (r *Resource[T]) Data() (T, bool) { return r.data, r.has }

// Loading reports whether a request is in flight.
func (r *Resource[T]) Loading() bool { return r.loading }

// Err is the error of the last completed request, if it failed.
func (r *Resource[T]) Err() error { return r.err }
