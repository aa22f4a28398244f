package docgo

// Close marks the engine as closed and drops its cached query plans.
//
// Close is idempotent and always returns nil. Execute and Reevaluate return
// ErrClosed after the first Close.
func (e *Engine) Close() error {
	if e == nil {
		return nil
	}
	if e.closed.CompareAndSwap(false, true) {
		e.plans.Purge()
	}
	return nil
}
