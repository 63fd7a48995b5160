package faultguard

import "runtime/debug"

// installHandler arms the calling goroutine so that hardware faults are
// raised as panics, and returns the disposition it replaced.
func installHandler() bool {
	return debug.SetPanicOnFault(true)
}

// restoreDisposition puts back a disposition saved by installHandler.
func restoreDisposition(prev bool) {
	debug.SetPanicOnFault(prev)
}

// trap decides whether a value recovered inside rp's protected block is a
// fault this region owns. It only reads the registry and the value itself;
// classification of the address happens afterwards in ordinary context.
func (r *Registry) trap(rp *RecoveryPoint, v any) (*Fault, bool) {
	addr, cause, ok := faultAddress(v)
	if !ok {
		return nil, false
	}
	if cur := r.Lookup(rp.slot); cur == nil || cur != rp {
		return nil, false
	}
	rp.state = Trapped
	r.trapped.Add(1)
	return &Fault{Addr: addr, Slot: rp.slot, cause: cause}, true
}

// protect runs fn with the handler in place. A fault owned by rp is returned;
// anything else is re-raised so outer guards, or the runtime default, see it
// unchanged.
func (r *Registry) protect(rp *RecoveryPoint, fn func()) (fault *Fault) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		f, ok := r.trap(rp, v)
		if !ok {
			panic(v)
		}
		f.Class = classify(f.Addr)
		fault = f
	}()
	fn()
	return nil
}
