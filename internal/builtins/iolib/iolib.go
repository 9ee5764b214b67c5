// Package iolib implements SPEC_FULL.md §C.4: a trivial in-memory
// closeable resource plus the DONOTCLOSE intrinsic, demonstrating spec
// §4.7's closeable-registration contract, which names no concrete
// resource type of its own.
package iolib

import (
	"strings"

	"github.com/blackrooksoftware/rookscript/internal/builtins/hostfn"
	"github.com/blackrooksoftware/rookscript/internal/resolver"
	"github.com/blackrooksoftware/rookscript/internal/value"
)

// buffer is the minimal closeable resource: an in-memory byte sink that
// records whether it has been closed, so tests can observe the drain
// behavior of terminate() without touching the real filesystem.
type buffer struct {
	sb     strings.Builder
	closed bool
}

func (b *buffer) Close() error {
	b.closed = true
	return nil
}

// New returns a Registry preloaded with the io bundle, ready to be passed
// to builder.Builder.WithHostResolver.
func New() *resolver.Registry {
	r := resolver.NewRegistry()
	r.RegisterAll(bufOpen(), bufWrite(), bufContents(), bufClose(), doNotClose())
	return r
}

// bufOpen registers a new buffer as a closeable on the instance and
// returns its handle as an Integer, the only representation a script can
// hold for an opaque native resource.
func bufOpen() resolver.HostFunction {
	return hostfn.New("BUFOPEN", 0, "BUFOPEN(): integer", func(inst resolver.Instance, _ []value.Value) (value.Value, error) {
		handle := inst.RegisterCloseable(&buffer{})
		return value.NewInteger(int64(handle)), nil
	})
}

// bufWrite and the other buffer accessors return an Unavailable Error
// Value on a bad handle rather than a Go error: spec §7 treats this as a
// recoverable failure the script can inspect with ISERROR, not a fatal
// ScriptExecutionException.
func bufWrite() resolver.HostFunction {
	return hostfn.New("BUFWRITE", 2, "BUFWRITE(handle, text): value", func(inst resolver.Instance, args []value.Value) (value.Value, error) {
		b, errv, ok := lookupBuffer(inst, args[0])
		if !ok {
			return errv, nil
		}
		b.sb.WriteString(args[1].AsString())
		return value.NewNull(), nil
	})
}

func bufContents() resolver.HostFunction {
	return hostfn.New("BUFCONTENTS", 1, "BUFCONTENTS(handle): value", func(inst resolver.Instance, args []value.Value) (value.Value, error) {
		b, errv, ok := lookupBuffer(inst, args[0])
		if !ok {
			return errv, nil
		}
		return value.NewString(b.sb.String()), nil
	})
}

// bufClose unregisters and closes a buffer explicitly, ahead of
// terminate()'s automatic drain.
func bufClose() resolver.HostFunction {
	return hostfn.New("BUFCLOSE", 1, "BUFCLOSE(handle): value", func(inst resolver.Instance, args []value.Value) (value.Value, error) {
		c, ok := inst.UnregisterCloseable(int(args[0].AsLong()))
		if !ok {
			return unavailable("BUFCLOSE: no such handle"), nil
		}
		if err := c.Close(); err != nil {
			return value.NewError("BadClose", err.Error(), err.Error()), nil
		}
		return value.NewNull(), nil
	})
}

// doNotClose implements the DONOTCLOSE intrinsic (spec §4.7): it
// unregisters the handle without calling Close, so the host can take
// ownership of the resource without terminate() draining it later.
func doNotClose() resolver.HostFunction {
	return hostfn.NewVoid("DONOTCLOSE", 1, "DONOTCLOSE(handle)", func(inst resolver.Instance, args []value.Value) error {
		inst.UnregisterCloseable(int(args[0].AsLong()))
		return nil
	})
}

func lookupBuffer(inst resolver.Instance, handleArg value.Value) (*buffer, value.Value, bool) {
	c, ok := inst.LookupCloseable(int(handleArg.AsLong()))
	if !ok {
		return nil, unavailable("no such buffer handle"), false
	}
	b, ok := c.(*buffer)
	if !ok {
		return nil, unavailable("handle is not a buffer"), false
	}
	return b, value.Value{}, true
}

func unavailable(msg string) value.Value {
	return value.NewError("Unavailable", msg, msg)
}
