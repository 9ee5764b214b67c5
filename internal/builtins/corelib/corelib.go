// Package corelib implements the minimal standard host-function bundle of
// SPEC_FULL.md §C.3: scalar introspection/conversion, error inspection, and
// the List/Map operations spec §4.1 describes but which script source has
// no syntax of its own to reach (sort, the sorted "set view", map
// construction, map key enumeration). Grounded directly in spec §4.1's
// described operations.
package corelib

import (
	"github.com/blackrooksoftware/rookscript/internal/builtins/hostfn"
	"github.com/blackrooksoftware/rookscript/internal/resolver"
	"github.com/blackrooksoftware/rookscript/internal/value"
)

// New returns a Registry preloaded with the core bundle, ready to be
// passed to builder.Builder.WithHostResolver.
func New() *resolver.Registry {
	r := resolver.NewRegistry()
	r.RegisterAll(
		length(), typeOf(), toString(), toInt(), toFloat(),
		isError(), errorType(), newError(),
		listAdd(), listSort(), setAdd(), setContains(), setSearch(),
		newMap(), mapKeys(), mapRemove(),
	)
	return r
}

func length() resolver.HostFunction {
	return hostfn.New("LENGTH", 1, "LENGTH(value): integer", func(_ resolver.Instance, args []value.Value) (value.Value, error) {
		return value.NewInteger(int64(args[0].Length())), nil
	})
}

func typeOf() resolver.HostFunction {
	return hostfn.New("TYPEOF", 1, "TYPEOF(value): string", func(_ resolver.Instance, args []value.Value) (value.Value, error) {
		return value.NewString(args[0].Kind().String()), nil
	})
}

func toString() resolver.HostFunction {
	return hostfn.New("TOSTRING", 1, "TOSTRING(value): string", func(_ resolver.Instance, args []value.Value) (value.Value, error) {
		return value.NewString(args[0].AsString()), nil
	})
}

func toInt() resolver.HostFunction {
	return hostfn.New("TOINT", 1, "TOINT(value): integer", func(_ resolver.Instance, args []value.Value) (value.Value, error) {
		return value.NewInteger(args[0].AsLong()), nil
	})
}

func toFloat() resolver.HostFunction {
	return hostfn.New("TOFLOAT", 1, "TOFLOAT(value): float", func(_ resolver.Instance, args []value.Value) (value.Value, error) {
		return value.NewFloat(args[0].AsDouble()), nil
	})
}

func isError() resolver.HostFunction {
	return hostfn.New("ISERROR", 1, "ISERROR(value): boolean", func(_ resolver.Instance, args []value.Value) (value.Value, error) {
		return value.NewBoolean(args[0].IsError()), nil
	})
}

func errorType() resolver.HostFunction {
	return hostfn.New("ERRORTYPE", 1, "ERRORTYPE(value): string", func(_ resolver.Instance, args []value.Value) (value.Value, error) {
		if !args[0].IsError() {
			return value.NewString(""), nil
		}
		return value.NewString(args[0].AsError().Type), nil
	})
}

func newError() resolver.HostFunction {
	return hostfn.New("NEWERROR", 2, "NEWERROR(type, message): error", func(_ resolver.Instance, args []value.Value) (value.Value, error) {
		msg := args[1].AsString()
		return value.NewError(args[0].AsString(), msg, msg), nil
	})
}

func listAdd() resolver.HostFunction {
	return hostfn.NewVoid("LISTADD", 2, "LISTADD(list, value)", func(_ resolver.Instance, args []value.Value) error {
		args[0].AsList().Add(args[1])
		return nil
	})
}

func listSort() resolver.HostFunction {
	return hostfn.NewVoid("LISTSORT", 1, "LISTSORT(list)", func(_ resolver.Instance, args []value.Value) error {
		args[0].AsList().Sort()
		return nil
	})
}

func setAdd() resolver.HostFunction {
	return hostfn.New("SETADD", 2, "SETADD(sortedList, value): boolean", func(_ resolver.Instance, args []value.Value) (value.Value, error) {
		return value.NewBoolean(args[0].AsList().SetAdd(args[1])), nil
	})
}

func setContains() resolver.HostFunction {
	return hostfn.New("SETCONTAINS", 2, "SETCONTAINS(sortedList, value): boolean", func(_ resolver.Instance, args []value.Value) (value.Value, error) {
		return value.NewBoolean(args[0].AsList().SetContains(args[1])), nil
	})
}

func setSearch() resolver.HostFunction {
	return hostfn.New("SETSEARCH", 2, "SETSEARCH(sortedList, value): integer", func(_ resolver.Instance, args []value.Value) (value.Value, error) {
		return value.NewInteger(int64(args[0].AsList().SetSearch(args[1]))), nil
	})
}

// newMap fills the one gap list literals don't share with maps: source
// has PUSH_LIST_NEW for "[]" but no equivalent map literal opcode, so an
// empty map can only be reached through a host call.
func newMap() resolver.HostFunction {
	return hostfn.New("NEWMAP", 0, "NEWMAP(): map", func(_ resolver.Instance, _ []value.Value) (value.Value, error) {
		return value.NewMap(value.NewMapValue()), nil
	})
}

func mapKeys() resolver.HostFunction {
	return hostfn.New("MAPKEYS", 1, "MAPKEYS(map): list", func(_ resolver.Instance, args []value.Value) (value.Value, error) {
		keys := args[0].AsMap().Keys()
		elems := make([]value.Value, len(keys))
		for i, k := range keys {
			elems[i] = value.NewString(k)
		}
		return value.NewList(value.NewListFrom(elems)), nil
	})
}

func mapRemove() resolver.HostFunction {
	return hostfn.New("MAPREMOVE", 2, "MAPREMOVE(map, key): boolean", func(_ resolver.Instance, args []value.Value) (value.Value, error) {
		return value.NewBoolean(args[0].AsMap().Remove(args[1].AsString())), nil
	})
}
