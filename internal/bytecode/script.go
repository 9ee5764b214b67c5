package bytecode

import (
	"github.com/blackrooksoftware/rookscript/internal/resolver"
	"github.com/blackrooksoftware/rookscript/pkg/ident"
)

// EntryInfo records a callable entry or function's parameter count and
// the bytecode index its label resolves to (spec §3's Script.entries /
// Script.functions tables).
type EntryInfo struct {
	ParamCount int
	Index      int
}

// Script is the immutable, compiled program spec §3 describes: a linear
// command array plus the label, entry, and function tables the VM
// dispatches against. Once built by the compiler and optimizer it is
// read-only for execution purposes; only the HostFunctionResolver field is
// set afterward, by the Builder (C10), before the first Instance runs.
type Script struct {
	Commands []Command

	// Labels maps a label name to the command index it marks.
	Labels *ident.Map[int]

	// LabelsByIndex maps a command index to the ordered set of label
	// names that mark it. More than one label may alias the same index
	// (e.g. after optimizer dead-jump removal collapses two labels onto
	// one position).
	LabelsByIndex map[int][]string

	Entries   *ident.Map[EntryInfo]
	Functions *ident.Map[EntryInfo]

	HostFunctionResolver resolver.HostFunctionResolver

	// CommandRunawayLimit bounds the number of commands a single update()
	// step loop may execute before a fatal runaway error is raised. Zero
	// or negative disables the guard (spec §4.6).
	CommandRunawayLimit int
}

// New returns an empty, writable Script ready for the compiler to append
// commands and labels into.
func New() *Script {
	return &Script{
		Labels:        ident.NewMap[int](),
		LabelsByIndex: make(map[int][]string),
		Entries:       ident.NewMap[EntryInfo](),
		Functions:     ident.NewMap[EntryInfo](),
	}
}

// Append adds cmd to the end of the command list and returns its index.
func (s *Script) Append(cmd Command) int {
	s.Commands = append(s.Commands, cmd)
	return len(s.Commands) - 1
}

// MarkLabel records that name refers to the next command index to be
// appended (i.e. the current end of the command list).
func (s *Script) MarkLabel(name string) {
	s.MarkLabelAt(name, len(s.Commands))
}

// MarkLabelAt records that name refers to command index idx.
func (s *Script) MarkLabelAt(name string, idx int) {
	s.Labels.Set(name, idx)
	s.LabelsByIndex[idx] = append(s.LabelsByIndex[idx], name)
}

// ResolveLabel returns the command index name refers to.
func (s *Script) ResolveLabel(name string) (int, bool) {
	return s.Labels.Get(name)
}

// Entry-label prefixes, per spec §4.3.
const (
	EntryPrefix    = "entry_"
	FunctionPrefix = "function_"
	MainLabel      = "main"
)
