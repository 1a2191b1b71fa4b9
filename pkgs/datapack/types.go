// Package datapack models the compiled output of Pipeline B: a sequence
// of named Mcfunctions written to disk as a Minecraft data pack. The
// shape mirrors the teacher's plan/writer split (core/planfmt/plan.go,
// core/planfmt/writer.go) reworked for text output instead of a binary
// framed format, since .mcfunction files are plain command-per-line text
// rather than the teacher's length-prefixed binary sections.
package datapack

import (
	"fmt"
	"strings"
)

// Mcfunction is a named block of command lines, one command per line.
// Lines beginning with "$" are macro lines, substituted by the host
// runtime from an NBT record at invocation time.
type Mcfunction struct {
	Name  string
	Lines []string
}

// Line appends a single non-macro command line.
func (f *Mcfunction) Line(line string) {
	f.Lines = append(f.Lines, line)
}

// Linef appends a formatted command line.
func (f *Mcfunction) Linef(format string, args ...any) {
	f.Line(fmt.Sprintf(format, args...))
}

// Macro appends a macro line ("$..."), used for host-runtime template
// substitution.
func (f *Mcfunction) Macro(line string) {
	f.Line("$" + line)
}

// Body joins the function's lines into the text written to disk.
func (f *Mcfunction) Body() string {
	var b strings.Builder
	for _, line := range f.Lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// DataPack is an ordered sequence of Mcfunctions. Order only affects
// the order files are written; execution order is determined entirely
// by function calls at runtime.
type DataPack struct {
	Namespace string
	Functions []*Mcfunction
}

// NewDataPack returns an empty DataPack for namespace.
func NewDataPack(namespace string) *DataPack {
	return &DataPack{Namespace: namespace}
}

// Add appends fn to the pack and returns it for chaining.
func (p *DataPack) Add(fn *Mcfunction) *Mcfunction {
	p.Functions = append(p.Functions, fn)
	return fn
}

// NewFunction creates, appends, and returns a new named Mcfunction.
func (p *DataPack) NewFunction(name string) *Mcfunction {
	return p.Add(&Mcfunction{Name: name})
}

// Lookup returns the function named name, or nil if none exists.
func (p *DataPack) Lookup(name string) *Mcfunction {
	for _, fn := range p.Functions {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}
