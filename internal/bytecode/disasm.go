package bytecode

import "strings"

// Disassemble renders script in the diagnostic text format of spec §6.4:
// one label per line ending with ':', one command per line indented by a
// tab, of the form "OPCODE [operand1] [operand2]". The output is not
// meant to be parsed back in.
func Disassemble(script *Script) string {
	var b strings.Builder
	writeLabelsAt(&b, script, 0)
	for i, cmd := range script.Commands {
		b.WriteByte('\t')
		b.WriteString(cmd.String())
		b.WriteByte('\n')
		writeLabelsAt(&b, script, i+1)
	}
	return b.String()
}

func writeLabelsAt(b *strings.Builder, script *Script, idx int) {
	for _, name := range script.LabelsByIndex[idx] {
		b.WriteString(name)
		b.WriteString(":\n")
	}
}
