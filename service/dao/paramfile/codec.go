package paramfile

import (
	"bytes"
	"strings"

	"github.com/viant/comets/model/params"
	"github.com/viant/comets/model/types"
)

// Block names parameter file issues.
const Block = "parameters"

// Encode normalizes table and renders the global and package parameter files
// as name = value lines sorted by name.
func Encode(table *params.Table) (global, pkg []byte) {
	table.Normalize()
	globalBuf, pkgBuf := &bytes.Buffer{}, &bytes.Buffer{}
	for _, name := range table.Names() {
		buf := pkgBuf
		if table.Scope(name) == params.ScopeGlobal {
			buf = globalBuf
		}
		buf.WriteString(name)
		buf.WriteString(" = ")
		buf.WriteString(table.String(name))
		buf.WriteByte('\n')
	}
	return globalBuf.Bytes(), pkgBuf.Bytes()
}

// Decode applies the assignments in data to table. Malformed lines are
// skipped and reported.
func Decode(table *params.Table, data []byte) types.Issues {
	var issues types.Issues
	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parameter, err := Parse([]byte(strings.TrimRight(line, "\r")))
		if err != nil {
			issues.Add(types.NewCorruptValueError(Block, i+1, "expected name = value: %v", err))
			continue
		}
		table.SetText(parameter.Name, parameter.Value)
	}
	table.Normalize()
	return issues
}
