// Package tsemit implements Pipeline A's Emitter: CommandMap → TypeScript
// source text, following the output schema in spec §4.5.
package tsemit

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/forgewright/smelter/pkgs/command"
)

type templateParam struct {
	Name string
	Type string
}

type templateVariant struct {
	Params []templateParam
}

type templateCommand struct {
	ObjectKey   string
	Binding     string
	NameLiteral string
	Variants    []templateVariant
}

type templateData struct {
	Commands []templateCommand
}

var parsedTemplate = template.Must(template.New("commands.ts").Parse(tsTemplate))

// Emit renders m as the TypeScript source described in spec §4.5: one
// object type keyed by command name with one callable signature per
// variant, one generic factory, and one exported constant per command.
func Emit(m *command.Map) (string, error) {
	data := templateData{}
	for _, name := range m.Names() {
		data.Commands = append(data.Commands, templateCommand{
			ObjectKey:   objectKey(name),
			Binding:     fixIdentifier(name),
			NameLiteral: quoteString(name),
			Variants:    buildVariants(m.Variants(name)),
		})
	}

	var out strings.Builder
	if err := parsedTemplate.Execute(&out, data); err != nil {
		return "", fmt.Errorf("tsemit: execute template: %w", err)
	}
	return out.String(), nil
}

func buildVariants(variants []command.Variant) []templateVariant {
	out := make([]templateVariant, len(variants))
	for i, v := range variants {
		out[i] = templateVariant{Params: buildParams(v)}
	}
	return out
}

// buildParams names and types each token in a variant. Arguments use
// their own name; Enums and Literals use opt0, opt1, ... assigned in
// their order of appearance within the variant (Arguments do not
// consume an opt-index). Optional tokens get a "?" suffix on the name.
func buildParams(variant command.Variant) []templateParam {
	params := make([]templateParam, len(variant))
	optIndex := 0
	for i, tok := range variant {
		var name, typ string
		switch tok.Kind {
		case command.KindArgument:
			name = tok.Name
			typ = quoteString(tok.Parser)
		case command.KindEnum:
			name = fmt.Sprintf("opt%d", optIndex)
			optIndex++
			typ = unionOf(tok.Values)
		case command.KindLiteral:
			name = fmt.Sprintf("opt%d", optIndex)
			optIndex++
			typ = quoteString(tok.Value)
		}
		if tok.IsOptional {
			name += "?"
		}
		params[i] = templateParam{Name: name, Type: typ}
	}
	return params
}

func unionOf(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quoteString(v)
	}
	return strings.Join(quoted, " | ")
}
