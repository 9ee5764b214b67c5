// Package jsonlib implements SPEC_FULL.md §B's illustrative JSON host
// function bundle (JSON_PARSE, JSON_GET, JSON_SET, JSON_STRINGIFY),
// demonstrating the host-function-resolver contract (spec §6.1, component
// C8) against github.com/tidwall/gjson and github.com/tidwall/sjson rather
// than encoding/json.
package jsonlib

import (
	"strconv"
	"strings"

	"github.com/blackrooksoftware/rookscript/internal/builtins/hostfn"
	"github.com/blackrooksoftware/rookscript/internal/resolver"
	"github.com/blackrooksoftware/rookscript/internal/value"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// New returns a Registry preloaded with the JSON bundle, ready to be passed
// to builder.Builder.WithHostResolver.
func New() *resolver.Registry {
	r := resolver.NewRegistry()
	r.RegisterAll(jsonParse(), jsonGet(), jsonSet(), jsonStringify())
	return r
}

func jsonParse() resolver.HostFunction {
	return hostfn.New("JSON_PARSE", 1, "JSON_PARSE(jsonText): value", func(_ resolver.Instance, args []value.Value) (value.Value, error) {
		return fromGJSON(gjson.Parse(args[0].AsString())), nil
	})
}

func jsonGet() resolver.HostFunction {
	return hostfn.New("JSON_GET", 2, "JSON_GET(jsonText, path): value", func(_ resolver.Instance, args []value.Value) (value.Value, error) {
		r := gjson.Get(args[0].AsString(), args[1].AsString())
		if !r.Exists() {
			return value.NewNull(), nil
		}
		return fromGJSON(r), nil
	})
}

func jsonSet() resolver.HostFunction {
	return hostfn.NewErrorHandling("JSON_SET", 3, "JSON_SET(jsonText, path, value): string", func(_ resolver.Instance, args []value.Value) (value.Value, error) {
		out, err := sjson.Set(args[0].AsString(), args[1].AsString(), toGo(args[2]))
		if err != nil {
			return value.NewNull(), err
		}
		return value.NewString(out), nil
	})
}

func jsonStringify() resolver.HostFunction {
	return hostfn.New("JSON_STRINGIFY", 1, "JSON_STRINGIFY(value): string", func(_ resolver.Instance, args []value.Value) (value.Value, error) {
		var sb strings.Builder
		encode(&sb, args[0])
		return value.NewString(sb.String()), nil
	})
}

// fromGJSON converts a parsed gjson.Result into RookScript's Value domain,
// mapping JSON's object/array/number/string/bool/null onto Map/List/Float
// or Integer/String/Boolean/Null (spec §3's Value kinds).
func fromGJSON(r gjson.Result) value.Value {
	switch r.Type {
	case gjson.Null:
		return value.NewNull()
	case gjson.False:
		return value.NewBoolean(false)
	case gjson.True:
		return value.NewBoolean(true)
	case gjson.String:
		return value.NewString(r.String())
	case gjson.Number:
		if r.Num == float64(int64(r.Num)) && !strings.ContainsAny(r.Raw, ".eE") {
			return value.NewInteger(int64(r.Num))
		}
		return value.NewFloat(r.Num)
	case gjson.JSON:
		if r.IsArray() {
			l := value.NewListValue()
			r.ForEach(func(_, elem gjson.Result) bool {
				l.Add(fromGJSON(elem))
				return true
			})
			return value.NewList(l)
		}
		m := value.NewMapValue()
		r.ForEach(func(key, elem gjson.Result) bool {
			m.Set(key.String(), fromGJSON(elem))
			return true
		})
		return value.NewMap(m)
	default:
		return value.NewNull()
	}
}

// toGo converts a Value into the plain Go types sjson.Set expects to
// marshal (string, int64, float64, bool, nil, []any, map[string]any).
func toGo(v value.Value) any {
	switch v.Kind() {
	case value.Null:
		return nil
	case value.Boolean:
		return v.AsBoolean()
	case value.Integer:
		return v.AsLong()
	case value.Float:
		return v.AsDouble()
	case value.String:
		return v.AsString()
	case value.List:
		elems := v.AsList().Elements()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = toGo(e)
		}
		return out
	case value.Map:
		out := make(map[string]any)
		v.AsMap().Range(func(key string, ev value.Value) bool {
			out[key] = toGo(ev)
			return true
		})
		return out
	default:
		return v.AsString()
	}
}

// encode renders v as JSON text directly, without encoding/json, so the
// bundle stays on the same gjson/sjson stack as the rest of the package.
func encode(sb *strings.Builder, v value.Value) {
	switch v.Kind() {
	case value.Null:
		sb.WriteString("null")
	case value.Boolean:
		sb.WriteString(strconv.FormatBool(v.AsBoolean()))
	case value.Integer:
		sb.WriteString(strconv.FormatInt(v.AsLong(), 10))
	case value.Float:
		sb.WriteString(strconv.FormatFloat(v.AsDouble(), 'g', -1, 64))
	case value.String:
		encodeString(sb, v.AsString())
	case value.List:
		sb.WriteByte('[')
		for i, e := range v.AsList().Elements() {
			if i > 0 {
				sb.WriteByte(',')
			}
			encode(sb, e)
		}
		sb.WriteByte(']')
	case value.Map:
		sb.WriteByte('{')
		first := true
		v.AsMap().Range(func(key string, ev value.Value) bool {
			if !first {
				sb.WriteByte(',')
			}
			first = false
			encodeString(sb, key)
			sb.WriteByte(':')
			encode(sb, ev)
			return true
		})
		sb.WriteByte('}')
	default:
		encodeString(sb, v.AsString())
	}
}

func encodeString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
}
