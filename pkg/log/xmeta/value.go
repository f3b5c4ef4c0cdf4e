package xmeta

import (
	"fmt"
	"sort"
	"strings"
)

// =============================================================================
// Value：封闭的递归变体类型
//
// 设计决策: Go 没有 sum type，通过非导出 kind 判别字段 + 构造函数收口，
// 保证变体集合封闭（调用方无法构造未知变体）。零值等价于 String("")。
// =============================================================================

// valueKind Value 的变体判别
type valueKind uint8

const (
	kindString valueKind = iota
	kindStringer
	kindList
	kindDict
	kindLazy
)

// Value 元数据值，封闭变体：字符串、Stringer、列表、字典、延迟求值。
//
// 通过构造函数创建：[String]、[Stringer]、[List]、[Dict]、[Lazy]、[LazyString]。
// 零值是合法的空字符串值。
type Value struct {
	kind     valueKind
	str      string
	stringer fmt.Stringer
	list     []Value
	dict     Metadata
	lazy     func() Value
}

// String 构造字符串值
func String(s string) Value {
	return Value{kind: kindString, str: s}
}

// Stringer 构造延迟字符串化的值
//
// 渲染时调用 v.String()。v 为 nil 时退化为空字符串值。
func Stringer(v fmt.Stringer) Value {
	if v == nil {
		return Value{}
	}
	return Value{kind: kindStringer, stringer: v}
}

// List 构造有序列表值
func List(vs ...Value) Value {
	return Value{kind: kindList, list: vs}
}

// Dict 构造字典值
func Dict(m Metadata) Value {
	return Value{kind: kindDict, dict: m}
}

// Lazy 构造延迟求值的值
//
// fn 只在渲染（String/Equal/Resolve）时调用，日志级别未启用时完全不执行。
// fn 为 nil 时退化为空字符串值。
func Lazy(fn func() Value) Value {
	if fn == nil {
		return Value{}
	}
	return Value{kind: kindLazy, lazy: fn}
}

// LazyString 构造延迟求值的字符串值
//
// [Lazy] 的便捷版本，避免调用方包一层 [String]。
func LazyString(fn func() string) Value {
	if fn == nil {
		return Value{}
	}
	return Value{kind: kindLazy, lazy: func() Value { return String(fn()) }}
}

// Resolve 归约延迟值，返回已求值的 Value
//
// 非延迟值原样返回。延迟链（Lazy 返回 Lazy）会被完全归约。
func (v Value) Resolve() Value {
	for v.kind == kindLazy {
		v = v.lazy()
	}
	return v
}

// String 返回确定性的字符串渲染
//
// 字典按键排序输出，保证同一结构的渲染结果稳定。
// 延迟值在此处被求值。
func (v Value) String() string {
	var sb strings.Builder
	v.appendTo(&sb)
	return sb.String()
}

func (v Value) appendTo(sb *strings.Builder) {
	v = v.Resolve()
	switch v.kind {
	case kindString:
		sb.WriteString(v.str)
	case kindStringer:
		sb.WriteString(v.stringer.String())
	case kindList:
		sb.WriteByte('[')
		for i, e := range v.list {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.appendTo(sb)
		}
		sb.WriteByte(']')
	case kindDict:
		sb.WriteByte('{')
		for i, k := range v.dict.sortedKeys() {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteString(": ")
			v.dict[k].appendTo(sb)
		}
		sb.WriteByte('}')
	}
}

// Equal 结构化相等比较
//
// 延迟值先求值再比较。Stringer 变体比较渲染后的字符串
// （同一文本的两个 Stringer 视为相等）。
// 列表逐元素比较，字典逐键比较。不同变体之间不相等，
// 唯一例外是 String 与 Stringer：两者都归约为文本后比较。
func (v Value) Equal(o Value) bool {
	v, o = v.Resolve(), o.Resolve()

	// String 与 Stringer 都按文本语义比较
	if v.isTextual() && o.isTextual() {
		return v.text() == o.text()
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case kindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case kindDict:
		if len(v.dict) != len(o.dict) {
			return false
		}
		for k, ve := range v.dict {
			oe, ok := o.dict[k]
			if !ok || !ve.Equal(oe) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (v Value) isTextual() bool {
	return v.kind == kindString || v.kind == kindStringer
}

func (v Value) text() string {
	if v.kind == kindStringer {
		return v.stringer.String()
	}
	return v.str
}

// clone 深拷贝，保证值副本之间互不别名
func (v Value) clone() Value {
	switch v.kind {
	case kindList:
		list := make([]Value, len(v.list))
		for i, e := range v.list {
			list[i] = e.clone()
		}
		return Value{kind: kindList, list: list}
	case kindDict:
		return Value{kind: kindDict, dict: v.dict.Clone()}
	default:
		// 字符串、Stringer、Lazy 均为不可变引用，直接复制
		return v
	}
}

func (m Metadata) sortedKeys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
