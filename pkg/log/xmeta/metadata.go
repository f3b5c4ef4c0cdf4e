package xmeta

// Metadata 结构化元数据，string → Value 映射
//
// 键唯一，插入顺序无意义（集合语义）。渲染排序由 [Value.String] 负责。
type Metadata map[string]Value

// Clone 深拷贝
//
// nil 返回 nil。Logger 的写时复制依赖该语义：副本修改绝不影响原值。
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v.clone()
	}
	return out
}

// Merge 按层合并元数据，右侧层覆盖左侧层的同名键
//
// 入参层不会被修改。全部为空时返回 nil（事件元数据为空的规范形式）。
//
// 设计决策: 合并发生在日志热路径上（级别门已通过之后），
// 预先累计容量一次分配，避免逐层扩容。
func Merge(layers ...Metadata) Metadata {
	total := 0
	for _, l := range layers {
		total += len(l)
	}
	if total == 0 {
		return nil
	}
	out := make(Metadata, total)
	for _, l := range layers {
		for k, v := range l {
			out[k] = v
		}
	}
	return out
}
