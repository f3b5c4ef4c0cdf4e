// Package xlogconf 日志配置的加载与热更新。
//
// 基于 koanf 从 YAML/JSON 文件（或字节数据，适用 K8s ConfigMap）加载
// 日志设置：级别、输出格式、静态元数据、隐私键清单。
//
// # 应用到后端
//
// [Settings.Apply] 通过门面的 Handler 契约把设置推到任意后端：
// SetLevel 推级别，SetMetadataValue 推静态元数据。列入 private 的键
// 只对支持带属性存量的后端以隐私标记写入；其余后端写入固定脱敏标记，
// 原始值不落入不感知隐私的后端。
//
// # 热更新
//
// [Watch] 用 fsnotify 监视配置文件（含编辑器原子写入模式），防抖后
// 重载并回调；[ApplyCallback] 把重载结果直接推到一组后端，实现运行时
// 级别热调整。
//
// 进程如何取得配置路径、何时 Bootstrap，属于宿主进程的启动逻辑，
// 不在本包范围。
package xlogconf
