package types

import "reflect"

// NullPolicy 空值策略
type NullPolicy int

const (
	// RejectNull 拒绝空值写入（默认）
	//
	// 用于一次性命令，避免"没有命令"伪装成"无事可做"。
	RejectNull NullPolicy = iota

	// AllowNull 允许空值写入，空值作为合法值投递
	AllowNull
)

// String 返回策略字符串表示
func (p NullPolicy) String() string {
	switch p {
	case RejectNull:
		return "reject_null"
	case AllowNull:
		return "allow_null"
	default:
		return "unknown"
	}
}

// ParseNullPolicy 解析策略名称
func ParseNullPolicy(s string) (NullPolicy, bool) {
	switch s {
	case "", "reject_null", "reject":
		return RejectNull, true
	case "allow_null", "allow":
		return AllowNull, true
	default:
		return RejectNull, false
	}
}

// IsNull 判断值是否为空
//
// 只有可为 nil 的类型（指针、map、slice、func、chan、interface）才可能为空，
// string、struct、数值等值类型永远不为空。
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
