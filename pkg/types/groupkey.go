package types

import (
	"strings"

	"github.com/google/uuid"
)

// GroupKey 订阅组标识
//
// 共享同一个 GroupKey 的多个订阅被视为同一个逻辑消费者：
// 同一版本的值在组内只会投递一次。
//
// 调用方契约：
//   - 同一逻辑消费者重新挂载（例如界面销毁后重建）时必须使用相同的 GroupKey，
//     否则已消费的值会被再次投递（数据倒灌）
//   - 无关的消费者必须使用不同的 GroupKey，否则彼此会"抢走"对方的投递
//   - 每个实例都生成新 GroupKey 会导致注册表只增不减
//
// 以上违约情况无法在运行时检测。
type GroupKey string

// 组标识前缀
const groupKeyPrefix = "grp-"

// NewGroupKey 分配一个新的组标识
//
// 通常在逻辑消费者（如 screen.Store）首次创建时调用一次，之后长期持有。
func NewGroupKey() GroupKey {
	return GroupKey(groupKeyPrefix + uuid.NewString())
}

// GroupKeyOf 从调用方稳定的字符串派生组标识
func GroupKeyOf(s string) GroupKey {
	return GroupKey(strings.TrimSpace(s))
}

// String 返回字符串表示
func (k GroupKey) String() string {
	return string(k)
}

// IsEmpty 检查是否为空
func (k GroupKey) IsEmpty() bool {
	return k == ""
}

// Validate 验证组标识
func (k GroupKey) Validate() error {
	if k.IsEmpty() {
		return ErrInvalidGroupKey
	}
	return nil
}

// ShortString 返回缩短的表示，用于日志
func (k GroupKey) ShortString() string {
	s := string(k)
	s = strings.TrimPrefix(s, groupKeyPrefix)
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
