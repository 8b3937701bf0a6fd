package screen

import "github.com/dep2p/go-unpeek/pkg/types"

// Store 逻辑界面的稳定身份
//
// Store 的生命周期长于任何一个视图实例：视图重建时沿用同一个 Store，
// 否则已消费的命令会再次下发。
type Store struct {
	name string
	key  types.GroupKey
}

// NewStore 创建 Store 并分配新的 GroupKey
func NewStore(name string) *Store {
	return &Store{name: name, key: types.NewGroupKey()}
}

// StoreOf 使用调用方稳定的标识创建 Store
//
// 用于需要跨进程重启恢复同一身份的场景，例如以路由名作为标识。
func StoreOf(name string, key types.GroupKey) *Store {
	return &Store{name: name, key: key}
}

// Name 返回名称
func (s *Store) Name() string {
	return s.name
}

// Key 返回组标识
func (s *Store) Key() types.GroupKey {
	return s.key
}
