package channel

import "github.com/dep2p/go-unpeek/pkg/types"

// DeliveryRecord 组投递记录
//
// 每个 (Channel, GroupKey) 恰好一条，同组的订阅共享。
// 所有字段由所属 Channel 的状态锁保护。
type DeliveryRecord struct {
	group   types.GroupKey
	pending bool
}

// groupRegistry 组注册表
//
// 记录按需创建，Channel 存活期间不会被淘汰。
type groupRegistry struct {
	records map[types.GroupKey]*DeliveryRecord
}

func newGroupRegistry() *groupRegistry {
	return &groupRegistry{
		records: make(map[types.GroupKey]*DeliveryRecord),
	}
}

// getOrCreate 返回组的记录，不存在时创建并把 pending 初始化为 pending
func (r *groupRegistry) getOrCreate(group types.GroupKey, pending bool) *DeliveryRecord {
	if rec, ok := r.records[group]; ok {
		return rec
	}
	rec := &DeliveryRecord{group: group, pending: pending}
	r.records[group] = rec
	return rec
}

// get 返回组的记录
func (r *groupRegistry) get(group types.GroupKey) (*DeliveryRecord, bool) {
	rec, ok := r.records[group]
	return rec, ok
}

// resetAll 把所有记录置为待投递
func (r *groupRegistry) resetAll() {
	for _, rec := range r.records {
		rec.pending = true
	}
}

// len 返回记录数
func (r *groupRegistry) len() int {
	return len(r.records)
}
