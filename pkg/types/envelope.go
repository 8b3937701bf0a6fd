package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ============================================================================
//                              Tag - 事件标签
// ============================================================================

// Tag 事件标签
//
// 约定使用点分命名，例如 "ui.toast"、"session.logged_out"。
type Tag string

// String 返回字符串表示
func (t Tag) String() string {
	return string(t)
}

// IsEmpty 检查是否为空
func (t Tag) IsEmpty() bool {
	return t == ""
}

// ============================================================================
//                              Filter - 标签过滤器
// ============================================================================

// Filter 订阅的标签过滤器
//
// 零值 Filter 不匹配任何标签。
type Filter struct {
	all    bool
	tags   []Tag
	prefix string
}

// MatchAll 匹配所有标签
func MatchAll() Filter {
	return Filter{all: true}
}

// MatchTags 精确匹配给定标签
func MatchTags(tags ...Tag) Filter {
	seen := make(map[Tag]struct{}, len(tags))
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		if t.IsEmpty() {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return Filter{tags: out}
}

// MatchPrefix 按标签前缀匹配，例如 "ui."
func MatchPrefix(prefix string) Filter {
	if prefix == "" {
		return MatchAll()
	}
	return Filter{prefix: prefix}
}

// Match 检查标签是否被接受
func (f Filter) Match(tag Tag) bool {
	if f.all {
		return true
	}
	if f.prefix != "" {
		return strings.HasPrefix(string(tag), f.prefix)
	}
	for _, t := range f.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Tags 返回精确匹配的标签列表
//
// 对 MatchAll 和 MatchPrefix 返回 nil。
func (f Filter) Tags() []Tag {
	if f.all || f.prefix != "" {
		return nil
	}
	out := make([]Tag, len(f.tags))
	copy(out, f.tags)
	return out
}

// IsWildcard 是否为通配过滤器（MatchAll 或 MatchPrefix）
func (f Filter) IsWildcard() bool {
	return f.all || f.prefix != ""
}

// IsEmpty 是否不匹配任何标签
func (f Filter) IsEmpty() bool {
	return !f.IsWildcard() && len(f.tags) == 0
}

// ============================================================================
//                              Envelope - 事件信封
// ============================================================================

// Envelope 事件总线信封
//
// 每次发布扇出给当前所有匹配的订阅，每个订阅至多收到一次。
// 总线不保存信封，发布返回后才挂载的订阅永远看不到它。
type Envelope struct {
	// ID 信封标识，发布时自动填充
	ID string

	// Tag 事件标签
	Tag Tag

	// Source 发布方标识，可为空
	//
	// 界面控制器以自身 Store 的 GroupKey 作为来源，挂载的视图只处理自己来源的事件。
	Source string

	// Payload 事件负载
	Payload any

	// PublishedAt 发布时间，发布时自动填充
	PublishedAt time.Time
}

// NewEnvelope 创建信封
func NewEnvelope(tag Tag, payload any) Envelope {
	return Envelope{
		Tag:     tag,
		Payload: payload,
	}
}

// WithSource 返回设置了来源的副本
func (e Envelope) WithSource(source string) Envelope {
	e.Source = source
	return e
}

// Stamp 填充 ID 与发布时间（已有值时保留）
func (e Envelope) Stamp(now time.Time) Envelope {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.PublishedAt.IsZero() {
		e.PublishedAt = now
	}
	return e
}
