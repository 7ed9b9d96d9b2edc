package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// SessionStats 累计的沙盒统计
// 跨会话保存，每次启动时 Sessions 加一
type SessionStats struct {
	Sessions int `yaml:"sessions"`
	Volleys  int `yaml:"volleys"`
	Spawned  int `yaml:"spawned"`  // 生成的子弹数
	Freed    int `yaml:"freed"`    // 离屏后请求销毁的子弹数
	Scales   int `yaml:"scales"`   // 播放的缩放效果数
	Flashes  int `yaml:"flashes"`  // 播放的闪烁效果数
	Expired  int `yaml:"expired"`  // 超时清理的实体数
	MaxAlive int `yaml:"maxAlive"` // 同时存活子弹数的峰值
}

// StatsStore 统计存储
// 负责统计数据的加载、保存和内存管理
type StatsStore struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	stats        *SessionStats
}

// 存储路径常量
const (
	statsObject   = "stats"
	statsProperty = "session"
)

// NewStatsStore 创建统计存储
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存统计）
//
// 返回：
//   - *StatsStore: 统计存储实例（加载失败时从零开始）
func NewStatsStore(gdataManager *gdata.Manager) *StatsStore {
	s := &StatsStore{
		gdataManager: gdataManager,
		stats:        &SessionStats{},
	}

	if err := s.Load(); err != nil {
		// 加载失败不是致命错误，从零开始统计
		log.Printf("[StatsStore] Warning: Failed to load stats: %v (starting from zero)", err)
	}

	return s
}

// Load 从 gdata 加载统计
//
// 如果 gdataManager 为 nil 或数据不存在，统计清零
func (s *StatsStore) Load() error {
	if s.gdataManager == nil {
		s.stats = &SessionStats{}
		return nil
	}

	if !s.gdataManager.ObjectPropExists(statsObject, statsProperty) {
		s.stats = &SessionStats{}
		return nil
	}

	data, err := s.gdataManager.LoadObjectProp(statsObject, statsProperty)
	if err != nil {
		s.stats = &SessionStats{}
		return fmt.Errorf("failed to load stats: %w", err)
	}

	var loaded SessionStats
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		s.stats = &SessionStats{}
		return fmt.Errorf("failed to unmarshal stats: %w", err)
	}

	s.stats = &loaded
	return nil
}

// Save 保存统计到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (s *StatsStore) Save() error {
	if s.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(s.stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	if err := s.gdataManager.SaveObjectProp(statsObject, statsProperty, data); err != nil {
		return fmt.Errorf("failed to save stats: %w", err)
	}

	log.Printf("[StatsStore] Stats saved: %d projectiles spawned, %d freed", s.stats.Spawned, s.stats.Freed)
	return nil
}

// Stats 当前统计（返回副本）
func (s *StatsStore) Stats() SessionStats {
	return *s.stats
}

// Persistent 是否能持久化
func (s *StatsStore) Persistent() bool {
	return s.gdataManager != nil
}

// BeginSession 新会话开始
func (s *StatsStore) BeginSession() { s.stats.Sessions++ }

// RecordVolley 记录一次齐射
func (s *StatsStore) RecordVolley() { s.stats.Volleys++ }

// RecordSpawn 记录生成子弹，并更新同时存活峰值
func (s *StatsStore) RecordSpawn(alive int) {
	s.stats.Spawned++
	if alive > s.stats.MaxAlive {
		s.stats.MaxAlive = alive
	}
}

// RecordFree 记录离屏销毁
func (s *StatsStore) RecordFree() { s.stats.Freed++ }

// RecordScale 记录缩放效果
func (s *StatsStore) RecordScale() { s.stats.Scales++ }

// RecordFlash 记录闪烁效果
func (s *StatsStore) RecordFlash() { s.stats.Flashes++ }

// RecordExpired 记录超时清理
func (s *StatsStore) RecordExpired(n int) { s.stats.Expired += n }
