package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下打开 gdata，平台不支持时跳过
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}
	return m
}

// TestStatsStoreNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestStatsStoreNilGdata(t *testing.T) {
	s := NewStatsStore(nil)

	if s.Persistent() {
		t.Error("degraded store should not be persistent")
	}

	s.BeginSession()
	s.RecordVolley()
	s.RecordSpawn(3)
	s.RecordSpawn(2)
	s.RecordFree()
	s.RecordScale()
	s.RecordFlash()
	s.RecordExpired(2)

	if err := s.Save(); err != nil {
		t.Errorf("Save() in degraded mode error: %v", err)
	}

	want := SessionStats{Sessions: 1, Volleys: 1, Spawned: 2, Freed: 1, Scales: 1, Flashes: 1, Expired: 2, MaxAlive: 3}
	if got := s.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

// TestStatsStoreLoadSave 测试保存后重新加载
func TestStatsStoreLoadSave(t *testing.T) {
	m := openTestGdata(t, "test_peashot_stats")

	s1 := NewStatsStore(m)
	s1.BeginSession()
	s1.RecordSpawn(1)
	s1.RecordFree()
	if err := s1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	s2 := NewStatsStore(m)
	got := s2.Stats()
	if got.Sessions != 1 || got.Spawned != 1 || got.Freed != 1 {
		t.Errorf("reloaded stats = %+v", got)
	}
}

// TestStatsStoreCorruptData 损坏的数据不影响创建
func TestStatsStoreCorruptData(t *testing.T) {
	m := openTestGdata(t, "test_peashot_stats_corrupt")

	if err := m.SaveObjectProp(statsObject, statsProperty, []byte("sessions: [not an int")); err != nil {
		t.Fatalf("SaveObjectProp error: %v", err)
	}

	s := NewStatsStore(m)
	if got := s.Stats(); got != (SessionStats{}) {
		t.Errorf("Stats() after corrupt load = %+v, want zero", got)
	}
}
