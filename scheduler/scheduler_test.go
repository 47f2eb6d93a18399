package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newNop() *zap.Logger { l, _ := zap.NewDevelopment(); return l }

func TestAddTicker_Fires(t *testing.T) {
	s := New(newNop())
	defer s.Stop()

	var count int32
	s.AddTicker("game_tick", 20*time.Millisecond, func() {
		atomic.AddInt32(&count, 1)
	})

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&count) >= 3 },
		time.Second, 10*time.Millisecond)
}

func TestAddTicker_Replaces(t *testing.T) {
	s := New(newNop())
	defer s.Stop()

	var count1, count2 int32
	s.AddTicker("task", 20*time.Millisecond, func() { atomic.AddInt32(&count1, 1) })
	time.Sleep(30 * time.Millisecond)
	s.AddTicker("task", 20*time.Millisecond, func() { atomic.AddInt32(&count2, 1) })
	time.Sleep(40 * time.Millisecond)

	snap1 := atomic.LoadInt32(&count1)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, snap1, atomic.LoadInt32(&count1), "old ticker must stop after replacement")
	assert.Positive(t, atomic.LoadInt32(&count2))
	assert.Equal(t, []string{"task"}, tickerNames(s))
}

func TestAddTicker_IgnoresNonPositiveInterval(t *testing.T) {
	s := New(newNop())
	defer s.Stop()
	s.AddTicker("broken", 0, func() {})
	assert.Empty(t, tickerNames(s))
}

func TestAddDelay_FiresOnce(t *testing.T) {
	s := New(newNop())
	defer s.Stop()

	var count int32
	s.AddDelay("respawn:1", 30*time.Millisecond, func() {
		atomic.AddInt32(&count, 1)
	})

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&count))
	assert.Empty(t, s.List(), "fired delays are forgotten")
}

func TestAddDelay_ReplacesCancelsOld(t *testing.T) {
	s := New(newNop())
	defer s.Stop()

	var count int32
	s.AddDelay("d", 500*time.Millisecond, func() { atomic.AddInt32(&count, 1) })
	s.AddDelay("d", 30*time.Millisecond, func() { atomic.AddInt32(&count, 10) })
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(10), atomic.LoadInt32(&count))
}

func TestAddDelay_DistinctNamesBothFire(t *testing.T) {
	s := New(newNop())
	defer s.Stop()

	var count int32
	s.AddDelay("counterattack:e1:1", 10*time.Millisecond, func() { atomic.AddInt32(&count, 1) })
	s.AddDelay("counterattack:e1:2", 10*time.Millisecond, func() { atomic.AddInt32(&count, 1) })
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&count) == 2 },
		time.Second, 5*time.Millisecond)
}

func TestAddDelay_PanicRecovered(t *testing.T) {
	s := New(newNop())
	defer s.Stop()

	var after int32
	s.AddDelay("boom", 5*time.Millisecond, func() { panic("oops") })
	s.AddDelay("fine", 20*time.Millisecond, func() { atomic.StoreInt32(&after, 1) })
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&after) == 1 },
		time.Second, 5*time.Millisecond)
}

func TestRemove_Ticker(t *testing.T) {
	s := New(newNop())
	defer s.Stop()

	var count int32
	s.AddTicker("task", 20*time.Millisecond, func() { atomic.AddInt32(&count, 1) })
	time.Sleep(50 * time.Millisecond)
	s.Remove("task")
	time.Sleep(10 * time.Millisecond)
	snap := atomic.LoadInt32(&count)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, snap, atomic.LoadInt32(&count), "ticker must stop after Remove")
}

func TestRemove_Delay(t *testing.T) {
	s := New(newNop())
	defer s.Stop()

	var count int32
	s.AddDelay("d", 100*time.Millisecond, func() { atomic.AddInt32(&count, 1) })
	assert.True(t, s.Remove("d"))
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&count))
}

func TestRemove_NonExistent(t *testing.T) {
	s := New(newNop())
	defer s.Stop()
	assert.False(t, s.Remove("nope"))
}

func TestStop_StopsEverything(t *testing.T) {
	s := New(newNop())

	var ticks, delayed int32
	s.AddTicker("a", 20*time.Millisecond, func() { atomic.AddInt32(&ticks, 1) })
	s.AddDelay("later", 50*time.Millisecond, func() { atomic.AddInt32(&delayed, 1) })
	time.Sleep(30 * time.Millisecond)
	s.Stop()
	time.Sleep(30 * time.Millisecond)
	snap := atomic.LoadInt32(&ticks)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, snap, atomic.LoadInt32(&ticks))
	assert.Equal(t, int32(0), atomic.LoadInt32(&delayed))
}

func TestStop_RejectsNewTasks(t *testing.T) {
	s := New(newNop())
	s.Stop()
	s.Stop()

	var count int32
	s.AddDelay("d", time.Millisecond, func() { atomic.AddInt32(&count, 1) })
	s.AddTicker("t", time.Millisecond, func() { atomic.AddInt32(&count, 1) })
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&count))
	assert.Empty(t, s.List())
}

func TestList_TickersSorted(t *testing.T) {
	s := New(newNop())
	defer s.Stop()

	require.Empty(t, tickerNames(s))
	s.AddTicker("game_tick", time.Hour, func() {})
	s.AddTicker("enemy_respawn", time.Hour, func() {})
	assert.Equal(t, []string{"enemy_respawn", "game_tick"}, tickerNames(s))
	assert.True(t, s.Remove("enemy_respawn"))
	assert.Equal(t, []string{"game_tick"}, tickerNames(s))
}

func TestList_TickersThenDelays(t *testing.T) {
	s := New(newNop())
	defer s.Stop()

	s.AddDelay("respawn:2", time.Hour, func() {})
	s.AddTicker("game_tick", time.Second, func() {})
	s.AddDelay("aura_clear:1", time.Hour, func() {})

	tasks := s.List()
	require.Len(t, tasks, 3)
	assert.Equal(t, TaskInfo{Name: "game_tick", Kind: KindTicker, Interval: time.Second}, tasks[0])
	assert.Equal(t, "aura_clear:1", tasks[1].Name)
	assert.Equal(t, KindDelay, tasks[1].Kind)
	assert.False(t, tasks[1].Due.IsZero())
	assert.Equal(t, "respawn:2", tasks[2].Name)
}

func tickerNames(s *Scheduler) []string {
	var names []string
	for _, task := range s.List() {
		if task.Kind == KindTicker {
			names = append(names, task.Name)
		}
	}
	return names
}
