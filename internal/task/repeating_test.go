package task

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRepeatingTaskExecutesPeriodically(t *testing.T) {
	var calls int32
	task := NewRepeating(func() {
		atomic.AddInt32(&calls, 1)
	}, 5*time.Millisecond)

	task.Start()
	assert.True(t, task.Running())
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) >= 2
	}, time.Second, time.Millisecond)

	task.Stop(false)
	assert.False(t, task.Running())

	stopped := atomic.LoadInt32(&calls)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, atomic.LoadInt32(&calls))
}

func TestRepeatingTaskForceExecOnStop(t *testing.T) {
	var calls int32
	task := NewRepeating(func() {
		atomic.AddInt32(&calls, 1)
	}, time.Hour)

	task.Start()
	task.Start()
	task.Stop(true)
	task.Stop(true)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
