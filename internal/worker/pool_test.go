package worker

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolExecutesJobs(t *testing.T) {
	pool := NewWorkerPool(2, 10, 0)
	pool.Start()
	defer pool.Shutdown(time.Second)

	var counter int64
	var wg sync.WaitGroup

	for i := 0; i < 5; i++ {
		wg.Add(1)
		job := Job{
			ID: "job",
			Task: func() error {
				atomic.AddInt64(&counter, 1)
				return nil
			},
			OnDone: func(error) { wg.Done() },
		}
		if err := pool.Submit(job); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	wg.Wait()
	if got := atomic.LoadInt64(&counter); got != 5 {
		t.Errorf("выполнено задач=%d, ожидается 5", got)
	}
}

func TestPoolRetries(t *testing.T) {
	pool := NewWorkerPool(1, 10, 2)
	pool.Start()
	defer pool.Shutdown(time.Second)

	var attempts int64
	done := make(chan error, 1)

	job := Job{
		ID: "flaky",
		Task: func() error {
			if atomic.AddInt64(&attempts, 1) < 3 {
				return errors.New("временный сбой")
			}
			return nil
		},
		RetryOn: func(error) bool { return true },
		OnDone:  func(err error) { done <- err },
	}
	if err := pool.Submit(job); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := <-done; err != nil {
		t.Fatalf("задача должна была пройти с повторами: %v", err)
	}
	if got := atomic.LoadInt64(&attempts); got != 3 {
		t.Errorf("попыток=%d, ожидается 3", got)
	}
}

func TestPoolQueueFull(t *testing.T) {
	pool := NewWorkerPool(1, 1, 0)
	pool.Start()
	defer pool.Shutdown(time.Second)

	block := make(chan struct{})
	started := make(chan struct{})

	// Первая задача занимает единственного воркера
	_ = pool.Submit(Job{ID: "blocker", Task: func() error {
		close(started)
		<-block
		return nil
	}})
	<-started

	// Вторая занимает очередь
	_ = pool.Submit(Job{ID: "queued", Task: func() error { return nil }})

	// Третьей места нет
	err := pool.Submit(Job{ID: "rejected", Task: func() error { return nil }})
	if !errors.Is(err, ErrQueueFull) {
		t.Errorf("ожидается ErrQueueFull, получено %v", err)
	}

	close(block)
}

func TestPoolStats(t *testing.T) {
	pool := NewWorkerPool(1, 10, 0)
	pool.Start()

	done := make(chan struct{})
	_ = pool.Submit(Job{
		ID:     "ok",
		Task:   func() error { return nil },
		OnDone: func(error) { close(done) },
	})
	<-done

	if err := pool.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	stats := pool.GetStats()
	if stats.CompletedJobs != 1 {
		t.Errorf("CompletedJobs=%d, ожидается 1", stats.CompletedJobs)
	}
	if stats.FailedJobs != 0 {
		t.Errorf("FailedJobs=%d, ожидается 0", stats.FailedJobs)
	}
}
