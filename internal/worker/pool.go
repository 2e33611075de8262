package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"minibank/internal/utils"
)

var (
	ErrQueueFull       = errors.New("очередь задач переполнена")
	ErrShutdownTimeout = errors.New("превышен таймаут остановки пула")
)

// Job - фоновая задача для пула воркеров.
type Job struct {
	ID      string
	Task    func() error
	RetryOn func(error) bool // Нужна ли повторная попытка для этой ошибки
	OnDone  func(error)      // Callback после завершения
}

// WorkerPool управляет пулом воркеров с ограниченной очередью.
type WorkerPool struct {
	workers    int
	jobQueue   chan Job
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	mu         sync.Mutex
	stats      PoolStats
	maxRetries int
}

type PoolStats struct {
	TotalJobs     int64
	CompletedJobs int64
	FailedJobs    int64
	ActiveWorkers int
	QueuedJobs    int
}

func NewWorkerPool(workers, queueSize, maxRetries int) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())

	pool := &WorkerPool{
		workers:    workers,
		jobQueue:   make(chan Job, queueSize),
		ctx:        ctx,
		cancel:     cancel,
		maxRetries: maxRetries,
		stats: PoolStats{
			ActiveWorkers: workers,
		},
	}

	utils.LogInfo("WorkerPool", "Создан пул воркеров: воркеров=%d, очередь=%d, повторов=%d",
		workers, queueSize, maxRetries)

	return pool
}

func (p *WorkerPool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	utils.LogSuccess("WorkerPool", "Все воркеры запущены")
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			utils.LogInfo("WorkerPool", "Воркер #%d завершает работу", id)
			return

		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			p.executeJob(id, job)
		}
	}
}

// executeJob выполняет задачу, повторяя её при необходимости.
func (p *WorkerPool) executeJob(workerID int, job Job) {
	startTime := time.Now()
	var err error

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			utils.LogWarning("WorkerPool", "Воркер #%d: повторная попытка #%d для задачи %s", workerID, attempt, job.ID)
			time.Sleep(time.Millisecond * time.Duration(100*attempt))
		}

		err = job.Task()

		if err == nil {
			p.mu.Lock()
			p.stats.TotalJobs++
			p.stats.CompletedJobs++
			p.mu.Unlock()

			utils.LogDebug("WorkerPool", "Воркер #%d: задача %s выполнена за %v", workerID, job.ID, time.Since(startTime))

			if job.OnDone != nil {
				job.OnDone(nil)
			}
			return
		}

		if job.RetryOn != nil && !job.RetryOn(err) {
			break // Ошибка не требует повтора
		}
	}

	p.mu.Lock()
	p.stats.TotalJobs++
	p.stats.FailedJobs++
	p.mu.Unlock()

	utils.LogError("WorkerPool", fmt.Sprintf("Воркер #%d: задача %s провалилась после %v", workerID, job.ID, time.Since(startTime)), err)

	if job.OnDone != nil {
		job.OnDone(err)
	}
}

// Submit добавляет задачу в очередь без блокировки.
func (p *WorkerPool) Submit(job Job) error {
	select {
	case <-p.ctx.Done():
		return context.Canceled

	case p.jobQueue <- job:
		utils.LogDebug("WorkerPool", "Задача %s добавлена в очередь (в очереди: %d)", job.ID, len(p.jobQueue))
		return nil

	default:
		utils.LogWarning("WorkerPool", "Очередь переполнена, задача %s отклонена", job.ID)
		return ErrQueueFull
	}
}

// Shutdown останавливает пул: дожидается текущих задач, потом обрывает воркеры.
func (p *WorkerPool) Shutdown(timeout time.Duration) error {
	utils.LogInfo("WorkerPool", "Начинается остановка пула воркеров...")

	close(p.jobQueue)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		utils.LogSuccess("WorkerPool", "Все воркеры завершили работу")
		return nil

	case <-time.After(timeout):
		p.cancel()
		utils.LogWarning("WorkerPool", "Превышен таймаут остановки, принудительное завершение")
		return ErrShutdownTimeout
	}
}

func (p *WorkerPool) GetStats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	stats := p.stats
	stats.QueuedJobs = len(p.jobQueue)
	return stats
}
