package eval

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"cart-normalizer/internal/infrastructure/config"
	"cart-normalizer/internal/pkg/common"

	"go.uber.org/zap"
)

// JobStatus 評估任務狀態
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
)

// Job 一筆非同步評估任務
type Job struct {
	ID          string    `json:"id"`
	Status      JobStatus `json:"status"`
	Menu        string    `json:"menu,omitempty"`
	ScenarioIDs []string  `json:"scenario_ids,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
	Report      *Report   `json:"report,omitempty"`
}

// QueueStatus 隊列狀態資訊
type QueueStatus struct {
	QueueLength    int   `json:"queue_length"`
	ProcessedCount int64 `json:"processed_count"`
	MaxQueueSize   int   `json:"max_queue_size"`
	Workers        int   `json:"workers"`
}

// Queue 評估任務隊列，固定數量的 worker 依序執行
type Queue struct {
	config *config.Config

	mu   sync.RWMutex
	jobs map[string]*Job

	queue     chan *Job
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	processed int64
}

// NewQueue 創建評估隊列並啟動 worker
func NewQueue(cfg *config.Config) *Queue {
	q := &Queue{
		config: cfg,
		jobs:   make(map[string]*Job),
		queue:  make(chan *Job, cfg.Queue.MaxSize),
		done:   make(chan struct{}),
	}

	for i := 0; i < cfg.Queue.Workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}

	common.LogInfo("評估隊列已啟動",
		zap.Int("worker數量", cfg.Queue.Workers),
		zap.Int("隊列容量", cfg.Queue.MaxSize),
	)
	return q
}

// Enqueue 提交評估任務，隊列滿時回傳錯誤
func (q *Queue) Enqueue(ctx context.Context, menuFilter string, scenarioIDs []string) (*Job, error) {
	if len(q.queue) >= q.config.Queue.MaxSize {
		common.LogWarn("評估隊列已滿",
			zap.Int("隊列長度", len(q.queue)),
		)
		return nil, common.ErrQueueFull
	}

	job := &Job{
		ID:          common.GenerateUUID(),
		Status:      JobPending,
		Menu:        menuFilter,
		ScenarioIDs: scenarioIDs,
		CreatedAt:   time.Now(),
	}

	q.mu.Lock()
	q.jobs[job.ID] = job
	q.mu.Unlock()

	select {
	case q.queue <- job:
		common.LogInfo("評估任務已入列",
			zap.String("任務ID", job.ID),
			zap.String("菜單", menuFilter),
		)
		return q.snapshotJob(job.ID), nil
	case <-ctx.Done():
		q.removeJob(job.ID)
		return nil, ctx.Err()
	case <-q.done:
		q.removeJob(job.ID)
		return nil, common.ErrQueueFull
	}
}

// Get 查詢任務，回傳目前狀態的拷貝
func (q *Queue) Get(jobID string) (*Job, error) {
	job := q.snapshotJob(jobID)
	if job == nil {
		return nil, common.ErrJobNotFound
	}
	return job, nil
}

// Status 隊列狀態
func (q *Queue) Status() QueueStatus {
	return QueueStatus{
		QueueLength:    len(q.queue),
		ProcessedCount: atomic.LoadInt64(&q.processed),
		MaxQueueSize:   q.config.Queue.MaxSize,
		Workers:        q.config.Queue.Workers,
	}
}

// Close 停止收件並等待 worker 結束
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		close(q.done)
		close(q.queue)
	})
	q.wg.Wait()
	common.LogInfo("評估隊列已關閉",
		zap.Int64("已處理任務數", atomic.LoadInt64(&q.processed)),
	)
}

func (q *Queue) worker(id int) {
	defer q.wg.Done()
	for job := range q.queue {
		q.process(id, job)
	}
}

func (q *Queue) process(workerID int, job *Job) {
	q.setStatus(job.ID, JobRunning)

	scenarios := AllScenarios()
	if job.Menu != "" {
		scenarios = ScenariosByMenu(job.Menu)
	}
	scenarios = FilterScenarios(scenarios, job.ScenarioIDs)

	report := NewRunner().Run(scenarios)

	q.mu.Lock()
	if stored, ok := q.jobs[job.ID]; ok {
		stored.Status = JobCompleted
		stored.Report = report
		stored.CompletedAt = time.Now()
	}
	q.mu.Unlock()

	atomic.AddInt64(&q.processed, 1)
	common.LogInfo("評估任務完成",
		zap.Int("worker", workerID),
		zap.String("任務ID", job.ID),
		zap.Int("情境數", report.Summary.TotalScenarios),
	)
}

func (q *Queue) setStatus(jobID string, status JobStatus) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if job, ok := q.jobs[jobID]; ok {
		job.Status = status
	}
}

func (q *Queue) removeJob(jobID string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.jobs, jobID)
}

// snapshotJob 拷貝任務避免呼叫端與 worker 競爭
func (q *Queue) snapshotJob(jobID string) *Job {
	q.mu.RLock()
	defer q.mu.RUnlock()
	job, ok := q.jobs[jobID]
	if !ok {
		return nil
	}
	copied := *job
	return &copied
}
